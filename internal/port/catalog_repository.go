package port

import (
	"context"

	"github.com/google/uuid"

	"khata/internal/domain"
)

// CatalogRepository defines read access to the item catalog.
type CatalogRepository interface {
	GetByID(ctx context.Context, itemID uuid.UUID) (*domain.CatalogItem, error)
	Search(ctx context.Context, query string, offset, limit int) ([]domain.CatalogItem, int, error)
}
