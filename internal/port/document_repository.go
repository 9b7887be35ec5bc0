package port

import (
	"context"

	"github.com/google/uuid"

	"khata/internal/domain"
)

// DocumentRepository defines the contract for billing document persistence.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, docType domain.DocumentType, docID uuid.UUID) (*domain.Document, error)
	ListByType(ctx context.Context, docType domain.DocumentType, offset, limit int) ([]domain.Document, int, error)
	Update(ctx context.Context, doc *domain.Document) error
	Delete(ctx context.Context, docType domain.DocumentType, docID uuid.UUID) error
}
