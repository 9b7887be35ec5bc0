package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"khata/internal/domain"
	"khata/internal/port"
)

type catalogRepo struct {
	db *sqlx.DB
}

// NewCatalogRepo creates a new PostgreSQL-backed CatalogRepository.
func NewCatalogRepo(db *sqlx.DB) port.CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) GetByID(ctx context.Context, itemID uuid.UUID) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	err := r.db.GetContext(ctx, &item, "SELECT * FROM catalog_items WHERE id = $1", itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCatalogItemNotFound
		}
		return nil, fmt.Errorf("catalogRepo.GetByID: %w", err)
	}
	return &item, nil
}

// Search matches query against item name and HSN code. An empty query lists
// the whole catalog.
func (r *catalogRepo) Search(ctx context.Context, query string, offset, limit int) ([]domain.CatalogItem, int, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"
	const where = "WHERE name ILIKE $1 OR hsn LIKE $1"

	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM catalog_items "+where, pattern); err != nil {
		return nil, 0, fmt.Errorf("catalogRepo.Search count: %w", err)
	}

	var items []domain.CatalogItem
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM catalog_items "+where+" ORDER BY name LIMIT $2 OFFSET $3",
		pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("catalogRepo.Search: %w", err)
	}
	return items, total, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
