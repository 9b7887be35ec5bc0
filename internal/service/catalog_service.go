package service

import (
	"context"

	"github.com/google/uuid"

	"khata/internal/billing"
	"khata/internal/catalog"
	"khata/internal/domain"
	"khata/internal/port"
)

// BindLineInput is the DTO for binding a catalog item to a document line.
type BindLineInput struct {
	DocumentType domain.DocumentType
	ItemID       uuid.UUID
	Line         billing.LineItem
}

// CatalogService defines item catalog lookups and line binding.
type CatalogService interface {
	Search(ctx context.Context, query string, offset, limit int) ([]domain.CatalogItem, int, error)
	GetByID(ctx context.Context, itemID uuid.UUID) (*domain.CatalogItem, error)
	BindLine(ctx context.Context, input *BindLineInput) (billing.LineItem, error)
}

type catalogService struct {
	repo port.CatalogRepository
	hsn  *catalog.HSNLookup
}

// NewCatalogService creates a new CatalogService. hsn may be nil when the HSN
// master is not loaded.
func NewCatalogService(repo port.CatalogRepository, hsn *catalog.HSNLookup) CatalogService {
	return &catalogService{repo: repo, hsn: hsn}
}

func (s *catalogService) Search(ctx context.Context, query string, offset, limit int) ([]domain.CatalogItem, int, error) {
	return s.repo.Search(ctx, query, offset, limit)
}

func (s *catalogService) GetByID(ctx context.Context, itemID uuid.UUID) (*domain.CatalogItem, error) {
	return s.repo.GetByID(ctx, itemID)
}

func (s *catalogService) BindLine(ctx context.Context, input *BindLineInput) (billing.LineItem, error) {
	if !domain.ValidDocumentTypes[input.DocumentType] {
		return billing.LineItem{}, domain.ErrInvalidDocumentType
	}
	item, err := s.repo.GetByID(ctx, input.ItemID)
	if err != nil {
		return billing.LineItem{}, err
	}
	line := input.Line
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	return catalog.Bind(line, item, input.DocumentType, s.hsn), nil
}
