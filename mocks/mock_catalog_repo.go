package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
)

// MockCatalogRepo is a mock implementation of port.CatalogRepository.
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) GetByID(ctx context.Context, itemID uuid.UUID) (*domain.CatalogItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}

func (m *MockCatalogRepo) Search(ctx context.Context, query string, offset, limit int) ([]domain.CatalogItem, int, error) {
	args := m.Called(ctx, query, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CatalogItem), args.Int(1), args.Error(2)
}
