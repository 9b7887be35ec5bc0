package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
)

// MockDocumentRepo is a mock implementation of port.DocumentRepository.
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepo) GetByID(ctx context.Context, docType domain.DocumentType, docID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, docType, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) ListByType(ctx context.Context, docType domain.DocumentType, offset, limit int) ([]domain.Document, int, error) {
	args := m.Called(ctx, docType, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}

func (m *MockDocumentRepo) Update(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepo) Delete(ctx context.Context, docType domain.DocumentType, docID uuid.UUID) error {
	args := m.Called(ctx, docType, docID)
	return args.Error(0)
}
