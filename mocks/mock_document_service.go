package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/billing"
	"khata/internal/domain"
	"khata/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) New(docType domain.DocumentType) (*service.DocumentPreview, error) {
	args := m.Called(docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentPreview), args.Error(1)
}

func (m *MockDocumentService) Preview(doc billing.Document) *service.DocumentPreview {
	args := m.Called(doc)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*service.DocumentPreview)
}

func (m *MockDocumentService) Submit(ctx context.Context, input *service.SubmitDocumentInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, input *service.UpdateDocumentInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) GetByID(ctx context.Context, docType domain.DocumentType, docID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, docType, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Edit(ctx context.Context, docType domain.DocumentType, docID uuid.UUID) (*service.DocumentPreview, error) {
	args := m.Called(ctx, docType, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentPreview), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, docType domain.DocumentType, offset, limit int) ([]domain.Document, int, error) {
	args := m.Called(ctx, docType, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}

func (m *MockDocumentService) Delete(ctx context.Context, docType domain.DocumentType, docID uuid.UUID) error {
	args := m.Called(ctx, docType, docID)
	return args.Error(0)
}
