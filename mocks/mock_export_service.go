package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/service"
)

// MockExportService is a mock implementation of service.ExportService.
// Content set through ExportBody is written to w on Export.
type MockExportService struct {
	mock.Mock
	ExportBody []byte
}

func (m *MockExportService) Export(ctx context.Context, docType domain.DocumentType, format domain.ExportFormat, w io.Writer) (int, error) {
	args := m.Called(ctx, docType, format, w)
	if args.Error(1) == nil && len(m.ExportBody) > 0 {
		if _, err := w.Write(m.ExportBody); err != nil {
			return 0, err
		}
	}
	return args.Int(0), args.Error(1)
}

func (m *MockExportService) Upload(ctx context.Context, docType domain.DocumentType) (*service.ExportUpload, error) {
	args := m.Called(ctx, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportUpload), args.Error(1)
}

func (m *MockExportService) Filename(docType domain.DocumentType, format domain.ExportFormat) string {
	args := m.Called(docType, format)
	return args.String(0)
}
