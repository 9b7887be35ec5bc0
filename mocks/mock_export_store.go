package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"khata/internal/port"
)

// MockExportStore is a mock implementation of port.ExportStore.
type MockExportStore struct {
	mock.Mock
}

func (m *MockExportStore) Put(ctx context.Context, obj port.ExportObject) (*port.StoredExport, error) {
	args := m.Called(ctx, obj)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.StoredExport), args.Error(1)
}

func (m *MockExportStore) Remove(ctx context.Context, bucket, key string) error {
	return m.Called(ctx, bucket, key).Error(0)
}

func (m *MockExportStore) DownloadURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, ttl)
	return args.String(0), args.Error(1)
}
