package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"khata/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendSubmissionNotice(ctx context.Context, toEmail string, notice port.SubmissionNotice) error {
	args := m.Called(ctx, toEmail, notice)
	return args.Error(0)
}
