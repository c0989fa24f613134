package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"imidok/internal/port"
)

// MockTextExtractor is a mock implementation of port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) ExtractText(ctx context.Context, in port.ExtractInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}
