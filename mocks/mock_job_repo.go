package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"imidok/internal/domain"
)

// MockJobRepo is a mock implementation of port.JobRepository.
type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) CreateJob(ctx context.Context, job *domain.ExtractionJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepo) CreateJobItems(ctx context.Context, items []domain.ExtractionJobItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockJobRepo) UpdateJobArtifact(ctx context.Context, id uuid.UUID, artifactKey string) error {
	args := m.Called(ctx, id, artifactKey)
	return args.Error(0)
}

func (m *MockJobRepo) GetJob(ctx context.Context, id uuid.UUID) (*domain.ExtractionJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionJob), args.Error(1)
}

func (m *MockJobRepo) DeleteJob(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJobRepo) ListJobs(ctx context.Context, offset, limit int) ([]domain.ExtractionJob, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExtractionJob), args.Int(1), args.Error(2)
}

func (m *MockJobRepo) ListJobItems(ctx context.Context, jobID uuid.UUID) ([]domain.ExtractionJobItem, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtractionJobItem), args.Error(1)
}
