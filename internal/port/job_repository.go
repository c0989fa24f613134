package port

import (
	"context"

	"github.com/google/uuid"

	"imidok/internal/domain"
)

// JobRepository persists extraction job history.
type JobRepository interface {
	CreateJob(ctx context.Context, job *domain.ExtractionJob) error
	CreateJobItems(ctx context.Context, items []domain.ExtractionJobItem) error
	UpdateJobArtifact(ctx context.Context, id uuid.UUID, artifactKey string) error
	GetJob(ctx context.Context, id uuid.UUID) (*domain.ExtractionJob, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
	ListJobs(ctx context.Context, offset, limit int) ([]domain.ExtractionJob, int, error)
	ListJobItems(ctx context.Context, jobID uuid.UUID) ([]domain.ExtractionJobItem, error)
}
