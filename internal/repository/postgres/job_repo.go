package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"imidok/internal/domain"
	"imidok/internal/port"
)

type jobRepo struct {
	db *sqlx.DB
}

// NewJobRepo creates a new PostgreSQL-backed JobRepository.
func NewJobRepo(db *sqlx.DB) port.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) CreateJob(ctx context.Context, job *domain.ExtractionJob) error {
	job.CreatedAt = time.Now().UTC()

	query := `INSERT INTO extraction_jobs (
		id, status, layout_hint, export_format,
		total_items, succeeded, failed, artifact_key, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.Status, job.LayoutHint, job.ExportFormat,
		job.TotalItems, job.Succeeded, job.Failed, job.ArtifactKey, job.CreatedAt)
	if err != nil {
		return fmt.Errorf("jobRepo.CreateJob: %w", err)
	}
	return nil
}

func (r *jobRepo) CreateJobItems(ctx context.Context, items []domain.ExtractionJobItem) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now().UTC()
	query := `INSERT INTO extraction_job_items (
		id, job_id, position, source, layout, status, reason, fields, created_at
	) VALUES (:id, :job_id, :position, :source, :layout, :status, :reason, :fields, :created_at)`

	for i := range items {
		items[i].CreatedAt = now
	}
	if _, err := r.db.NamedExecContext(ctx, query, items); err != nil {
		return fmt.Errorf("jobRepo.CreateJobItems: %w", err)
	}
	return nil
}

func (r *jobRepo) UpdateJobArtifact(ctx context.Context, id uuid.UUID, artifactKey string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE extraction_jobs SET artifact_key = $1 WHERE id = $2", artifactKey, id)
	if err != nil {
		return fmt.Errorf("jobRepo.UpdateJobArtifact: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteJob removes the job row; items follow via ON DELETE CASCADE.
func (r *jobRepo) DeleteJob(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM extraction_jobs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("jobRepo.DeleteJob: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) GetJob(ctx context.Context, id uuid.UUID) (*domain.ExtractionJob, error) {
	var job domain.ExtractionJob
	err := r.db.GetContext(ctx, &job,
		"SELECT * FROM extraction_jobs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("jobRepo.GetJob: %w", err)
	}
	return &job, nil
}

func (r *jobRepo) ListJobs(ctx context.Context, offset, limit int) ([]domain.ExtractionJob, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM extraction_jobs")
	if err != nil {
		return nil, 0, fmt.Errorf("jobRepo.ListJobs count: %w", err)
	}

	var jobs []domain.ExtractionJob
	err = r.db.SelectContext(ctx, &jobs,
		`SELECT * FROM extraction_jobs
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("jobRepo.ListJobs: %w", err)
	}
	return jobs, total, nil
}

func (r *jobRepo) ListJobItems(ctx context.Context, jobID uuid.UUID) ([]domain.ExtractionJobItem, error) {
	var items []domain.ExtractionJobItem
	err := r.db.SelectContext(ctx, &items,
		`SELECT * FROM extraction_job_items WHERE job_id = $1 ORDER BY position`, jobID)
	if err != nil {
		return nil, fmt.Errorf("jobRepo.ListJobItems: %w", err)
	}
	return items, nil
}
