package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"imidok/internal/domain"
	"imidok/internal/extractor"
	"imidok/internal/port"
)

// BatchService runs the extraction pipeline over many documents concurrently
// and, when a repository is configured, records the outcome as a job.
type BatchService struct {
	dispatcher  *extractor.Dispatcher
	jobs        port.JobRepository
	concurrency int
}

// NewBatchService creates a BatchService. jobs may be nil, in which case runs
// are not recorded. Concurrency below 1 is clamped to 1.
func NewBatchService(dispatcher *extractor.Dispatcher, jobs port.JobRepository, concurrency int) *BatchService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BatchService{dispatcher: dispatcher, jobs: jobs, concurrency: concurrency}
}

// Run extracts every document and returns one item per input, in input order.
// A failing document never aborts the batch; its item carries the failure
// reason instead of a record.
func (s *BatchService) Run(ctx context.Context, docs []domain.RawDocument) *domain.BatchResult {
	items := make([]domain.BatchItem, len(docs))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.concurrency)
	for i := range docs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			items[i] = s.extractOne(ctx, docs[i])
		}(i)
	}
	wg.Wait()

	return &domain.BatchResult{Items: items}
}

func (s *BatchService) extractOne(ctx context.Context, doc domain.RawDocument) (item domain.BatchItem) {
	item = domain.BatchItem{Source: doc.Source}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("batch: panic extracting %q: %v", doc.Source, r)
			item.Status = domain.ItemStatusFailed
			item.Record = nil
			item.Reason = fmt.Sprintf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		item.Status = domain.ItemStatusFailed
		item.Reason = err.Error()
		return item
	}
	if doc.FailReason != "" {
		item.Status = domain.ItemStatusFailed
		item.Reason = doc.FailReason
		return item
	}

	rec, err := s.dispatcher.Dispatch(doc.Text, doc.LayoutHint)
	if err != nil {
		item.Status = domain.ItemStatusFailed
		item.Reason = err.Error()
		return item
	}
	item.Status = domain.ItemStatusSuccess
	item.Record = rec
	return item
}

// RunAndRecord runs the batch and persists an ExtractionJob plus per-item
// rows. Persistence failures are logged and swallowed; the extraction result
// is returned regardless.
func (s *BatchService) RunAndRecord(ctx context.Context, docs []domain.RawDocument, layoutHint string, format domain.ExportFormat) (*domain.BatchResult, *domain.ExtractionJob) {
	result := s.Run(ctx, docs)

	job := &domain.ExtractionJob{
		ID:           uuid.New(),
		Status:       domain.JobStatusCompleted,
		LayoutHint:   layoutHint,
		ExportFormat: format,
		TotalItems:   len(result.Items),
		Succeeded:    result.Succeeded(),
		Failed:       len(result.Items) - result.Succeeded(),
	}
	if result.AllFailed() {
		job.Status = domain.JobStatusEmpty
	}

	if s.jobs == nil {
		return result, job
	}

	if err := s.jobs.CreateJob(ctx, job); err != nil {
		log.Printf("batch: record job %s: %v", job.ID, err)
		return result, job
	}
	items := make([]domain.ExtractionJobItem, 0, len(result.Items))
	for i, it := range result.Items {
		row := domain.ExtractionJobItem{
			ID:       uuid.New(),
			JobID:    job.ID,
			Position: i,
			Source:   it.Source,
			Layout:   domain.LayoutUnknown,
			Status:   it.Status,
			Reason:   it.Reason,
		}
		if it.Record != nil {
			row.Layout = it.Record.Layout()
			if data, err := json.Marshal(it.Record.Fields()); err == nil {
				row.Fields = data
			}
		}
		items = append(items, row)
	}
	if err := s.jobs.CreateJobItems(ctx, items); err != nil {
		log.Printf("batch: record job items %s: %v", job.ID, err)
	}
	return result, job
}

// AttachArtifact stores the artifact key on a recorded job. No-op without a
// repository.
func (s *BatchService) AttachArtifact(ctx context.Context, job *domain.ExtractionJob, key string) {
	job.ArtifactKey = key
	if s.jobs == nil {
		return
	}
	if err := s.jobs.UpdateJobArtifact(ctx, job.ID, key); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("batch: attach artifact to job %s: %v", job.ID, err)
	}
}
