package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"imidok/internal/domain"
	"imidok/internal/extractor"
	"imidok/internal/normalizer"
	"imidok/mocks"
)

func skttDoc(source string) domain.RawDocument {
	return domain.RawDocument{
		Source:     source,
		Text:       "SURAT KETERANGAN TENAGA KERJA TERDAFTAR\nNama/Name : JOHN DOE",
		LayoutHint: domain.LayoutHintAuto,
	}
}

func newBatch(jobs *mocks.MockJobRepo, concurrency int) *BatchService {
	d := extractor.NewDispatcher(normalizer.New())
	if jobs == nil {
		return NewBatchService(d, nil, concurrency)
	}
	return NewBatchService(d, jobs, concurrency)
}

func TestBatchRunPreservesOrderAndIsolatesFailures(t *testing.T) {
	docs := []domain.RawDocument{
		skttDoc("a.pdf"),
		skttDoc("b.pdf"),
		{Source: "c.pdf", Text: "   \n", LayoutHint: domain.LayoutHintAuto},
		skttDoc("d.pdf"),
		{Source: "e.pdf", Text: "unclassifiable text", LayoutHint: domain.LayoutHintAuto},
	}

	result := newBatch(nil, 2).Run(context.Background(), docs)

	require.Len(t, result.Items, 5)
	for i, want := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf", "e.pdf"} {
		assert.Equal(t, want, result.Items[i].Source)
	}

	assert.Equal(t, domain.ItemStatusSuccess, result.Items[0].Status)
	assert.Equal(t, domain.ItemStatusSuccess, result.Items[1].Status)
	assert.Equal(t, domain.ItemStatusSuccess, result.Items[3].Status)

	assert.Equal(t, domain.ItemStatusFailed, result.Items[2].Status)
	assert.Nil(t, result.Items[2].Record)
	assert.Contains(t, result.Items[2].Reason, "empty")

	assert.Equal(t, domain.ItemStatusFailed, result.Items[4].Status)
	assert.Contains(t, result.Items[4].Reason, "unsupported")

	assert.Equal(t, 3, result.Succeeded())
	assert.Len(t, result.Records(), 3)
	assert.False(t, result.AllFailed())
}

func TestBatchRunPreFailedDocument(t *testing.T) {
	docs := []domain.RawDocument{
		{Source: "scan.pdf", FailReason: "text extraction failed: scan.pdf: boom"},
	}

	result := newBatch(nil, 1).Run(context.Background(), docs)

	require.Len(t, result.Items, 1)
	assert.Equal(t, domain.ItemStatusFailed, result.Items[0].Status)
	assert.Equal(t, "text extraction failed: scan.pdf: boom", result.Items[0].Reason)
	assert.True(t, result.AllFailed())
}

func TestBatchRunEmptyInput(t *testing.T) {
	result := newBatch(nil, 4).Run(context.Background(), nil)
	assert.Empty(t, result.Items)
	assert.False(t, result.AllFailed(), "an empty batch is not a failed batch")
}

func TestRunAndRecordPersistsJob(t *testing.T) {
	jobs := new(mocks.MockJobRepo)
	jobs.On("CreateJob", mock.Anything, mock.AnythingOfType("*domain.ExtractionJob")).Return(nil)
	jobs.On("CreateJobItems", mock.Anything, mock.AnythingOfType("[]domain.ExtractionJobItem")).Return(nil)

	docs := []domain.RawDocument{
		skttDoc("a.pdf"),
		{Source: "b.pdf", Text: " ", LayoutHint: domain.LayoutHintAuto},
	}

	result, job := newBatch(jobs, 2).RunAndRecord(context.Background(), docs, domain.LayoutHintAuto, domain.ExportFormatXLSX)

	require.Len(t, result.Items, 2)
	require.NotNil(t, job)
	assert.Equal(t, domain.JobStatusCompleted, job.Status)
	assert.Equal(t, 2, job.TotalItems)
	assert.Equal(t, 1, job.Succeeded)
	assert.Equal(t, 1, job.Failed)
	assert.Equal(t, domain.ExportFormatXLSX, job.ExportFormat)

	jobs.AssertExpectations(t)

	items := jobs.Calls[1].Arguments.Get(1).([]domain.ExtractionJobItem)
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Position)
	assert.Equal(t, domain.LayoutSKTT, items[0].Layout)
	assert.NotEmpty(t, items[0].Fields)
	assert.Equal(t, domain.LayoutUnknown, items[1].Layout)
	assert.Empty(t, items[1].Fields)
}

func TestRunAndRecordAllFailedMarksJobEmpty(t *testing.T) {
	jobs := new(mocks.MockJobRepo)
	jobs.On("CreateJob", mock.Anything, mock.Anything).Return(nil)
	jobs.On("CreateJobItems", mock.Anything, mock.Anything).Return(nil)

	docs := []domain.RawDocument{{Source: "x.pdf", Text: "", LayoutHint: domain.LayoutHintAuto}}
	result, job := newBatch(jobs, 1).RunAndRecord(context.Background(), docs, domain.LayoutHintAuto, domain.ExportFormatCSV)

	assert.True(t, result.AllFailed())
	assert.Equal(t, domain.JobStatusEmpty, job.Status)
}

func TestRunAndRecordWithoutRepository(t *testing.T) {
	docs := []domain.RawDocument{skttDoc("a.pdf")}
	result, job := newBatch(nil, 1).RunAndRecord(context.Background(), docs, domain.LayoutHintAuto, domain.ExportFormatXLSX)

	assert.Equal(t, 1, result.Succeeded())
	require.NotNil(t, job)
	assert.NotEqual(t, "", job.ID.String())
}
