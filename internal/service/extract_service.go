package service

import (
	"context"
	"fmt"
	"strings"

	"imidok/internal/domain"
	"imidok/internal/extractor"
	"imidok/internal/port"
)

// ExtractService handles single-document extraction: linearize the upload via
// the text extraction collaborator, then dispatch to the layout extractors.
type ExtractService struct {
	texts      port.TextExtractor
	dispatcher *extractor.Dispatcher
}

// NewExtractService creates an ExtractService.
func NewExtractService(texts port.TextExtractor, dispatcher *extractor.Dispatcher) *ExtractService {
	return &ExtractService{texts: texts, dispatcher: dispatcher}
}

// Linearize turns an uploaded file into plain text.
func (s *ExtractService) Linearize(ctx context.Context, in port.ExtractInput) (string, error) {
	text, err := s.texts.ExtractText(ctx, in)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrTextExtractFailed, in.Filename, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyDocument
	}
	return text, nil
}

// Extract linearizes one upload and extracts a record from it.
func (s *ExtractService) Extract(ctx context.Context, in port.ExtractInput, layoutHint string) (domain.Record, error) {
	text, err := s.Linearize(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.dispatcher.Dispatch(text, layoutHint)
}

// LinearizeAll turns many uploads into RawDocuments carrying the shared
// layout hint. A file whose text cannot be extracted becomes a pre-failed
// document so the batch reports it without aborting the others.
func (s *ExtractService) LinearizeAll(ctx context.Context, ins []port.ExtractInput, layoutHint string) []domain.RawDocument {
	docs := make([]domain.RawDocument, len(ins))
	for i, in := range ins {
		docs[i] = domain.RawDocument{Source: in.Filename, LayoutHint: layoutHint}
		text, err := s.Linearize(ctx, in)
		if err != nil {
			docs[i].FailReason = err.Error()
			continue
		}
		docs[i].Text = text
	}
	return docs
}

// Classify linearizes one upload and reports the detected layout without
// running an extractor.
func (s *ExtractService) Classify(ctx context.Context, in port.ExtractInput) (domain.LayoutKind, error) {
	text, err := s.Linearize(ctx, in)
	if err != nil {
		return domain.LayoutUnknown, err
	}
	return extractor.Classify(text), nil
}
