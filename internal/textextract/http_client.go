package textextract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"imidok/internal/config"
	"imidok/internal/port"
)

// HTTPService implements port.TextExtractor against an OCR/text-linearization
// service that accepts raw document bytes and answers with plain text.
type HTTPService struct {
	endpoint string
	client   *http.Client
}

// NewHTTPService creates an HTTPService from config.
func NewHTTPService(cfg *config.TextExtractConfig) *HTTPService {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &HTTPService{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *HTTPService) ExtractText(ctx context.Context, in port.ExtractInput) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.endpoint, bytes.NewReader(in.FileBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", in.ContentType)
	req.Header.Set("X-Filename", in.Filename)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling text extraction service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("text extraction service error (status %d): %s", resp.StatusCode, string(body))
	}
	return string(body), nil
}
