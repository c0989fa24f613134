package port

import "context"

// ExtractInput carries one uploaded file to the text extraction backend.
type ExtractInput struct {
	FileBytes   []byte
	ContentType string
	Filename    string
}

// TextExtractor linearizes a document (PDF, image, scan) into plain text.
// Implementations talk to an external OCR/parsing service or, for already
// plain files, pass the bytes through.
type TextExtractor interface {
	ExtractText(ctx context.Context, in ExtractInput) (string, error)
}
