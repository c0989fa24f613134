package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrEmptyDocument      = errors.New("document text is empty")
	ErrInvalidLayoutHint  = errors.New("invalid layout hint")
	ErrInvalidExportType  = errors.New("invalid export format")
	ErrNoFilesProvided    = errors.New("no files provided")
	ErrNoSuccessfulItems  = errors.New("no documents could be processed")
	ErrTextExtractFailed  = errors.New("text extraction failed")
	ErrArtifactUploadFail = errors.New("artifact upload to storage failed")
)

// UnsupportedLayoutError is returned by the dispatcher when the resolved
// layout has no extractor (including the Unknown classification outcome).
type UnsupportedLayoutError struct {
	Kind LayoutKind
}

func (e *UnsupportedLayoutError) Error() string {
	return fmt.Sprintf("unsupported document layout: %s", e.Kind)
}

// IsUnsupportedLayout reports whether err wraps an UnsupportedLayoutError.
func IsUnsupportedLayout(err error) bool {
	var ule *UnsupportedLayoutError
	return errors.As(err, &ule)
}
