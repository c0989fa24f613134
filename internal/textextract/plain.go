package textextract

import (
	"context"

	"imidok/internal/port"
)

// Plain implements port.TextExtractor for inputs that already are plain text
// (.txt uploads, the offline CLI). The file bytes are returned verbatim.
type Plain struct{}

func (Plain) ExtractText(_ context.Context, in port.ExtractInput) (string, error) {
	return string(in.FileBytes), nil
}
