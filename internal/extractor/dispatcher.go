package extractor

import (
	"strings"

	"imidok/internal/domain"
	"imidok/internal/normalizer"
)

// Extractor turns raw document text into a layout-tagged record. Extractors
// never fail: an absent field is a nil value, and a record with every field
// nil is valid output.
type Extractor interface {
	Extract(text string) domain.Record
}

// Dispatcher is the public entry point of the extraction pipeline. It
// resolves the layout (classifying when the hint is "auto") and routes the
// text to the matching extractor.
type Dispatcher struct {
	extractors map[domain.LayoutKind]Extractor
}

// NewDispatcher creates a Dispatcher with all six layout extractors wired to
// the given normalizer.
func NewDispatcher(norm normalizer.Normalizer) *Dispatcher {
	return &Dispatcher{
		extractors: map[domain.LayoutKind]Extractor{
			domain.LayoutSKTT:       NewSKTTExtractor(norm),
			domain.LayoutEVLN:       NewEVLNExtractor(norm),
			domain.LayoutITAS:       NewStayPermitExtractor(norm, domain.LayoutITAS),
			domain.LayoutITK:        NewStayPermitExtractor(norm, domain.LayoutITK),
			domain.LayoutNotifikasi: NewDecreeExtractor(norm, domain.LayoutNotifikasi),
			domain.LayoutDKPTKA:     NewDecreeExtractor(norm, domain.LayoutDKPTKA),
		},
	}
}

// Dispatch extracts a record from text. An "auto" hint runs the classifier;
// any other hint is trusted as-is, without re-validation against the content.
// Unknown or unsupported layouts yield an UnsupportedLayoutError, and empty
// text yields ErrEmptyDocument; neither produces a record.
func (d *Dispatcher) Dispatch(text, layoutHint string) (domain.Record, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyDocument
	}

	var kind domain.LayoutKind
	if strings.EqualFold(strings.TrimSpace(layoutHint), domain.LayoutHintAuto) || layoutHint == "" {
		kind = Classify(text)
	} else {
		parsed, ok := domain.ParseLayoutKind(layoutHint)
		if !ok {
			return nil, domain.ErrInvalidLayoutHint
		}
		kind = parsed
	}

	ext, ok := d.extractors[kind]
	if !ok {
		return nil, &domain.UnsupportedLayoutError{Kind: kind}
	}
	return ext.Extract(text), nil
}
