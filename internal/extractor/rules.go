// Package extractor implements the document classification and
// field-extraction pipeline: the classifier, one extractor per known layout,
// the dispatcher that ties them together, and filename synthesis.
//
// Extractors are table-driven: each labeled pattern is a named fieldRule
// pairing a capture regexp with a post-processing mode, so individual rules
// can be tested in isolation. A rule that does not match yields a nil field,
// never an error.
package extractor

import (
	"regexp"
	"strings"

	"imidok/internal/normalizer"
)

// cleanMode selects the post-processing step applied to a captured value.
type cleanMode int

const (
	// cleanRaw trims surrounding whitespace only.
	cleanRaw cleanMode = iota
	// cleanText runs the normalizer's field sanitization, keeping periods.
	cleanText
	// cleanName runs field sanitization and strips abbreviation periods
	// (personal names and place names).
	cleanName
	// cleanDate rewrites the capture to DD/MM/YYYY when it is date-shaped.
	cleanDate
)

// fieldRule is one labeled single-capture pattern of a layout's rule table.
type fieldRule struct {
	field string
	re    *regexp.Regexp
	mode  cleanMode
}

// capture applies the rule to text. A non-match returns nil; a match returns
// the post-processed first capture group.
func (r fieldRule) capture(norm normalizer.Normalizer, text string) *string {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	val := postProcess(norm, m[1], r.mode)
	return &val
}

func postProcess(norm normalizer.Normalizer, val string, mode cleanMode) string {
	switch mode {
	case cleanText:
		return norm.CleanField(val, false)
	case cleanName:
		return norm.CleanField(val, true)
	case cleanDate:
		return norm.NormalizeDate(strings.TrimSpace(val))
	default:
		return strings.TrimSpace(val)
	}
}

// pad2 left-pads a day-of-month to two digits.
func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
