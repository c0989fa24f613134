// Package normalizer provides the stateless string-cleaning helpers shared by
// every layout extractor: field sanitization, date reformatting, and
// composite place/date splitting. All functions are pure and total.
package normalizer

import (
	"regexp"
	"strings"
)

// Normalizer is the interface extractors depend on, so tests can substitute
// the implementation.
type Normalizer interface {
	// CleanField strips label artifacts that capture groups sometimes swallow,
	// removes everything outside [A-Za-z0-9 ,./-], and collapses whitespace.
	// stripPeriods additionally removes '.' (names and place names, where
	// abbreviation periods are noise). Unrecognized or empty input yields "".
	CleanField(raw string, stripPeriods bool) string

	// NormalizeDate rewrites DD-MM-YYYY or DD/MM/YYYY to DD/MM/YYYY. Input
	// that does not contain a two/two/four digit pattern is returned
	// unchanged, so callers must not assume the output is normalized.
	NormalizeDate(raw string) string

	// SplitPlaceAndDate splits a "<place>, <date>" composite on the first
	// ", " boundary. When the composite does not have exactly two parts the
	// original text is returned with a nil date (a parse miss, not an error).
	SplitPlaceAndDate(composite string) (place string, date *string)

	// EnglishMonth maps an English month name to its two-digit number.
	EnglishMonth(name string) (string, bool)

	// IndonesianMonth maps an Indonesian month name (case-insensitive) to its
	// two-digit number.
	IndonesianMonth(name string) (string, bool)
}

// labelArtifacts matches label fragments that bleed across line breaks into
// neighboring capture groups.
var labelArtifacts = regexp.MustCompile(`Reference No|Payment Receipt No|Jenis Kelamin|Kewarganegaraan|Pekerjaan|Alamat`)

// disallowed matches every character outside the retained field alphabet.
var disallowed = regexp.MustCompile(`[^A-Za-z0-9\s,./-]`)

// datePattern matches a DD-MM-YYYY or DD/MM/YYYY shaped date anywhere in the
// input.
var datePattern = regexp.MustCompile(`(\d{2})[-/](\d{2})[-/](\d{4})`)

var englishMonths = map[string]string{
	"January": "01", "February": "02", "March": "03", "April": "04",
	"May": "05", "June": "06", "July": "07", "August": "08",
	"September": "09", "October": "10", "November": "11", "December": "12",
}

var indonesianMonths = map[string]string{
	"januari": "01", "februari": "02", "maret": "03", "april": "04",
	"mei": "05", "juni": "06", "juli": "07", "agustus": "08",
	"september": "09", "oktober": "10", "november": "11", "desember": "12",
}

type textNormalizer struct{}

// New returns the default Normalizer implementation.
func New() Normalizer {
	return textNormalizer{}
}

func (textNormalizer) CleanField(raw string, stripPeriods bool) string {
	s := labelArtifacts.ReplaceAllString(raw, "")
	if stripPeriods {
		s = strings.ReplaceAll(s, ".", "")
	}
	s = disallowed.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

func (textNormalizer) NormalizeDate(raw string) string {
	if raw == "" {
		return ""
	}
	m := datePattern.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	return m[1] + "/" + m[2] + "/" + m[3]
}

func (n textNormalizer) SplitPlaceAndDate(composite string) (string, *string) {
	parts := strings.SplitN(composite, ", ", 2)
	if len(parts) == 2 && !strings.Contains(parts[1], ", ") {
		date := n.NormalizeDate(strings.TrimSpace(parts[1]))
		return strings.TrimSpace(parts[0]), &date
	}
	return composite, nil
}

func (textNormalizer) EnglishMonth(name string) (string, bool) {
	num, ok := englishMonths[name]
	return num, ok
}

func (textNormalizer) IndonesianMonth(name string) (string, bool) {
	num, ok := indonesianMonths[strings.ToLower(name)]
	return num, ok
}
