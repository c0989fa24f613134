package extractor

import (
	"regexp"
	"strings"

	"imidok/internal/domain"
	"imidok/internal/normalizer"
)

// The exit-visa notice is a prose letter rather than a labeled card, so this
// extractor works line by line instead of over the whole text.
var (
	evlnSalutation  = regexp.MustCompile(`(?i)Dear\s+(Mr\.|Ms\.|Sir|Madam)?`)
	evlnNameLabel   = regexp.MustCompile(`(?i)\bName\b|\bNama\b`)
	evlnPOBLabel    = regexp.MustCompile(`(?i)\bPlace of Birth\b|\bTempat Lahir\b`)
	evlnDOBLabel    = regexp.MustCompile(`(?i)\bDate of Birth\b|\bTanggal Lahir\b`)
	evlnPassLabel   = regexp.MustCompile(`(?i)\bPassport No\b`)
	evlnExpiryLabel = regexp.MustCompile(`(?i)\bPassport Expiry\b`)

	evlnDate     = regexp.MustCompile(`(\d{2}/\d{2}/\d{4}|\d{2}-\d{2}-\d{4})`)
	evlnPassport = regexp.MustCompile(`\b([A-Z0-9]+)\b`)
	// Trailing "Visa Type ..." bleeds into the place-of-birth line on some
	// notices.
	evlnVisaTypeTail = regexp.MustCompile(`\s*Visa\s*Type\s*.*`)

	evlnIssuePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Date\s+of\s+Issue|Issue\s+Date|Issued\s+on|Tanggal\s+Penerbitan)\s*:?\s*(\d{1,2}[/\-]\d{1,2}[/\-]\d{4})`),
		regexp.MustCompile(`(?i)(?:Issued|Diterbitkan)\s*:?\s*(\d{1,2}[/\-]\d{1,2}[/\-]\d{4})`),
	}
)

// EVLNExtractor extracts the exit-visa notice layout.
type EVLNExtractor struct {
	norm normalizer.Normalizer
}

// NewEVLNExtractor creates an EVLNExtractor using the given normalizer.
func NewEVLNExtractor(norm normalizer.Normalizer) *EVLNExtractor {
	return &EVLNExtractor{norm: norm}
}

func (e *EVLNExtractor) Extract(text string) domain.Record {
	rec := &EVLNRecord{}
	lines := strings.Split(text, "\n")

	// The addressee's name is the first non-empty line after the salutation.
	// Length bounds of 4..49 guard against capturing a blank or boilerplate
	// line.
	for i, line := range lines {
		if !evlnSalutation.MatchString(line) {
			continue
		}
		if i+1 < len(lines) {
			candidate := strings.TrimSpace(lines[i+1])
			if len(candidate) > 3 && len(candidate) < 50 {
				name := e.norm.CleanField(candidate, true)
				rec.Name = &name
			}
		}
		break
	}

	for _, line := range lines {
		switch {
		case rec.Name == nil && evlnNameLabel.MatchString(line):
			if _, after, ok := strings.Cut(line, ":"); ok {
				name := e.norm.CleanField(after, true)
				rec.Name = &name
			}
		case evlnPOBLabel.MatchString(line):
			if _, after, ok := strings.Cut(line, ":"); ok {
				pob := evlnVisaTypeTail.ReplaceAllString(strings.TrimSpace(after), "")
				cleaned := e.norm.CleanField(pob, true)
				rec.PlaceOfBirth = &cleaned
			}
		case evlnDOBLabel.MatchString(line):
			if m := evlnDate.FindStringSubmatch(line); m != nil {
				date := e.norm.NormalizeDate(m[1])
				rec.DateOfBirth = &date
			}
		case evlnPassLabel.MatchString(line):
			if m := evlnPassport.FindStringSubmatch(line); m != nil {
				rec.PassportNo = &m[1]
			}
		case evlnExpiryLabel.MatchString(line):
			if m := evlnDate.FindStringSubmatch(line); m != nil {
				date := e.norm.NormalizeDate(m[1])
				rec.PassportExpiry = &date
			}
		}
	}

	if rec.DateIssue == nil {
		for _, p := range evlnIssuePatterns {
			if m := p.FindStringSubmatch(text); m != nil {
				date := e.norm.NormalizeDate(m[1])
				rec.DateIssue = &date
				break
			}
		}
	}

	return rec
}
