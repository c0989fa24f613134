package extractor

import (
	"regexp"
	"strings"

	"imidok/internal/domain"
)

// Different layouts name the identifying document number differently; first
// populated field in this order wins.
var passportFields = []string{"Passport Number", "Nomor Paspor", "Passport No", "KITAS/KITAP"}

var nameFields = []string{"Name", "Nama TKA"}

// filenameDisallowed matches characters outside word chars, whitespace, and
// hyphens.
var filenameDisallowed = regexp.MustCompile(`[^\w\s-]`)

// SynthesizeName derives a human-readable output filename from a record's
// flattened fields. Selected parts are sanitized and truncated independently;
// when both parts are empty or excluded the literal fallback "RENAMED.pdf" is
// returned. Collisions across documents are the export layer's problem, not
// this function's.
func SynthesizeName(fields map[string]*string, useName, usePassport bool) string {
	var parts []string
	if useName {
		if v := firstNonEmpty(fields, nameFields); v != "" {
			if p := sanitizeNamePart(v); p != "" {
				parts = append(parts, p)
			}
		}
	}
	if usePassport {
		if v := firstNonEmpty(fields, passportFields); v != "" {
			if p := sanitizeNamePart(v); p != "" {
				parts = append(parts, p)
			}
		}
	}
	if len(parts) == 0 {
		return "RENAMED.pdf"
	}
	return strings.Join(parts, " ") + ".pdf"
}

// SynthesizeRecordName is SynthesizeName over a Record.
func SynthesizeRecordName(rec domain.Record, useName, usePassport bool) string {
	return SynthesizeName(rec.Fields(), useName, usePassport)
}

func firstNonEmpty(fields map[string]*string, keys []string) string {
	for _, k := range keys {
		if v := fields[k]; v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

// sanitizeNamePart strips a value down to word characters, spaces, and
// hyphens, then hard-truncates to 30 characters.
func sanitizeNamePart(v string) string {
	v = strings.NewReplacer("\n", " ", "\r", " ").Replace(v)
	v = strings.TrimSpace(filenameDisallowed.ReplaceAllString(v, ""))
	if len(v) > 30 {
		v = strings.TrimSpace(v[:30])
	}
	return v
}
