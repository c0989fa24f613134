package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"imidok/internal/domain"
)

// Row couples one successfully extracted document with its export metadata.
type Row struct {
	// Source is the original upload filename.
	Source string
	// NewName is the synthesized filename, empty when renaming was not requested.
	NewName string
	Record  domain.Record
}

const (
	colSource  = "Original Filename"
	colNewName = "New Filename"
)

// Columns computes the header for a heterogeneous batch: the source column,
// the new-name column when any row carries one, then the union of the layout
// field orders in first-seen order. Records of the same layout therefore
// always land under the same columns, whatever the batch mix.
func Columns(rows []Row) []string {
	cols := []string{colSource}
	for _, r := range rows {
		if r.NewName != "" {
			cols = append(cols, colNewName)
			break
		}
	}

	seen := make(map[string]bool, 16)
	seenLayout := make(map[domain.LayoutKind]bool, len(domain.SupportedLayouts))
	for _, r := range rows {
		if r.Record == nil {
			continue
		}
		kind := r.Record.Layout()
		if seenLayout[kind] {
			continue
		}
		seenLayout[kind] = true
		for _, field := range domain.LayoutFieldOrder[kind] {
			if !seen[field] {
				seen[field] = true
				cols = append(cols, field)
			}
		}
	}
	return cols
}

// cellValues maps one row onto the header. Pattern misses and fields foreign
// to the row's layout both render as empty cells.
func cellValues(cols []string, r Row) []string {
	fields := r.Record.Fields()
	out := make([]string, len(cols))
	for i, c := range cols {
		switch c {
		case colSource:
			out[i] = r.Source
		case colNewName:
			out[i] = r.NewName
		default:
			if v := fields[c]; v != nil {
				out[i] = *v
			}
		}
	}
	return out
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a label for use in Content-Disposition. Replaces
// non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a timestamped download filename, e.g.
// "extracted_data_20240315_104500.xlsx".
func BuildFilename(base, ext string) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(base), time.Now().Format("20060102_150405"), ext)
}
