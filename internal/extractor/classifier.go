package extractor

import (
	"regexp"

	"imidok/internal/domain"
)

// markerRule pairs a layout with the heading phrase unique to it.
type markerRule struct {
	kind domain.LayoutKind
	re   *regexp.Regexp
}

// markerRules is the classifier's fixed priority order. Order matters: the
// stay-permit and visit-permit markers can co-occur in boilerplate, so later
// rules are only consulted when every earlier rule misses.
var markerRules = []markerRule{
	{domain.LayoutSKTT, regexp.MustCompile(`(?i)SURAT KETERANGAN TENAGA KERJA TERDAFTAR`)},
	{domain.LayoutEVLN, regexp.MustCompile(`(?i)ENTRY VISA|VISA ENTRY`)},
	{domain.LayoutITAS, regexp.MustCompile(`(?i)STAY PERMIT|PERMIT TO STAY|IZIN TINGGAL`)},
	{domain.LayoutITK, regexp.MustCompile(`(?i)IZIN TINGGAL KUNJUNGAN|VISIT PERMIT`)},
	{domain.LayoutNotifikasi, regexp.MustCompile(`(?i)NOTIFIKASI`)},
	{domain.LayoutDKPTKA, regexp.MustCompile(`(?i)DKPTKA`)},
}

// Classify inspects raw text for layout-identifying markers and returns the
// first matching layout, or Unknown. It never fails; Unknown is the expected
// terminal outcome for unsupported documents.
func Classify(text string) domain.LayoutKind {
	for _, rule := range markerRules {
		if rule.re.MatchString(text) {
			return rule.kind
		}
	}
	return domain.LayoutUnknown
}
