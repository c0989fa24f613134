package extractor

import (
	"regexp"

	"imidok/internal/domain"
	"imidok/internal/normalizer"
)

// Rule table for the free-text decree layouts. Labels are Indonesian and run
// to end of line.
var decreeRules = struct {
	nomor, nama, birth, nationality, address, passport, position, workSite fieldRule
}{
	nomor:       fieldRule{"Nomor Keputusan", regexp.MustCompile(`(?i)NOMOR\s+([A-Z0-9./-]+)`), cleanRaw},
	nama:        fieldRule{"Nama TKA", regexp.MustCompile(`(?i)Nama TKA\s*:\s*(.*)`), cleanRaw},
	birth:       fieldRule{"Tempat/Tanggal Lahir", regexp.MustCompile(`(?i)Tempat/Tanggal Lahir\s*:\s*(.*)`), cleanRaw},
	nationality: fieldRule{"Kewarganegaraan", regexp.MustCompile(`(?i)Kewarganegaraan\s*:\s*(.*)`), cleanRaw},
	address:     fieldRule{"Alamat Tempat Tinggal", regexp.MustCompile(`(?i)Alamat Tempat Tinggal\s*:\s*(.*)`), cleanRaw},
	passport:    fieldRule{"Nomor Paspor", regexp.MustCompile(`(?i)Nomor Paspor\s*:\s*(.*)`), cleanRaw},
	position:    fieldRule{"Jabatan", regexp.MustCompile(`(?i)Jabatan\s*:\s*(.*)`), cleanRaw},
	workSite:    fieldRule{"Lokasi Kerja", regexp.MustCompile(`(?i)Lokasi Kerja\s*:\s*(.*)`), cleanRaw},
}

var (
	decreeValidity = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Berlaku\s*:?\s*(\d{2}[-/]\d{2}[-/]\d{4})\s*(?:s\.?d\.?|sampai dengan)?\s*(\d{2}[-/]\d{2}[-/]\d{4})`),
		regexp.MustCompile(`(?i)Tanggal Berlaku\s*:?\s*(\d{2}[-/]\d{2}[-/]\d{4})\s*s\.?d\.?\s*(\d{2}[-/]\d{2}[-/]\d{4})`),
	}
	// Issue date printed in prose with an Indonesian month name, e.g.
	// "Pada tanggal : 14 Maret 2023". The month word must be one of the
	// twelve known names; anything else leaves the field unset.
	decreeIssueDate = regexp.MustCompile(`(?i)Pada tanggal\s*:\s*(\d{1,2})\s+(Januari|Februari|Maret|April|Mei|Juni|Juli|Agustus|September|Oktober|November|Desember)\s+(\d{4})`)
)

// DecreeExtractor extracts the worker notification and compensation fund
// decrees. The two layouts carry identical fields, so one implementation
// serves both, parameterized by the layout tag.
type DecreeExtractor struct {
	norm normalizer.Normalizer
	kind domain.LayoutKind
}

// NewDecreeExtractor creates a decree extractor tagged with kind (NOTIFIKASI
// or DKPTKA).
func NewDecreeExtractor(norm normalizer.Normalizer, kind domain.LayoutKind) *DecreeExtractor {
	return &DecreeExtractor{norm: norm, kind: kind}
}

func (e *DecreeExtractor) Extract(text string) domain.Record {
	rec := &DecreeRecord{
		Kind:                e.kind,
		NomorKeputusan:      decreeRules.nomor.capture(e.norm, text),
		NamaTKA:             decreeRules.nama.capture(e.norm, text),
		TempatTanggalLahir:  decreeRules.birth.capture(e.norm, text),
		Kewarganegaraan:     decreeRules.nationality.capture(e.norm, text),
		AlamatTempatTinggal: decreeRules.address.capture(e.norm, text),
		NomorPaspor:         decreeRules.passport.capture(e.norm, text),
		Jabatan:             decreeRules.position.capture(e.norm, text),
		LokasiKerja:         decreeRules.workSite.capture(e.norm, text),
	}

	for _, p := range decreeValidity {
		if m := p.FindStringSubmatch(text); m != nil {
			period := e.norm.NormalizeDate(m[1]) + " - " + e.norm.NormalizeDate(m[2])
			rec.Berlaku = &period
			break
		}
	}

	if m := decreeIssueDate.FindStringSubmatch(text); m != nil {
		if month, ok := e.norm.IndonesianMonth(m[2]); ok {
			date := pad2(m[1]) + "/" + month + "/" + m[3]
			rec.DateIssue = &date
		}
	}

	return rec
}
