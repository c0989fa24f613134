package extractor

import (
	"regexp"
	"strings"

	"imidok/internal/domain"
	"imidok/internal/normalizer"
)

// skttRules is the labeled-pattern table for the residence registration card.
// Labels are bilingual ("Nama/Name") and the delimiter is a colon.
var skttRules = struct {
	nik, name, gender, birth, nationality, occupation, address, kitas, expiry fieldRule
}{
	nik:         fieldRule{"NIK", regexp.MustCompile(`NIK/Number of Population Identity\s*:\s*(\d+)`), cleanRaw},
	name:        fieldRule{"Name", regexp.MustCompile(`Nama/Name\s*:\s*([\w\s]+)`), cleanName},
	gender:      fieldRule{"Jenis Kelamin", regexp.MustCompile(`Jenis Kelamin/Sex\s*:\s*(MALE|FEMALE)`), cleanRaw},
	birth:       fieldRule{"Tempat/Tgl Lahir", regexp.MustCompile(`Tempat/Tgl Lahir\s*:\s*([\w\s,0-9-]+)`), cleanRaw},
	nationality: fieldRule{"Nationality", regexp.MustCompile(`Kewarganegaraan/Nationality\s*:\s*([\w\s]+)`), cleanText},
	occupation:  fieldRule{"Occupation", regexp.MustCompile(`Pekerjaan/Occupation\s*:\s*([\w\s]+)`), cleanText},
	// The address capture spans line breaks so wrapped addresses survive;
	// field cleaning collapses the newlines afterwards.
	address: fieldRule{"Address", regexp.MustCompile(`Alamat/Address\s*:\s*([\w\s,./-]+)`), cleanText},
	kitas:   fieldRule{"KITAS/KITAP", regexp.MustCompile(`Nomor KITAP/KITAS Number\s*:\s*([\w-]+)`), cleanText},
	expiry:  fieldRule{"Passport Expiry", regexp.MustCompile(`Berlaku Hingga s\.d/Expired date\s*:\s*([\d-]+)`), cleanDate},
}

// skttSignOff marks the signature block; the issue date sits on the line
// directly above it as "<LOCATION>, <DD-MM-YYYY>".
const skttSignOff = "KEPALA DINAS"

var skttIssueLine = regexp.MustCompile(`([A-Z\s]+),\s*(\d{2}-\d{2}-\d{4})`)

// SKTTExtractor extracts the residence registration card layout.
type SKTTExtractor struct {
	norm normalizer.Normalizer
}

// NewSKTTExtractor creates an SKTTExtractor using the given normalizer.
func NewSKTTExtractor(norm normalizer.Normalizer) *SKTTExtractor {
	return &SKTTExtractor{norm: norm}
}

func (e *SKTTExtractor) Extract(text string) domain.Record {
	rec := &SKTTRecord{
		NIK:            skttRules.nik.capture(e.norm, text),
		Name:           skttRules.name.capture(e.norm, text),
		Gender:         skttRules.gender.capture(e.norm, text),
		Nationality:    skttRules.nationality.capture(e.norm, text),
		Occupation:     skttRules.occupation.capture(e.norm, text),
		Address:        skttRules.address.capture(e.norm, text),
		KITASKITAP:     skttRules.kitas.capture(e.norm, text),
		PassportExpiry: skttRules.expiry.capture(e.norm, text),
	}

	if composite := skttRules.birth.capture(e.norm, text); composite != nil {
		place, date := e.norm.SplitPlaceAndDate(*composite)
		cleaned := e.norm.CleanField(place, true)
		rec.PlaceOfBirth = &cleaned
		rec.DateOfBirth = date
	}

	rec.DateIssue = e.issueDate(text)
	return rec
}

// issueDate scans backward from the signing-office marker: the line directly
// above the first occurrence carries the issue location and date. Any
// variation in the signature block silently yields nil.
func (e *SKTTExtractor) issueDate(text string) *string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		if !strings.Contains(strings.ToUpper(line), skttSignOff) {
			continue
		}
		if i == 0 {
			return nil
		}
		m := skttIssueLine.FindStringSubmatch(lines[i-1])
		if m == nil {
			return nil
		}
		date := e.norm.NormalizeDate(m[2])
		return &date
	}
	return nil
}
