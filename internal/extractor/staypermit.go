package extractor

import (
	"regexp"

	"imidok/internal/domain"
	"imidok/internal/normalizer"
)

// Rule table for the permit-card layouts. The holder's name is the all-caps
// line directly above the permit number heading.
var stayPermitRules = struct {
	name, permitNumber, stayExpiry, passportNumber, passportExpiry,
	nationality, gender, address, occupation, guarantor fieldRule
}{
	name:           fieldRule{"Name", regexp.MustCompile(`([A-Z\s]+)\nPERMIT NUMBER`), cleanRaw},
	permitNumber:   fieldRule{"Permit Number", regexp.MustCompile(`PERMIT NUMBER\s*:\s*([A-Z0-9-]+)`), cleanRaw},
	stayExpiry:     fieldRule{"Stay Permit Expiry", regexp.MustCompile(`STAY PERMIT EXPIRY\s*:\s*([\d/]+)`), cleanDate},
	passportNumber: fieldRule{"Passport Number", regexp.MustCompile(`Passport Number\s*: ([A-Z0-9]+)`), cleanRaw},
	passportExpiry: fieldRule{"Passport Expiry", regexp.MustCompile(`Passport Expiry\s*: ([\d-]+)`), cleanDate},
	nationality:    fieldRule{"Nationality", regexp.MustCompile(`Nationality\s*: ([A-Z]+)`), cleanRaw},
	gender:         fieldRule{"Gender", regexp.MustCompile(`Gender\s*: ([A-Z]+)`), cleanRaw},
	address:        fieldRule{"Address", regexp.MustCompile(`Address\s*:\s*(.+)`), cleanRaw},
	occupation:     fieldRule{"Occupation", regexp.MustCompile(`Occupation\s*:\s*(.+)`), cleanRaw},
	guarantor:      fieldRule{"Guarantor", regexp.MustCompile(`Guarantor\s*:\s*(.+)`), cleanRaw},
}

var (
	stayPermitBirth = regexp.MustCompile(`Place / Date of Birth\s*.*:\s*([A-Za-z\s]+)\s*/\s*([\d-]+)`)
	// Issue date printed in prose, e.g. "Monday, 14 March 2023".
	stayPermitProseDate = regexp.MustCompile(`([A-Za-z]+),\s*(\d{1,2})\s+([A-Za-z]+)\s+(\d{4})`)
	// Last-resort scan for any date-shaped token. Must only run after the
	// prose pattern misses, or it would pick up the validity-period date.
	stayPermitAnyDate = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
)

// StayPermitExtractor extracts the permit-card layouts. ITAS and ITK cards
// carry identical fields, so one implementation serves both, parameterized by
// the layout tag.
type StayPermitExtractor struct {
	norm normalizer.Normalizer
	kind domain.LayoutKind
}

// NewStayPermitExtractor creates a permit-card extractor tagged with kind
// (ITAS or ITK).
func NewStayPermitExtractor(norm normalizer.Normalizer, kind domain.LayoutKind) *StayPermitExtractor {
	return &StayPermitExtractor{norm: norm, kind: kind}
}

func (e *StayPermitExtractor) Extract(text string) domain.Record {
	rec := &StayPermitRecord{
		Kind:             e.kind,
		Name:             stayPermitRules.name.capture(e.norm, text),
		PermitNumber:     stayPermitRules.permitNumber.capture(e.norm, text),
		StayPermitExpiry: stayPermitRules.stayExpiry.capture(e.norm, text),
		PassportNumber:   stayPermitRules.passportNumber.capture(e.norm, text),
		PassportExpiry:   stayPermitRules.passportExpiry.capture(e.norm, text),
		Nationality:      stayPermitRules.nationality.capture(e.norm, text),
		Gender:           stayPermitRules.gender.capture(e.norm, text),
		Address:          stayPermitRules.address.capture(e.norm, text),
		Occupation:       stayPermitRules.occupation.capture(e.norm, text),
		Guarantor:        stayPermitRules.guarantor.capture(e.norm, text),
	}

	if m := stayPermitBirth.FindStringSubmatch(text); m != nil {
		combined := postProcess(e.norm, m[1], cleanRaw) + ", " + e.norm.NormalizeDate(m[2])
		rec.PlaceDateOfBirth = &combined
	}

	rec.DateIssue = e.issueDate(text)
	return rec
}

// issueDate prefers the prose "<weekday>, <day> <month> <year>" form near the
// signature block, translating the English month name; only when that misses
// does it fall back to the first date-shaped token anywhere in the text.
func (e *StayPermitExtractor) issueDate(text string) *string {
	if m := stayPermitProseDate.FindStringSubmatch(text); m != nil {
		month := m[3]
		if num, ok := e.norm.EnglishMonth(month); ok {
			month = num
		}
		date := e.norm.NormalizeDate(pad2(m[2]) + "/" + month + "/" + m[4])
		return &date
	}
	if m := stayPermitAnyDate.FindStringSubmatch(text); m != nil {
		date := e.norm.NormalizeDate(m[0])
		return &date
	}
	return nil
}
