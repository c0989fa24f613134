package extractor

import "imidok/internal/domain"

// SKTTRecord holds the fields extracted from a residence registration card.
// Nil means the pattern for that field did not match.
type SKTTRecord struct {
	NIK            *string
	Name           *string
	Gender         *string
	PlaceOfBirth   *string
	DateOfBirth    *string
	Nationality    *string
	Occupation     *string
	Address        *string
	KITASKITAP     *string
	PassportExpiry *string
	DateIssue      *string
}

func (r *SKTTRecord) Layout() domain.LayoutKind { return domain.LayoutSKTT }

func (r *SKTTRecord) Fields() map[string]*string {
	tag := string(domain.LayoutSKTT)
	return map[string]*string{
		"NIK":             r.NIK,
		"Name":            r.Name,
		"Jenis Kelamin":   r.Gender,
		"Place of Birth":  r.PlaceOfBirth,
		"Date of Birth":   r.DateOfBirth,
		"Nationality":     r.Nationality,
		"Occupation":      r.Occupation,
		"Address":         r.Address,
		"KITAS/KITAP":     r.KITASKITAP,
		"Passport Expiry": r.PassportExpiry,
		"Date Issue":      r.DateIssue,
		domain.TagField:   &tag,
	}
}

// EVLNRecord holds the fields extracted from an exit visa notice.
type EVLNRecord struct {
	Name           *string
	PlaceOfBirth   *string
	DateOfBirth    *string
	PassportNo     *string
	PassportExpiry *string
	DateIssue      *string
}

func (r *EVLNRecord) Layout() domain.LayoutKind { return domain.LayoutEVLN }

func (r *EVLNRecord) Fields() map[string]*string {
	tag := string(domain.LayoutEVLN)
	return map[string]*string{
		"Name":            r.Name,
		"Place of Birth":  r.PlaceOfBirth,
		"Date of Birth":   r.DateOfBirth,
		"Passport No":     r.PassportNo,
		"Passport Expiry": r.PassportExpiry,
		"Date Issue":      r.DateIssue,
		domain.TagField:   &tag,
	}
}

// StayPermitRecord holds the fields of the permit-card layouts. ITAS and ITK
// cards share one shape and one extractor; only the tag differs.
type StayPermitRecord struct {
	Kind             domain.LayoutKind
	Name             *string
	PermitNumber     *string
	StayPermitExpiry *string
	PlaceDateOfBirth *string
	PassportNumber   *string
	PassportExpiry   *string
	Nationality      *string
	Gender           *string
	Address          *string
	Occupation       *string
	Guarantor        *string
	DateIssue        *string
}

func (r *StayPermitRecord) Layout() domain.LayoutKind { return r.Kind }

func (r *StayPermitRecord) Fields() map[string]*string {
	tag := string(r.Kind)
	return map[string]*string{
		"Name":                  r.Name,
		"Permit Number":         r.PermitNumber,
		"Stay Permit Expiry":    r.StayPermitExpiry,
		"Place & Date of Birth": r.PlaceDateOfBirth,
		"Passport Number":       r.PassportNumber,
		"Passport Expiry":       r.PassportExpiry,
		"Nationality":           r.Nationality,
		"Gender":                r.Gender,
		"Address":               r.Address,
		"Occupation":            r.Occupation,
		"Guarantor":             r.Guarantor,
		"Date Issue":            r.DateIssue,
		domain.TagField:         &tag,
	}
}

// DecreeRecord holds the fields of the free-text decree layouts. The worker
// notification and compensation fund decrees share one shape and one
// extractor; only the tag differs.
type DecreeRecord struct {
	Kind                domain.LayoutKind
	NomorKeputusan      *string
	NamaTKA             *string
	TempatTanggalLahir  *string
	Kewarganegaraan     *string
	AlamatTempatTinggal *string
	NomorPaspor         *string
	Jabatan             *string
	LokasiKerja         *string
	Berlaku             *string
	DateIssue           *string
}

func (r *DecreeRecord) Layout() domain.LayoutKind { return r.Kind }

func (r *DecreeRecord) Fields() map[string]*string {
	tag := string(r.Kind)
	return map[string]*string{
		"Nomor Keputusan":       r.NomorKeputusan,
		"Nama TKA":              r.NamaTKA,
		"Tempat/Tanggal Lahir":  r.TempatTanggalLahir,
		"Kewarganegaraan":       r.Kewarganegaraan,
		"Alamat Tempat Tinggal": r.AlamatTempatTinggal,
		"Nomor Paspor":          r.NomorPaspor,
		"Jabatan":               r.Jabatan,
		"Lokasi Kerja":          r.LokasiKerja,
		"Berlaku":               r.Berlaku,
		"Date Issue":            r.DateIssue,
		domain.TagField:         &tag,
	}
}
