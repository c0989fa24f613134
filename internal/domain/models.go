package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RawDocument is one linearized document handed to the pipeline by the text
// extraction collaborator. Immutable for the duration of one extraction call.
type RawDocument struct {
	// Source identifies the document to the caller (usually the upload filename).
	Source string
	// Text is the flat, already-linearized document text.
	Text string
	// LayoutHint is a caller-supplied layout override, or "auto".
	LayoutHint string
	// FailReason, when non-empty, marks the document as failed upstream
	// (text extraction) so the batch reports it without dispatching.
	FailReason string
}

// Record is the layout-tagged result of extracting one document. Each layout
// owns its own concrete struct; there is no universal schema. Fields returns
// the flat field-name → value view consumed by the export collaborator, with
// nil meaning "pattern did not match". The view always contains the
// "Jenis Dokumen" layout tag.
type Record interface {
	Layout() LayoutKind
	Fields() map[string]*string
}

// BatchItem is one entry of a BatchResult: either a record or a failure
// reason, never both.
type BatchItem struct {
	Source string
	Status ItemStatus
	Record Record
	Reason string
}

// BatchResult is the order-preserving outcome of one batch run. Its Items
// slice has exactly one entry per input document, in submission order.
type BatchResult struct {
	Items []BatchItem
}

// Succeeded counts successful items.
func (r *BatchResult) Succeeded() int {
	n := 0
	for i := range r.Items {
		if r.Items[i].Status == ItemStatusSuccess {
			n++
		}
	}
	return n
}

// Records returns the successful records in input order.
func (r *BatchResult) Records() []Record {
	out := make([]Record, 0, len(r.Items))
	for i := range r.Items {
		if r.Items[i].Status == ItemStatusSuccess {
			out = append(out, r.Items[i].Record)
		}
	}
	return out
}

// AllFailed reports whether the batch had inputs but zero successes. An empty
// batch is not "all failed".
func (r *BatchResult) AllFailed() bool {
	return len(r.Items) > 0 && r.Succeeded() == 0
}

// TagField is the field name carrying the layout tag in every flattened record.
const TagField = "Jenis Dokumen"

// LayoutFieldOrder fixes the column order of each layout's flattened record.
// The export collaborator uses it to align heterogeneous records; the tag
// field is always last.
var LayoutFieldOrder = map[LayoutKind][]string{
	LayoutSKTT: {
		"NIK", "Name", "Jenis Kelamin", "Place of Birth", "Date of Birth",
		"Nationality", "Occupation", "Address", "KITAS/KITAP",
		"Passport Expiry", "Date Issue", TagField,
	},
	LayoutEVLN: {
		"Name", "Place of Birth", "Date of Birth", "Passport No",
		"Passport Expiry", "Date Issue", TagField,
	},
	LayoutITAS: {
		"Name", "Permit Number", "Stay Permit Expiry", "Place & Date of Birth",
		"Passport Number", "Passport Expiry", "Nationality", "Gender",
		"Address", "Occupation", "Guarantor", "Date Issue", TagField,
	},
	LayoutNotifikasi: {
		"Nomor Keputusan", "Nama TKA", "Tempat/Tanggal Lahir",
		"Kewarganegaraan", "Alamat Tempat Tinggal", "Nomor Paspor", "Jabatan",
		"Lokasi Kerja", "Berlaku", "Date Issue", TagField,
	},
}

func init() {
	// ITK shares the stay-permit shape, DKPTKA the decree shape.
	LayoutFieldOrder[LayoutITK] = LayoutFieldOrder[LayoutITAS]
	LayoutFieldOrder[LayoutDKPTKA] = LayoutFieldOrder[LayoutNotifikasi]
}

// ExtractionJob is the persisted audit record of one batch run.
type ExtractionJob struct {
	ID           uuid.UUID    `db:"id"`
	Status       JobStatus    `db:"status"`
	LayoutHint   string       `db:"layout_hint"`
	ExportFormat ExportFormat `db:"export_format"`
	TotalItems   int          `db:"total_items"`
	Succeeded    int          `db:"succeeded"`
	Failed       int          `db:"failed"`
	ArtifactKey  string       `db:"artifact_key"`
	CreatedAt    time.Time    `db:"created_at"`
}

// ExtractionJobItem is one persisted per-document outcome within a job.
// Fields holds the flattened record as JSONB; null values mark pattern misses.
type ExtractionJobItem struct {
	ID        uuid.UUID       `db:"id"`
	JobID     uuid.UUID       `db:"job_id"`
	Position  int             `db:"position"`
	Source    string          `db:"source"`
	Layout    LayoutKind      `db:"layout"`
	Status    ItemStatus      `db:"status"`
	Reason    string          `db:"reason"`
	Fields    json.RawMessage `db:"fields"`
	CreatedAt time.Time       `db:"created_at"`
}
