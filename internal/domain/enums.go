package domain

import "strings"

// LayoutKind identifies a known document layout.
type LayoutKind string

const (
	LayoutSKTT       LayoutKind = "SKTT"       // Surat Keterangan Tenaga Kerja Terdaftar (residence registration card)
	LayoutEVLN       LayoutKind = "EVLN"       // Exit Visa Luar Negeri notice
	LayoutITAS       LayoutKind = "ITAS"       // Izin Tinggal Terbatas (limited stay permit card)
	LayoutITK        LayoutKind = "ITK"        // Izin Tinggal Kunjungan (visit stay permit card)
	LayoutNotifikasi LayoutKind = "NOTIFIKASI" // foreign worker notification decree
	LayoutDKPTKA     LayoutKind = "DKPTKA"     // worker compensation fund decree
	LayoutUnknown    LayoutKind = "UNKNOWN"
)

// LayoutHintAuto asks the dispatcher to run the classifier.
const LayoutHintAuto = "auto"

// SupportedLayouts lists every layout the extraction pipeline understands,
// in classifier priority order.
var SupportedLayouts = []LayoutKind{
	LayoutSKTT,
	LayoutEVLN,
	LayoutITAS,
	LayoutITK,
	LayoutNotifikasi,
	LayoutDKPTKA,
}

// ParseLayoutKind resolves a caller-supplied layout hint (case-insensitive).
// The sentinel "auto" and every supported layout name are valid; anything
// else is an input-validation error owned by the caller layer.
func ParseLayoutKind(hint string) (LayoutKind, bool) {
	upper := LayoutKind(strings.ToUpper(strings.TrimSpace(hint)))
	for _, k := range SupportedLayouts {
		if upper == k {
			return k, true
		}
	}
	return LayoutUnknown, false
}

// ItemStatus represents the outcome of one batch item.
type ItemStatus string

const (
	ItemStatusSuccess ItemStatus = "success"
	ItemStatusFailed  ItemStatus = "failed"
)

// JobStatus represents the lifecycle of a recorded extraction job.
type JobStatus string

const (
	JobStatusCompleted JobStatus = "completed"
	JobStatusEmpty     JobStatus = "empty" // every item failed
)

// ExportFormat selects the bulk export artifact type.
type ExportFormat string

const (
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatCSV  ExportFormat = "csv"
)

// ParseExportFormat resolves an export_format form value, defaulting to XLSX.
func ParseExportFormat(s string) (ExportFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xlsx", "excel":
		return ExportFormatXLSX, true
	case "csv":
		return ExportFormatCSV, true
	}
	return ExportFormatXLSX, false
}

// LayoutInfo describes a supported layout for the catalog endpoint.
type LayoutInfo struct {
	Code        LayoutKind `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
}

// LayoutCatalog is the static catalog of supported document layouts.
var LayoutCatalog = []LayoutInfo{
	{LayoutSKTT, "Surat Keterangan Tenaga Kerja Terdaftar", "Indonesian temporary residence registration"},
	{LayoutEVLN, "Exit Visa Luar Negeri", "Exit visa notice for foreign nationals"},
	{LayoutITAS, "Izin Tinggal Terbatas", "Limited stay permit card"},
	{LayoutITK, "Izin Tinggal Kunjungan", "Visit stay permit card"},
	{LayoutNotifikasi, "Notifikasi TKA", "Foreign worker notification decree"},
	{LayoutDKPTKA, "Dana Kompensasi Penggunaan TKA", "Foreign worker compensation fund decree"},
}
