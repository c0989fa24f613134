package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLayoutKind(t *testing.T) {
	tests := []struct {
		in   string
		want LayoutKind
		ok   bool
	}{
		{"SKTT", LayoutSKTT, true},
		{"sktt", LayoutSKTT, true},
		{" itk ", LayoutITK, true},
		{"NOTIFIKASI", LayoutNotifikasi, true},
		{"auto", LayoutUnknown, false},
		{"PASSPORT", LayoutUnknown, false},
		{"", LayoutUnknown, false},
	}
	for _, tt := range tests {
		got, ok := ParseLayoutKind(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseExportFormat(t *testing.T) {
	for _, in := range []string{"", "xlsx", "XLSX", "excel"} {
		got, ok := ParseExportFormat(in)
		assert.True(t, ok, "input %q", in)
		assert.Equal(t, ExportFormatXLSX, got)
	}

	got, ok := ParseExportFormat("csv")
	assert.True(t, ok)
	assert.Equal(t, ExportFormatCSV, got)

	_, ok = ParseExportFormat("pdf")
	assert.False(t, ok)
}

func TestLayoutFieldOrderAliases(t *testing.T) {
	assert.Equal(t, LayoutFieldOrder[LayoutITAS], LayoutFieldOrder[LayoutITK])
	assert.Equal(t, LayoutFieldOrder[LayoutNotifikasi], LayoutFieldOrder[LayoutDKPTKA])
	for _, kind := range SupportedLayouts {
		order := LayoutFieldOrder[kind]
		assert.NotEmpty(t, order, "layout %s", kind)
		assert.Equal(t, TagField, order[len(order)-1], "layout %s", kind)
	}
}
