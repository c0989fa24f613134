package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"io"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"imidok/internal/domain"
	"imidok/internal/extractor"
)

func sp(s string) *string { return &s }

func sampleRows() []Row {
	return []Row{
		{Source: "doc1.pdf", Record: &extractor.SKTTRecord{NIK: sp("123"), Name: sp("JOHN")}},
		{Source: "doc2.pdf", Record: &extractor.EVLNRecord{Name: sp("JANE"), PassportNo: sp("X1")}},
	}
}

func colIndex(t *testing.T, cols []string, name string) int {
	t.Helper()
	for i, c := range cols {
		if c == name {
			return i
		}
	}
	t.Fatalf("column %q not found in %v", name, cols)
	return -1
}

func TestColumnsUnionFirstSeenOrder(t *testing.T) {
	rows := sampleRows()
	cols := Columns(rows)

	assert.Equal(t, colSource, cols[0])
	assert.Equal(t, "NIK", cols[1], "first record's layout order comes first")

	skttLen := len(domain.LayoutFieldOrder[domain.LayoutSKTT])
	require.Len(t, cols, 1+skttLen+1)
	assert.Equal(t, "Passport No", cols[len(cols)-1], "only the second layout's unseen field is appended")
	assert.NotContains(t, cols, colNewName)
}

func TestColumnsIncludeNewNameWhenRenaming(t *testing.T) {
	rows := sampleRows()
	rows[0].NewName = "JOHN 123.pdf"

	cols := Columns(rows)
	assert.Equal(t, colNewName, cols[1])
}

func TestColumnsSameLayoutSharesColumns(t *testing.T) {
	rows := []Row{
		{Source: "a", Record: &extractor.SKTTRecord{}},
		{Source: "b", Record: &extractor.SKTTRecord{}},
	}
	cols := Columns(rows)
	assert.Len(t, cols, 1+len(domain.LayoutFieldOrder[domain.LayoutSKTT]))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRows()))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, BOM))

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, BOM)))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	nik := colIndex(t, header, "NIK")
	name := colIndex(t, header, "Name")
	tag := colIndex(t, header, domain.TagField)
	passNo := colIndex(t, header, "Passport No")

	assert.Equal(t, "doc1.pdf", records[1][0])
	assert.Equal(t, "123", records[1][nik])
	assert.Equal(t, "JOHN", records[1][name])
	assert.Equal(t, "SKTT", records[1][tag])
	assert.Equal(t, "", records[1][passNo], "foreign layout field renders empty")

	assert.Equal(t, "doc2.pdf", records[2][0])
	assert.Equal(t, "", records[2][nik])
	assert.Equal(t, "JANE", records[2][name])
	assert.Equal(t, "EVLN", records[2][tag])
	assert.Equal(t, "X1", records[2][passNo])
}

func TestWriteXLSX(t *testing.T) {
	data, err := WriteXLSX(sampleRows())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, colSource, v)

	v, err = f.GetCellValue(sheetName, "B1")
	require.NoError(t, err)
	assert.Equal(t, "NIK", v)

	v, err = f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "doc1.pdf", v)

	v, err = f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "123", v)

	v, err = f.GetCellValue(sheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "doc2.pdf", v)
}

func TestWriteRenameBundle(t *testing.T) {
	files := []BundleFile{
		{Name: "JOHN 123.pdf", Data: []byte("one")},
		{Name: "JOHN 123.pdf", Data: []byte("two")},
		{Name: "JANE X1.pdf", Data: []byte("three")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRenameBundle(&buf, files, "manifest.xlsx", []byte("wb")))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"JOHN 123.pdf", "JOHN 123 (1).pdf", "JANE X1.pdf", "manifest.xlsx"}, names)

	rc, err := zr.File[1].Open()
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "two", string(content), "duplicate names keep distinct contents")
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "My_Report_2024", SanitizeFilename("My Report! 2024"))
	assert.Equal(t, "a-b_c", SanitizeFilename("a-b  %% c"))
	assert.Equal(t, "", SanitizeFilename("###"))
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename("extracted data", "xlsx")
	assert.Regexp(t, regexp.MustCompile(`^extracted_data_\d{8}_\d{6}\.xlsx$`), name)
}
