package export

import (
	"encoding/csv"
	"io"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV streams the batch as BOM-prefixed CSV with the same column layout
// as the workbook export.
func WriteCSV(w io.Writer, rows []Row) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cols := Columns(rows)
	if err := cw.Write(cols); err != nil {
		return err
	}
	for _, r := range rows {
		if r.Record == nil {
			continue
		}
		if err := cw.Write(cellValues(cols, r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
