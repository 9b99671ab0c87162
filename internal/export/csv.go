package export

import (
	"encoding/csv"
	"io"
)

// WriteCSV emits the header row followed by every data row.
func WriteCSV(w io.Writer, t Table) error {
	if err := t.Validate(); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(t.headers()); err != nil {
		return err
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		return err
	}
	return writer.Error()
}
