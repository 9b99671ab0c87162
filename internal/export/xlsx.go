package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// WriteXLSX renders the table on a single worksheet with a bold header row.
func WriteXLSX(w io.Writer, t Table) (err error) {
	if err := t.Validate(); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	sheet := sheetName(t.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("export: sheet name: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	row := 1
	if t.Title != "" {
		if err := f.SetCellValue(sheet, "A1", t.Title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", "A1", bold); err != nil {
			return err
		}
		row++
	}
	if t.Subtitle != "" {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(sheet, cell, t.Subtitle); err != nil {
			return err
		}
		row++
	}
	if row > 1 {
		row++
	}

	headers := t.headers()
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(headers), row)
	if err := f.SetSheetRow(sheet, first, &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, first, last, bold); err != nil {
		return err
	}
	for i, values := range t.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, row+i+1)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	for i, col := range t.Columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, name, name, columnWidth(col)); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func columnWidth(c Column) float64 {
	width := c.Width * 4
	if floor := float64(len(c.Header) + 2); width < floor {
		width = floor
	}
	if width > 80 {
		width = 80
	}
	return width
}

func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return ' '
		}
		return r
	}, strings.TrimSpace(title))
	name = strings.Trim(name, "' ")
	if name == "" {
		return "Export"
	}
	if runes := []rune(name); len(runes) > maxSheetName {
		name = strings.TrimSpace(string(runes[:maxSheetName]))
	}
	return name
}
