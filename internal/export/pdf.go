package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin    = 10.0
	pdfRowHeight = 6.0
	pdfFont      = "Helvetica"
)

// WritePDF renders the table onto landscape pages. The title and header row
// repeat on every page and each page carries a "Page x of y" footer.
func WritePDF(w io.Writer, t Table, opts Options) error {
	if err := t.Validate(); err != nil {
		return err
	}
	paper := opts.Paper
	if paper == "" {
		paper = "A4"
	}

	pdf := fpdf.New("L", "mm", paper, "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin+5)
	pdf.AliasNbPages("{nb}")
	pdf.SetTitle(t.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	widths := columnWidths(t.Columns, pageW-2*pdfMargin)

	pdf.SetHeaderFunc(func() {
		if t.Title != "" {
			pdf.SetFont(pdfFont, "B", 13)
			pdf.CellFormat(0, 7, tr(t.Title), "", 1, "L", false, 0, "")
		}
		if t.Subtitle != "" {
			pdf.SetFont(pdfFont, "", 9)
			pdf.CellFormat(0, 5, tr(t.Subtitle), "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
		pdf.SetFont(pdfFont, "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for i, col := range t.Columns {
			pdf.CellFormat(widths[i], pdfRowHeight, tr(fit(pdf, col.Header, widths[i])), "1", 0, align(col.Align), true, 0, "")
		}
		pdf.Ln(-1)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfMargin - 2)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(pdfFont, "", 8)
	if len(t.Rows) == 0 {
		pdf.CellFormat(0, pdfRowHeight, "No details", "1", 1, "C", false, 0, "")
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], pdfRowHeight, tr(fit(pdf, cell, widths[i])), "1", 0, align(t.Columns[i].Align), false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("export: render pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	return nil
}

func columnWidths(cols []Column, total float64) []float64 {
	var sum float64
	for _, c := range cols {
		sum += weight(c)
	}
	out := make([]float64, len(cols))
	for i, c := range cols {
		out[i] = total * weight(c) / sum
	}
	return out
}

func weight(c Column) float64 {
	if c.Width <= 0 {
		return 1
	}
	return c.Width
}

func align(a Align) string {
	switch a {
	case AlignCenter, AlignRight:
		return string(a)
	}
	return string(AlignLeft)
}

// fit truncates s with an ellipsis so it fits inside width.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	limit := width - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return strings.TrimSpace(string(runes)) + "..."
}
