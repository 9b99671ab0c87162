package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable(rows int) Table {
	t := Table{
		Title:    "Invoice INV-001",
		Subtitle: "Customer: PT Sinar Jaya",
		Columns: []Column{
			{Header: "SKU", Width: 2},
			{Header: "Description", Width: 5},
			{Header: "Qty", Width: 1, Align: AlignRight},
			{Header: "Amount", Width: 2, Align: AlignRight},
		},
	}
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("SKU-%03d", i+1),
			"Kemeja katun lengan panjang ukuran L warna biru dongker",
			Integer(int64(i + 1)),
			Amount(decimal.NewFromInt(int64(i+1) * 125000)),
		})
	}
	return t
}

func TestValidateRejectsRaggedRows(t *testing.T) {
	table := sampleTable(1)
	table.Rows = append(table.Rows, []string{"only one"})
	assert.ErrorIs(t, table.Validate(), ErrShape)
	assert.Error(t, Table{}.Validate())
}

func TestWriteCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteCSV(buf, sampleTable(3)))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"SKU", "Description", "Qty", "Amount"}, records[0])
	assert.Equal(t, "375,000.00", records[3][3])
}

func TestWriteXLSX(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteXLSX(buf, sampleTable(2)))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoice INV-001")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Invoice INV-001", rows[0][0])
	assert.Equal(t, "Customer: PT Sinar Jaya", rows[1][0])
	assert.Equal(t, []string{"SKU", "Description", "Qty", "Amount"}, rows[3])
	assert.Equal(t, "SKU-002", rows[5][0])
}

func TestWritePDFPaginates(t *testing.T) {
	small := &bytes.Buffer{}
	require.NoError(t, WritePDF(small, sampleTable(3), Options{}))
	assert.True(t, bytes.HasPrefix(small.Bytes(), []byte("%PDF-")))
	assert.Equal(t, 1, bytes.Count(small.Bytes(), []byte("<</Type /Page\n")))

	large := &bytes.Buffer{}
	require.NoError(t, WritePDF(large, sampleTable(120), Options{Paper: "Letter"}))
	assert.Greater(t, bytes.Count(large.Bytes(), []byte("<</Type /Page\n")), 1)
}

func TestWritePDFEmptyTable(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WritePDF(buf, sampleTable(0), Options{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteDispatchesByFormat(t *testing.T) {
	for _, name := range []string{"pdf", "XLSX", " csv "} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		buf := &bytes.Buffer{}
		require.NoError(t, Write(buf, f, sampleTable(1), Options{}))
		assert.NotZero(t, buf.Len(), name)
	}
	_, err := ParseFormat("docx")
	assert.Error(t, err)
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
}

func TestFileName(t *testing.T) {
	cases := []struct {
		prefix, key string
		ext         Format
		want        string
	}{
		{"Invoice Details", "INV/2024/001", FormatPDF, "invoice-details-inv-2024-001.pdf"},
		{"po_details", "PO 7", FormatXLSX, "po_details-po-7.xlsx"},
		{"receipts", "", FormatCSV, "receipts.csv"},
		{"", "../../etc", FormatPDF, "etc.pdf"},
		{"", "", FormatPDF, "export.pdf"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FileName(tc.prefix, tc.key, tc.ext))
		assert.Equal(t, FileName(tc.prefix, tc.key, tc.ext), FileName(tc.prefix, tc.key, tc.ext))
	}
}

func TestNumberFormatting(t *testing.T) {
	assert.Equal(t, "1,234,567.89", Amount(decimal.RequireFromString("1234567.891")))
	assert.Equal(t, "-0.50", Amount(decimal.RequireFromString("-0.5")))
	assert.Equal(t, "0.00", Amount(decimal.RequireFromString("-0.001")))
	assert.Equal(t, "12,000", Number(decimal.NewFromInt(12000), 0))
	assert.Equal(t, "1,000", Integer(1000))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Export", sheetName(""))
	assert.Equal(t, "PO 1 2", sheetName("PO:1/2"))
	assert.Len(t, []rune(sheetName("A very long purchase order title that overflows")), 31)
}
