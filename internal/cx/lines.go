// Package cx holds what customer invoices and quotations share.
package cx

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/odyssey-console/internal/console"
	"github.com/odyssey-erp/odyssey-console/internal/export"
)

// OptionProducts names the product option source of line forms.
const OptionProducts = "products"

var hundred = decimal.NewFromInt(100)

// Line is a priced product row on a customer document.
type Line struct {
	ID              int             `json:"Id"`
	ProductCode     string          `json:"ProductCode" validate:"required" wire:"required"`
	Description     string          `json:"Description" validate:"max=200"`
	Quantity        decimal.Decimal `json:"Quantity"`
	UnitPrice       decimal.Decimal `json:"UnitPrice"`
	DiscountPercent decimal.Decimal `json:"DiscountPercent"`
	Notes           string          `json:"Notes"`
}

func (l Line) Key() string { return strconv.Itoa(l.ID) }

// Total is the line amount after discount, rounded to cents.
func (l Line) Total() decimal.Decimal {
	gross := l.Quantity.Mul(l.UnitPrice)
	discount := gross.Mul(l.DiscountPercent).Div(hundred)
	return gross.Sub(discount).Round(2)
}

// CheckLine validates amounts the struct tags cannot.
func CheckLine(l Line) map[string]string {
	errs := map[string]string{}
	if !l.Quantity.IsPositive() {
		errs["Quantity"] = "Quantity must be greater than 0"
	}
	if l.UnitPrice.IsNegative() {
		errs["UnitPrice"] = "Unit Price must not be negative"
	}
	if l.DiscountPercent.IsNegative() || l.DiscountPercent.GreaterThan(hundred) {
		errs["DiscountPercent"] = "Discount must be between 0 and 100"
	}
	return errs
}

// Lines describes document lines for the overlay and exports.
func Lines(name, filePrefix string) console.DetailResource[Line] {
	return console.DetailResource[Line]{
		Name:     name,
		Singular: "Line",
		Columns: []console.Column[Line]{
			{Header: "Product", Value: func(l Line) string { return l.ProductCode }, Width: 1.2},
			{Header: "Description", Value: func(l Line) string { return l.Description }, Width: 2.5},
			{Header: "Qty", Value: func(l Line) string { return export.Number(l.Quantity, 2) }, Align: export.AlignRight},
			{Header: "Unit Price", Value: func(l Line) string { return export.Amount(l.UnitPrice) }, Align: export.AlignRight},
			{Header: "Disc %", Value: func(l Line) string { return export.Number(l.DiscountPercent, 2) }, Align: export.AlignRight, Width: 0.7},
			{Header: "Total", Value: func(l Line) string { return export.Amount(l.Total()) }, Align: export.AlignRight},
		},
		Fields: []console.Field{
			{Name: "ProductCode", Label: "Product", Type: console.InputSelect, Options: OptionProducts, Required: true},
			{Name: "Description", Label: "Description", Type: console.InputText},
			{Name: "Quantity", Label: "Quantity", Type: console.InputNumber, Required: true},
			{Name: "UnitPrice", Label: "Unit Price", Type: console.InputNumber, Required: true},
			{Name: "DiscountPercent", Label: "Discount %", Type: console.InputNumber},
			{Name: "Notes", Label: "Notes", Type: console.InputTextarea},
		},
		Decode: func(f console.Form) Line {
			return Line{
				ProductCode:     f.String("ProductCode"),
				Description:     f.String("Description"),
				Quantity:        f.Decimal("Quantity"),
				UnitPrice:       f.Decimal("UnitPrice"),
				DiscountPercent: f.Decimal("DiscountPercent"),
				Notes:           f.String("Notes"),
			}
		},
		Encode: func(l Line) map[string]string {
			return map[string]string{
				"ProductCode":     l.ProductCode,
				"Description":     l.Description,
				"Quantity":        console.Dec(l.Quantity),
				"UnitPrice":       console.Dec(l.UnitPrice),
				"DiscountPercent": console.Dec(l.DiscountPercent),
				"Notes":           l.Notes,
			}
		},
		Check:      CheckLine,
		SetKey:     setLineKey,
		FilePrefix: filePrefix,
	}
}

// Currencies offered on customer documents.
var Currencies = console.Choices("IDR", "USD", "SGD")

// setLineKey carries the line id from the route onto a decoded line.
func setLineKey(l Line, key string) Line {
	if id, err := strconv.Atoi(key); err == nil {
		l.ID = id
	}
	return l
}
