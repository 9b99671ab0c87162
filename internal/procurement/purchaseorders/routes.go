package purchaseorders

import (
	"strconv"

	"github.com/odyssey-erp/odyssey-console/internal/console"
	"github.com/odyssey-erp/odyssey-console/internal/export"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
)

const Path = "/procurement/purchase-orders"

var Endpoint = backend.Endpoint{Domain: "procurement", Collection: "purchase-orders"}

// Option sources used by the order forms.
const (
	OptionSuppliers = "suppliers"
	OptionProducts  = "products"
)

func Resource() console.Resource[PurchaseOrder] {
	return console.Resource[PurchaseOrder]{
		Name:     "Purchase Orders",
		Singular: "Purchase Order",
		Columns: []console.Column[PurchaseOrder]{
			{Header: "Code", Value: func(p PurchaseOrder) string { return p.Code }},
			{Header: "Supplier", Value: func(p PurchaseOrder) string { return p.SupplierCode }},
			{Header: "Order Date", Value: func(p PurchaseOrder) string { return p.OrderDate }},
			{Header: "Expected", Value: func(p PurchaseOrder) string { return p.ExpectedDate }},
			{Header: "Currency", Value: func(p PurchaseOrder) string { return p.Currency }, Align: export.AlignCenter},
			{Header: "Status", Value: func(p PurchaseOrder) string { return p.Status }},
		},
		Fields: []console.Field{
			{Name: "Code", Label: "Code", Type: console.InputText, Required: true, Immutable: true},
			{Name: "SupplierCode", Label: "Supplier", Type: console.InputSelect, Options: OptionSuppliers, Required: true},
			{Name: "OrderDate", Label: "Order Date", Type: console.InputDate, Required: true},
			{Name: "ExpectedDate", Label: "Expected Date", Type: console.InputDate},
			{Name: "Currency", Label: "Currency", Type: console.InputSelect, Static: console.Choices("IDR", "USD", "SGD"), Required: true},
			{Name: "Status", Label: "Status", Type: console.InputStatus, Required: true},
			{Name: "Notes", Label: "Notes", Type: console.InputTextarea},
		},
		Decode: func(f console.Form) PurchaseOrder {
			return PurchaseOrder{
				Code:         f.String("Code"),
				SupplierCode: f.String("SupplierCode"),
				OrderDate:    f.Date("OrderDate"),
				ExpectedDate: f.Date("ExpectedDate"),
				Currency:     f.String("Currency"),
				Status:       f.Status("Status"),
				Notes:        f.String("Notes"),
			}
		},
		Encode: func(p PurchaseOrder) map[string]string {
			return map[string]string{
				"Code":         p.Code,
				"SupplierCode": p.SupplierCode,
				"OrderDate":    p.OrderDate,
				"ExpectedDate": p.ExpectedDate,
				"Currency":     p.Currency,
				"Status":       p.Status,
				"Notes":        p.Notes,
			}
		},
		SetKey: func(p PurchaseOrder, key string) PurchaseOrder { p.Code = key; return p },
		Check:  check,
	}
}

// Lines describes the order lines shown in the detail overlay and exports.
func Lines() console.DetailResource[Line] {
	return console.DetailResource[Line]{
		Name:     "Purchase Order Lines",
		Singular: "Line",
		Columns: []console.Column[Line]{
			{Header: "Product", Value: func(l Line) string { return l.ProductCode }, Width: 1.2},
			{Header: "Description", Value: func(l Line) string { return l.Description }, Width: 2.5},
			{Header: "Qty", Value: func(l Line) string { return export.Number(l.Quantity, 2) }, Align: export.AlignRight},
			{Header: "Unit Price", Value: func(l Line) string { return export.Amount(l.UnitPrice) }, Align: export.AlignRight},
			{Header: "Amount", Value: func(l Line) string { return export.Amount(l.Amount()) }, Align: export.AlignRight},
			{Header: "Notes", Value: func(l Line) string { return l.Notes }, Width: 1.5},
		},
		Fields: []console.Field{
			{Name: "ProductCode", Label: "Product", Type: console.InputSelect, Options: OptionProducts, Required: true},
			{Name: "Description", Label: "Description", Type: console.InputText},
			{Name: "Quantity", Label: "Quantity", Type: console.InputNumber, Required: true},
			{Name: "UnitPrice", Label: "Unit Price", Type: console.InputNumber, Required: true},
			{Name: "Notes", Label: "Notes", Type: console.InputTextarea},
		},
		Decode: func(f console.Form) Line {
			return Line{
				ProductCode: f.String("ProductCode"),
				Description: f.String("Description"),
				Quantity:    f.Decimal("Quantity"),
				UnitPrice:   f.Decimal("UnitPrice"),
				Notes:       f.String("Notes"),
			}
		},
		Encode: func(l Line) map[string]string {
			return map[string]string{
				"ProductCode": l.ProductCode,
				"Description": l.Description,
				"Quantity":    console.Dec(l.Quantity),
				"UnitPrice":   console.Dec(l.UnitPrice),
				"Notes":       l.Notes,
			}
		},
		Check:      checkLine,
		SetKey:     setLineKey,
		FilePrefix: "purchase-order",
	}
}

// NewHandler mounts purchase orders with their line overlay.
func NewHandler(deps console.Deps, client *backend.Client) *console.ResourceHandler[PurchaseOrder] {
	lines := console.NewDetailHandler[Line](deps, Path, backend.NewDetails[Line](client, Endpoint), Lines())
	return console.NewResourceHandler[PurchaseOrder](deps, Path, backend.NewCollection[PurchaseOrder](client, Endpoint), Resource()).
		WithDetails(lines)
}

// Options lists purchase orders for select inputs.
func Options(client *backend.Client) console.OptionSource {
	return console.RecordOptions(backend.NewCollection[PurchaseOrder](client, Endpoint).List, func(p PurchaseOrder) string {
		return p.Code + " · " + p.SupplierCode
	})
}

// setLineKey carries the line id from the route onto a decoded line.
func setLineKey(l Line, key string) Line {
	if id, err := strconv.Atoi(key); err == nil {
		l.ID = id
	}
	return l
}
