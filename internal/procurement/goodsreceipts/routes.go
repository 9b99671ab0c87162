package goodsreceipts

import (
	"strconv"

	"github.com/odyssey-erp/odyssey-console/internal/console"
	"github.com/odyssey-erp/odyssey-console/internal/export"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
)

const Path = "/procurement/goods-receipts"

var Endpoint = backend.Endpoint{Domain: "procurement", Collection: "goods-receipts"}

const (
	OptionPurchaseOrders = "purchaseorders"
	OptionStores         = "stores"
	OptionProducts       = "products"
)

func Resource() console.Resource[GoodsReceipt] {
	return console.Resource[GoodsReceipt]{
		Name:     "Goods Receipts",
		Singular: "Goods Receipt",
		Columns: []console.Column[GoodsReceipt]{
			{Header: "Code", Value: func(g GoodsReceipt) string { return g.Code }},
			{Header: "Purchase Order", Value: func(g GoodsReceipt) string { return g.PurchaseOrderCode }},
			{Header: "Store", Value: func(g GoodsReceipt) string { return g.StoreCode }},
			{Header: "Received", Value: func(g GoodsReceipt) string { return g.ReceivedDate }},
			{Header: "Status", Value: func(g GoodsReceipt) string { return g.Status }},
		},
		Fields: []console.Field{
			{Name: "Code", Label: "Code", Type: console.InputText, Required: true, Immutable: true},
			{Name: "PurchaseOrderCode", Label: "Purchase Order", Type: console.InputSelect, Options: OptionPurchaseOrders, Required: true},
			{Name: "StoreCode", Label: "Store", Type: console.InputSelect, Options: OptionStores, Required: true},
			{Name: "ReceivedDate", Label: "Received Date", Type: console.InputDate, Required: true},
			{Name: "ReceivedBy", Label: "Received By", Type: console.InputText},
			{Name: "Status", Label: "Status", Type: console.InputStatus, Required: true},
			{Name: "Notes", Label: "Notes", Type: console.InputTextarea},
		},
		Decode: func(f console.Form) GoodsReceipt {
			return GoodsReceipt{
				Code:              f.String("Code"),
				PurchaseOrderCode: f.String("PurchaseOrderCode"),
				StoreCode:         f.String("StoreCode"),
				ReceivedDate:      f.Date("ReceivedDate"),
				ReceivedBy:        f.String("ReceivedBy"),
				Status:            f.Status("Status"),
				Notes:             f.String("Notes"),
			}
		},
		Encode: func(g GoodsReceipt) map[string]string {
			return map[string]string{
				"Code":              g.Code,
				"PurchaseOrderCode": g.PurchaseOrderCode,
				"StoreCode":         g.StoreCode,
				"ReceivedDate":      g.ReceivedDate,
				"ReceivedBy":        g.ReceivedBy,
				"Status":            g.Status,
				"Notes":             g.Notes,
			}
		},
		SetKey: func(g GoodsReceipt, key string) GoodsReceipt { g.Code = key; return g },
	}
}

func Lines() console.DetailResource[Line] {
	return console.DetailResource[Line]{
		Name:     "Goods Receipt Lines",
		Singular: "Line",
		Columns: []console.Column[Line]{
			{Header: "Product", Value: func(l Line) string { return l.ProductCode }, Width: 1.2},
			{Header: "Received", Value: func(l Line) string { return export.Number(l.QuantityReceived, 2) }, Align: export.AlignRight},
			{Header: "Rejected", Value: func(l Line) string { return export.Number(l.QuantityRejected, 2) }, Align: export.AlignRight},
			{Header: "Accepted", Value: func(l Line) string { return export.Number(l.Accepted(), 2) }, Align: export.AlignRight},
			{Header: "Batch", Value: func(l Line) string { return l.BatchNumber }},
			{Header: "Expiry", Value: func(l Line) string { return l.ExpiryDate }, Align: export.AlignCenter},
			{Header: "Notes", Value: func(l Line) string { return l.Notes }, Width: 1.5},
		},
		Fields: []console.Field{
			{Name: "ProductCode", Label: "Product", Type: console.InputSelect, Options: OptionProducts, Required: true},
			{Name: "QuantityReceived", Label: "Quantity Received", Type: console.InputNumber, Required: true},
			{Name: "QuantityRejected", Label: "Quantity Rejected", Type: console.InputNumber},
			{Name: "BatchNumber", Label: "Batch Number", Type: console.InputText},
			{Name: "ExpiryDate", Label: "Expiry Date", Type: console.InputDate},
			{Name: "Notes", Label: "Notes", Type: console.InputTextarea},
		},
		Decode: func(f console.Form) Line {
			return Line{
				ProductCode:      f.String("ProductCode"),
				QuantityReceived: f.Decimal("QuantityReceived"),
				QuantityRejected: f.Decimal("QuantityRejected"),
				BatchNumber:      f.String("BatchNumber"),
				ExpiryDate:       f.Date("ExpiryDate"),
				Notes:            f.String("Notes"),
			}
		},
		Encode: func(l Line) map[string]string {
			return map[string]string{
				"ProductCode":      l.ProductCode,
				"QuantityReceived": console.Dec(l.QuantityReceived),
				"QuantityRejected": console.Dec(l.QuantityRejected),
				"BatchNumber":      l.BatchNumber,
				"ExpiryDate":       l.ExpiryDate,
				"Notes":            l.Notes,
			}
		},
		Check:      checkLine,
		SetKey:     setLineKey,
		FilePrefix: "goods-receipt",
	}
}

func NewHandler(deps console.Deps, client *backend.Client) *console.ResourceHandler[GoodsReceipt] {
	lines := console.NewDetailHandler[Line](deps, Path, backend.NewDetails[Line](client, Endpoint), Lines())
	return console.NewResourceHandler[GoodsReceipt](deps, Path, backend.NewCollection[GoodsReceipt](client, Endpoint), Resource()).
		WithDetails(lines)
}

// setLineKey carries the line id from the route onto a decoded line.
func setLineKey(l Line, key string) Line {
	if id, err := strconv.Atoi(key); err == nil {
		l.ID = id
	}
	return l
}
