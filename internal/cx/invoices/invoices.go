// Package invoices serves customer invoices and their lines.
package invoices

import (
	"github.com/odyssey-erp/odyssey-console/internal/console"
	"github.com/odyssey-erp/odyssey-console/internal/cx"
	"github.com/odyssey-erp/odyssey-console/internal/lookup"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
)

const Path = "/cx/invoices"

var Endpoint = backend.Endpoint{Domain: "cx", Collection: "invoices"}

const OptionStores = "stores"

// Invoice bills a customer for an order placed on a sales channel.
type Invoice struct {
	Code         string `json:"Code" validate:"required,max=20" wire:"required"`
	CustomerName string `json:"CustomerName" validate:"required,max=120" wire:"required"`
	OrderNumber  string `json:"OrderNumber" validate:"max=40"`
	StoreCode    string `json:"StoreCode" validate:"required"`
	ChannelID    int    `json:"ChannelId"`
	InvoiceDate  string `json:"InvoiceDate" validate:"required,datetime=2006-01-02"`
	DueDate      string `json:"DueDate" validate:"omitempty,datetime=2006-01-02"`
	Currency     string `json:"Currency" validate:"required,len=3"`
	Status       string `json:"Status" validate:"required,oneof=Active Non-Active"`
	Notes        string `json:"Notes"`
}

func (i Invoice) Key() string         { return i.Code }
func (i Invoice) StatusValue() string { return i.Status }

func check(i Invoice) map[string]string {
	errs := map[string]string{}
	if i.DueDate != "" && i.InvoiceDate != "" && i.DueDate < i.InvoiceDate {
		errs["DueDate"] = "Due Date must not be before Invoice Date"
	}
	return errs
}

func Resource() console.Resource[Invoice] {
	return console.Resource[Invoice]{
		Name:     "Invoices",
		Singular: "Invoice",
		Columns: []console.Column[Invoice]{
			{Header: "Code", Value: func(i Invoice) string { return i.Code }},
			{Header: "Customer", Value: func(i Invoice) string { return i.CustomerName }},
			{Header: "Order", Value: func(i Invoice) string { return i.OrderNumber }},
			{Header: "Invoice Date", Value: func(i Invoice) string { return i.InvoiceDate }},
			{Header: "Due", Value: func(i Invoice) string { return i.DueDate }},
			{Header: "Status", Value: func(i Invoice) string { return i.Status }},
		},
		Fields: []console.Field{
			{Name: "Code", Label: "Code", Type: console.InputText, Required: true, Immutable: true},
			{Name: "CustomerName", Label: "Customer", Type: console.InputText, Required: true},
			{Name: "OrderNumber", Label: "Order Number", Type: console.InputText},
			{Name: "StoreCode", Label: "Store", Type: console.InputSelect, Options: OptionStores, Required: true},
			{Name: "ChannelId", Label: "Channel", Type: console.InputSelect, Options: lookup.Channels},
			{Name: "InvoiceDate", Label: "Invoice Date", Type: console.InputDate, Required: true},
			{Name: "DueDate", Label: "Due Date", Type: console.InputDate},
			{Name: "Currency", Label: "Currency", Type: console.InputSelect, Static: cx.Currencies, Required: true},
			{Name: "Status", Label: "Status", Type: console.InputStatus, Required: true},
			{Name: "Notes", Label: "Notes", Type: console.InputTextarea},
		},
		Decode: func(f console.Form) Invoice {
			return Invoice{
				Code:         f.String("Code"),
				CustomerName: f.String("CustomerName"),
				OrderNumber:  f.String("OrderNumber"),
				StoreCode:    f.String("StoreCode"),
				ChannelID:    f.Int("ChannelId"),
				InvoiceDate:  f.Date("InvoiceDate"),
				DueDate:      f.Date("DueDate"),
				Currency:     f.String("Currency"),
				Status:       f.Status("Status"),
				Notes:        f.String("Notes"),
			}
		},
		Encode: func(i Invoice) map[string]string {
			return map[string]string{
				"Code":         i.Code,
				"CustomerName": i.CustomerName,
				"OrderNumber":  i.OrderNumber,
				"StoreCode":    i.StoreCode,
				"ChannelId":    console.Itoa(i.ChannelID),
				"InvoiceDate":  i.InvoiceDate,
				"DueDate":      i.DueDate,
				"Currency":     i.Currency,
				"Status":       i.Status,
				"Notes":        i.Notes,
			}
		},
		SetKey: func(i Invoice, key string) Invoice { i.Code = key; return i },
		Check:  check,
	}
}

func NewHandler(deps console.Deps, client *backend.Client) *console.ResourceHandler[Invoice] {
	lines := console.NewDetailHandler[cx.Line](deps, Path, backend.NewDetails[cx.Line](client, Endpoint), cx.Lines("Invoice Lines", "invoice"))
	return console.NewResourceHandler[Invoice](deps, Path, backend.NewCollection[Invoice](client, Endpoint), Resource()).
		WithDetails(lines)
}
