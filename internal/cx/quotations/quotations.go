// Package quotations serves customer quotations and their lines.
package quotations

import (
	"github.com/odyssey-erp/odyssey-console/internal/console"
	"github.com/odyssey-erp/odyssey-console/internal/cx"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
)

const Path = "/cx/quotations"

var Endpoint = backend.Endpoint{Domain: "cx", Collection: "quotations"}

// Quotation offers prices to a prospective customer until ValidUntil.
type Quotation struct {
	Code          string `json:"Code" validate:"required,max=20" wire:"required"`
	CustomerName  string `json:"CustomerName" validate:"required,max=120" wire:"required"`
	CustomerEmail string `json:"CustomerEmail" validate:"omitempty,email"`
	CustomerPhone string `json:"CustomerPhone" validate:"max=30"`
	QuotationDate string `json:"QuotationDate" validate:"required,datetime=2006-01-02"`
	ValidUntil    string `json:"ValidUntil" validate:"required,datetime=2006-01-02"`
	Currency      string `json:"Currency" validate:"required,len=3"`
	Status        string `json:"Status" validate:"required,oneof=Active Non-Active"`
	Notes         string `json:"Notes"`
}

func (q Quotation) Key() string         { return q.Code }
func (q Quotation) StatusValue() string { return q.Status }

func check(q Quotation) map[string]string {
	errs := map[string]string{}
	if q.ValidUntil != "" && q.QuotationDate != "" && q.ValidUntil < q.QuotationDate {
		errs["ValidUntil"] = "Valid Until must not be before Quotation Date"
	}
	return errs
}

func Resource() console.Resource[Quotation] {
	return console.Resource[Quotation]{
		Name:     "Quotations",
		Singular: "Quotation",
		Columns: []console.Column[Quotation]{
			{Header: "Code", Value: func(q Quotation) string { return q.Code }},
			{Header: "Customer", Value: func(q Quotation) string { return q.CustomerName }},
			{Header: "Email", Value: func(q Quotation) string { return q.CustomerEmail }},
			{Header: "Date", Value: func(q Quotation) string { return q.QuotationDate }},
			{Header: "Valid Until", Value: func(q Quotation) string { return q.ValidUntil }},
			{Header: "Status", Value: func(q Quotation) string { return q.Status }},
		},
		Fields: []console.Field{
			{Name: "Code", Label: "Code", Type: console.InputText, Required: true, Immutable: true},
			{Name: "CustomerName", Label: "Customer", Type: console.InputText, Required: true},
			{Name: "CustomerEmail", Label: "Customer Email", Type: console.InputEmail},
			{Name: "CustomerPhone", Label: "Customer Phone", Type: console.InputText},
			{Name: "QuotationDate", Label: "Quotation Date", Type: console.InputDate, Required: true},
			{Name: "ValidUntil", Label: "Valid Until", Type: console.InputDate, Required: true},
			{Name: "Currency", Label: "Currency", Type: console.InputSelect, Static: cx.Currencies, Required: true},
			{Name: "Status", Label: "Status", Type: console.InputStatus, Required: true},
			{Name: "Notes", Label: "Notes", Type: console.InputTextarea},
		},
		Decode: func(f console.Form) Quotation {
			return Quotation{
				Code:          f.String("Code"),
				CustomerName:  f.String("CustomerName"),
				CustomerEmail: f.String("CustomerEmail"),
				CustomerPhone: f.String("CustomerPhone"),
				QuotationDate: f.Date("QuotationDate"),
				ValidUntil:    f.Date("ValidUntil"),
				Currency:      f.String("Currency"),
				Status:        f.Status("Status"),
				Notes:         f.String("Notes"),
			}
		},
		Encode: func(q Quotation) map[string]string {
			return map[string]string{
				"Code":          q.Code,
				"CustomerName":  q.CustomerName,
				"CustomerEmail": q.CustomerEmail,
				"CustomerPhone": q.CustomerPhone,
				"QuotationDate": q.QuotationDate,
				"ValidUntil":    q.ValidUntil,
				"Currency":      q.Currency,
				"Status":        q.Status,
				"Notes":         q.Notes,
			}
		},
		SetKey: func(q Quotation, key string) Quotation { q.Code = key; return q },
		Check:  check,
	}
}

func NewHandler(deps console.Deps, client *backend.Client) *console.ResourceHandler[Quotation] {
	lines := console.NewDetailHandler[cx.Line](deps, Path, backend.NewDetails[cx.Line](client, Endpoint), cx.Lines("Quotation Lines", "quotation"))
	return console.NewResourceHandler[Quotation](deps, Path, backend.NewCollection[Quotation](client, Endpoint), Resource()).
		WithDetails(lines)
}
