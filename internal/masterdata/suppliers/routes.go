package suppliers

import (
	"context"

	"github.com/odyssey-erp/odyssey-console/internal/cascade"
	"github.com/odyssey-erp/odyssey-console/internal/console"
	"github.com/odyssey-erp/odyssey-console/internal/lookup"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
)

// Path is where the supplier pages are mounted.
const Path = "/masterdata/suppliers"

// Endpoint is the backend collection of suppliers.
var Endpoint = backend.Endpoint{Domain: "masterdata", Collection: "suppliers"}

// Resource describes the supplier pages.
func Resource(lookups cascade.Lookups) console.Resource[Supplier] {
	fields := []console.Field{
		{Name: "Code", Label: "Code", Type: console.InputText, Required: true, Immutable: true},
		{Name: "Name", Label: "Name", Type: console.InputText, Required: true},
		{Name: "Address", Label: "Address", Type: console.InputTextarea},
	}
	fields = append(fields, console.CityFields()...)
	fields = append(fields,
		console.Field{Name: "Phone", Label: "Phone", Type: console.InputText},
		console.Field{Name: "Email", Label: "Email", Type: console.InputEmail},
		console.Field{Name: "ContactPerson", Label: "Contact Person", Type: console.InputText},
		console.Field{Name: "BankId", Label: "Bank", Type: console.InputSelect, Options: lookup.Banks},
		console.Field{Name: "AccountNumber", Label: "Account Number", Type: console.InputText},
		console.Field{Name: "Status", Label: "Status", Type: console.InputStatus, Required: true},
		console.Field{Name: "Notes", Label: "Notes", Type: console.InputTextarea},
	)

	return console.Resource[Supplier]{
		Name:     "Suppliers",
		Singular: "Supplier",
		Columns: []console.Column[Supplier]{
			{Header: "Code", Value: func(s Supplier) string { return s.Code }},
			{Header: "Name", Value: func(s Supplier) string { return s.Name }},
			{Header: "City", Value: func(s Supplier) string { return s.CityName }},
			{Header: "Province", Value: func(s Supplier) string { return s.ProvinceName }},
			{Header: "Phone", Value: func(s Supplier) string { return s.Phone }},
			{Header: "Status", Value: func(s Supplier) string { return s.Status }},
		},
		Fields: fields,
		Decode: decode,
		Encode: encode,
		SetKey: func(s Supplier, key string) Supplier { s.Code = key; return s },
		Prepare: func(ctx context.Context, s Supplier) (Supplier, error) {
			loc, err := console.ResolveLocation(ctx, lookups, s.Location)
			if err != nil {
				return s, err
			}
			s.Location = loc
			return s, nil
		},
		Check: check,
	}
}

func decode(f console.Form) Supplier {
	return Supplier{
		Code:          f.String("Code"),
		Name:          f.String("Name"),
		Address:       f.String("Address"),
		Location:      console.DecodeLocation(f),
		Phone:         f.String("Phone"),
		Email:         f.String("Email"),
		ContactPerson: f.String("ContactPerson"),
		BankID:        f.Int("BankId"),
		AccountNumber: f.String("AccountNumber"),
		Status:        f.Status("Status"),
		Notes:         f.String("Notes"),
	}
}

func encode(s Supplier) map[string]string {
	values := map[string]string{
		"Code":          s.Code,
		"Name":          s.Name,
		"Address":       s.Address,
		"Phone":         s.Phone,
		"Email":         s.Email,
		"ContactPerson": s.ContactPerson,
		"BankId":        console.Itoa(s.BankID),
		"AccountNumber": s.AccountNumber,
		"Status":        s.Status,
		"Notes":         s.Notes,
	}
	console.EncodeLocation(s.Location, values)
	return values
}

// NewHandler serves the supplier pages from the backend collection.
func NewHandler(deps console.Deps, client *backend.Client, lookups cascade.Lookups) *console.ResourceHandler[Supplier] {
	return console.NewResourceHandler[Supplier](deps, Path, backend.NewCollection[Supplier](client, Endpoint), Resource(lookups))
}

// Options lists suppliers for select inputs.
func Options(client *backend.Client) console.OptionSource {
	return console.RecordOptions(backend.NewCollection[Supplier](client, Endpoint).List, func(s Supplier) string {
		return s.Code + " · " + s.Name
	})
}
