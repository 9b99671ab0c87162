package companies

import (
	"context"

	"github.com/odyssey-erp/odyssey-console/internal/cascade"
	"github.com/odyssey-erp/odyssey-console/internal/console"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
)

const Path = "/masterdata/companies"

var Endpoint = backend.Endpoint{Domain: "masterdata", Collection: "companies"}

// Resource describes the company pages.
func Resource(lookups cascade.Lookups) console.Resource[Company] {
	fields := []console.Field{
		{Name: "Code", Label: "Code", Type: console.InputText, Required: true, Immutable: true},
		{Name: "Name", Label: "Name", Type: console.InputText, Required: true},
		{Name: "TaxId", Label: "Tax ID", Type: console.InputText},
		{Name: "Address", Label: "Address", Type: console.InputTextarea},
	}
	fields = append(fields, console.CityFields()...)
	fields = append(fields,
		console.Field{Name: "Phone", Label: "Phone", Type: console.InputText},
		console.Field{Name: "Email", Label: "Email", Type: console.InputEmail},
		console.Field{Name: "Status", Label: "Status", Type: console.InputStatus, Required: true},
		console.Field{Name: "Notes", Label: "Notes", Type: console.InputTextarea},
	)
	return console.Resource[Company]{
		Name:     "Companies",
		Singular: "Company",
		Columns: []console.Column[Company]{
			{Header: "Code", Value: func(c Company) string { return c.Code }},
			{Header: "Name", Value: func(c Company) string { return c.Name }},
			{Header: "Tax ID", Value: func(c Company) string { return c.TaxID }},
			{Header: "City", Value: func(c Company) string { return c.CityName }},
			{Header: "Country", Value: func(c Company) string { return c.CountryName }},
			{Header: "Status", Value: func(c Company) string { return c.Status }},
		},
		Fields: fields,
		Decode: func(f console.Form) Company {
			return Company{
				Code:     f.String("Code"),
				Name:     f.String("Name"),
				TaxID:    f.String("TaxId"),
				Address:  f.String("Address"),
				Location: console.DecodeLocation(f),
				Phone:    f.String("Phone"),
				Email:    f.String("Email"),
				Status:   f.Status("Status"),
				Notes:    f.String("Notes"),
			}
		},
		Encode: func(c Company) map[string]string {
			values := map[string]string{
				"Code":    c.Code,
				"Name":    c.Name,
				"TaxId":   c.TaxID,
				"Address": c.Address,
				"Phone":   c.Phone,
				"Email":   c.Email,
				"Status":  c.Status,
				"Notes":   c.Notes,
			}
			console.EncodeLocation(c.Location, values)
			return values
		},
		SetKey: func(c Company, key string) Company { c.Code = key; return c },
		Prepare: func(ctx context.Context, c Company) (Company, error) {
			loc, err := console.ResolveLocation(ctx, lookups, c.Location)
			c.Location = loc
			return c, err
		},
		Check: check,
	}
}

func NewHandler(deps console.Deps, client *backend.Client, lookups cascade.Lookups) *console.ResourceHandler[Company] {
	return console.NewResourceHandler[Company](deps, Path, backend.NewCollection[Company](client, Endpoint), Resource(lookups))
}

// Options lists companies for select inputs.
func Options(client *backend.Client) console.OptionSource {
	return console.RecordOptions(backend.NewCollection[Company](client, Endpoint).List, func(c Company) string {
		return c.Code + " · " + c.Name
	})
}
