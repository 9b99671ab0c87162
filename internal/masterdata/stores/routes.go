package stores

import (
	"context"

	"github.com/odyssey-erp/odyssey-console/internal/cascade"
	"github.com/odyssey-erp/odyssey-console/internal/console"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
)

const Path = "/masterdata/stores"

var Endpoint = backend.Endpoint{Domain: "masterdata", Collection: "stores"}

// OptionCompanies names the company option source used by the store form.
const OptionCompanies = "companies"

func Resource(lookups cascade.Lookups) console.Resource[Store] {
	fields := []console.Field{
		{Name: "Code", Label: "Code", Type: console.InputText, Required: true, Immutable: true},
		{Name: "Name", Label: "Name", Type: console.InputText, Required: true},
		{Name: "CompanyCode", Label: "Company", Type: console.InputSelect, Options: OptionCompanies, Required: true},
		{Name: "StoreType", Label: "Type", Type: console.InputSelect, Static: console.Choices("Warehouse", "Outlet", "Online"), Required: true},
		{Name: "Address", Label: "Address", Type: console.InputTextarea},
	}
	fields = append(fields, console.CityFields()...)
	fields = append(fields,
		console.Field{Name: "Phone", Label: "Phone", Type: console.InputText},
		console.Field{Name: "Status", Label: "Status", Type: console.InputStatus, Required: true},
		console.Field{Name: "Notes", Label: "Notes", Type: console.InputTextarea},
	)
	return console.Resource[Store]{
		Name:     "Stores",
		Singular: "Store",
		Columns: []console.Column[Store]{
			{Header: "Code", Value: func(s Store) string { return s.Code }},
			{Header: "Name", Value: func(s Store) string { return s.Name }},
			{Header: "Type", Value: func(s Store) string { return s.StoreType }},
			{Header: "Company", Value: func(s Store) string { return s.CompanyCode }},
			{Header: "City", Value: func(s Store) string { return s.CityName }},
			{Header: "Status", Value: func(s Store) string { return s.Status }},
		},
		Fields: fields,
		Decode: func(f console.Form) Store {
			return Store{
				Code:        f.String("Code"),
				Name:        f.String("Name"),
				CompanyCode: f.String("CompanyCode"),
				StoreType:   f.String("StoreType"),
				Address:     f.String("Address"),
				Location:    console.DecodeLocation(f),
				Phone:       f.String("Phone"),
				Status:      f.Status("Status"),
				Notes:       f.String("Notes"),
			}
		},
		Encode: func(s Store) map[string]string {
			values := map[string]string{
				"Code":        s.Code,
				"Name":        s.Name,
				"CompanyCode": s.CompanyCode,
				"StoreType":   s.StoreType,
				"Address":     s.Address,
				"Phone":       s.Phone,
				"Status":      s.Status,
				"Notes":       s.Notes,
			}
			console.EncodeLocation(s.Location, values)
			return values
		},
		SetKey: func(s Store, key string) Store { s.Code = key; return s },
		Prepare: func(ctx context.Context, s Store) (Store, error) {
			loc, err := console.ResolveLocation(ctx, lookups, s.Location)
			s.Location = loc
			return s, err
		},
	}
}

func NewHandler(deps console.Deps, client *backend.Client, lookups cascade.Lookups) *console.ResourceHandler[Store] {
	return console.NewResourceHandler[Store](deps, Path, backend.NewCollection[Store](client, Endpoint), Resource(lookups))
}

func Options(client *backend.Client) console.OptionSource {
	return console.RecordOptions(backend.NewCollection[Store](client, Endpoint).List, func(s Store) string {
		return s.Code + " · " + s.Name
	})
}
