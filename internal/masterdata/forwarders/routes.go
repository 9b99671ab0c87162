package forwarders

import (
	"context"

	"github.com/odyssey-erp/odyssey-console/internal/cascade"
	"github.com/odyssey-erp/odyssey-console/internal/console"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
)

const Path = "/masterdata/forwarders"

var Endpoint = backend.Endpoint{Domain: "masterdata", Collection: "forwarders"}

func Resource(lookups cascade.Lookups) console.Resource[Forwarder] {
	fields := []console.Field{
		{Name: "Code", Label: "Code", Type: console.InputText, Required: true, Immutable: true},
		{Name: "Name", Label: "Name", Type: console.InputText, Required: true},
		{Name: "ServiceType", Label: "Service Type", Type: console.InputSelect, Static: console.Choices("Sea", "Air", "Land", "Courier")},
		{Name: "Address", Label: "Address", Type: console.InputTextarea},
	}
	fields = append(fields, console.CityFields()...)
	fields = append(fields,
		console.Field{Name: "Phone", Label: "Phone", Type: console.InputText},
		console.Field{Name: "Email", Label: "Email", Type: console.InputEmail},
		console.Field{Name: "ContactPerson", Label: "Contact Person", Type: console.InputText},
		console.Field{Name: "Status", Label: "Status", Type: console.InputStatus, Required: true},
		console.Field{Name: "Notes", Label: "Notes", Type: console.InputTextarea},
	)
	return console.Resource[Forwarder]{
		Name:     "Forwarders",
		Singular: "Forwarder",
		Columns: []console.Column[Forwarder]{
			{Header: "Code", Value: func(f Forwarder) string { return f.Code }},
			{Header: "Name", Value: func(f Forwarder) string { return f.Name }},
			{Header: "Service", Value: func(f Forwarder) string { return f.ServiceType }},
			{Header: "City", Value: func(f Forwarder) string { return f.CityName }},
			{Header: "Contact", Value: func(f Forwarder) string { return f.ContactPerson }},
			{Header: "Status", Value: func(f Forwarder) string { return f.Status }},
		},
		Fields: fields,
		Decode: func(f console.Form) Forwarder {
			return Forwarder{
				Code:          f.String("Code"),
				Name:          f.String("Name"),
				Address:       f.String("Address"),
				Location:      console.DecodeLocation(f),
				Phone:         f.String("Phone"),
				Email:         f.String("Email"),
				ContactPerson: f.String("ContactPerson"),
				ServiceType:   f.String("ServiceType"),
				Status:        f.Status("Status"),
				Notes:         f.String("Notes"),
			}
		},
		Encode: func(fw Forwarder) map[string]string {
			values := map[string]string{
				"Code":          fw.Code,
				"Name":          fw.Name,
				"Address":       fw.Address,
				"Phone":         fw.Phone,
				"Email":         fw.Email,
				"ContactPerson": fw.ContactPerson,
				"ServiceType":   fw.ServiceType,
				"Status":        fw.Status,
				"Notes":         fw.Notes,
			}
			console.EncodeLocation(fw.Location, values)
			return values
		},
		SetKey: func(fw Forwarder, key string) Forwarder { fw.Code = key; return fw },
		Prepare: func(ctx context.Context, fw Forwarder) (Forwarder, error) {
			loc, err := console.ResolveLocation(ctx, lookups, fw.Location)
			fw.Location = loc
			return fw, err
		},
	}
}

func NewHandler(deps console.Deps, client *backend.Client, lookups cascade.Lookups) *console.ResourceHandler[Forwarder] {
	return console.NewResourceHandler[Forwarder](deps, Path, backend.NewCollection[Forwarder](client, Endpoint), Resource(lookups))
}

func Options(client *backend.Client) console.OptionSource {
	return console.RecordOptions(backend.NewCollection[Forwarder](client, Endpoint).List, func(f Forwarder) string {
		return f.Code + " · " + f.Name
	})
}
