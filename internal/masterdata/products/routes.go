package products

import (
	"context"

	"github.com/odyssey-erp/odyssey-console/internal/cascade"
	"github.com/odyssey-erp/odyssey-console/internal/console"
	"github.com/odyssey-erp/odyssey-console/internal/lookup"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
)

const Path = "/masterdata/products"

var Endpoint = backend.Endpoint{Domain: "masterdata", Collection: "products"}

// Resource describes the product pages. The channel select fills the
// channel initial, category and e-commerce SKU.
func Resource(lookups cascade.Lookups) console.Resource[Product] {
	fields := []console.Field{
		{Name: "Code", Label: "Code", Type: console.InputText, Required: true, Immutable: true},
		{Name: "Name", Label: "Name", Type: console.InputText, Required: true},
		{Name: "SKU", Label: "SKU", Type: console.InputText, Required: true, SKU: true},
		{Name: "CategoryId", Label: "Category", Type: console.InputSelect, Options: lookup.Categories, Required: true},
	}
	fields = append(fields, console.ChannelFields()...)
	fields = append(fields,
		console.Field{Name: "Unit", Label: "Unit", Type: console.InputSelect, Static: console.Choices("PCS", "BOX", "PACK", "KG"), Required: true},
		console.Field{Name: "Brand", Label: "Brand", Type: console.InputText},
		console.Field{Name: "Status", Label: "Status", Type: console.InputStatus, Required: true},
		console.Field{Name: "Notes", Label: "Notes", Type: console.InputTextarea},
	)
	return console.Resource[Product]{
		Name:     "Products",
		Singular: "Product",
		Columns: []console.Column[Product]{
			{Header: "Code", Value: func(p Product) string { return p.Code }},
			{Header: "Name", Value: func(p Product) string { return p.Name }},
			{Header: "SKU", Value: func(p Product) string { return p.SKU }},
			{Header: "E-commerce SKU", Value: func(p Product) string { return p.SKUCodeEcommerce }},
			{Header: "Channel Category", Value: func(p Product) string { return p.CategoryFromChannel }},
			{Header: "Status", Value: func(p Product) string { return p.Status }},
		},
		Fields: fields,
		Decode: decode,
		Encode: encode,
		SetKey: func(p Product, key string) Product { p.Code = key; return p },
		Prepare: func(ctx context.Context, p Product) (Product, error) {
			ch, err := console.ResolveChannel(ctx, lookups, p.Channel, p.SKU)
			p.Channel = ch
			return p, err
		},
		Check: check,
	}
}

func decode(f console.Form) Product {
	return Product{
		Code:       f.String("Code"),
		Name:       f.String("Name"),
		SKU:        f.String("SKU"),
		CategoryID: f.Int("CategoryId"),
		Channel:    console.DecodeChannel(f),
		Unit:       f.String("Unit"),
		Brand:      f.String("Brand"),
		Status:     f.Status("Status"),
		Notes:      f.String("Notes"),
	}
}

func encode(p Product) map[string]string {
	values := map[string]string{
		"Code":       p.Code,
		"Name":       p.Name,
		"SKU":        p.SKU,
		"CategoryId": console.Itoa(p.CategoryID),
		"Unit":       p.Unit,
		"Brand":      p.Brand,
		"Status":     p.Status,
		"Notes":      p.Notes,
	}
	console.EncodeChannel(p.Channel, values)
	return values
}

func NewHandler(deps console.Deps, client *backend.Client, lookups cascade.Lookups) *console.ResourceHandler[Product] {
	return console.NewResourceHandler[Product](deps, Path, backend.NewCollection[Product](client, Endpoint), Resource(lookups))
}

// Options lists products for select inputs.
func Options(client *backend.Client) console.OptionSource {
	return console.RecordOptions(backend.NewCollection[Product](client, Endpoint).List, func(p Product) string {
		return p.Code + " · " + p.Name
	})
}
