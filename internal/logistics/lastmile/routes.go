package lastmile

import (
	"context"

	"github.com/odyssey-erp/odyssey-console/internal/cascade"
	"github.com/odyssey-erp/odyssey-console/internal/console"
	"github.com/odyssey-erp/odyssey-console/internal/export"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
)

const Path = "/logistics/last-mile"

var Endpoint = backend.Endpoint{Domain: "logistics", Collection: "last-mile"}

const (
	OptionForwarders = "forwarders"
	OptionStores     = "stores"
)

func Resource(lookups cascade.Lookups) console.Resource[Shipment] {
	fields := []console.Field{
		{Name: "Code", Label: "Code", Type: console.InputText, Required: true, Immutable: true},
		{Name: "ForwarderCode", Label: "Forwarder", Type: console.InputSelect, Options: OptionForwarders, Required: true},
		{Name: "StoreCode", Label: "Origin Store", Type: console.InputSelect, Options: OptionStores, Required: true},
		{Name: "TrackingNumber", Label: "Tracking Number", Type: console.InputText},
		{Name: "RecipientName", Label: "Recipient", Type: console.InputText, Required: true},
		{Name: "RecipientPhone", Label: "Recipient Phone", Type: console.InputText},
		{Name: "Address", Label: "Address", Type: console.InputTextarea, Required: true},
	}
	fields = append(fields, console.CityFields()...)
	fields = append(fields,
		console.Field{Name: "ShipDate", Label: "Ship Date", Type: console.InputDate, Required: true},
		console.Field{Name: "WeightKg", Label: "Weight (kg)", Type: console.InputNumber, Required: true},
		console.Field{Name: "ShippingFee", Label: "Shipping Fee", Type: console.InputNumber},
		console.Field{Name: "Status", Label: "Status", Type: console.InputStatus, Required: true},
		console.Field{Name: "Notes", Label: "Notes", Type: console.InputTextarea},
	)
	return console.Resource[Shipment]{
		Name:     "Last-Mile Shipments",
		Singular: "Shipment",
		Columns: []console.Column[Shipment]{
			{Header: "Code", Value: func(s Shipment) string { return s.Code }},
			{Header: "Forwarder", Value: func(s Shipment) string { return s.ForwarderCode }},
			{Header: "Tracking", Value: func(s Shipment) string { return s.TrackingNumber }},
			{Header: "Recipient", Value: func(s Shipment) string { return s.RecipientName }},
			{Header: "City", Value: func(s Shipment) string { return s.CityName }},
			{Header: "Ship Date", Value: func(s Shipment) string { return s.ShipDate }},
			{Header: "Fee", Value: func(s Shipment) string { return export.Amount(s.ShippingFee) }, Align: export.AlignRight},
			{Header: "Status", Value: func(s Shipment) string { return s.Status }},
		},
		Fields: fields,
		Decode: func(f console.Form) Shipment {
			return Shipment{
				Code:           f.String("Code"),
				ForwarderCode:  f.String("ForwarderCode"),
				StoreCode:      f.String("StoreCode"),
				TrackingNumber: f.String("TrackingNumber"),
				RecipientName:  f.String("RecipientName"),
				RecipientPhone: f.String("RecipientPhone"),
				Address:        f.String("Address"),
				Location:       console.DecodeLocation(f),
				ShipDate:       f.Date("ShipDate"),
				WeightKg:       f.Decimal("WeightKg"),
				ShippingFee:    f.Decimal("ShippingFee"),
				Status:         f.Status("Status"),
				Notes:          f.String("Notes"),
			}
		},
		Encode: func(s Shipment) map[string]string {
			values := map[string]string{
				"Code":           s.Code,
				"ForwarderCode":  s.ForwarderCode,
				"StoreCode":      s.StoreCode,
				"TrackingNumber": s.TrackingNumber,
				"RecipientName":  s.RecipientName,
				"RecipientPhone": s.RecipientPhone,
				"Address":        s.Address,
				"ShipDate":       s.ShipDate,
				"WeightKg":       console.Dec(s.WeightKg),
				"ShippingFee":    console.Dec(s.ShippingFee),
				"Status":         s.Status,
				"Notes":          s.Notes,
			}
			console.EncodeLocation(s.Location, values)
			return values
		},
		SetKey: func(s Shipment, key string) Shipment { s.Code = key; return s },
		Prepare: func(ctx context.Context, s Shipment) (Shipment, error) {
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

func NewHandler(deps console.Deps, client *backend.Client, lookups cascade.Lookups) *console.ResourceHandler[Shipment] {
	return console.NewResourceHandler[Shipment](deps, Path, backend.NewCollection[Shipment](client, Endpoint), Resource(lookups))
}
