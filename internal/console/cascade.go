package console

import (
	"context"

	"github.com/odyssey-erp/odyssey-console/internal/cascade"
	"github.com/odyssey-erp/odyssey-console/internal/lookup"
)

// CityFields returns the city select followed by the fields it fills.
func CityFields() []Field {
	return []Field{
		{Name: "CityId", Label: "City", Type: InputSelect, Options: lookup.Cities, Required: true, Cascade: CascadeCity},
		{Name: "ProvinceName", Label: "Province", Type: InputText, ReadOnly: true, Fill: "ProvinceName"},
		{Name: "CountryName", Label: "Country", Type: InputText, ReadOnly: true, Fill: "CountryName"},
	}
}

// DecodeLocation reads the city selection. Derived fields are kept as
// submitted until ResolveLocation replaces them.
func DecodeLocation(f Form) cascade.Location {
	return cascade.Location{
		CityID:       f.Int("CityId"),
		ProvinceName: f.String("ProvinceName"),
		CountryName:  f.String("CountryName"),
	}
}

// EncodeLocation writes the location into form values.
func EncodeLocation(l cascade.Location, values map[string]string) {
	values["CityId"] = Itoa(l.CityID)
	values["ProvinceName"] = l.ProvinceName
	values["CountryName"] = l.CountryName
}

// ResolveLocation re-derives the location from the shared location lists.
func ResolveLocation(ctx context.Context, lookups cascade.Lookups, l cascade.Location) (cascade.Location, error) {
	places, err := cascade.LoadPlaces(ctx, lookups)
	if err != nil {
		return l, err
	}
	return l.Resolve(places), nil
}

// ChannelFields returns the channel select followed by the fields it fills.
func ChannelFields() []Field {
	return []Field{
		{Name: "ChannelId", Label: "Channel", Type: InputSelect, Options: lookup.Channels, Required: true, Cascade: CascadeChannel},
		{Name: "InitialChannel", Label: "Channel Initial", Type: InputText, ReadOnly: true, Fill: "InitialChannel"},
		{Name: "CategoryFromChannel", Label: "Channel Category", Type: InputText, ReadOnly: true, Fill: "CategoryFromChannel"},
		{Name: "SKUCodeEcommerce", Label: "E-commerce SKU", Type: InputText, ReadOnly: true, Fill: "SKUCodeEcommerce"},
	}
}

// DecodeChannel reads the channel selection.
func DecodeChannel(f Form) cascade.Channel {
	return cascade.Channel{
		ChannelID:           f.Int("ChannelId"),
		InitialChannel:      f.String("InitialChannel"),
		CategoryFromChannel: f.String("CategoryFromChannel"),
		SKUCodeEcommerce:    f.String("SKUCodeEcommerce"),
	}
}

// EncodeChannel writes the channel into form values.
func EncodeChannel(c cascade.Channel, values map[string]string) {
	values["ChannelId"] = Itoa(c.ChannelID)
	values["InitialChannel"] = c.InitialChannel
	values["CategoryFromChannel"] = c.CategoryFromChannel
	values["SKUCodeEcommerce"] = c.SKUCodeEcommerce
}

// ResolveChannel re-derives the channel fields from the shared channel list.
func ResolveChannel(ctx context.Context, lookups cascade.Lookups, c cascade.Channel, baseSKU string) (cascade.Channel, error) {
	channels, err := lookups.Channels(ctx)
	if err != nil {
		return c, err
	}
	return c.Resolve(baseSKU, channels), nil
}
