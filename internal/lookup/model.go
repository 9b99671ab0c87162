package lookup

import "strconv"

// Country is a master-data lookup row.
type Country struct {
	ID   int    `json:"Id" wire:"required"`
	Name string `json:"Name"`
}

// Province is a master-data lookup row.
type Province struct {
	ID          int    `json:"Id" wire:"required"`
	Name        string `json:"Name"`
	CountryID   int    `json:"CountryId"`
	CountryName string `json:"CountryName"`
}

// City embeds its province and country so forms can autofill them.
type City struct {
	ID           int    `json:"Id" wire:"required"`
	Name         string `json:"Name"`
	ProvinceID   int    `json:"ProvinceId"`
	ProvinceName string `json:"ProvinceName"`
	CountryID    int    `json:"CountryId"`
	CountryName  string `json:"CountryName"`
}

// Bank is a master-data lookup row.
type Bank struct {
	ID   int    `json:"Id" wire:"required"`
	Code string `json:"Code"`
	Name string `json:"Name"`
}

// Category is a product category.
type Category struct {
	ID   int    `json:"Id" wire:"required"`
	Name string `json:"Name"`
}

// Channel is a sales channel; Initial prefixes e-commerce SKUs.
type Channel struct {
	ID       int    `json:"Id" wire:"required"`
	Name     string `json:"Name"`
	Initial  string `json:"Initial"`
	Category string `json:"Category"`
}

// Option is one entry of a select input.
type Option struct {
	Value string
	Label string
}

// CityOptions lists cities for a select input.
func CityOptions(cities []City) []Option {
	out := make([]Option, 0, len(cities))
	for _, c := range cities {
		out = append(out, Option{Value: strconv.Itoa(c.ID), Label: c.Name})
	}
	return out
}

// BankOptions lists banks for a select input.
func BankOptions(banks []Bank) []Option {
	out := make([]Option, 0, len(banks))
	for _, b := range banks {
		out = append(out, Option{Value: strconv.Itoa(b.ID), Label: b.Name})
	}
	return out
}

// CategoryOptions lists categories for a select input.
func CategoryOptions(categories []Category) []Option {
	out := make([]Option, 0, len(categories))
	for _, c := range categories {
		out = append(out, Option{Value: strconv.Itoa(c.ID), Label: c.Name})
	}
	return out
}

// ChannelOptions lists channels for a select input.
func ChannelOptions(channels []Channel) []Option {
	out := make([]Option, 0, len(channels))
	for _, c := range channels {
		out = append(out, Option{Value: strconv.Itoa(c.ID), Label: c.Name})
	}
	return out
}
