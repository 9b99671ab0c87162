// Package cascade derives dependent form fields from a selected parent
// reference using lookup collections already held in memory.
package cascade

import (
	"context"
	"strconv"
	"strings"

	"github.com/odyssey-erp/odyssey-console/internal/lookup"
)

// CityPatch carries the fields that follow a city selection.
type CityPatch struct {
	ProvinceID   string `json:"ProvinceId"`
	ProvinceName string `json:"ProvinceName"`
	CountryID    string `json:"CountryId"`
	CountryName  string `json:"CountryName"`
}

// ChannelPatch carries the fields that follow a channel selection.
type ChannelPatch struct {
	InitialChannel      string `json:"InitialChannel"`
	CategoryFromChannel string `json:"CategoryFromChannel"`
	SKUCodeEcommerce    string `json:"SKUCodeEcommerce"`
}

// Places holds the location collections a city cascade joins across.
type Places struct {
	Cities    []lookup.City
	Provinces []lookup.Province
	Countries []lookup.Country
}

// LoadPlaces reads every location collection from lookups.
func LoadPlaces(ctx context.Context, lookups Lookups) (Places, error) {
	var p Places
	var err error
	if p.Cities, err = lookups.Cities(ctx); err != nil {
		return Places{}, err
	}
	if p.Provinces, err = lookups.Provinces(ctx); err != nil {
		return Places{}, err
	}
	if p.Countries, err = lookups.Countries(ctx); err != nil {
		return Places{}, err
	}
	return p, nil
}

// ResolveCity looks the city up by id. Names the city row does not embed are
// joined from the province and country collections. Unknown or malformed ids
// yield an empty patch.
func ResolveCity(id string, p Places) CityPatch {
	n, ok := parseID(id)
	if !ok {
		return CityPatch{}
	}
	for _, c := range p.Cities {
		if c.ID != n {
			continue
		}
		provinceName, countryID, countryName := c.ProvinceName, c.CountryID, c.CountryName
		if prov, ok := p.province(c.ProvinceID); ok {
			if provinceName == "" {
				provinceName = prov.Name
			}
			if countryID == 0 {
				countryID = prov.CountryID
			}
			if countryName == "" && prov.CountryID == countryID {
				countryName = prov.CountryName
			}
		}
		if countryName == "" {
			countryName = p.countryName(countryID)
		}
		return CityPatch{
			ProvinceID:   itoa(c.ProvinceID),
			ProvinceName: provinceName,
			CountryID:    itoa(countryID),
			CountryName:  countryName,
		}
	}
	return CityPatch{}
}

func (p Places) province(id int) (lookup.Province, bool) {
	if id == 0 {
		return lookup.Province{}, false
	}
	for _, prov := range p.Provinces {
		if prov.ID == id {
			return prov, true
		}
	}
	return lookup.Province{}, false
}

func (p Places) countryName(id int) string {
	if id == 0 {
		return ""
	}
	for _, c := range p.Countries {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

// ResolveChannel looks the channel up by id and composes the e-commerce SKU
// from the channel initial and baseSKU.
func ResolveChannel(id, baseSKU string, channels []lookup.Channel) ChannelPatch {
	n, ok := parseID(id)
	if !ok {
		return ChannelPatch{}
	}
	for _, c := range channels {
		if c.ID != n {
			continue
		}
		patch := ChannelPatch{InitialChannel: c.Initial, CategoryFromChannel: c.Category}
		patch.SKUCodeEcommerce = ComposeSKU(c.Initial, baseSKU)
		return patch
	}
	return ChannelPatch{}
}

// ComposeSKU joins a channel initial and a base SKU. Either part missing
// yields "".
func ComposeSKU(initial, baseSKU string) string {
	initial = strings.TrimSpace(initial)
	baseSKU = strings.TrimSpace(baseSKU)
	if initial == "" || baseSKU == "" {
		return ""
	}
	return initial + "-" + baseSKU
}

func parseID(id string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return 0, false
	}
	return n, true
}

// itoa renders zero as "" so absent references stay blank.
func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
