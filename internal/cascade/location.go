package cascade

import (
	"strconv"

	"github.com/odyssey-erp/odyssey-console/internal/lookup"
)

// Location is the city reference embedded by addressable records. Province
// and country always follow the city.
type Location struct {
	CityID       int    `json:"CityId" validate:"required"`
	CityName     string `json:"CityName"`
	ProvinceID   int    `json:"ProvinceId"`
	ProvinceName string `json:"ProvinceName"`
	CountryID    int    `json:"CountryId"`
	CountryName  string `json:"CountryName"`
}

// Resolve re-derives every dependent field from CityID.
func (l Location) Resolve(p Places) Location {
	patch := ResolveCity(strconv.Itoa(l.CityID), p)
	out := Location{CityID: l.CityID}
	for _, c := range p.Cities {
		if c.ID == l.CityID {
			out.CityName = c.Name
			break
		}
	}
	out.ProvinceID, _ = strconv.Atoi(patch.ProvinceID)
	out.ProvinceName = patch.ProvinceName
	out.CountryID, _ = strconv.Atoi(patch.CountryID)
	out.CountryName = patch.CountryName
	return out
}

// Channel is the sales channel reference embedded by products.
type Channel struct {
	ChannelID           int    `json:"ChannelId" validate:"required"`
	InitialChannel      string `json:"InitialChannel"`
	CategoryFromChannel string `json:"CategoryFromChannel"`
	SKUCodeEcommerce    string `json:"SKUCodeEcommerce"`
}

// Resolve re-derives the channel fields from ChannelID and baseSKU.
func (c Channel) Resolve(baseSKU string, channels []lookup.Channel) Channel {
	patch := ResolveChannel(strconv.Itoa(c.ChannelID), baseSKU, channels)
	return Channel{
		ChannelID:           c.ChannelID,
		InitialChannel:      patch.InitialChannel,
		CategoryFromChannel: patch.CategoryFromChannel,
		SKUCodeEcommerce:    patch.SKUCodeEcommerce,
	}
}
