package pricing

import (
	"context"

	"github.com/odyssey-erp/odyssey-console/internal/cascade"
	"github.com/odyssey-erp/odyssey-console/internal/console"
	"github.com/odyssey-erp/odyssey-console/internal/export"
	"github.com/odyssey-erp/odyssey-console/internal/lookup"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
)

const Path = "/masterdata/pricing"

var Endpoint = backend.Endpoint{Domain: "masterdata", Collection: "pricing"}

// OptionProducts names the product option source used by the price form.
const OptionProducts = "products"

func Resource(lookups cascade.Lookups) console.Resource[Price] {
	return console.Resource[Price]{
		Name:     "Pricing",
		Singular: "Price",
		Columns: []console.Column[Price]{
			{Header: "Code", Value: func(p Price) string { return p.Code }},
			{Header: "Product", Value: func(p Price) string { return p.ProductCode }},
			{Header: "Channel", Value: func(p Price) string { return p.ChannelName }},
			{Header: "Price", Value: func(p Price) string { return p.Currency + " " + export.Amount(p.Price) }, Align: export.AlignRight},
			{Header: "Discount", Value: func(p Price) string {
				if p.DiscountPrice.IsZero() {
					return ""
				}
				return p.Currency + " " + export.Amount(p.DiscountPrice)
			}, Align: export.AlignRight},
			{Header: "Effective", Value: func(p Price) string { return p.EffectiveDate }},
			{Header: "Status", Value: func(p Price) string { return p.Status }},
		},
		Fields: []console.Field{
			{Name: "Code", Label: "Code", Type: console.InputText, Required: true, Immutable: true},
			{Name: "ProductCode", Label: "Product", Type: console.InputSelect, Options: OptionProducts, Required: true},
			{Name: "ChannelId", Label: "Channel", Type: console.InputSelect, Options: lookup.Channels, Required: true},
			{Name: "Currency", Label: "Currency", Type: console.InputSelect, Static: console.Choices("IDR", "USD", "SGD"), Required: true},
			{Name: "Price", Label: "Price", Type: console.InputNumber, Required: true},
			{Name: "DiscountPrice", Label: "Discount Price", Type: console.InputNumber},
			{Name: "EffectiveDate", Label: "Effective Date", Type: console.InputDate, Required: true},
			{Name: "Status", Label: "Status", Type: console.InputStatus, Required: true},
			{Name: "Notes", Label: "Notes", Type: console.InputTextarea},
		},
		Decode: func(f console.Form) Price {
			return Price{
				Code:          f.String("Code"),
				ProductCode:   f.String("ProductCode"),
				ChannelID:     f.Int("ChannelId"),
				Currency:      f.String("Currency"),
				Price:         f.Decimal("Price"),
				DiscountPrice: f.Decimal("DiscountPrice"),
				EffectiveDate: f.Date("EffectiveDate"),
				Status:        f.Status("Status"),
				Notes:         f.String("Notes"),
			}
		},
		Encode: func(p Price) map[string]string {
			return map[string]string{
				"Code":          p.Code,
				"ProductCode":   p.ProductCode,
				"ChannelId":     console.Itoa(p.ChannelID),
				"Currency":      p.Currency,
				"Price":         console.Dec(p.Price),
				"DiscountPrice": console.Dec(p.DiscountPrice),
				"EffectiveDate": p.EffectiveDate,
				"Status":        p.Status,
				"Notes":         p.Notes,
			}
		},
		SetKey: func(p Price, key string) Price { p.Code = key; return p },
		Prepare: func(ctx context.Context, p Price) (Price, error) {
			channels, err := lookups.Channels(ctx)
			if err != nil {
				return p, err
			}
			p.ChannelName = ""
			for _, ch := range channels {
				if ch.ID == p.ChannelID {
					p.ChannelName = ch.Name
				}
			}
			return p, nil
		},
		Check: check,
	}
}

func NewHandler(deps console.Deps, client *backend.Client, lookups cascade.Lookups) *console.ResourceHandler[Price] {
	return console.NewResourceHandler[Price](deps, Path, backend.NewCollection[Price](client, Endpoint), Resource(lookups))
}
