package pricing

import "github.com/shopspring/decimal"

// Price is the selling price of a product on one channel from a date on.
type Price struct {
	Code          string          `json:"Code" validate:"required,max=20" wire:"required"`
	ProductCode   string          `json:"ProductCode" validate:"required" wire:"required"`
	ChannelID     int             `json:"ChannelId" validate:"required"`
	ChannelName   string          `json:"ChannelName"`
	Currency      string          `json:"Currency" validate:"required,len=3"`
	Price         decimal.Decimal `json:"Price"`
	DiscountPrice decimal.Decimal `json:"DiscountPrice"`
	EffectiveDate string          `json:"EffectiveDate" validate:"required,datetime=2006-01-02"`
	Status        string          `json:"Status" validate:"required,oneof=Active Non-Active"`
	Notes         string          `json:"Notes"`
}

// Key returns the price code.
func (p Price) Key() string { return p.Code }

// StatusValue returns the price status.
func (p Price) StatusValue() string { return p.Status }
