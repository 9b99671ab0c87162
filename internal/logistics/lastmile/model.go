// Package lastmile serves last-mile shipments handed to forwarders.
package lastmile

import (
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/odyssey-console/internal/cascade"
)

// Shipment is one parcel delivered to a recipient city by a forwarder.
type Shipment struct {
	Code           string `json:"Code" validate:"required,max=20" wire:"required"`
	ForwarderCode  string `json:"ForwarderCode" validate:"required" wire:"required"`
	StoreCode      string `json:"StoreCode" validate:"required"`
	TrackingNumber string `json:"TrackingNumber" validate:"max=60"`
	RecipientName  string `json:"RecipientName" validate:"required,max=120"`
	RecipientPhone string `json:"RecipientPhone" validate:"max=30"`
	Address        string `json:"Address" validate:"required"`
	cascade.Location
	ShipDate    string          `json:"ShipDate" validate:"required,datetime=2006-01-02"`
	WeightKg    decimal.Decimal `json:"WeightKg"`
	ShippingFee decimal.Decimal `json:"ShippingFee"`
	Status      string          `json:"Status" validate:"required,oneof=Active Non-Active"`
	Notes       string          `json:"Notes"`
}

func (s Shipment) Key() string         { return s.Code }
func (s Shipment) StatusValue() string { return s.Status }

func check(s Shipment) map[string]string {
	errs := map[string]string{}
	if !s.WeightKg.IsPositive() {
		errs["WeightKg"] = "Weight must be greater than 0"
	}
	if s.ShippingFee.IsNegative() {
		errs["ShippingFee"] = "Shipping Fee must not be negative"
	}
	return errs
}
