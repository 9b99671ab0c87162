package products

import "github.com/odyssey-erp/odyssey-console/internal/cascade"

// Product is a sellable item. Its e-commerce SKU is derived from the channel
// initial and the base SKU.
type Product struct {
	Code       string `json:"Code" validate:"required,max=20" wire:"required"`
	Name       string `json:"Name" validate:"required,max=160" wire:"required"`
	SKU        string `json:"SKU" validate:"required,max=40"`
	CategoryID int    `json:"CategoryId" validate:"required"`
	cascade.Channel
	Unit   string `json:"Unit" validate:"required"`
	Brand  string `json:"Brand"`
	Status string `json:"Status" validate:"required,oneof=Active Non-Active"`
	Notes  string `json:"Notes"`
}

// Key returns the product code.
func (p Product) Key() string { return p.Code }

// StatusValue returns the product status.
func (p Product) StatusValue() string { return p.Status }
