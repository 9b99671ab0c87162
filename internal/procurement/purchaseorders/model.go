package purchaseorders

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// PurchaseOrder is the header of an order placed with a supplier.
type PurchaseOrder struct {
	Code         string `json:"Code" validate:"required,max=20" wire:"required"`
	SupplierCode string `json:"SupplierCode" validate:"required" wire:"required"`
	OrderDate    string `json:"OrderDate" validate:"required,datetime=2006-01-02"`
	ExpectedDate string `json:"ExpectedDate" validate:"omitempty,datetime=2006-01-02"`
	Currency     string `json:"Currency" validate:"required,len=3"`
	Status       string `json:"Status" validate:"required,oneof=Active Non-Active"`
	Notes        string `json:"Notes"`
}

func (p PurchaseOrder) Key() string         { return p.Code }
func (p PurchaseOrder) StatusValue() string { return p.Status }

// Line is one ordered product.
type Line struct {
	ID          int             `json:"Id"`
	ProductCode string          `json:"ProductCode" validate:"required" wire:"required"`
	Description string          `json:"Description" validate:"max=200"`
	Quantity    decimal.Decimal `json:"Quantity"`
	UnitPrice   decimal.Decimal `json:"UnitPrice"`
	Notes       string          `json:"Notes"`
}

// Key returns the backend row id.
func (l Line) Key() string { return strconv.Itoa(l.ID) }

// Amount is quantity times unit price.
func (l Line) Amount() decimal.Decimal { return l.Quantity.Mul(l.UnitPrice) }
