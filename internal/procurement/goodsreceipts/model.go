package goodsreceipts

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// GoodsReceipt records goods arriving at a store against a purchase order.
type GoodsReceipt struct {
	Code              string `json:"Code" validate:"required,max=20" wire:"required"`
	PurchaseOrderCode string `json:"PurchaseOrderCode" validate:"required" wire:"required"`
	StoreCode         string `json:"StoreCode" validate:"required"`
	ReceivedDate      string `json:"ReceivedDate" validate:"required,datetime=2006-01-02"`
	ReceivedBy        string `json:"ReceivedBy" validate:"max=80"`
	Status            string `json:"Status" validate:"required,oneof=Active Non-Active"`
	Notes             string `json:"Notes"`
}

func (g GoodsReceipt) Key() string         { return g.Code }
func (g GoodsReceipt) StatusValue() string { return g.Status }

// Line is one received product.
type Line struct {
	ID               int             `json:"Id"`
	ProductCode      string          `json:"ProductCode" validate:"required" wire:"required"`
	QuantityReceived decimal.Decimal `json:"QuantityReceived"`
	QuantityRejected decimal.Decimal `json:"QuantityRejected"`
	BatchNumber      string          `json:"BatchNumber" validate:"max=40"`
	ExpiryDate       string          `json:"ExpiryDate" validate:"omitempty,datetime=2006-01-02"`
	Notes            string          `json:"Notes"`
}

func (l Line) Key() string { return strconv.Itoa(l.ID) }

// Accepted is the received quantity less rejects.
func (l Line) Accepted() decimal.Decimal { return l.QuantityReceived.Sub(l.QuantityRejected) }
