package suppliers

import (
	"github.com/odyssey-erp/odyssey-console/internal/cascade"
)

// Supplier is a vendor goods are purchased from.
type Supplier struct {
	Code    string `json:"Code" validate:"required,max=20" wire:"required"`
	Name    string `json:"Name" validate:"required,max=120" wire:"required"`
	Address string `json:"Address" validate:"max=255"`
	cascade.Location
	Phone         string `json:"Phone" validate:"max=30"`
	Email         string `json:"Email" validate:"omitempty,email"`
	ContactPerson string `json:"ContactPerson"`
	BankID        int    `json:"BankId"`
	BankName      string `json:"BankName"`
	AccountNumber string `json:"AccountNumber" validate:"omitempty,numeric"`
	Status        string `json:"Status" validate:"required,oneof=Active Non-Active" wire:"omitempty,oneof=Active Non-Active"`
	Notes         string `json:"Notes"`
}

// Key returns the supplier code.
func (s Supplier) Key() string { return s.Code }

// StatusValue returns the supplier status.
func (s Supplier) StatusValue() string { return s.Status }
