package companies

import "github.com/odyssey-erp/odyssey-console/internal/cascade"

// Company is a legal entity that owns stores and issues documents.
type Company struct {
	Code    string `json:"Code" validate:"required,max=20" wire:"required"`
	Name    string `json:"Name" validate:"required,max=120" wire:"required"`
	TaxID   string `json:"TaxId" validate:"omitempty,max=30"`
	Address string `json:"Address" validate:"max=255"`
	cascade.Location
	Phone  string `json:"Phone" validate:"max=30"`
	Email  string `json:"Email" validate:"omitempty,email"`
	Status string `json:"Status" validate:"required,oneof=Active Non-Active"`
	Notes  string `json:"Notes"`
}

// Key returns the company code.
func (c Company) Key() string { return c.Code }

// StatusValue returns the company status.
func (c Company) StatusValue() string { return c.Status }
