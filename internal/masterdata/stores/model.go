package stores

import "github.com/odyssey-erp/odyssey-console/internal/cascade"

// Store is a warehouse or outlet owned by a company.
type Store struct {
	Code        string `json:"Code" validate:"required,max=20" wire:"required"`
	Name        string `json:"Name" validate:"required,max=120" wire:"required"`
	CompanyCode string `json:"CompanyCode" validate:"required"`
	StoreType   string `json:"StoreType" validate:"required,oneof=Warehouse Outlet Online"`
	Address     string `json:"Address" validate:"max=255"`
	cascade.Location
	Phone  string `json:"Phone" validate:"max=30"`
	Status string `json:"Status" validate:"required,oneof=Active Non-Active"`
	Notes  string `json:"Notes"`
}

// Key returns the store code.
func (s Store) Key() string { return s.Code }

// StatusValue returns the store status.
func (s Store) StatusValue() string { return s.Status }
