package forwarders

import "github.com/odyssey-erp/odyssey-console/internal/cascade"

// Forwarder is a freight carrier used by purchase orders and last-mile shipments.
type Forwarder struct {
	Code    string `json:"Code" validate:"required,max=20" wire:"required"`
	Name    string `json:"Name" validate:"required,max=120" wire:"required"`
	Address string `json:"Address" validate:"max=255"`
	cascade.Location
	Phone         string `json:"Phone" validate:"max=30"`
	Email         string `json:"Email" validate:"omitempty,email"`
	ContactPerson string `json:"ContactPerson"`
	ServiceType   string `json:"ServiceType" validate:"omitempty,oneof=Sea Air Land Courier"`
	Status        string `json:"Status" validate:"required,oneof=Active Non-Active"`
	Notes         string `json:"Notes"`
}

// Key returns the forwarder code.
func (f Forwarder) Key() string { return f.Code }

// StatusValue returns the forwarder status.
func (f Forwarder) StatusValue() string { return f.Status }
