package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type orderLine struct {
	Item     string `json:"Item" validate:"required,max=8"`
	Qty      int    `json:"Qty" validate:"gt=0"`
	Discount int    `json:"Discount" validate:"gte=0"`
	Email    string `json:"Email" validate:"omitempty,email"`
	Unit     string `json:"Unit" validate:"omitempty,oneof=pcs box"`
}

func TestFieldErrorsDescribeEachRule(t *testing.T) {
	fields := []Field{
		{Name: "Item", Label: "Item"},
		{Name: "Qty", Label: "Quantity"},
		{Name: "Discount", Label: "Discount"},
		{Name: "Email", Label: "Email"},
	}
	errs := fieldErrors(newValidator(), orderLine{Qty: 0, Discount: -1, Email: "nope", Unit: "kg"}, fields)

	assert.Equal(t, map[string]string{
		"Item":     "Item is required",
		"Qty":      "Quantity must be greater than 0",
		"Discount": "Discount must be at least 0",
		"Email":    "Email must be a valid email address",
		"Unit":     "Unit must be one of pcs box",
	}, errs)
}

func TestFieldErrorsMaxLength(t *testing.T) {
	errs := fieldErrors(newValidator(), orderLine{Item: "TOO-LONG-CODE", Qty: 1}, nil)
	assert.Equal(t, map[string]string{"Item": "Item must be at most 8 characters"}, errs)
}

func TestFieldErrorsValid(t *testing.T) {
	assert.Empty(t, fieldErrors(newValidator(), orderLine{Item: "A1", Qty: 2, Unit: "box"}, nil))
}
