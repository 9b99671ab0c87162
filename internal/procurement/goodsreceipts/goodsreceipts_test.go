package goodsreceipts

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCheckLineQuantities(t *testing.T) {
	ok := Line{QuantityReceived: decimal.NewFromInt(10), QuantityRejected: decimal.NewFromInt(2)}
	assert.Empty(t, checkLine(ok))
	assert.Equal(t, "8", ok.Accepted().String())

	over := Line{QuantityReceived: decimal.NewFromInt(1), QuantityRejected: decimal.NewFromInt(2)}
	assert.Contains(t, checkLine(over), "QuantityRejected")
	assert.Contains(t, checkLine(Line{}), "QuantityReceived")
}

func TestLinesSetKeyFromRoute(t *testing.T) {
	line := Lines().SetKey(Line{ProductCode: "SKU-1"}, "12")
	assert.Equal(t, 12, line.ID)
	assert.Equal(t, "SKU-1", line.ProductCode)
}
