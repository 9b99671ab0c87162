package quotations

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/odyssey-erp/odyssey-console/internal/console"
)

func TestCheckValidUntil(t *testing.T) {
	assert.Empty(t, check(Quotation{QuotationDate: "2024-05-01", ValidUntil: "2024-05-01"}))
	assert.Contains(t, check(Quotation{QuotationDate: "2024-05-10", ValidUntil: "2024-05-01"}), "ValidUntil")
	assert.Empty(t, check(Quotation{QuotationDate: "2024-05-10"}))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	res := Resource()
	q := Quotation{
		Code:          "QT-7",
		CustomerName:  "Toko Maju",
		CustomerEmail: "buyer@maju.id",
		QuotationDate: "2024-05-01",
		ValidUntil:    "2024-05-31",
		Currency:      "IDR",
		Status:        "Non-Active",
	}
	values := url.Values{}
	for k, v := range res.Encode(q) {
		values.Set(k, v)
	}
	assert.Equal(t, q, res.Decode(console.NewForm(values)))
	assert.Equal(t, "QT-8", res.SetKey(q, "QT-8").Code)
}
