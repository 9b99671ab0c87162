package pricing

func check(p Price) map[string]string {
	errs := map[string]string{}
	if !p.Price.IsPositive() {
		errs["Price"] = "Price must be greater than 0"
	}
	if p.DiscountPrice.IsNegative() {
		errs["DiscountPrice"] = "Discount Price must not be negative"
	} else if !p.DiscountPrice.IsZero() && p.DiscountPrice.GreaterThanOrEqual(p.Price) {
		errs["DiscountPrice"] = "Discount Price must be lower than Price"
	}
	return errs
}
