package purchaseorders

func check(p PurchaseOrder) map[string]string {
	errs := map[string]string{}
	// dates share the yyyy-mm-dd layout so they compare as strings
	if p.ExpectedDate != "" && p.OrderDate != "" && p.ExpectedDate < p.OrderDate {
		errs["ExpectedDate"] = "Expected Date must not be before Order Date"
	}
	return errs
}

func checkLine(l Line) map[string]string {
	errs := map[string]string{}
	if !l.Quantity.IsPositive() {
		errs["Quantity"] = "Quantity must be greater than 0"
	}
	if l.UnitPrice.IsNegative() {
		errs["UnitPrice"] = "Unit Price must not be negative"
	}
	return errs
}
