package goodsreceipts

func checkLine(l Line) map[string]string {
	errs := map[string]string{}
	if !l.QuantityReceived.IsPositive() {
		errs["QuantityReceived"] = "Quantity Received must be greater than 0"
	}
	switch {
	case l.QuantityRejected.IsNegative():
		errs["QuantityRejected"] = "Quantity Rejected must not be negative"
	case l.QuantityRejected.GreaterThan(l.QuantityReceived):
		errs["QuantityRejected"] = "Quantity Rejected must not exceed Quantity Received"
	}
	return errs
}
