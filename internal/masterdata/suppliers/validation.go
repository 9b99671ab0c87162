package suppliers

// check requires an account number once a bank is chosen.
func check(s Supplier) map[string]string {
	errs := map[string]string{}
	if s.BankID != 0 && s.AccountNumber == "" {
		errs["AccountNumber"] = "Account Number is required when a bank is selected"
	}
	return errs
}
