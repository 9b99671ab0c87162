package companies

import "strings"

// check rejects tax ids with characters other than digits, dots and dashes.
func check(c Company) map[string]string {
	errs := map[string]string{}
	if strings.Trim(c.TaxID, "0123456789.-") != "" {
		errs["TaxId"] = "Tax ID may only contain digits, dots and dashes"
	}
	return errs
}
