package products

import "strings"

// check keeps the base SKU free of the separator used by the e-commerce SKU.
func check(p Product) map[string]string {
	errs := map[string]string{}
	if strings.Contains(p.SKU, " ") {
		errs["SKU"] = "SKU must not contain spaces"
	}
	if strings.HasPrefix(p.SKU, "-") || strings.HasSuffix(p.SKU, "-") {
		errs["SKU"] = "SKU must not start or end with a dash"
	}
	return errs
}
