package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseEuropeanDecimal parses "1.234,56" as 1234.56. A value without a comma
// and a single dot followed by one or two digits is read as a decimal point.
func parseEuropeanDecimal(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(s, " ", "")

	if !strings.Contains(clean, ",") && strings.Count(clean, ".") == 1 {
		if i := strings.Index(clean, "."); len(clean)-i-1 <= 2 {
			return decimal.NewFromString(clean)
		}
	}

	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	return decimal.NewFromString(clean)
}
