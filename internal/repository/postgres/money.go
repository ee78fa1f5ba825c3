package postgres

import (
	"fmt"
	"strconv"
	"strings"
)

// numericStringToCents converts a NUMERIC(10,2) string like "15.00" to cents.
// Parsing stays in integer arithmetic so amounts round-trip exactly.
func numericStringToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty numeric string")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	wholePart, fracPart, _ := strings.Cut(s, ".")
	if wholePart == "" {
		wholePart = "0"
	}
	whole, err := strconv.ParseInt(wholePart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse numeric %q: %w", s, err)
	}

	var frac, carry int64
	if fracPart != "" {
		// Normalize to exactly two fractional digits, rounding half up.
		if len(fracPart) > 2 {
			if fracPart[2] >= '5' && fracPart[2] <= '9' {
				carry = 1
			}
			fracPart = fracPart[:2]
		}
		for len(fracPart) < 2 {
			fracPart += "0"
		}
		frac, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse numeric %q: %w", s, err)
		}
	}

	cents := whole*100 + frac + carry
	if neg {
		cents = -cents
	}
	return cents, nil
}

// centsToNumericString converts cents to a NUMERIC(10,2) string.
func centsToNumericString(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
