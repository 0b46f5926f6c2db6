// Package currency converts between integer cents and BRL display strings.
// Everything past this boundary operates on integer cents only.
package currency

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid currency amount")

// FormatCents renders integer cents as a BRL display string,
// e.g. 123456 -> "R$ 1.234,56".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	reais := cents / 100
	rest := cents % 100

	digits := strconv.FormatInt(reais, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), rest)
}

// ParseToCents parses a BRL display string back to integer cents, rounding
// to the nearest cent. Accepts "R$ 1.234,56", "1234,56", "1234.56" and plain
// integer strings.
func ParseToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	// Brazilian format uses '.' for thousands and ',' for decimals. A string
	// with a comma is unambiguous; without one, a single dot followed by one
	// or two digits is read as a decimal point.
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if i := strings.LastIndex(s, "."); i >= 0 {
		frac := len(s) - i - 1
		if frac > 2 || strings.Count(s, ".") > 1 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	cents := int64(math.Round(value * 100))
	if negative {
		cents = -cents
	}
	return cents, nil
}
