package fieldparse

import (
	"strings"

	"github.com/shopspring/decimal"
)

var amountNoise = strings.NewReplacer(
	"$", "",
	"€", "",
	"£", "",
	"¥", "",
	" ", "",
	"\t", "",
	"\u00a0", "",
)

// ParseAmount parses a monetary cell into an exact decimal. Currency symbols
// and whitespace are ignored. A comma is accepted only as a thousands
// separator in the integer part, so a comma decimal such as "12,50" is
// rejected rather than read as 1250. A leading or trailing sign
// and a parenthesized value are recognized, so "(12.50)" and "12.50-" are both
// -12.50.
func ParseAmount(text string) (decimal.Decimal, error) {
	value := strings.TrimSpace(text)
	if value == "" {
		return decimal.Zero, newFieldError("amount", text, ErrBlank)
	}

	negative := false
	if strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")") {
		negative = true
		value = value[1 : len(value)-1]
	}

	value = amountNoise.Replace(value)

	switch {
	case strings.HasPrefix(value, "-"):
		negative = !negative
		value = value[1:]
	case strings.HasPrefix(value, "+"):
		value = value[1:]
	case strings.HasSuffix(value, "-"):
		negative = !negative
		value = value[:len(value)-1]
	}
	// "-$5.00" leaves the symbol after the sign.
	value = amountNoise.Replace(value)

	value, ok := stripGrouping(value)
	if !ok || !isPlainDecimal(value) {
		return decimal.Zero, newFieldError("amount", text, ErrBadAmount)
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, newFieldError("amount", text, ErrBadAmount)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

// LooksLikeAmount reports whether text parses as an amount.
func LooksLikeAmount(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	_, err := ParseAmount(text)
	return err == nil
}

// stripGrouping removes thousands separators. Commas may only appear in the
// integer part, with a leading group of one to three digits followed by
// groups of exactly three.
func stripGrouping(s string) (string, bool) {
	if !strings.Contains(s, ",") {
		return s, true
	}
	integer, fraction, _ := strings.Cut(s, ".")
	if strings.Contains(fraction, ",") {
		return "", false
	}
	groups := strings.Split(integer, ",")
	if n := len(groups[0]); n < 1 || n > 3 {
		return "", false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return "", false
		}
	}
	return strings.ReplaceAll(s, ",", ""), true
}

// isPlainDecimal accepts digits with at most one decimal point and at least one digit.
func isPlainDecimal(s string) bool {
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
