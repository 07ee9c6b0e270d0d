package fieldparse

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is a layout token such as "MM/DD/YYYY".
type DateFormat string

// Supported date formats.
const (
	DateMDY      DateFormat = "MM/DD/YYYY"
	DateISO      DateFormat = "YYYY-MM-DD"
	DateMDYDash  DateFormat = "MM-DD-YYYY"
	DateMDYShort DateFormat = "MM/DD/YY"
	DateDMY      DateFormat = "DD/MM/YYYY"
)

// Go layouts accept one or two digit months and days.
var layouts = map[DateFormat]string{
	DateMDY:      "1/2/2006",
	DateISO:      "2006-1-2",
	DateMDYDash:  "1-2-2006",
	DateMDYShort: "1/2/06",
	DateDMY:      "2/1/2006",
}

// fallbackOrder is tried after the hint. DD/MM/YYYY is last since it is
// ambiguous with MM/DD/YYYY for days up to 12.
var fallbackOrder = []DateFormat{DateMDY, DateISO, DateMDYDash, DateMDYShort, DateDMY}

// ParseDateFormat accepts a format token case-insensitively.
func ParseDateFormat(s string) (DateFormat, error) {
	token := DateFormat(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := layouts[token]; ok {
		return token, nil
	}
	return "", fmt.Errorf("unsupported date format %q", s)
}

// ParseDate parses text using hint first and then the fallback formats.
// An empty hint uses the fallbacks only.
func ParseDate(text string, hint DateFormat) (time.Time, error) {
	value := strings.TrimSpace(text)
	if value == "" {
		return time.Time{}, newFieldError("date", text, ErrBlank)
	}

	if layout, ok := layouts[hint]; ok {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, format := range fallbackOrder {
		if format == hint {
			continue
		}
		if t, err := time.Parse(layouts[format], value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, newFieldError("date", text, ErrBadDate)
}

// LooksLikeDate reports whether text is a US or ISO date. It is used to
// decide whether a first row is data rather than a header.
func LooksLikeDate(text string) bool {
	value := strings.TrimSpace(text)
	for _, format := range []DateFormat{DateMDY, DateISO} {
		if _, err := time.Parse(layouts[format], value); err == nil {
			return true
		}
	}
	return false
}
