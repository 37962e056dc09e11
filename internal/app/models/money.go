package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Cents is a currency amount in integer minor units (euro cents). All money
// arithmetic and comparison in the application happens on this type so that
// equality checks are exact.
type Cents int64

// ParseCents parses a currency amount from the loose formats seen in import
// files: "360", "12.50", "12,50", or with surrounding whitespace. The empty
// string parses to 0. Fractions beyond two decimal places are rejected.
func ParseCents(raw string) (Cents, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", ".")

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimal places", raw)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
	}

	c := Cents(w*100 + f)
	if neg {
		c = -c
	}
	return c, nil
}

// String renders the amount with two decimal places, e.g. "360.00".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Euros returns the amount as a float for display-style aggregates (averages).
// Not used for comparisons.
func (c Cents) Euros() float64 {
	return float64(c) / 100
}
