// Package format holds the display formatting and amount canonicalization
// helpers shared by the handlers and the table view.
package format

import (
	"fmt"
	"strings"
	"time"
)

// NormalizeAmount canonicalizes a raw amount string to exactly two decimal
// places. All characters except digits and decimal points are stripped; the
// first point separates whole from fraction and any later points fold their
// digits into the fraction; the fraction is truncated to two digits and padded
// with zeros. Idempotent: normalizing an already-normalized string is a no-op.
func NormalizeAmount(raw string) string {
	var clean strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			clean.WriteRune(r)
		}
	}

	parts := strings.Split(clean.String(), ".")
	if len(parts) > 2 {
		parts = []string{parts[0], strings.Join(parts[1:], "")}
	}

	if len(parts) == 1 {
		whole := parts[0]
		if whole == "" {
			whole = "0"
		}
		return whole + ".00"
	}

	whole := parts[0]
	if whole == "" {
		whole = "0"
	}
	frac := parts[1]
	if len(frac) > 2 {
		frac = frac[:2]
	}
	for len(frac) < 2 {
		frac += "0"
	}
	return whole + "." + frac
}

// Currency renders an amount as a US-dollar string, e.g. 1234.5 → "$1,234.50".
func Currency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + frac
}

// DisplayDate renders an ISO "YYYY-MM-DD" date as "Jan 15, 2024".
// Unparsable input is returned unchanged.
func DisplayDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2, 2006")
}

// MonthLabel renders the calendar month of an ISO date as "January 2024".
func MonthLabel(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("January 2006")
}
