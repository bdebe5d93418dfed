// Package normalize provides stateless field conversions used while turning
// raw vendor records into typed order guide items. All functions are
// tolerant: values that cannot be converted come back as nil or zero so a
// single bad field degrades to a missing field instead of aborting a file.
package normalize

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var moneyReplacer = strings.NewReplacer("$", "", ",", "", " ", "")

// Money parses a price string into a decimal. Currency symbols, thousands
// separators, and surrounding whitespace are stripped. Blank or unparseable
// input yields nil.
func Money(raw string) *decimal.Decimal {
	cleaned := moneyReplacer.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return nil
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}

	return &d
}

// String trims the value and collapses internal whitespace runs to single
// spaces.
func String(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// Date parses a date string with the given layout. Invalid input yields the
// zero time rather than an error so a bad date becomes a missing field
// downstream.
func Date(raw, layout string) time.Time {
	t, err := time.Parse(layout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}
	}

	return t
}

// Flag interprets a raw field as a presence flag: any non-blank value is true.
func Flag(raw string) bool {
	return strings.TrimSpace(raw) != ""
}
