package models

import "strings"

// PackType is the unit basis an item is priced by.
type PackType string

// Canonical pack types.
const (
	PackTypeCase    PackType = "CASE"
	PackTypeEach    PackType = "EACH"
	PackTypePound   PackType = "POUND"
	PackTypeUnknown PackType = ""
)

// PriceType describes which price an item effectively carries.
type PriceType string

// Price types.
const (
	PriceTypeCase  PriceType = "CASE"
	PriceTypePound PriceType = "POUND"
)

// packTypeSynonyms maps vendor spellings to canonical pack types.
// Keys are lower-cased before lookup.
var packTypeSynonyms = map[string]PackType{
	"case":  PackTypeCase,
	"cases": PackTypeCase,
	"cs":    PackTypeCase,
	"ca":    PackTypeCase,
	"each":  PackTypeEach,
	"ea":    PackTypeEach,
	"unit":  PackTypeEach,
	"pound": PackTypePound,
	"lb":    PackTypePound,
	"lbs":   PackTypePound,
	"#":     PackTypePound,
}

// NormalizePackType maps a raw vendor unit string to a canonical pack type.
// Unrecognized values map to PackTypeUnknown.
func NormalizePackType(raw string) PackType {
	key := strings.ToLower(strings.TrimSpace(raw))
	if pt, ok := packTypeSynonyms[key]; ok {
		return pt
	}

	return PackTypeUnknown
}
