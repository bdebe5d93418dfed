package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderGuideItem is one priced catalog line extracted from a vendor file.
// Prices are pointers: nil means the file did not carry that price at all.
type OrderGuideItem struct {
	ItemNo        string
	PackType      PackType
	PackSize      string
	Description   string
	Brand         string
	Barcode       string
	PricePerCase  *decimal.Decimal
	PricePerPound *decimal.Decimal
	PricePerEach  *decimal.Decimal
	PriceDate     time.Time
	Discontinued  bool
	Errors        []*OrderGuideError
	// Matches holds the account-scoped catalog records this item was
	// resolved to. A match-free item is valid but unenriched.
	Matches []*CatalogItem
}

// NewOrderGuideItem creates an item, normalizing the raw unit type when given.
func NewOrderGuideItem(itemNo, unitType string) *OrderGuideItem {
	item := &OrderGuideItem{ItemNo: itemNo}
	if unitType != "" {
		item.PackType = NormalizePackType(unitType)
	}

	return item
}

// SetPackType normalizes and assigns the pack type from a raw vendor string.
func (i *OrderGuideItem) SetPackType(raw string) {
	i.PackType = NormalizePackType(raw)
}

// EffectivePackSize returns the pack size to report. Each-priced items with
// no explicit pack size default to "Unit"; every other pack type reports
// the stored value unchanged.
func (i *OrderGuideItem) EffectivePackSize() string {
	if i.PackSize == "" && i.PackType == PackTypeEach {
		return "Unit"
	}

	return i.PackSize
}

// Price returns the effective price: per-case when present and nonzero,
// per-pound otherwise.
func (i *OrderGuideItem) Price() *decimal.Decimal {
	if i.PricePerCase != nil && !i.PricePerCase.IsZero() {
		return i.PricePerCase
	}

	return i.PricePerPound
}

// PriceType reports which basis the effective price uses.
func (i *OrderGuideItem) PriceType() PriceType {
	if i.PricePerCase != nil && !i.PricePerCase.IsZero() {
		return PriceTypeCase
	}

	return PriceTypePound
}

// AddError attaches an item-level error. Nil errors are ignored so call
// sites can pass through optional validation results.
func (i *OrderGuideItem) AddError(err *OrderGuideError) {
	if err != nil {
		i.Errors = append(i.Errors, err)
	}
}

// AddMatch records a resolved catalog item, skipping duplicates.
func (i *OrderGuideItem) AddMatch(ci *CatalogItem) {
	for _, existing := range i.Matches {
		if existing == ci {
			return
		}
	}

	i.Matches = append(i.Matches, ci)
}

// Clone returns a shallow copy with its own error and match slices. The
// price pointers are duplicated so the copies can diverge.
func (i *OrderGuideItem) Clone() *OrderGuideItem {
	copied := *i
	copied.PricePerCase = cloneDecimal(i.PricePerCase)
	copied.PricePerPound = cloneDecimal(i.PricePerPound)
	copied.PricePerEach = cloneDecimal(i.PricePerEach)
	copied.Errors = append([]*OrderGuideError(nil), i.Errors...)
	copied.Matches = append([]*CatalogItem(nil), i.Matches...)

	return &copied
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}

	v := *d
	return &v
}
