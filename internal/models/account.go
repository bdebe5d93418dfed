// Package models defines the canonical order guide data shapes shared by
// parsers, processors, and the worker.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vendor is a supplier that emits order guide files.
type Vendor struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// LocationVendor is a client location's relationship to one vendor. It is
// the scope at which catalog lookups and price history are keyed.
type LocationVendor struct {
	ID          uint        `json:"id"`
	Location    string      `json:"location"`
	Vendor      *Vendor     `json:"vendor"`
	ImportSetup ImportSetup `json:"-"`
}

// CatalogItem is a known vendor product at one location vendor, the target
// of item-number + pack-type lookups.
type CatalogItem struct {
	ID             uint
	LocationVendor *LocationVendor
	ItemNo         string
	PackType       PackType
	Name           string
	Brand          string
	Barcode        string
	Measure        string
	LastPrice      *CatalogPrice
}

// CatalogPrice is the last recorded price of a catalog item.
type CatalogPrice struct {
	Amount     decimal.Decimal
	PriceType  PriceType
	RecordedAt time.Time
}
