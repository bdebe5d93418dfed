package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Document invariant violations. These are caller-contract failures, not
// data-quality errors, and abort the current file.
var (
	ErrMixedVendors     = errors.New("location vendors belong to different vendors")
	ErrNoLocationVendor = errors.New("at least one location vendor is required")
)

// OrderGuideDocument is one file's extracted result for a set of location
// vendors sharing a single underlying vendor. Item and error lists are
// append-only while a processor runs and are not mutated afterwards.
type OrderGuideDocument struct {
	ID              uuid.UUID
	Date            time.Time
	LocationVendors []*LocationVendor
	Items           []*OrderGuideItem
	Errors          []*OrderGuideError
	// Processor names the format processor that produced this document.
	Processor string
}

// NewOrderGuideDocument creates a document owned by the named processor.
func NewOrderGuideDocument(processor string, locationVendors []*LocationVendor) *OrderGuideDocument {
	return &OrderGuideDocument{
		ID:              uuid.New(),
		LocationVendors: locationVendors,
		Processor:       processor,
	}
}

// Vendor returns the single vendor all location vendors share. A mixed set
// is an inconsistency in the caller's input.
func (d *OrderGuideDocument) Vendor() (*Vendor, error) {
	var vendor *Vendor

	for _, lv := range d.LocationVendors {
		if vendor == nil {
			vendor = lv.Vendor
			continue
		}

		if lv.Vendor == nil || lv.Vendor.ID != vendor.ID {
			return nil, ErrMixedVendors
		}
	}

	return vendor, nil
}

// AddItem appends an item after checking the acceptance invariant: item
// number and pack type must both be present. A violation is a construction
// defect in the processor, not a row error.
func (d *OrderGuideDocument) AddItem(item *OrderGuideItem) error {
	if item.ItemNo == "" {
		return fmt.Errorf("item with description %q has no item number", item.Description)
	}

	if item.PackType == PackTypeUnknown {
		return fmt.Errorf("item %s has no pack type", item.ItemNo)
	}

	d.Items = append(d.Items, item)

	return nil
}

// AddError attaches a document-level error, ignoring nils.
func (d *OrderGuideDocument) AddError(err *OrderGuideError) {
	if err != nil {
		d.Errors = append(d.Errors, err)
	}
}
