// Package processor selects and runs the per-vendor format processors that
// turn raw order guide files into canonical documents.
//
// A processor instance is stateful across one IsFileProcessable + Process
// pair: matching remembers which parser (and, for EDI, which parsed tree)
// applied. One instance must therefore serve at most one in-flight file at
// a time; concurrent files need separate instances.
package processor

import (
	"errors"
	"io"

	"ogparsing/internal/models"
)

// Caller-contract violations. These abort the current file and are never
// recorded as row or document errors.
var (
	ErrNoLocationVendors = errors.New("at least one location vendor is required")
	ErrNotMatched        = errors.New("processor has no matched parser for this file")
)

// File is an opaque, rewindable handle to order guide file bytes. Parsers
// seek it back to the start themselves, so processors may probe it
// repeatedly.
type File interface {
	io.ReadSeeker
}

// AccountLookup resolves location vendors from EDI customer numbers. A nil
// result with nil error means the customer number is unknown.
type AccountLookup interface {
	ByCustomerNumber(kind models.SetupKind, customerNumber string) (*models.LocationVendor, error)
}

// CatalogLookup resolves known catalog items by item number and pack type
// at one location vendor. A nil result with nil error is a lookup miss.
type CatalogLookup interface {
	ByItemNoAndPackType(lv *models.LocationVendor, itemNo string, packType models.PackType) (*models.CatalogItem, error)
}

// Processor embodies one vendor layout's matching and extraction rules.
type Processor interface {
	Name() string
	// IsFileProcessable is the cheap structural test. It may remember
	// match state for the subsequent Process call. Errors signal caller
	// contract violations, not "does not match".
	IsFileProcessable(f File, locationVendors []*models.LocationVendor) (bool, error)
	// Process runs the full pipeline and returns one or more documents.
	Process(f File, locationVendors []*models.LocationVendor) ([]*models.OrderGuideDocument, error)
	// Supports reports whether this processor applies to a configured
	// import setup. Table processors apply regardless since their files
	// carry a self-describing header.
	Supports(setup models.ImportSetup) bool
	// ProductCreationPermitted reports whether items from this processor
	// may create brand-new catalog entries on lookup misses.
	ProductCreationPermitted() bool
}

// Locator finds the processor responsible for a file by asking each
// registered processor in registration order.
type Locator struct {
	processors []Processor
}

// NewLocator creates a locator. Registration order is the match priority
// order.
func NewLocator(processors ...Processor) *Locator {
	l := &Locator{}
	for _, p := range processors {
		l.Add(p)
	}

	return l
}

// Add registers a processor, skipping duplicates.
func (l *Locator) Add(p Processor) {
	for _, existing := range l.processors {
		if existing == p {
			return
		}
	}

	l.processors = append(l.processors, p)
}

// Locate returns the first processor whose match test succeeds, or nil when
// no registered processor recognizes the file. An unsupported file is a
// normal outcome, not an error; errors are caller contract violations
// raised by a processor's precondition checks.
func (l *Locator) Locate(f File, locationVendors []*models.LocationVendor) (Processor, error) {
	for _, p := range l.processors {
		ok, err := p.IsFileProcessable(f, locationVendors)
		if err != nil {
			return nil, err
		}
		if ok {
			return p, nil
		}
	}

	return nil, nil
}

// singleVendor asserts the caller contract shared by the EDI processors:
// a non-empty location vendor set referencing exactly one vendor.
func singleVendor(locationVendors []*models.LocationVendor) (*models.Vendor, error) {
	if len(locationVendors) == 0 {
		return nil, ErrNoLocationVendors
	}

	vendor := locationVendors[0].Vendor
	if vendor == nil {
		return nil, models.ErrMixedVendors
	}

	for _, lv := range locationVendors[1:] {
		if lv.Vendor == nil || lv.Vendor.ID != vendor.ID {
			return nil, models.ErrMixedVendors
		}
	}

	return vendor, nil
}
