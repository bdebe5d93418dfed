package processor

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ogparsing/internal/models"
	"ogparsing/internal/normalize"
	"ogparsing/internal/parser"
)

// puMinColumns accepts the short two-column variant of a PU file.
const puMinColumns = 2

// defaultPriceChangeThreshold is the relative price swing above which a
// PRICE_CHANGE_EXCEEDED error is raised.
const defaultPriceChangeThreshold = 0.25

// puColumns is the reference layout of a PU file. The files are headerless;
// these names exist only for field mapping by position.
var puColumns = []string{"Item No", "Unit Price Per Case", "Reserved", "Price Per Each"}

var puFields = FieldMap{
	FieldItemNo:    {"": "Item No"},
	FieldPriceCase: {"": "Unit Price Per Case"},
	FieldPriceEach: {"": "Price Per Each"},
}

// PU processes the PU vendor's headerless price files. One raw row may
// carry both a per-case and a per-each price; each present price becomes
// its own item because each maps to a distinct catalog record.
type PU struct {
	core      tableCore
	catalog   CatalogLookup
	threshold decimal.Decimal
	clock     func() time.Time
}

// NewPU creates a PU processor with the default price-change threshold.
func NewPU(parsers []parser.TableParser, catalog CatalogLookup) *PU {
	return &PU{
		core: tableCore{
			columns:    puColumns,
			mapping:    puFields,
			headerless: true,
			parsers:    parsers,
		},
		catalog:   catalog,
		threshold: decimal.NewFromFloat(defaultPriceChangeThreshold),
		clock:     time.Now,
	}
}

// SetPriceChangeThreshold overrides the relative deviation threshold.
func (p *PU) SetPriceChangeThreshold(threshold float64) {
	p.threshold = decimal.NewFromFloat(threshold)
}

// PriceChangeThreshold returns the configured relative deviation threshold.
func (p *PU) PriceChangeThreshold() float64 {
	f, _ := p.threshold.Float64()
	return f
}

// Name identifies this processor.
func (p *PU) Name() string { return "PU" }

// Supports always holds for table files.
func (p *PU) Supports(models.ImportSetup) bool { return true }

// ProductCreationPermitted reports that PU never creates catalog entries;
// unknown items only produce ITEM_NOT_FOUND errors.
func (p *PU) ProductCreationPermitted() bool { return false }

// IsFileProcessable accepts the reference four-column layout or any
// two-column file. The files are headerless, so there is no header text to
// verify beyond the column count.
func (p *PU) IsFileProcessable(f File, locationVendors []*models.LocationVendor) (bool, error) {
	return p.core.matchFile(f, func(header []string) bool {
		return len(header) == len(puColumns) || len(header) == puMinColumns
	}), nil
}

// Process builds one document covering all target location vendors. Every
// derived item is looked up per location vendor; misses are recorded as
// account-scoped ITEM_NOT_FOUND errors, hits enrich the item from the
// catalog record and run the price-deviation check. The location vendor set
// must reference exactly one vendor.
func (p *PU) Process(f File, locationVendors []*models.LocationVendor) ([]*models.OrderGuideDocument, error) {
	if _, err := singleVendor(locationVendors); err != nil {
		return nil, err
	}

	table, err := p.core.parse(f)
	if err != nil {
		return nil, err
	}

	// Headerless: every record is data.
	rows, _ := p.core.normalizeBody(table.Records)

	doc := models.NewOrderGuideDocument(p.Name(), locationVendors)
	doc.Date = p.clock()

	for _, row := range rows {
		view := p.core.view(row)

		for _, item := range rowToItems(view) {
			for _, lv := range locationVendors {
				if err := p.resolveItem(item, lv, view, row); err != nil {
					return nil, err
				}
			}

			item.PriceDate = p.clock()

			if err := doc.AddItem(item); err != nil {
				return nil, err
			}
		}
	}

	return []*models.OrderGuideDocument{doc}, nil
}

func (p *PU) resolveItem(item *models.OrderGuideItem, lv *models.LocationVendor, view rowView, row []string) error {
	record, err := p.catalog.ByItemNoAndPackType(lv, item.ItemNo, item.PackType)
	if err != nil {
		return err
	}

	if record == nil {
		notFound := view.rowError(models.ErrorItemNotFound, "Item was not found.", row)
		notFound.LocationVendor = lv
		item.AddError(notFound)

		return nil
	}

	item.AddMatch(record)
	item.PackSize = record.Measure
	item.Description = record.Name
	item.Brand = record.Brand
	item.Barcode = record.Barcode

	if devErr := p.priceDeviationError(record, item.Price()); devErr != nil {
		devErr.LocationVendor = lv
		item.AddError(devErr)
	}

	return nil
}

// rowToItems normalizes one raw row into 0, 1, or 2 typed items: a CASE
// item when the per-case price is present, and an EACH item when the
// per-each price is present. The each price moves into the per-case slot of
// its clone so it becomes that item's effective price.
func rowToItems(view rowView) []*models.OrderGuideItem {
	combined := models.NewOrderGuideItem(view.field(FieldItemNo), "")
	combined.PricePerCase = normalize.Money(view.field(FieldPriceCase))
	combined.PricePerEach = normalize.Money(view.field(FieldPriceEach))

	var items []*models.OrderGuideItem

	if combined.PricePerCase != nil && !combined.PricePerCase.IsZero() {
		caseItem := combined.Clone()
		caseItem.PricePerEach = nil
		caseItem.PackType = models.PackTypeCase
		items = append(items, caseItem)
	}

	if combined.PricePerEach != nil && !combined.PricePerEach.IsZero() {
		eachItem := combined.Clone()
		eachItem.PricePerCase = eachItem.PricePerEach
		eachItem.PackType = models.PackTypeEach
		items = append(items, eachItem)
	}

	return items
}

// priceDeviationError compares the incoming price against the catalog
// record's last known price and reports a PRICE_CHANGE_EXCEEDED error when
// the swing breaks the threshold.
func (p *PU) priceDeviationError(record *models.CatalogItem, newPrice *decimal.Decimal) *models.OrderGuideError {
	var oldPrice *decimal.Decimal
	if record.LastPrice != nil {
		oldPrice = &record.LastPrice.Amount
	}

	if !p.priceDeviated(oldPrice, newPrice) {
		return nil
	}

	percent := p.threshold.Mul(decimal.NewFromInt(100))
	err := models.NewError(models.ErrorPriceChangeExceeded,
		fmt.Sprintf("Item price was changed more than %s%%. Old price: $%s per %s, new price: $%s per %s",
			percent, moneyString(oldPrice), record.LastPrice.PriceType,
			moneyString(newPrice), record.LastPrice.PriceType))
	err.ItemNo = record.ItemNo

	return err
}

func moneyString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}

	return d.String()
}

// priceDeviated checks the swing between old and new price. A missing old
// price means there is nothing to compare against, so it never deviates; a
// zero old or missing/zero new price (checked second, in exactly that
// order) always deviates; otherwise the relative change is compared to the
// threshold.
func (p *PU) priceDeviated(oldPrice, newPrice *decimal.Decimal) bool {
	if oldPrice == nil {
		return false
	}

	if oldPrice.IsZero() || newPrice == nil || newPrice.IsZero() {
		return true
	}

	one := decimal.NewFromInt(1)
	change := newPrice.Div(*oldPrice).Sub(one).Abs()

	return change.GreaterThan(p.threshold)
}
