package processor

import (
	"time"

	"ogparsing/internal/models"
	"ogparsing/internal/normalize"
	"ogparsing/internal/parser"
)

// gpColumns is the reference header of a GP file. A candidate file matches
// only on exact header identity.
var gpColumns = []string{
	"Sr No",
	"Item No",
	"Unit",
	"Pack Size",
	"Description",
	"Brand",
	"Unit Price Per Case",
	"Unit Price Per Packsize Unit",
	"Category",
	"Max Quantity",
	"Market Price",
	"Market Price Unit",
}

var gpFields = FieldMap{
	FieldItemNo:      {"": "Item No"},
	FieldPackType:    {"": "Unit"},
	FieldPackSize:    {"": "Pack Size"},
	FieldDescription: {"": "Description"},
	FieldBrand:       {"": "Brand"},
	FieldPriceCase:   {"": "Unit Price Per Case"},
	FieldPricePound:  {"": "Unit Price Per Packsize Unit"},
}

// GP processes the GP vendor's self-describing table files: one row per
// item, prices dated at processing time.
type GP struct {
	core  tableCore
	clock func() time.Time
}

// NewGP creates a GP processor reading through the given table parsers.
func NewGP(parsers []parser.TableParser) *GP {
	return &GP{
		core: tableCore{
			columns: gpColumns,
			mapping: gpFields,
			parsers: parsers,
		},
		clock: time.Now,
	}
}

// Name identifies this processor.
func (p *GP) Name() string { return "GP" }

// Supports always holds: table files carry their own header.
func (p *GP) Supports(models.ImportSetup) bool { return true }

// ProductCreationPermitted reports that GP items may create new catalog
// entries.
func (p *GP) ProductCreationPermitted() bool { return true }

// IsFileProcessable matches on exact header identity.
func (p *GP) IsFileProcessable(f File, locationVendors []*models.LocationVendor) (bool, error) {
	return p.core.matchFile(f, func(header []string) bool {
		return headerEquals(header, gpColumns)
	}), nil
}

// Process builds one document covering all target location vendors. The
// set must reference exactly one vendor.
func (p *GP) Process(f File, locationVendors []*models.LocationVendor) ([]*models.OrderGuideDocument, error) {
	if _, err := singleVendor(locationVendors); err != nil {
		return nil, err
	}

	table, err := p.core.parse(f)
	if err != nil {
		return nil, err
	}

	rows, rowErrs := p.core.normalizeBody(table.Body())

	doc := models.NewOrderGuideDocument(p.Name(), locationVendors)
	doc.Date = p.clock()
	for _, rowErr := range rowErrs {
		doc.AddError(rowErr)
	}

	for _, row := range rows {
		item := p.itemFromRow(p.core.view(row))
		item.PriceDate = p.clock()

		if err := doc.AddItem(item); err != nil {
			return nil, err
		}
	}

	return []*models.OrderGuideDocument{doc}, nil
}

func (p *GP) itemFromRow(view rowView) *models.OrderGuideItem {
	item := models.NewOrderGuideItem(view.field(FieldItemNo), view.field(FieldPackType))
	item.PackSize = normalize.String(view.field(FieldPackSize))
	item.Description = normalize.String(view.field(FieldDescription))
	item.Brand = normalize.String(view.field(FieldBrand))
	item.PricePerCase = normalize.Money(view.field(FieldPriceCase))
	item.PricePerPound = normalize.Money(view.field(FieldPricePound))

	return item
}
