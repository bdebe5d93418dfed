package processor

import (
	"fmt"

	"ogparsing/internal/models"
	"ogparsing/internal/normalize"
	"ogparsing/internal/parser"
	"ogparsing/internal/schema"
)

// Field locations inside one USF heading / item subtree.
var (
	usfCustomerNumberPath = schema.P(schema.Key("LOOP_N1_2"), schema.At(0), schema.Key("N1"), schema.At(3))
	usfDatePath           = schema.P(schema.Key("DTM"), schema.At(0), schema.At(1))
	usfItemsPath          = schema.P(schema.Key(schema.SectionDetail), schema.Key("LOOP_LIN"))
	usfItemNoPath         = schema.P(schema.Key("LIN"), schema.At(2))
	usfBrandPath          = schema.P(schema.Key("LIN"), schema.At(8))
	usfBarcodePath        = schema.P(schema.Key("LIN"), schema.At(10))
	usfUnitTypePath       = schema.P(schema.Key("PO1"), schema.At(2))
	usfDiscontinuedPath   = schema.P(schema.Key("REF"), schema.FirstOf("ACC", "DSC"), schema.At(2))
	usfDescriptionPath    = schema.P(schema.Key("PID"), schema.At(0), schema.At(4))
	usfPackSizePath       = schema.P(schema.Key("PKG"), schema.At(0), schema.At(4))
	usfPricePath          = schema.P(schema.Key("LOOP_CTP"), schema.At(0), schema.Key("CTP"), schema.At(2))
	usfPriceTypePath      = schema.P(schema.Key("LOOP_CTP"), schema.At(0), schema.Key("CTP"), schema.At(4))
	usfPriceDatePath      = schema.P(schema.Key("LOOP_CTP"), schema.At(0), schema.Key("DTM"), schema.At(0), schema.At(1))
)

// USF processes US Foods 832 interchanges.
type USF struct {
	core x12Core
}

// NewUSF creates a USF processor reading through the given X12 parsers.
func NewUSF(parsers []*parser.X12Parser, accounts AccountLookup) *USF {
	return &USF{
		core: x12Core{
			schema:   base832Schema(),
			parsers:  parsers,
			accounts: accounts,
		},
	}
}

// Name identifies this processor.
func (p *USF) Name() string { return "USF" }

// Supports accepts only the USF X12 import setup.
func (p *USF) Supports(setup models.ImportSetup) bool {
	_, ok := setup.(*models.UsfX12ImportSetup)
	return ok
}

// ProductCreationPermitted reports that USF items may create new catalog
// entries.
func (p *USF) ProductCreationPermitted() bool { return true }

// IsFileProcessable requires a single-vendor account set, a USF setup, and
// every schema-required segment present in the parsed interchange.
func (p *USF) IsFileProcessable(f File, locationVendors []*models.LocationVendor) (bool, error) {
	return p.core.match(f, locationVendors, p.Supports)
}

// Process walks the heading loop, producing one document per logical order
// guide in the interchange.
func (p *USF) Process(f File, locationVendors []*models.LocationVendor) ([]*models.OrderGuideDocument, error) {
	return p.core.process(f, locationVendors, p.Supports, p.buildDocument)
}

func (p *USF) buildDocument(og map[string]any) (*models.OrderGuideDocument, error) {
	doc := models.NewOrderGuideDocument(p.Name(), nil)

	customerNumber := schema.StringAtPath(og, usfCustomerNumberPath)

	lv, err := p.core.resolveLocationVendor(models.SetupKindUsfX12, customerNumber)
	if err != nil {
		return nil, err
	}

	if lv == nil {
		doc.AddError(models.NewError(models.ErrorLocationVendorNotFound,
			fmt.Sprintf("Customer number %s was not found.", customerNumber)))

		return doc, nil
	}

	doc.LocationVendors = []*models.LocationVendor{lv}

	if dateStr := schema.StringAtPath(og, usfDatePath); dateStr != "" {
		doc.Date = normalize.Date(dateStr, x12DateLayout)
	}

	itemsValue, _ := schema.ValueAtPath(og, usfItemsPath).([]any)
	for _, itemValue := range itemsValue {
		itemTree, ok := itemValue.(map[string]any)
		if !ok {
			continue
		}

		if err := doc.AddItem(p.buildItem(itemTree)); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func (p *USF) buildItem(tree map[string]any) *models.OrderGuideItem {
	itemNo := schema.StringAtPath(tree, usfItemNoPath)
	unitType := schema.StringAtPath(tree, usfUnitTypePath)

	item := models.NewOrderGuideItem(itemNo, unitType)
	item.Barcode = schema.StringAtPath(tree, usfBarcodePath)
	item.Brand = schema.StringAtPath(tree, usfBrandPath)
	item.Description = schema.StringAtPath(tree, usfDescriptionPath)
	item.Discontinued = normalize.Flag(schema.StringAtPath(tree, usfDiscontinuedPath))

	packSize := schema.StringAtPath(tree, usfPackSizePath)
	if packSize == "" {
		item.AddError(models.NewEmptyPackSizeError(itemNo))
	}
	item.PackSize = packSize

	price := schema.StringAtPath(tree, usfPricePath)
	if schema.StringAtPath(tree, usfPriceTypePath) == "LB" {
		item.PricePerPound = normalize.Money(price)
	} else {
		item.PricePerCase = normalize.Money(price)
	}

	item.PriceDate = normalize.Date(schema.StringAtPath(tree, usfPriceDatePath), x12DateLayout)

	return item
}
