package processor

import (
	"fmt"

	"ogparsing/internal/models"
	"ogparsing/internal/normalize"
	"ogparsing/internal/parser"
	"ogparsing/internal/schema"
)

// sysco832Schema narrows the generic 832 shape to Sysco's interchanges:
// a single mandatory buyer N1 in the heading and a flat item loop without
// the CTP and N1 sub-loops.
func sysco832Schema() schema.Schema {
	return schema.Schema{
		schema.Group(schema.SectionFileHeading,
			schema.Segment{Tag: "ISA", Required: true, Desc: "Interchange Control Header", ElementCount: 16},
			schema.Segment{Tag: "GS", Required: true, Desc: "Functional Group Header"},
		),
		schema.LoopOf(schema.SectionHeading,
			schema.Segment{Tag: "ST", Required: true, Desc: "Transaction Set Header"},
			schema.Segment{Tag: "BCT", Required: true, Desc: "Beginning Segment for Price/Sales Catalog"},
			schema.Segment{Tag: "REF", Repeatable: true, Desc: "Reference Identification"},
			schema.Segment{Tag: "DTM", Repeatable: true, Desc: "Date/Time Reference"},
			schema.Segment{Tag: "N1", Required: true, Desc: "Name of buyer"},
			schema.Group(schema.SectionDetail,
				schema.LoopOf("LOOP_LIN",
					schema.Segment{Tag: "LIN", Desc: "Item Identification"},
					schema.Segment{Tag: "DTM", Desc: "Date/Time Reference"},
					schema.Segment{Tag: "REF", Repeatable: true, Desc: "Reference Identification"},
					schema.Segment{Tag: "PID", Repeatable: true, Desc: "Product/Item Description"},
					schema.Segment{Tag: "PKG", Repeatable: true, Desc: "Marking, Packaging, Loading"},
					schema.Segment{Tag: "PO4", Desc: "Item Physical Details"},
					schema.Segment{Tag: "CTP", Desc: "Pricing Information"},
				),
			),
			schema.Group(schema.SectionSummary,
				schema.Segment{Tag: "CTT", Desc: "Transaction Totals"},
				schema.Segment{Tag: "SE", Required: true, Desc: "Transaction Set Trailer"},
			),
		),
		schema.Group(schema.SectionFileFooter,
			schema.Segment{Tag: "GE", Required: true, Desc: "Functional Group Trailer"},
			schema.Segment{Tag: "IEA", Required: true, Desc: "Interchange Control Trailer"},
		),
	}
}

// Field locations inside one Sysco heading / item subtree.
var (
	syscoCustomerNumberPath = schema.P(schema.Key("N1"), schema.At(3))
	syscoDatePath           = schema.P(schema.Key("DTM"), schema.At(0), schema.At(1))
	syscoItemsPath          = schema.P(schema.Key(schema.SectionDetail), schema.Key("LOOP_LIN"))
	syscoItemNoPath         = schema.P(schema.Key("LIN"), schema.At(2))
	syscoBarcodePath        = schema.P(schema.Key("LIN"), schema.At(8))
	syscoBrandPath          = schema.P(schema.Key("LIN"), schema.At(10))
	syscoPriceDatePath      = schema.P(schema.Key("DTM"), schema.At(1))
	syscoPriceTypePath      = schema.P(schema.Key("REF"), schema.At(0), schema.At(1))
	syscoDescriptionPath    = schema.P(schema.Key("PID"), schema.At(0), schema.At(4))
	syscoPackSizePath       = schema.P(schema.Key("PKG"), schema.At(0), schema.At(4))
	syscoPricePath          = schema.P(schema.Key("CTP"), schema.At(2))
)

// syscoEachPriceType is the REF price-type code marking an each-priced item.
const syscoEachPriceType = "1"

// Sysco processes Sysco 832 interchanges. Sysco items carry no discontinued
// flag; the price-type code decides between each and case pricing.
type Sysco struct {
	core x12Core
}

// NewSysco creates a Sysco processor reading through the given X12 parsers.
func NewSysco(parsers []*parser.X12Parser, accounts AccountLookup) *Sysco {
	return &Sysco{
		core: x12Core{
			schema:   sysco832Schema(),
			parsers:  parsers,
			accounts: accounts,
		},
	}
}

// Name identifies this processor.
func (p *Sysco) Name() string { return "Sysco" }

// Supports accepts only the Sysco X12 import setup.
func (p *Sysco) Supports(setup models.ImportSetup) bool {
	_, ok := setup.(*models.SyscoX12ImportSetup)
	return ok
}

// ProductCreationPermitted reports that Sysco items may create new catalog
// entries.
func (p *Sysco) ProductCreationPermitted() bool { return true }

// IsFileProcessable requires a single-vendor account set, a Sysco setup,
// and every schema-required segment present in the parsed interchange.
func (p *Sysco) IsFileProcessable(f File, locationVendors []*models.LocationVendor) (bool, error) {
	return p.core.match(f, locationVendors, p.Supports)
}

// Process walks the heading loop, producing one document per logical order
// guide in the interchange.
func (p *Sysco) Process(f File, locationVendors []*models.LocationVendor) ([]*models.OrderGuideDocument, error) {
	return p.core.process(f, locationVendors, p.Supports, p.buildDocument)
}

func (p *Sysco) buildDocument(og map[string]any) (*models.OrderGuideDocument, error) {
	doc := models.NewOrderGuideDocument(p.Name(), nil)

	customerNumber := schema.StringAtPath(og, syscoCustomerNumberPath)

	lv, err := p.core.resolveLocationVendor(models.SetupKindSyscoX12, customerNumber)
	if err != nil {
		return nil, err
	}

	if lv == nil {
		doc.AddError(models.NewError(models.ErrorLocationVendorNotFound,
			fmt.Sprintf("Customer number %s was not found.", customerNumber)))

		return doc, nil
	}

	doc.LocationVendors = []*models.LocationVendor{lv}

	if dateStr := schema.StringAtPath(og, syscoDatePath); dateStr != "" {
		doc.Date = normalize.Date(dateStr, x12DateLayout)
	}

	itemsValue, _ := schema.ValueAtPath(og, syscoItemsPath).([]any)
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

func (p *Sysco) buildItem(tree map[string]any) *models.OrderGuideItem {
	itemNo := schema.StringAtPath(tree, syscoItemNoPath)
	item := models.NewOrderGuideItem(itemNo, "")

	price := schema.StringAtPath(tree, syscoPricePath)
	if schema.StringAtPath(tree, syscoPriceTypePath) == syscoEachPriceType {
		item.PackType = models.PackTypeEach
		item.PricePerPound = normalize.Money(price)
	} else {
		item.PackType = models.PackTypeCase
		item.PricePerCase = normalize.Money(price)
	}

	item.Barcode = schema.StringAtPath(tree, syscoBarcodePath)
	item.Brand = schema.StringAtPath(tree, syscoBrandPath)
	item.Description = schema.StringAtPath(tree, syscoDescriptionPath)
	item.PriceDate = normalize.Date(schema.StringAtPath(tree, syscoPriceDatePath), x12DateLayout)

	packSize := schema.StringAtPath(tree, syscoPackSizePath)
	if packSize == "" {
		item.AddError(models.NewEmptyPackSizeError(itemNo))
	}
	item.PackSize = packSize

	return item
}
