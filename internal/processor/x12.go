package processor

import (
	"ogparsing/internal/models"
	"ogparsing/internal/parser"
	"ogparsing/internal/schema"
)

// x12DateLayout is the CCYYMMDD date format 832 interchanges carry.
const x12DateLayout = "20060102"

// base832Schema is the generic shape of an X12 832 price/sales catalog.
// Vendor processors override it when their interchanges deviate. Sibling
// order is significant.
func base832Schema() schema.Schema {
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
			schema.LoopOf("LOOP_N1_1",
				schema.Segment{Tag: "N1", SubKey: "SE", Desc: "Name of seller"},
			),
			schema.LoopOf("LOOP_N1_2",
				schema.Segment{Tag: "N1", SubKey: "BY", Desc: "Name of buyer"},
				schema.Segment{Tag: "N3", Repeatable: true, Desc: "Address Information"},
				schema.Segment{Tag: "N4", Repeatable: true, Desc: "Geographic Location"},
			),
			schema.Group(schema.SectionDetail,
				schema.LoopOf("LOOP_LIN",
					schema.Segment{Tag: "LIN", Desc: "Item Identification"},
					schema.Segment{Tag: "PO1", Desc: "Baseline Item Data"},
					schema.Segment{Tag: "REF", Repeatable: true, Desc: "Reference Identification"},
					schema.Segment{Tag: "YNQ", Repeatable: true, Desc: "Yes/No Question"},
					schema.Segment{Tag: "PID", Repeatable: true, Desc: "Product/Item Description"},
					schema.Segment{Tag: "PKG", Repeatable: true, Desc: "Marking, Packaging, Loading"},
					schema.Segment{Tag: "PO4", Desc: "Item Physical Details"},
					schema.LoopOf("LOOP_CTP",
						schema.Segment{Tag: "CTP", Desc: "Pricing Information"},
						schema.Segment{Tag: "DTM", Repeatable: true, Desc: "Date/Time Reference"},
					),
					schema.LoopOf("LOOP_N1",
						schema.Segment{Tag: "REF", Repeatable: true, Desc: "Reference Identification"},
					),
					schema.LoopOf("LOOP_G39",
						schema.Segment{Tag: "G39", Desc: "Item Characteristics Vendor's Selling Unit"},
					),
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

// x12Core bundles the behavior shared by the 832 processors: vendor
// consistency preconditions, setup support checks, required-segment
// matching, and the heading-loop walk that yields one document per logical
// order guide.
type x12Core struct {
	schema   schema.Schema
	parsers  []*parser.X12Parser
	accounts AccountLookup

	matched *parser.X12Parser
	tree    map[string]any
}

// match runs the 832 precondition and structure checks. On success the
// parsed tree is remembered for process.
func (c *x12Core) match(f File, locationVendors []*models.LocationVendor, supports func(models.ImportSetup) bool) (bool, error) {
	if _, err := singleVendor(locationVendors); err != nil {
		return false, err
	}

	if !supports(locationVendors[0].ImportSetup) {
		return false, nil
	}

	required := c.schema.RequiredTags()

	for _, p := range c.parsers {
		tree, err := p.ParseSchema(f, c.schema)
		if err != nil {
			continue
		}

		if !allTagsPresent(tree, required) {
			continue
		}

		c.matched = p
		c.tree = tree

		return true, nil
	}

	return false, nil
}

// process walks the heading loop of the matched tree, building one document
// per logical order guide through the vendor-specific build function.
func (c *x12Core) process(f File, locationVendors []*models.LocationVendor,
	supports func(models.ImportSetup) bool,
	build func(og map[string]any) (*models.OrderGuideDocument, error),
) ([]*models.OrderGuideDocument, error) {
	if c.tree == nil {
		ok, err := c.match(f, locationVendors, supports)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotMatched
		}
	}

	headings, _ := c.tree[schema.SectionHeading].([]any)

	var docs []*models.OrderGuideDocument

	for _, heading := range headings {
		og, ok := heading.(map[string]any)
		if !ok {
			continue
		}

		doc, err := build(og)
		if err != nil {
			return nil, err
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

func allTagsPresent(tree map[string]any, tags []string) bool {
	for _, tag := range tags {
		if !schema.FindTag(tree, tag) {
			return false
		}
	}

	return true
}

// resolveLocationVendor turns an extracted customer number into a location
// vendor through the account lookup. An empty or unknown number yields nil.
func (c *x12Core) resolveLocationVendor(kind models.SetupKind, customerNumber string) (*models.LocationVendor, error) {
	if customerNumber == "" {
		return nil, nil
	}

	return c.accounts.ByCustomerNumber(kind, customerNumber)
}
