package processor

import (
	"ogparsing/internal/parser"
)

// Deps collects the shared collaborators processors need. Table processors
// read through delimited and spreadsheet parsers, X12 processors through
// the EDI parser, and both account and catalog lookups come from storage.
// A zero PriceChangeThreshold keeps the built-in default.
type Deps struct {
	Accounts             AccountLookup
	Catalog              CatalogLookup
	PriceChangeThreshold float64
}

// DefaultLocator builds the standard locator. Registration order matters:
// the table formats probe cheaply on header shape, the X12 processors parse
// the whole interchange, so tables go first.
func DefaultLocator(deps Deps) *Locator {
	tableParsers := []parser.TableParser{
		parser.NewCSVParser(),
		parser.NewDelimitedParser('\t'),
		parser.NewDelimitedParser(';'),
		parser.NewXLSXParser(),
	}
	x12Parsers := []*parser.X12Parser{
		parser.NewX12Parser(),
	}

	pu := NewPU(tableParsers, deps.Catalog)
	if deps.PriceChangeThreshold > 0 {
		pu.SetPriceChangeThreshold(deps.PriceChangeThreshold)
	}

	return NewLocator(
		NewGP(tableParsers),
		pu,
		NewUSF(x12Parsers, deps.Accounts),
		NewSysco(x12Parsers, deps.Accounts),
	)
}
