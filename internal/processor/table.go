package processor

import (
	"ogparsing/internal/models"
	"ogparsing/internal/parser"
)

// tableCore bundles the matching and row-validation behavior shared by the
// table-family processors. Concrete processors embed it and add their own
// item construction rules.
type tableCore struct {
	columns    []string
	mapping    FieldMap
	headerless bool
	parsers    []parser.TableParser
	matched    parser.TableParser
}

// matchFile probes the file's header through every registered table parser
// and accepts the first one whose header satisfies accept. The matching
// parser is remembered for the Process call.
func (c *tableCore) matchFile(f File, accept func(header []string) bool) bool {
	for _, p := range c.parsers {
		header, err := p.Header(f)
		if err != nil || len(header) == 0 {
			continue
		}

		if accept(header) {
			c.matched = p
			return true
		}
	}

	return false
}

func (c *tableCore) parse(f File) (*parser.Table, error) {
	if c.matched == nil {
		return nil, ErrNotMatched
	}

	return c.matched.Parse(f)
}

func (c *tableCore) syntaxKey() string {
	if c.matched == nil {
		return ""
	}

	return c.matched.SyntaxKey()
}

// normalizeBody validates the column count of every raw row against the
// expected layout. Bad rows become WRONG_STRING_FORMAT errors carrying the
// offending record and are dropped; good rows pass through. Headerless
// layouts have no fixed structure, so every row passes.
func (c *tableCore) normalizeBody(records [][]string) ([][]string, []*models.OrderGuideError) {
	if c.headerless {
		return records, nil
	}

	var (
		rows []([]string)
		errs []*models.OrderGuideError
	)

	for _, record := range records {
		if len(record) != len(c.columns) {
			view := c.view(record)
			errs = append(errs, view.rowError(models.ErrorWrongStringFormat,
				"Item contains wrong amount of fields. Fix it and upload again.", record))
			continue
		}

		rows = append(rows, record)
	}

	return rows, errs
}

func (c *tableCore) view(row []string) rowView {
	return newRowView(c.columns, row, c.mapping, c.syntaxKey())
}

func headerEquals(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
