// Package parser turns raw order guide file bytes into either a table of
// raw rows (delimited and spreadsheet syntaxes) or a segment tree shaped by
// a declarative schema (X12). Parsers rewind the handle themselves, so the
// same file can be probed repeatedly while a processor is being located.
package parser

import (
	"errors"
	"io"
)

// Parse errors.
var (
	ErrEmptyFile    = errors.New("file contains no records")
	ErrNotX12       = errors.New("file does not start with an ISA segment")
	ErrNoSheet      = errors.New("workbook contains no sheets")
	ErrShortISA     = errors.New("ISA segment is truncated")
	ErrBadElemCount = errors.New("segment has unexpected element count")
)

// Table is the raw parse of a delimited-table file: every physical record,
// including the header row when the layout has one. Headerless layouts read
// Records directly.
type Table struct {
	Records [][]string
}

// Header returns the first record, the column list for header-ful layouts.
func (t *Table) Header() []string {
	if len(t.Records) == 0 {
		return nil
	}

	return t.Records[0]
}

// Body returns every record after the header row.
func (t *Table) Body() [][]string {
	if len(t.Records) < 2 {
		return nil
	}

	return t.Records[1:]
}

// TableParser reads delimited-table syntaxes. Implementations must seek the
// reader back to the start before reading so probing is repeatable.
type TableParser interface {
	Name() string
	// SyntaxKey identifies which field-name mapping applies to rows this
	// parser produces.
	SyntaxKey() string
	// Header reads just the first record, enough for layout matching.
	Header(f io.ReadSeeker) ([]string, error)
	Parse(f io.ReadSeeker) (*Table, error)
}
