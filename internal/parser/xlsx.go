package parser

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXParser reads the first sheet of a workbook as a delimited table.
// Vendors that email spreadsheets instead of CSV exports go through here
// and reuse the table processors unchanged.
type XLSXParser struct{}

// NewXLSXParser creates a workbook parser.
func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

// Name implements TableParser.
func (p *XLSXParser) Name() string { return "xlsx" }

// SyntaxKey implements TableParser.
func (p *XLSXParser) SyntaxKey() string { return "xlsx" }

// Header reads the first row of the first sheet.
func (p *XLSXParser) Header(f io.ReadSeeker) ([]string, error) {
	table, err := p.Parse(f)
	if err != nil {
		return nil, err
	}

	return table.Header(), nil
}

// Parse reads every non-blank row of the first sheet.
func (p *XLSXParser) Parse(f io.ReadSeeker) (*Table, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	book, err := excelize.OpenReader(f)
	if err != nil {
		return nil, err
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	var records [][]string
	for _, row := range rows {
		trimmed := make([]string, len(row))
		for i, cell := range row {
			trimmed[i] = strings.TrimSpace(cell)
		}

		if !rowEmpty(trimmed) {
			records = append(records, trimmed)
		}
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	return &Table{Records: records}, nil
}
