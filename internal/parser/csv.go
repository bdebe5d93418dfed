package parser

import (
	"encoding/csv"
	"errors"
	"io"
)

// CSVParser reads comma (or otherwise) delimited tables.
type CSVParser struct {
	delimiter rune
}

// NewCSVParser creates a comma-delimited parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{delimiter: ','}
}

// NewDelimitedParser creates a parser for an alternate single-rune delimiter.
func NewDelimitedParser(delimiter rune) *CSVParser {
	return &CSVParser{delimiter: delimiter}
}

// Name implements TableParser.
func (p *CSVParser) Name() string { return "csv" }

// SyntaxKey implements TableParser.
func (p *CSVParser) SyntaxKey() string { return "csv" }

// Header reads only the first record.
func (p *CSVParser) Header(f io.ReadSeeker) ([]string, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	record, err := p.reader(f).Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, err
	}

	return record, nil
}

// Parse reads every record, skipping blank lines.
func (p *CSVParser) Parse(f io.ReadSeeker) (*Table, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	records, err := p.reader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	kept := records[:0]
	for _, record := range records {
		if !rowEmpty(record) {
			kept = append(kept, record)
		}
	}

	if len(kept) == 0 {
		return nil, ErrEmptyFile
	}

	return &Table{Records: kept}, nil
}

func (p *CSVParser) reader(f io.Reader) *csv.Reader {
	r := csv.NewReader(f)
	r.Comma = p.delimiter
	// Rows with deviating column counts are a row-level concern for the
	// processors, not a parse failure.
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	return r
}

func rowEmpty(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}

	return true
}
