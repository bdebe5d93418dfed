package processor

import (
	"strings"

	"ogparsing/internal/models"
)

// Canonical item fields resolvable through a FieldMap.
const (
	FieldItemNo      = "itemNo"
	FieldPackType    = "packType"
	FieldPackSize    = "packSize"
	FieldDescription = "description"
	FieldBrand       = "brand"
	FieldPriceCase   = "pricePerCase"
	FieldPricePound  = "pricePerPound"
	FieldPriceEach   = "pricePerEach"
)

// FieldMap maps a canonical field to its source column name per syntax key.
// The "" syntax key is the default used when a parser's key has no explicit
// override.
type FieldMap map[string]map[string]string

// Column resolves the source column for a field under the given syntax key.
func (m FieldMap) Column(field, syntaxKey string) string {
	columns, ok := m[field]
	if !ok {
		return ""
	}

	if col, ok := columns[syntaxKey]; ok {
		return col
	}

	return columns[""]
}

// rowView exposes one raw row's cells by canonical field name. Rows shorter
// than the column list simply miss the trailing fields.
type rowView struct {
	mapping   FieldMap
	syntaxKey string
	values    map[string]string
}

func newRowView(columns, row []string, mapping FieldMap, syntaxKey string) rowView {
	values := make(map[string]string, len(columns))
	for i, col := range columns {
		if i < len(row) {
			values[col] = row[i]
		}
	}

	return rowView{mapping: mapping, syntaxKey: syntaxKey, values: values}
}

func (v rowView) field(name string) string {
	return strings.TrimSpace(v.values[v.mapping.Column(name, v.syntaxKey)])
}

// rowError builds a structural error carrying the offending raw row. The
// item number is recovered through the field mapping when the row has one.
func (v rowView) rowError(kind models.ErrorKind, message string, row []string) *models.OrderGuideError {
	return &models.OrderGuideError{
		Kind:    kind,
		Message: message,
		ItemNo:  v.field(FieldItemNo),
		Row:     row,
	}
}
