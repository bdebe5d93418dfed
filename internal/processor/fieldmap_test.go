package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ogparsing/internal/models"
)

func TestFieldMapColumn(t *testing.T) {
	m := FieldMap{
		FieldItemNo: {"": "Item No", "xlsx": "Item Number"},
		FieldBrand:  {"": "Brand"},
	}

	assert.Equal(t, "Item No", m.Column(FieldItemNo, "csv"), "unknown syntax key falls back to default")
	assert.Equal(t, "Item Number", m.Column(FieldItemNo, "xlsx"))
	assert.Equal(t, "Brand", m.Column(FieldBrand, ""))
	assert.Equal(t, "", m.Column(FieldPriceEach, "csv"))
}

func TestRowViewFieldTrims(t *testing.T) {
	columns := []string{"Item No", "Brand"}
	mapping := FieldMap{
		FieldItemNo: {"": "Item No"},
		FieldBrand:  {"": "Brand"},
	}

	view := newRowView(columns, []string{"  A100  ", "\tAcme "}, mapping, "")

	assert.Equal(t, "A100", view.field(FieldItemNo))
	assert.Equal(t, "Acme", view.field(FieldBrand))
}

func TestRowViewShortRowMissesTrailingFields(t *testing.T) {
	columns := []string{"Item No", "Brand", "Pack Size"}
	mapping := FieldMap{
		FieldItemNo:   {"": "Item No"},
		FieldBrand:    {"": "Brand"},
		FieldPackSize: {"": "Pack Size"},
	}

	view := newRowView(columns, []string{"A100"}, mapping, "")

	assert.Equal(t, "A100", view.field(FieldItemNo))
	assert.Equal(t, "", view.field(FieldBrand))
	assert.Equal(t, "", view.field(FieldPackSize))
}

func TestRowErrorCarriesItemNoAndRow(t *testing.T) {
	columns := []string{"Item No", "Brand"}
	mapping := FieldMap{FieldItemNo: {"": "Item No"}}
	row := []string{"A100", "Acme", "extra"}

	view := newRowView(columns, row, mapping, "")

	err := view.rowError(models.ErrorWrongStringFormat, "bad row", row)
	assert.Equal(t, models.ErrorWrongStringFormat, err.Kind)
	assert.Equal(t, "bad row", err.Message)
	assert.Equal(t, "A100", err.ItemNo)
	assert.Equal(t, row, err.Row)
}
