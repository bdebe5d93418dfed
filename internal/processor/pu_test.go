package processor

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ogparsing/internal/models"
	"ogparsing/internal/parser"
)

func newPUForTest(catalog CatalogLookup) *PU {
	return NewPU([]parser.TableParser{parser.NewCSVParser()}, catalog)
}

func puLocationVendors() []*models.LocationVendor {
	vendor := &models.Vendor{ID: 9, Name: "PU"}
	return []*models.LocationVendor{locationVendor(4, vendor, nil)}
}

func catalogKey(lvID uint, itemNo string, packType models.PackType) string {
	return fmt.Sprintf("%d/%s/%s", lvID, itemNo, packType)
}

func TestPUIsFileProcessable(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{name: "four columns", content: "PU100,10.00,,2.50\n", want: true},
		{name: "two columns", content: "PU100,10.00\n", want: true},
		{name: "three columns", content: "PU100,10.00,2.50\n", want: false},
		{name: "empty file", content: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPUForTest(&fakeCatalog{})
			ok, err := p.IsFileProcessable(strings.NewReader(tt.content), puLocationVendors())
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestRowToItems(t *testing.T) {
	view := func(row []string) rowView {
		return newRowView(puColumns, row, puFields, "")
	}

	t.Run("both prices fork into two items", func(t *testing.T) {
		items := rowToItems(view([]string{"PU100", "10.00", "", "2.50"}))
		require.Len(t, items, 2)

		caseItem, eachItem := items[0], items[1]
		assert.Equal(t, models.PackTypeCase, caseItem.PackType)
		assert.True(t, caseItem.PricePerCase.Equal(decimal.RequireFromString("10.00")))
		assert.Nil(t, caseItem.PricePerEach)

		assert.Equal(t, models.PackTypeEach, eachItem.PackType)
		require.NotNil(t, eachItem.PricePerCase)
		assert.True(t, eachItem.PricePerCase.Equal(decimal.RequireFromString("2.50")),
			"each price becomes the effective per-case price of its item")
	})

	t.Run("case price only", func(t *testing.T) {
		items := rowToItems(view([]string{"PU100", "10.00", "", ""}))
		require.Len(t, items, 1)
		assert.Equal(t, models.PackTypeCase, items[0].PackType)
	})

	t.Run("zero case price drops the case item", func(t *testing.T) {
		items := rowToItems(view([]string{"PU100", "0.00", "", "2.50"}))
		require.Len(t, items, 1)
		assert.Equal(t, models.PackTypeEach, items[0].PackType)
	})

	t.Run("no prices yields no items", func(t *testing.T) {
		assert.Empty(t, rowToItems(view([]string{"PU100", "", "", ""})))
	})
}

func TestPUProcessEnrichesFromCatalog(t *testing.T) {
	lvs := puLocationVendors()

	record := &models.CatalogItem{
		ID:       31,
		ItemNo:   "PU100",
		PackType: models.PackTypeCase,
		Name:     "Diced Tomatoes",
		Brand:    "Acme",
		Barcode:  "0001112223334",
		Measure:  "6/10 LB",
		LastPrice: &models.CatalogPrice{
			Amount:    decimal.RequireFromString("9.50"),
			PriceType: models.PriceTypeCase,
		},
	}

	catalog := &fakeCatalog{items: map[string]*models.CatalogItem{
		catalogKey(4, "PU100", models.PackTypeCase): record,
	}}

	now := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

	p := newPUForTest(catalog)
	p.clock = func() time.Time { return now }

	f := strings.NewReader("PU100,10.00\nPU999,5.00\n")

	ok, err := p.IsFileProcessable(f, lvs)
	require.NoError(t, err)
	require.True(t, ok)

	docs, err := p.Process(f, lvs)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "PU", doc.Processor)
	assert.Equal(t, now, doc.Date)
	require.Len(t, doc.Items, 2)

	known := doc.Items[0]
	assert.Equal(t, "PU100", known.ItemNo)
	assert.Equal(t, []*models.CatalogItem{record}, known.Matches)
	assert.Equal(t, "6/10 LB", known.PackSize)
	assert.Equal(t, "Diced Tomatoes", known.Description)
	assert.Equal(t, "Acme", known.Brand)
	assert.Equal(t, "0001112223334", known.Barcode)
	assert.Equal(t, now, known.PriceDate)
	assert.Empty(t, known.Errors, "a 5% swing stays under the threshold")

	unknown := doc.Items[1]
	assert.Equal(t, "PU999", unknown.ItemNo)
	assert.Empty(t, unknown.Matches)
	require.Len(t, unknown.Errors, 1)
	assert.Equal(t, models.ErrorItemNotFound, unknown.Errors[0].Kind)
	assert.Equal(t, "Item was not found.", unknown.Errors[0].Message)
	assert.Equal(t, "PU999", unknown.Errors[0].ItemNo)
	assert.Same(t, lvs[0], unknown.Errors[0].LocationVendor)
	assert.Equal(t, []string{"PU999", "5.00"}, unknown.Errors[0].Row)
}

func TestPUProcessMixedVendors(t *testing.T) {
	mixed := []*models.LocationVendor{
		locationVendor(4, &models.Vendor{ID: 9, Name: "PU"}, nil),
		locationVendor(5, &models.Vendor{ID: 10, Name: "Other"}, nil),
	}

	p := newPUForTest(&fakeCatalog{})
	f := strings.NewReader("PU100,10.00\n")

	ok, err := p.IsFileProcessable(f, mixed)
	require.NoError(t, err)
	require.True(t, ok)

	docs, err := p.Process(f, mixed)
	assert.ErrorIs(t, err, models.ErrMixedVendors)
	assert.Empty(t, docs)
}

func TestPUPriceDeviated(t *testing.T) {
	dec := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	p := newPUForTest(&fakeCatalog{})

	tests := []struct {
		name     string
		oldPrice *decimal.Decimal
		newPrice *decimal.Decimal
		want     bool
	}{
		{name: "no history never deviates", oldPrice: nil, newPrice: dec("5"), want: false},
		{name: "zero old price always deviates", oldPrice: dec("0"), newPrice: dec("5"), want: true},
		{name: "missing new price deviates", oldPrice: dec("10"), newPrice: nil, want: true},
		{name: "zero new price deviates", oldPrice: dec("10"), newPrice: dec("0"), want: true},
		{name: "small swing passes", oldPrice: dec("10"), newPrice: dec("9"), want: false},
		{name: "swing above threshold", oldPrice: dec("10"), newPrice: dec("13"), want: true},
		{name: "swing exactly at threshold passes", oldPrice: dec("10"), newPrice: dec("12.5"), want: false},
		{name: "downward swing counts too", oldPrice: dec("10"), newPrice: dec("7"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.priceDeviated(tt.oldPrice, tt.newPrice))
		})
	}
}

func TestPUPriceDeviationErrorMessage(t *testing.T) {
	p := newPUForTest(&fakeCatalog{})

	record := &models.CatalogItem{
		ItemNo: "PU100",
		LastPrice: &models.CatalogPrice{
			Amount:    decimal.NewFromInt(10),
			PriceType: models.PriceTypeCase,
		},
	}

	newPrice := decimal.NewFromInt(14)

	err := p.priceDeviationError(record, &newPrice)
	require.NotNil(t, err)
	assert.Equal(t, models.ErrorPriceChangeExceeded, err.Kind)
	assert.Equal(t, "PU100", err.ItemNo)
	assert.Equal(t,
		"Item price was changed more than 25%. Old price: $10 per CASE, new price: $14 per CASE",
		err.Message)
}

func TestPUThresholdOverride(t *testing.T) {
	p := newPUForTest(&fakeCatalog{})
	assert.InDelta(t, 0.25, p.PriceChangeThreshold(), 1e-9)

	p.SetPriceChangeThreshold(0.5)
	assert.InDelta(t, 0.5, p.PriceChangeThreshold(), 1e-9)

	old := decimal.NewFromInt(10)
	high := decimal.NewFromInt(14)
	assert.False(t, p.priceDeviated(&old, &high), "a 40% swing passes a 50% threshold")
}

func TestPUProductCreationNotPermitted(t *testing.T) {
	assert.False(t, newPUForTest(&fakeCatalog{}).ProductCreationPermitted())
	assert.True(t, newGPForTest().ProductCreationPermitted())
}
