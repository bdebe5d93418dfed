package processor

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ogparsing/internal/models"
	"ogparsing/internal/parser"
)

const gpHeader = "Sr No,Item No,Unit,Pack Size,Description,Brand," +
	"Unit Price Per Case,Unit Price Per Packsize Unit,Category,Max Quantity,Market Price,Market Price Unit"

func newGPForTest() *GP {
	return NewGP([]parser.TableParser{parser.NewCSVParser()})
}

func gpLocationVendors() []*models.LocationVendor {
	vendor := &models.Vendor{ID: 7, Name: "GP"}
	return []*models.LocationVendor{
		locationVendor(1, vendor, nil),
		locationVendor(2, vendor, nil),
	}
}

func TestGPIsFileProcessable(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{
			name:    "reference header",
			content: gpHeader + "\n1,GP100,CS,6/10 LB,Tomatoes,Acme,45.10,,,,,\n",
			want:    true,
		},
		{
			name:    "extra column",
			content: gpHeader + ",Notes\n",
			want:    false,
		},
		{
			name:    "reordered columns",
			content: "Item No,Sr No,Unit,Pack Size,Description,Brand,Unit Price Per Case,Unit Price Per Packsize Unit,Category,Max Quantity,Market Price,Market Price Unit\n",
			want:    false,
		},
		{
			name:    "empty file",
			content: "",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := newGPForTest().IsFileProcessable(strings.NewReader(tt.content), gpLocationVendors())
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestGPProcess(t *testing.T) {
	content := gpHeader + "\n" +
		"1,GP100,CS,6/10 LB,Tomatoes  Diced,Acme,45.10,4.25,Produce,10,44.00,CS\n" +
		"2,GP200,EA,,Plastic Fork,,1.25,,Disposables,,,\n" +
		"3,GP300,CS\n"

	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	p := newGPForTest()
	p.clock = func() time.Time { return now }

	lvs := gpLocationVendors()
	f := strings.NewReader(content)

	ok, err := p.IsFileProcessable(f, lvs)
	require.NoError(t, err)
	require.True(t, ok)

	docs, err := p.Process(f, lvs)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "GP", doc.Processor)
	assert.Equal(t, now, doc.Date)
	assert.Equal(t, lvs, doc.LocationVendors)

	require.Len(t, doc.Items, 2)

	first := doc.Items[0]
	assert.Equal(t, "GP100", first.ItemNo)
	assert.Equal(t, models.PackTypeCase, first.PackType)
	assert.Equal(t, "6/10 LB", first.PackSize)
	assert.Equal(t, "Tomatoes Diced", first.Description, "whitespace runs collapse")
	assert.Equal(t, "Acme", first.Brand)
	require.NotNil(t, first.PricePerCase)
	assert.True(t, first.PricePerCase.Equal(decimal.RequireFromString("45.10")))
	require.NotNil(t, first.PricePerPound)
	assert.True(t, first.PricePerPound.Equal(decimal.RequireFromString("4.25")))
	assert.Equal(t, now, first.PriceDate)

	second := doc.Items[1]
	assert.Equal(t, "GP200", second.ItemNo)
	assert.Equal(t, models.PackTypeEach, second.PackType)
	assert.Equal(t, "", second.PackSize)
	assert.Equal(t, "Unit", second.EffectivePackSize())

	require.Len(t, doc.Errors, 1)
	assert.Equal(t, models.ErrorWrongStringFormat, doc.Errors[0].Kind)
	assert.Equal(t, "GP300", doc.Errors[0].ItemNo)
	assert.Equal(t, []string{"3", "GP300", "CS"}, doc.Errors[0].Row)
}

func TestGPProcessRequiresLocationVendors(t *testing.T) {
	p := newGPForTest()

	_, err := p.Process(strings.NewReader(gpHeader+"\n"), nil)
	assert.ErrorIs(t, err, ErrNoLocationVendors)
}

func TestGPProcessMixedVendors(t *testing.T) {
	mixed := []*models.LocationVendor{
		locationVendor(1, &models.Vendor{ID: 1, Name: "GP"}, nil),
		locationVendor(2, &models.Vendor{ID: 2, Name: "Other"}, nil),
	}

	content := gpHeader + "\n1,GP100,CS,6/10 LB,Tomatoes,Acme,45.10,,,,,\n"

	p := newGPForTest()
	f := strings.NewReader(content)

	ok, err := p.IsFileProcessable(f, mixed)
	require.NoError(t, err)
	require.True(t, ok)

	docs, err := p.Process(f, mixed)
	assert.ErrorIs(t, err, models.ErrMixedVendors)
	assert.Empty(t, docs)
}

func TestGPProcessWithoutMatch(t *testing.T) {
	p := newGPForTest()

	_, err := p.Process(strings.NewReader(gpHeader+"\n"), gpLocationVendors())
	assert.ErrorIs(t, err, ErrNotMatched)
}
