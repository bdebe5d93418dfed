package processor

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ogparsing/internal/models"
)

func usfInterchange() string {
	return buildInterchange(
		"GS*SC*SENDER*RECEIVER*20250401*1200*1*X*004010",
		"ST*832*0001",
		"BCT*PC",
		"REF*IA*123",
		"DTM*007*20250401",
		"N1*SE*US FOODS",
		"N1*BY*BUYER*92*12345",
		"LIN*1*VN*USF100*UP*A*B*C*D*ACME*MF*0001112223334",
		"PO1**1*CS",
		"REF*ACC**Y",
		"PID*F****DICED TOMATOES",
		"PKG*F****6/10 LB",
		"PO4*6",
		"CTP**PBQ*45.10**CS",
		"DTM*008*20250402",
		"LIN*2*VN*USF200*UP*A*B*C*D*ACME*MF*0001112220000",
		"PO1**1*LB",
		"PID*F****GROUND BEEF",
		"PO4*1",
		"CTP**PBQ*4.25**LB",
		"DTM*008*20250402",
		"CTT*2",
		"SE*20*0001",
		"GE*1*1",
		"IEA*1*000000001",
	)
}

func usfLocationVendors(customerNumber string) []*models.LocationVendor {
	vendor := &models.Vendor{ID: 1, Name: "US Foods"}
	setup := &models.UsfX12ImportSetup{
		X12ImportSetup: models.X12ImportSetup{CustomerNumber: customerNumber},
	}

	return []*models.LocationVendor{locationVendor(10, vendor, setup)}
}

func usfAccounts(lv *models.LocationVendor) *fakeAccounts {
	return &fakeAccounts{byNumber: map[string]*models.LocationVendor{
		"usf-x12/12345": lv,
	}}
}

func TestUSFIsFileProcessable(t *testing.T) {
	lvs := usfLocationVendors("12345")

	t.Run("valid interchange", func(t *testing.T) {
		p := NewUSF(x12Parsers(), usfAccounts(lvs[0]))
		ok, err := p.IsFileProcessable(strings.NewReader(usfInterchange()), lvs)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong setup kind", func(t *testing.T) {
		vendor := &models.Vendor{ID: 2, Name: "Sysco"}
		other := []*models.LocationVendor{
			locationVendor(11, vendor, &models.SyscoX12ImportSetup{}),
		}

		p := NewUSF(x12Parsers(), usfAccounts(lvs[0]))
		ok, err := p.IsFileProcessable(strings.NewReader(usfInterchange()), other)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing transaction set trailer", func(t *testing.T) {
		truncated := strings.Replace(usfInterchange(), "SE*20*0001~\n", "", 1)

		p := NewUSF(x12Parsers(), usfAccounts(lvs[0]))
		ok, err := p.IsFileProcessable(strings.NewReader(truncated), lvs)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("not an interchange at all", func(t *testing.T) {
		p := NewUSF(x12Parsers(), usfAccounts(lvs[0]))
		ok, err := p.IsFileProcessable(strings.NewReader("Item No,Price\nA,1\n"), lvs)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("no location vendors", func(t *testing.T) {
		p := NewUSF(x12Parsers(), usfAccounts(lvs[0]))
		_, err := p.IsFileProcessable(strings.NewReader(usfInterchange()), nil)
		assert.ErrorIs(t, err, ErrNoLocationVendors)
	})

	t.Run("mixed vendors", func(t *testing.T) {
		mixed := append(usfLocationVendors("12345"),
			locationVendor(12, &models.Vendor{ID: 2, Name: "Sysco"}, nil))

		p := NewUSF(x12Parsers(), usfAccounts(lvs[0]))
		_, err := p.IsFileProcessable(strings.NewReader(usfInterchange()), mixed)
		assert.ErrorIs(t, err, models.ErrMixedVendors)
	})
}

func TestUSFProcess(t *testing.T) {
	lvs := usfLocationVendors("12345")

	p := NewUSF(x12Parsers(), usfAccounts(lvs[0]))
	f := strings.NewReader(usfInterchange())

	ok, err := p.IsFileProcessable(f, lvs)
	require.NoError(t, err)
	require.True(t, ok)

	docs, err := p.Process(f, lvs)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "USF", doc.Processor)
	assert.Equal(t, []*models.LocationVendor{lvs[0]}, doc.LocationVendors)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), doc.Date)
	assert.Empty(t, doc.Errors)

	require.Len(t, doc.Items, 2)

	first := doc.Items[0]
	assert.Equal(t, "USF100", first.ItemNo)
	assert.Equal(t, models.PackTypeCase, first.PackType)
	assert.Equal(t, "6/10 LB", first.PackSize)
	assert.Equal(t, "DICED TOMATOES", first.Description)
	assert.Equal(t, "ACME", first.Brand)
	assert.Equal(t, "0001112223334", first.Barcode)
	assert.True(t, first.Discontinued)
	require.NotNil(t, first.PricePerCase)
	assert.True(t, first.PricePerCase.Equal(decimal.RequireFromString("45.10")))
	assert.Nil(t, first.PricePerPound)
	assert.Equal(t, time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), first.PriceDate)
	assert.Empty(t, first.Errors)

	second := doc.Items[1]
	assert.Equal(t, "USF200", second.ItemNo)
	assert.Equal(t, models.PackTypePound, second.PackType)
	assert.Equal(t, "", second.PackSize)
	assert.False(t, second.Discontinued)
	require.NotNil(t, second.PricePerPound)
	assert.True(t, second.PricePerPound.Equal(decimal.RequireFromString("4.25")))
	assert.Nil(t, second.PricePerCase)

	require.Len(t, second.Errors, 1)
	assert.Equal(t, models.ErrorWrongStringFormat, second.Errors[0].Kind)
	assert.Equal(t, "Pack-size field was not found or empty.", second.Errors[0].Message)
	assert.Equal(t, "USF200", second.Errors[0].ItemNo)
}

func TestUSFProcessUnknownCustomerNumber(t *testing.T) {
	lvs := usfLocationVendors("99999")

	p := NewUSF(x12Parsers(), &fakeAccounts{})
	f := strings.NewReader(usfInterchange())

	ok, err := p.IsFileProcessable(f, lvs)
	require.NoError(t, err)
	require.True(t, ok)

	docs, err := p.Process(f, lvs)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Empty(t, doc.LocationVendors)
	assert.Empty(t, doc.Items)
	require.Len(t, doc.Errors, 1)
	assert.Equal(t, models.ErrorLocationVendorNotFound, doc.Errors[0].Kind)
	assert.Equal(t, "Customer number 12345 was not found.", doc.Errors[0].Message)
}

func TestUSFProcessWithoutMatchFails(t *testing.T) {
	lvs := usfLocationVendors("12345")

	p := NewUSF(x12Parsers(), usfAccounts(lvs[0]))

	_, err := p.Process(strings.NewReader("not edi"), lvs)
	assert.ErrorIs(t, err, ErrNotMatched)
}
