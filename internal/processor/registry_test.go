package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLocatorRegistrationOrder(t *testing.T) {
	l := DefaultLocator(Deps{Accounts: &fakeAccounts{}, Catalog: &fakeCatalog{}})

	require.Len(t, l.processors, 4)

	var names []string
	for _, p := range l.processors {
		names = append(names, p.Name())
	}

	assert.Equal(t, []string{"GP", "PU", "USF", "Sysco"}, names)
}

func TestDefaultLocatorAppliesPriceChangeThreshold(t *testing.T) {
	l := DefaultLocator(Deps{
		Accounts:             &fakeAccounts{},
		Catalog:              &fakeCatalog{},
		PriceChangeThreshold: 0.5,
	})

	pu, ok := l.processors[1].(*PU)
	require.True(t, ok)
	assert.InDelta(t, 0.5, pu.PriceChangeThreshold(), 1e-9)
}

func TestDefaultLocatorKeepsDefaultThreshold(t *testing.T) {
	l := DefaultLocator(Deps{Accounts: &fakeAccounts{}, Catalog: &fakeCatalog{}})

	pu, ok := l.processors[1].(*PU)
	require.True(t, ok)
	assert.InDelta(t, defaultPriceChangeThreshold, pu.PriceChangeThreshold(), 1e-9)
}
