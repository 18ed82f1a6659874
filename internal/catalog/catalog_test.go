package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLookups(t *testing.T) {
	roast, ok := RoastByID("first-light")
	require.True(t, ok)
	assert.Equal(t, "First Light", roast.Name)

	size, ok := SizeByID("2lb")
	require.True(t, ok)
	assert.Equal(t, 32.0, size.Price)

	freq, ok := FrequencyByID("biweekly")
	require.True(t, ok)
	assert.Equal(t, 0.10, freq.Discount)

	_, ok = RoastByID("decaf")
	assert.False(t, ok)
}

func TestDiscountsWithinRange(t *testing.T) {
	for _, f := range Frequencies() {
		assert.GreaterOrEqual(t, f.Discount, 0.0)
		assert.Less(t, f.Discount, 1.0)
	}
}

func TestMustLookupsPanicOnUnknownID(t *testing.T) {
	assert.NotPanics(t, func() { MustSize("16oz") })
	assert.NotPanics(t, func() { MustFrequency("weekly") })

	assert.Panics(t, func() { MustSize("5kg") })
	assert.Panics(t, func() { MustFrequency("daily") })
}
