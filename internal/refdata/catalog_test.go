package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/disruption-shield/internal/contracts"
)

func TestLoadEmbeddedTables(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	inv, ok := c.Inventory("P1")
	require.True(t, ok)
	assert.Equal(t, 500.0, inv.Stock)
	assert.Equal(t, 80.0, inv.DailyDemand)

	_, ok = c.Inventory("P999")
	assert.False(t, ok)

	orders := c.Orders("P1")
	assert.Len(t, orders, 2)

	assert.Len(t, c.Locations(), 10)
	assert.Len(t, c.Nodes(), 10)
}

func TestWeatherLookup(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	w := c.Weather("Nhava Sheva (JNPT)")
	assert.Equal(t, contracts.TierHigh, w.Risk)

	// Case-insensitive match.
	assert.Equal(t, contracts.TierLow, c.Weather("mundra").Risk)

	// Unknown locations get the clear-conditions default.
	assert.Equal(t, contracts.TierLow, c.Weather("Atlantis").Risk)
	assert.Equal(t, "Unknown", c.Weather("Atlantis").Condition)
}

func TestDisruptionLookup(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	d := c.Disruption("Visakhapatnam")
	require.NotNil(t, d)
	assert.Equal(t, contracts.DisruptionWeather, d.Type)
	assert.Equal(t, 4.0, d.ExtraDelayDays)

	assert.Nil(t, c.Disruption("Mundra"))
	assert.Nil(t, c.Disruption("Atlantis"))
}

func TestFixtureCatalog(t *testing.T) {
	c := NewCatalog(
		[]Location{{ID: "n1", Name: "Test Port", Type: contracts.NodePort, Weather: Weather{Risk: contracts.TierMedium}}},
		[]Inventory{{ProductID: "X1", Stock: 10, DailyDemand: 2}},
		[]contracts.Order{{OrderID: "O1", ProductID: "X1", Quantity: 5}},
	)

	inv, ok := c.Inventory("X1")
	assert.True(t, ok)
	assert.Equal(t, 10.0, inv.Stock)
	assert.Equal(t, contracts.TierMedium, c.Weather("test port").Risk)
	assert.Len(t, c.Orders("X1"), 1)
}
