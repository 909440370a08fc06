package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/disruption-shield/internal/contracts"
	"github.com/harborline/disruption-shield/internal/geo"
)

func airport(id string, lat, lng float64) contracts.Node {
	n := node(id, lat, lng)
	n.Type = contracts.NodeAirport
	return n
}

func TestSegmentCostSea(t *testing.T) {
	a := node("mumbai-port", 18.95, 72.84)
	b := node("chennai-port", 13.08, 80.29)

	mode, cost, hours, dist := SegmentCost(a, b)

	great := geo.HaversineKm(a.Lat, a.Lng, b.Lat, b.Lng)
	assert.Equal(t, contracts.ModeSea, mode)
	assert.InDelta(t, great*1.4, dist, 1e-9)
	assert.InDelta(t, dist*0.05, cost, 1e-9)
	assert.InDelta(t, dist/30+6, hours, 1e-9)
}

func TestSegmentCostAir(t *testing.T) {
	a := airport("bom", 19.09, 72.87)
	b := airport("maa", 12.99, 80.17)

	mode, cost, hours, dist := SegmentCost(a, b)

	great := geo.HaversineKm(a.Lat, a.Lng, b.Lat, b.Lng)
	assert.Equal(t, contracts.ModeAir, mode)
	assert.InDelta(t, great, dist, 1e-9)
	assert.InDelta(t, dist*0.5, cost, 1e-9)
	assert.InDelta(t, dist/500+3, hours, 1e-9)
}

func TestSegmentCostIntermodalTransfer(t *testing.T) {
	// Port and airport in the same city, well under 100 km apart.
	mode, cost, hours, _ := SegmentCost(node("mumbai-port", 18.95, 72.84), airport("bom", 19.09, 72.87))

	assert.Equal(t, contracts.ModeIntermodal, mode)
	assert.Equal(t, 2000.0, cost)
	assert.Equal(t, 12.0, hours)
}

func TestSegmentCostMixedLongHaul(t *testing.T) {
	a := node("mumbai-port", 18.95, 72.84)
	b := airport("maa", 12.99, 80.17)

	mode, cost, hours, dist := SegmentCost(a, b)

	assert.Equal(t, contracts.ModeAir, mode)
	assert.InDelta(t, dist*0.5+2000, cost, 1e-9)
	assert.InDelta(t, dist/500+12, hours, 1e-9)
}

func TestComputeRoutesRanksByCost(t *testing.T) {
	origin := node("p0", 10, 70)
	near := node("p1-near", 12, 72) // close to the straight line
	far := node("p1-far", 20, 85)
	dest := node("p2", 14, 74)

	routes := ComputeRoutes([][]contracts.Node{{origin}, {near, far}, {dest}}, 4)
	require.Len(t, routes, 2)

	assert.Equal(t, "Best Route (Lowest Cost)", routes[0].Label)
	assert.Equal(t, "Alternative 1", routes[1].Label)
	assert.Equal(t, 1, routes[0].RouteID)
	assert.Equal(t, 2, routes[1].RouteID)
	assert.LessOrEqual(t, routes[0].TotalCost, routes[1].TotalCost)

	require.Len(t, routes[0].Segments, 2)
	assert.Equal(t, "p1-near", routes[0].Segments[0].To.ID)
	assert.Equal(t, []contracts.TransportMode{contracts.ModeSea}, routes[0].ModesUsed)

	// Cumulative values on the final segment equal the route totals.
	last := routes[0].Segments[1]
	assert.InDelta(t, routes[0].TotalCost, last.CumulativeCost, 1e-9)
	assert.InDelta(t, routes[0].TotalTimeHours, last.CumulativeTimeHours, 1e-9)
}

func TestComputeRoutesHonorsLimit(t *testing.T) {
	origin := node("p0", 10, 70)
	mids := []contracts.Node{node("m1", 12, 72), node("m2", 13, 73), node("m3", 15, 76)}
	dest := node("p2", 14, 74)

	routes := ComputeRoutes([][]contracts.Node{{origin}, mids, {dest}}, 1)
	require.Len(t, routes, 1)
	assert.Equal(t, "Best Route (Lowest Cost)", routes[0].Label)
}

func TestComputeRoutesMixedModes(t *testing.T) {
	routes := ComputeRoutes([][]contracts.Node{
		{node("mumbai-port", 18.95, 72.84), airport("bom", 19.09, 72.87)},
		{node("chennai-port", 13.08, 80.29), airport("maa", 12.99, 80.17)},
	}, 4)
	require.NotEmpty(t, routes)

	var sawAir bool
	for _, r := range routes {
		for _, m := range r.ModesUsed {
			if m == contracts.ModeAir {
				sawAir = true
			}
		}
	}
	assert.True(t, sawAir)
}

func TestComputeRoutesDegenerateInputs(t *testing.T) {
	assert.Nil(t, ComputeRoutes(nil, 4))
	assert.Nil(t, ComputeRoutes([][]contracts.Node{{node("p0", 10, 70)}}, 4))
}
