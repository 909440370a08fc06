package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/disruption-shield/internal/contracts"
)

func node(id string, lat, lng float64) contracts.Node {
	return contracts.Node{ID: id, Name: id, Lat: lat, Lng: lng, Type: contracts.NodePort}
}

func disruptedNode(id string, lat, lng float64) contracts.Node {
	n := node(id, lat, lng)
	n.Disruption = &contracts.Disruption{Type: contracts.DisruptionStrike, Severity: contracts.TierHigh, ExtraDelayDays: 2}
	return n
}

func threeNodeRoute() contracts.Route {
	return contracts.Route{Nodes: []contracts.Node{
		node("a", 0, 0),
		disruptedNode("b", 10, 10),
		node("c", 20, 20),
	}}
}

func TestBypassPicksNearestEligibleCandidate(t *testing.T) {
	route := threeNodeRoute()
	pool := []contracts.Node{
		node("far", 30, 30),
		node("near", 10.5, 10.5),
		node("nearest-but-disrupted", 10.1, 10.1),
	}
	pool[2] = disruptedNode("nearest-but-disrupted", 10.1, 10.1)

	outcome, err := Bypass(route, "b", pool)
	require.NoError(t, err)

	assert.True(t, outcome.Possible)
	assert.Equal(t, "near", outcome.Substitute.ID)
	require.Len(t, outcome.Nodes, 3)
	assert.Equal(t, []string{"a", "near", "c"}, []string{outcome.Nodes[0].ID, outcome.Nodes[1].ID, outcome.Nodes[2].ID})

	// The original route is untouched.
	assert.Equal(t, "b", route.Nodes[1].ID)
}

func TestBypassNeverProposesRouteMembers(t *testing.T) {
	route := threeNodeRoute()
	// Pool only contains nodes already in the route plus the disrupted node.
	pool := []contracts.Node{node("a", 0, 0), disruptedNode("b", 10, 10), node("c", 20, 20)}

	outcome, err := Bypass(route, "b", pool)
	require.NoError(t, err)
	assert.False(t, outcome.Possible)
	assert.Equal(t, "no eligible bypass candidate", outcome.Reason)
}

func TestBypassEndpointsNotBypassable(t *testing.T) {
	route := threeNodeRoute()
	pool := []contracts.Node{node("x", 1, 1)}

	for _, id := range []string{"a", "c"} {
		outcome, err := Bypass(route, id, pool)
		require.NoError(t, err)
		assert.False(t, outcome.Possible)
		assert.Equal(t, "cannot bypass route endpoints", outcome.Reason)
	}
}

func TestBypassUnknownNodeIsNotFound(t *testing.T) {
	_, err := Bypass(threeNodeRoute(), "ghost", []contracts.Node{node("x", 1, 1)})
	assert.ErrorIs(t, err, contracts.ErrNotFound)
}

func TestBypassRejectsInvalidRoute(t *testing.T) {
	short := contracts.Route{Nodes: []contracts.Node{node("a", 0, 0)}}
	_, err := Bypass(short, "a", nil)
	var verr *contracts.ValidationError
	require.ErrorAs(t, err, &verr)

	dup := contracts.Route{Nodes: []contracts.Node{node("a", 0, 0), node("b", 1, 1), node("a", 0, 0)}}
	_, err = Bypass(dup, "b", nil)
	require.ErrorAs(t, err, &verr)
}
