// Package routing holds the route-graph utilities the presentation layer
// invokes directly: disruption bypass, segment splicing, and multi-modal
// route planning. All functions are pure over caller-supplied data.
package routing

import (
	"fmt"
	"sort"

	"github.com/harborline/disruption-shield/internal/contracts"
	"github.com/harborline/disruption-shield/internal/geo"
)

// BypassOutcome reports the result of a bypass attempt. "No bypass possible"
// is a normal outcome, not an error.
type BypassOutcome struct {
	Possible   bool             `json:"possible"`
	Reason     string           `json:"reason,omitempty"`
	Substitute contracts.Node   `json:"substitute,omitempty"`
	Nodes      []contracts.Node `json:"nodes,omitempty"`
}

// Bypass searches the candidate pool for the nearest unused, non-disrupted
// substitute for a disrupted interior node and returns a new node sequence
// with the substitute in place. The input route is never mutated.
//
// Ranking uses flat lat/lng distance rather than geodesic distance; for a
// regional pool only the relative order matters.
func Bypass(route contracts.Route, disruptedID string, pool []contracts.Node) (BypassOutcome, error) {
	if err := route.Validate(); err != nil {
		return BypassOutcome{}, err
	}

	idx := -1
	for i, n := range route.Nodes {
		if n.ID == disruptedID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return BypassOutcome{}, fmt.Errorf("node %q not in route: %w", disruptedID, contracts.ErrNotFound)
	}
	if idx == 0 || idx == len(route.Nodes)-1 {
		return BypassOutcome{Possible: false, Reason: "cannot bypass route endpoints"}, nil
	}

	disrupted := route.Nodes[idx]

	candidates := make([]contracts.Node, 0, len(pool))
	for _, c := range pool {
		if c.ID == disruptedID || c.Disrupted() || route.Contains(c.ID) {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return BypassOutcome{Possible: false, Reason: "no eligible bypass candidate"}, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		di := geo.PlanarDist2(candidates[i].Lat, candidates[i].Lng, disrupted.Lat, disrupted.Lng)
		dj := geo.PlanarDist2(candidates[j].Lat, candidates[j].Lng, disrupted.Lat, disrupted.Lng)
		return di < dj
	})
	substitute := candidates[0]

	nodes := make([]contracts.Node, len(route.Nodes))
	copy(nodes, route.Nodes)
	nodes[idx] = substitute

	return BypassOutcome{Possible: true, Substitute: substitute, Nodes: nodes}, nil
}
