package routing

import (
	"sort"
	"strconv"
	"strings"

	"github.com/harborline/disruption-shield/internal/contracts"
	"github.com/harborline/disruption-shield/internal/geo"
)

// Cost model for multi-modal freight. Sea is cheap and slow, air expensive
// and fast, intermodal transfers carry a flat fee and a half-day dwell.
const (
	seaCostPerKm     = 0.05
	airCostPerKm     = 0.50
	intermodalFlat   = 2000.0
	seaSpeedKmh      = 30.0
	airSpeedKmh      = 500.0
	intermodalHours  = 12.0
	portHandlingHr   = 6.0
	airportDwellHr   = 3.0
	seaRoutingFactor = 1.4 // coastal routing vs great-circle
)

const (
	startBranchLimit = 4
	legBranchLimit   = 3
)

// SegmentCost prices one hop between two nodes: mode, cost, time and the
// distance actually travelled.
func SegmentCost(a, b contracts.Node) (contracts.TransportMode, float64, float64, float64) {
	dist := geo.HaversineKm(a.Lat, a.Lng, b.Lat, b.Lng)

	// Same-city port<->airport transfer.
	if a.Type != b.Type && dist < 100 {
		return contracts.ModeIntermodal, intermodalFlat, intermodalHours, dist
	}

	if a.Type == contracts.NodeAirport && b.Type == contracts.NodeAirport {
		return contracts.ModeAir, dist * airCostPerKm, dist/airSpeedKmh + airportDwellHr, dist
	}

	if a.Type == contracts.NodePort && b.Type == contracts.NodePort {
		seaDist := dist * seaRoutingFactor
		return contracts.ModeSea, seaDist * seaCostPerKm, seaDist/seaSpeedKmh + portHandlingHr, seaDist
	}

	// Mixed hop over distance: air pricing plus a transfer fee.
	return contracts.ModeAir, dist*airCostPerKm + intermodalFlat, dist/airSpeedKmh + intermodalHours, dist
}

// ComputeRoutes enumerates up to numRoutes lowest-cost routes through the
// given per-city candidate node sets (origin first, destination last).
// Branching is capped at each city to keep the search bounded; duplicate node
// sequences are removed before ranking.
func ComputeRoutes(cityNodes [][]contracts.Node, numRoutes int) []contracts.PlannedRoute {
	if numRoutes <= 0 {
		numRoutes = 4
	}
	if len(cityNodes) < 2 {
		return nil
	}

	var all []contracts.PlannedRoute

	var build func(legIdx int, current *contracts.Node, segs []contracts.Segment, cost, timeH, dist float64, visited map[string]struct{})
	build = func(legIdx int, current *contracts.Node, segs []contracts.Segment, cost, timeH, dist float64, visited map[string]struct{}) {
		if legIdx >= len(cityNodes) {
			all = append(all, contracts.PlannedRoute{
				Segments:        append([]contracts.Segment(nil), segs...),
				TotalCost:       cost,
				TotalTimeHours:  timeH,
				TotalDistanceKm: dist,
				ModesUsed:       modesUsed(segs),
			})
			return
		}

		targets := cityNodes[legIdx]

		if current == nil {
			limit := startBranchLimit
			if limit > len(targets) {
				limit = len(targets)
			}
			for i := 0; i < limit; i++ {
				start := targets[i]
				build(legIdx+1, &start, segs, cost, timeH, dist, withVisited(visited, start.ID))
			}
			return
		}

		type candidate struct {
			node  contracts.Node
			mode  contracts.TransportMode
			cost  float64
			timeH float64
			dist  float64
		}
		var candidates []candidate
		for _, tgt := range targets {
			if _, used := visited[tgt.ID]; used {
				continue
			}
			mode, c, t, d := SegmentCost(*current, tgt)
			candidates = append(candidates, candidate{node: tgt, mode: mode, cost: c, timeH: t, dist: d})
		}
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].cost < candidates[j].cost })

		limit := legBranchLimit
		if limit > len(candidates) {
			limit = len(candidates)
		}
		for i := 0; i < limit; i++ {
			c := candidates[i]
			seg := contracts.Segment{
				From:                *current,
				To:                  c.node,
				Mode:                c.mode,
				DistanceKm:          c.dist,
				Cost:                c.cost,
				TimeHours:           c.timeH,
				CumulativeCost:      cost + c.cost,
				CumulativeTimeHours: timeH + c.timeH,
			}
			next := c.node
			build(legIdx+1, &next, append(segs, seg), cost+c.cost, timeH+c.timeH, dist+c.dist, withVisited(visited, c.node.ID))
		}
	}

	build(0, nil, nil, 0, 0, 0, map[string]struct{}{})

	sort.SliceStable(all, func(i, j int) bool { return all[i].TotalCost < all[j].TotalCost })

	seen := make(map[string]struct{})
	unique := make([]contracts.PlannedRoute, 0, numRoutes)
	for _, r := range all {
		if _, dup := seen[sequenceKey(r.Segments)]; dup {
			continue
		}
		seen[sequenceKey(r.Segments)] = struct{}{}
		unique = append(unique, r)
		if len(unique) >= numRoutes {
			break
		}
	}

	labels := []string{"Best Route (Lowest Cost)", "Alternative 1", "Alternative 2", "Alternative 3"}
	for i := range unique {
		unique[i].RouteID = i + 1
		if i < len(labels) {
			unique[i].Label = labels[i]
		} else {
			unique[i].Label = "Alternative " + strconv.Itoa(i)
		}
	}
	return unique
}

func withVisited(visited map[string]struct{}, id string) map[string]struct{} {
	next := make(map[string]struct{}, len(visited)+1)
	for k := range visited {
		next[k] = struct{}{}
	}
	next[id] = struct{}{}
	return next
}

func sequenceKey(segs []contracts.Segment) string {
	if len(segs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.From.ID)
		b.WriteByte('|')
	}
	b.WriteString(segs[len(segs)-1].To.ID)
	return b.String()
}

func modesUsed(segs []contracts.Segment) []contracts.TransportMode {
	seen := make(map[contracts.TransportMode]struct{})
	var modes []contracts.TransportMode
	for _, s := range segs {
		if s.Mode == contracts.ModeIntermodal {
			continue
		}
		if _, ok := seen[s.Mode]; ok {
			continue
		}
		seen[s.Mode] = struct{}{}
		modes = append(modes, s.Mode)
	}
	if len(modes) == 0 {
		modes = []contracts.TransportMode{contracts.ModeSea}
	}
	return modes
}
