package routing

import (
	"fmt"

	"github.com/harborline/disruption-shield/internal/contracts"
	"github.com/harborline/disruption-shield/internal/geo"
)

// SpliceResult is the rewritten segment list with recomputed totals.
type SpliceResult struct {
	Segments        []contracts.Segment `json:"segments"`
	TotalCost       float64             `json:"total_cost"`
	TotalTimeHours  float64             `json:"total_time_hours"`
	TotalDistanceKm float64             `json:"total_distance_km"`
}

// Splice inserts newNode between the adjacent pair (fromID, toID) of an
// already-computed segment list. The matched segment is replaced by two
// segments whose cost and time split proportionally to the great-circle
// distances on each side; cumulative values are then recomputed for the whole
// list as a fresh prefix sum. The input slice is never modified.
func Splice(segments []contracts.Segment, fromID, toID string, newNode contracts.Node) (SpliceResult, error) {
	idx := -1
	for i, s := range segments {
		if s.From.ID == fromID && s.To.ID == toID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return SpliceResult{}, fmt.Errorf("segment %s->%s not in route: %w", fromID, toID, contracts.ErrNotFound)
	}

	old := segments[idx]
	d1 := geo.HaversineKm(old.From.Lat, old.From.Lng, newNode.Lat, newNode.Lng)
	d2 := geo.HaversineKm(newNode.Lat, newNode.Lng, old.To.Lat, old.To.Lng)

	r1 := 0.5
	if d1+d2 > 0 {
		r1 = d1 / (d1 + d2)
	}

	first := contracts.Segment{
		From:       old.From,
		To:         newNode,
		Mode:       old.Mode,
		DistanceKm: d1,
		Cost:       old.Cost * r1,
		TimeHours:  old.TimeHours * r1,
	}
	second := contracts.Segment{
		From:       newNode,
		To:         old.To,
		Mode:       old.Mode,
		DistanceKm: d2,
		Cost:       old.Cost * (1 - r1),
		TimeHours:  old.TimeHours * (1 - r1),
	}

	rewritten := make([]contracts.Segment, 0, len(segments)+1)
	rewritten = append(rewritten, segments[:idx]...)
	rewritten = append(rewritten, first, second)
	rewritten = append(rewritten, segments[idx+1:]...)

	// Fresh left-to-right prefix sums over the entire list; segments after
	// the insertion point are recomputed, not shifted.
	result := SpliceResult{Segments: rewritten}
	var cumCost, cumTime float64
	for i := range rewritten {
		cumCost += rewritten[i].Cost
		cumTime += rewritten[i].TimeHours
		rewritten[i].CumulativeCost = cumCost
		rewritten[i].CumulativeTimeHours = cumTime
		result.TotalDistanceKm += rewritten[i].DistanceKm
	}
	result.TotalCost = cumCost
	result.TotalTimeHours = cumTime

	return result, nil
}
