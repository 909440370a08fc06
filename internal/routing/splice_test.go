package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/disruption-shield/internal/contracts"
)

func segmentChain() []contracts.Segment {
	a := node("a", 10, 70)
	b := node("b", 12, 74)
	c := node("c", 15, 80)
	return []contracts.Segment{
		{From: a, To: b, Mode: contracts.ModeSea, DistanceKm: 500, Cost: 1000, TimeHours: 40, CumulativeCost: 1000, CumulativeTimeHours: 40},
		{From: b, To: c, Mode: contracts.ModeSea, DistanceKm: 700, Cost: 1400, TimeHours: 56, CumulativeCost: 2400, CumulativeTimeHours: 96},
	}
}

func TestSpliceConservesCostAndTime(t *testing.T) {
	segments := segmentChain()
	mid := node("m", 11, 72)

	result, err := Splice(segments, "a", "b", mid)
	require.NoError(t, err)
	require.Len(t, result.Segments, 3)

	first, second := result.Segments[0], result.Segments[1]
	assert.Equal(t, "a", first.From.ID)
	assert.Equal(t, "m", first.To.ID)
	assert.Equal(t, "m", second.From.ID)
	assert.Equal(t, "b", second.To.ID)

	assert.InDelta(t, 1000, first.Cost+second.Cost, 1e-9)
	assert.InDelta(t, 40, first.TimeHours+second.TimeHours, 1e-9)
	assert.Equal(t, contracts.ModeSea, first.Mode)
	assert.Equal(t, contracts.ModeSea, second.Mode)

	// The split leans toward the longer side.
	assert.Greater(t, first.Cost, 0.0)
	assert.Greater(t, second.Cost, 0.0)
}

func TestSpliceRecomputesPrefixSums(t *testing.T) {
	segments := segmentChain()

	result, err := Splice(segments, "a", "b", node("m", 11, 72))
	require.NoError(t, err)

	var cost, hours float64
	for _, s := range result.Segments {
		cost += s.Cost
		hours += s.TimeHours
		assert.InDelta(t, cost, s.CumulativeCost, 1e-9)
		assert.InDelta(t, hours, s.CumulativeTimeHours, 1e-9)
	}
	assert.InDelta(t, 2400, result.TotalCost, 1e-9)
	assert.InDelta(t, 96, result.TotalTimeHours, 1e-9)
	assert.InDelta(t, cost, result.TotalCost, 1e-9)
	assert.InDelta(t, hours, result.TotalTimeHours, 1e-9)

	// Trailing segment keeps its own cost but its cumulative values move.
	tail := result.Segments[2]
	assert.Equal(t, 1400.0, tail.Cost)
	assert.InDelta(t, 2400, tail.CumulativeCost, 1e-9)
}

func TestSpliceZeroDistanceSplitsEvenly(t *testing.T) {
	// Distinct IDs at identical coordinates; both half-distances are zero.
	segments := []contracts.Segment{
		{From: node("a", 10, 70), To: node("b", 10, 70), Mode: contracts.ModeSea, Cost: 800, TimeHours: 20},
	}

	result, err := Splice(segments, "a", "b", node("m", 10, 70))
	require.NoError(t, err)
	require.Len(t, result.Segments, 2)
	assert.InDelta(t, 400, result.Segments[0].Cost, 1e-9)
	assert.InDelta(t, 400, result.Segments[1].Cost, 1e-9)
	assert.InDelta(t, 10, result.Segments[0].TimeHours, 1e-9)
	assert.InDelta(t, 10, result.Segments[1].TimeHours, 1e-9)
}

func TestSpliceUnknownPairIsNotFound(t *testing.T) {
	segments := segmentChain()

	_, err := Splice(segments, "a", "c", node("m", 11, 72))
	assert.ErrorIs(t, err, contracts.ErrNotFound)

	// Reversed direction does not match either.
	_, err = Splice(segments, "b", "a", node("m", 11, 72))
	assert.ErrorIs(t, err, contracts.ErrNotFound)
}

func TestSpliceDoesNotMutateInput(t *testing.T) {
	segments := segmentChain()
	before := make([]contracts.Segment, len(segments))
	copy(before, segments)

	_, err := Splice(segments, "b", "c", node("m", 13, 76))
	require.NoError(t, err)
	assert.Equal(t, before, segments)
}
