package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/disruption-shield/internal/contracts"
)

func plannerFixture(options ...contracts.RecoveryOption) contracts.PlannerResult {
	return contracts.PlannerResult{ProductID: "P1", Options: options}
}

func option(name string, cost, loss, timeline float64) contracts.RecoveryOption {
	return contracts.RecoveryOption{
		Name:          name,
		Cost:          cost,
		ProjectedLoss: loss,
		TotalImpact:   cost + loss,
		TimelineDays:  timeline,
	}
}

func TestDecisionPicksMinimumImpact(t *testing.T) {
	d := &Decider{Timeout: time.Second}
	risk := riskFixture(contracts.RiskCritical, 62000, 80, 100, 14)

	result, err := d.Run(context.Background(), risk, plannerFixture(
		option(OptionWait, 0, 62000, 14),
		option(OptionAirShipment, 50000, 0, 2),
		option(OptionAltSupplier, 30000, 8000, 3),
	))
	require.NoError(t, err)

	assert.Equal(t, OptionAltSupplier, result.Chosen.Name)
	assert.Equal(t, 38000.0, result.Chosen.TotalImpact)

	require.Len(t, result.Comparison, 3)
	for _, row := range result.Comparison {
		assert.LessOrEqual(t, result.Chosen.TotalImpact, row.TotalImpact)
		assert.Equal(t, row.OptionName == OptionAltSupplier, row.Chosen)
	}
}

func TestDecisionTieBreakPrefersSmallerTimeline(t *testing.T) {
	d := &Decider{Timeout: time.Second}
	risk := riskFixture(contracts.RiskHigh, 40000, 80, 100, 10)

	result, err := d.Run(context.Background(), risk, plannerFixture(
		option(OptionWait, 0, 40000, 10),
		option(OptionAirShipment, 40000, 0, 2),
		option(OptionAltSupplier, 30000, 10000, 3),
	))
	require.NoError(t, err)

	// All three tie at 40000; the 2-day timeline wins.
	assert.Equal(t, OptionAirShipment, result.Chosen.Name)
}

func TestDecisionTieBreakFallsBackToFirstListed(t *testing.T) {
	d := &Decider{Timeout: time.Second}
	risk := riskFixture(contracts.RiskMedium, 15000, 80, 100, 3)

	result, err := d.Run(context.Background(), risk, plannerFixture(
		option(OptionWait, 0, 15000, 3),
		option(OptionAltSupplier, 10000, 5000, 3),
	))
	require.NoError(t, err)

	// Equal impact and equal timeline: the earlier-listed option stands.
	assert.Equal(t, OptionWait, result.Chosen.Name)
}

func TestDecisionFallbackNamesRunnerUp(t *testing.T) {
	d := &Decider{Gen: stubGen{err: errLLMDown}, Timeout: time.Second}
	risk := riskFixture(contracts.RiskCritical, 62000, 80, 100, 14)

	result, err := d.Run(context.Background(), risk, plannerFixture(
		option(OptionWait, 0, 62000, 14),
		option(OptionAirShipment, 50000, 0, 2),
		option(OptionAltSupplier, 30000, 8000, 3),
	))
	require.NoError(t, err)

	assert.True(t, result.NarrativeDegraded)
	assert.Contains(t, result.Reasoning, OptionAltSupplier)
	assert.Contains(t, result.Reasoning, OptionAirShipment) // runner-up at 50000
}

func TestDecisionEmptyOptionsFails(t *testing.T) {
	d := &Decider{Timeout: time.Second}

	_, err := d.Run(context.Background(), contracts.RiskResult{}, plannerFixture())
	var verr *contracts.ValidationError
	require.ErrorAs(t, err, &verr)
}
