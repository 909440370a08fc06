package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/disruption-shield/internal/contracts"
)

func riskFixture(level contracts.RiskLevel, revenueLoss, demand, unitPrice, arrivalDays float64) contracts.RiskResult {
	return contracts.RiskResult{
		ProductID:           "P1",
		DailyDemand:         demand,
		UnitPrice:           unitPrice,
		RevenueLoss:         revenueLoss,
		ShipmentArrivalDays: arrivalDays,
		RiskLevel:           level,
		DisruptionRisk:      revenueLoss > 0,
	}
}

func TestPlannerReferenceScenario(t *testing.T) {
	p := &Planner{Timeout: time.Second}

	result, err := p.Run(context.Background(), riskFixture(contracts.RiskCritical, 62000, 80, 100, 14))
	require.NoError(t, err)
	require.Len(t, result.Options, 3)

	wait := result.Options[0]
	assert.Equal(t, OptionWait, wait.Name)
	assert.Zero(t, wait.Cost)
	assert.Equal(t, 62000.0, wait.ProjectedLoss)
	assert.Equal(t, 62000.0, wait.TotalImpact)
	assert.Equal(t, 14.0, wait.TimelineDays)

	// 80 units/day over 14 days exceeds the 200-unit air cap.
	air := result.Options[1]
	assert.Equal(t, OptionAirShipment, air.Name)
	assert.Equal(t, 50000.0, air.Cost)
	assert.Zero(t, air.ProjectedLoss)
	assert.Equal(t, 50000.0, air.TotalImpact)
	assert.Equal(t, 2.0, air.TimelineDays)

	alt := result.Options[2]
	assert.Equal(t, OptionAltSupplier, alt.Name)
	assert.Equal(t, 30000.0, alt.Cost)
	assert.Equal(t, 8000.0, alt.ProjectedLoss)
	assert.Equal(t, 38000.0, alt.TotalImpact)
	assert.Equal(t, 3.0, alt.TimelineDays)
}

func TestPlannerAirCapBelowLimit(t *testing.T) {
	p := &Planner{Timeout: time.Second}

	// 10 units/day over 5 days is 50 units, below the 200-unit cap.
	result, err := p.Run(context.Background(), riskFixture(contracts.RiskMedium, 1000, 10, 100, 5))
	require.NoError(t, err)
	assert.Equal(t, 50*250.0, result.Options[1].Cost)
}

func TestPlannerAlwaysThreeOptionsEvenAtLowRisk(t *testing.T) {
	p := &Planner{Timeout: time.Second}

	result, err := p.Run(context.Background(), riskFixture(contracts.RiskLow, 0, 40, 100, 4))
	require.NoError(t, err)

	require.Len(t, result.Options, 3)
	assert.Equal(t, []string{OptionWait, OptionAirShipment, OptionAltSupplier},
		[]string{result.Options[0].Name, result.Options[1].Name, result.Options[2].Name})

	// With nothing at risk, waiting costs nothing.
	assert.Zero(t, result.Options[0].TotalImpact)

	for _, o := range result.Options {
		assert.Equal(t, o.Cost+o.ProjectedLoss, o.TotalImpact)
	}
}
