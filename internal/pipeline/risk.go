package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/harborline/disruption-shield/internal/contracts"
	"github.com/harborline/disruption-shield/internal/narrative"
	"github.com/harborline/disruption-shield/internal/refdata"
)

// DefaultUnitPrice is the per-unit revenue used when no price is configured.
const DefaultUnitPrice = 100.0

// RiskAssessor is the second stage: it turns aggregate transit timing and
// inventory figures into stockout timing and revenue exposure.
type RiskAssessor struct {
	Ref       *refdata.Catalog
	Gen       narrative.Generator
	Timeout   time.Duration
	UnitPrice float64
}

func (a *RiskAssessor) Run(ctx context.Context, mon contracts.MonitoringResult) (contracts.RiskResult, error) {
	inv, ok := a.Ref.Inventory(mon.ProductID)
	if !ok {
		return contracts.RiskResult{}, &contracts.ValidationError{Field: "product_id", Msg: fmt.Sprintf("unknown product %q", mon.ProductID)}
	}
	if inv.DailyDemand <= 0 {
		return contracts.RiskResult{}, &contracts.ValidationError{Field: "daily_demand", Msg: fmt.Sprintf("must be positive, got %v", inv.DailyDemand)}
	}

	unitPrice := a.UnitPrice
	if unitPrice <= 0 {
		unitPrice = DefaultUnitPrice
	}

	stockoutDays := inv.Stock / inv.DailyDemand
	arrivalDays := mon.TotalTransitDays
	atRisk := arrivalDays > stockoutDays

	var lostUnits, revenueLoss float64
	if atRisk {
		lostUnits = (arrivalDays - stockoutDays) * inv.DailyDemand
		revenueLoss = lostUnits * unitPrice
	}

	result := contracts.RiskResult{
		ProductID:           mon.ProductID,
		Stock:               inv.Stock,
		DailyDemand:         inv.DailyDemand,
		StockoutDays:        stockoutDays,
		ShipmentArrivalDays: arrivalDays,
		DisruptionRisk:      atRisk,
		LostUnits:           lostUnits,
		RevenueLoss:         revenueLoss,
		UnitPrice:           unitPrice,
		PendingOrders:       a.Ref.Orders(mon.ProductID),
		RiskLevel:           classify(atRisk, revenueLoss),
	}

	urgency := "Shipment on track."
	if atRisk {
		urgency = "Immediate action required."
	}
	fallback := fmt.Sprintf("Risk level %s. Revenue exposure $%.0f across %.0f lost unit(s). %s",
		result.RiskLevel, revenueLoss, lostUnits, urgency)
	result.Narrative, result.NarrativeDegraded = narrative.Compose(ctx, a.Gen, a.Timeout, a.prompt(result, mon), fallback)

	return result, nil
}

// classify maps revenue exposure to a four-tier level. Bands are on revenue
// loss only; a run with no stockout risk is always LOW.
func classify(atRisk bool, revenueLoss float64) contracts.RiskLevel {
	switch {
	case !atRisk:
		return contracts.RiskLow
	case revenueLoss > 50000:
		return contracts.RiskCritical
	case revenueLoss > 20000:
		return contracts.RiskHigh
	default:
		return contracts.RiskMedium
	}
}

func (a *RiskAssessor) prompt(r contracts.RiskResult, mon contracts.MonitoringResult) string {
	atRisk := "NO"
	if r.DisruptionRisk {
		atRisk = "YES"
	}
	return fmt.Sprintf(`You are a supply chain risk analyst. Evaluate this disruption risk and provide a concise executive summary.

Product: %s
Current stock: %.0f units
Daily demand: %.0f units/day
Days of stock remaining: %.1f
Shipment arrival in: %.1f days
Disruption risk: %s
Potential lost units: %.0f
Estimated revenue loss: $%.0f
Risk level: %s
Pending orders: %d

Monitoring summary: %s
Weather: %s
Disruptions: %s

Provide a 2-3 sentence assessment covering whether current stock lasts until
arrival, the financial severity, and an immediate recommendation (hold,
escalate, or act now). Be direct and quantitative.`,
		r.ProductID, r.Stock, r.DailyDemand, r.StockoutDays, r.ShipmentArrivalDays,
		atRisk, r.LostUnits, r.RevenueLoss, r.RiskLevel, len(r.PendingOrders),
		mon.Narrative, mon.WeatherSummary, mon.DisruptionSummary)
}
