package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harborline/disruption-shield/internal/contracts"
	"github.com/harborline/disruption-shield/internal/narrative"
)

// Recovery option names, in the fixed order the planner emits them.
const (
	OptionWait        = "Wait for Shipment"
	OptionAirShipment = "Partial Air Shipment"
	OptionAltSupplier = "Alternate Supplier"
)

const (
	airFreightPerUnit = 250.0
	airMaxUnits       = 200.0
	airTimelineDays   = 2.0
	altSupplierCost   = 30000.0
	altTimelineDays   = 3.0
)

// Planner is the third stage: it always generates the same three recovery
// scenarios, costed from the risk assessment.
type Planner struct {
	Gen     narrative.Generator
	Timeout time.Duration
}

func (p *Planner) Run(ctx context.Context, risk contracts.RiskResult) (contracts.PlannerResult, error) {
	wait := contracts.RecoveryOption{
		Name:          OptionWait,
		Description:   "Continue with the current shipment. Accept potential stockout and revenue loss.",
		Cost:          0,
		ProjectedLoss: risk.RevenueLoss,
		TimelineDays:  risk.ShipmentArrivalDays,
	}

	airUnits := risk.DailyDemand * risk.ShipmentArrivalDays
	if airUnits > airMaxUnits {
		airUnits = airMaxUnits
	}
	air := contracts.RecoveryOption{
		Name:          OptionAirShipment,
		Description:   fmt.Sprintf("Air-ship %.0f units to cover immediate demand. Eliminates the stockout.", airUnits),
		Cost:          airUnits * airFreightPerUnit,
		ProjectedLoss: 0,
		TimelineDays:  airTimelineDays,
	}

	alt := contracts.RecoveryOption{
		Name:          OptionAltSupplier,
		Description:   "Engage the backup supplier for emergency stock. One-day transition gap expected.",
		Cost:          altSupplierCost,
		ProjectedLoss: risk.DailyDemand * risk.UnitPrice,
		TimelineDays:  altTimelineDays,
	}

	options := []contracts.RecoveryOption{wait, air, alt}
	for i := range options {
		options[i].TotalImpact = options[i].Cost + options[i].ProjectedLoss
	}

	result := contracts.PlannerResult{
		ProductID: risk.ProductID,
		Options:   options,
	}

	minImpact := options[0].TotalImpact
	for _, o := range options[1:] {
		if o.TotalImpact < minImpact {
			minImpact = o.TotalImpact
		}
	}
	fallback := fmt.Sprintf("Generated %d recovery option(s). Minimum total impact: $%.0f.", len(options), minImpact)
	result.Narrative, result.NarrativeDegraded = narrative.Compose(ctx, p.Gen, p.Timeout, p.prompt(risk, options), fallback)

	return result, nil
}

func (p *Planner) prompt(risk contracts.RiskResult, options []contracts.RecoveryOption) string {
	var lines []string
	for i, o := range options {
		lines = append(lines, fmt.Sprintf("  %d. %s: cost=$%.0f, loss=$%.0f, total=$%.0f, timeline=%.0fd",
			i+1, o.Name, o.Cost, o.ProjectedLoss, o.TotalImpact, o.TimelineDays))
	}

	return fmt.Sprintf(`You are a supply chain planning analyst. Evaluate these recovery scenarios and provide strategic context.

Product: %s
Current risk level: %s
Revenue at risk: $%.0f
Stock remaining: %.0f units (%.1f days)
Shipment arrives in: %.1f days

Recovery options:
%s

Provide a brief 2-3 sentence overview of which option offers the best
risk-cost tradeoff, the key factors for the final decision, and any
time-sensitivity considerations. Be pragmatic and quantitative.`,
		risk.ProductID, risk.RiskLevel, risk.RevenueLoss, risk.Stock,
		risk.StockoutDays, risk.ShipmentArrivalDays, strings.Join(lines, "\n"))
}
