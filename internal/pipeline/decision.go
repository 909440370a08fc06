package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harborline/disruption-shield/internal/contracts"
	"github.com/harborline/disruption-shield/internal/narrative"
)

// Decider is the final stage: it compares the planner's options side by side
// and selects the one with minimum total impact. Ties go to the smaller
// timeline, then to the earlier-listed option.
type Decider struct {
	Gen     narrative.Generator
	Timeout time.Duration
}

func (d *Decider) Run(ctx context.Context, risk contracts.RiskResult, plan contracts.PlannerResult) (contracts.DecisionResult, error) {
	if len(plan.Options) == 0 {
		return contracts.DecisionResult{}, &contracts.ValidationError{Field: "options", Msg: "planner produced no options"}
	}

	best := 0
	for i, o := range plan.Options[1:] {
		idx := i + 1
		switch {
		case o.TotalImpact < plan.Options[best].TotalImpact:
			best = idx
		case o.TotalImpact == plan.Options[best].TotalImpact && o.TimelineDays < plan.Options[best].TimelineDays:
			best = idx
		}
	}
	chosen := plan.Options[best]

	comparison := make([]contracts.ComparisonEntry, 0, len(plan.Options))
	for i, o := range plan.Options {
		comparison = append(comparison, contracts.ComparisonEntry{
			OptionName:    o.Name,
			Cost:          o.Cost,
			ProjectedLoss: o.ProjectedLoss,
			TotalImpact:   o.TotalImpact,
			TimelineDays:  o.TimelineDays,
			Chosen:        i == best,
		})
	}

	result := contracts.DecisionResult{
		ProductID:  plan.ProductID,
		Comparison: comparison,
		Chosen:     chosen,
	}

	runnerUp := runnerUpOption(plan.Options, best)
	fallback := fmt.Sprintf(
		"Selected %q with minimum total impact of $%.0f (cost $%.0f, projected loss $%.0f, %.0f day timeline), ahead of %q at $%.0f.",
		chosen.Name, chosen.TotalImpact, chosen.Cost, chosen.ProjectedLoss, chosen.TimelineDays,
		runnerUp.Name, runnerUp.TotalImpact,
	)
	result.Reasoning, result.NarrativeDegraded = narrative.Compose(ctx, d.Gen, d.Timeout, d.prompt(risk, result, runnerUp), fallback)

	return result, nil
}

// runnerUpOption returns the best option excluding the winner, applying the
// same ordering rule.
func runnerUpOption(options []contracts.RecoveryOption, winner int) contracts.RecoveryOption {
	second := -1
	for i, o := range options {
		if i == winner {
			continue
		}
		if second < 0 {
			second = i
			continue
		}
		switch {
		case o.TotalImpact < options[second].TotalImpact:
			second = i
		case o.TotalImpact == options[second].TotalImpact && o.TimelineDays < options[second].TimelineDays:
			second = i
		}
	}
	if second < 0 {
		return options[winner]
	}
	return options[second]
}

func (d *Decider) prompt(risk contracts.RiskResult, result contracts.DecisionResult, runnerUp contracts.RecoveryOption) string {
	var rows []string
	for _, c := range result.Comparison {
		marker := "  "
		if c.Chosen {
			marker = "->"
		}
		rows = append(rows, fmt.Sprintf("  %s %s: cost $%.0f + loss $%.0f = total $%.0f (%.0fd)",
			marker, c.OptionName, c.Cost, c.ProjectedLoss, c.TotalImpact, c.TimelineDays))
	}

	return fmt.Sprintf(`You are a supply chain decision analyst. Explain why this recovery plan was chosen.

Product: %s
Risk level: %s
Revenue at risk: $%.0f
Days until stockout: %.1f
Shipment arrival: %.1f days

Scenario comparison:
%s

Selected: %s (total impact $%.0f, timeline %.0f days)
Runner-up: %s (total impact $%.0f, timeline %.0f days)

Write a clear 3-4 sentence business recommendation covering why the selected
option beats the runner-up on cost, loss and timeline, the expected outcome,
and any caveats. Write as if presenting to a VP of Supply Chain.`,
		result.ProductID, risk.RiskLevel, risk.RevenueLoss, risk.StockoutDays, risk.ShipmentArrivalDays,
		strings.Join(rows, "\n"),
		result.Chosen.Name, result.Chosen.TotalImpact, result.Chosen.TimelineDays,
		runnerUp.Name, runnerUp.TotalImpact, runnerUp.TimelineDays)
}
