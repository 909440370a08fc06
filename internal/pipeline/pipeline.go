// Package pipeline runs the four-stage disruption analysis: monitoring, risk
// scoring, recovery planning, and decision. Stages execute strictly in order;
// each stage's output is the next stage's input. Narrative generation is the
// only non-deterministic part and can never fail a run.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/harborline/disruption-shield/internal/contracts"
	"github.com/harborline/disruption-shield/internal/narrative"
	"github.com/harborline/disruption-shield/internal/refdata"
)

type Pipeline struct {
	monitor *Monitor
	risk    *RiskAssessor
	planner *Planner
	decider *Decider
}

// New wires the four stages against a shared reference catalog and narrative
// generator. gen may be nil, in which case every narrative is the
// deterministic fallback.
func New(ref *refdata.Catalog, gen narrative.Generator, timeout time.Duration, unitPrice float64) *Pipeline {
	return &Pipeline{
		monitor: &Monitor{Ref: ref, Gen: gen, Timeout: timeout},
		risk:    &RiskAssessor{Ref: ref, Gen: gen, Timeout: timeout, UnitPrice: unitPrice},
		planner: &Planner{Gen: gen, Timeout: timeout},
		decider: &Decider{Gen: gen, Timeout: timeout},
	}
}

// Run executes all four stages. Validation failures and stage errors abort
// the run before later stages do any work.
func (p *Pipeline) Run(ctx context.Context, req contracts.AnalyzeRequest) (contracts.AnalysisResult, error) {
	if err := p.validate(req); err != nil {
		return contracts.AnalysisResult{}, err
	}

	start := time.Now()

	mon, err := p.monitor.Run(ctx, req)
	if err != nil {
		return contracts.AnalysisResult{}, fmt.Errorf("monitoring stage: %w", err)
	}

	risk, err := p.risk.Run(ctx, mon)
	if err != nil {
		return contracts.AnalysisResult{}, fmt.Errorf("risk stage: %w", err)
	}

	plan, err := p.planner.Run(ctx, risk)
	if err != nil {
		return contracts.AnalysisResult{}, fmt.Errorf("planner stage: %w", err)
	}

	decision, err := p.decider.Run(ctx, risk, plan)
	if err != nil {
		return contracts.AnalysisResult{}, fmt.Errorf("decision stage: %w", err)
	}

	log.Printf("pipeline %s %s->%s risk=%s chosen=%q impact=%.0f elapsed=%s",
		req.ProductID, req.Origin, req.Destination,
		risk.RiskLevel, decision.Chosen.Name, decision.Chosen.TotalImpact,
		time.Since(start).Round(time.Millisecond))

	return contracts.AnalysisResult{
		Monitoring: mon,
		Risk:       risk,
		Planner:    plan,
		Decision:   decision,
	}, nil
}

func (p *Pipeline) validate(req contracts.AnalyzeRequest) error {
	if req.ProductID == "" {
		return &contracts.ValidationError{Field: "product_id", Msg: "required"}
	}
	if req.Origin == "" {
		return &contracts.ValidationError{Field: "origin", Msg: "required"}
	}
	if req.Destination == "" {
		return &contracts.ValidationError{Field: "destination", Msg: "required"}
	}
	if req.Origin == req.Destination {
		return &contracts.ValidationError{Field: "destination", Msg: "must differ from origin"}
	}
	for i, s := range req.Stops {
		if s.StopName == "" {
			return &contracts.ValidationError{Field: fmt.Sprintf("stops[%d].stop_name", i), Msg: "required"}
		}
		if s.EtaDays < 0 {
			return &contracts.ValidationError{Field: fmt.Sprintf("stops[%d].eta_days", i), Msg: "must be non-negative"}
		}
		if s.DelayDays < 0 {
			return &contracts.ValidationError{Field: fmt.Sprintf("stops[%d].delay_days", i), Msg: "must be non-negative"}
		}
	}

	inv, ok := p.risk.Ref.Inventory(req.ProductID)
	if !ok {
		return &contracts.ValidationError{Field: "product_id", Msg: fmt.Sprintf("unknown product %q", req.ProductID)}
	}
	if inv.DailyDemand <= 0 {
		return &contracts.ValidationError{Field: "daily_demand", Msg: fmt.Sprintf("must be positive, got %v", inv.DailyDemand)}
	}
	return nil
}
