package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harborline/disruption-shield/internal/contracts"
	"github.com/harborline/disruption-shield/internal/narrative"
	"github.com/harborline/disruption-shield/internal/refdata"
)

// Monitor is the first stage: it expands the declared route into per-segment
// reports, applies disruption extra delays at each segment's destination, and
// aggregates transit timing.
type Monitor struct {
	Ref     *refdata.Catalog
	Gen     narrative.Generator
	Timeout time.Duration
}

func (m *Monitor) Run(ctx context.Context, req contracts.AnalyzeRequest) (contracts.MonitoringResult, error) {
	segments := make([]contracts.SegmentReport, 0, len(req.Stops)+1)

	prev := req.Origin
	for _, stop := range req.Stops {
		segments = append(segments, m.segmentReport(prev, stop.StopName, stop.EtaDays, stop.DelayDays))
		prev = stop.StopName
	}

	// Close the route out to the declared destination when the last stop is
	// not the destination itself.
	if prev != req.Destination {
		eta := 1.0
		if len(req.Stops) > 0 {
			eta = req.Stops[len(req.Stops)-1].EtaDays
		}
		segments = append(segments, m.segmentReport(prev, req.Destination, eta, 0))
	}

	var totalEta, totalDelay float64
	for _, s := range segments {
		totalEta += s.EtaDays
		totalDelay += s.DelayDays
	}

	result := contracts.MonitoringResult{
		ProductID:         req.ProductID,
		Origin:            req.Origin,
		Destination:       req.Destination,
		Segments:          segments,
		TotalEta:          totalEta,
		TotalDelay:        totalDelay,
		TotalTransitDays:  totalEta + totalDelay,
		WeatherSummary:    weatherSummary(segments),
		DisruptionSummary: disruptionSummary(segments),
	}

	fallback := fmt.Sprintf(
		"Shipment %s has %.1f day(s) of delay across %d segment(s); total transit %.1f days. %s. %s.",
		req.ProductID, totalDelay, len(segments), result.TotalTransitDays,
		result.WeatherSummary, result.DisruptionSummary,
	)
	result.Narrative, result.NarrativeDegraded = narrative.Compose(ctx, m.Gen, m.Timeout, m.prompt(result), fallback)

	return result, nil
}

// segmentReport builds one hop. The disruption extra delay applies at the
// destination node of the hop, on top of the caller-declared delay.
func (m *Monitor) segmentReport(from, to string, eta, delay float64) contracts.SegmentReport {
	weather := m.Ref.Weather(to)

	report := contracts.SegmentReport{
		FromLocation:  from,
		ToLocation:    to,
		EtaDays:       eta,
		DelayDays:     delay,
		WeatherRisk:   weather.Risk,
		WeatherDetail: weather.Detail,
	}

	if d := m.Ref.Disruption(to); d != nil {
		report.Disrupted = true
		report.DisruptionDetail = d.Detail
		report.DelayDays += d.ExtraDelayDays
	}
	return report
}

func weatherSummary(segments []contracts.SegmentReport) string {
	high := 0
	medium := 0
	for _, s := range segments {
		switch s.WeatherRisk {
		case contracts.TierHigh:
			high++
		case contracts.TierMedium:
			medium++
		}
	}
	switch {
	case high > 0:
		return fmt.Sprintf("HIGH weather risk on %d segment(s)", high)
	case medium > 0:
		return "Moderate weather risk on route"
	default:
		return "Clear weather across all segments"
	}
}

func disruptionSummary(segments []contracts.SegmentReport) string {
	disrupted := 0
	for _, s := range segments {
		if s.Disrupted {
			disrupted++
		}
	}
	if disrupted == 0 {
		return "No active disruptions along the route"
	}
	return fmt.Sprintf("Active disruptions on %d segment(s)", disrupted)
}

func (m *Monitor) prompt(r contracts.MonitoringResult) string {
	var lines []string
	for _, s := range r.Segments {
		line := fmt.Sprintf("  - %s to %s: ETA %.1fd, delay %.1fd, weather %s (%s)",
			s.FromLocation, s.ToLocation, s.EtaDays, s.DelayDays, s.WeatherRisk, s.WeatherDetail)
		if s.Disrupted {
			line += fmt.Sprintf(", disruption: %s", s.DisruptionDetail)
		}
		lines = append(lines, line)
	}

	return fmt.Sprintf(`You are a supply chain monitoring analyst. Analyze this shipment route and provide a concise monitoring summary.

Product: %s
Route: %s to %s
Segments:
%s

Total ETA: %.1f days
Total delays: %.1f days
Total transit time: %.1f days

Provide a brief 2-3 sentence analysis covering the overall shipment status,
the weather risk across the route, and whether the shipment is on track.
Be direct and actionable.`,
		r.ProductID, r.Origin, r.Destination, strings.Join(lines, "\n"),
		r.TotalEta, r.TotalDelay, r.TotalTransitDays)
}
