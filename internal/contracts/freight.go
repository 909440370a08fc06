package contracts

import "fmt"

type NodeType string

const (
	NodePort    NodeType = "port"
	NodeAirport NodeType = "airport"
	NodeHub     NodeType = "hub"
)

type TransportMode string

const (
	ModeSea        TransportMode = "sea"
	ModeAir        TransportMode = "air"
	ModeIntermodal TransportMode = "intermodal"
)

type RiskTier string

const (
	TierLow    RiskTier = "low"
	TierMedium RiskTier = "medium"
	TierHigh   RiskTier = "high"
)

type DisruptionType string

const (
	DisruptionStrike       DisruptionType = "strike"
	DisruptionCongestion   DisruptionType = "congestion"
	DisruptionCustomsDelay DisruptionType = "customs_delay"
	DisruptionWeather      DisruptionType = "weather_closure"
	DisruptionEquipment    DisruptionType = "equipment_failure"
	DisruptionSecurity     DisruptionType = "security_alert"
)

// Disruption is an active event attached to a Node. ExtraDelayDays is always
// expressed in days; there is no hour-based representation anywhere.
type Disruption struct {
	Type           DisruptionType `json:"type"`
	Severity       RiskTier       `json:"severity"`
	ExtraDelayDays float64        `json:"extra_delay_days"`
	Detail         string         `json:"detail"`
}

// Node is a transport location. Everything except Disruption is immutable
// reference data; callers attach or clear Disruption by producing new values.
type Node struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	City       string      `json:"city,omitempty"`
	State      string      `json:"state,omitempty"`
	Lat        float64     `json:"lat"`
	Lng        float64     `json:"lng"`
	Type       NodeType    `json:"type"`
	Code       string      `json:"code,omitempty"`
	Disruption *Disruption `json:"disruption,omitempty"`
}

func (n Node) Disrupted() bool { return n.Disruption != nil }

// Route is an ordered sequence of at least two distinct nodes. The first is
// the origin and the last is the destination.
type Route struct {
	Nodes []Node `json:"nodes"`
}

func (r Route) Validate() error {
	if len(r.Nodes) < 2 {
		return &ValidationError{Field: "nodes", Msg: "route needs at least 2 nodes"}
	}
	seen := make(map[string]struct{}, len(r.Nodes))
	for _, n := range r.Nodes {
		if _, dup := seen[n.ID]; dup {
			return &ValidationError{Field: "nodes", Msg: fmt.Sprintf("node %s appears twice", n.ID)}
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}

func (r Route) Contains(nodeID string) bool {
	for _, n := range r.Nodes {
		if n.ID == nodeID {
			return true
		}
	}
	return false
}

// Segment is one directed hop between two adjacent route nodes. Cumulative
// values are measured from the route origin and are non-decreasing along the
// segment sequence.
type Segment struct {
	From                Node          `json:"from"`
	To                  Node          `json:"to"`
	Mode                TransportMode `json:"transport_mode"`
	DistanceKm          float64       `json:"distance_km"`
	Cost                float64       `json:"cost_usd"`
	TimeHours           float64       `json:"time_hours"`
	CumulativeCost      float64       `json:"cumulative_cost"`
	CumulativeTimeHours float64       `json:"cumulative_time_hours"`
}

// PlannedRoute is a complete computed route with per-segment and total
// cost/time/distance.
type PlannedRoute struct {
	RouteID         int             `json:"route_id"`
	Label           string          `json:"label"`
	Segments        []Segment       `json:"segments"`
	TotalCost       float64         `json:"total_cost"`
	TotalTimeHours  float64         `json:"total_time_hours"`
	TotalDistanceKm float64         `json:"total_distance_km"`
	ModesUsed       []TransportMode `json:"transport_modes_used"`
}
