package contracts

type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RouteStop is one declared hop of a shipment route: the stop plus the
// caller's base ETA and base delay for the leg ending there, in days.
type RouteStop struct {
	StopName  string  `json:"stop_name"`
	EtaDays   float64 `json:"eta_days"`
	DelayDays float64 `json:"delay_days"`
}

// AnalyzeRequest is the input to the full four-stage pipeline.
type AnalyzeRequest struct {
	ProductID   string      `json:"product_id"`
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	Stops       []RouteStop `json:"stops"`
}

// SegmentReport is the monitoring stage's per-segment output.
type SegmentReport struct {
	FromLocation     string   `json:"from_location"`
	ToLocation       string   `json:"to_location"`
	EtaDays          float64  `json:"eta_days"`
	DelayDays        float64  `json:"delay_days"`
	WeatherRisk      RiskTier `json:"weather_risk"`
	WeatherDetail    string   `json:"weather_detail"`
	Disrupted        bool     `json:"disrupted"`
	DisruptionDetail string   `json:"disruption_detail,omitempty"`
}

type MonitoringResult struct {
	ProductID         string          `json:"product_id"`
	Origin            string          `json:"origin"`
	Destination       string          `json:"destination"`
	Segments          []SegmentReport `json:"segments"`
	TotalEta          float64         `json:"total_eta"`
	TotalDelay        float64         `json:"total_delay"`
	TotalTransitDays  float64         `json:"total_transit_days"`
	WeatherSummary    string          `json:"weather_summary"`
	DisruptionSummary string          `json:"disruption_summary"`
	Narrative         string          `json:"narrative"`
	NarrativeDegraded bool            `json:"narrative_degraded"`
}

// Order is a pending customer order, carried for narrative context only.
type Order struct {
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	DueDays   float64 `json:"due_days"`
}

type RiskResult struct {
	ProductID           string    `json:"product_id"`
	Stock               float64   `json:"stock"`
	DailyDemand         float64   `json:"daily_demand"`
	StockoutDays        float64   `json:"stockout_days"`
	ShipmentArrivalDays float64   `json:"shipment_arrival_days"`
	DisruptionRisk      bool      `json:"disruption_risk"`
	LostUnits           float64   `json:"lost_units"`
	RevenueLoss         float64   `json:"revenue_loss"`
	UnitPrice           float64   `json:"unit_price"`
	PendingOrders       []Order   `json:"pending_orders"`
	RiskLevel           RiskLevel `json:"risk_level"`
	Narrative           string    `json:"narrative"`
	NarrativeDegraded   bool      `json:"narrative_degraded"`
}

type RecoveryOption struct {
	Name          string  `json:"option_name"`
	Description   string  `json:"description"`
	Cost          float64 `json:"cost"`
	ProjectedLoss float64 `json:"projected_loss"`
	TotalImpact   float64 `json:"total_impact"`
	TimelineDays  float64 `json:"timeline_days"`
}

type PlannerResult struct {
	ProductID         string           `json:"product_id"`
	Options           []RecoveryOption `json:"options"`
	Narrative         string           `json:"narrative"`
	NarrativeDegraded bool             `json:"narrative_degraded"`
}

// ComparisonEntry is one row of the decision stage's side-by-side table.
type ComparisonEntry struct {
	OptionName    string  `json:"option_name"`
	Cost          float64 `json:"cost"`
	ProjectedLoss float64 `json:"projected_loss"`
	TotalImpact   float64 `json:"total_impact"`
	TimelineDays  float64 `json:"timeline_days"`
	Chosen        bool    `json:"chosen"`
}

type DecisionResult struct {
	ProductID         string            `json:"product_id"`
	Comparison        []ComparisonEntry `json:"comparison"`
	Chosen            RecoveryOption    `json:"chosen_option"`
	Reasoning         string            `json:"reasoning"`
	NarrativeDegraded bool              `json:"narrative_degraded"`
}

// AnalysisResult bundles all four stage outputs for the caller.
type AnalysisResult struct {
	Monitoring MonitoringResult `json:"monitoring"`
	Risk       RiskResult       `json:"risk"`
	Planner    PlannerResult    `json:"planner"`
	Decision   DecisionResult   `json:"decision"`
}

// ExecutionRecord is the mock confirmation for a chosen recovery plan.
type ExecutionRecord struct {
	ProductID         string `json:"product_id"`
	ChosenOption      string `json:"chosen_option"`
	Action            string `json:"action"`
	Message           string `json:"message"`
	BookingRef        string `json:"booking_ref,omitempty"`
	SupplierContacted bool   `json:"supplier_contacted"`
}
