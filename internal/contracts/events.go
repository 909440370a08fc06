package contracts

import "time"

// DecisionEvent is published after every completed analysis so downstream
// services can react without re-running the pipeline.
type DecisionEvent struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	ProductID    string    `json:"product_id"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	RiskLevel    RiskLevel `json:"risk_level"`
	RevenueLoss  float64   `json:"revenue_loss"`
	ChosenOption string    `json:"chosen_option"`
	TotalImpact  float64   `json:"total_impact"`
	TimelineDays float64   `json:"timeline_days"`
}

func (e DecisionEvent) Key() string {
	return e.ProductID + "|" + e.Origin + "|" + e.Destination
}

type AlertRecord struct {
	ID              string    `json:"id"`
	DecisionEventID string    `json:"decision_event_id"`
	ProductID       string    `json:"product_id"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	RiskLevel       RiskLevel `json:"risk_level"`
	RevenueLoss     float64   `json:"revenue_loss"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
