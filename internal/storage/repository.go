package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harborline/disruption-shield/internal/contracts"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListNodes returns every transport node in the catalog.
func (r *Repository) ListNodes(ctx context.Context, nodeType string, limit int) ([]contracts.Node, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	rows, err := r.pool.Query(ctx, `
        SELECT id, name, city, state, node_type, code, lat, lng
        FROM transport_nodes
        WHERE ($1 = '' OR node_type = $1)
        ORDER BY name ASC
        LIMIT $2
    `, nodeType, limit)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	return scanNodes(rows)
}

// SearchNodes matches nodes by name, city or state substring.
func (r *Repository) SearchNodes(ctx context.Context, query string, limit int) ([]contracts.Node, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx, `
        SELECT id, name, city, state, node_type, code, lat, lng
        FROM transport_nodes
        WHERE name ILIKE '%' || $1 || '%'
           OR city ILIKE '%' || $1 || '%'
           OR state ILIKE '%' || $1 || '%'
        ORDER BY name ASC
        LIMIT $2
    `, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search nodes: %w", err)
	}
	defer rows.Close()

	return scanNodes(rows)
}

// NodesInCity returns the ports and airports serving one city, used as the
// candidate set for a route-planner leg.
func (r *Repository) NodesInCity(ctx context.Context, city string) ([]contracts.Node, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, name, city, state, node_type, code, lat, lng
        FROM transport_nodes
        WHERE city ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
        ORDER BY node_type, name
        LIMIT 10
    `, city)
	if err != nil {
		return nil, fmt.Errorf("query city nodes: %w", err)
	}
	defer rows.Close()

	return scanNodes(rows)
}

func scanNodes(rows pgx.Rows) ([]contracts.Node, error) {
	var nodes []contracts.Node
	for rows.Next() {
		var n contracts.Node
		if err := rows.Scan(&n.ID, &n.Name, &n.City, &n.State, &n.Type, &n.Code, &n.Lat, &n.Lng); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// HasOpenAlertInCooldown reports whether an open or acknowledged alert for
// the product was created within the cooldown window.
func (r *Repository) HasOpenAlertInCooldown(ctx context.Context, productID string, cooldown time.Duration) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1
            FROM alerts
            WHERE status IN ('open', 'acknowledged')
              AND product_id = $1
              AND created_at >= NOW() - $2::interval
        )
    `, productID, fmt.Sprintf("%f seconds", cooldown.Seconds())).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check cooldown alert: %w", err)
	}
	return exists, nil
}

func (r *Repository) InsertAlert(ctx context.Context, alert contracts.AlertRecord) error {
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	if alert.Status == "" {
		alert.Status = "open"
	}

	_, err := r.pool.Exec(ctx, `
        INSERT INTO alerts
            (id, decision_event_id, product_id, origin, destination, title, description, risk_level, revenue_loss, status)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, alert.ID, alert.DecisionEventID, alert.ProductID, alert.Origin, alert.Destination,
		alert.Title, alert.Description, alert.RiskLevel, alert.RevenueLoss, alert.Status)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}

	return nil
}

func (r *Repository) ListAlerts(ctx context.Context, status string, limit int) ([]contracts.AlertRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
        SELECT id, COALESCE(decision_event_id, ''), product_id, origin, destination,
               title, description, risk_level, revenue_loss, status, created_at, updated_at
        FROM alerts
        WHERE ($1 = '' OR status = $1)
        ORDER BY created_at DESC
        LIMIT $2
    `, status, limit)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]contracts.AlertRecord, 0, limit)
	for rows.Next() {
		var alert contracts.AlertRecord
		if err := rows.Scan(
			&alert.ID,
			&alert.DecisionEventID,
			&alert.ProductID,
			&alert.Origin,
			&alert.Destination,
			&alert.Title,
			&alert.Description,
			&alert.RiskLevel,
			&alert.RevenueLoss,
			&alert.Status,
			&alert.CreatedAt,
			&alert.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, alert)
	}

	return alerts, rows.Err()
}

func (r *Repository) UpdateAlertStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE alerts
        SET status = $2,
            updated_at = NOW(),
            acknowledged_at = CASE WHEN $2 = 'acknowledged' THEN NOW() ELSE acknowledged_at END,
            resolved_at = CASE WHEN $2 = 'resolved' THEN NOW() ELSE resolved_at END
        WHERE id = $1
    `, id, status)
	if err != nil {
		return fmt.Errorf("update alert status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
