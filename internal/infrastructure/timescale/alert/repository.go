package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/quantlabs/quant-analytics/pkg/timescale"
)

// Repository represents the repository for alert rules and history.
type Repository struct {
	client timescale.Client
}

// NewRepository creates a new alert repository.
func NewRepository(client timescale.Client) *Repository {
	return &Repository{
		client: client,
	}
}

// CreateRule inserts a new rule and returns its generated id.
func (r *Repository) CreateRule(ctx context.Context, rule *Rule) (int64, error) {
	query := `INSERT INTO alerts (alert_type, symbol1, symbol2, condition, threshold, active, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`

	var id int64
	err := r.client.QueryRow(ctx, query,
		rule.AlertType, rule.Symbol1, rule.Symbol2, rule.Condition,
		rule.Threshold, rule.Active, rule.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create alert rule: %w", err)
	}

	return id, nil
}

// GetRule retrieves a rule by id. Returns nil when the id does not exist.
func (r *Repository) GetRule(ctx context.Context, id int64) (*Rule, error) {
	query := `SELECT id, alert_type, symbol1, symbol2, condition, threshold, active, created_at, triggered_at
			  FROM alerts
			  WHERE id = $1`

	rule := &Rule{}
	err := r.client.QueryRow(ctx, query, id).Scan(
		&rule.ID, &rule.AlertType, &rule.Symbol1, &rule.Symbol2, &rule.Condition,
		&rule.Threshold, &rule.Active, &rule.CreatedAt, &rule.TriggeredAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get alert rule: %w", err)
	}

	return rule, nil
}

// ListActive retrieves active rules, optionally filtered by symbol1.
// Inactive rules are excluded here, not by the caller, so the evaluation set
// never sees them.
func (r *Repository) ListActive(ctx context.Context, symbol string) ([]*Rule, error) {
	query := `SELECT id, alert_type, symbol1, symbol2, condition, threshold, active, created_at, triggered_at
			  FROM alerts
			  WHERE active = true`
	args := []interface{}{}

	if symbol != "" {
		query += " AND symbol1 = $1"
		args = append(args, symbol)
	}

	query += " ORDER BY id ASC"

	rows, err := r.client.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query active rules: %w", err)
	}
	defer rows.Close()

	var rules []*Rule
	for rows.Next() {
		rule := &Rule{}
		err := rows.Scan(&rule.ID, &rule.AlertType, &rule.Symbol1, &rule.Symbol2,
			&rule.Condition, &rule.Threshold, &rule.Active, &rule.CreatedAt, &rule.TriggeredAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert rule: %w", err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return rules, nil
}

// SetActive enables or disables a rule.
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE alerts SET active = $2 WHERE id = $1`

	if err := r.client.Exec(ctx, query, id, active); err != nil {
		return fmt.Errorf("failed to set alert rule active: %w", err)
	}

	return nil
}

// MarkTriggered records the trigger time on the rule row.
func (r *Repository) MarkTriggered(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE alerts SET triggered_at = $2 WHERE id = $1`

	if err := r.client.Exec(ctx, query, id, at); err != nil {
		return fmt.Errorf("failed to mark alert rule triggered: %w", err)
	}

	return nil
}

// RecordEvent appends one trigger occurrence to alert_history.
func (r *Repository) RecordEvent(ctx context.Context, event *Event) error {
	query := `INSERT INTO alert_history (time, alert_id, value, metadata)
			  VALUES ($1, $2, $3, $4)`

	var metadata []byte
	if event.Metadata != nil {
		data, err := json.Marshal(event.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal event metadata: %w", err)
		}
		metadata = data
	}

	if err := r.client.Exec(ctx, query, event.Time, event.AlertID, event.Value, metadata); err != nil {
		return fmt.Errorf("failed to record alert event: %w", err)
	}

	return nil
}

// GetHistory retrieves trigger events, ordered by time ascending. AlertID 0
// means all rules.
func (r *Repository) GetHistory(ctx context.Context, filter EventFilter) ([]*Event, error) {
	query := "SELECT time, alert_id, value, metadata FROM alert_history WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.AlertID != 0 {
		query += fmt.Sprintf(" AND alert_id = $%d", argIndex)
		args = append(args, filter.AlertID)
		argIndex++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND time >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND time <= $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}

	query += " ORDER BY time ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	rows, err := r.client.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query alert history: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		event := &Event{}
		var metadata []byte
		err := rows.Scan(&event.Time, &event.AlertID, &event.Value, &metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert event: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal event metadata: %w", err)
			}
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return events, nil
}
