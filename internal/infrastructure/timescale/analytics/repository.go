package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/quantlabs/quant-analytics/pkg/timescale"
)

// Repository represents the repository for analytics records.
type Repository struct {
	client timescale.Client
}

// NewRepository creates a new analytics repository.
func NewRepository(client timescale.Client) *Repository {
	return &Repository{
		client: client,
	}
}

// Store stores an analytics record, replacing any previous value for the
// same (time, symbol1, symbol2, metric_type) key.
func (r *Repository) Store(ctx context.Context, record *Record) error {
	query := `INSERT INTO analytics (time, symbol1, symbol2, metric_type, value, metadata)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (time, symbol1, symbol2, metric_type) DO UPDATE SET
			  value = EXCLUDED.value, metadata = EXCLUDED.metadata`

	metadata, err := marshalMetadata(record.Metadata)
	if err != nil {
		return err
	}

	err = r.client.Exec(ctx, query,
		record.Time, record.Symbol1, record.Symbol2, record.MetricType, record.Value, metadata)
	if err != nil {
		return fmt.Errorf("failed to store analytics record: %w", err)
	}

	return nil
}

// GetByFilter retrieves analytics records by filter, ordered by time ascending.
func (r *Repository) GetByFilter(ctx context.Context, filter Filter) ([]*Record, error) {
	query := "SELECT time, symbol1, symbol2, metric_type, value, metadata FROM analytics WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.Symbol1 != "" {
		query += fmt.Sprintf(" AND symbol1 = $%d", argIndex)
		args = append(args, filter.Symbol1)
		argIndex++
	}

	if filter.Symbol2 != nil {
		query += fmt.Sprintf(" AND symbol2 = $%d", argIndex)
		args = append(args, *filter.Symbol2)
		argIndex++
	}

	if filter.MetricType != "" {
		query += fmt.Sprintf(" AND metric_type = $%d", argIndex)
		args = append(args, filter.MetricType)
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
		return nil, fmt.Errorf("failed to query analytics: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record := &Record{}
		var metadata []byte
		err := rows.Scan(&record.Time, &record.Symbol1, &record.Symbol2,
			&record.MetricType, &record.Value, &metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analytics record: %w", err)
		}
		if err := unmarshalMetadata(metadata, record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// GetLatest retrieves the most recent record for a metric key.
func (r *Repository) GetLatest(ctx context.Context, symbol1, symbol2, metricType string) (*Record, error) {
	query := `SELECT time, symbol1, symbol2, metric_type, value, metadata
			  FROM analytics
			  WHERE symbol1 = $1 AND symbol2 = $2 AND metric_type = $3
			  ORDER BY time DESC
			  LIMIT 1`

	record := &Record{}
	var metadata []byte
	err := r.client.QueryRow(ctx, query, symbol1, symbol2, metricType).Scan(
		&record.Time, &record.Symbol1, &record.Symbol2,
		&record.MetricType, &record.Value, &metadata)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest analytics record: %w", err)
	}

	if err := unmarshalMetadata(metadata, record); err != nil {
		return nil, err
	}

	return record, nil
}

func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if metadata == nil {
		return nil, nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return data, nil
}

func unmarshalMetadata(data []byte, record *Record) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &record.Metadata); err != nil {
		return fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return nil
}
