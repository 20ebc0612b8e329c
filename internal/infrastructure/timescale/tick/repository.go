package tick

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/quantlabs/quant-analytics/pkg/timescale"
)

// Repository represents the repository for tick data.
type Repository struct {
	client timescale.Client
}

// NewRepository creates a new tick repository.
func NewRepository(client timescale.Client) *Repository {
	return &Repository{
		client: client,
	}
}

// Store stores a single tick. Duplicate (time, symbol) keys are upserts,
// not errors.
func (r *Repository) Store(ctx context.Context, tick *Tick) error {
	query := `INSERT INTO ticks (time, symbol, price, size)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (time, symbol) DO UPDATE SET price = EXCLUDED.price, size = EXCLUDED.size`

	err := r.client.Exec(ctx, query, tick.Time, tick.Symbol, tick.Price, tick.Size)
	if err != nil {
		return fmt.Errorf("failed to store tick: %w", err)
	}

	return nil
}

// StoreBatch stores a batch of ticks in a single statement. A multi-row
// insert is used instead of CopyFrom so that duplicate keys stay upserts.
func (r *Repository) StoreBatch(ctx context.Context, ticks []*Tick) error {
	if len(ticks) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ticks (time, symbol, price, size) VALUES ")

	args := make([]any, 0, len(ticks)*4)
	for i, tick := range ticks {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 4
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
		args = append(args, tick.Time, tick.Symbol, tick.Price, tick.Size)
	}

	sb.WriteString(" ON CONFLICT (time, symbol) DO UPDATE SET price = EXCLUDED.price, size = EXCLUDED.size")

	if err := r.client.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("failed to store tick batch: %w", err)
	}

	return nil
}

// GetByFilter retrieves ticks by filter, ordered by time ascending.
func (r *Repository) GetByFilter(ctx context.Context, filter Filter) ([]*Tick, error) {
	query := "SELECT time, symbol, price, size FROM ticks WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.Symbol != "" {
		query += fmt.Sprintf(" AND symbol = $%d", argIndex)
		args = append(args, filter.Symbol)
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
		argIndex++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	rows, err := r.client.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ticks: %w", err)
	}
	defer rows.Close()

	var ticks []*Tick
	for rows.Next() {
		tick := &Tick{}
		err := rows.Scan(&tick.Time, &tick.Symbol, &tick.Price, &tick.Size)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tick: %w", err)
		}
		ticks = append(ticks, tick)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ticks, nil
}

// GetLatestBySymbol retrieves the most recent tick for a symbol.
func (r *Repository) GetLatestBySymbol(ctx context.Context, symbol string) (*Tick, error) {
	query := `SELECT time, symbol, price, size
			  FROM ticks
			  WHERE symbol = $1
			  ORDER BY time DESC
			  LIMIT 1`

	tick := &Tick{}
	err := r.client.QueryRow(ctx, query, symbol).Scan(&tick.Time, &tick.Symbol, &tick.Price, &tick.Size)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest tick: %w", err)
	}

	return tick, nil
}

// GetVolumeBySymbol retrieves the traded volume for a symbol in a time range.
func (r *Repository) GetVolumeBySymbol(ctx context.Context, symbol string, from, to time.Time) (float64, error) {
	query := `SELECT COALESCE(SUM(size), 0)
			  FROM ticks
			  WHERE symbol = $1 AND time >= $2 AND time <= $3`

	var volume float64
	err := r.client.QueryRow(ctx, query, symbol, from, to).Scan(&volume)
	if err != nil {
		return 0, fmt.Errorf("failed to get tick volume: %w", err)
	}

	return volume, nil
}
