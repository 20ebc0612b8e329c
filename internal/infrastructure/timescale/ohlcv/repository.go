package ohlcv

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/quantlabs/quant-analytics/pkg/timescale"
)

const upsertQuery = `INSERT INTO ohlcv (time, symbol, interval, open, high, low, close, volume, trade_count)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  ON CONFLICT (time, symbol, interval) DO UPDATE SET
			  open = EXCLUDED.open, high = EXCLUDED.high, low = EXCLUDED.low,
			  close = EXCLUDED.close, volume = EXCLUDED.volume, trade_count = EXCLUDED.trade_count`

// Repository represents the repository for OHLCV bars.
type Repository struct {
	client timescale.Client
}

// NewRepository creates a new OHLCV repository.
func NewRepository(client timescale.Client) *Repository {
	return &Repository{
		client: client,
	}
}

// Upsert stores a bar, replacing any previous emission for the same
// (time, symbol, interval). Re-emitting an unchanged bar is a no-op.
func (r *Repository) Upsert(ctx context.Context, bar *Bar) error {
	err := r.client.Exec(ctx, upsertQuery,
		bar.Time, bar.Symbol, bar.Interval, bar.Open, bar.High,
		bar.Low, bar.Close, bar.Volume, bar.TradeCount)

	if err != nil {
		return fmt.Errorf("failed to upsert bar: %w", err)
	}

	return nil
}

// UpsertBatch stores a batch of bars with the same upsert semantics.
func (r *Repository) UpsertBatch(ctx context.Context, bars []*Bar) error {
	if len(bars) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ohlcv (time, symbol, interval, open, high, low, close, volume, trade_count) VALUES ")

	args := make([]any, 0, len(bars)*9)
	for i, bar := range bars {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 9
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		args = append(args, bar.Time, bar.Symbol, bar.Interval, bar.Open, bar.High,
			bar.Low, bar.Close, bar.Volume, bar.TradeCount)
	}

	sb.WriteString(` ON CONFLICT (time, symbol, interval) DO UPDATE SET
			  open = EXCLUDED.open, high = EXCLUDED.high, low = EXCLUDED.low,
			  close = EXCLUDED.close, volume = EXCLUDED.volume, trade_count = EXCLUDED.trade_count`)

	if err := r.client.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("failed to upsert bar batch: %w", err)
	}

	return nil
}

// GetByFilter retrieves bars by filter, ordered by time ascending.
func (r *Repository) GetByFilter(ctx context.Context, filter Filter) ([]*Bar, error) {
	query := "SELECT time, symbol, interval, open, high, low, close, volume, trade_count FROM ohlcv WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.Symbol != "" {
		query += fmt.Sprintf(" AND symbol = $%d", argIndex)
		args = append(args, filter.Symbol)
		argIndex++
	}

	if filter.Interval != "" {
		query += fmt.Sprintf(" AND interval = $%d", argIndex)
		args = append(args, filter.Interval)
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
		return nil, fmt.Errorf("failed to query bars: %w", err)
	}
	defer rows.Close()

	var bars []*Bar
	for rows.Next() {
		bar := &Bar{}
		err := rows.Scan(&bar.Time, &bar.Symbol, &bar.Interval, &bar.Open,
			&bar.High, &bar.Low, &bar.Close, &bar.Volume, &bar.TradeCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bar: %w", err)
		}
		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return bars, nil
}

// GetRecent retrieves the most recent bars for a symbol and interval,
// returned oldest first.
func (r *Repository) GetRecent(ctx context.Context, symbol, interval string, limit int) ([]*Bar, error) {
	query := `SELECT time, symbol, interval, open, high, low, close, volume, trade_count
			  FROM ohlcv
			  WHERE symbol = $1 AND interval = $2
			  ORDER BY time DESC
			  LIMIT $3`

	rows, err := r.client.Query(ctx, query, symbol, interval, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent bars: %w", err)
	}
	defer rows.Close()

	var bars []*Bar
	for rows.Next() {
		bar := &Bar{}
		err := rows.Scan(&bar.Time, &bar.Symbol, &bar.Interval, &bar.Open,
			&bar.High, &bar.Low, &bar.Close, &bar.Volume, &bar.TradeCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bar: %w", err)
		}
		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	// Flip to chronological order for the analytics windows.
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}

	return bars, nil
}

// GetLatest retrieves the latest bar for a symbol and interval.
func (r *Repository) GetLatest(ctx context.Context, symbol, interval string) (*Bar, error) {
	query := `SELECT time, symbol, interval, open, high, low, close, volume, trade_count
			  FROM ohlcv
			  WHERE symbol = $1 AND interval = $2
			  ORDER BY time DESC
			  LIMIT 1`

	bar := &Bar{}
	err := r.client.QueryRow(ctx, query, symbol, interval).Scan(
		&bar.Time, &bar.Symbol, &bar.Interval, &bar.Open, &bar.High,
		&bar.Low, &bar.Close, &bar.Volume, &bar.TradeCount)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest bar: %w", err)
	}

	return bar, nil
}
