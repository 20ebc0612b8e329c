package ohlcv

import (
	"context"

	"github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/ohlcv"
)

//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock

// Usecase is the interface for the OHLCV usecase. Upserts are keyed by
// (time, symbol, interval); re-emitting an unchanged bar is a no-op.
type Usecase interface {
	GetOHLCV(ctx context.Context, filter ohlcv.Filter) ([]*ohlcv.Bar, error)
	GetLatest(ctx context.Context, symbol, interval string) (*ohlcv.Bar, error)
	GetRecent(ctx context.Context, symbol, interval string, limit int) ([]*ohlcv.Bar, error)
	StoreBar(ctx context.Context, bar *ohlcv.Bar) error
	StoreBars(ctx context.Context, bars []*ohlcv.Bar) error
}
