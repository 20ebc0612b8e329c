package ohlcv

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// BarRepository represents the repository interface for OHLCV bars.
type BarRepository interface {
	Upsert(ctx context.Context, bar *Bar) error
	UpsertBatch(ctx context.Context, bars []*Bar) error
	GetByFilter(ctx context.Context, filter Filter) ([]*Bar, error)
	GetLatest(ctx context.Context, symbol, interval string) (*Bar, error)
	GetRecent(ctx context.Context, symbol, interval string, limit int) ([]*Bar, error)
}
