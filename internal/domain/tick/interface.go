package tick

import (
	"context"
	"time"

	"github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/tick"
)

//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock

// Usecase is the interface for the tick usecase. SubmitTick and SubmitTicks
// are the ingest boundary: ticks with negative price or size are rejected
// and never stored.
type Usecase interface {
	SubmitTick(ctx context.Context, tick *tick.Tick) error
	SubmitTicks(ctx context.Context, ticks []*tick.Tick) error
	GetTicks(ctx context.Context, filter tick.Filter) ([]*tick.Tick, error)
	GetLatestTick(ctx context.Context, symbol string) (*tick.Tick, error)
	GetTickVolume(ctx context.Context, symbol string, from, to time.Time) (float64, error)
}
