package analytics

import (
	"context"

	"github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/analytics"
)

//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock

// Usecase is the interface for the analytics usecase.
type Usecase interface {
	StoreMetric(ctx context.Context, record *analytics.Record) error
	GetAnalytics(ctx context.Context, filter analytics.Filter) ([]*analytics.Record, error)
	GetLatestMetric(ctx context.Context, symbol1, symbol2, metricType string) (*analytics.Record, error)
}
