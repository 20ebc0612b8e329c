package analytics

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// AnalyticsRepository represents the repository interface for derived metrics.
type AnalyticsRepository interface {
	Store(ctx context.Context, record *Record) error
	GetByFilter(ctx context.Context, filter Filter) ([]*Record, error)
	GetLatest(ctx context.Context, symbol1, symbol2, metricType string) (*Record, error)
}
