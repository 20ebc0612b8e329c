package analytics

import (
	"context"

	"github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/analytics"
	"github.com/quantlabs/quant-analytics/pkg/errors"
	"github.com/quantlabs/quant-analytics/pkg/logger"
)

// Usecase is the usecase for derived analytics.
type Usecase struct {
	analyticsRepository analytics.AnalyticsRepository
	logger              logger.Interface
}

// NewUsecase creates a new analytics usecase.
func NewUsecase(analyticsRepository analytics.AnalyticsRepository, logger logger.Interface) *Usecase {
	return &Usecase{analyticsRepository: analyticsRepository, logger: logger}
}

// StoreMetric stores a derived metric record.
func (u *Usecase) StoreMetric(ctx context.Context, record *analytics.Record) error {
	if err := u.analyticsRepository.Store(ctx, record); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

// GetAnalytics gets records for a given filter, ordered by time.
func (u *Usecase) GetAnalytics(ctx context.Context, filter analytics.Filter) ([]*analytics.Record, error) {
	records, err := u.analyticsRepository.GetByFilter(ctx, filter)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return records, nil
}

// GetLatestMetric gets the most recent record for a metric key. symbol2 is
// the empty string for single-symbol metrics.
func (u *Usecase) GetLatestMetric(ctx context.Context, symbol1, symbol2, metricType string) (*analytics.Record, error) {
	record, err := u.analyticsRepository.GetLatest(ctx, symbol1, symbol2, metricType)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return record, nil
}
