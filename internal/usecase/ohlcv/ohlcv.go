package ohlcv

import (
	"context"

	"github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/ohlcv"
	"github.com/quantlabs/quant-analytics/pkg/errors"
	"github.com/quantlabs/quant-analytics/pkg/interval"
	"github.com/quantlabs/quant-analytics/pkg/logger"
)

// Usecase is the usecase for OHLCV bars.
type Usecase struct {
	barRepository ohlcv.BarRepository
	logger        logger.Interface
}

// NewUsecase creates a new OHLCV usecase.
func NewUsecase(barRepository ohlcv.BarRepository, logger logger.Interface) *Usecase {
	return &Usecase{barRepository: barRepository, logger: logger}
}

// GetOHLCV gets bars for a given filter, ordered by time.
func (u *Usecase) GetOHLCV(ctx context.Context, filter ohlcv.Filter) ([]*ohlcv.Bar, error) {
	if filter.Interval != "" && !interval.IsValid(filter.Interval) {
		return nil, errors.NewErrorDetails(
			"unsupported interval: "+filter.Interval,
			string(errors.ErrInvalidInterval), "interval")
	}

	bars, err := u.barRepository.GetByFilter(ctx, filter)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return bars, nil
}

// GetLatest gets the latest bar for a symbol and interval.
func (u *Usecase) GetLatest(ctx context.Context, symbol, intervalName string) (*ohlcv.Bar, error) {
	bar, err := u.barRepository.GetLatest(ctx, symbol, intervalName)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return bar, nil
}

// GetRecent gets the most recent bars for a symbol and interval, oldest first.
func (u *Usecase) GetRecent(ctx context.Context, symbol, intervalName string, limit int) ([]*ohlcv.Bar, error) {
	if !interval.IsValid(intervalName) {
		return nil, errors.NewErrorDetails(
			"unsupported interval: "+intervalName,
			string(errors.ErrInvalidInterval), "interval")
	}

	bars, err := u.barRepository.GetRecent(ctx, symbol, intervalName, limit)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return bars, nil
}

// StoreBar upserts a single bar.
func (u *Usecase) StoreBar(ctx context.Context, bar *ohlcv.Bar) error {
	if err := u.barRepository.Upsert(ctx, bar); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

// StoreBars upserts a batch of bars.
func (u *Usecase) StoreBars(ctx context.Context, bars []*ohlcv.Bar) error {
	if err := u.barRepository.UpsertBatch(ctx, bars); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}
