package ohlcv

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	ohlcvInfra "github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/ohlcv"
	repoMock "github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/ohlcv/mock"
	"github.com/quantlabs/quant-analytics/pkg/errors"
	loggerMock "github.com/quantlabs/quant-analytics/pkg/logger/mock"
)

var t0 = time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)

func TestUsecase_GetOHLCV(t *testing.T) {
	testCases := []struct {
		name     string
		filter   ohlcvInfra.Filter
		mockFn   func(repo *repoMock.MockBarRepository)
		assertFn func(t *testing.T, bars []*ohlcvInfra.Bar, err error)
	}{
		{
			name:   "success",
			filter: ohlcvInfra.Filter{Symbol: "AAPL", Interval: "1m"},
			mockFn: func(repo *repoMock.MockBarRepository) {
				repo.EXPECT().GetByFilter(gomock.Any(), ohlcvInfra.Filter{Symbol: "AAPL", Interval: "1m"}).
					Return([]*ohlcvInfra.Bar{{Time: t0, Symbol: "AAPL", Interval: "1m", Close: 100}}, nil)
			},
			assertFn: func(t *testing.T, bars []*ohlcvInfra.Bar, err error) {
				assert.NoError(t, err)
				assert.Len(t, bars, 1)
			},
		},
		{
			name:   "empty interval skips validation",
			filter: ohlcvInfra.Filter{Symbol: "AAPL"},
			mockFn: func(repo *repoMock.MockBarRepository) {
				repo.EXPECT().GetByFilter(gomock.Any(), ohlcvInfra.Filter{Symbol: "AAPL"}).
					Return(nil, nil)
			},
			assertFn: func(t *testing.T, bars []*ohlcvInfra.Bar, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:   "unsupported interval rejected",
			filter: ohlcvInfra.Filter{Symbol: "AAPL", Interval: "7m"},
			mockFn: func(repo *repoMock.MockBarRepository) {
			},
			assertFn: func(t *testing.T, bars []*ohlcvInfra.Bar, err error) {
				assert.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrInvalidInterval)))
			},
		},
		{
			name:   "repository error",
			filter: ohlcvInfra.Filter{Symbol: "AAPL", Interval: "1m"},
			mockFn: func(repo *repoMock.MockBarRepository) {
				repo.EXPECT().GetByFilter(gomock.Any(), gomock.Any()).
					Return(nil, stderrors.New("connection refused"))
			},
			assertFn: func(t *testing.T, bars []*ohlcvInfra.Bar, err error) {
				assert.Error(t, err)
				assert.Nil(t, bars)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := repoMock.NewMockBarRepository(ctrl)
			log := loggerMock.NewMockInterface(ctrl)
			tc.mockFn(repo)

			uc := NewUsecase(repo, log)
			bars, err := uc.GetOHLCV(context.Background(), tc.filter)
			tc.assertFn(t, bars, err)
		})
	}
}

func TestUsecase_GetRecent(t *testing.T) {
	testCases := []struct {
		name     string
		interval string
		mockFn   func(repo *repoMock.MockBarRepository)
		assertFn func(t *testing.T, bars []*ohlcvInfra.Bar, err error)
	}{
		{
			name:     "success",
			interval: "1m",
			mockFn: func(repo *repoMock.MockBarRepository) {
				repo.EXPECT().GetRecent(gomock.Any(), "AAPL", "1m", 30).
					Return([]*ohlcvInfra.Bar{{Time: t0, Close: 99}, {Time: t0.Add(time.Minute), Close: 101}}, nil)
			},
			assertFn: func(t *testing.T, bars []*ohlcvInfra.Bar, err error) {
				assert.NoError(t, err)
				assert.Len(t, bars, 2)
			},
		},
		{
			name:     "unsupported interval rejected",
			interval: "2h",
			mockFn: func(repo *repoMock.MockBarRepository) {
			},
			assertFn: func(t *testing.T, bars []*ohlcvInfra.Bar, err error) {
				assert.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrInvalidInterval)))
			},
		},
		{
			name:     "repository error",
			interval: "1m",
			mockFn: func(repo *repoMock.MockBarRepository) {
				repo.EXPECT().GetRecent(gomock.Any(), "AAPL", "1m", 30).
					Return(nil, stderrors.New("error"))
			},
			assertFn: func(t *testing.T, bars []*ohlcvInfra.Bar, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := repoMock.NewMockBarRepository(ctrl)
			log := loggerMock.NewMockInterface(ctrl)
			tc.mockFn(repo)

			uc := NewUsecase(repo, log)
			bars, err := uc.GetRecent(context.Background(), "AAPL", tc.interval, 30)
			tc.assertFn(t, bars, err)
		})
	}
}

func TestUsecase_StoreBars(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bars := []*ohlcvInfra.Bar{{Time: t0, Symbol: "AAPL", Interval: "1m", Close: 100}}

	repo := repoMock.NewMockBarRepository(ctrl)
	repo.EXPECT().UpsertBatch(gomock.Any(), bars).Return(nil)

	uc := NewUsecase(repo, loggerMock.NewMockInterface(ctrl))
	assert.NoError(t, uc.StoreBars(context.Background(), bars))
}
