package tick

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	tickInfra "github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/tick"
	repoMock "github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/tick/mock"
	"github.com/quantlabs/quant-analytics/pkg/errors"
	loggerMock "github.com/quantlabs/quant-analytics/pkg/logger/mock"
)

var t0 = time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)

func TestUsecase_SubmitTick(t *testing.T) {
	testCases := []struct {
		name     string
		tick     *tickInfra.Tick
		mockFn   func(tick *tickInfra.Tick, repo *repoMock.MockTickRepository)
		assertFn func(t *testing.T, tick *tickInfra.Tick, err error)
	}{
		{
			name: "success",
			tick: &tickInfra.Tick{Time: t0, Symbol: "AAPL", Price: 100, Size: 10},
			mockFn: func(tick *tickInfra.Tick, repo *repoMock.MockTickRepository) {
				repo.EXPECT().Store(gomock.Any(), tick).Return(nil)
			},
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "symbol normalized to upper case",
			tick: &tickInfra.Tick{Time: t0, Symbol: "btcusdt", Price: 100, Size: 10},
			mockFn: func(tick *tickInfra.Tick, repo *repoMock.MockTickRepository) {
				repo.EXPECT().Store(gomock.Any(), tick).Return(nil)
			},
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "BTCUSDT", tick.Symbol)
			},
		},
		{
			name: "zero size is valid",
			tick: &tickInfra.Tick{Time: t0, Symbol: "AAPL", Price: 100, Size: 0},
			mockFn: func(tick *tickInfra.Tick, repo *repoMock.MockTickRepository) {
				repo.EXPECT().Store(gomock.Any(), tick).Return(nil)
			},
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "negative price rejected",
			tick: &tickInfra.Tick{Time: t0, Symbol: "AAPL", Price: -1, Size: 10},
			mockFn: func(tick *tickInfra.Tick, repo *repoMock.MockTickRepository) {
			},
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrTickValidation)))
			},
		},
		{
			name: "negative size rejected",
			tick: &tickInfra.Tick{Time: t0, Symbol: "AAPL", Price: 100, Size: -5},
			mockFn: func(tick *tickInfra.Tick, repo *repoMock.MockTickRepository) {
			},
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrTickValidation)))
			},
		},
		{
			name: "malformed symbol rejected",
			tick: &tickInfra.Tick{Time: t0, Symbol: "AA PL!", Price: 100, Size: 10},
			mockFn: func(tick *tickInfra.Tick, repo *repoMock.MockTickRepository) {
			},
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrTickValidation)))
			},
		},
		{
			name: "empty symbol rejected",
			tick: &tickInfra.Tick{Time: t0, Symbol: "", Price: 100, Size: 10},
			mockFn: func(tick *tickInfra.Tick, repo *repoMock.MockTickRepository) {
			},
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrTickValidation)))
			},
		},
		{
			name: "zero time rejected",
			tick: &tickInfra.Tick{Symbol: "AAPL", Price: 100, Size: 10},
			mockFn: func(tick *tickInfra.Tick, repo *repoMock.MockTickRepository) {
			},
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrTickValidation)))
			},
		},
		{
			name: "repository error",
			tick: &tickInfra.Tick{Time: t0, Symbol: "AAPL", Price: 100, Size: 10},
			mockFn: func(tick *tickInfra.Tick, repo *repoMock.MockTickRepository) {
				repo.EXPECT().Store(gomock.Any(), tick).Return(stderrors.New("error"))
			},
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := repoMock.NewMockTickRepository(ctrl)
			tc.mockFn(tc.tick, repo)

			uc := NewUsecase(repo, loggerMock.NewMockInterface(ctrl))
			err := uc.SubmitTick(context.Background(), tc.tick)
			tc.assertFn(t, tc.tick, err)
		})
	}
}

func TestUsecase_SubmitTicks(t *testing.T) {
	testCases := []struct {
		name     string
		ticks    []*tickInfra.Tick
		mockFn   func(ticks []*tickInfra.Tick, repo *repoMock.MockTickRepository)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success",
			ticks: []*tickInfra.Tick{
				{Time: t0, Symbol: "AAPL", Price: 100, Size: 10},
				{Time: t0.Add(time.Second), Symbol: "MSFT", Price: 300, Size: 5},
			},
			mockFn: func(ticks []*tickInfra.Tick, repo *repoMock.MockTickRepository) {
				repo.EXPECT().StoreBatch(gomock.Any(), ticks).Return(nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "one invalid tick rejects the whole batch",
			ticks: []*tickInfra.Tick{
				{Time: t0, Symbol: "AAPL", Price: 100, Size: 10},
				{Time: t0, Symbol: "MSFT", Price: -1, Size: 5},
			},
			mockFn: func(ticks []*tickInfra.Tick, repo *repoMock.MockTickRepository) {
			},
			assertFn: func(t *testing.T, err error) {
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrTickValidation)))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := repoMock.NewMockTickRepository(ctrl)
			tc.mockFn(tc.ticks, repo)

			uc := NewUsecase(repo, loggerMock.NewMockInterface(ctrl))
			err := uc.SubmitTicks(context.Background(), tc.ticks)
			tc.assertFn(t, err)
		})
	}
}
