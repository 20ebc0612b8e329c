package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/quantlabs/quant-analytics/internal/aggregator"
	ohlcvUcMock "github.com/quantlabs/quant-analytics/internal/domain/ohlcv/mock"
	ohlcvInfra "github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/ohlcv"
	tickInfra "github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/tick"
	"github.com/quantlabs/quant-analytics/pkg/interval"
	loggerMock "github.com/quantlabs/quant-analytics/pkg/logger/mock"
)

var t0 = time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)

type captureListener struct {
	batches [][]aggregator.Snapshot
}

func (c *captureListener) OnBars(snapshots []aggregator.Snapshot) {
	c.batches = append(c.batches, snapshots)
}

func newLoggerMock(ctrl *gomock.Controller) *loggerMock.MockInterface {
	log := loggerMock.NewMockInterface(ctrl)
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any(), gomock.Any()).AnyTimes()
	return log
}

func newTestScheduler(t *testing.T, ohlcvUc *ohlcvUcMock.MockUsecase) (*Scheduler, *aggregator.Aggregator, interval.RefreshPolicy) {
	ctrl := gomock.NewController(t)
	log := newLoggerMock(ctrl)

	agg, err := aggregator.New(interval.Config{
		EnabledIntervals: []string{"1m"},
		StartOffset:      2 * time.Hour,
		ShardCount:       8,
	}, log)
	require.NoError(t, err)

	policy := interval.RefreshPolicy{
		Interval:         interval.Interval1m,
		StartOffset:      2 * time.Hour,
		EndOffset:        0,
		ScheduleInterval: time.Minute,
	}

	sched := New(agg, ohlcvUc, []interval.RefreshPolicy{policy}, log)
	sched.now = func() time.Time { return t0.Add(time.Minute) }
	return sched, agg, policy
}

func TestScheduler_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	ohlcvUc := ohlcvUcMock.NewMockUsecase(ctrl)

	sched, agg, policy := newTestScheduler(t, ohlcvUc)
	listener := &captureListener{}
	sched.AddListener(listener)

	require.NoError(t, agg.Ingest(&tickInfra.Tick{Time: t0, Symbol: "AAPL", Price: 100, Size: 10}))

	ohlcvUc.EXPECT().StoreBars(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, bars []*ohlcvInfra.Bar) error {
			require.Len(t, bars, 1)
			assert.Equal(t, "AAPL", bars[0].Symbol)
			assert.Equal(t, "1m", bars[0].Interval)
			assert.Equal(t, float64(100), bars[0].Close)
			return nil
		}).Times(1)

	sched.Refresh(context.Background(), policy)
	require.Len(t, listener.batches, 1)

	// Nothing changed, so re-running the cycle emits nothing.
	sched.Refresh(context.Background(), policy)
	assert.Len(t, listener.batches, 1)
}

func TestScheduler_Refresh_RetriesOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	ohlcvUc := ohlcvUcMock.NewMockUsecase(ctrl)

	sched, agg, policy := newTestScheduler(t, ohlcvUc)
	listener := &captureListener{}
	sched.AddListener(listener)

	require.NoError(t, agg.Ingest(&tickInfra.Tick{Time: t0, Symbol: "AAPL", Price: 100, Size: 10}))

	gomock.InOrder(
		ohlcvUc.EXPECT().StoreBars(gomock.Any(), gomock.Any()).Return(errors.New("connection refused")),
		ohlcvUc.EXPECT().StoreBars(gomock.Any(), gomock.Any()).Return(nil),
	)

	sched.Refresh(context.Background(), policy)
	require.Len(t, listener.batches, 1)
}

func TestScheduler_Refresh_KeepsDirtyAfterExhaustedRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	ohlcvUc := ohlcvUcMock.NewMockUsecase(ctrl)

	sched, agg, policy := newTestScheduler(t, ohlcvUc)
	listener := &captureListener{}
	sched.AddListener(listener)

	require.NoError(t, agg.Ingest(&tickInfra.Tick{Time: t0, Symbol: "AAPL", Price: 100, Size: 10}))

	ohlcvUc.EXPECT().StoreBars(gomock.Any(), gomock.Any()).Return(errors.New("connection refused")).Times(3)
	sched.Refresh(context.Background(), policy)
	assert.Empty(t, listener.batches)

	// The bucket stayed dirty, so the next cycle emits it.
	ohlcvUc.EXPECT().StoreBars(gomock.Any(), gomock.Any()).Return(nil)
	sched.Refresh(context.Background(), policy)
	assert.Len(t, listener.batches, 1)
}

func TestScheduler_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	ohlcvUc := ohlcvUcMock.NewMockUsecase(ctrl)

	sched, agg, _ := newTestScheduler(t, ohlcvUc)

	require.NoError(t, agg.Ingest(&tickInfra.Tick{Time: t0, Symbol: "AAPL", Price: 100, Size: 10}))

	// Shutdown runs one final cycle per policy, so the pending bucket is
	// flushed even though no ticker fired.
	ohlcvUc.EXPECT().StoreBars(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	sched.Start(context.Background())
	sched.Stop()
}
