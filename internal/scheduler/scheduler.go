package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/quantlabs/quant-analytics/internal/aggregator"
	ohlcvDomain "github.com/quantlabs/quant-analytics/internal/domain/ohlcv"
	ohlcvInfra "github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/ohlcv"
	"github.com/quantlabs/quant-analytics/pkg/errors"
	"github.com/quantlabs/quant-analytics/pkg/interval"
	"github.com/quantlabs/quant-analytics/pkg/logger"
)

const (
	emitMaxRetries  = 3
	emitBaseBackoff = 200 * time.Millisecond
)

// BarListener receives every bar the scheduler publishes. The alert engine
// hangs off this to evaluate price rules on fresh closes.
type BarListener interface {
	OnBars(snapshots []aggregator.Snapshot)
}

// Scheduler drives the periodic finalization of open buckets. One refresh
// loop runs per interval; each cycle emits every dirty bucket whose start
// falls inside [now-start_offset, now-end_offset] as an idempotent upsert,
// then evicts buckets that aged past the lookback horizon.
type Scheduler struct {
	agg       *aggregator.Aggregator
	ohlcvUc   ohlcvDomain.Usecase
	policies  []interval.RefreshPolicy
	listeners []BarListener
	logger    logger.Interface

	wg   sync.WaitGroup
	stop context.CancelFunc

	// now is swappable for tests.
	now func() time.Time
}

// New creates a scheduler for the given refresh policies.
func New(agg *aggregator.Aggregator, ohlcvUc ohlcvDomain.Usecase, policies []interval.RefreshPolicy, log logger.Interface) *Scheduler {
	return &Scheduler{
		agg:      agg,
		ohlcvUc:  ohlcvUc,
		policies: policies,
		logger:   log,
		now:      time.Now,
	}
}

// AddListener registers a listener for published bars. Must be called before
// Start.
func (s *Scheduler) AddListener(l BarListener) {
	s.listeners = append(s.listeners, l)
}

// Start launches one refresh loop per interval. It returns immediately.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.stop = cancel

	for _, policy := range s.policies {
		s.wg.Add(1)
		go s.run(ctx, policy)
	}

	s.logger.Info("refresh scheduler started", logger.Field{
		Key:   "intervals",
		Value: len(s.policies),
	})
}

// Stop halts the refresh loops. Any in-flight emission completes before this
// returns, so shutdown never tears a write.
func (s *Scheduler) Stop() {
	if s.stop != nil {
		s.stop()
	}
	s.wg.Wait()
	s.logger.Info("refresh scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context, policy interval.RefreshPolicy) {
	defer s.wg.Done()

	ticker := time.NewTicker(policy.ScheduleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Final pass so buckets revised since the last cycle are not
			// lost on shutdown.
			s.Refresh(context.Background(), policy)
			return
		case <-ticker.C:
			s.Refresh(ctx, policy)
		}
	}
}

// Refresh runs one scheduling cycle for an interval: snapshot dirty buckets
// in the refresh window, upsert them, notify listeners, evict aged buckets.
// Re-running a cycle over an unchanged window is a no-op by construction.
func (s *Scheduler) Refresh(ctx context.Context, policy interval.RefreshPolicy) {
	now := s.now()
	from, to := policy.Window(now)

	snapshots := s.agg.Snapshot(policy.Interval, policy.Interval.BucketStart(from), to)
	if len(snapshots) > 0 {
		if err := s.emit(ctx, snapshots); err != nil {
			s.logger.Error(errors.TracerFromError(err), logger.Field{
				Key:   "interval",
				Value: policy.Interval.Name,
			}, logger.Field{
				Key:   "buckets",
				Value: len(snapshots),
			})
			// Buckets stay dirty and are retried on the next cycle.
			return
		}

		s.agg.MarkClean(snapshots)
		for _, l := range s.listeners {
			l.OnBars(snapshots)
		}

		s.logger.Debug("emitted buckets", logger.Field{
			Key:   "interval",
			Value: policy.Interval.Name,
		}, logger.Field{
			Key:   "buckets",
			Value: len(snapshots),
		})
	}

	evicted, dirtyDropped := s.agg.Evict(policy.Interval, policy.Interval.BucketStart(from))
	if dirtyDropped > 0 {
		// Revisions that aged past the lookback horizon before reaching
		// storage. Bounded by start_offset, never silent.
		s.logger.Warn("dropped unemitted bucket revisions beyond lookback horizon", logger.Field{
			Key:   "interval",
			Value: policy.Interval.Name,
		}, logger.Field{
			Key:   "buckets",
			Value: dirtyDropped,
		})
	} else if evicted > 0 {
		s.logger.Debug("evicted finalized buckets", logger.Field{
			Key:   "interval",
			Value: policy.Interval.Name,
		}, logger.Field{
			Key:   "buckets",
			Value: evicted,
		})
	}
}

// emit upserts the snapshotted bars, retrying transient storage failures
// with linear backoff. The upsert is idempotent, so a retry after a partial
// failure is safe.
func (s *Scheduler) emit(ctx context.Context, snapshots []aggregator.Snapshot) error {
	bars := make([]*ohlcvInfra.Bar, 0, len(snapshots))
	for _, snap := range snapshots {
		bars = append(bars, snap.Bar)
	}

	var err error
	for attempt := 1; attempt <= emitMaxRetries; attempt++ {
		err = s.ohlcvUc.StoreBars(ctx, bars)
		if err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return err
		case <-time.After(emitBaseBackoff * time.Duration(attempt)):
		}
	}

	return errors.NewErrorDetails(
		"bucket emission failed after retries: "+err.Error(),
		string(errors.ErrSchedulerTransient), "emit")
}
