package aggregator

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/tick"
	"github.com/quantlabs/quant-analytics/pkg/errors"
	"github.com/quantlabs/quant-analytics/pkg/interval"
	"github.com/quantlabs/quant-analytics/pkg/logger"
)

type bucketKey struct {
	symbol   string
	interval string
	start    int64 // unix nanos of the bucket start
}

// shard owns a slice of the bucket map. Ticks for different symbols land on
// different shards and never contend; ticks for the same (symbol, interval)
// are serialized by the shard mutex.
type shard struct {
	mu      sync.Mutex
	buckets map[bucketKey]*bucket
}

// Aggregator incrementally folds ticks into open OHLCV buckets per
// (symbol, interval). It owns all in-flight bucket state; the scheduler
// drains snapshots and evicts buckets that fall outside the lookback horizon.
type Aggregator struct {
	intervals   []interval.Interval
	startOffset time.Duration
	shards      []*shard
	logger      logger.Interface

	// now is swappable for tests.
	now func() time.Time
}

// New creates an aggregator for the configured intervals.
func New(cfg interval.Config, log logger.Interface) (*Aggregator, error) {
	intervals, err := cfg.Enabled()
	if err != nil {
		return nil, err
	}
	if cfg.ShardCount <= 0 {
		return nil, fmt.Errorf("invalid shard count: %d", cfg.ShardCount)
	}

	shards := make([]*shard, cfg.ShardCount)
	for i := range shards {
		shards[i] = &shard{buckets: make(map[bucketKey]*bucket)}
	}

	return &Aggregator{
		intervals:   intervals,
		startOffset: cfg.StartOffset,
		shards:      shards,
		logger:      log,
		now:         time.Now,
	}, nil
}

// Intervals returns the intervals this aggregator maintains.
func (a *Aggregator) Intervals() []interval.Interval {
	return a.intervals
}

// Ingest folds one tick into the open bucket of every configured interval.
// Each interval is computed independently from ticks, never derived from a
// finer interval's bars. A tick whose bucket has already passed the lookback
// horizon is not folded; the returned error carries the late-data code and
// the caller decides whether the raw tick is still stored.
func (a *Aggregator) Ingest(t *tick.Tick) error {
	horizon := a.now().Add(-a.startOffset)

	var lateErr error
	for _, iv := range a.intervals {
		start := iv.BucketStart(t.Time)
		if start.Before(iv.BucketStart(horizon)) {
			lateErr = errors.NewErrorDetailsWithObject(
				fmt.Sprintf("tick for bucket %s is beyond the %s lookback horizon", start.Format(time.RFC3339), a.startOffset),
				string(errors.ErrLateData), "time", t)
			continue
		}

		key := bucketKey{symbol: t.Symbol, interval: iv.Name, start: start.UnixNano()}
		sh := a.shardFor(t.Symbol, iv.Name)

		sh.mu.Lock()
		if b, ok := sh.buckets[key]; ok {
			b.fold(t)
		} else {
			// Covers both a fresh bucket and the reopen of a bucket that was
			// already emitted: the scheduler re-emits anything dirty inside
			// the lookback window, so a late tick lands in the store as an
			// upsert on the next cycle rather than being silently dropped.
			sh.buckets[key] = newBucket(t.Symbol, iv.Name, start, t)
		}
		sh.mu.Unlock()
	}

	return lateErr
}

// Snapshot returns copies of every dirty bucket of the given interval whose
// start falls in [from, to]. Copies are taken under the shard lock, so a
// snapshot never observes a half-applied fold.
func (a *Aggregator) Snapshot(iv interval.Interval, from, to time.Time) []Snapshot {
	var snapshots []Snapshot

	for _, sh := range a.shards {
		sh.mu.Lock()
		for key, b := range sh.buckets {
			if key.interval != iv.Name || !b.dirty {
				continue
			}
			if b.start.Before(from) || b.start.After(to) {
				continue
			}
			snapshots = append(snapshots, b.snapshot())
		}
		sh.mu.Unlock()
	}

	return snapshots
}

// MarkClean clears the dirty flag of the snapshotted buckets, unless a
// concurrent ingest revised the bucket after the snapshot was taken; those
// stay dirty and are re-emitted on the next cycle.
func (a *Aggregator) MarkClean(snapshots []Snapshot) {
	for _, snap := range snapshots {
		key := bucketKey{
			symbol:   snap.Bar.Symbol,
			interval: snap.Bar.Interval,
			start:    snap.Bar.Time.UnixNano(),
		}
		sh := a.shardFor(snap.Bar.Symbol, snap.Bar.Interval)

		sh.mu.Lock()
		if b, ok := sh.buckets[key]; ok && b.rev == snap.rev {
			b.dirty = false
		}
		sh.mu.Unlock()
	}
}

// Evict drops buckets of the given interval whose start is older than the
// cutoff. Evicted buckets are final: late ticks for them are outside the
// lookback horizon and are rejected by Ingest. Returns the number evicted
// and how many of those were still dirty (revisions that never made it to
// storage before the bucket aged out of the window).
func (a *Aggregator) Evict(iv interval.Interval, olderThan time.Time) (evicted, dirtyDropped int) {
	for _, sh := range a.shards {
		sh.mu.Lock()
		for key, b := range sh.buckets {
			if key.interval != iv.Name {
				continue
			}
			if b.start.Before(olderThan) {
				if b.dirty {
					dirtyDropped++
				}
				delete(sh.buckets, key)
				evicted++
			}
		}
		sh.mu.Unlock()
	}
	return evicted, dirtyDropped
}

func (a *Aggregator) shardFor(symbol, intervalName string) *shard {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	h.Write([]byte{'|'})
	h.Write([]byte(intervalName))
	return a.shards[int(h.Sum32())%len(a.shards)]
}
