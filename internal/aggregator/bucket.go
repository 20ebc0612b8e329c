package aggregator

import (
	"time"

	"github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/ohlcv"
	"github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/tick"
)

// bucket is the open aggregate for one (symbol, interval, bucket start).
// openTime and closeTime record which observations currently define open and
// close, so out-of-order ticks resolve by true chronological order instead of
// arrival order.
type bucket struct {
	symbol   string
	interval string
	start    time.Time

	open      float64
	high      float64
	low       float64
	close     float64
	openTime  time.Time
	closeTime time.Time

	volume     float64
	tradeCount int64

	// rev increments on every fold; the scheduler clears dirty only when rev
	// is unchanged since its snapshot, so a concurrent ingest is never lost.
	rev   uint64
	dirty bool
}

func newBucket(symbol, interval string, start time.Time, t *tick.Tick) *bucket {
	return &bucket{
		symbol:     symbol,
		interval:   interval,
		start:      start,
		open:       t.Price,
		high:       t.Price,
		low:        t.Price,
		close:      t.Price,
		openTime:   t.Time,
		closeTime:  t.Time,
		volume:     t.Size,
		tradeCount: 1,
		rev:        1,
		dirty:      true,
	}
}

// fold rolls one tick into the bucket. Open belongs to the earliest tick by
// time (ties keep the first arrival); close belongs to the latest tick by
// time (ties go to the last arrival).
func (b *bucket) fold(t *tick.Tick) {
	if t.Price > b.high {
		b.high = t.Price
	}
	if t.Price < b.low {
		b.low = t.Price
	}

	if t.Time.Before(b.openTime) {
		b.open = t.Price
		b.openTime = t.Time
	}
	if !t.Time.Before(b.closeTime) {
		b.close = t.Price
		b.closeTime = t.Time
	}

	b.volume += t.Size
	b.tradeCount++
	b.rev++
	b.dirty = true
}

// Snapshot is an immutable copy of a bucket's aggregate, taken under the same
// per-shard exclusion used by ingest.
type Snapshot struct {
	Bar *ohlcv.Bar

	rev uint64
}

func (b *bucket) snapshot() Snapshot {
	return Snapshot{
		Bar: &ohlcv.Bar{
			Time:       b.start,
			Symbol:     b.symbol,
			Interval:   b.interval,
			Open:       b.open,
			High:       b.high,
			Low:        b.low,
			Close:      b.close,
			Volume:     b.volume,
			TradeCount: b.tradeCount,
		},
		rev: b.rev,
	}
}
