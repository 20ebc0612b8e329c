package ohlcv

import (
	"fmt"
	"time"

	"github.com/quantlabs/quant-analytics/pkg/interval"
)

// Bar represents a single OHLCV bar. Time is the bucket start, floored to the
// interval boundary; unique per (time, symbol, interval).
type Bar struct {
	Time       time.Time
	Symbol     string
	Interval   string
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     float64
	TradeCount int64
}

// Filter represents the filter criteria for OHLCV data.
type Filter struct {
	Symbol   string
	Interval string
	From     *time.Time
	To       *time.Time
	Limit    int
}

// ValidateInterval validates the interval field against the registry.
func (b *Bar) ValidateInterval() error {
	if !interval.IsValid(b.Interval) {
		return fmt.Errorf("invalid interval: %s, supported: %v", b.Interval, interval.Names())
	}
	return nil
}
