package analytics

import (
	"time"
)

// Metric types produced by the analytics engine.
const (
	MetricVolatility  = "volatility"
	MetricZScore      = "zscore"
	MetricCorrelation = "correlation"
	MetricSpread      = "spread"
)

// Record represents a derived analytics value. Symbol2 is the empty string
// for single-symbol metrics; the empty string participates in the uniqueness
// key (time, symbol1, symbol2, metric_type) as a distinguished value, never
// as NULL.
type Record struct {
	Time       time.Time
	Symbol1    string
	Symbol2    string
	MetricType string
	Value      float64
	Metadata   map[string]any
}

// Filter represents the filter criteria for analytics records. Symbol2 is a
// pointer because the empty string is a real key value: nil means "any",
// a pointer to "" matches single-symbol metrics only.
type Filter struct {
	Symbol1    string
	Symbol2    *string
	MetricType string
	From       *time.Time
	To         *time.Time
	Limit      int
}
