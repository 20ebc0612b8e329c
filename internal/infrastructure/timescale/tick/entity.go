package tick

import (
	"time"
)

// Tick represents a single trade observation. Immutable once stored,
// unique per (time, symbol).
type Tick struct {
	Time   time.Time
	Symbol string
	Price  float64
	Size   float64
}

// Filter represents the filter criteria for tick data.
type Filter struct {
	Symbol string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
