package interval

import (
	"fmt"
	"time"
)

// Config holds interval-related configuration.
type Config struct {
	EnabledIntervals []string      `env:"INTERVALS" envSeparator:"," envDefault:"1s,1m,5m"`
	StartOffset      time.Duration `env:"START_OFFSET" envDefault:"2h"`
	ShardCount       int           `env:"SHARD_COUNT" envDefault:"32"`
}

// RefreshPolicy describes when buckets of one interval are revisited and
// published. Buckets with start in [now-StartOffset, now-EndOffset] are
// recomputed every ScheduleInterval; older buckets are final.
type RefreshPolicy struct {
	Interval Interval

	// StartOffset is how far back buckets may still be revised.
	StartOffset time.Duration
	// EndOffset is the recency lag before a bucket is considered stable
	// enough to publish.
	EndOffset time.Duration
	// ScheduleInterval is the refresh cadence.
	ScheduleInterval time.Duration
}

// Window returns the refresh window [from, to] for the given wall-clock time.
func (p RefreshPolicy) Window(now time.Time) (from, to time.Time) {
	return now.Add(-p.StartOffset), now.Add(-p.EndOffset)
}

// Enabled returns the configured intervals.
func (c Config) Enabled() ([]Interval, error) {
	enabled := make([]Interval, 0, len(c.EnabledIntervals))

	for _, name := range c.EnabledIntervals {
		interval, err := Get(name)
		if err != nil {
			return nil, fmt.Errorf("invalid interval in config: %s", name)
		}
		enabled = append(enabled, interval)
	}

	return enabled, nil
}

// Policies derives a refresh policy for every configured interval. The
// schedule cadence and publish lag both track the interval duration, the
// revision lookback is shared.
func (c Config) Policies() ([]RefreshPolicy, error) {
	intervals, err := c.Enabled()
	if err != nil {
		return nil, err
	}

	policies := make([]RefreshPolicy, 0, len(intervals))
	for _, iv := range intervals {
		policies = append(policies, RefreshPolicy{
			Interval:         iv,
			StartOffset:      c.StartOffset,
			EndOffset:        iv.Duration,
			ScheduleInterval: iv.Duration,
		})
	}
	return policies, nil
}
