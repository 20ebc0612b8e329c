package interval

import (
	"fmt"
	"time"
)

// Interval represents a time resolution for OHLCV bars.
type Interval struct {
	Name     string
	Duration time.Duration
}

// Supported intervals configuration
var (
	Interval1s  = Interval{Name: "1s", Duration: time.Second}
	Interval5s  = Interval{Name: "5s", Duration: 5 * time.Second}
	Interval1m  = Interval{Name: "1m", Duration: time.Minute}
	Interval5m  = Interval{Name: "5m", Duration: 5 * time.Minute}
	Interval15m = Interval{Name: "15m", Duration: 15 * time.Minute}
	Interval1h  = Interval{Name: "1h", Duration: time.Hour}
)

// AllIntervals lists every interval the registry knows about. Which of these
// are actually aggregated is decided by configuration, not by this list.
var AllIntervals = []Interval{
	Interval1s, Interval5s, Interval1m, Interval5m, Interval15m, Interval1h,
}

// Interval registry for lookup
var intervalRegistry = make(map[string]Interval)

func init() {
	for _, interval := range AllIntervals {
		intervalRegistry[interval.Name] = interval
	}
}

// Get returns an interval by name.
func Get(name string) (Interval, error) {
	interval, exists := intervalRegistry[name]
	if !exists {
		return Interval{}, fmt.Errorf("unsupported interval: %s", name)
	}
	return interval, nil
}

// IsValid checks if interval name is supported.
func IsValid(name string) bool {
	_, exists := intervalRegistry[name]
	return exists
}

// Names returns all supported interval names.
func Names() []string {
	names := make([]string, 0, len(AllIntervals))
	for _, interval := range AllIntervals {
		names = append(names, interval.Name)
	}
	return names
}
