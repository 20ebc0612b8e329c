package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)

func TestGet(t *testing.T) {
	iv, err := Get("1m")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, iv.Duration)

	_, err = Get("7m")
	assert.Error(t, err)
}

func TestIsValid(t *testing.T) {
	for _, name := range []string{"1s", "5s", "1m", "5m", "15m", "1h"} {
		assert.True(t, IsValid(name), name)
	}
	assert.False(t, IsValid("2h"))
	assert.False(t, IsValid(""))
}

func TestBucketStart(t *testing.T) {
	testCases := []struct {
		name      string
		interval  Interval
		timestamp time.Time
		expected  time.Time
	}{
		{
			name:      "second interval floors sub-second",
			interval:  Interval1s,
			timestamp: t0.Add(300 * time.Millisecond),
			expected:  t0,
		},
		{
			name:      "minute interval floors seconds",
			interval:  Interval1m,
			timestamp: t0.Add(42 * time.Second),
			expected:  t0,
		},
		{
			name:      "five minute interval floors to boundary",
			interval:  Interval5m,
			timestamp: t0.Add(3*time.Minute + 7*time.Second),
			expected:  t0,
		},
		{
			name:      "boundary timestamp maps to itself",
			interval:  Interval1m,
			timestamp: t0,
			expected:  t0,
		},
		{
			name:      "non-UTC input is normalized",
			interval:  Interval1m,
			timestamp: t0.Add(10 * time.Second).In(time.FixedZone("EST", -5*3600)),
			expected:  t0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.interval.BucketStart(tc.timestamp)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestBucketRange(t *testing.T) {
	start, end := Interval5m.BucketRange(t0.Add(2 * time.Minute))
	assert.Equal(t, t0, start)
	assert.Equal(t, t0.Add(5*time.Minute), end)
}

func TestSameBucket(t *testing.T) {
	assert.True(t, Interval1m.SameBucket(t0, t0.Add(59*time.Second)))
	assert.False(t, Interval1m.SameBucket(t0, t0.Add(time.Minute)))
	assert.True(t, Interval1s.SameBucket(t0, t0.Add(999*time.Millisecond)))
}

func TestConfig_Enabled(t *testing.T) {
	cfg := Config{EnabledIntervals: []string{"1s", "1m", "5m"}}
	intervals, err := cfg.Enabled()
	require.NoError(t, err)
	require.Len(t, intervals, 3)
	assert.Equal(t, "1s", intervals[0].Name)
	assert.Equal(t, "5m", intervals[2].Name)

	cfg = Config{EnabledIntervals: []string{"1s", "bogus"}}
	_, err = cfg.Enabled()
	assert.Error(t, err)
}

func TestConfig_Policies(t *testing.T) {
	cfg := Config{
		EnabledIntervals: []string{"1m", "5m"},
		StartOffset:      2 * time.Hour,
	}

	policies, err := cfg.Policies()
	require.NoError(t, err)
	require.Len(t, policies, 2)

	assert.Equal(t, "1m", policies[0].Interval.Name)
	assert.Equal(t, 2*time.Hour, policies[0].StartOffset)
	assert.Equal(t, time.Minute, policies[0].EndOffset)
	assert.Equal(t, time.Minute, policies[0].ScheduleInterval)

	assert.Equal(t, "5m", policies[1].Interval.Name)
	assert.Equal(t, 5*time.Minute, policies[1].ScheduleInterval)
}

func TestRefreshPolicy_Window(t *testing.T) {
	policy := RefreshPolicy{
		StartOffset: 2 * time.Hour,
		EndOffset:   time.Minute,
	}

	from, to := policy.Window(t0)
	assert.Equal(t, t0.Add(-2*time.Hour), from)
	assert.Equal(t, t0.Add(-time.Minute), to)
}
