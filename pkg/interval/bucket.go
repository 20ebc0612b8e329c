package interval

import (
	"time"
)

// BucketStart calculates the start time of the interval bucket containing
// timestamp, floored to the interval boundary in UTC.
func (i Interval) BucketStart(timestamp time.Time) time.Time {
	return timestamp.UTC().Truncate(i.Duration)
}

// BucketRange returns the start and end time of the interval bucket.
// The bucket covers [start, end).
func (i Interval) BucketRange(timestamp time.Time) (start, end time.Time) {
	start = i.BucketStart(timestamp)
	end = start.Add(i.Duration)
	return start, end
}

// SameBucket checks if two timestamps fall within the same bucket.
func (i Interval) SameBucket(timestamp1, timestamp2 time.Time) bool {
	return i.BucketStart(timestamp1).Equal(i.BucketStart(timestamp2))
}
