package types

import "time"

// Time is a signed instant or duration at nanosecond scale.
//
// It is signed rather than unsigned so that subtracting two instants yields
// a meaningful signed delta. Zero is an arbitrary epoch chosen by the
// embedding application; the toolkit only ever compares and subtracts.
type Time int64

// Nanoseconds returns the raw nanosecond count.
func (t Time) Nanoseconds() int64 {
	return int64(t)
}

// Seconds returns the time as fractional seconds. Numeric integration and
// differentiation in the stream layer work in seconds.
func (t Time) Seconds() float64 {
	return float64(t) / 1e9
}

// Sub returns the signed delta t - other.
func (t Time) Sub(other Time) Time {
	return t - other
}

// Duration converts to a time.Duration.
func (t Time) Duration() time.Duration {
	return time.Duration(t)
}

// FromSeconds builds a Time from fractional seconds.
func FromSeconds(s float64) Time {
	return Time(s * 1e9)
}

// FromDuration builds a Time from a time.Duration.
func FromDuration(d time.Duration) Time {
	return Time(d)
}
