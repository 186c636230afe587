// Package timeseries provides the time-indexed numeric series the pipeline
// stages exchange: a Series pairs one timestamp index with one value column,
// and a Frame groups named columns over a shared index. Both are immutable
// once constructed; transformations return new values.
package timeseries

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Series is an immutable time-indexed column of float64 values.
type Series struct {
	times  []time.Time
	values []float64
}

// New builds a Series from parallel slices. The slices are copied; callers
// keep ownership of their arguments.
func New(times []time.Time, values []float64) (Series, error) {
	if len(times) != len(values) {
		return Series{}, fmt.Errorf("timeseries: index length %d does not match value length %d", len(times), len(values))
	}
	return Series{times: cloneTimes(times), values: cloneValues(values)}, nil
}

// Must is New for static construction; it panics on length mismatch.
func Must(times []time.Time, values []float64) Series {
	s, err := New(times, values)
	if err != nil {
		panic(err)
	}
	return s
}

// Constant builds a Series holding the same value at every timestamp.
func Constant(times []time.Time, value float64) Series {
	values := make([]float64, len(times))
	for i := range values {
		values[i] = value
	}
	return Series{times: cloneTimes(times), values: values}
}

// Len returns the number of observations.
func (s Series) Len() int { return len(s.values) }

// IsEmpty reports whether the series holds no observations. The zero Series
// is empty and is used throughout the pipeline to mean "absent input".
func (s Series) IsEmpty() bool { return len(s.values) == 0 }

// Time returns the timestamp at position i.
func (s Series) Time(i int) time.Time { return s.times[i] }

// Value returns the value at position i.
func (s Series) Value(i int) float64 { return s.values[i] }

// At returns the (timestamp, value) pair at position i.
func (s Series) At(i int) (time.Time, float64) { return s.times[i], s.values[i] }

// Times returns a copy of the timestamp index.
func (s Series) Times() []time.Time { return cloneTimes(s.times) }

// Values returns a copy of the value column.
func (s Series) Values() []float64 { return cloneValues(s.values) }

// SameIndex reports whether both series share an identical timestamp index.
func (s Series) SameIndex(other Series) bool {
	return s.AlignedTo(other.times)
}

// AlignedTo reports whether the series index equals times exactly, instant by
// instant.
func (s Series) AlignedTo(times []time.Time) bool {
	if len(s.times) != len(times) {
		return false
	}
	for i := range times {
		if !s.times[i].Equal(times[i]) {
			return false
		}
	}
	return true
}

// Map returns a new Series over the same index with fn applied to every
// value.
func (s Series) Map(fn func(float64) float64) Series {
	values := make([]float64, len(s.values))
	for i, v := range s.values {
		values[i] = fn(v)
	}
	return Series{times: s.times, values: values}
}

// WithValues returns a new Series sharing this series' index with a fresh
// value column.
func (s Series) WithValues(values []float64) (Series, error) {
	if len(values) != len(s.times) {
		return Series{}, fmt.Errorf("timeseries: replacement length %d does not match index length %d", len(values), len(s.times))
	}
	return Series{times: s.times, values: cloneValues(values)}, nil
}

// Sum returns the total of all non-NaN values.
func (s Series) Sum() float64 {
	var total float64
	for _, v := range s.values {
		if !math.IsNaN(v) {
			total += v
		}
	}
	return total
}

// Max returns the largest non-NaN value and its position, or (NaN, -1) when
// the series is empty or all NaN.
func (s Series) Max() (float64, int) {
	best := math.NaN()
	at := -1
	for i, v := range s.values {
		if math.IsNaN(v) {
			continue
		}
		if at == -1 || v > best {
			best, at = v, i
		}
	}
	return best, at
}

// Min returns the smallest non-NaN value and its position, or (NaN, -1) when
// the series is empty or all NaN.
func (s Series) Min() (float64, int) {
	best := math.NaN()
	at := -1
	for i, v := range s.values {
		if math.IsNaN(v) {
			continue
		}
		if at == -1 || v < best {
			best, at = v, i
		}
	}
	return best, at
}

// CheckNonNegative returns an error naming the first negative value, nil when
// every value is ≥ 0 or NaN. Used to validate supplied irradiance columns.
func (s Series) CheckNonNegative(field string) error {
	for i, v := range s.values {
		if v < 0 {
			return fmt.Errorf("timeseries: %s[%d] = %v is negative", field, i, v)
		}
	}
	return nil
}

var errEmptyIndex = errors.New("timeseries: empty timestamp index")

// ValidateIndex rejects an empty index and any zero-value timestamp,
// returning the offending position for callers to wrap into their own error
// types.
func ValidateIndex(times []time.Time) (int, error) {
	if len(times) == 0 {
		return -1, errEmptyIndex
	}
	for i, t := range times {
		if t.IsZero() {
			return i, fmt.Errorf("timeseries: zero timestamp at index %d", i)
		}
	}
	return -1, nil
}

func cloneTimes(in []time.Time) []time.Time {
	out := make([]time.Time, len(in))
	copy(out, in)
	return out
}

func cloneValues(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)
	return out
}
