package timeseries

import (
	"fmt"
	"time"
)

// Frame groups named value columns over one shared timestamp index. Columns
// keep insertion order; readers use it to preserve source file layout.
type Frame struct {
	times []time.Time
	order []string
	cols  map[string][]float64
}

// NewFrame builds an empty frame over the given index.
func NewFrame(times []time.Time) *Frame {
	return &Frame{
		times: cloneTimes(times),
		cols:  make(map[string][]float64),
	}
}

// Add appends a named column. The column must match the frame index length
// and the name must be unused.
func (f *Frame) Add(name string, values []float64) error {
	if len(values) != len(f.times) {
		return fmt.Errorf("timeseries: column %q length %d does not match index length %d", name, len(values), len(f.times))
	}
	if _, ok := f.cols[name]; ok {
		return fmt.Errorf("timeseries: column %q already present", name)
	}
	f.order = append(f.order, name)
	f.cols[name] = cloneValues(values)
	return nil
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.times) }

// Times returns a copy of the shared index.
func (f *Frame) Times() []time.Time { return cloneTimes(f.times) }

// Columns returns column names in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Has reports whether a column exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Column returns the named column as a Series sharing the frame index.
func (f *Frame) Column(name string) (Series, bool) {
	values, ok := f.cols[name]
	if !ok {
		return Series{}, false
	}
	return Series{times: f.times, values: values}, true
}
