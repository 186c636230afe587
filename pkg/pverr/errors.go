// Package pverr defines the typed error taxonomy shared across the modeling
// pipeline: unknown model keys, timestamps without timezone context, failed or
// ambiguous model inference, and physically invalid inputs. Callers match
// these with errors.As; everything else in the module uses plain wrapped
// errors.
package pverr

import (
	"fmt"
	"math"
	"strings"
)

// UnknownModelError reports a model key that is not registered for a stage.
type UnknownModelError struct {
	Stage string
	Key   string
	Known []string
}

func (e *UnknownModelError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown %s model %q", e.Stage, e.Key)
	}
	return fmt.Sprintf("unknown %s model %q (registered: %s)", e.Stage, e.Key, strings.Join(e.Known, ", "))
}

// NaiveTimestampError reports a timestamp that carries no usable timezone
// context: the zero time.Time in a run request, or an offset-less time string
// in a scenario with no timezone block.
type NaiveTimestampError struct {
	Index int
	Value string
}

func (e *NaiveTimestampError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("timestamp %d (%q) has no timezone context", e.Index, e.Value)
	}
	return fmt.Sprintf("timestamp %d has no timezone context", e.Index)
}

// ModelSelectionError reports that inference of an implicit model could not
// uniquely determine one: either no registered family matches the supplied
// parameters, or more than one does.
type ModelSelectionError struct {
	Stage      string
	Reason     string
	Candidates []string
}

func (e *ModelSelectionError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("cannot select %s model: %s", e.Stage, e.Reason)
	}
	return fmt.Sprintf("cannot select %s model: %s (candidates: %s)", e.Stage, e.Reason, strings.Join(e.Candidates, ", "))
}

// InputRangeError reports a value outside its documented physical validity
// range. Min/Max are inclusive bounds; an infinite bound marks a one-sided
// range.
type InputRangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *InputRangeError) Error() string {
	if math.IsNaN(e.Value) {
		return fmt.Sprintf("%s is not a number", e.Field)
	}
	switch {
	case math.IsInf(e.Min, -1) && !math.IsInf(e.Max, 1):
		return fmt.Sprintf("%s %v above maximum %v", e.Field, e.Value, e.Max)
	case math.IsInf(e.Max, 1) && !math.IsInf(e.Min, -1):
		return fmt.Sprintf("%s %v below minimum %v", e.Field, e.Value, e.Min)
	default:
		return fmt.Sprintf("%s %v outside range [%v, %v]", e.Field, e.Value, e.Min, e.Max)
	}
}

// CheckRange returns an *InputRangeError when value is NaN or falls outside
// the inclusive [min, max] interval, nil otherwise.
func CheckRange(field string, value, min, max float64) error {
	if math.IsNaN(value) || value < min || value > max {
		return &InputRangeError{Field: field, Value: value, Min: min, Max: max}
	}
	return nil
}
