// Package timeseries provides usage series data structures and operations.
package timeseries

import (
	"errors"
	"fmt"
	"math"
)

// Validation errors returned by the series constructors.
var (
	ErrLengthMismatch = errors.New("times and values must have the same length")
	ErrNotAscending   = errors.New("times must be finite and strictly increasing")
	ErrInvalidValue   = errors.New("values must be finite and non-negative")
)

// Series represents a usage series: per-period counts (or running totals)
// on a strictly increasing time axis. Times are scalar coordinates, e.g.
// elapsed quarters since the first measured period.
type Series struct {
	Times  []float64
	Values []float64
	Name   string
}

// New creates a series from values on an implicit 0..n-1 time axis.
func New(values []float64) *Series {
	times := make([]float64, len(values))
	for i := range times {
		times[i] = float64(i)
	}
	return &Series{Times: times, Values: values}
}

// NewWithTimes creates a series with explicit time coordinates. Times must
// be finite and strictly increasing; values must be finite and non-negative.
func NewWithTimes(times, values []float64) (*Series, error) {
	if len(times) != len(values) {
		return nil, ErrLengthMismatch
	}
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("%w: times[%d]=%v", ErrNotAscending, i, t)
		}
		if i > 0 && t <= times[i-1] {
			return nil, fmt.Errorf("%w: times[%d]=%v after %v", ErrNotAscending, i, t, times[i-1])
		}
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("%w: values[%d]=%v", ErrInvalidValue, i, v)
		}
	}
	return &Series{Times: times, Values: values}, nil
}

// Len returns the number of observations in the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Sum returns the sum of all values.
func (s *Series) Sum() float64 {
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum
}

// Mean calculates the arithmetic mean of the values.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.Sum() / float64(len(s.Values))
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	min := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	max := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Cumulative returns a new series whose values are the running totals of
// this series. Used to view per-period counts as cumulative adoption.
func (s *Series) Cumulative() *Series {
	values := make([]float64, len(s.Values))
	sum := 0.0
	for i, v := range s.Values {
		sum += v
		values[i] = sum
	}
	times := make([]float64, len(s.Times))
	copy(times, s.Times)
	return &Series{Times: times, Values: values, Name: s.Name + "_cumulative"}
}

// Rate returns a new series of per-period increments, undoing Cumulative.
// The first increment is taken from zero.
func (s *Series) Rate() *Series {
	values := make([]float64, len(s.Values))
	prev := 0.0
	for i, v := range s.Values {
		values[i] = v - prev
		prev = v
	}
	times := make([]float64, len(s.Times))
	copy(times, s.Times)
	return &Series{Times: times, Values: values, Name: s.Name + "_rate"}
}

// Slice returns a copy of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Name: s.Name}
	}

	times := make([]float64, end-start)
	copy(times, s.Times[start:end])
	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	return &Series{Times: times, Values: values, Name: s.Name}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	times := make([]float64, len(s.Times))
	copy(times, s.Times)
	values := make([]float64, len(s.Values))
	copy(values, s.Values)
	return &Series{Times: times, Values: values, Name: s.Name}
}
