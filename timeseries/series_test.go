package timeseries

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	s := New([]float64{10, 20, 30})

	if s.Len() != 3 {
		t.Errorf("Expected length 3, got %d", s.Len())
	}
	if diff := cmp.Diff([]float64{0, 1, 2}, s.Times); diff != "" {
		t.Errorf("Implicit time axis mismatch (-want +got):\n%s", diff)
	}
}

func TestNewWithTimes(t *testing.T) {
	tests := []struct {
		name    string
		times   []float64
		values  []float64
		wantErr error
	}{
		{"valid", []float64{0, 1.5, 3}, []float64{1, 2, 0}, nil},
		{"length mismatch", []float64{0, 1}, []float64{1}, ErrLengthMismatch},
		{"duplicate time", []float64{0, 1, 1}, []float64{1, 2, 3}, ErrNotAscending},
		{"decreasing time", []float64{0, 2, 1}, []float64{1, 2, 3}, ErrNotAscending},
		{"NaN time", []float64{0, math.NaN(), 2}, []float64{1, 2, 3}, ErrNotAscending},
		{"infinite time", []float64{0, 1, math.Inf(1)}, []float64{1, 2, 3}, ErrNotAscending},
		{"negative value", []float64{0, 1, 2}, []float64{1, -2, 3}, ErrInvalidValue},
		{"NaN value", []float64{0, 1, 2}, []float64{1, math.NaN(), 3}, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewWithTimes(tt.times, tt.values)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if s.Len() != len(tt.values) {
					t.Errorf("Expected length %d, got %d", len(tt.values), s.Len())
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCumulativeRate(t *testing.T) {
	s := New([]float64{200, 300, 600, 900})

	cum := s.Cumulative()
	want := []float64{200, 500, 1100, 2000}
	if diff := cmp.Diff(want, cum.Values); diff != "" {
		t.Errorf("Cumulative mismatch (-want +got):\n%s", diff)
	}

	back := cum.Rate()
	if diff := cmp.Diff(s.Values, back.Values); diff != "" {
		t.Errorf("Rate should undo Cumulative (-want +got):\n%s", diff)
	}
}

func TestSumMeanMinMax(t *testing.T) {
	s := New([]float64{4, 1, 7, 8})

	if s.Sum() != 20 {
		t.Errorf("Expected sum 20, got %f", s.Sum())
	}
	if s.Mean() != 5 {
		t.Errorf("Expected mean 5, got %f", s.Mean())
	}
	if s.Min() != 1 {
		t.Errorf("Expected min 1, got %f", s.Min())
	}
	if s.Max() != 8 {
		t.Errorf("Expected max 8, got %f", s.Max())
	}
}

func TestSlice(t *testing.T) {
	s, _ := NewWithTimes([]float64{1, 2, 3, 4, 5}, []float64{10, 20, 30, 40, 50})

	sub := s.Slice(1, 3)
	if diff := cmp.Diff([]float64{2, 3}, sub.Times); diff != "" {
		t.Errorf("Slice times mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{20, 30}, sub.Values); diff != "" {
		t.Errorf("Slice values mismatch (-want +got):\n%s", diff)
	}

	// Out-of-range bounds are clamped, inverted ranges are empty
	if s.Slice(-5, 100).Len() != 5 {
		t.Errorf("Expected clamped slice of length 5")
	}
	if s.Slice(3, 2).Len() != 0 {
		t.Errorf("Expected empty slice")
	}

	// Mutating the slice must not touch the original
	sub.Values[0] = -1
	if s.Values[1] != 20 {
		t.Error("Slice should copy, not alias, the original values")
	}
}

func TestCopyIndependence(t *testing.T) {
	s := New([]float64{1, 2, 3})
	c := s.Copy()
	c.Values[0] = 99
	c.Times[0] = 99

	if s.Values[0] != 1 || s.Times[0] != 0 {
		t.Error("Copy should be independent of the original")
	}
}
