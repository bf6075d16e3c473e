// Package timeseries provides usage series data structures and utilities.
//
// This package includes the Series type for representing per-period usage
// counts of a file format, along with validation, loading, transformation,
// and train/test splitting.
//
// # Creating a Series
//
// Create a series from counts on an implicit 0..n-1 time axis:
//
//	counts := []float64{200, 300, 600, 900, 800, 500}
//	series := timeseries.New(counts)
//
// Or with explicit time coordinates, which are validated to be finite and
// strictly increasing:
//
//	series, err := timeseries.NewWithTimes(times, counts)
//
// # Train/Test Split
//
// Partition a series into a training prefix and a held-out suffix used to
// assess forecast accuracy:
//
//	train, test, err := timeseries.Split(series, 8, 2)
//
// Split rejects series shorter than the minimum length with
// ErrInsufficientData and malformed partitions with ErrInvalidSplit.
//
// # Transformations
//
//	cum := series.Cumulative() // running totals
//	rate := cum.Rate()         // per-period increments
//	subset := series.Slice(10, 50)
//
// # Loading from CSV
//
//	series, err := timeseries.LoadCSV("pdf.csv", nil)
package timeseries
