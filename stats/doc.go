// Package stats provides forecast accuracy metrics for held-out
// evaluation.
//
// Compare held-out observations against model predictions:
//
//	acc := stats.Measure(test.Values, predicted)
//	fmt.Printf("RMSE=%.2f MAE=%.2f MAPE=%.1f%%\n", acc.RMSE, acc.MAE, acc.MAPE)
//
// The statistics are raw; whether a fit is accurate enough to act on is a
// policy decision for the caller.
package stats
