// Package stats provides forecast accuracy metrics.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Accuracy holds residual statistics between observed and predicted values.
// The accept/reject threshold for a trustworthy fit is left to the caller;
// this package only supplies the raw statistics.
type Accuracy struct {
	MAE  float64 // mean absolute error
	RMSE float64 // root mean squared error
	MAPE float64 // mean absolute percentage error, in percent
	SSE  float64 // sum of squared errors
	N    int     // number of compared observations
}

// Measure calculates accuracy metrics between actual and predicted values.
// Extra trailing values on either side are ignored. Observations with a
// zero actual value are excluded from the MAPE denominator.
func Measure(actual, predicted []float64) *Accuracy {
	n := len(actual)
	if len(predicted) < n {
		n = len(predicted)
	}
	if n == 0 {
		return &Accuracy{}
	}

	resid := make([]float64, n)
	floats.SubTo(resid, actual[:n], predicted[:n])

	acc := &Accuracy{N: n}
	mapeCount := 0
	for i, d := range resid {
		acc.MAE += math.Abs(d)
		if actual[i] != 0 {
			acc.MAPE += math.Abs(d) / math.Abs(actual[i]) * 100
			mapeCount++
		}
	}
	acc.SSE = floats.Dot(resid, resid)
	acc.MAE /= float64(n)
	acc.RMSE = math.Sqrt(acc.SSE / float64(n))
	if mapeCount > 0 {
		acc.MAPE /= float64(mapeCount)
	}
	return acc
}
