package stats

import (
	"math"
	"testing"
)

func TestMeasure(t *testing.T) {
	actual := []float64{10, 20, 30, 40}
	predicted := []float64{12, 18, 30, 44}

	acc := Measure(actual, predicted)

	if acc.N != 4 {
		t.Errorf("Expected N=4, got %d", acc.N)
	}
	if math.Abs(acc.MAE-2) > 1e-12 {
		t.Errorf("Expected MAE=2, got %g", acc.MAE)
	}
	wantSSE := 4.0 + 4 + 0 + 16
	if math.Abs(acc.SSE-wantSSE) > 1e-12 {
		t.Errorf("Expected SSE=%g, got %g", wantSSE, acc.SSE)
	}
	if math.Abs(acc.RMSE-math.Sqrt(wantSSE/4)) > 1e-12 {
		t.Errorf("Expected RMSE=%g, got %g", math.Sqrt(wantSSE/4), acc.RMSE)
	}
	wantMAPE := (2.0/10 + 2.0/20 + 0 + 4.0/40) / 4 * 100
	if math.Abs(acc.MAPE-wantMAPE) > 1e-12 {
		t.Errorf("Expected MAPE=%g, got %g", wantMAPE, acc.MAPE)
	}
}

func TestMeasureZeroActuals(t *testing.T) {
	// Zero actuals are excluded from the MAPE denominator only
	acc := Measure([]float64{0, 10}, []float64{1, 12})

	if acc.N != 2 {
		t.Errorf("Expected N=2, got %d", acc.N)
	}
	if math.Abs(acc.MAPE-20) > 1e-12 {
		t.Errorf("Expected MAPE=20, got %g", acc.MAPE)
	}
}

func TestMeasureLengthMismatch(t *testing.T) {
	acc := Measure([]float64{10, 20, 30}, []float64{10, 20})
	if acc.N != 2 {
		t.Errorf("Expected comparison over 2 observations, got %d", acc.N)
	}
}

func TestMeasureEmpty(t *testing.T) {
	acc := Measure(nil, nil)
	if acc.N != 0 || acc.MAE != 0 || acc.RMSE != 0 {
		t.Errorf("Expected zero accuracy for empty input, got %+v", acc)
	}
}
