// Package decline detects file formats on their way to obsolescence.
package decline

import (
	"errors"
	"fmt"

	"github.com/driftwatch/gobass/bass"
	"github.com/driftwatch/gobass/config"
	"github.com/driftwatch/gobass/stats"
	"github.com/driftwatch/gobass/timeseries"
)

// Report holds the outcome of a decline analysis for one format.
type Report struct {
	Format     string          // series name
	Parameters bass.Parameters // fitted Bass coefficients
	PeakTime   float64         // absolute time of the fitted adoption peak
	Accuracy   *stats.Accuracy // hold-out forecast accuracy

	// Forecast holds predicted usage for DeclinePeriods periods past the
	// series end, starting at the last observed time.
	ForecastTimes []float64
	Forecast      []float64

	// Declining is true when the fitted adoption peak lies within the
	// observed range and every forecast period predicts lower usage than
	// the one before it.
	Declining bool
}

// Detector runs decline analysis with a fixed configuration snapshot.
// Detectors are stateless: each Analyze call splits, fits and evaluates
// independently, so one Detector may analyze many formats concurrently.
type Detector struct {
	src config.Source
}

// NewDetector creates a detector using the given per-source thresholds.
func NewDetector(src config.Source) *Detector {
	return &Detector{src: src}
}

// Analyze splits the series, fits a Bass model to the training prefix,
// evaluates the held-out suffix, and extrapolates the trailing periods to
// decide whether usage is declining. The series values are taken as
// per-period counts.
//
// Errors from splitting and fitting pass through unchanged
// (timeseries.ErrInsufficientData, timeseries.ErrInvalidSplit,
// bass.ErrConvergence, bass.ErrDegenerateFit); callers typically skip the
// format or retry with a larger iteration budget.
func (d *Detector) Analyze(series *timeseries.Series) (*Report, error) {
	train, test, err := timeseries.Split(series, d.src.MinimumTimePeriods, d.src.NumTestMeasurements)
	if err != nil {
		return nil, err
	}

	model, err := bass.Fit(train, bass.ModeRate, &bass.Config{
		CeilingMultiplier: d.src.CeilingMultiplier,
		MaxIterations:     d.src.MaxIterations,
	})
	if err != nil {
		return nil, err
	}

	n := series.Len()
	last := series.Times[n-1]
	step := series.Times[n-1] - series.Times[n-2]

	times := make([]float64, d.src.DeclinePeriods+1)
	for i := range times {
		times[i] = last + float64(i)*step
	}
	forecast := model.Predict(times)

	peak := model.Origin + bass.PeakTime(model.Params)
	declining := peak <= last
	for i := 1; i < len(forecast); i++ {
		if forecast[i] >= forecast[i-1] {
			declining = false
			break
		}
	}

	return &Report{
		Format:        series.Name,
		Parameters:    model.Params,
		PeakTime:      peak,
		Accuracy:      model.Evaluate(test),
		ForecastTimes: times,
		Forecast:      forecast,
		Declining:     declining,
	}, nil
}

// ErrShortSeries indicates too few values for a smoothed trend estimate.
var ErrShortSeries = errors.New("too few values for a trend estimate")

// SmoothedTrend estimates the average per-period change over the trailing
// part of a raw count series, without fitting a model. The values are
// smoothed with a centered 3-point moving average, trailing all-zero
// windows are dropped (formats no longer counted at all), and the mean of
// successive differences over the last trailing windows is returned. A
// negative result indicates decline.
//
// This is the cheap pre-filter used on crawl statistics to select
// candidate formats before the full diffusion fit.
func SmoothedTrend(values []float64, trailing int) (float64, error) {
	if trailing < 2 {
		return 0, fmt.Errorf("%w: trailing must be at least 2", ErrShortSeries)
	}
	if len(values) < 3 {
		return 0, fmt.Errorf("%w: have %d values, need at least 3", ErrShortSeries, len(values))
	}

	smoothed := make([]float64, 0, len(values)-2)
	for i := 0; i+3 <= len(values); i++ {
		smoothed = append(smoothed, (values[i]+values[i+1]+values[i+2])/3)
	}

	for len(smoothed) > 0 && smoothed[len(smoothed)-1] == 0 {
		smoothed = smoothed[:len(smoothed)-1]
	}
	if len(smoothed) < 2 {
		return 0, fmt.Errorf("%w: no usage left after dropping trailing zeros", ErrShortSeries)
	}

	if len(smoothed) > trailing {
		smoothed = smoothed[len(smoothed)-trailing:]
	}

	sum := 0.0
	for i := 1; i < len(smoothed); i++ {
		sum += smoothed[i] - smoothed[i-1]
	}
	return sum / float64(len(smoothed)-1), nil
}
