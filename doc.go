// Package gobass provides Bass diffusion modeling for file-format usage series.
//
// GoBass fits the three-parameter Bass diffusion model to historical usage
// counts of digital file formats (from web crawls, broadcast archives, and
// data repositories) and uses the fitted curve to interpolate or extrapolate
// usage at arbitrary points in time. Its primary application is detecting
// when a format's adoption has passed its peak and is declining toward
// obsolescence.
//
// # Quick Start
//
// Fit a Bass model to a usage series and forecast past its end:
//
//	series := timeseries.New(counts)
//	train, test, err := timeseries.Split(series, 8, 2)
//	model, err := bass.Fit(train, bass.ModeRate, nil)
//	forecast := model.Predict([]float64{10, 11, 12})
//	acc := model.Evaluate(test)
//
// Run the full decline analysis the way the demo does:
//
//	det := decline.NewDetector(config.DefaultSource())
//	report, err := det.Analyze(series)
//	if report.Declining { ... }
//
// # Packages
//
// The library is organized into the following packages:
//
//   - timeseries: usage series data structures, validation, train/test split
//   - bass: the Bass diffusion model (fit, predict, evaluate)
//   - optimize: nonlinear least-squares minimization (Levenberg-Marquardt)
//   - stats: forecast accuracy metrics
//   - periodic: aggregation of monthly counts into quarterly series
//   - decline: per-format decline detection built on the model
//   - config: per-data-source analysis configuration
//
// # References
//
//   - Bass, F.M. (1969). A New Product Growth for Model Consumer Durables
//   - Mahajan, V., Muller, E., & Bass, F.M. (1990). New Product Diffusion
//     Models in Marketing: A Review and Directions for Research
package gobass
