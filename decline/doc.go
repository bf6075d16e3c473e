// Package decline decides whether a file format's usage is declining.
//
// The decision pipeline mirrors how archives run it: validate and split
// the usage series, fit a Bass diffusion model on the training prefix,
// evaluate the held-out suffix, then extrapolate a few periods past the
// series end and check for a sustained drop behind the fitted adoption
// peak.
//
//	det := decline.NewDetector(cfg.Source("kb"))
//	report, err := det.Analyze(series)
//	if err != nil {
//	    // skip this format, or retry with a larger iteration budget
//	}
//	if report.Declining { ... }
//
// The accuracy statistics in the report are informational: whether a fit
// is trustworthy enough to act on remains the operator's call.
//
// SmoothedTrend provides the model-free pre-filter used on bulk crawl
// statistics to pick candidate formats worth a full fit.
package decline
