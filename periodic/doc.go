// Package periodic aggregates raw monthly usage counts into gapless
// quarterly or yearly series.
//
// Archive and repository catalogs report per-format counts keyed by
// "YYYY-MM" month. Model fitting wants a regular, gapless time axis, so
// the aggregators zero-fill periods without observations and drop the
// current, still-incomplete quarter:
//
//	counts := periodic.Quarterly(monthly, time.Now())
//	labels, series := periodic.ToSeries(counts, "mxf")
//
// Malformed and future-dated keys are skipped with a log warning rather
// than aborting the aggregation.
package periodic
