// Package bass implements the Bass diffusion model for adoption and
// decline of file formats.
//
// The Bass model (Bass, 1969) describes technology adoption driven by an
// innovation coefficient p, an imitation coefficient q, and a market
// potential m. The adoption rate at time t is
//
//	f(t) = m * [(p+q)^2 / p] * exp(-(p+q)t) / [1 + (q/p)*exp(-(p+q)t)]^2
//
// and cumulative adoption is
//
//	F(t) = m * [1 - exp(-(p+q)t)] / [1 + (q/p)*exp(-(p+q)t)]
//
// With q > p the rate rises to a peak at t = ln(q/p)/(p+q) and declines
// toward zero afterwards, which is what makes the model usable for
// spotting formats on their way out.
//
// # Basic Usage
//
// Fit a model to per-period usage counts and extrapolate:
//
//	model, err := bass.Fit(train, bass.ModeRate, nil)
//	if err != nil {
//	    // timeseries.ErrInsufficientData, bass.ErrConvergence,
//	    // or bass.ErrDegenerateFit
//	}
//	future := model.Predict([]float64{20, 21, 22})
//	acc := model.Evaluate(test)
//
// Fitting is nonlinear least squares over (p, q, m) with bounded
// parameters and a heuristic initial guess; see Config for the knobs. The
// model is known to be sensitive to noise: non-convergence and
// bound-riding solutions are reported as errors rather than returned as
// silent, degenerate fits. A successful fit that is merely poor is only
// detectable through Evaluate.
//
// Each call to Fit returns a fresh immutable Model. Fits share no state,
// so models for different formats may be fitted concurrently.
package bass
