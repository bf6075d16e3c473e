// Package bass implements the Bass diffusion model.
package bass

import (
	"errors"
	"fmt"
	"math"

	"github.com/driftwatch/gobass/optimize"
	"github.com/driftwatch/gobass/stats"
	"github.com/driftwatch/gobass/timeseries"
)

// Mode selects how observed values are interpreted during fitting and
// prediction: per-period adoption counts or running totals.
type Mode int

const (
	// ModeRate fits the adoption rate curve f(t) to per-period counts.
	ModeRate Mode = iota
	// ModeCumulative fits the cumulative curve F(t) to running totals.
	ModeCumulative
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeRate:
		return "rate"
	case ModeCumulative:
		return "cumulative"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Parameters holds the three Bass coefficients.
type Parameters struct {
	P float64 // innovation coefficient, > 0
	Q float64 // imitation coefficient, >= 0
	M float64 // market potential, > 0
}

// Rate evaluates the Bass adoption rate
//
//	f(t) = m * [(p+q)^2 / p] * exp(-(p+q)t) / [1 + (q/p)*exp(-(p+q)t)]^2
//
// at relative time t.
func Rate(p Parameters, t float64) float64 {
	c := math.Exp(-(p.P + p.Q) * t)
	den := 1 + (p.Q/p.P)*c
	return p.M * ((p.P + p.Q) * (p.P + p.Q) / p.P) * c / (den * den)
}

// Cumulative evaluates the Bass cumulative adoption
//
//	F(t) = m * [1 - exp(-(p+q)t)] / [1 + (q/p)*exp(-(p+q)t)]
//
// at relative time t.
func Cumulative(p Parameters, t float64) float64 {
	c := math.Exp(-(p.P + p.Q) * t)
	return p.M * (1 - c) / (1 + (p.Q/p.P)*c)
}

// PeakTime returns the time of maximum adoption rate relative to the fit
// origin, ln(q/p)/(p+q). Negative when p > q: the rate only declines.
func PeakTime(p Parameters) float64 {
	return math.Log(p.Q/p.P) / (p.P + p.Q)
}

// Fit errors.
var (
	// ErrConvergence indicates the optimizer exhausted its iteration
	// budget, or hit a singular Jacobian, without reaching tolerance.
	ErrConvergence = errors.New("bass fit did not converge")

	// ErrDegenerateFit indicates the optimizer converged onto a
	// parameter bound, signaling an unidentifiable or divergent fit.
	ErrDegenerateFit = errors.New("bass fit is degenerate")
)

// Parameter bounds keeping the optimizer in a numerically well-posed
// region. The market potential is additionally bounded above by a
// configurable multiple of the observed mass to keep it from diverging on
// monotone-increasing data.
const (
	minP = 1e-6
	maxP = 1.0
	maxQ = 5.0
)

// Config holds fitting configuration. A nil Config means DefaultConfig.
// Each Fit call takes its own snapshot; fits never share state.
type Config struct {
	InitialP          float64         // starting innovation coefficient (default: 0.03)
	InitialQ          float64         // starting imitation coefficient (default: 0.38)
	CeilingMultiplier float64         // upper bound for m as a multiple of the observed mass (default: 10)
	MaxIterations     int             // optimizer iteration ceiling (default: 2000)
	Tolerance         float64         // optimizer convergence tolerance (0 = solver default)
	Method            optimize.Method // nonlinear least-squares solver (nil = Levenberg-Marquardt)
}

// DefaultConfig returns the default fitting configuration. The starting
// coefficients follow the classic Bass adoption estimates: imitation
// dominating innovation.
func DefaultConfig() *Config {
	return &Config{
		InitialP:          0.03,
		InitialQ:          0.38,
		CeilingMultiplier: 10,
		MaxIterations:     2000,
	}
}

// Model is a fitted Bass diffusion model. It is immutable: prediction and
// evaluation never modify it, and refitting produces a new independent
// Model rather than mutating an existing one.
type Model struct {
	Params Parameters
	Mode   Mode
	Origin float64 // time of the first training observation

	SSE        float64 // sum of squared residuals at the fit
	Iterations int     // optimizer iterations spent
}

// Fit estimates Bass parameters for the series by nonlinear least squares
// and returns a fresh Model. Times are re-based so the first observation
// sits at t=0; the original offset is recorded on the Model so Predict
// accepts absolute time coordinates.
//
// Fit returns timeseries.ErrInsufficientData for series too short to
// determine three parameters, ErrConvergence when the optimizer fails
// within its budget, and ErrDegenerateFit when the solution lands on a
// parameter bound or the series carries no mass.
func Fit(series *timeseries.Series, mode Mode, cfg *Config) (*Model, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	n := series.Len()
	if n < 4 {
		return nil, fmt.Errorf("%w: %d observations cannot determine 3 parameters", timeseries.ErrInsufficientData, n)
	}

	origin := series.Times[0]
	t := make([]float64, n)
	for i, tt := range series.Times {
		t[i] = tt - origin
	}
	y := make([]float64, n)
	copy(y, series.Values)

	// Observed adoption mass: the apparent (not actual) ceiling.
	var base float64
	switch mode {
	case ModeRate:
		base = series.Sum()
	case ModeCumulative:
		base = series.Max()
	default:
		return nil, fmt.Errorf("unknown mode %v", mode)
	}
	if base <= 0 {
		return nil, fmt.Errorf("%w: series has no adoption mass", ErrDegenerateFit)
	}

	ceiling := cfg.CeilingMultiplier
	if ceiling <= 1 {
		ceiling = DefaultConfig().CeilingMultiplier
	}
	lower := []float64{minP, 0, base}
	upper := []float64{maxP, maxQ, ceiling * base}

	// Start the ceiling above the data's apparent mass: the true market
	// potential is unobserved and at least as large.
	x0 := []float64{cfg.InitialP, cfg.InitialQ, 2 * base}
	if x0[0] <= 0 {
		x0[0] = DefaultConfig().InitialP
	}
	if x0[1] <= 0 {
		x0[1] = DefaultConfig().InitialQ
	}

	curve := Rate
	if mode == ModeCumulative {
		curve = Cumulative
	}
	residuals := func(x []float64) []float64 {
		p := Parameters{P: x[0], Q: x[1], M: x[2]}
		out := make([]float64, len(t))
		for i := range t {
			out[i] = curve(p, t[i]) - y[i]
		}
		return out
	}

	method := cfg.Method
	if method == nil {
		method = &optimize.LevenbergMarquardt{
			MaxIterations: cfg.MaxIterations,
			Tolerance:     cfg.Tolerance,
		}
	}

	res, err := method.Minimize(optimize.Problem{
		Residuals: residuals,
		X0:        x0,
		Lower:     lower,
		Upper:     upper,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConvergence, err)
	}
	if !res.Converged {
		return nil, fmt.Errorf("%w: tolerance not reached after %d iterations", ErrConvergence, res.Iterations)
	}

	params := Parameters{P: res.X[0], Q: res.X[1], M: res.X[2]}
	if reason := degenerate(params, upper[2]); reason != "" {
		return nil, fmt.Errorf("%w: %s", ErrDegenerateFit, reason)
	}

	return &Model{
		Params:     params,
		Mode:       mode,
		Origin:     origin,
		SSE:        res.SSE,
		Iterations: res.Iterations,
	}, nil
}

// degenerate reports why a converged solution violates the model's domain
// assumptions, or "" if it does not. A market potential at its lower bound
// is legitimate: it means the observed series already covers the full
// lifecycle.
func degenerate(p Parameters, mCeiling float64) string {
	const boundTol = 1e-3 // relative distance to a bound

	if p.P <= minP*(1+boundTol) {
		return fmt.Sprintf("innovation coefficient p=%g stuck at lower bound", p.P)
	}
	if p.P >= maxP*(1-boundTol) {
		return fmt.Sprintf("innovation coefficient p=%g stuck at upper bound", p.P)
	}
	if p.Q >= maxQ*(1-boundTol) {
		return fmt.Sprintf("imitation coefficient q=%g stuck at upper bound", p.Q)
	}
	if p.Q <= boundTol*maxQ {
		return fmt.Sprintf("imitation coefficient q=%g collapsed to zero", p.Q)
	}
	if p.M >= mCeiling*(1-boundTol) {
		return fmt.Sprintf("market potential m=%g stuck at ceiling %g", p.M, mCeiling)
	}
	return ""
}

// Predict evaluates the fitted curve at the given absolute time
// coordinates and returns one value per input, preserving order. Query
// times may lie before, within, or beyond the training range;
// interpolation and extrapolation are both expected uses. Predict is pure
// and deterministic, and may be called any number of times.
func (m *Model) Predict(times []float64) []float64 {
	curve := Rate
	if m.Mode == ModeCumulative {
		curve = Cumulative
	}
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = curve(m.Params, t-m.Origin)
	}
	return out
}

// Evaluate computes residual statistics between the model's predictions
// and a held-out series. Whether the resulting accuracy is good enough to
// trust a decline signal is the caller's policy.
func (m *Model) Evaluate(test *timeseries.Series) *stats.Accuracy {
	return stats.Measure(test.Values, m.Predict(test.Times))
}
