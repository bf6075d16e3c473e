// Package optimize implements nonlinear least-squares minimization for
// curve fitting.
//
// The solver is exposed behind the Method interface so that an alternative
// implementation (a trust-region method, say) can be swapped in without
// changing the callers' contract:
//
//	type Method interface {
//	    Minimize(p Problem) (*Result, error)
//	}
//
// The default implementation is a damped Gauss-Newton iteration
// (Levenberg-Marquardt) with a forward-difference Jacobian and box
// constraints enforced by clamping:
//
//	lm := &optimize.LevenbergMarquardt{MaxIterations: 500}
//	res, err := lm.Minimize(optimize.Problem{
//	    Residuals: residualFn,
//	    X0:        []float64{0.03, 0.38, 2000},
//	    Lower:     []float64{1e-6, 0, 1000},
//	    Upper:     []float64{1, 5, 10000},
//	})
//
// Failure to converge within the iteration budget is reported through
// Result.Converged, not an error; errors are reserved for malformed
// problems and singular normal equations.
package optimize
