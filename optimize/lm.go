// Package optimize implements nonlinear least-squares minimization.
package optimize

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidProblem indicates a malformed minimization problem.
	ErrInvalidProblem = errors.New("invalid minimization problem")

	// ErrSingularSystem indicates the damped normal equations could not
	// be solved at the current point, even at maximum damping.
	ErrSingularSystem = errors.New("singular normal equations")
)

// Problem describes a bound-constrained least-squares problem: minimize
// the sum of squared residuals over x, subject to Lower <= x <= Upper.
type Problem struct {
	// Residuals evaluates the residual vector at x. The returned length
	// must be the same on every call and at least len(X0).
	Residuals func(x []float64) []float64

	X0    []float64 // starting estimate
	Lower []float64 // optional lower bounds, same length as X0
	Upper []float64 // optional upper bounds, same length as X0
}

// Result holds the outcome of a minimization.
type Result struct {
	X          []float64 // best parameters found
	SSE        float64   // sum of squared residuals at X
	Iterations int
	Converged  bool // tolerances satisfied within the iteration budget
}

// Method is a pluggable nonlinear least-squares solver. Implementations
// must report failure to converge through Result.Converged rather than an
// error; errors are reserved for malformed or numerically unsolvable
// problems.
type Method interface {
	Minimize(p Problem) (*Result, error)
}

// LevenbergMarquardt minimizes a least-squares problem by iterating damped
// Gauss-Newton steps, (J'J + lambda*diag(J'J)) dx = J'r, with a finite
// difference Jacobian. Parameters are clamped to the problem bounds after
// every step, and convergence at a bound-constrained minimum is recognized
// by projecting the gradient onto the feasible directions.
type LevenbergMarquardt struct {
	MaxIterations  int     // hard iteration ceiling (default: 1000)
	Tolerance      float64 // relative SSE improvement tolerance (default: 1e-8)
	GradTolerance  float64 // projected gradient norm tolerance (default: 1e-8)
	StepTolerance  float64 // parameter step norm tolerance (default: 1e-12)
	InitialDamping float64 // starting lambda (default: 1e-3)
}

const (
	defaultMaxIterations  = 1000
	defaultTolerance      = 1e-8
	defaultGradTolerance  = 1e-8
	defaultStepTolerance  = 1e-12
	defaultInitialDamping = 1e-3

	maxDamping = 1e12
)

// Minimize runs the Levenberg-Marquardt iteration on p.
func (lm *LevenbergMarquardt) Minimize(p Problem) (*Result, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	maxIter := lm.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}
	tol := lm.Tolerance
	if tol <= 0 {
		tol = defaultTolerance
	}
	gradTol := lm.GradTolerance
	if gradTol <= 0 {
		gradTol = defaultGradTolerance
	}
	stepTol := lm.StepTolerance
	if stepTol <= 0 {
		stepTol = defaultStepTolerance
	}
	lambda := lm.InitialDamping
	if lambda <= 0 {
		lambda = defaultInitialDamping
	}

	n := len(p.X0)
	x := make([]float64, n)
	copy(x, p.X0)
	clamp(x, p.Lower, p.Upper)

	r := p.Residuals(x)
	m := len(r)
	if m < n {
		return nil, fmt.Errorf("%w: %d residuals for %d parameters", ErrInvalidProblem, m, n)
	}
	sse := floats.Dot(r, r)

	result := &Result{X: x, SSE: sse}

	for iter := 1; iter <= maxIter; iter++ {
		result.Iterations = iter

		jac := jacobian(p, x, r)
		var jtj mat.Dense
		jtj.Mul(jac.T(), jac)
		var grad mat.VecDense
		grad.MulVec(jac.T(), mat.NewVecDense(m, r))

		// First-order optimality: with the infeasible directions at active
		// bounds projected out, a vanishing gradient means a (possibly
		// bound-constrained) minimum.
		if projGradNorm(&grad, x, p.Lower, p.Upper) <= gradTol*(1+sse) {
			result.Converged = true
			return result, nil
		}

		// Increase damping until a step reduces the SSE or damping
		// saturates.
		improved := false
		solved := false
		for lambda <= maxDamping {
			step, err := solveStep(&jtj, &grad, lambda)
			if err != nil {
				lambda *= 10
				continue
			}
			solved = true

			cand := make([]float64, n)
			for j := range cand {
				cand[j] = x[j] - step[j]
			}
			clamp(cand, p.Lower, p.Upper)

			rCand := p.Residuals(cand)
			sseCand := floats.Dot(rCand, rCand)
			if math.IsNaN(sseCand) || sseCand >= sse {
				lambda *= 10
				continue
			}

			stepNorm := 0.0
			for j := range cand {
				d := cand[j] - x[j]
				stepNorm += d * d
			}
			stepNorm = math.Sqrt(stepNorm)

			delta := sse - sseCand
			x, r, sse = cand, rCand, sseCand
			lambda = math.Max(lambda/10, 1e-12)
			improved = true

			result.X, result.SSE = x, sse
			if delta <= tol*(sse+tol) || stepNorm <= stepTol {
				result.Converged = true
				return result, nil
			}
			break
		}

		if !improved {
			if !solved {
				// The normal equations never solved, even at maximum
				// damping: the Jacobian is degenerate at this point.
				return result, ErrSingularSystem
			}
			// No step reduces the SSE any further; the iteration has
			// stalled at a (possibly bound-constrained) minimum.
			result.Converged = true
			return result, nil
		}
	}

	return result, nil
}

// projGradNorm returns the infinity norm of the gradient with the
// components pushing x past an active bound zeroed out; only feasible
// descent directions count toward optimality.
func projGradNorm(grad *mat.VecDense, x, lower, upper []float64) float64 {
	norm := 0.0
	for i := range x {
		g := grad.AtVec(i)
		if len(lower) == len(x) && x[i] <= lower[i] && g > 0 {
			continue
		}
		if len(upper) == len(x) && x[i] >= upper[i] && g < 0 {
			continue
		}
		if a := math.Abs(g); a > norm {
			norm = a
		}
	}
	return norm
}

// solveStep solves (J'J + lambda*diag(J'J)) dx = J'r for dx.
func solveStep(jtj *mat.Dense, grad *mat.VecDense, lambda float64) ([]float64, error) {
	n, _ := jtj.Dims()
	damped := mat.NewDense(n, n, nil)
	damped.Copy(jtj)
	for i := 0; i < n; i++ {
		d := jtj.At(i, i)
		if d <= 0 {
			d = 1
		}
		damped.Set(i, i, jtj.At(i, i)+lambda*d)
	}

	var step mat.VecDense
	if err := step.SolveVec(damped, grad); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = step.AtVec(i)
	}
	for _, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrSingularSystem
		}
	}
	return out, nil
}

// jacobian approximates the residual Jacobian at x by forward differences,
// reusing the residuals r already evaluated at x.
func jacobian(p Problem, x, r []float64) *mat.Dense {
	m, n := len(r), len(x)
	jac := mat.NewDense(m, n, nil)

	xh := make([]float64, n)
	for j := 0; j < n; j++ {
		h := math.Sqrt(machEps) * math.Max(math.Abs(x[j]), 1)
		copy(xh, x)
		xh[j] += h
		if len(p.Upper) == n && xh[j] > p.Upper[j] {
			xh[j] = x[j] - h
			h = -h
		}
		rh := p.Residuals(xh)
		for i := 0; i < m; i++ {
			jac.Set(i, j, (rh[i]-r[i])/h)
		}
	}
	return jac
}

const machEps = 2.220446049250313e-16

func validate(p Problem) error {
	if p.Residuals == nil {
		return fmt.Errorf("%w: nil residual function", ErrInvalidProblem)
	}
	if len(p.X0) == 0 {
		return fmt.Errorf("%w: empty starting estimate", ErrInvalidProblem)
	}
	if len(p.Lower) != 0 && len(p.Lower) != len(p.X0) {
		return fmt.Errorf("%w: lower bounds length %d != %d", ErrInvalidProblem, len(p.Lower), len(p.X0))
	}
	if len(p.Upper) != 0 && len(p.Upper) != len(p.X0) {
		return fmt.Errorf("%w: upper bounds length %d != %d", ErrInvalidProblem, len(p.Upper), len(p.X0))
	}
	return nil
}

func clamp(x, lower, upper []float64) {
	for i := range x {
		if len(lower) == len(x) && x[i] < lower[i] {
			x[i] = lower[i]
		}
		if len(upper) == len(x) && x[i] > upper[i] {
			x[i] = upper[i]
		}
	}
}
