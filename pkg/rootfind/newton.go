// Package rootfind provides the Newton-Raphson iteration used by the
// psychrometric conversions that have no closed-form inverse.
package rootfind

import (
	"errors"
	"fmt"
	"math"
)

// ErrConvergence is the sentinel wrapped by every solver failure, whether the
// iteration budget ran out or an iterate went non-finite. Callers match it
// with errors.Is.
var ErrConvergence = errors.New("newton-raphson failed to converge")

// Problem describes one scalar root-finding problem. F and Deriv are
// evaluated at every iterate; both must be cheap and side-effect free.
type Problem struct {
	F             func(x float64) float64
	Deriv         func(x float64) float64
	Guess         float64
	Tolerance     float64 // absolute tolerance on the step size
	MaxIterations int
}

// Newton iterates x' = x − F(x)/Deriv(x) from Guess until the step falls
// within Tolerance. Exhausting MaxIterations or producing a non-finite
// iterate is a hard failure; the result is never silently accepted.
func Newton(p Problem) (float64, error) {
	if p.Tolerance <= 0 {
		return 0, fmt.Errorf("%w: tolerance %g must be positive", ErrConvergence, p.Tolerance)
	}
	if p.MaxIterations <= 0 {
		return 0, fmt.Errorf("%w: iteration budget %d must be positive", ErrConvergence, p.MaxIterations)
	}

	x := p.Guess
	for i := 0; i < p.MaxIterations; i++ {
		fx := p.F(x)
		dfx := p.Deriv(x)
		next := x - fx/dfx
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return 0, fmt.Errorf("%w: non-finite iterate after %d iterations (x=%g, f=%g, f'=%g)",
				ErrConvergence, i+1, x, fx, dfx)
		}
		if math.Abs(next-x) <= p.Tolerance {
			return next, nil
		}
		x = next
	}
	return 0, fmt.Errorf("%w: iteration budget %d exhausted (last iterate %g)",
		ErrConvergence, p.MaxIterations, x)
}
