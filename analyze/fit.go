/*package analyze fits growth models to the columns of a record table.

The population of a binary-split run doubles every step, and the time it
takes to build and summarize a population grows with it, so the natural
model for most columns is exponential growth, y = y0 * (1 + r)^x. Fits are
done by linear regression on log(y).
*/
package analyze

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/weathering"
)

// ErrFit is returned when a fit cannot be performed. Callers are expected
// to fall back to inspecting the data directly.
var ErrFit = errors.New("fit failed")

// Exponential is a fitted y = Y0 * (1 + R)^x.
type Exponential struct {
	Y0, R float64
	// RSquared is the coefficient of determination of the regression in
	// log space.
	RSquared float64
	N        int
}

// Eval returns the fitted value at x.
func (e *Exponential) Eval(x float64) float64 {
	return e.Y0 * math.Pow(1+e.R, x)
}

// EvalAll evaluates the fit at every point in xs. If out is given, results
// are written to it.
func (e *Exponential) EvalAll(xs []float64, out ...[]float64) []float64 {
	var ys []float64
	if len(out) > 0 {
		ys = out[0]
	} else {
		ys = make([]float64, len(xs))
	}
	for i, x := range xs {
		ys[i] = e.Eval(x)
	}
	return ys
}

// DoublingTime returns the change in x over which the fit doubles. It is
// +Inf for fits which do not grow.
func (e *Exponential) DoublingTime() float64 {
	if e.R <= 0 {
		return math.Inf(1)
	}
	return math.Ln2 / math.Log1p(e.R)
}

func (e *Exponential) String() string {
	return fmt.Sprintf(
		"y = %.4g * (1 + %.4g)^x, R^2 = %.4f (%d points)",
		e.Y0, e.R, e.RSquared, e.N,
	)
}

// FitExponential fits y = y0 * (1 + r)^x to the points (xs[i], ys[i]). All
// ys must be positive and there must be at least two distinct xs.
func FitExponential(xs, ys []float64) (*Exponential, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf(
			"%w: %d x values but %d y values", ErrFit, len(xs), len(ys),
		)
	} else if len(xs) < 2 {
		return nil, fmt.Errorf("%w: need at least two points, got %d",
			ErrFit, len(xs))
	}

	logYs := make([]float64, len(ys))
	for i, y := range ys {
		if !(y > 0) || math.IsInf(y, 0) {
			return nil, fmt.Errorf(
				"%w: point %d has y = %g, must be positive and finite",
				ErrFit, i, y,
			)
		}
		logYs[i] = math.Log(y)
	}

	alpha, beta := stat.LinearRegression(xs, logYs, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) ||
		math.IsInf(alpha, 0) || math.IsInf(beta, 0) {
		return nil, fmt.Errorf("%w: regression did not converge", ErrFit)
	}

	r2 := stat.RSquared(xs, logYs, nil, alpha, beta)
	if math.IsNaN(r2) {
		// Every y was identical: the fit is exact.
		r2 = 1
	}

	return &Exponential{
		Y0: math.Exp(alpha), R: math.Expm1(beta),
		RSquared: r2, N: len(xs),
	}, nil
}

// FitColumn fits an exponential to the named column of t against the step
// index.
func FitColumn(t weathering.Table, col string) (*Exponential, error) {
	ys, err := t.Column(col)
	if err != nil {
		return nil, err
	}
	return FitExponential(t.Steps(), ys)
}
