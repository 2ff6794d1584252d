package anima

import (
	"github.com/tanema/gween/ease"
)

// Curve maps a time fraction x in [0, 1] to an eased progress value.
// Progress may leave [0, 1] for curves that overshoot.
type Curve interface {
	Solve(x float64) float64
}

// CurveFunc adapts a plain function to the Curve interface.
type CurveFunc func(x float64) float64

// Solve calls f.
func (f CurveFunc) Solve(x float64) float64 { return f(x) }

// Standard curve presets, using the conventional CSS control points.
var (
	Linear    Curve = CurveFunc(func(x float64) float64 { return x })
	EaseIn    Curve = CubicBezier{0.42, 0, 1, 1}
	EaseOut   Curve = CubicBezier{0, 0, 0.58, 1}
	EaseInOut Curve = CubicBezier{0.42, 0, 0.58, 1}
)

// FromTween adapts a gween easing function (the full catalogue in
// [github.com/tanema/gween/ease]: sine, expo, elastic, bounce, and friends)
// to the Curve interface.
func FromTween(fn ease.TweenFunc) Curve {
	return CurveFunc(func(x float64) float64 {
		return float64(fn(float32(x), 0, 1, 1))
	})
}

// Newton-Raphson solve parameters for CubicBezier.
const (
	bezierNewtonIterations = 8
	bezierEpsilon          = 1e-7
)

// CubicBezier is a timing curve through (0,0) and (1,1) with control points
// (X1, Y1) and (X2, Y2). Solving y for a given time fraction x uses up to
// eight Newton-Raphson iterations on the x polynomial, falling back to
// bisection when the derivative degenerates or Newton fails to converge.
type CubicBezier struct {
	X1, Y1, X2, Y2 float64
}

// Solve returns the curve's y value at time fraction x.
func (b CubicBezier) Solve(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return b.sampleY(b.solveT(x))
}

// polynomial coefficients for one axis: c(t) = ((a·t + b)·t + c)·t.
func bezierCoefficients(p1, p2 float64) (a, bc, c float64) {
	c = 3 * p1
	bc = 3*(p2-p1) - c
	a = 1 - c - bc
	return a, bc, c
}

func (b CubicBezier) sampleX(t float64) float64 {
	a, bb, c := bezierCoefficients(b.X1, b.X2)
	return ((a*t+bb)*t + c) * t
}

func (b CubicBezier) sampleY(t float64) float64 {
	a, bb, c := bezierCoefficients(b.Y1, b.Y2)
	return ((a*t+bb)*t + c) * t
}

func (b CubicBezier) sampleDerivativeX(t float64) float64 {
	a, bb, c := bezierCoefficients(b.X1, b.X2)
	return (3*a*t+2*bb)*t + c
}

// solveT finds the parameter t at which the curve's x component equals x.
func (b CubicBezier) solveT(x float64) float64 {
	// Newton-Raphson with the target fraction as the initial guess.
	t := x
	for i := 0; i < bezierNewtonIterations; i++ {
		diff := b.sampleX(t) - x
		if absf(diff) < bezierEpsilon {
			return t
		}
		d := b.sampleDerivativeX(t)
		if absf(d) < 1e-6 {
			break
		}
		t -= diff / d
	}

	// Bisection fallback. Monotonic x (control points inside [0,1]) makes
	// this unconditionally convergent.
	lo, hi := 0.0, 1.0
	t = x
	for hi-lo > bezierEpsilon {
		if b.sampleX(t) < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return t
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
