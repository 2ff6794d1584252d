package anima

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// settlingEpsilon is the band around the target within which a spring's unit
// step response is considered settled.
const settlingEpsilon = 1e-3

// Spring describes a damped harmonic oscillator in its perceptual
// parameterization: Response is the duration of one oscillation period in
// seconds (natural frequency ω = 2π/Response) and DampingRatio is ζ:
// under-damped below 1, critically damped at 1, over-damped above.
//
// A Response of 0 is the non-animated spring: the value jumps to the target
// on the first tick.
type Spring struct {
	DampingRatio float64
	Response     float64
}

// NewSpring returns a spring with the given damping ratio and response.
func NewSpring(dampingRatio, response float64) Spring {
	return Spring{DampingRatio: dampingRatio, Response: response}
}

// SpringWithStiffness returns a spring parameterized by stiffness (ω², with
// unit mass) and damping ratio.
func SpringWithStiffness(stiffness, dampingRatio float64) Spring {
	return Spring{
		DampingRatio: dampingRatio,
		Response:     2 * math.Pi / math.Sqrt(stiffness),
	}
}

// DefaultSpring is a critically damped half-second spring, a reasonable
// general-purpose choice for UI motion.
var DefaultSpring = Spring{DampingRatio: 1, Response: 0.5}

// angularFrequency returns the undamped natural frequency ω in rad/s.
func (s Spring) angularFrequency() float64 {
	return 2 * math.Pi / s.Response
}

// Stiffness returns ω² (unit mass).
func (s Spring) Stiffness() float64 {
	w := s.angularFrequency()
	return w * w
}

// SettlingDuration returns the time after which a unit step response stays
// within settlingEpsilon of the target. The decay envelope differs per
// damping branch; the critically damped envelope has no closed-form inverse
// and is bracketed numerically.
func (s Spring) SettlingDuration() float64 {
	if s.Response <= 0 {
		return 0
	}
	w := s.angularFrequency()
	zeta := s.DampingRatio
	switch {
	case zeta <= 0:
		return math.Inf(1) // undamped: never settles
	case zeta < 1:
		// Under-damped envelope: e^(-ζωt) / sqrt(1-ζ²).
		amp := math.Sqrt(1 - zeta*zeta)
		if amp < 1e-6 {
			return settleByBracketing(func(t float64) float64 {
				return (1 + w*t) * math.Exp(-w*t)
			})
		}
		return -math.Log(settlingEpsilon*amp) / (zeta * w)
	case zeta == 1:
		// Critically damped envelope: (1 + ωt) e^(-ωt).
		return settleByBracketing(func(t float64) float64 {
			return (1 + w*t) * math.Exp(-w*t)
		})
	default:
		// Over-damped: the slower exponential dominates.
		slow := w * (zeta - math.Sqrt(zeta*zeta-1))
		return -math.Log(settlingEpsilon) / slow
	}
}

// settleByBracketing finds the first time at which the given monotonically
// decaying envelope drops below settlingEpsilon: double an upper bound until
// the envelope is below the band, then bisect.
func settleByBracketing(envelope func(t float64) float64) float64 {
	hi := 1.0
	for envelope(hi) > settlingEpsilon {
		hi *= 2
		if hi > 1e6 {
			return hi
		}
	}
	lo := hi / 2
	for i := 0; i < 48; i++ {
		mid := (lo + hi) / 2
		if envelope(mid) > settlingEpsilon {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}

// springCoeffs is one analytic integration step of the damped oscillator,
// expressed as a linear combination of (value, velocity, target). The
// closed-form update is linear in all three with scalar coefficients, so the
// same step applies component-wise to every Animatable type.
type springCoeffs struct {
	pp, pv, pt float64 // next value  = pp·value + pv·velocity + pt·target
	vp, vv, vt float64 // next velocity = vp·value + vv·velocity + vt·target
}

// coefficients extracts the step coefficients for the given delta time from
// harmonica's precomputed closed-form solution by probing it on unit inputs.
// harmonica's update has no constant term (a spring at its target with zero
// velocity stays put), so three probes determine the step exactly.
func (s Spring) coefficients(dt float64) springCoeffs {
	h := harmonica.NewSpring(dt, s.angularFrequency(), s.DampingRatio)
	var c springCoeffs
	c.pp, c.vp = h.Update(1, 0, 0)
	c.pv, c.vv = h.Update(0, 1, 0)
	c.pt, c.vt = h.Update(0, 0, 1)
	return c
}

// step advances (value, velocity) toward target by one delta-time step.
func springStep[T Animatable[T]](c springCoeffs, value, velocity, target T) (T, T) {
	next := value.Scale(c.pp).Add(velocity.Scale(c.pv)).Add(target.Scale(c.pt))
	nextVel := value.Scale(c.vp).Add(velocity.Scale(c.vv)).Add(target.Scale(c.vt))
	return next, nextVel
}
