package anima

import "math"

// DefaultDecayConstant matches the conventional scroll-view deceleration
// rate: the velocity retains 99.8% of itself per millisecond.
const DefaultDecayConstant = 0.998

// defaultRestVelocity is the speed below which a decay animation is
// considered at rest, in value units per second.
const defaultRestVelocity = 0.5

// Decay describes exponential velocity decay: v(t) = v₀·e^(k·t) with
// k = 1000·ln(Constant). The projected destination of a decaying value is
// finite, so a decay can also be started in target mode by deriving the
// initial velocity that lands on a requested value.
type Decay struct {
	Constant float64
}

// NewDecay returns a decay spec with the given constant, or
// DefaultDecayConstant when the argument is zero.
func NewDecay(constant float64) Decay {
	if constant == 0 {
		constant = DefaultDecayConstant
	}
	return Decay{Constant: constant}
}

// rate returns k, the continuous decay exponent per second. Always negative
// for constants below 1.
func (d Decay) rate() float64 {
	c := d.Constant
	if c == 0 {
		c = DefaultDecayConstant
	}
	return 1000 * math.Log(c)
}

// DecayDestination returns the value a decay starting at (value, velocity)
// comes to rest at: value + ∫₀^∞ v(t) dt = value − v₀/k. Hosts use it to
// project where a flick will land before starting the animation.
func DecayDestination[T Animatable[T]](d Decay, value, velocity T) T {
	return value.Add(velocity.Scale(-1 / d.rate()))
}

// velocityFor returns the initial velocity that makes a decay starting at
// value come to rest exactly at target.
func decayVelocityFor[T Animatable[T]](d Decay, value, target T) T {
	return target.Sub(value).Scale(-d.rate())
}

// step advances (value, velocity) by dt seconds using the exact integral of
// the exponential decay.
func decayStep[T Animatable[T]](d Decay, value, velocity T, dt float64) (T, T) {
	k := d.rate()
	factor := math.Exp(k * dt)
	next := value.Add(velocity.Scale((factor - 1) / k))
	return next, velocity.Scale(factor)
}
