package anima

// alignArity pads a vector-valued companion value (velocity, usually) to the
// reference's length. Non-vector types are returned unchanged. Endpoint
// reconciliation is handled separately by [reconcileEndpoints]; this helper
// exists because velocity must never be channel-snapped the way a transparent
// color endpoint is.
func alignArity[T Animatable[T]](v, ref T) T {
	vec, ok := any(v).(Vector)
	if !ok {
		return v
	}
	refVec := any(ref).(Vector)
	return any(vec.padded(len(refVec))).(T)
}

// SpringAnimation drives a value toward a target with damped-harmonic-
// oscillator physics, producing both value and velocity each tick.
// Retargeting mid-flight keeps the current velocity as the new initial
// condition, so motion stays continuous.
type SpringAnimation[T Animatable[T]] struct {
	animationCore

	// Spring is the oscillator parameter set. A Response of 0 makes the
	// first tick an immediate jump.
	Spring Spring

	// IntegralizeOnCompletion snaps the final value to whole device pixels
	// for types that support it.
	IntegralizeOnCompletion bool

	// StopsOnCompletion controls whether the animation deactivates once
	// settled. When false it stays running at the target so a later
	// retarget resumes without a restart. Defaults to true.
	StopsOnCompletion bool

	// OnValueChanged receives every intermediate value, including the final
	// snap to the target.
	OnValueChanged func(T)

	// OnEvent receives retarget and completion signals.
	OnEvent func(Event[T])

	value     T
	fromValue T
	target    T
	velocity  T

	runningTime    float64
	settleAfter    float64
	completionSent bool

	// cached integration coefficients, recomputed when dt changes
	coeffs    springCoeffs
	coeffStep float64
}

// NewSpringAnimation creates an inactive spring animation for the given
// property key, moving from the current value toward target. Endpoints are
// reconciled (vector arity, transparent colors) before the animation is
// eligible to start.
func NewSpringAnimation[T Animatable[T]](key string, spring Spring, value, target T) *SpringAnimation[T] {
	value, target = reconcileEndpoints(value, target)
	return &SpringAnimation[T]{
		animationCore:     animationCore{key: key},
		Spring:            spring,
		StopsOnCompletion: true,
		value:             value,
		fromValue:         value,
		target:            target,
		velocity:          value.Scale(0),
	}
}

// Kind returns KindSpring.
func (a *SpringAnimation[T]) Kind() AnimationKind { return KindSpring }

// Value returns the current value.
func (a *SpringAnimation[T]) Value() T { return a.value }

// FromValue returns the value the current run started from.
func (a *SpringAnimation[T]) FromValue() T { return a.fromValue }

// Target returns the target value.
func (a *SpringAnimation[T]) Target() T { return a.target }

// Velocity returns the current velocity in value units per second.
func (a *SpringAnimation[T]) Velocity() T { return a.velocity }

// SetTarget re-aims the animation. While running, velocity is preserved as
// the new initial condition, the settling clock restarts, and an
// EventRetargeted fires. The spring parameters are unchanged, so the settle
// envelope derived from them still applies.
func (a *SpringAnimation[T]) SetTarget(target T) {
	old := a.target
	a.value, target = reconcileEndpoints(a.value, target)
	a.velocity = alignArity(a.velocity, target)
	a.target = target
	if a.state == StateRunning {
		a.runningTime = 0
		a.completionSent = false
		// The spring parameters may have been updated alongside the target;
		// rebuild the settle envelope and drop the cached step coefficients.
		a.settleAfter = a.Spring.SettlingDuration()
		a.coeffStep = 0
		if a.OnEvent != nil {
			a.OnEvent(Event[T]{Kind: EventRetargeted, From: old, To: target})
		}
	}
}

// SetVelocity replaces the current velocity, in value units per second.
func (a *SpringAnimation[T]) SetVelocity(velocity T) {
	a.velocity = alignArity(velocity, a.target)
}

// Reset forces the animation back to StateInactive, clearing velocity and
// timers. Used when an animation object is reused for a fresh start.
func (a *SpringAnimation[T]) Reset() {
	a.state = StateInactive
	a.started = false
	a.velocity = a.value.Scale(0)
	a.runningTime = 0
	a.completionSent = false
}

// Stop halts the animation: StopAtCurrentValue freezes the property where it
// is, StopAtTargetValue snaps it to the target. Completion fires exactly
// once either way.
func (a *SpringAnimation[T]) Stop(mode StopMode) {
	if a.state == StateEnded {
		return
	}
	if mode == StopAtTargetValue {
		a.value = a.target
		if a.OnValueChanged != nil {
			a.OnValueChanged(a.value)
		}
	}
	a.velocity = a.value.Scale(0)
	a.finish(mode == StopAtTargetValue)
}

func (a *SpringAnimation[T]) start() {
	a.state = StateRunning
	a.started = true
	a.runningTime = 0
	a.fromValue = a.value
	a.settleAfter = a.Spring.SettlingDuration()
	a.completionSent = false
}

func (a *SpringAnimation[T]) advance(dt float64) {
	if !a.started {
		panic("anima: spring animation advanced before start (key " + a.key + ")")
	}
	if a.state != StateRunning {
		return
	}

	// Non-animated spring: immediate jump on the first tick.
	if a.Spring.Response <= 0 {
		a.settle()
		return
	}

	if dt != a.coeffStep {
		a.coeffs = a.Spring.coefficients(dt)
		a.coeffStep = dt
	}
	a.value, a.velocity = springStep(a.coeffs, a.value, a.velocity, a.target)
	a.runningTime += dt

	if a.runningTime >= a.settleAfter || equalValues(a.value, a.target) {
		a.settle()
		return
	}
	if a.OnValueChanged != nil {
		a.OnValueChanged(a.value)
	}
}

// settle snaps to the target and completes the run. With StopsOnCompletion
// disabled the animation stays running at the target, ready for a retarget:
// its finished event fires per settle, but the registry is only notified
// when the animation terminally ends.
func (a *SpringAnimation[T]) settle() {
	if a.completionSent {
		return
	}
	a.value = a.target
	if a.IntegralizeOnCompletion {
		a.value = integralize(a.value)
	}
	a.velocity = a.value.Scale(0)
	if a.OnValueChanged != nil {
		a.OnValueChanged(a.value)
	}
	if a.StopsOnCompletion {
		a.finish(true)
		return
	}
	a.completionSent = true
	if a.OnEvent != nil {
		a.OnEvent(Event[T]{Kind: EventFinished})
	}
}

func (a *SpringAnimation[T]) finish(finished bool) {
	if !a.end() {
		return
	}
	if !a.completionSent {
		a.completionSent = true
		if a.OnEvent != nil {
			a.OnEvent(Event[T]{Kind: EventFinished})
		}
	}
	if a.onEnded != nil {
		a.onEnded(finished)
	}
}
