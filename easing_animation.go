package anima

// RepeatForever makes an easing animation repeat until stopped.
const RepeatForever = -1

// EasingAnimation drives a value from a start point to a target along a
// timing curve over a fixed duration. It supports resuming (fraction state
// survives a restart), reversal, repetition, and autoreversal.
type EasingAnimation[T Animatable[T]] struct {
	animationCore

	// Curve maps the time fraction to eased progress. Nil means Linear.
	Curve Curve

	// Duration is the run length in seconds. 0 makes the first tick an
	// immediate jump.
	Duration float64

	// RepeatCount is the number of additional runs after the first;
	// RepeatForever repeats until stopped.
	RepeatCount int

	// Autoreverse flips direction at each fraction bound instead of
	// restarting from the beginning.
	Autoreverse bool

	// IntegralizeOnCompletion snaps the final value to whole device pixels
	// for types that support it.
	IntegralizeOnCompletion bool

	// OnValueChanged receives every intermediate value, including the final
	// snap to the endpoint.
	OnValueChanged func(T)

	// OnEvent receives retarget and completion signals.
	OnEvent func(Event[T])

	value     T
	fromValue T
	target    T

	fraction    float64
	isReversed  bool
	repeatsLeft int
}

// NewEasingAnimation creates an inactive easing animation for the given
// property key, moving from the current value toward target. Endpoints are
// reconciled (vector arity, transparent colors) before the animation is
// eligible to start.
func NewEasingAnimation[T Animatable[T]](key string, curve Curve, duration float64, value, target T) *EasingAnimation[T] {
	value, target = reconcileEndpoints(value, target)
	if duration < 0 {
		duration = 0
	}
	return &EasingAnimation[T]{
		animationCore: animationCore{key: key},
		Curve:         curve,
		Duration:      duration,
		value:         value,
		fromValue:     value,
		target:        target,
	}
}

// Kind returns KindEasing.
func (a *EasingAnimation[T]) Kind() AnimationKind { return KindEasing }

// Value returns the current value.
func (a *EasingAnimation[T]) Value() T { return a.value }

// FromValue returns the interpolation start point.
func (a *EasingAnimation[T]) FromValue() T { return a.fromValue }

// Target returns the target value.
func (a *EasingAnimation[T]) Target() T { return a.target }

// FractionComplete returns the current time fraction in [0, 1].
func (a *EasingAnimation[T]) FractionComplete() float64 { return a.fraction }

// IsReversed reports whether the animation is running back toward its start
// point.
func (a *EasingAnimation[T]) IsReversed() bool { return a.isReversed }

// Reverse flips the run direction in place, preserving the current fraction.
func (a *EasingAnimation[T]) Reverse() { a.isReversed = !a.isReversed }

// SetTarget re-aims the animation. The start point and fraction are
// preserved so motion stays continuous; an EventRetargeted fires while
// running.
func (a *EasingAnimation[T]) SetTarget(target T) {
	old := a.target
	a.fromValue, target = reconcileEndpoints(a.fromValue, target)
	a.value = alignArity(a.value, target)
	a.target = target
	if a.state == StateRunning {
		if a.OnEvent != nil {
			a.OnEvent(Event[T]{Kind: EventRetargeted, From: old, To: target})
		}
	}
}

// Reset forces the animation back to StateInactive, rewinding the fraction
// and direction.
func (a *EasingAnimation[T]) Reset() {
	a.state = StateInactive
	a.started = false
	a.fraction = 0
	a.isReversed = false
	a.value = a.fromValue
}

// Stop halts the animation: StopAtCurrentValue freezes the property where it
// is, StopAtTargetValue snaps it to the target. Completion fires exactly
// once either way.
func (a *EasingAnimation[T]) Stop(mode StopMode) {
	if a.state == StateEnded {
		return
	}
	if mode == StopAtTargetValue {
		a.value = a.target
		if a.OnValueChanged != nil {
			a.OnValueChanged(a.value)
		}
	}
	a.finish(mode == StopAtTargetValue)
}

func (a *EasingAnimation[T]) start() {
	// Fraction is deliberately left as-is: a paused or reset-to-running
	// easing animation resumes where it stood.
	a.state = StateRunning
	a.started = true
	a.repeatsLeft = a.RepeatCount
}

func (a *EasingAnimation[T]) advance(dt float64) {
	if a.state != StateRunning {
		return
	}

	if a.Duration <= 0 {
		a.settle()
		return
	}

	// The half-step factor is inherited tuning: it damps convergence to
	// soften overshoot from large frame deltas, and downstream visual
	// timing depends on it. Do not change it silently.
	delta := (dt / 2) / a.Duration
	if a.isReversed {
		a.fraction -= delta
	} else {
		a.fraction += delta
	}
	if a.fraction > 1 {
		a.fraction = 1
	}
	if a.fraction < 0 {
		a.fraction = 0
	}

	atBound := (!a.isReversed && a.fraction >= 1) || (a.isReversed && a.fraction <= 0)
	if atBound {
		if a.repeatsLeft != 0 {
			// Emit the exact bound value before wrapping for the next run.
			a.emitCurrent()
			if a.repeatsLeft > 0 {
				a.repeatsLeft--
			}
			if a.Autoreverse {
				a.isReversed = !a.isReversed
			} else if a.isReversed {
				a.fraction = 1
			} else {
				a.fraction = 0
			}
			return
		}
		a.settle()
		return
	}
	a.emitCurrent()
}

// emitCurrent interpolates the value at the current fraction and reports it.
func (a *EasingAnimation[T]) emitCurrent() {
	curve := a.Curve
	if curve == nil {
		curve = Linear
	}
	eased := curve.Solve(a.fraction)
	a.value = a.fromValue.Add(a.target.Sub(a.fromValue).Scale(eased))
	if a.OnValueChanged != nil {
		a.OnValueChanged(a.value)
	}
}

// settle snaps to the endpoint the run was heading for and completes.
func (a *EasingAnimation[T]) settle() {
	if a.isReversed {
		a.value = a.fromValue
		a.fraction = 0
	} else {
		a.value = a.target
		a.fraction = 1
	}
	if a.IntegralizeOnCompletion {
		a.value = integralize(a.value)
	}
	if a.OnValueChanged != nil {
		a.OnValueChanged(a.value)
	}
	a.finish(true)
}

func (a *EasingAnimation[T]) finish(finished bool) {
	if !a.end() {
		return
	}
	if a.OnEvent != nil {
		a.OnEvent(Event[T]{Kind: EventFinished})
	}
	if a.onEnded != nil {
		a.onEnded(finished)
	}
}
