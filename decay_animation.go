package anima

// DecayAnimation lets a value coast to rest under exponential velocity
// decay, the motion a fling gesture leaves behind. It can be started either
// with an explicit velocity or in target mode, where the initial velocity is
// derived so the value comes to rest exactly on the requested target.
type DecayAnimation[T Animatable[T]] struct {
	animationCore

	// Decay is the velocity decay spec.
	Decay Decay

	// RestVelocity is the speed (value units per second) below which the
	// animation is considered settled. 0 means the package default.
	RestVelocity float64

	// IntegralizeOnCompletion snaps the final value to whole device pixels
	// for types that support it.
	IntegralizeOnCompletion bool

	// OnValueChanged receives every intermediate value.
	OnValueChanged func(T)

	// OnEvent receives retarget and completion signals.
	OnEvent func(Event[T])

	value     T
	fromValue T
	velocity  T
}

// NewDecayAnimation creates an inactive decay animation coasting from value
// with the given initial velocity.
func NewDecayAnimation[T Animatable[T]](key string, decay Decay, value, velocity T) *DecayAnimation[T] {
	return &DecayAnimation[T]{
		animationCore: animationCore{key: key},
		Decay:         decay,
		value:         value,
		fromValue:     value,
		velocity:      alignArity(velocity, value),
	}
}

// NewDecayAnimationToTarget creates an inactive decay animation whose initial
// velocity is derived so the value comes to rest at target.
func NewDecayAnimationToTarget[T Animatable[T]](key string, decay Decay, value, target T) *DecayAnimation[T] {
	value, target = reconcileEndpoints(value, target)
	return NewDecayAnimation(key, decay, value, decayVelocityFor(decay, value, target))
}

// Kind returns KindDecay.
func (a *DecayAnimation[T]) Kind() AnimationKind { return KindDecay }

// Value returns the current value.
func (a *DecayAnimation[T]) Value() T { return a.value }

// FromValue returns the value the animation started from.
func (a *DecayAnimation[T]) FromValue() T { return a.fromValue }

// Velocity returns the current velocity in value units per second.
func (a *DecayAnimation[T]) Velocity() T { return a.velocity }

// Target returns the projected destination: where the value comes to rest if
// the decay runs out undisturbed.
func (a *DecayAnimation[T]) Target() T {
	return DecayDestination(a.Decay, a.value, a.velocity)
}

// SetTarget re-derives the velocity so the value comes to rest at target.
// An EventRetargeted fires while running.
func (a *DecayAnimation[T]) SetTarget(target T) {
	old := a.Target()
	a.value, target = reconcileEndpoints(a.value, target)
	a.velocity = decayVelocityFor(a.Decay, a.value, target)
	if a.state == StateRunning {
		if a.OnEvent != nil {
			a.OnEvent(Event[T]{Kind: EventRetargeted, From: old, To: target})
		}
	}
}

// SetVelocity replaces the current velocity, in value units per second.
func (a *DecayAnimation[T]) SetVelocity(velocity T) {
	a.velocity = alignArity(velocity, a.value)
}

// Reset forces the animation back to StateInactive with zero velocity.
func (a *DecayAnimation[T]) Reset() {
	a.state = StateInactive
	a.started = false
	a.velocity = a.value.Scale(0)
}

// Stop halts the animation: StopAtCurrentValue freezes the property where it
// is, StopAtTargetValue snaps it to the projected destination. Completion
// fires exactly once either way.
func (a *DecayAnimation[T]) Stop(mode StopMode) {
	if a.state == StateEnded {
		return
	}
	if mode == StopAtTargetValue {
		a.value = a.Target()
		if a.OnValueChanged != nil {
			a.OnValueChanged(a.value)
		}
	}
	a.velocity = a.value.Scale(0)
	a.finish(mode == StopAtTargetValue)
}

func (a *DecayAnimation[T]) start() {
	a.state = StateRunning
	a.started = true
	a.fromValue = a.value
}

func (a *DecayAnimation[T]) advance(dt float64) {
	if a.state != StateRunning {
		return
	}

	a.value, a.velocity = decayStep(a.Decay, a.value, a.velocity, dt)

	rest := a.RestVelocity
	if rest == 0 {
		rest = defaultRestVelocity
	}
	if a.velocity.MagnitudeSquared() < rest*rest {
		a.velocity = a.value.Scale(0)
		if a.IntegralizeOnCompletion {
			a.value = integralize(a.value)
		}
		if a.OnValueChanged != nil {
			a.OnValueChanged(a.value)
		}
		a.finish(true)
		return
	}
	if a.OnValueChanged != nil {
		a.OnValueChanged(a.value)
	}
}

func (a *DecayAnimation[T]) finish(finished bool) {
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
