package anima

// AnimationState is the lifecycle of an animation.
type AnimationState uint8

const (
	// StateInactive: created (or reset), not yet started.
	StateInactive AnimationState = iota
	// StateRunning: receiving ticks from the engine.
	StateRunning
	// StateEnded: settled on the target or stopped; never ticked again.
	StateEnded
)

// String returns the state name for logging.
func (s AnimationState) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// AnimationKind identifies the timing-model family of an animation. The set
// is closed: the engine owns all three implementations.
type AnimationKind uint8

const (
	KindSpring AnimationKind = iota
	KindEasing
	KindDecay
)

// String returns the kind name for logging.
func (k AnimationKind) String() string {
	switch k {
	case KindSpring:
		return "spring"
	case KindEasing:
		return "easing"
	case KindDecay:
		return "decay"
	default:
		return "unknown"
	}
}

// StopMode selects how an externally requested stop resolves the value.
type StopMode uint8

const (
	// StopAtCurrentValue freezes the property where it is.
	StopAtCurrentValue StopMode = iota
	// StopAtTargetValue snaps the property to the animation's target.
	StopAtTargetValue
)

// EventKind distinguishes the two signals delivered through an animation's
// event callback.
type EventKind uint8

const (
	// EventFinished is terminal and fires exactly once per run.
	EventFinished EventKind = iota
	// EventRetargeted fires when the target changes mid-flight. Not terminal.
	EventRetargeted
)

// Event is delivered to an animation's OnEvent callback. From and To carry
// the old and new targets for EventRetargeted; both are zero values for
// EventFinished.
type Event[T Animatable[T]] struct {
	Kind     EventKind
	From, To T
}

// Animation is the type-erased handle the registry and engine operate on.
// The unexported methods close the set of implementations to the three
// engine-owned kinds: [SpringAnimation], [EasingAnimation], and
// [DecayAnimation]. Introspect a concrete animation with a type assertion:
//
//	if sa, ok := anim.(*anima.SpringAnimation[anima.Float]); ok { ... }
type Animation interface {
	// Key returns the property key this animation drives.
	Key() string
	// Kind returns the timing-model family.
	Kind() AnimationKind
	// State returns the lifecycle state.
	State() AnimationState
	// Stop halts the animation, fires its completion exactly once, and
	// deregisters it. Safe to call on an already-ended animation.
	Stop(mode StopMode)

	start()
	advance(dt float64)
	bindEnded(fn func(finished bool))
}

// animationCore carries the fields every animation kind shares. Embedded by
// the three concrete types.
type animationCore struct {
	key     string
	state   AnimationState
	started bool

	// onEnded is installed by the registry at registration time; it
	// deregisters the key and notifies the engine's group tracker.
	onEnded func(finished bool)
}

// Key returns the property key this animation drives.
func (c *animationCore) Key() string { return c.key }

// State returns the lifecycle state.
func (c *animationCore) State() AnimationState { return c.state }

func (c *animationCore) bindEnded(fn func(finished bool)) { c.onEnded = fn }

// end transitions to StateEnded and reports whether this call performed the
// transition. Callers fire events and the ended callback only when true, so
// completion is delivered exactly once.
func (c *animationCore) end() bool {
	if c.state == StateEnded {
		return false
	}
	c.state = StateEnded
	return true
}
