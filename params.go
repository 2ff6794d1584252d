package anima

// Mode is the timing-model family an animation context requests.
type Mode uint8

const (
	// ModeNonAnimated applies property writes immediately, stopping any
	// in-flight animation for the key.
	ModeNonAnimated Mode = iota
	// ModeSpring animates writes with spring physics.
	ModeSpring
	// ModeEasing animates writes along a timing curve over a duration.
	ModeEasing
	// ModeDecay lets writes coast to the written value under velocity decay.
	ModeDecay
	// ModeVelocityUpdate interprets writes as velocity adjustments to
	// whatever animation is already in flight.
	ModeVelocityUpdate
)

// Options is a bitmask of per-context animation options.
type Options uint8

const (
	// OptionKeepVelocity transfers the old animation's velocity when a write
	// replaces an in-flight animation of a different kind.
	OptionKeepVelocity Options = 1 << iota
	// OptionPreventUserInteraction marks the started animations so the host
	// can disable user input while they run (see Engine.InteractionDisabled).
	OptionPreventUserInteraction
	// OptionIntegralize snaps final values to whole device pixels on
	// completion for types that support it.
	OptionIntegralize
)

// Params is the ambient parameter set an animation context establishes.
// Property writes inside the context consult it to decide how to animate.
// Build one with [WithSpring], [WithEasing], [WithDecay], or [NonAnimated]
// and refine it with the fluent With* methods, which return copies.
type Params struct {
	Mode    Mode
	Spring  Spring
	Curve   Curve
	Decay   Decay
	Options Options

	// Duration is the easing run length in seconds. Negative values clamp
	// to zero (immediate jump).
	Duration float64

	// Delay postpones the start of animations created in the context, in
	// seconds.
	Delay float64

	// RepeatCount and Autoreverse apply to easing animations only.
	RepeatCount int
	Autoreverse bool
}

// WithSpring returns parameters that animate writes with the given spring.
func WithSpring(s Spring) Params {
	return Params{Mode: ModeSpring, Spring: s}
}

// WithEasing returns parameters that animate writes along curve over the
// given duration in seconds.
func WithEasing(curve Curve, duration float64) Params {
	if duration < 0 {
		duration = 0
	}
	return Params{Mode: ModeEasing, Curve: curve, Duration: duration}
}

// WithDecay returns parameters that let writes coast to the written value
// under the given decay constant (0 means DefaultDecayConstant).
func WithDecay(constant float64) Params {
	return Params{Mode: ModeDecay, Decay: NewDecay(constant)}
}

// NonAnimated returns parameters that apply writes immediately.
func NonAnimated() Params {
	return Params{Mode: ModeNonAnimated}
}

// WithDelay returns a copy with the start delay set, clamped at zero.
func (p Params) WithDelay(seconds float64) Params {
	if seconds < 0 {
		seconds = 0
	}
	p.Delay = seconds
	return p
}

// WithOptions returns a copy with the given options added.
func (p Params) WithOptions(o Options) Params {
	p.Options |= o
	return p
}

// WithRepeats returns a copy repeating count additional runs
// ([RepeatForever] repeats until stopped), optionally autoreversing at each
// bound. Easing only.
func (p Params) WithRepeats(count int, autoreverse bool) Params {
	p.RepeatCount = count
	p.Autoreverse = autoreverse
	return p
}
