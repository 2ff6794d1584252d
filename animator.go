package anima

// Property describes one animatable property of a host object: a stable
// string key plus a getter/setter pair. Explicit descriptors stand in for
// key-path machinery; the closures are the engine's only channel to the live
// object.
type Property[T Animatable[T]] struct {
	Key string
	Get func() T
	Set func(T)
}

// Bind builds a Property over a field of one of the package's value types.
func Bind[T Animatable[T]](key string, field *T) Property[T] {
	return Property[T]{
		Key: key,
		Get: func() T { return *field },
		Set: func(v T) { *field = v },
	}
}

// FloatPtr builds a Property over a plain float64 field, the common case for
// host objects (positions, alpha, rotation).
func FloatPtr(key string, field *float64) Property[Float] {
	return Property[Float]{
		Key: key,
		Get: func() Float { return Float(*field) },
		Set: func(v Float) { *field = float64(v) },
	}
}

// Introspection capabilities implemented by the concrete animation kinds.
// Easing animations track no velocity, so they satisfy neither velocity
// interface and velocity reads fall back to zero.
type targetProvider[T any] interface{ Target() T }
type velocityProvider[T any] interface{ Velocity() T }
type velocitySetter[T any] interface{ SetVelocity(T) }

// entry is one registered (property key → animation) binding, carrying the
// group and options it was started under so migration and teardown can
// settle accounts with the engine.
type entry struct {
	anim    Animation
	groupID uint64
	opts    Options
}

// Animator is the per-object animation registry: at most one active
// animation per property key. Create one per host object and route property
// access through [Get] and [Set].
type Animator struct {
	engine  *Engine
	entries map[string]*entry
}

// NewAnimator creates a registry whose animations are driven by engine.
func NewAnimator(engine *Engine) *Animator {
	return &Animator{
		engine:  engine,
		entries: make(map[string]*entry),
	}
}

// Engine returns the driving engine.
func (an *Animator) Engine() *Engine { return an.engine }

// CurrentAnimation returns the active animation for a property key, or nil.
func (an *Animator) CurrentAnimation(key string) Animation {
	if ent := an.entries[key]; ent != nil && ent.anim.State() != StateEnded {
		return ent.anim
	}
	return nil
}

// StopAll stops every animation in the registry with the given mode.
func (an *Animator) StopAll(mode StopMode) {
	for _, ent := range an.entries {
		ent.anim.Stop(mode)
	}
}

// track installs a configured animation under its key, binds the completion
// closure that deregisters it and settles group accounting, and hands it to
// the engine.
func (an *Animator) track(anim Animation, groupID uint64, opts Options, delay float64) {
	ent := &entry{anim: anim, groupID: groupID, opts: opts}
	an.entries[anim.Key()] = ent
	anim.bindEnded(func(finished bool) {
		if cur := an.entries[anim.Key()]; cur == ent && anim.State() == StateEnded {
			delete(an.entries, anim.Key())
		}
		an.engine.animationEnded(anim, ent.groupID, ent.opts, finished)
	})
	an.engine.register(anim, delay, groupID, opts)
}

// migrate moves a reused (retargeted) animation to the group of the context
// that retargeted it.
func (an *Animator) migrate(ent *entry, groupID uint64) {
	if ent.groupID == groupID {
		return
	}
	an.engine.detachGroup(ent.groupID)
	an.engine.attachGroup(groupID)
	ent.groupID = groupID
}

// Get reads a property through the registry: while an animation is in flight
// the read resolves to its target (in-flight reads see the eventual value),
// otherwise to the live value.
func Get[T Animatable[T]](an *Animator, p Property[T]) T {
	if ent := an.entries[p.Key]; ent != nil && ent.anim.State() != StateEnded {
		if tp, ok := ent.anim.(targetProvider[T]); ok {
			return tp.Target()
		}
	}
	return p.Get()
}

// GetVelocity reads the in-flight animation's velocity for a property, or
// zero when nothing is animating or the animation kind tracks no velocity.
func GetVelocity[T Animatable[T]](an *Animator, p Property[T]) T {
	if ent := an.entries[p.Key]; ent != nil && ent.anim.State() != StateEnded {
		if vp, ok := ent.anim.(velocityProvider[T]); ok {
			return vp.Velocity()
		}
	}
	return p.Get().Scale(0)
}

// Set writes a property through the registry under the engine's innermost
// animation context.
//
// With no context (or a non-animated one) the write stops any in-flight
// animation where it stands and assigns directly. In a velocity-update
// context the written value adjusts the in-flight animation's velocity. In
// an animated context the write is suppressed when it matches the already
// resolved target; otherwise it retargets a matching in-flight animation or
// starts a new one under the ambient parameters.
func Set[T Animatable[T]](an *Animator, p Property[T], value T) {
	ctx, ok := an.engine.currentAmbient()
	if !ok || ctx.params.Mode == ModeNonAnimated {
		if ent := an.entries[p.Key]; ent != nil {
			ent.anim.Stop(StopAtCurrentValue)
		}
		p.Set(value)
		return
	}

	if ctx.params.Mode == ModeVelocityUpdate {
		if ent := an.entries[p.Key]; ent != nil {
			if vs, ok := ent.anim.(velocitySetter[T]); ok {
				vs.SetVelocity(value)
			}
		}
		return
	}

	// Idempotent write suppression: a write equal to the resolved target
	// must not restart the animation. Endpoints are reconciled first so a
	// shorter vector compares against padded arity, not truncated.
	resolved, value := reconcileEndpoints(Get(an, p), value)
	if equalValues(resolved, value) {
		return
	}

	params := ctx.params
	ent := an.entries[p.Key]

	switch params.Mode {
	case ModeSpring:
		if ent != nil {
			if sa, ok := ent.anim.(*SpringAnimation[T]); ok && sa.State() != StateEnded {
				sa.Spring = params.Spring
				sa.IntegralizeOnCompletion = params.Options&OptionIntegralize != 0
				sa.SetTarget(value)
				an.migrate(ent, ctx.groupID)
				return
			}
		}
		anim := NewSpringAnimation(p.Key, params.Spring, p.Get(), value)
		anim.IntegralizeOnCompletion = params.Options&OptionIntegralize != 0
		anim.OnValueChanged = p.Set
		if v, carried := supersede[T](ent, params.Options&OptionKeepVelocity != 0); carried {
			anim.SetVelocity(v)
		}
		an.track(anim, ctx.groupID, params.Options, params.Delay)

	case ModeEasing:
		if ent != nil {
			if ea, ok := ent.anim.(*EasingAnimation[T]); ok && ea.State() != StateEnded {
				ea.Curve = params.Curve
				ea.Duration = params.Duration
				ea.RepeatCount = params.RepeatCount
				ea.Autoreverse = params.Autoreverse
				ea.IntegralizeOnCompletion = params.Options&OptionIntegralize != 0
				ea.SetTarget(value)
				an.migrate(ent, ctx.groupID)
				return
			}
		}
		anim := NewEasingAnimation(p.Key, params.Curve, params.Duration, p.Get(), value)
		anim.RepeatCount = params.RepeatCount
		anim.Autoreverse = params.Autoreverse
		anim.IntegralizeOnCompletion = params.Options&OptionIntegralize != 0
		anim.OnValueChanged = p.Set
		supersede[T](ent, false)
		an.track(anim, ctx.groupID, params.Options, params.Delay)

	case ModeDecay:
		if ent != nil {
			if da, ok := ent.anim.(*DecayAnimation[T]); ok && da.State() != StateEnded {
				da.IntegralizeOnCompletion = params.Options&OptionIntegralize != 0
				da.SetTarget(value)
				an.migrate(ent, ctx.groupID)
				return
			}
		}
		anim := NewDecayAnimationToTarget(p.Key, params.Decay, p.Get(), value)
		anim.IntegralizeOnCompletion = params.Options&OptionIntegralize != 0
		anim.OnValueChanged = p.Set
		if v, carried := supersede[T](ent, params.Options&OptionKeepVelocity != 0); carried {
			anim.SetVelocity(v)
		}
		an.track(anim, ctx.groupID, params.Options, params.Delay)
	}
}

// supersede stops the animation a new write is replacing, extracting its
// velocity first when the context asked to keep it across a kind change.
// Stopping fires the old animation's completion and deregisters its key.
func supersede[T Animatable[T]](ent *entry, keepVelocity bool) (T, bool) {
	var velocity T
	if ent == nil {
		return velocity, false
	}
	carried := false
	if keepVelocity {
		if vp, ok := ent.anim.(velocityProvider[T]); ok {
			velocity = vp.Velocity()
			carried = true
		}
	}
	ent.anim.Stop(StopAtCurrentValue)
	return velocity, carried
}
