package anima

import (
	"slices"

	"github.com/rs/zerolog"
)

// Engine is the ticking authority that advances every registered animation.
// It owns the ambient parameter stack consulted by property writes, the
// pending set of delayed starts, and per-group completion tracking.
//
// The engine creates no timers of its own: the host's frame loop is
// responsible for calling [Engine.Advance] at a regular cadence (an ebiten
// Update method, a display-link callback, a ticker).
//
// All engine, animator, and animation operations must happen on one
// designated goroutine, conventionally the host's main/update loop. There
// is no internal locking; this is a per-frame hot path.
type Engine struct {
	active  []Animation
	pending []pendingStart

	stack  []ambient
	groups map[uint64]*animationGroup

	nextGroupID       uint64
	interactionBlocks int
	advancing         bool

	logger zerolog.Logger
}

// pendingStart is an animation waiting out its start delay.
type pendingStart struct {
	anim      Animation
	remaining float64
}

// ambient is one entry of the animation-context stack. Property writes made
// while it is the innermost entry animate with its parameters and join its
// group.
type ambient struct {
	params  Params
	groupID uint64
}

// animationGroup tracks the members started by one animation context.
type animationGroup struct {
	outstanding int
	open        bool // context body still executing
	finished    bool // false once any member is stopped before settling
	handler     func(finished bool)
}

// NewEngine creates an engine with logging disabled.
func NewEngine() *Engine {
	return &Engine{
		groups: make(map[uint64]*animationGroup),
		logger: zerolog.Nop(),
	}
}

// SetLogger installs a logger for animation lifecycle events, which are
// emitted at trace level.
func (e *Engine) SetLogger(l zerolog.Logger) {
	e.logger = l
}

// Animate runs body with the given parameters as the innermost ambient
// animation context. Property writes inside body become animations driven by
// this engine. Contexts nest; the innermost wins.
func (e *Engine) Animate(p Params, body func()) {
	e.AnimateWithCompletion(p, body, nil)
}

// AnimateWithCompletion is [Engine.Animate] with a group completion handler:
// once every animation started in body has ended, completion fires exactly
// once. Its argument is false when any member was stopped before settling.
// A body that starts no animations fires completion synchronously on return.
func (e *Engine) AnimateWithCompletion(p Params, body func(), completion func(finished bool)) {
	e.nextGroupID++
	id := e.nextGroupID
	if completion != nil {
		e.groups[id] = &animationGroup{open: true, finished: true, handler: completion}
	}

	e.stack = append(e.stack, ambient{params: p, groupID: id})
	body()
	e.stack = e.stack[:len(e.stack)-1]

	if g := e.groups[id]; g != nil {
		g.open = false
		e.maybeFinishGroup(id, g)
	}
}

// AnimateVelocity runs body in a velocity-update context: property writes
// adjust the velocity of whatever animation is in flight for the property
// instead of starting new animations.
func (e *Engine) AnimateVelocity(body func()) {
	e.Animate(Params{Mode: ModeVelocityUpdate}, body)
}

// currentAmbient returns the innermost animation context, if any.
func (e *Engine) currentAmbient() (ambient, bool) {
	if len(e.stack) == 0 {
		return ambient{}, false
	}
	return e.stack[len(e.stack)-1], true
}

// Advance ticks every registered animation by dt seconds: pending delays are
// drained first, then each running animation integrates one step. Ended
// animations are removed. dt must be positive.
func (e *Engine) Advance(dt float64) {
	// Promote pending animations whose delay has elapsed. Promoted
	// animations receive their first tick in this same call.
	if len(e.pending) > 0 {
		kept := e.pending[:0]
		for _, p := range e.pending {
			if p.anim.State() == StateEnded {
				continue // stopped while waiting
			}
			p.remaining -= dt
			if p.remaining <= 0 {
				p.anim.start()
				e.active = append(e.active, p.anim)
			} else {
				kept = append(kept, p)
			}
		}
		e.pending = kept
	}

	e.advancing = true
	// Completion callbacks may start new animations; range over the current
	// snapshot so they are first ticked next frame.
	actives := e.active
	for _, a := range actives {
		if a.State() == StateRunning {
			a.advance(dt)
		}
	}
	e.advancing = false

	e.active = slices.DeleteFunc(e.active, func(a Animation) bool {
		return a.State() == StateEnded
	})
}

// ActiveCount returns the number of registered animations that have not
// ended, including ones still waiting out a start delay.
func (e *Engine) ActiveCount() int {
	n := 0
	for _, a := range e.active {
		if a.State() != StateEnded {
			n++
		}
	}
	for _, p := range e.pending {
		if p.anim.State() != StateEnded {
			n++
		}
	}
	return n
}

// InteractionDisabled reports whether any running animation was started with
// OptionPreventUserInteraction. Hosts poll this to gate input handling.
func (e *Engine) InteractionDisabled() bool {
	return e.interactionBlocks > 0
}

// register hands a configured animation to the engine. With no delay the
// animation starts immediately and receives its first tick on the next
// Advance; otherwise it waits in the pending set.
func (e *Engine) register(anim Animation, delay float64, groupID uint64, opts Options) {
	if g := e.groups[groupID]; g != nil {
		g.outstanding++
	}
	if opts&OptionPreventUserInteraction != 0 {
		e.interactionBlocks++
	}

	e.logger.Trace().
		Str("key", anim.Key()).
		Stringer("kind", anim.Kind()).
		Float64("delay", delay).
		Uint64("group", groupID).
		Msg("animation registered")

	if delay > 0 {
		e.pending = append(e.pending, pendingStart{anim: anim, remaining: delay})
		return
	}
	anim.start()
	e.active = append(e.active, anim)
}

// animationEnded is called exactly once per registered animation, from the
// completion closure the registry binds. Outside of Advance the animation is
// removed from the active and pending sets within the same call.
func (e *Engine) animationEnded(anim Animation, groupID uint64, opts Options, finished bool) {
	if opts&OptionPreventUserInteraction != 0 {
		e.interactionBlocks--
	}

	e.logger.Trace().
		Str("key", anim.Key()).
		Stringer("kind", anim.Kind()).
		Bool("finished", finished).
		Uint64("group", groupID).
		Msg("animation ended")

	if !e.advancing {
		e.active = slices.DeleteFunc(e.active, func(a Animation) bool { return a == anim })
		e.pending = slices.DeleteFunc(e.pending, func(p pendingStart) bool { return p.anim == anim })
	}

	if g := e.groups[groupID]; g != nil {
		g.outstanding--
		if !finished {
			g.finished = false
		}
		e.maybeFinishGroup(groupID, g)
	}
}

// detachGroup removes one member from a group without ending it, used when a
// retargeting write migrates a reused animation to a new context's group.
func (e *Engine) detachGroup(groupID uint64) {
	if g := e.groups[groupID]; g != nil {
		g.outstanding--
		e.maybeFinishGroup(groupID, g)
	}
}

// attachGroup adds one member to a group, the other half of a migration.
func (e *Engine) attachGroup(groupID uint64) {
	if g := e.groups[groupID]; g != nil {
		g.outstanding++
	}
}

// maybeFinishGroup fires the group handler once all members are done and the
// context body has returned.
func (e *Engine) maybeFinishGroup(groupID uint64, g *animationGroup) {
	if g.open || g.outstanding > 0 {
		return
	}
	delete(e.groups, groupID)
	e.logger.Trace().Uint64("group", groupID).Bool("finished", g.finished).Msg("group completed")
	g.handler(g.finished)
}
