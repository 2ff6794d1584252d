package anima

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBox is a minimal host object for registry tests.
type testBox struct {
	X, Y   float64
	Tint   Color
	Levels Vector
}

func newTestRig() (*Engine, *Animator, *testBox) {
	engine := NewEngine()
	return engine, NewAnimator(engine), &testBox{}
}

const frame = 1.0 / 60.0

// --- Direct writes ---

func TestSetOutsideContextAppliesImmediately(t *testing.T) {
	_, animator, box := newTestRig()
	x := FloatPtr("x", &box.X)

	Set(animator, x, 42)

	assert.Equal(t, 42.0, box.X)
	assert.Nil(t, animator.CurrentAnimation("x"))
}

func TestNonAnimatedWriteStopsInFlightAnimation(t *testing.T) {
	engine, animator, box := newTestRig()
	x := FloatPtr("x", &box.X)

	engine.Animate(WithSpring(DefaultSpring), func() {
		Set(animator, x, 100)
	})
	engine.Advance(frame)
	require.NotNil(t, animator.CurrentAnimation("x"))

	// A plain write halts the animation and lands the new value directly.
	Set(animator, x, 7)

	assert.Equal(t, 7.0, box.X)
	assert.Nil(t, animator.CurrentAnimation("x"))
	engine.Advance(frame)
	assert.Equal(t, 7.0, box.X, "no further ticks mutate the property")
}

// --- Animated writes ---

func TestAnimatedWriteDrivesPropertyToTarget(t *testing.T) {
	engine, animator, box := newTestRig()
	x := FloatPtr("x", &box.X)
	spring := Spring{DampingRatio: 1, Response: 0.3}

	engine.Animate(WithSpring(spring), func() {
		Set(animator, x, 100)
	})
	require.Equal(t, 0.0, box.X, "nothing moves until the engine ticks")

	for i := 0; i < 200 && animator.CurrentAnimation("x") != nil; i++ {
		engine.Advance(frame)
	}

	assert.Equal(t, 100.0, box.X)
	assert.Nil(t, animator.CurrentAnimation("x"), "finished animations deregister")
	assert.Equal(t, 0, engine.ActiveCount())
}

func TestGetResolvesToTargetWhileAnimating(t *testing.T) {
	engine, animator, box := newTestRig()
	x := FloatPtr("x", &box.X)

	engine.Animate(WithSpring(DefaultSpring), func() {
		Set(animator, x, 100)
	})
	engine.Advance(frame)

	require.Greater(t, box.X, 0.0)
	require.Less(t, box.X, 100.0)
	assert.Equal(t, Float(100), Get(animator, x), "in-flight reads see the eventual value")

	// Idle reads see the live value.
	animator.StopAll(StopAtCurrentValue)
	assert.Equal(t, Float(box.X), Get(animator, x))
}

func TestIdempotentWriteSuppression(t *testing.T) {
	engine, animator, box := newTestRig()
	x := FloatPtr("x", &box.X)

	engine.Animate(WithSpring(DefaultSpring), func() {
		Set(animator, x, 100)
	})
	engine.Advance(frame)
	first := animator.CurrentAnimation("x")
	require.NotNil(t, first)

	// Writing the already-resolved target must not restart or replace the
	// animation.
	engine.Animate(WithSpring(DefaultSpring), func() {
		Set(animator, x, 100)
	})

	assert.Same(t, first, animator.CurrentAnimation("x"))
	assert.Equal(t, 1, engine.ActiveCount())
}

func TestRetargetReusesAnimationAndKeepsVelocity(t *testing.T) {
	engine, animator, box := newTestRig()
	x := FloatPtr("x", &box.X)
	spring := Spring{DampingRatio: 0.8, Response: 0.5}

	engine.Animate(WithSpring(spring), func() {
		Set(animator, x, 100)
	})
	for i := 0; i < 6; i++ {
		engine.Advance(frame)
	}
	anim := animator.CurrentAnimation("x")
	require.NotNil(t, anim)
	sa, ok := anim.(*SpringAnimation[Float])
	require.True(t, ok)
	before := sa.Velocity()
	require.NotEqual(t, Float(0), before)

	engine.Animate(WithSpring(spring), func() {
		Set(animator, x, -50)
	})

	assert.Same(t, anim, animator.CurrentAnimation("x"), "same-family writes retarget in place")
	assert.Equal(t, before, sa.Velocity())
	assert.Equal(t, Float(-50), sa.Target())
}

func TestKindChangeReplacesAnimation(t *testing.T) {
	engine, animator, box := newTestRig()
	x := FloatPtr("x", &box.X)

	engine.Animate(WithSpring(DefaultSpring), func() {
		Set(animator, x, 100)
	})
	engine.Advance(frame)
	old := animator.CurrentAnimation("x")
	require.NotNil(t, old)

	engine.Animate(WithEasing(Linear, 1.0), func() {
		Set(animator, x, 200)
	})

	current := animator.CurrentAnimation("x")
	require.NotNil(t, current)
	assert.NotSame(t, old, current)
	assert.Equal(t, KindEasing, current.Kind())
	assert.Equal(t, StateEnded, old.State(), "superseded animation is stopped")
	assert.Equal(t, 1, engine.ActiveCount())
}

func TestKeepVelocityTransfersAcrossKindChange(t *testing.T) {
	engine, animator, box := newTestRig()
	x := FloatPtr("x", &box.X)

	// Build up velocity with a decay fling, then hand it to a spring.
	engine.Animate(WithDecay(0), func() {
		Set(animator, x, 400)
	})
	for i := 0; i < 6; i++ {
		engine.Advance(frame)
	}
	da, ok := animator.CurrentAnimation("x").(*DecayAnimation[Float])
	require.True(t, ok)
	carried := da.Velocity()
	require.NotEqual(t, Float(0), carried)

	engine.Animate(WithSpring(DefaultSpring).WithOptions(OptionKeepVelocity), func() {
		Set(animator, x, 0)
	})

	sa, ok := animator.CurrentAnimation("x").(*SpringAnimation[Float])
	require.True(t, ok)
	assert.Equal(t, carried, sa.Velocity())
}

// --- Velocity updates ---

func TestVelocityUpdateContextAdjustsInFlightSpring(t *testing.T) {
	engine, animator, box := newTestRig()
	x := FloatPtr("x", &box.X)

	engine.Animate(WithSpring(DefaultSpring), func() {
		Set(animator, x, 100)
	})
	engine.Advance(frame)

	engine.AnimateVelocity(func() {
		Set(animator, x, 900) // interpreted as velocity, units/second
	})

	sa := animator.CurrentAnimation("x").(*SpringAnimation[Float])
	assert.Equal(t, Float(900), sa.Velocity())
}

func TestVelocityUpdateWithoutAnimationIsNoOp(t *testing.T) {
	engine, animator, box := newTestRig()
	x := FloatPtr("x", &box.X)
	box.X = 5

	engine.AnimateVelocity(func() {
		Set(animator, x, 900)
	})

	assert.Equal(t, 5.0, box.X)
	assert.Nil(t, animator.CurrentAnimation("x"))
	assert.Equal(t, 0, engine.ActiveCount())
}

func TestGetVelocity(t *testing.T) {
	engine, animator, box := newTestRig()
	x := FloatPtr("x", &box.X)

	assert.Equal(t, Float(0), GetVelocity(animator, x), "idle velocity is zero")

	engine.Animate(WithSpring(DefaultSpring), func() {
		Set(animator, x, 100)
	})
	for i := 0; i < 6; i++ {
		engine.Advance(frame)
	}
	assert.NotEqual(t, Float(0), GetVelocity(animator, x))

	// Easing animations track no velocity.
	y := FloatPtr("y", &box.Y)
	engine.Animate(WithEasing(Linear, 1.0), func() {
		Set(animator, y, 100)
	})
	engine.Advance(frame)
	assert.Equal(t, Float(0), GetVelocity(animator, y))
}

// --- Composite values through the registry ---

func TestVectorArityReconciledBeforeStart(t *testing.T) {
	engine, animator, box := newTestRig()
	box.Levels = Vector{1, 2, 3}
	levels := Bind("levels", &box.Levels)

	engine.Animate(WithSpring(Spring{DampingRatio: 1, Response: 0.2}), func() {
		Set(animator, levels, Vector{10, 20, 30, 40, 50})
	})

	sa, ok := animator.CurrentAnimation("levels").(*SpringAnimation[Vector])
	require.True(t, ok)
	require.Len(t, sa.Value(), 5, "current padded with zeros, not target truncated")
	require.Len(t, sa.Target(), 5)

	for i := 0; i < 400 && animator.CurrentAnimation("levels") != nil; i++ {
		engine.Advance(frame)
	}
	assert.Equal(t, Vector{10, 20, 30, 40, 50}, box.Levels)
}

func TestTransparentTintFadePreservesTargetHue(t *testing.T) {
	engine, animator, box := newTestRig()
	box.Tint = Color{R: 0.7, G: 0.1, B: 0.1, A: 0}
	tint := Bind("tint", &box.Tint)
	opaque := Color{R: 0.1, G: 0.4, B: 0.9, A: 1}

	engine.Animate(WithEasing(Linear, 0.5), func() {
		Set(animator, tint, opaque)
	})
	engine.Advance(frame)

	assert.InDelta(t, opaque.R, box.Tint.R, 1e-12)
	assert.InDelta(t, opaque.G, box.Tint.G, 1e-12)
	assert.InDelta(t, opaque.B, box.Tint.B, 1e-12)
	assert.Greater(t, box.Tint.A, 0.0)
}

// --- Teardown ---

func TestStopAllFreezesEverything(t *testing.T) {
	engine, animator, box := newTestRig()
	x := FloatPtr("x", &box.X)
	y := FloatPtr("y", &box.Y)

	engine.Animate(WithSpring(DefaultSpring), func() {
		Set(animator, x, 100)
		Set(animator, y, 200)
	})
	for i := 0; i < 6; i++ {
		engine.Advance(frame)
	}
	midX, midY := box.X, box.Y

	animator.StopAll(StopAtCurrentValue)

	assert.Nil(t, animator.CurrentAnimation("x"))
	assert.Nil(t, animator.CurrentAnimation("y"))
	assert.Equal(t, 0, engine.ActiveCount())
	engine.Advance(frame)
	assert.Equal(t, midX, box.X)
	assert.Equal(t, midY, box.Y)
}

func TestCurrentAnimationIntrospection(t *testing.T) {
	engine, animator, box := newTestRig()
	x := FloatPtr("x", &box.X)

	require.Nil(t, animator.CurrentAnimation("x"))

	engine.Animate(WithSpring(DefaultSpring), func() {
		Set(animator, x, 100)
	})
	anim := animator.CurrentAnimation("x")
	require.NotNil(t, anim)
	assert.Equal(t, "x", anim.Key())
	assert.Equal(t, KindSpring, anim.Kind())
}
