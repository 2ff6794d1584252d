// Package anima is a per-property animation engine: it drives spring-physics,
// easing-curve, and decay interpolation of arbitrary values (scalars, points,
// rects, colors, float vectors) on behalf of a host object, with retargeting,
// velocity tracking, grouping, delays, and completion callbacks.
//
// Anima knows nothing about screens or draw cycles. The host's frame loop
// (an [ebiten.Game] Update method, a display-link callback, a plain ticker)
// calls [Engine.Advance] with the elapsed frame delta, and anima writes
// interpolated values back through property setters.
//
// # Quick start
//
// Create one [Engine] per frame loop and one [Animator] per animated object.
// Bind the object's fields as properties, then write them inside an
// animation context:
//
//	engine := anima.NewEngine()
//	animator := anima.NewAnimator(engine)
//
//	x := anima.FloatPtr("x", &box.X)
//	y := anima.FloatPtr("y", &box.Y)
//
//	engine.Animate(anima.WithSpring(anima.Spring{DampingRatio: 0.8, Response: 0.4}), func() {
//		anima.Set(animator, x, 320)
//		anima.Set(animator, y, 240)
//	})
//
// Each frame, advance the engine; the spring integrates one step and the new
// values land in box.X and box.Y:
//
//	func (g *Game) Update() error {
//		g.engine.Advance(1.0 / float64(ebiten.TPS()))
//		return nil
//	}
//
// Writing a property again while it animates retargets the in-flight
// animation; a spring keeps its velocity, so motion stays continuous.
// Writes outside any animation context apply immediately.
//
// # Timing models
//
// Three families share the engine: [Spring] (damped harmonic oscillator,
// configured by damping ratio and response), easing ([CubicBezier] curves or
// any gween preset via [FromTween], over a fixed duration), and [Decay]
// (exponential velocity decay, the motion a fling leaves behind). Pick one
// per context with [WithSpring], [WithEasing], or [WithDecay].
//
// # Values
//
// Any type satisfying [Animatable] can be animated. The package ships
// [Float], [Point], [Size], [Rect], [Color], and [Vector]; composite types
// interpolate component-wise. Vectors of differing length are padded to
// matching arity before a run starts, and a fully transparent [Color]
// endpoint adopts the opposite endpoint's channels so fades never hue-shift
// through an invisible color.
//
// # Grouping and completion
//
// Animations started in the same context form a group;
// [Engine.AnimateWithCompletion] fires its handler once after every member
// settles or is stopped. Velocity-update contexts
// ([Engine.AnimateVelocity]) adjust in-flight velocity instead of starting
// animations, which is how a gesture's fling is handed off.
//
// All operations are single-goroutine by design: the engine is a per-frame
// hot path and implements no locking. Drive it from one goroutine only.
//
// [ebiten.Game]: https://pkg.go.dev/github.com/hajimehoshi/ebiten/v2#Game
package anima
