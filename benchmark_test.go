package anima

import (
	"fmt"
	"testing"
)

// setupBenchSprings starts n independent spring animations, each driving its
// own float property, and returns the engine mid-flight.
func setupBenchSprings(n int) (*Engine, []float64) {
	engine := NewEngine()
	animator := NewAnimator(engine)
	fields := make([]float64, n)
	spring := Spring{DampingRatio: 0.85, Response: 2.0} // slow, stays running
	engine.Animate(WithSpring(spring), func() {
		for i := range fields {
			Set(animator, FloatPtr(fmt.Sprintf("x%d", i), &fields[i]), 100)
		}
	})
	engine.Advance(1.0 / 60.0) // warm the coefficient cache
	return engine, fields
}

// --- Advance Benchmarks ---

func BenchmarkAdvance_1000Springs(b *testing.B) {
	engine, _ := setupBenchSprings(1000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		engine.Advance(1.0 / 60.0)
	}
}

func BenchmarkAdvance_10000Springs(b *testing.B) {
	engine, _ := setupBenchSprings(10000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		engine.Advance(1.0 / 60.0)
	}
}

func BenchmarkAdvance_1000Easings(b *testing.B) {
	engine := NewEngine()
	animator := NewAnimator(engine)
	fields := make([]float64, 1000)
	// An hour-long run so no animation settles inside the benchmark loop.
	engine.Animate(WithEasing(EaseInOut, 3600), func() {
		for i := range fields {
			Set(animator, FloatPtr(fmt.Sprintf("x%d", i), &fields[i]), 100)
		}
	})
	engine.Advance(1.0 / 60.0) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		engine.Advance(1.0 / 60.0)
	}
}

// --- Step Benchmarks ---

func BenchmarkSpringStep_Float(b *testing.B) {
	anim := NewSpringAnimation("x", DefaultSpring, Float(0), Float(100))
	anim.start()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if anim.State() != StateRunning {
			anim.Reset()
			anim.start()
		}
		anim.advance(1.0 / 60.0)
	}
}

func BenchmarkSpringStep_Vector16(b *testing.B) {
	from := make(Vector, 16)
	to := make(Vector, 16)
	for i := range to {
		to[i] = float64(i) * 10
	}
	anim := NewSpringAnimation("levels", DefaultSpring, from, to)
	anim.start()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if anim.State() != StateRunning {
			anim.Reset()
			anim.start()
		}
		anim.advance(1.0 / 60.0)
	}
}

func BenchmarkBezierSolve(b *testing.B) {
	curve := CubicBezier{0.42, 0, 0.58, 1}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		curve.Solve(float64(i%1000) / 1000)
	}
}

// --- Write Path Benchmarks ---

func BenchmarkSet_RetargetInFlight(b *testing.B) {
	engine := NewEngine()
	animator := NewAnimator(engine)
	var field float64
	x := FloatPtr("x", &field)
	params := WithSpring(Spring{DampingRatio: 0.85, Response: 2.0})
	engine.Animate(params, func() {
		Set(animator, x, 100)
	})
	engine.Advance(1.0 / 60.0)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		engine.Animate(params, func() {
			Set(animator, x, Float(i%200))
		})
	}
}
