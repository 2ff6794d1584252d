package anima

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Animatable is the constraint every value type driven by the engine must
// satisfy. The four operations form a vector space over float64: they are all
// the integrators need for interpolation, velocity math, and settling checks.
// The additive identity of a value v is v.Scale(0), which preserves arity for
// [Vector].
type Animatable[T any] interface {
	// Add returns the component-wise sum.
	Add(T) T
	// Sub returns the component-wise difference.
	Sub(T) T
	// Scale returns a copy with every component multiplied by factor.
	Scale(factor float64) T
	// MagnitudeSquared returns the squared Euclidean norm.
	MagnitudeSquared() float64
}

// reconciler is an optional capability consulted before an animation starts.
// Types whose endpoints need adjusting against each other (length padding,
// transparent-color snapping) implement it; everything else animates as-is.
type reconciler[T any] interface {
	Reconcile(other T) (T, T)
}

// rounder is an optional capability used for pixel snapping when an animation
// is configured to integralize on completion. Geometric types implement it;
// Color and Vector do not.
type rounder[T any] interface {
	Rounded() T
}

// reconcileEndpoints adjusts two animation endpoints against each other when
// the concrete type requires it (see Vector.Reconcile and Color.Reconcile).
func reconcileEndpoints[T Animatable[T]](from, to T) (T, T) {
	if r, ok := any(from).(reconciler[T]); ok {
		return r.Reconcile(to)
	}
	return from, to
}

// integralize snaps v to device pixels when the concrete type supports it.
func integralize[T Animatable[T]](v T) T {
	if r, ok := any(v).(rounder[T]); ok {
		return r.Rounded()
	}
	return v
}

// equalValues reports exact equality via the vector-space operations.
func equalValues[T Animatable[T]](a, b T) bool {
	return a.Sub(b).MagnitudeSquared() == 0
}

// --- Float ---

// Float is a float64 scalar satisfying [Animatable]. Most properties on
// typical host objects (positions, alpha, rotation) are plain float64 fields;
// bind them with [FloatPtr].
type Float float64

// Add returns f + o.
func (f Float) Add(o Float) Float { return f + o }

// Sub returns f - o.
func (f Float) Sub(o Float) Float { return f - o }

// Scale returns f multiplied by factor.
func (f Float) Scale(factor float64) Float { return f * Float(factor) }

// MagnitudeSquared returns f*f.
func (f Float) MagnitudeSquared() float64 { return float64(f) * float64(f) }

// Rounded returns f rounded to the nearest integer.
func (f Float) Rounded() Float { return Float(math.Round(float64(f))) }

// --- Point ---

// Point is a 2D vector used for positions, offsets, and directions.
type Point struct {
	X, Y float64
}

// Add returns the component-wise sum.
func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }

// Sub returns the component-wise difference.
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// Scale returns p with both components multiplied by factor.
func (p Point) Scale(factor float64) Point { return Point{p.X * factor, p.Y * factor} }

// MagnitudeSquared returns X² + Y².
func (p Point) MagnitudeSquared() float64 { return p.X*p.X + p.Y*p.Y }

// Rounded returns p with both components rounded to the nearest integer.
func (p Point) Rounded() Point { return Point{math.Round(p.X), math.Round(p.Y)} }

// --- Size ---

// Size is a 2D extent (width and height).
type Size struct {
	Width, Height float64
}

// Add returns the component-wise sum.
func (s Size) Add(o Size) Size { return Size{s.Width + o.Width, s.Height + o.Height} }

// Sub returns the component-wise difference.
func (s Size) Sub(o Size) Size { return Size{s.Width - o.Width, s.Height - o.Height} }

// Scale returns s with both components multiplied by factor.
func (s Size) Scale(factor float64) Size { return Size{s.Width * factor, s.Height * factor} }

// MagnitudeSquared returns Width² + Height².
func (s Size) MagnitudeSquared() float64 { return s.Width*s.Width + s.Height*s.Height }

// Rounded returns s with both components rounded to the nearest integer.
func (s Size) Rounded() Size { return Size{math.Round(s.Width), math.Round(s.Height)} }

// --- Rect ---

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward. For animation purposes it
// decomposes into origin and size, interpolated component-wise.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Add returns the component-wise sum.
func (r Rect) Add(o Rect) Rect {
	return Rect{r.X + o.X, r.Y + o.Y, r.Width + o.Width, r.Height + o.Height}
}

// Sub returns the component-wise difference.
func (r Rect) Sub(o Rect) Rect {
	return Rect{r.X - o.X, r.Y - o.Y, r.Width - o.Width, r.Height - o.Height}
}

// Scale returns r with all four components multiplied by factor.
func (r Rect) Scale(factor float64) Rect {
	return Rect{r.X * factor, r.Y * factor, r.Width * factor, r.Height * factor}
}

// MagnitudeSquared returns the squared norm over all four components.
func (r Rect) MagnitudeSquared() float64 {
	return r.X*r.X + r.Y*r.Y + r.Width*r.Width + r.Height*r.Height
}

// Rounded returns r with all four components rounded to the nearest integer.
func (r Rect) Rounded() Rect {
	return Rect{math.Round(r.X), math.Round(r.Y), math.Round(r.Width), math.Round(r.Height)}
}

// --- Color ---

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// ColorHex parses a "#rrggbb" hex string into an opaque Color.
func ColorHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, err
	}
	return Color{c.R, c.G, c.B, 1}, nil
}

// ColorHSL constructs an opaque Color from hue (degrees), saturation, and
// lightness.
func ColorHSL(h, s, l float64) Color {
	c := colorful.Hsl(h, s, l)
	return Color{c.R, c.G, c.B, 1}
}

// Add returns the component-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Sub returns the component-wise difference.
func (c Color) Sub(o Color) Color {
	return Color{c.R - o.R, c.G - o.G, c.B - o.B, c.A - o.A}
}

// Scale returns c with all four channels multiplied by factor.
func (c Color) Scale(factor float64) Color {
	return Color{c.R * factor, c.G * factor, c.B * factor, c.A * factor}
}

// MagnitudeSquared returns the squared norm over all four channels.
func (c Color) MagnitudeSquared() float64 {
	return c.R*c.R + c.G*c.G + c.B*c.B + c.A*c.A
}

// Reconcile snaps a fully transparent endpoint to the other endpoint's color
// channels at zero alpha, so a fade never interpolates through an unrelated
// hue while invisible.
func (c Color) Reconcile(other Color) (Color, Color) {
	if c.A == 0 {
		c = Color{other.R, other.G, other.B, 0}
	}
	if other.A == 0 {
		other = Color{c.R, c.G, c.B, 0}
	}
	return c, other
}

// --- Vector ---

// Vector is a variable-length float64 collection satisfying [Animatable].
// Arithmetic between vectors of differing length is defined up to the shorter
// length; endpoints are padded to equal length by [Vector.Reconcile] before an
// animation starts, so the integrators always see matching arity.
type Vector []float64

// Add returns the component-wise sum up to the shorter length.
func (v Vector) Add(o Vector) Vector {
	n := min(len(v), len(o))
	out := make(Vector, n)
	for i := 0; i < n; i++ {
		out[i] = v[i] + o[i]
	}
	return out
}

// Sub returns the component-wise difference up to the shorter length.
func (v Vector) Sub(o Vector) Vector {
	n := min(len(v), len(o))
	out := make(Vector, n)
	for i := 0; i < n; i++ {
		out[i] = v[i] - o[i]
	}
	return out
}

// Scale returns a copy of v with every element multiplied by factor.
func (v Vector) Scale(factor float64) Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = x * factor
	}
	return out
}

// MagnitudeSquared returns the squared Euclidean norm over all elements.
func (v Vector) MagnitudeSquared() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return sum
}

// Reconcile pads the shorter of the two vectors with trailing zeros so both
// operands have the longer one's arity. Neither input is mutated.
func (v Vector) Reconcile(other Vector) (Vector, Vector) {
	n := max(len(v), len(other))
	return v.padded(n), other.padded(n)
}

// padded returns a copy of v extended with trailing zeros to length n.
// Returns v unchanged when it is already long enough.
func (v Vector) padded(n int) Vector {
	if len(v) >= n {
		return v
	}
	out := make(Vector, n)
	copy(out, v)
	return out
}
