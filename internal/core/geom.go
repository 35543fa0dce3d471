// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Vec is a point or displacement in continuous arena space.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// LenSq returns the squared length of v.
func (v Vec) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Rect represents an axis-aligned box used for collision detection.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// ContainsStrict reports whether p lies in the open interior of r.
func (r Rect) ContainsStrict(p Vec) bool {
	return p.X > r.X && p.X < r.Right() && p.Y > r.Y && p.Y < r.Bottom()
}

// Circle is a ball-shaped collider.
type Circle struct {
	Center Vec
	R      float64
}

// Axis names a separation axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// String returns "x" or "y".
func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// NearestPointOnRect clamps p into r independently on each axis.
func NearestPointOnRect(p Vec, r Rect) Vec {
	return Vec{
		X: ClampF(p.X, r.X, r.Right()),
		Y: ClampF(p.Y, r.Y, r.Bottom()),
	}
}

// CircleIntersectsRect reports whether c touches or overlaps r.
func CircleIntersectsRect(c Circle, r Rect) bool {
	near := NearestPointOnRect(c.Center, r)
	return c.Center.Sub(near).LenSq() <= c.R*c.R
}

// Penetration describes how a circle overlaps a rectangle.
type Penetration struct {
	Dist    Vec  // Circle center minus nearest point on the rect
	Overlap Vec  // R - |Dist| per axis
	Axis    Axis // Axis with the smaller overlap
}

// CirclePenetration returns the overlap of c with r, or false if they do not touch.
// The separation axis is X only when its overlap is strictly smaller; ties go to Y.
func CirclePenetration(c Circle, r Rect) (Penetration, bool) {
	near := NearestPointOnRect(c.Center, r)
	d := c.Center.Sub(near)
	if d.LenSq() > c.R*c.R {
		return Penetration{}, false
	}

	p := Penetration{
		Dist: d,
		Overlap: Vec{
			X: c.R - absF(d.X),
			Y: c.R - absF(d.Y),
		},
		Axis: AxisY,
	}
	if p.Overlap.X < p.Overlap.Y {
		p.Axis = AxisX
	}
	return p, true
}

// Push returns the displacement that moves the circle out along the separation axis.
func (p Penetration) Push() Vec {
	if p.Axis == AxisX {
		if p.Dist.X > 0 {
			return Vec{X: p.Overlap.X}
		}
		return Vec{X: -p.Overlap.X}
	}
	if p.Dist.Y > 0 {
		return Vec{Y: p.Overlap.Y}
	}
	return Vec{Y: -p.Overlap.Y}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
