// Package geom provides the integer/float vector, rectangle and grid
// primitives the simulators and planners operate on. All distances are
// Manhattan unless stated otherwise.
package geom

// Vec2 is an integer 2D vector. Map positions, move directions and
// segment coordinates are all Vec2 values.
type Vec2 struct {
	X, Y int
}

// Zero is the origin vector.
var Zero = Vec2{}

func New(x, y int) Vec2 { return Vec2{X: x, Y: y} }

// OnlyX returns {x, 0}.
func OnlyX(x int) Vec2 { return Vec2{X: x} }

// OnlyY returns {0, y}.
func OnlyY(y int) Vec2 { return Vec2{Y: y} }

// Both returns {v, v}.
func Both(v int) Vec2 { return Vec2{X: v, Y: v} }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Mul(s int) Vec2  { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Div(s int) Vec2  { return Vec2{a.X / s, a.Y / s} }

func (a Vec2) Abs() Vec2 {
	if a.X < 0 {
		a.X = -a.X
	}
	if a.Y < 0 {
		a.Y = -a.Y
	}
	return a
}

// Sum returns X+Y.
func (a Vec2) Sum() int { return a.X + a.Y }

// Distance returns the Manhattan distance between a and b.
func (a Vec2) Distance(b Vec2) int { return b.Sub(a).Abs().Sum() }

// Lowest returns the component-wise minimum of a and b.
func (a Vec2) Lowest(b Vec2) Vec2 {
	if b.X < a.X {
		a.X = b.X
	}
	if b.Y < a.Y {
		a.Y = b.Y
	}
	return a
}

// Highest returns the component-wise maximum of a and b.
func (a Vec2) Highest(b Vec2) Vec2 {
	if b.X > a.X {
		a.X = b.X
	}
	if b.Y > a.Y {
		a.Y = b.Y
	}
	return a
}

// Center returns the center of the unit cell at a.
func (a Vec2) Center() Vec2F { return Vec2F{float64(a.X) + 0.5, float64(a.Y) + 0.5} }

// Vec2F is a float 2D vector, used by the score fields.
type Vec2F struct {
	X, Y float64
}

func (a Vec2F) Add(b Vec2F) Vec2F  { return Vec2F{a.X + b.X, a.Y + b.Y} }
func (a Vec2F) Sub(b Vec2F) Vec2F  { return Vec2F{a.X - b.X, a.Y - b.Y} }
func (a Vec2F) Mul(s float64) Vec2F { return Vec2F{a.X * s, a.Y * s} }

func (a Vec2F) Abs() Vec2F {
	if a.X < 0 {
		a.X = -a.X
	}
	if a.Y < 0 {
		a.Y = -a.Y
	}
	return a
}

// ManhattanDistance returns |dx|+|dy|.
func (a Vec2F) ManhattanDistance(b Vec2F) float64 {
	d := b.Sub(a).Abs()
	return d.X + d.Y
}

// FromVec2 converts an integer vector to a float one.
func FromVec2(v Vec2) Vec2F { return Vec2F{float64(v.X), float64(v.Y)} }
