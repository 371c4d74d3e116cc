// Package core provides fundamental types and utilities for the flappy platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a point in world space. Y grows downward.
type Vec2 struct {
	X, Y float64
}

// IsFinite reports whether both components are real numbers.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// RectF is an axis-aligned box in world coordinates.
type RectF struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRectF creates a world rectangle.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as overlap.
func (r RectF) Intersects(other RectF) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Empty reports whether the rectangle has no area.
func (r RectF) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Rect represents a cell-aligned box on a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Viewport maps world coordinates onto a screen of cells.
type Viewport struct {
	WorldW, WorldH   float64
	ScreenW, ScreenH int
}

// X converts a world x-coordinate into a column.
func (v Viewport) X(x float64) int {
	if v.WorldW <= 0 {
		return 0
	}
	return int(math.Floor(x * float64(v.ScreenW) / v.WorldW))
}

// Y converts a world y-coordinate into a row.
func (v Viewport) Y(y float64) int {
	if v.WorldH <= 0 {
		return 0
	}
	return int(math.Floor(y * float64(v.ScreenH) / v.WorldH))
}

// Rect converts a world rectangle into the covering cell rectangle.
func (v Viewport) Rect(r RectF) Rect {
	x0, y0 := v.X(r.X), v.Y(r.Y)
	x1, y1 := v.X(r.Right()), v.Y(r.Bottom())
	if x1 == x0 && r.W > 0 {
		x1 = x0 + 1
	}
	if y1 == y0 && r.H > 0 {
		y1 = y0 + 1
	}
	return NewRect(x0, y0, x1-x0, y1-y0)
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
