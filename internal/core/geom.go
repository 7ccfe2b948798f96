// Package core provides small numeric and geometric helpers shared by the
// simulator packages. It has no external dependencies.
package core

import "math"

// Span is a half-open interval [Lo, Hi) along one axis, in pixels.
type Span struct {
	Lo, Hi int
}

// NewSpan creates a span from its two edges.
func NewSpan(lo, hi int) Span {
	return Span{Lo: lo, Hi: hi}
}

// Overlaps returns true if the two spans share any interior point.
// Touching edges do not count as overlap.
func (s Span) Overlaps(other Span) bool {
	return s.Lo < other.Hi && other.Lo < s.Hi
}

// Len returns the length of the span.
func (s Span) Len() int {
	return s.Hi - s.Lo
}

// FloorDiv divides rounding toward negative infinity, so that pixel
// coordinates above the map (negative) land in negative tile rows.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
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

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RoundHalfUp rounds to the nearest integer, with halves going toward
// positive infinity (-2.5 -> -2, 2.5 -> 3).
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// QuadBezier evaluates a quadratic bezier with endpoints p0, p2 and control
// point p1 at parameter t in [0, 1].
func QuadBezier(p0, p1, p2, t float64) float64 {
	u := 1 - t
	return u*u*p0 + 2*u*t*p1 + t*t*p2
}
