package model

import "math"

// Point is a 32-bit logical point (POINTL)
type Point struct {
	X int32
	Y int32
}

// Point16 is a 16-bit point (POINTS), used by the compact poly records
type Point16 struct {
	X int16
	Y int16
}

// Point widens a 16-bit point
func (p Point16) Point() Point {
	return Point{X: int32(p.X), Y: int32(p.Y)}
}

// Fits16 reports whether both coordinates fit in a signed 16-bit value
func (p Point) Fits16() bool {
	return p.X >= math.MinInt16 && p.X <= math.MaxInt16 &&
		p.Y >= math.MinInt16 && p.Y <= math.MaxInt16
}

// Point16 narrows the point; callers check Fits16 first
func (p Point) Point16() Point16 {
	return Point16{X: int16(p.X), Y: int16(p.Y)}
}

// Rect is an inclusive-exclusive rectangle (RECTL)
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// EmptyBounds is the rectangle written when a record carries no meaningful bounds
var EmptyBounds = Rect{Left: 0, Top: 0, Right: -1, Bottom: -1}

// Size is a two-dimensional extent (SIZEL)
type Size struct {
	CX int32
	CY int32
}

// XForm is a 2-D affine transform (XFORM)
type XForm struct {
	M11 float32
	M12 float32
	M21 float32
	M22 float32
	Dx  float32
	Dy  float32
}

// IdentityXForm leaves coordinates unchanged
var IdentityXForm = XForm{M11: 1, M22: 1}

// Multiply returns the transform that applies x first and then y
func (x XForm) Multiply(y XForm) XForm {
	return XForm{
		M11: x.M11*y.M11 + x.M12*y.M21,
		M12: x.M11*y.M12 + x.M12*y.M22,
		M21: x.M21*y.M11 + x.M22*y.M21,
		M22: x.M21*y.M12 + x.M22*y.M22,
		Dx:  x.Dx*y.M11 + x.Dy*y.M21 + y.Dx,
		Dy:  x.Dx*y.M12 + x.Dy*y.M22 + y.Dy,
	}
}

// Points16Fit reports whether every point can be stored as a Point16
func Points16Fit(points []Point) bool {
	for _, p := range points {
		if !p.Fits16() {
			return false
		}
	}
	return true
}

// ToPoints16 narrows a slice of points
func ToPoints16(points []Point) []Point16 {
	if len(points) == 0 {
		return nil
	}
	out := make([]Point16, len(points))
	for i, p := range points {
		out[i] = p.Point16()
	}
	return out
}

// FromPoints16 widens a slice of 16-bit points
func FromPoints16(points []Point16) []Point {
	if len(points) == 0 {
		return nil
	}
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = p.Point()
	}
	return out
}

// BoundsOf returns the smallest rectangle containing all points.
// An empty slice yields EmptyBounds.
func BoundsOf(points []Point) Rect {
	if len(points) == 0 {
		return EmptyBounds
	}
	r := Rect{
		Left:   math.MaxInt32,
		Top:    math.MaxInt32,
		Right:  math.MinInt32,
		Bottom: math.MinInt32,
	}
	for _, p := range points {
		r.Left = min(r.Left, p.X)
		r.Top = min(r.Top, p.Y)
		r.Right = max(r.Right, p.X)
		r.Bottom = max(r.Bottom, p.Y)
	}
	return r
}
