package fold

import (
	"fmt"
	"math"
)

// Point is a value type. Equality is tolerance based, see Equal.
type Point[N Number[N]] struct {
	X, Y N
}

func Pt[N Number[N]](x, y N) Point[N] {
	return Point[N]{x, y}
}

// PtF builds a point from float coordinates, converting them to N.
func PtF[N Number[N]](x, y float64) Point[N] {
	return Point[N]{fromFloat[N](x), fromFloat[N](y)}
}

func (p Point[N]) Add(q Point[N]) Point[N] { return Point[N]{p.X.Add(q.X), p.Y.Add(q.Y)} }
func (p Point[N]) Sub(q Point[N]) Point[N] { return Point[N]{p.X.Sub(q.X), p.Y.Sub(q.Y)} }
func (p Point[N]) Scale(k N) Point[N]      { return Point[N]{p.X.Mul(k), p.Y.Mul(k)} }

func (p Point[N]) Equal(q Point[N]) bool {
	return p.X.Near(q.X) && p.Y.Near(q.Y)
}

// Compare orders points by X, then by Y. Coordinates within Tolerance count as
// equal, so Compare returns 0 exactly when Equal is true.
func (p Point[N]) Compare(q Point[N]) int {
	if !p.X.Near(q.X) {
		return p.X.Cmp(q.X)
	}
	if !p.Y.Near(q.Y) {
		return p.Y.Cmp(q.Y)
	}
	return 0
}

func (p Point[N]) Distance(q Point[N]) float64 {
	d := q.Sub(p)
	return math.Hypot(d.X.Float64(), d.Y.Float64())
}

func (p Point[N]) String() string {
	return p.X.String() + "," + p.Y.String()
}

func cross[N Number[N]](a, b Point[N]) N {
	return a.X.Mul(b.Y).Sub(a.Y.Mul(b.X))
}

func dot[N Number[N]](a, b Point[N]) N {
	return a.X.Mul(b.X).Add(a.Y.Mul(b.Y))
}

// Angle of the direction p0 -> p1, measured from the positive Y axis towards
// positive X.
func Angle[N Number[N]](p0, p1 Point[N]) float64 {
	d := p1.Sub(p0)
	return math.Atan2(d.X.Float64(), d.Y.Float64())
}

// Line is a directed segment from P1 to P2.
type Line[N Number[N]] struct {
	P1, P2 Point[N]
}

func Ln[N Number[N]](p1, p2 Point[N]) Line[N] {
	return Line[N]{p1, p2}
}

func (l Line[N]) Len() float64 { return l.P1.Distance(l.P2) }

func (l Line[N]) Direction() Point[N] { return l.P2.Sub(l.P1) }

// Coincident reports whether p lies on the closed segment.
func (l Line[N]) Coincident(p Point[N]) bool {
	return math.Abs(l.P1.Distance(p)+p.Distance(l.P2)-l.Len()) < Tolerance
}

// Interpolate returns the point alpha of the way from P1 to P2.
func (l Line[N]) Interpolate(alpha N) Point[N] {
	return l.P1.Add(l.Direction().Scale(alpha))
}

// Split cuts the line at Interpolate(alpha).
func (l Line[N]) Split(alpha N) (Line[N], Line[N]) {
	m := l.Interpolate(alpha)
	return Line[N]{l.P1, m}, Line[N]{m, l.P2}
}

// Gradient is dy/dx. ok is false for vertical lines.
func (l Line[N]) Gradient() (g N, ok bool) {
	d := l.Direction()
	if isZero(d.X) {
		return g, false
	}
	return d.Y.Div(d.X), true
}

func (l Line[N]) Reverse() Line[N] { return Line[N]{l.P2, l.P1} }

func (l Line[N]) Equal(o Line[N]) bool {
	return l.P1.Equal(o.P1) && l.P2.Equal(o.P2)
}

// SameSegment ignores direction.
func (l Line[N]) SameSegment(o Line[N]) bool {
	return l.Equal(o) || l.Equal(o.Reverse())
}

func (l Line[N]) String() string {
	return fmt.Sprintf("%v -> %v", l.P1, l.P2)
}

// IsConvex reports whether l0 followed by l1 turns left.
func IsConvex[N Number[N]](l0, l1 Line[N]) bool {
	c := cross(l0.Direction(), l1.P2.Sub(l0.P2))
	return !isZero(c) && c.Cmp(zero[N]()) > 0
}

// Often we want to treat a slice as a circular buffer. This gives the modular
// index for length n, but unlike the raw modulo operator it is never negative.
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}
