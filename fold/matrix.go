package fold

import (
	"fmt"
	"math"
	"strings"
)

// Matrix33 is a row-major 3x3 affine matrix in homogeneous coordinates. Points
// are row vectors, so a point p maps to p·M and the translation lives in the
// bottom row. The last column stays (0, 0, 1) as long as matrices are built
// from the constructors below and their products.
type Matrix33[N Number[N]] [9]N

func NewMatrix33[N Number[N]](r0, r1, r2 [3]N) Matrix33[N] {
	return Matrix33[N]{
		r0[0], r0[1], r0[2],
		r1[0], r1[1], r1[2],
		r2[0], r2[1], r2[2],
	}
}

func Identity[N Number[N]]() Matrix33[N] {
	o, l := zero[N](), one[N]()
	return Matrix33[N]{
		l, o, o,
		o, l, o,
		o, o, l,
	}
}

func Translate[N Number[N]](tx, ty N) Matrix33[N] {
	m := Identity[N]()
	m[6], m[7] = tx, ty
	return m
}

// Rotate takes the sine and cosine of the angle rather than the angle, so
// exact callers can rotate onto a rational direction. The pair does not have
// to be normalized; an unnormalized pair also scales by its length.
func Rotate[N Number[N]](sin, cos N) Matrix33[N] {
	m := Identity[N]()
	m[0], m[1] = cos, sin
	m[3], m[4] = sin.Neg(), cos
	return m
}

// RotateAngle rotates counterclockwise by radians. The result is only as exact
// as math.Sincos.
func RotateAngle[N Number[N]](radians float64) Matrix33[N] {
	s, c := math.Sincos(radians)
	return Rotate(fromFloat[N](s), fromFloat[N](c))
}

func Scale[N Number[N]](sx, sy N) Matrix33[N] {
	m := Identity[N]()
	m[0], m[4] = sx, sy
	return m
}

func Shear[N Number[N]](kx, ky N) Matrix33[N] {
	m := Identity[N]()
	m[1], m[3] = ky, kx
	return m
}

func (m Matrix33[N]) At(row, col int) N {
	return m[row*3+col]
}

// Mul returns m·o: apply m first, then o.
func (m Matrix33[N]) Mul(o Matrix33[N]) Matrix33[N] {
	var r Matrix33[N]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := m[i*3].Mul(o[j])
			for k := 1; k < 3; k++ {
				sum = sum.Add(m[i*3+k].Mul(o[k*3+j]))
			}
			r[i*3+j] = sum
		}
	}
	return r
}

func (m Matrix33[N]) ThenScale(sx, sy N) Matrix33[N]    { return m.Mul(Scale(sx, sy)) }
func (m Matrix33[N]) ThenRotate(sin, cos N) Matrix33[N] { return m.Mul(Rotate(sin, cos)) }
func (m Matrix33[N]) ThenTranslate(tx, ty N) Matrix33[N] {
	return m.Mul(Translate(tx, ty))
}

func (m Matrix33[N]) Transform(p Point[N]) Point[N] {
	return Point[N]{
		p.X.Mul(m[0]).Add(p.Y.Mul(m[3])).Add(m[6]),
		p.X.Mul(m[1]).Add(p.Y.Mul(m[4])).Add(m[7]),
	}
}

func (m Matrix33[N]) TransformLine(l Line[N]) Line[N] {
	return Line[N]{m.Transform(l.P1), m.Transform(l.P2)}
}

func (m Matrix33[N]) Det() N {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]
	return a.Mul(e).Mul(i).
		Add(b.Mul(f).Mul(g)).
		Add(c.Mul(d).Mul(h)).
		Sub(c.Mul(e).Mul(g)).
		Sub(b.Mul(d).Mul(i)).
		Sub(a.Mul(f).Mul(h))
}

// Div divides every element by n.
func (m Matrix33[N]) Div(n N) Matrix33[N] {
	var r Matrix33[N]
	for i := range m {
		r[i] = m[i].Div(n)
	}
	return r
}

// Inverse uses the adjugate over the determinant. A determinant within
// Tolerance of zero returns ErrSingularMatrix.
func (m Matrix33[N]) Inverse() (Matrix33[N], error) {
	det := m.Det()
	if isZero(det) {
		return Matrix33[N]{}, ErrSingularMatrix
	}
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]

	ca := e.Mul(i).Sub(f.Mul(h))
	cb := f.Mul(g).Sub(d.Mul(i))
	cc := d.Mul(h).Sub(e.Mul(g))
	cd := c.Mul(h).Sub(b.Mul(i))
	ce := a.Mul(i).Sub(c.Mul(g))
	cf := b.Mul(g).Sub(a.Mul(h))
	cg := b.Mul(f).Sub(c.Mul(e))
	ch := c.Mul(d).Sub(a.Mul(f))
	ci := a.Mul(e).Sub(b.Mul(d))

	adj := NewMatrix33(
		[3]N{ca, cd, cg},
		[3]N{cb, ce, ch},
		[3]N{cc, cf, ci},
	)
	return adj.Div(det), nil
}

func (m Matrix33[N]) Equal(o Matrix33[N]) bool {
	for i := range m {
		if !m[i].Near(o[i]) {
			return false
		}
	}
	return true
}

func (m Matrix33[N]) String() string {
	var sb strings.Builder
	for r := 0; r < 3; r++ {
		fmt.Fprintf(&sb, "[%v %v %v]", m[r*3], m[r*3+1], m[r*3+2])
		if r < 2 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
