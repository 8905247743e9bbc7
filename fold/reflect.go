package fold

// ReflectMatrix builds the reflection across the line through v1 and v2:
// move v1 to the origin, rotate the crease onto the x axis, flip y, rotate
// back and move back. The rotations use the unnormalized direction (1, g)
// where g is the gradient, so the result is exact for Rat; the stray scale of
// 1+g² is divided back out.
func ReflectMatrix[N Number[N]](v1, v2 Point[N]) (Matrix33[N], error) {
	if v1.Equal(v2) {
		return Matrix33[N]{}, ErrDegenerateCrease
	}
	toOrigin := Translate(v1.X.Neg(), v1.Y.Neg())
	back := Translate(v1.X, v1.Y)
	o := one[N]()

	g, ok := Ln(v1, v2).Gradient()
	if !ok {
		return toOrigin.ThenScale(o.Neg(), o).Mul(back), nil
	}
	k := o.Div(o.Add(g.Mul(g)))
	return toOrigin.
		ThenRotate(g.Neg(), o).
		ThenScale(o, o.Neg()).
		ThenRotate(g, o).
		ThenScale(k, k).
		Mul(back), nil
}

// FlipPoint reflects p across the line through v1 and v2 using the closed
// form for a line y = ax + c. v1 and v2 must differ.
func FlipPoint[N Number[N]](p, v1, v2 Point[N]) Point[N] {
	a, ok := Ln(v1, v2).Gradient()
	if !ok {
		return Point[N]{v1.X.Add(v1.X).Sub(p.X), p.Y}
	}
	o := one[N]()
	two := o.Add(o)
	c := v1.Y.Sub(v1.X.Mul(a))
	d := p.X.Add(p.Y.Sub(c).Mul(a)).Div(o.Add(a.Mul(a)))
	return Point[N]{
		two.Mul(d).Sub(p.X),
		two.Mul(d).Mul(a).Sub(p.Y).Add(two.Mul(c)),
	}
}

func FlipLine[N Number[N]](l Line[N], v1, v2 Point[N]) Line[N] {
	return Line[N]{FlipPoint(l.P1, v1, v2), FlipPoint(l.P2, v1, v2)}
}

// FoldLine folds a segment across the crease v1-v2. If the segment crosses the
// crease, P1's side stays put and the P2 side is reflected, giving two
// segments that both start at the crossing. Otherwise the whole segment is
// reflected.
func FoldLine[N Number[N]](l Line[N], v1, v2 Point[N]) []Line[N] {
	p, ok := IntersectDiscrete(l, Ln(v1, v2))
	if !ok {
		return []Line[N]{FlipLine(l, v1, v2)}
	}
	return []Line[N]{
		{p, l.P1},
		{p, FlipPoint(l.P2, v1, v2)},
	}
}
