package fold

import (
	"sort"

	"github.com/pkg/errors"
)

// IntersectDiscrete intersects two segments. With t the parameter along a and
// s the parameter along b, a point is returned only for t in [0,1] and s in
// [0,1). The open end on b means that walking a polygon's edges in order
// reports a crossing at a shared vertex once. Both bounds are widened by
// Tolerance so float round-off at a vertex doesn't lose the crossing.
func IntersectDiscrete[N Number[N]](a, b Line[N]) (Point[N], bool) {
	s1 := a.Direction()
	s2 := b.Direction()
	denom := cross(s1, s2)
	if isZero(denom) {
		return Point[N]{}, false
	}
	c1 := a.P1.Sub(b.P1)
	s := cross(s1, c1).Div(denom)
	t := cross(s2, c1).Div(denom)

	eps := fromFloat[N](Tolerance)
	lo := eps.Neg()
	o := one[N]()
	if s.Cmp(lo) < 0 || s.Cmp(o.Sub(eps)) >= 0 {
		return Point[N]{}, false
	}
	if t.Cmp(lo) < 0 || t.Cmp(o.Add(eps)) > 0 {
		return Point[N]{}, false
	}
	return a.P1.Add(s1.Scale(t)), true
}

// IntersectInf intersects the infinite lines through a and b.
func IntersectInf[N Number[N]](a, b Line[N]) (Point[N], bool) {
	da := a.P1.Sub(a.P2)
	db := b.P1.Sub(b.P2)
	det := cross(da, db)
	if isZero(det) {
		return Point[N]{}, false
	}
	ca := cross(a.P1, a.P2)
	cb := cross(b.P1, b.P2)
	return Point[N]{
		ca.Mul(db.X).Sub(da.X.Mul(cb)).Div(det),
		ca.Mul(db.Y).Sub(da.Y.Mul(cb)).Div(det),
	}, true
}

// Find the chord a line makes across a polygon. Endpoints of the line lying on
// the boundary count as crossings. With discrete set the line is a segment;
// otherwise it is extended in both directions. The chord runs from the
// smaller point to the larger in Compare order.
func intersectPoly[N Number[N]](line Line[N], other Polygon[N], discrete bool) (Line[N], bool, error) {
	var candidates []Point[N]
	for _, boundary := range other.Lines() {
		if boundary.Coincident(line.P1) {
			candidates = append(candidates, line.P1)
		}
		if boundary.Coincident(line.P2) {
			candidates = append(candidates, line.P2)
		}

		if discrete {
			if p, ok := IntersectDiscrete(line, boundary); ok {
				candidates = append(candidates, p)
			}
		} else if p, ok := IntersectInf(line, boundary); ok && boundary.Coincident(p) {
			candidates = append(candidates, p)
		}
	}

	candidates = uniquePoints(candidates)
	switch {
	case len(candidates) < 2:
		return Line[N]{}, false, nil
	case len(candidates) == 2:
		return Line[N]{candidates[0], candidates[1]}, true, nil
	case other.IsConvex():
		// The extra points are collinear along the chord, typically because the
		// line runs along an edge. The extremes bound it.
		return Line[N]{candidates[0], candidates[len(candidates)-1]}, true, nil
	}
	return Line[N]{}, false, errors.Wrapf(ErrAmbiguousChord, "%v crosses polygon at %d points", line, len(candidates))
}

// Sort points and drop those Equal to their predecessor.
func uniquePoints[N Number[N]](points []Point[N]) []Point[N] {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Compare(points[j]) < 0
	})
	out := points[:0]
	for i, p := range points {
		if i > 0 && p.Equal(out[len(out)-1]) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// IntersectPolyDiscrete returns where the segment crosses the polygon's
// boundary, if it crosses at exactly two points.
func IntersectPolyDiscrete[N Number[N]](line Line[N], other Polygon[N]) (Line[N], bool, error) {
	return intersectPoly(line, other, true)
}

// IntersectPolyInf is IntersectPolyDiscrete for the line extended to infinity
// in both directions.
func IntersectPolyInf[N Number[N]](line Line[N], other Polygon[N]) (Line[N], bool, error) {
	return intersectPoly(line, other, false)
}

// SliceyEdges returns the chords that poly's edges cut across other. An edge
// qualifies if it crosses other's boundary at two points, or if it has an end
// inside other, in which case the edge is extended until it meets the
// boundary.
func (poly Polygon[N]) SliceyEdges(other Polygon[N]) ([]Line[N], error) {
	var chords []Line[N]
	for _, edge := range poly.Lines() {
		chord, ok, err := IntersectPolyDiscrete(edge, other)
		if err != nil {
			return nil, err
		}
		if !ok && (other.Contains(edge.P1) || other.Contains(edge.P2)) {
			chord, ok, err = IntersectPolyInf(edge, other)
			if err != nil {
				return nil, err
			}
		}
		if ok {
			Logger().Debug("slicey edge", "edge", edge.String(), "chord", chord.String())
			chords = append(chords, chord)
		}
	}
	return chords, nil
}

// ClosestVertex searches the frame lines in order and stops at the first one
// that has any of poly's vertices on it. Of those vertices, the one nearest
// origin wins. ok is false when no vertex lies on any frame line.
func ClosestVertex[N Number[N]](poly Polygon[N], frame []Line[N], origin Point[N]) (Point[N], bool) {
	for _, boundary := range frame {
		var best Point[N]
		found := false
		for _, p := range poly.Points {
			if !boundary.Coincident(p) {
				continue
			}
			if !found || origin.Distance(p) < origin.Distance(best) {
				best, found = p, true
			}
		}
		if found {
			return best, true
		}
	}
	return Point[N]{}, false
}
