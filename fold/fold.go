package fold

import (
	"context"
	"log/slog"
	"sort"

	"github.com/osuushi/origami/dbg"
	"github.com/pkg/errors"
)

// CanFold reports whether both fold vertices lie on the polygon's boundary.
func CanFold[N Number[N]](poly Polygon[N], v1, v2 Point[N]) bool {
	return poly.OnBoundary(v1) && poly.OnBoundary(v2)
}

// Which side of the line through v1 and v2 p is on: 1 for left, -1 for right,
// 0 for on the line.
func side[N Number[N]](p, v1, v2 Point[N]) int {
	c := cross(v2.Sub(v1), p.Sub(v1))
	if isZero(c) {
		return 0
	}
	return c.Cmp(zero[N]())
}

type ringPoint[N Number[N]] struct {
	Point[N]
	cut bool
}

// SplitPolygon cuts poly along the crease from v1 to v2. Both fold vertices
// must be on the boundary; one that falls inside an edge is inserted there.
// The halves share the two fold vertices and keep poly's transform.
//
// A crease that touches the boundary anywhere other than v1 and v2, or that
// leaves a half with fewer than three points, is ErrAmbiguousSplit.
func SplitPolygon[N Number[N]](poly Polygon[N], v1, v2 Point[N]) (Polygon[N], Polygon[N], error) {
	if v1.Equal(v2) {
		return Polygon[N]{}, Polygon[N]{}, ErrDegenerateCrease
	}
	crease := Ln(v1, v2)
	folds := []Point[N]{v1, v2}
	placed := make([]bool, len(folds))

	var ring []ringPoint[N]
	for _, edge := range poly.Edges() {
		var inner []Point[N]
		for k, v := range folds {
			if placed[k] || v.Equal(edge.P1) || v.Equal(edge.P2) || !edge.Coincident(v) {
				continue
			}
			inner = append(inner, v)
			placed[k] = true
		}
		sort.Slice(inner, func(i, j int) bool {
			return edge.P1.Distance(inner[i]) < edge.P1.Distance(inner[j])
		})
		for _, v := range inner {
			ring = append(ring, ringPoint[N]{v, true})
		}

		cut := false
		for k, v := range folds {
			if !placed[k] && v.Equal(edge.P2) {
				placed[k] = true
				cut = true
			}
		}
		if !cut && crease.Coincident(edge.P2) {
			return Polygon[N]{}, Polygon[N]{}, errors.Wrapf(ErrAmbiguousSplit, "vertex %v lies on crease %v", edge.P2, crease)
		}
		ring = append(ring, ringPoint[N]{edge.P2, cut})

		if p, ok := IntersectDiscrete(edge, crease); ok && !p.Equal(v1) && !p.Equal(v2) {
			return Polygon[N]{}, Polygon[N]{}, errors.Wrapf(ErrAmbiguousSplit, "crease %v crosses edge %v", crease, edge)
		}
	}

	var cuts []int
	for i, rp := range ring {
		if rp.cut {
			cuts = append(cuts, i)
		}
	}
	if len(cuts) != 2 {
		return Polygon[N]{}, Polygon[N]{}, errors.Wrapf(ErrNotAnchored, "crease %v meets boundary at %d fold vertices", crease, len(cuts))
	}

	i, j := cuts[0], cuts[1]
	half1 := append(append([]ringPoint[N](nil), ring[j:]...), ring[:i+1]...)
	half2 := ring[i : j+1]
	if len(half1) < 3 || len(half2) < 3 {
		return Polygon[N]{}, Polygon[N]{}, errors.Wrapf(ErrAmbiguousSplit, "crease %v runs along the boundary", crease)
	}
	return NewPolygon(ringPoints(half1)).WithTransform(poly.Transform),
		NewPolygon(ringPoints(half2)).WithTransform(poly.Transform),
		nil
}

func ringPoints[N Number[N]](ring []ringPoint[N]) []Point[N] {
	points := make([]Point[N], len(ring))
	for i, rp := range ring {
		points[i] = rp.Point
	}
	return points
}

// FlipPolygon reflects poly across the line through v1 and v2. The points are
// reversed so the winding is preserved, and the reflection is composed onto
// the existing transform.
func FlipPolygon[N Number[N]](poly Polygon[N], v1, v2 Point[N]) (Polygon[N], error) {
	r, err := ReflectMatrix(v1, v2)
	if err != nil {
		return Polygon[N]{}, err
	}
	n := len(poly.Points)
	points := make([]Point[N], n)
	for i, p := range poly.Points {
		points[n-1-i] = r.Transform(p)
	}
	return NewPolygon(points).WithTransform(poly.Transform.Mul(r)), nil
}

// FoldPolygon splits poly along v1-v2 and reflects the half that does not
// contain the anchor's side. The anchor must not lie on the crease line.
func FoldPolygon[N Number[N]](poly Polygon[N], v1, v2, anchor Point[N]) (fixed, flipped Polygon[N], err error) {
	anchorSide := side(anchor, v1, v2)
	if anchorSide == 0 {
		return fixed, flipped, errors.Wrapf(ErrAnchorOnCrease, "anchor %v", anchor)
	}
	half1, half2, err := SplitPolygon(poly, v1, v2)
	if err != nil {
		return fixed, flipped, err
	}
	fixed, flipped = half1, half2
	if polygonSide(half1, v1, v2) != anchorSide {
		fixed, flipped = half2, half1
	}
	flipped, err = FlipPolygon(flipped, v1, v2)
	return fixed, flipped, err
}

// The side of the first vertex that is off the line.
func polygonSide[N Number[N]](poly Polygon[N], v1, v2 Point[N]) int {
	for _, p := range poly.Points {
		if s := side(p, v1, v2); s != 0 {
			return s
		}
	}
	return 0
}

// FoldOrigami folds every polygon of state that the crease v1-v2 is anchored
// on, in place of the polygon. The others pass through. On error the input
// state is untouched and nil is returned, so the caller can try another
// crease.
func FoldOrigami[N Number[N]](state []Polygon[N], v1, v2, anchor Point[N]) ([]Polygon[N], error) {
	next := make([]Polygon[N], 0, len(state)+1)
	for _, poly := range state {
		if !CanFold(poly, v1, v2) {
			next = append(next, poly)
			continue
		}
		fixed, flipped, err := FoldPolygon(poly, v1, v2, anchor)
		if err != nil {
			return nil, err
		}
		next = append(next, fixed, flipped)
	}
	return next, nil
}

// FoldAlong folds the whole state across the infinite line through crease.
// Facets entirely on the anchor's side stay, facets entirely on the other
// side are reflected whole, and facets the line passes through are split at
// the chord it cuts through them.
func FoldAlong[N Number[N]](state []Polygon[N], crease Line[N], anchor Point[N]) ([]Polygon[N], error) {
	v1, v2 := crease.P1, crease.P2
	if v1.Equal(v2) {
		return nil, ErrDegenerateCrease
	}
	anchorSide := side(anchor, v1, v2)
	if anchorSide == 0 {
		return nil, errors.Wrapf(ErrAnchorOnCrease, "anchor %v", anchor)
	}

	next := make([]Polygon[N], 0, len(state)*2)
	for _, facet := range state {
		near, far := false, false
		for _, p := range facet.Points {
			switch side(p, v1, v2) {
			case anchorSide:
				near = true
			case -anchorSide:
				far = true
			}
		}

		switch {
		case !far:
			next = append(next, facet)
		case !near:
			flipped, err := FlipPolygon(facet, v1, v2)
			if err != nil {
				return nil, err
			}
			next = append(next, flipped)
		default:
			chord, ok, err := IntersectPolyInf(crease, facet)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, errors.Wrapf(ErrAmbiguousSplit, "crease %v straddles facet without a chord", crease)
			}
			fixed, flipped, err := FoldPolygon(facet, chord.P1, chord.P2, anchor)
			if err != nil {
				return nil, err
			}
			if Logger().Enabled(context.Background(), slog.LevelDebug) {
				Logger().Debug("split facet",
					"facet", dbg.Name(facet.Points),
					"fixed", dbg.Name(fixed.Points),
					"flipped", dbg.Name(flipped.Points))
			}
			next = append(next, fixed, flipped)
		}
	}
	return next, nil
}
