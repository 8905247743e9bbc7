package fold

import (
	"math"

	"github.com/pkg/errors"
)

// SquareFromCorner places a unit square in the corner formed by l0 and l1,
// which must meet at l0.P2 == l1.P1. Lines meeting at l0.P1 == l1.P2 are
// both reversed first. The square's transform carries the source unit square onto it.
func SquareFromCorner[N Number[N]](l0, l1 Line[N]) (Polygon[N], error) {
	if l0.P1.Equal(l1.P2) && !l0.P2.Equal(l1.P1) {
		l0, l1 = l0.Reverse(), l1.Reverse()
	}
	if !l0.P2.Equal(l1.P1) {
		return Polygon[N]{}, errors.Wrapf(ErrNoCorner, "%v and %v", l0, l1)
	}
	c := l0.P2
	u, ok := unit(l0.P1.Sub(c))
	if !ok {
		return Polygon[N]{}, errors.Wrapf(ErrNoCorner, "%v has zero length", l0)
	}
	w, ok := unit(l1.P2.Sub(c))
	if !ok {
		return Polygon[N]{}, errors.Wrapf(ErrNoCorner, "%v has zero length", l1)
	}

	o := one[N]()
	t := Rotate(u.Y, u.X)
	if cross(u, w).Cmp(zero[N]()) < 0 {
		t = Scale(o, o.Neg()).Mul(t)
	}
	t = t.ThenTranslate(c.X, c.Y)

	square := NewPolygon(unitSquare[N]())
	points := make([]Point[N], len(square.Points))
	for i, p := range square.Points {
		points[i] = t.Transform(p)
	}
	poly := NewPolygon(points)
	if poly.IsHole() {
		poly = poly.Reverse()
	}
	return poly.WithTransform(t), nil
}

func unitSquare[N Number[N]]() []Point[N] {
	o, l := zero[N](), one[N]()
	return []Point[N]{Pt(o, o), Pt(l, o), Pt(l, l), Pt(o, l)}
}

// Scale p to length 1. The length is taken in float64, so for Rat the result
// is exact only when it happens to be representable.
func unit[N Number[N]](p Point[N]) (Point[N], bool) {
	d := math.Hypot(p.X.Float64(), p.Y.Float64())
	if d < Tolerance {
		return p, false
	}
	if math.Abs(d-1) < Tolerance/1e3 {
		return p, true
	}
	return p.Scale(fromFloat[N](1 / d)), true
}

// InitialSquare chooses where the unfolded paper starts: in the first convex
// right-angled corner of an outer polygon. A silhouette without one gets an
// axis-aligned square at its lower left bound.
func InitialSquare[N Number[N]](shape Shape[N]) (Polygon[N], error) {
	outer := shape.Outer()
	if len(outer) == 0 {
		return Polygon[N]{}, ErrEmptyShape
	}
	for _, poly := range outer {
		for _, corner := range poly.Corners() {
			in, out := corner[0], corner[1]
			if !IsConvex(in, out) || !isZero(dot(in.Direction(), out.Direction())) {
				continue
			}
			return SquareFromCorner(in, out)
		}
	}

	lo := outer[0].Points[0]
	for _, poly := range outer {
		for _, p := range poly.Points {
			if p.X.Cmp(lo.X) < 0 {
				lo.X = p.X
			}
			if p.Y.Cmp(lo.Y) < 0 {
				lo.Y = p.Y
			}
		}
	}
	Logger().Info("no right-angled corner, using axis-aligned square", "origin", lo.String())
	t := Translate(lo.X, lo.Y)
	points := unitSquare[N]()
	for i, p := range points {
		points[i] = t.Transform(p)
	}
	return NewPolygon(points).WithTransform(t), nil
}

// GetNextEdgeToFold picks the longest chord that the silhouette's edges cut
// across base. Chords lying along one of base's own edges would fold nothing
// and are skipped. ErrNoCandidate means base is already inside the
// silhouette's edges.
func GetNextEdgeToFold[N Number[N]](base, silhouette Polygon[N]) (Line[N], error) {
	chords, err := silhouette.SliceyEdges(base)
	if err != nil {
		return Line[N]{}, err
	}
	var longest Line[N]
	found := false
	for _, chord := range chords {
		if chord.Len() < Tolerance || alongEdge(base, chord) {
			continue
		}
		Logger().Debug("candidate crease", "chord", chord.String(), "length", chord.Len())
		if !found || chord.Len() > longest.Len() {
			longest, found = chord, true
		}
	}
	if !found {
		return Line[N]{}, ErrNoCandidate
	}
	return longest, nil
}

func alongEdge[N Number[N]](poly Polygon[N], l Line[N]) bool {
	for _, edge := range poly.Lines() {
		if edge.Coincident(l.P1) && edge.Coincident(l.P2) {
			return true
		}
	}
	return false
}

// Solver folds a unit square towards a silhouette by repeatedly folding along
// the longest silhouette edge still cutting across the paper.
type Solver[N Number[N]] struct {
	// MaxFolds caps the fold loop. Zero means DefaultMaxFolds.
	MaxFolds int
}

const DefaultMaxFolds = 64

// Result is the final fold state.
type Result[N Number[N]] struct {
	Facets  []Polygon[N]
	Creases []Line[N]
	Folds   int
}

func (s Solver[N]) Solve(shape Shape[N]) (result Result[N], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = HandleFoldPanicRecover(r)
		}
	}()

	maxFolds := s.MaxFolds
	if maxFolds <= 0 {
		maxFolds = DefaultMaxFolds
	}

	silhouette, ok := largestOuter(shape)
	if !ok {
		return result, ErrEmptyShape
	}
	base, err := InitialSquare(shape)
	if err != nil {
		return result, err
	}
	state := []Polygon[N]{base}

	for {
		crease, err := nextCrease(state, silhouette)
		if errors.Is(err, ErrNoCandidate) {
			break
		}
		if err != nil {
			return result, err
		}
		if result.Folds >= maxFolds {
			return result, errors.Wrapf(ErrFoldLimit, "after %d folds", result.Folds)
		}

		anchor := farthestVertex(silhouette, crease)
		next, err := FoldAlong(state, crease, anchor)
		if err != nil {
			return result, errors.Wrapf(err, "fold %d along %v", result.Folds+1, crease)
		}
		state = next
		result.Folds++
		result.Creases = append(result.Creases, crease)
		Logger().Debug("folded", "crease", crease.String(), "facets", len(state))
	}

	result.Facets = state
	Logger().Info("solved", "folds", result.Folds, "facets", len(state))
	return result, nil
}

func nextCrease[N Number[N]](state []Polygon[N], silhouette Polygon[N]) (Line[N], error) {
	var best Line[N]
	found := false
	for _, facet := range state {
		crease, err := GetNextEdgeToFold(facet, silhouette)
		if errors.Is(err, ErrNoCandidate) {
			continue
		}
		if err != nil {
			return Line[N]{}, err
		}
		if !found || crease.Len() > best.Len() {
			best, found = crease, true
		}
	}
	if !found {
		return Line[N]{}, ErrNoCandidate
	}
	return best, nil
}

func largestOuter[N Number[N]](shape Shape[N]) (Polygon[N], bool) {
	outer := shape.Outer()
	if len(outer) == 0 {
		return Polygon[N]{}, false
	}
	largest := outer[0]
	for _, poly := range outer[1:] {
		if poly.Area() > largest.Area() {
			largest = poly
		}
	}
	return largest, true
}

// The vertex of poly farthest from the infinite line through l. The first one
// wins a tie.
func farthestVertex[N Number[N]](poly Polygon[N], l Line[N]) Point[N] {
	if poly.Len() == 0 {
		return l.P1
	}
	d := l.Direction()
	best, bestDist := poly.Points[0], -1.0
	for _, p := range poly.Points {
		dist := math.Abs(cross(d, p.Sub(l.P1)).Float64())
		if dist > bestDist {
			best, bestDist = p, dist
		}
	}
	return best
}
