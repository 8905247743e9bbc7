package fold

import (
	"math/big"
	"sort"

	"github.com/pkg/errors"
)

// Solution pairs every unfolded source vertex with where it ends up. Facets
// index into both point lists.
type Solution[N Number[N]] struct {
	Source []Point[N]
	Facets [][]int
	Dest   []Point[N]
}

// pointIndex finds solution vertices by destination. Entries are kept sorted
// by destination X so lookups only scan the Tolerance window around x.
type pointIndex[N Number[N]] struct {
	entries []indexEntry[N]
}

type indexEntry[N Number[N]] struct {
	dest, source Point[N]
	i            int
}

func (idx *pointIndex[N]) find(dest, source Point[N]) (int, bool) {
	lo := dest.X.Float64() - Tolerance
	start := sort.Search(len(idx.entries), func(k int) bool {
		return idx.entries[k].dest.X.Float64() >= lo
	})
	for _, e := range idx.entries[start:] {
		if e.dest.X.Float64() > dest.X.Float64()+Tolerance {
			break
		}
		if e.dest.Equal(dest) && e.source.Equal(source) {
			return e.i, true
		}
	}
	return 0, false
}

func (idx *pointIndex[N]) insert(dest, source Point[N], i int) {
	x := dest.X.Float64()
	k := sort.Search(len(idx.entries), func(k int) bool {
		return idx.entries[k].dest.X.Float64() > x
	})
	idx.entries = append(idx.entries, indexEntry[N]{})
	copy(idx.entries[k+1:], idx.entries[k:])
	idx.entries[k] = indexEntry[N]{dest, source, i}
}

// Snap coordinates within Tolerance of 0 or 1 onto them. This hides float
// round-off before the solution is turned into rationals; it is a precision
// boundary, not a correctness guarantee.
func snap[N Number[N]](p Point[N]) Point[N] {
	return Point[N]{snapCoord(p.X), snapCoord(p.Y)}
}

func snapCoord[N Number[N]](n N) N {
	o, l := zero[N](), one[N]()
	switch {
	case n.Near(o):
		return o
	case n.Near(l):
		return l
	}
	return n
}

func inUnit[N Number[N]](p Point[N]) bool {
	o, l := zero[N](), one[N]()
	return p.X.Cmp(o) >= 0 && p.X.Cmp(l) <= 0 && p.Y.Cmp(o) >= 0 && p.Y.Cmp(l) <= 0
}

// Export unfolds the facets of a fold state. Each vertex is mapped back
// through the inverse of its facet's transform and snapped; its destination
// is then recomputed from the snapped source. Vertices are shared between
// facets when both their destination and their source match. Folded layers
// stack different source points on one destination, so destination alone is
// not enough; sharing on destination only would merge distinct layers.
//
// The unfolded facets are returned alongside, each with an identity
// transform.
func Export[N Number[N]](facets []Polygon[N]) (sol Solution[N], unfolded []Polygon[N], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = HandleFoldPanicRecover(r)
		}
	}()

	var idx pointIndex[N]
	for f, poly := range facets {
		inv, err := poly.Transform.Inverse()
		if err != nil {
			return Solution[N]{}, nil, errors.Wrapf(err, "facet %d", f)
		}
		facet := make([]int, 0, len(poly.Points))
		source := make([]Point[N], 0, len(poly.Points))
		for _, p := range poly.Points {
			src := snap(inv.Transform(p))
			i, ok := idx.find(p, src)
			if !ok {
				i = len(sol.Source)
				sol.Source = append(sol.Source, src)
				sol.Dest = append(sol.Dest, poly.Transform.Transform(src))
				idx.insert(p, src, i)
				if !inUnit(src) {
					Logger().Warn("source point outside unit square", "facet", f, "point", src.String())
				}
			}
			facet = append(facet, i)
			source = append(source, sol.Source[i])
		}
		sol.Facets = append(sol.Facets, facet)
		unfolded = append(unfolded, NewPolygon(source))
	}
	return sol, unfolded, nil
}

// Quantize converts every coordinate to an exact rational and returns the
// least common multiple of their denominators, the grid every coordinate
// lies on. Coordinates stay in lowest terms. Float coordinates go through
// their shortest decimal form, so this is only as exact as that.
func (sol Solution[N]) Quantize() (Solution[Rat], *big.Int) {
	out := Solution[Rat]{
		Source: make([]Point[Rat], len(sol.Source)),
		Facets: make([][]int, len(sol.Facets)),
		Dest:   make([]Point[Rat], len(sol.Dest)),
	}
	lcm := big.NewInt(1)
	convert := func(p Point[N]) Point[Rat] {
		q := Point[Rat]{p.X.ToRat(), p.Y.ToRat()}
		lcm = lcmInt(lcm, q.X.rat().Denom())
		lcm = lcmInt(lcm, q.Y.rat().Denom())
		return q
	}
	for i, p := range sol.Source {
		out.Source[i] = convert(p)
	}
	for i, p := range sol.Dest {
		out.Dest[i] = convert(p)
	}
	for i, facet := range sol.Facets {
		out.Facets[i] = append([]int(nil), facet...)
	}
	return out, lcm
}

func lcmInt(a, b *big.Int) *big.Int {
	if b.Sign() == 0 {
		return a
	}
	gcd := new(big.Int).GCD(nil, nil, a, b)
	l := new(big.Int).Quo(new(big.Int).Mul(a, b), gcd)
	return l.Abs(l)
}
