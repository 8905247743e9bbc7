package fold

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pf(x, y float64) Point[Float] { return PtF[Float](x, y) }

func pr(x, y float64) Point[Rat] { return PtF[Rat](x, y) }

func lf(x1, y1, x2, y2 float64) Line[Float] { return Ln(pf(x1, y1), pf(x2, y2)) }

func polyf(coords ...float64) Polygon[Float] {
	return NewPolygon(pointsOf(pf, coords))
}

func polyr(coords ...float64) Polygon[Rat] {
	return NewPolygon(pointsOf(pr, coords))
}

func pointsOf[N Number[N]](mk func(x, y float64) Point[N], coords []float64) []Point[N] {
	points := make([]Point[N], 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		points = append(points, mk(coords[i], coords[i+1]))
	}
	return points
}

func assertPointEqual[N Number[N]](t *testing.T, expected, actual Point[N]) {
	t.Helper()
	assert.True(t, expected.Equal(actual), "expected %v, got %v", expected, actual)
}

// Same points in any order, compared with Equal.
func assertSamePoints[N Number[N]](t *testing.T, expected, actual []Point[N]) {
	t.Helper()
	if !assert.Len(t, actual, len(expected)) {
		return
	}
	used := make([]bool, len(actual))
	for _, e := range expected {
		found := false
		for i, a := range actual {
			if !used[i] && e.Equal(a) {
				used[i], found = true, true
				break
			}
		}
		assert.True(t, found, "missing %v in %v", e, actual)
	}
}

func totalArea[N Number[N]](polys []Polygon[N]) float64 {
	var area float64
	for _, p := range polys {
		area += p.Area()
	}
	return area
}
