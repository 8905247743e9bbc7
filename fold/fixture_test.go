package fold

import (
	"embed"
	"log"
	"strings"

	"github.com/JoshVarga/svgparser"
)

// Silhouette fixtures are SVG files holding a single polygon. Only the points
// attribute is read. Fixtures are available by name in the fixtures/
// directory, sans extension. Anything unexpected is fatal.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture[N Number[N]](name string) Polygon[N] {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}
	defer fixture.Close()

	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}
	polygons := rootEl.FindAll("polygon")
	if len(polygons) != 1 {
		log.Fatalf("Expected one polygon in fixture %q, found %d", name, len(polygons))
	}

	var points []Point[N]
	for _, pointString := range strings.Fields(polygons[0].Attributes["points"]) {
		coords := strings.Split(pointString, ",")
		if len(coords) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		x, err := ParseNumber[N](coords[0])
		if err != nil {
			log.Fatalf("Invalid x value %q: %v", coords[0], err)
		}
		y, err := ParseNumber[N](coords[1])
		if err != nil {
			log.Fatalf("Invalid y value %q: %v", coords[1], err)
		}
		points = append(points, Pt(x, y))
	}

	// Silhouettes are outer polygons, so make sure the polygon is CCW
	poly := NewPolygon(points)
	if poly.IsHole() {
		poly = poly.Reverse()
	}
	return poly
}

func LoadFixtureShape[N Number[N]](name string) Shape[N] {
	return Shape[N]{Polygons: []Polygon[N]{LoadFixture[N](name)}}
}
