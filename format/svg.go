package format

import (
	"io"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/osuushi/origami/fold"
	"github.com/pkg/errors"
)

// ReadSVGShape builds a silhouette from every <polygon> element in an SVG
// document. Each points attribute is a whitespace separated list of "x,y"
// pairs. Winding is kept as drawn, so clockwise polygons become holes.
func ReadSVGShape[N fold.Number[N]](r io.Reader) (fold.Shape[N], error) {
	var shape fold.Shape[N]
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return shape, errors.Wrap(err, "parse svg")
	}
	for i, el := range root.FindAll("polygon") {
		var points []fold.Point[N]
		for _, pair := range strings.Fields(el.Attributes["points"]) {
			p, err := ParsePoint[N](pair)
			if err != nil {
				return shape, errors.Wrapf(err, "polygon %d", i)
			}
			points = append(points, p)
		}
		if len(points) < 3 {
			return shape, errors.Wrapf(ErrBadPoint, "polygon %d has %d points", i, len(points))
		}
		shape.Polygons = append(shape.Polygons, fold.NewPolygon(points))
	}
	if len(shape.Polygons) == 0 {
		return shape, ErrNoPolygons
	}
	return shape, nil
}
