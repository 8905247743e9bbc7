package format

import (
	"bufio"
	"fmt"
	"io"

	"github.com/osuushi/origami/fold"
	"github.com/pkg/errors"
)

// ParseProblem reads a problem file: the silhouette (polygon count, then per
// polygon a vertex count and its "x,y" vertices) followed by the skeleton
// (segment count, then one "x1,y1 x2,y2" segment per line).
func ParseProblem[N fold.Number[N]](r io.Reader) (fold.Shape[N], fold.Skeleton[N], error) {
	lr := newLineReader(r)
	var shape fold.Shape[N]
	var skel fold.Skeleton[N]

	polygons, err := lr.count()
	if err != nil {
		return shape, skel, err
	}
	for i := 0; i < polygons; i++ {
		vertices, err := lr.count()
		if err != nil {
			return shape, skel, err
		}
		if vertices < 3 {
			return shape, skel, lr.fail(errors.Wrapf(ErrBadCount, "polygon %d has %d vertices", i, vertices))
		}
		points := make([]fold.Point[N], 0, vertices)
		for j := 0; j < vertices; j++ {
			s, err := lr.next()
			if err != nil {
				return shape, skel, err
			}
			p, err := ParsePoint[N](s)
			if err != nil {
				return shape, skel, lr.fail(err)
			}
			points = append(points, p)
		}
		shape.Polygons = append(shape.Polygons, fold.NewPolygon(points))
	}

	segments, err := lr.count()
	if err != nil {
		return shape, skel, err
	}
	for i := 0; i < segments; i++ {
		s, err := lr.next()
		if err != nil {
			return shape, skel, err
		}
		l, err := ParseLine[N](s)
		if err != nil {
			return shape, skel, lr.fail(err)
		}
		skel = skel.Push(l)
	}
	return shape, skel, nil
}

// WriteProblem writes shape and skel in the layout ParseProblem reads.
func WriteProblem[N fold.Number[N]](w io.Writer, shape fold.Shape[N], skel fold.Skeleton[N]) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, len(shape.Polygons))
	for _, poly := range shape.Polygons {
		fmt.Fprintln(bw, len(poly.Points))
		for _, p := range poly.Points {
			fmt.Fprintln(bw, p)
		}
	}
	fmt.Fprintln(bw, skel.Len())
	for _, l := range skel.Lines {
		fmt.Fprintf(bw, "%v %v\n", l.P1, l.P2)
	}
	return bw.Flush()
}
