package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/osuushi/origami/fold"
	"github.com/pkg/errors"
)

// WriteSolution writes the source points, the facets as "k i0 i1 ...", then
// the destination points in source order.
func WriteSolution[N fold.Number[N]](w io.Writer, sol fold.Solution[N]) error {
	if len(sol.Source) != len(sol.Dest) {
		return errors.Errorf("solution has %d source points but %d destinations", len(sol.Source), len(sol.Dest))
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, len(sol.Source))
	for _, p := range sol.Source {
		fmt.Fprintln(bw, p)
	}
	fmt.Fprintln(bw, len(sol.Facets))
	for _, facet := range sol.Facets {
		fields := make([]string, 0, len(facet)+1)
		fields = append(fields, strconv.Itoa(len(facet)))
		for _, i := range facet {
			fields = append(fields, strconv.Itoa(i))
		}
		fmt.Fprintln(bw, strings.Join(fields, " "))
	}
	for _, p := range sol.Dest {
		fmt.Fprintln(bw, p)
	}
	return bw.Flush()
}

// ParseSolution reads a solution written by WriteSolution. Facet indices are
// checked against the source point count.
func ParseSolution[N fold.Number[N]](r io.Reader) (fold.Solution[N], error) {
	lr := newLineReader(r)
	var sol fold.Solution[N]

	n, err := lr.count()
	if err != nil {
		return sol, err
	}
	readPoints := func() ([]fold.Point[N], error) {
		points := make([]fold.Point[N], 0, n)
		for i := 0; i < n; i++ {
			s, err := lr.next()
			if err != nil {
				return nil, err
			}
			p, err := ParsePoint[N](s)
			if err != nil {
				return nil, lr.fail(err)
			}
			points = append(points, p)
		}
		return points, nil
	}
	if sol.Source, err = readPoints(); err != nil {
		return sol, err
	}

	facets, err := lr.count()
	if err != nil {
		return sol, err
	}
	for i := 0; i < facets; i++ {
		s, err := lr.next()
		if err != nil {
			return sol, err
		}
		facet, err := parseFacet(s, n)
		if err != nil {
			return sol, lr.fail(err)
		}
		sol.Facets = append(sol.Facets, facet)
	}

	if sol.Dest, err = readPoints(); err != nil {
		return sol, err
	}
	return sol, nil
}

func parseFacet(s string, points int) ([]int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, errors.Wrap(ErrBadCount, "empty facet")
	}
	k, err := strconv.Atoi(fields[0])
	if err != nil || k < 3 || k != len(fields)-1 {
		return nil, errors.Wrapf(ErrBadCount, "facet %q", s)
	}
	facet := make([]int, k)
	for j, f := range fields[1:] {
		i, err := strconv.Atoi(f)
		if err != nil || i < 0 || i >= points {
			return nil, errors.Wrapf(ErrBadIndex, "%q", f)
		}
		facet[j] = i
	}
	return facet, nil
}
