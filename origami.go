// Package origami folds a unit square of paper into a target silhouette.
//
// A problem gives the silhouette as a set of polygons (counterclockwise
// outlines, clockwise holes) plus a skeleton of hint lines. Solve folds the
// paper with a greedy heuristic, unfolds the result and writes the solution:
// every facet's vertices in the unfolded square and where each one ends up.
//
// The geometry is generic over the number type. Float is fast, and Rat is
// exact but slow. The building blocks are in the fold package.
package origami

import (
	"io"

	"github.com/osuushi/origami/fold"
	"github.com/osuushi/origami/format"
	"github.com/pkg/errors"
)

type Float = fold.Float
type Rat = fold.Rat

type Options struct {
	// Cap on the fold loop. Zero means fold.DefaultMaxFolds.
	MaxFolds int
	// Solve with exact rationals instead of floats.
	Exact bool
}

// Report summarizes a solve.
type Report struct {
	Folds    int
	Facets   int
	Vertices int
}

// Solve reads a problem, folds it and writes the solution. Float solutions
// are converted to rationals before they are written.
func Solve(problem io.Reader, solution io.Writer, opts Options) (report Report, err error) {
	defer func() {
		if recoveredErr := fold.HandleFoldPanicRecover(recover()); recoveredErr != nil {
			err = recoveredErr
		}
	}()
	if opts.Exact {
		sol, report, err := solveWith[fold.Rat](problem, opts)
		if err != nil {
			return report, err
		}
		return report, format.WriteSolution(solution, sol)
	}
	sol, report, err := solveWith[fold.Float](problem, opts)
	if err != nil {
		return report, err
	}
	exact, _ := sol.Quantize()
	return report, format.WriteSolution(solution, exact)
}

func solveWith[N fold.Number[N]](problem io.Reader, opts Options) (fold.Solution[N], Report, error) {
	var report Report
	shape, _, err := format.ParseProblem[N](problem)
	if err != nil {
		return fold.Solution[N]{}, report, errors.Wrap(err, "parse problem")
	}
	result, err := fold.Solver[N]{MaxFolds: opts.MaxFolds}.Solve(shape)
	if err != nil {
		return fold.Solution[N]{}, report, err
	}
	sol, _, err := fold.Export(result.Facets)
	if err != nil {
		return fold.Solution[N]{}, report, err
	}
	report = Report{Folds: result.Folds, Facets: len(sol.Facets), Vertices: len(sol.Source)}
	return sol, report, nil
}

// Unfold reads a solution and rebuilds its facets twice: as laid out on the
// unfolded square, and as placed in the folded result.
func Unfold(solution io.Reader) (source, dest []fold.Polygon[Rat], err error) {
	sol, err := format.ParseSolution[Rat](solution)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parse solution")
	}
	for _, facet := range sol.Facets {
		src := make([]fold.Point[Rat], len(facet))
		dst := make([]fold.Point[Rat], len(facet))
		for j, i := range facet {
			src[j] = sol.Source[i]
			dst[j] = sol.Dest[i]
		}
		source = append(source, fold.NewPolygon(src))
		dest = append(dest, fold.NewPolygon(dst))
	}
	return source, dest, nil
}
