package format

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/osuushi/origami/fold"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestdata(t *testing.T, name string) *os.File {
	f, err := os.Open("testdata/" + name)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

// Points compare within fold.Tolerance
var nearPoints = cmp.Comparer(func(a, b fold.Point[fold.Float]) bool { return a.Equal(b) })

func TestParsePoint(t *testing.T) {
	p, err := ParsePoint[fold.Float]("0.25,-3")
	require.NoError(t, err)
	assert.Equal(t, fold.Float(0.25), p.X)
	assert.Equal(t, fold.Float(-3), p.Y)

	r, err := ParsePoint[fold.Rat](" 1/3,2/6 ")
	require.NoError(t, err)
	assert.Equal(t, "1/3", r.X.String())
	assert.Equal(t, "1/3", r.Y.String())

	for _, bad := range []string{"", "1", "1,2,3", "a,1", "1,b"} {
		_, err := ParsePoint[fold.Float](bad)
		assert.True(t, errors.Is(err, ErrBadPoint), "input %q", bad)
	}
}

func TestParseLine(t *testing.T) {
	l, err := ParseLine[fold.Rat]("0,0 1/2,1")
	require.NoError(t, err)
	assert.Equal(t, "0,0 -> 1/2,1", l.String())

	for _, bad := range []string{"0,0", "0,0 1,1 2,2", "0,0 x,1"} {
		_, err := ParseLine[fold.Rat](bad)
		assert.True(t, errors.Is(err, ErrBadLine), "input %q", bad)
	}
}

func TestParseProblem(t *testing.T) {
	shape, skel, err := ParseProblem[fold.Float](openTestdata(t, "square.problem.txt"))
	require.NoError(t, err)
	require.Len(t, shape.Polygons, 1)
	assert.Equal(t, 4, shape.Polygons[0].Len())
	assert.False(t, shape.Polygons[0].IsHole())
	assert.InDelta(t, 1.0, shape.Area(), fold.Tolerance)
	assert.Equal(t, 5, skel.Len())

	want := []fold.Point[fold.Float]{
		fold.PtF[fold.Float](0, 0),
		fold.PtF[fold.Float](1, 0),
		fold.PtF[fold.Float](1, 1),
		fold.PtF[fold.Float](0, 1),
	}
	if diff := cmp.Diff(want, shape.Polygons[0].Points, nearPoints); diff != "" {
		t.Errorf("silhouette mismatch (-want +got):\n%s", diff)
	}

	longest, ok := skel.LongestEdge()
	require.True(t, ok)
	assert.InDelta(t, 1.41421356, longest.Len(), 1e-6)
}

func TestParseProblemWithHole(t *testing.T) {
	shape, skel, err := ParseProblem[fold.Rat](openTestdata(t, "frame.problem.txt"))
	require.NoError(t, err)
	require.Len(t, shape.Polygons, 2)
	assert.False(t, shape.Polygons[0].IsHole())
	assert.True(t, shape.Polygons[1].IsHole())
	assert.InDelta(t, 3.0, shape.Area(), fold.Tolerance)
	assert.Equal(t, 1, skel.Len())
	assert.Equal(t, "-1/2", shape.Polygons[0].Points[0].X.String())
}

func TestParseProblemErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		line  int
		cause error
	}{
		{"empty", "", 1, ErrTruncated},
		{"bad polygon count", "x\n", 1, ErrBadCount},
		{"negative count", "-1\n", 1, ErrBadCount},
		{"empty polygon", "1\n0\n0\n", 2, ErrBadCount},
		{"two vertex polygon", "1\n2\n0,0\n1,1\n0\n", 2, ErrBadCount},
		{"bad point", "1\n3\n0,0\n1;0\n", 4, ErrBadPoint},
		{"truncated polygon", "1\n3\n0,0\n1,0\n", 5, ErrTruncated},
		{"bad line", "1\n3\n0,0\n1,0\n0,1\n1\n0,0\n", 7, ErrBadLine},
		{"missing skeleton", "1\n3\n0,0\n1,0\n0,1\n", 6, ErrTruncated},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := ParseProblem[fold.Float](strings.NewReader(c.input))
			require.Error(t, err)
			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, c.line, perr.Line)
			assert.True(t, errors.Is(err, c.cause))
		})
	}
}

func TestWriteProblemRoundTrip(t *testing.T) {
	shape, skel, err := ParseProblem[fold.Rat](openTestdata(t, "frame.problem.txt"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteProblem(&buf, shape, skel))

	original, err := os.ReadFile("testdata/frame.problem.txt")
	require.NoError(t, err)
	assert.Equal(t, string(original), buf.String())
}

func TestWriteSolution(t *testing.T) {
	sol := fold.Solution[fold.Rat]{
		Source: []fold.Point[fold.Rat]{
			fold.Pt(fold.NewRat(0, 1), fold.NewRat(0, 1)),
			fold.Pt(fold.NewRat(1, 1), fold.NewRat(0, 1)),
			fold.Pt(fold.NewRat(1, 1), fold.NewRat(1, 1)),
			fold.Pt(fold.NewRat(0, 1), fold.NewRat(1, 1)),
			fold.Pt(fold.NewRat(0, 1), fold.NewRat(1, 2)),
			fold.Pt(fold.NewRat(1, 1), fold.NewRat(1, 2)),
		},
		Facets: [][]int{{0, 1, 5, 4}, {4, 5, 2, 3}},
		Dest: []fold.Point[fold.Rat]{
			fold.Pt(fold.NewRat(0, 1), fold.NewRat(0, 1)),
			fold.Pt(fold.NewRat(1, 1), fold.NewRat(0, 1)),
			fold.Pt(fold.NewRat(1, 1), fold.NewRat(0, 1)),
			fold.Pt(fold.NewRat(0, 1), fold.NewRat(0, 1)),
			fold.Pt(fold.NewRat(0, 1), fold.NewRat(1, 2)),
			fold.Pt(fold.NewRat(1, 1), fold.NewRat(1, 2)),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSolution(&buf, sol))
	expected := `6
0,0
1,0
1,1
0,1
0,1/2
1,1/2
2
4 0 1 5 4
4 4 5 2 3
0,0
1,0
1,0
0,0
0,1/2
1,1/2
`
	assert.Equal(t, expected, buf.String())

	parsed, err := ParseSolution[fold.Rat](&buf)
	require.NoError(t, err)
	assert.Equal(t, sol.Facets, parsed.Facets)
	require.Len(t, parsed.Dest, 6)
	for i := range sol.Dest {
		assert.True(t, sol.Dest[i].Equal(parsed.Dest[i]), "dest %d", i)
		assert.True(t, sol.Source[i].Equal(parsed.Source[i]), "source %d", i)
	}
}

func TestWriteSolutionMismatch(t *testing.T) {
	sol := fold.Solution[fold.Float]{
		Source: []fold.Point[fold.Float]{fold.PtF[fold.Float](0, 0)},
	}
	assert.Error(t, WriteSolution(&bytes.Buffer{}, sol))
}

func TestParseSolutionErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		cause error
	}{
		{"index out of range", "3\n0,0\n1,0\n0,1\n1\n3 0 1 3\n0,0\n1,0\n0,1\n", ErrBadIndex},
		{"count mismatch", "3\n0,0\n1,0\n0,1\n1\n4 0 1 2\n0,0\n1,0\n0,1\n", ErrBadCount},
		{"missing dest", "3\n0,0\n1,0\n0,1\n1\n3 0 1 2\n0,0\n", ErrTruncated},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseSolution[fold.Float](strings.NewReader(c.input))
			assert.True(t, errors.Is(err, c.cause), "got %v", err)
		})
	}
}

func TestReadSVGShape(t *testing.T) {
	shape, err := ReadSVGShape[fold.Float](openTestdata(t, "shapes.svg"))
	require.NoError(t, err)
	require.Len(t, shape.Polygons, 2)
	assert.False(t, shape.Polygons[0].IsHole())
	assert.True(t, shape.Polygons[1].IsHole())
	assert.InDelta(t, 3.0, shape.Area(), fold.Tolerance)
	want := []fold.Point[fold.Float]{
		fold.PtF[fold.Float](0.5, 0.5),
		fold.PtF[fold.Float](0.5, 1.5),
		fold.PtF[fold.Float](1.5, 1.5),
		fold.PtF[fold.Float](1.5, 0.5),
	}
	if diff := cmp.Diff(want, shape.Polygons[1].Points, nearPoints); diff != "" {
		t.Errorf("hole mismatch (-want +got):\n%s", diff)
	}

	_, err = ReadSVGShape[fold.Float](strings.NewReader(`<svg><rect width="1" height="1" /></svg>`))
	assert.Equal(t, ErrNoPolygons, err)
}
