package fold

import "math"

// Polygon is a closed ring of at least three points. Orientation, area and
// corners are derived once by NewPolygon; build a new polygon rather than
// editing Points.
//
// Transform maps the unfolded source coordinates of the paper to the
// polygon's current coordinates. It starts as the identity and is replaced,
// never edited, each time a fold reflects the polygon.
type Polygon[N Number[N]] struct {
	Points    []Point[N]
	Transform Matrix33[N]

	hole    bool
	area    float64
	square  bool
	corners [][2]Line[N]
}

func NewPolygon[N Number[N]](points []Point[N]) Polygon[N] {
	poly := Polygon[N]{
		Points:    append([]Point[N](nil), points...),
		Transform: Identity[N](),
	}
	poly.orientArea()
	return poly
}

// Shoelace sum over the (previous, current) edges plus the right-angle corner
// scan. A non-negative sum means the ring runs clockwise.
func (poly *Polygon[N]) orientArea() {
	n := len(poly.Points)
	if n == 0 {
		return
	}
	sum := zero[N]()
	quarter := math.Pi / 2
	for i := range poly.Points {
		prev := poly.Points[CircularIndex(i-1, n)]
		cur := poly.Points[i]
		sum = sum.Add(cur.X.Sub(prev.X).Mul(cur.Y.Add(prev.Y)))

		in := Line[N]{poly.Points[CircularIndex(i-2, n)], prev}
		out := Line[N]{prev, cur}
		turn := math.Mod(math.Abs(Angle(in.P1, in.P2)-Angle(out.P1, out.P2)), quarter)
		if turn < Tolerance || quarter-turn < Tolerance {
			poly.corners = append(poly.corners, [2]Line[N]{in, out})
		}
	}
	f := sum.Float64()
	poly.hole = f >= 0
	poly.area = math.Abs(f) / 2
	poly.square = n == 4 && len(poly.corners) == 4
}

// IsHole reports whether the points run clockwise.
func (poly Polygon[N]) IsHole() bool   { return poly.hole }
func (poly Polygon[N]) Area() float64  { return poly.area }
func (poly Polygon[N]) Square() bool   { return poly.square }
func (poly Polygon[N]) Len() int       { return len(poly.Points) }
func (poly Polygon[N]) IsConvex() bool { return poly.convex() }

// Corners lists the pairs of consecutive edges that meet at a multiple of 90
// degrees. Each pair shares the point In.P2 == Out.P1.
func (poly Polygon[N]) Corners() [][2]Line[N] {
	return append([][2]Line[N](nil), poly.corners...)
}

// Edges pairs each vertex with its predecessor, so Edges()[i] ends at
// Points[i] and Edges()[0] is the closing edge.
func (poly Polygon[N]) Edges() []Line[N] {
	n := len(poly.Points)
	edges := make([]Line[N], n)
	for i, p := range poly.Points {
		edges[i] = Line[N]{poly.Points[CircularIndex(i-1, n)], p}
	}
	return edges
}

// Lines pairs each vertex with its successor, ending with the closing edge.
func (poly Polygon[N]) Lines() []Line[N] {
	n := len(poly.Points)
	lines := make([]Line[N], n)
	for i, p := range poly.Points {
		lines[i] = Line[N]{p, poly.Points[CircularIndex(i+1, n)]}
	}
	return lines
}

// Contains is the even-odd PNPOLY test. Points on the left and bottom edges
// count as inside, those on the right and top as outside.
func (poly Polygon[N]) Contains(p Point[N]) bool {
	inside := false
	for _, edge := range poly.Lines() {
		a, b := edge.P1, edge.P2
		if (a.Y.Cmp(p.Y) > 0) == (b.Y.Cmp(p.Y) > 0) {
			continue
		}
		x := b.X.Sub(a.X).Mul(p.Y.Sub(a.Y)).Div(b.Y.Sub(a.Y)).Add(a.X)
		if p.X.Cmp(x) < 0 {
			inside = !inside
		}
	}
	return inside
}

// OnBoundary reports whether p lies on any edge.
func (poly Polygon[N]) OnBoundary(p Point[N]) bool {
	for _, edge := range poly.Lines() {
		if edge.Coincident(p) {
			return true
		}
	}
	return false
}

// LongestEdge returns the first longest edge, starting from the closing edge.
func (poly Polygon[N]) LongestEdge() Line[N] {
	edges := poly.Edges()
	longest := edges[0]
	for _, edge := range edges[1:] {
		if edge.Len() > longest.Len() {
			longest = edge
		}
	}
	return longest
}

// Reverse flips the winding. The transform is kept.
func (poly Polygon[N]) Reverse() Polygon[N] {
	points := make([]Point[N], len(poly.Points))
	for i, p := range poly.Points {
		points[len(points)-1-i] = p
	}
	return NewPolygon(points).WithTransform(poly.Transform)
}

func (poly Polygon[N]) WithTransform(m Matrix33[N]) Polygon[N] {
	poly.Transform = m
	return poly
}

// Every turn goes the same way. Straight runs are allowed.
func (poly Polygon[N]) convex() bool {
	n := len(poly.Points)
	sign := 0
	for i := range poly.Points {
		a := poly.Points[CircularIndex(i-1, n)]
		b := poly.Points[i]
		c := cross(b.Sub(a), poly.Points[CircularIndex(i+1, n)].Sub(b))
		if isZero(c) {
			continue
		}
		s := c.Cmp(zero[N]())
		if sign != 0 && s != sign {
			return false
		}
		sign = s
	}
	return true
}

// LowestUnitVertex finds where the polygon first touches the unit square,
// trying the sides y=0, x=0, y=1, x=1 in turn and taking the vertex nearest
// the origin on the first side touched.
func (poly Polygon[N]) LowestUnitVertex() (Point[N], bool) {
	o, l := zero[N](), one[N]()
	frame := []Line[N]{
		{Pt(o, o), Pt(l, o)},
		{Pt(o, o), Pt(o, l)},
		{Pt(o, l), Pt(l, l)},
		{Pt(l, o), Pt(l, l)},
	}
	return ClosestVertex(poly, frame, Pt(o, o))
}

// Shape is a silhouette: outer polygons and the holes cut from them.
type Shape[N Number[N]] struct {
	Polygons []Polygon[N]
}

// Area counts holes as negative.
func (s Shape[N]) Area() float64 {
	var total float64
	for _, poly := range s.Polygons {
		if poly.IsHole() {
			total -= poly.Area()
		} else {
			total += poly.Area()
		}
	}
	return total
}

// Outer returns the polygons that are not holes. Polygons with fewer than
// three points enclose nothing and are left out.
func (s Shape[N]) Outer() []Polygon[N] {
	var outer []Polygon[N]
	for _, poly := range s.Polygons {
		if poly.Len() >= 3 && !poly.IsHole() {
			outer = append(outer, poly)
		}
	}
	return outer
}

// Skeleton is the set of crease and edge hints that come with a problem.
type Skeleton[N Number[N]] struct {
	Lines []Line[N]
}

func (s Skeleton[N]) Push(l Line[N]) Skeleton[N] {
	s.Lines = append(append([]Line[N](nil), s.Lines...), l)
	return s
}

func (s Skeleton[N]) Len() int { return len(s.Lines) }

func (s Skeleton[N]) LongestEdge() (Line[N], bool) {
	if len(s.Lines) == 0 {
		return Line[N]{}, false
	}
	longest := s.Lines[0]
	for _, l := range s.Lines[1:] {
		if l.Len() > longest.Len() {
			longest = l
		}
	}
	return longest, true
}
