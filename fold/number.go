package fold

import "fmt"

// Tolerance is the epsilon used for approximate equality throughout the
// package. Float coordinates pick up round-off with every reflection, so
// points, determinants and lengths closer than this are treated as equal.
const Tolerance = 1e-6

// Number is the scalar capability every geometric algorithm is written
// against. It is implemented exactly twice: Float (approximate) and Rat
// (exact). Methods never mutate the receiver.
//
// The Zero, One, FromFloat64 and Parse methods ignore their receiver, so the
// zero value of N is enough to reach them (see zero and one below).
type Number[N any] interface {
	Add(N) N
	Sub(N) N
	Mul(N) N
	Div(N) N
	Neg() N
	Abs() N

	// Cmp orders two numbers exactly. Float gives no useful order for values
	// within Tolerance of each other; use Near for that.
	Cmp(N) int
	// Near reports whether the two numbers differ by less than Tolerance.
	Near(N) bool

	Float64() float64
	FromFloat64(float64) N
	ToRat() Rat

	Zero() N
	One() N
	Parse(string) (N, error)

	fmt.Stringer
}

func zero[N Number[N]]() N {
	var n N
	return n.Zero()
}

func one[N Number[N]]() N {
	var n N
	return n.One()
}

func fromFloat[N Number[N]](f float64) N {
	var n N
	return n.FromFloat64(f)
}

func isZero[N Number[N]](n N) bool {
	return n.Near(n.Zero())
}

// ParseNumber parses an integer, decimal or "num/den" literal as N.
func ParseNumber[N Number[N]](s string) (N, error) {
	var n N
	return n.Parse(s)
}
