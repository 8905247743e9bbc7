package fold

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Float is the approximate Number, a plain float64.
type Float float64

func (a Float) Add(b Float) Float { return a + b }
func (a Float) Sub(b Float) Float { return a - b }
func (a Float) Mul(b Float) Float { return a * b }
func (a Float) Div(b Float) Float { return a / b }
func (a Float) Neg() Float        { return -a }
func (a Float) Abs() Float        { return Float(math.Abs(float64(a))) }

func (a Float) Cmp(b Float) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// To compensate for imprecision in floats, equality is tolerance based.
func (a Float) Near(b Float) bool {
	return math.Abs(float64(a-b)) < Tolerance
}

func (a Float) Float64() float64          { return float64(a) }
func (Float) FromFloat64(f float64) Float { return Float(f) }
func (Float) Zero() Float                 { return 0 }
func (Float) One() Float                  { return 1 }

// ToRat goes through the shortest decimal that round-trips the float, so 0.1
// becomes 1/10 rather than the exact binary fraction.
func (a Float) ToRat() Rat { return ratFromShortestDecimal(float64(a)) }

// Plain decimal with as many digits as needed to round-trip.
func (a Float) String() string { return strconv.FormatFloat(float64(a), 'f', -1, 64) }

// Parse accepts integers, decimals and "num/den" rationals. Rationals are
// rounded to the nearest float64.
func (Float) Parse(s string) (Float, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return 0, errors.Errorf("invalid number %q", s)
		}
		f, _ := r.Float64()
		return Float(f), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid number %q", s)
	}
	return Float(f), nil
}
