package fold

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Rat is the exact Number, an arbitrary precision rational. The zero value
// is 0. Every operation allocates a fresh big.Rat, so values can be copied
// and shared freely.
type Rat struct {
	r *big.Rat
}

var (
	ratZero      = new(big.Rat)
	ratOne       = big.NewRat(1, 1)
	ratTolerance = new(big.Rat).SetFloat64(Tolerance)
)

// NewRat returns num/den. It panics with a NumericError if den is zero.
func NewRat(num, den int64) Rat {
	if den == 0 {
		throwf("rational %d/0", num)
	}
	return Rat{big.NewRat(num, den)}
}

// RatFromBig copies r.
func RatFromBig(r *big.Rat) Rat {
	return Rat{new(big.Rat).Set(r)}
}

func (a Rat) rat() *big.Rat {
	if a.r == nil {
		return ratZero
	}
	return a.r
}

// Big returns a copy of the underlying rational.
func (a Rat) Big() *big.Rat {
	return new(big.Rat).Set(a.rat())
}

func (a Rat) Add(b Rat) Rat { return Rat{new(big.Rat).Add(a.rat(), b.rat())} }
func (a Rat) Sub(b Rat) Rat { return Rat{new(big.Rat).Sub(a.rat(), b.rat())} }
func (a Rat) Mul(b Rat) Rat { return Rat{new(big.Rat).Mul(a.rat(), b.rat())} }
func (a Rat) Neg() Rat      { return Rat{new(big.Rat).Neg(a.rat())} }
func (a Rat) Abs() Rat      { return Rat{new(big.Rat).Abs(a.rat())} }

func (a Rat) Div(b Rat) Rat {
	if b.rat().Sign() == 0 {
		throwf("%s / 0", a)
	}
	return Rat{new(big.Rat).Quo(a.rat(), b.rat())}
}

func (a Rat) Cmp(b Rat) int { return a.rat().Cmp(b.rat()) }

// Near keeps the same tolerance as Float so that point equality behaves the
// same whichever Number is in use.
func (a Rat) Near(b Rat) bool {
	d := new(big.Rat).Sub(a.rat(), b.rat())
	return d.Abs(d).Cmp(ratTolerance) < 0
}

// Float64 divides the float value of the numerator by that of the
// denominator.
//
// BUG: a numerator too large for a float64 converts to +Inf even when it is
// negative, and a denominator that large is treated as 1.
func (a Rat) Float64() float64 {
	num, _ := new(big.Float).SetInt(a.rat().Num()).Float64()
	if math.IsInf(num, 0) {
		num = math.Inf(1)
	}
	den, _ := new(big.Float).SetInt(a.rat().Denom()).Float64()
	if math.IsInf(den, 0) {
		den = 1
	}
	return num / den
}

// FromFloat64 converts f exactly. NaN and ±Inf have no rational value and
// become 1.
func (Rat) FromFloat64(f float64) Rat {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Rat{}.One()
	}
	return Rat{new(big.Rat).SetFloat64(f)}
}

func (a Rat) ToRat() Rat { return a }
func (Rat) Zero() Rat    { return Rat{} }
func (Rat) One() Rat     { return Rat{new(big.Rat).Set(ratOne)} }

// String gives "num/den", or just "num" for integers.
func (a Rat) String() string { return a.rat().RatString() }

func (Rat) Parse(s string) (Rat, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return Rat{}, errors.Errorf("invalid rational %q", s)
	}
	return Rat{r}, nil
}

// The float is formatted with the fewest digits that round-trip and the
// decimal is read back exactly. Precision beyond those digits is dropped.
func ratFromShortestDecimal(f float64) Rat {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Rat{}.One()
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
	if !ok {
		return Rat{}.FromFloat64(f)
	}
	return Rat{r}
}
