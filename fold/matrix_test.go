package fold

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixMul(t *testing.T) {
	a := NewMatrix33[Float]([3]Float{1, 2, 3}, [3]Float{4, 5, 6}, [3]Float{7, 8, 9})
	b := NewMatrix33[Float]([3]Float{10, 11, 12}, [3]Float{13, 14, 15}, [3]Float{16, 17, 18})
	c := a.Mul(b)
	assert.Equal(t, Matrix33[Float]{84, 90, 96, 201, 216, 231, 318, 342, 366}, c)
	assert.Equal(t, Float(231), c.At(1, 2))
}

func TestMatrixTransform(t *testing.T) {
	m := Translate[Float](1, 1).ThenScale(2, 1).ThenTranslate(-1, -1)
	assertPointEqual(t, pf(5, 4), m.Transform(pf(2, 4)))

	assertPointEqual(t, pf(-2.5, 28), Scale[Float](-1, 4).Transform(pf(2.5, 7)))
	assertPointEqual(t, pf(1, 0), RotateAngle[Float](math.Pi/2).Transform(pf(0, -1)))
	assertPointEqual(t, pf(6, -0.5), Translate[Float](4, -2.5).Transform(pf(2, 2)))
	assertPointEqual(t, pf(3, 1), Shear[Float](1, 0).Transform(pf(2, 1)))

	combined := Scale[Float](2.5, 1.5).Mul(Translate[Float](-4, -4))
	assertPointEqual(t, pf(-1.5, -2.5), combined.Transform(pf(1, 1)))
	assertPointEqual(t, pf(1, -7), combined.Transform(pf(2, -2)))

	// Rotating onto a rational direction stays exact.
	r := Rotate(NewRat(3, 5), NewRat(4, 5))
	p := r.Transform(pr(1, 0))
	assert.Equal(t, "4/5,3/5", p.String())
}

func TestFlipAboutY3(t *testing.T) {
	m := Translate[Float](0, -3).Mul(Scale[Float](1, -1)).Mul(Translate[Float](0, 3))
	assertPointEqual(t, pf(4, 2), m.Transform(pf(4, 4)))
	assertPointEqual(t, pf(2.5, 5), m.Transform(pf(2.5, 1)))

	m2 := Translate[Float](0, -3).ThenScale(1, -1).ThenTranslate(0, 3)
	assert.True(t, m.Equal(m2))

	inv, err := m2.Inverse()
	require.NoError(t, err)
	assertPointEqual(t, pf(4, 4), inv.Transform(pf(4, 2)))
	assertPointEqual(t, pf(2.5, 1), inv.Transform(pf(2.5, 5)))
}

func TestDeterminant(t *testing.T) {
	assert.Equal(t, Float(18), NewMatrix33[Float]([3]Float{-2, 2, -3}, [3]Float{-1, 1, 3}, [3]Float{2, 0, -1}).Det())
	assert.Equal(t, Float(-18), NewMatrix33[Float]([3]Float{-2, 2, -3}, [3]Float{0, 2, -4}, [3]Float{0, 0, 4.5}).Det())
}

func TestInverse(t *testing.T) {
	m := NewMatrix33[Float]([3]Float{1, 0, 2}, [3]Float{1, 2, 5}, [3]Float{1, 5, -1})
	inv, err := m.Inverse()
	require.NoError(t, err)
	scaled := inv.Div(1.0 / -21)
	expected := [9]float64{-27, 10, -4, 6, -3, -3, 3, -5, 2}
	for i, e := range expected {
		assert.InDelta(t, e, scaled[i].Float64(), 1e-9, "element %d", i)
	}
	assert.True(t, m.Mul(inv).Equal(Identity[Float]()))

	t.Run("Rat", func(t *testing.T) {
		r := func(n int64) Rat { return NewRat(n, 1) }
		m := NewMatrix33([3]Rat{r(1), r(0), r(2)}, [3]Rat{r(1), r(2), r(5)}, [3]Rat{r(1), r(5), r(-1)})
		inv, err := m.Inverse()
		require.NoError(t, err)
		assert.Equal(t, "9/7", inv.At(0, 0).String())
		assert.Equal(t, "-10/21", inv.At(0, 1).String())
		product := m.Mul(inv)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				expected := "0"
				if i == j {
					expected = "1"
				}
				assert.Equal(t, expected, product.At(i, j).String())
			}
		}
	})

	t.Run("Singular", func(t *testing.T) {
		_, err := Scale[Float](1, 0).Inverse()
		assert.ErrorIs(t, err, ErrSingularMatrix)

		_, err = NewMatrix33[Float]([3]Float{1, 2, 0}, [3]Float{2, 4, 0}, [3]Float{3, 3, 1}).Inverse()
		assert.ErrorIs(t, err, ErrSingularMatrix)

		_, err = Scale[Float](1, 1e-9).Inverse()
		assert.ErrorIs(t, err, ErrSingularMatrix)

		_, err = Scale(NewRat(1, 1), Rat{}).Inverse()
		assert.ErrorIs(t, err, ErrSingularMatrix)
	})
}

func TestMatrixString(t *testing.T) {
	assert.Equal(t, "[1 0 0]\n[0 1 0]\n[2 -3 1]", Translate[Float](2, -3).String())
	assert.Equal(t, "[1/2 0 0]\n[0 1 0]\n[0 0 1]", Scale(NewRat(1, 2), NewRat(1, 1)).String())
}
