// curve_test.go
/*
Copyright 2021 Bruce Golden and Matt Spangler

Permission is hereby granted, free of charge, to any person obtaining a copy of
this software and associated documentation files (the "Software"), to deal in
the Software without restriction, including without limitation the rights to
use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
of the Software, and to permit persons to whom the Software is furnished to do
so, subject to the following conditions:
The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/
package curves

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAgeCurveValidation(t *testing.T) {
	_, err := NewAgeCurve("empty", nil, LogLinear, GeometricGrowth)
	require.Error(t, err)

	_, err = NewAgeCurve("unsorted", []Anchor{{40, 0.1}, {40, 0.2}}, LogLinear, GeometricGrowth)
	require.Error(t, err)

	_, err = NewAgeCurve("backwards", []Anchor{{50, 0.1}, {40, 0.2}}, LogLinear, GeometricGrowth)
	require.Error(t, err)

	c, err := NewAgeCurve("ok", []Anchor{{40, 0.1}, {50, 0.2}}, LogLinear, GeometricGrowth)
	require.NoError(t, err)
	require.NotNil(t, c)
}

// Exact anchor ages must return the table value with no interpolation drift.
func TestInterpolateExactAnchor(t *testing.T) {
	for _, a := range DefaultMortality().Anchors() {
		assert.Equal(t, a.Value, DefaultMortality().Interpolate(a.Age), "age %d", a.Age)
	}
	for _, a := range DefaultQuality().Anchors() {
		assert.Equal(t, a.Value, DefaultQuality().Interpolate(a.Age), "age %d", a.Age)
	}
}

func TestInterpolateBetweenAnchors(t *testing.T) {
	m := DefaultMortality()

	// Between 40 (0.00193) and 45 (0.00282): strictly inside the bracket.
	for age := 41; age <= 44; age++ {
		v := m.Interpolate(age)
		assert.Greater(t, v, 0.00193, "age %d", age)
		assert.Less(t, v, 0.00282, "age %d", age)
	}

	q := DefaultQuality()
	// Linear midpoint between 40 (0.89) and 45 (0.87) at 42.5 does not exist
	// for integer ages, but 42 must sit 2/5 of the way down.
	assert.InDelta(t, 0.89+2.0/5.0*(0.87-0.89), q.Interpolate(42), 1e-12)
}

func TestInterpolateClampsBelowFirstAnchor(t *testing.T) {
	q := DefaultQuality()
	assert.Equal(t, 0.94, q.Interpolate(0))
	assert.Equal(t, 0.94, q.Interpolate(19))
}

func TestMortalityExtrapolationGrowsAndCaps(t *testing.T) {
	m := DefaultMortality()

	v101 := m.Interpolate(101)
	assert.InDelta(t, 0.32*1.1, v101, 1e-12)

	// Far beyond the table the probability clamps at 1.
	assert.Equal(t, 1.0, m.Interpolate(120))

	// Monotone along the extrapolated tail.
	prev := m.Interpolate(100)
	for age := 101; age <= 120; age++ {
		v := m.Interpolate(age)
		assert.GreaterOrEqual(t, v, prev, "age %d", age)
		assert.LessOrEqual(t, v, 1.0, "age %d", age)
		prev = v
	}
}

func TestQualityExtrapolationDecaysToFloor(t *testing.T) {
	q := DefaultQuality()

	assert.InDelta(t, 0.40-0.02, q.Interpolate(101), 1e-12)
	assert.InDelta(t, 0.30, q.Interpolate(110), 1e-12) // 0.40 - 0.02*5 = 0.30 at 105, floored after
	assert.InDelta(t, 0.30, q.Interpolate(200), 1e-12)
}

func TestDefaultMortalityMonotoneFromAdulthood(t *testing.T) {
	v := MaterializeMortality(30, 110)
	for i := 1; i < len(v); i++ {
		assert.GreaterOrEqual(t, v[i], v[i-1], "age %d", 30+i)
	}
	for _, p := range v {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestDefaultQualityMonotoneDecline(t *testing.T) {
	v := MaterializeQuality(20, 110)
	for i := 1; i < len(v); i++ {
		assert.LessOrEqual(t, v[i], v[i-1], "age %d", 20+i)
	}
}

func TestMaterializeLength(t *testing.T) {
	v := DefaultMortality().Materialize(40, 110)
	require.Len(t, v, 71)
	assert.Equal(t, DefaultMortality().Interpolate(40), v[0])
	assert.Equal(t, DefaultMortality().Interpolate(110), v[70])
}

func TestLogLinearFallbackOnZeroAnchor(t *testing.T) {
	c, err := NewMortalityCurve("zero", []Anchor{{10, 0.0}, {20, 0.1}})
	require.NoError(t, err)
	// Log space is undefined at 0; falls back to the arithmetic mean.
	assert.InDelta(t, 0.05, c.Interpolate(15), 1e-12)
}

func TestNewCauseMixCurveValidation(t *testing.T) {
	_, err := NewCauseMixCurve("empty", nil)
	require.Error(t, err)

	_, err = NewCauseMixCurve("badsum", []MixAnchor{{40, 0.5, 0.5, 0.5}})
	require.Error(t, err)

	_, err = NewCauseMixCurve("negative", []MixAnchor{{40, -0.1, 0.5, 0.6}})
	require.Error(t, err)

	_, err = NewCauseMixCurve("unsorted", []MixAnchor{
		{50, 0.3, 0.3, 0.4},
		{40, 0.3, 0.3, 0.4},
	})
	require.Error(t, err)

	// Within tolerance passes.
	_, err = NewCauseMixCurve("tol", []MixAnchor{{40, 0.3, 0.3, 0.4 + 5e-7}})
	require.NoError(t, err)
}

func TestCauseMixInterpolateSumsToOne(t *testing.T) {
	mix := DefaultCauseMix()
	for age := 0; age <= 120; age++ {
		cvd, cancer, other := mix.Interpolate(age)
		assert.InDelta(t, 1.0, cvd+cancer+other, 1e-9, "age %d", age)
		for _, s := range []float64{cvd, cancer, other} {
			assert.GreaterOrEqual(t, s, 0.0, "age %d", age)
			assert.LessOrEqual(t, s, 1.0, "age %d", age)
		}
	}
}

func TestCauseMixClampsAtBoundaries(t *testing.T) {
	mix := DefaultCauseMix()

	cvd, cancer, other := mix.Interpolate(10)
	assert.Equal(t, 0.10, cvd)
	assert.Equal(t, 0.05, cancer)
	assert.Equal(t, 0.85, other)

	cvd, cancer, other = mix.Interpolate(115)
	assert.Equal(t, 0.50, cvd)
	assert.Equal(t, 0.05, cancer)
	assert.Equal(t, 0.45, other)
}

func TestCauseMixExactAnchor(t *testing.T) {
	mix := DefaultCauseMix()
	cvd, cancer, other := mix.Interpolate(60)
	assert.Equal(t, 0.30, cvd)
	assert.Equal(t, 0.35, cancer)
	assert.Equal(t, 0.35, other)
}
