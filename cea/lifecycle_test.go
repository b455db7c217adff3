// lifecycle_test.go
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
package cea

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceParams() LifecycleParams {
	return LifecycleParams{
		StartAge:              40,
		MaxAge:                110,
		DiscountRate:          0.03,
		HazardRatio:           0.78,
		ConfoundingAdjustment: 0.80,
		AnnualCost:            250.0,
		NutAdjustment:         1.0,
	}
}

func TestNullHazardRatioYieldsNoBenefit(t *testing.T) {
	p := referenceParams()
	p.HazardRatio = 1.0

	result, err := NewCEA().Run(p)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, result.LifeYearsGained, 1e-3)
	assert.InDelta(t, 0.0, result.QALYsGained, 1e-3)
	assert.True(t, math.IsInf(result.CostPerQALY, 1), "no gain means infinite cost per QALY")
	assert.True(t, math.IsInf(result.CostPerLifeYear, 1))
}

func TestReferenceScenario(t *testing.T) {
	result, err := NewCEA().Run(referenceParams())
	require.NoError(t, err)

	// Plausible ranges for a protective HR of 0.78 at 20% confounding discount.
	assert.Greater(t, result.QALYsGainedDiscounted, 0.1)
	assert.Less(t, result.QALYsGainedDiscounted, 2.0)

	assert.Greater(t, result.CostPerQALY, 1000.0)
	assert.Less(t, result.CostPerQALY, 100000.0)

	assert.Greater(t, result.LifeYearsGained, result.LifeYearsGainedDiscounted,
		"discounting must shrink the gain at a positive rate")
	assert.Greater(t, result.TotalCostDiscounted, 0.0)
}

func TestZeroDiscountRateMatchesUndiscounted(t *testing.T) {
	p := referenceParams()
	p.DiscountRate = 0.0

	result, err := NewCEA().Run(p)
	require.NoError(t, err)

	assert.InDelta(t, result.LifeYearsGained, result.LifeYearsGainedDiscounted,
		math.Abs(result.LifeYearsGained)*0.01)
	assert.InDelta(t, result.QALYsGained, result.QALYsGainedDiscounted,
		math.Abs(result.QALYsGained)*0.01)
}

func TestBenefitMonotoneInHazardRatio(t *testing.T) {
	model := NewCEA()

	var prev float64 = math.Inf(1)
	for _, hr := range []float64{0.70, 0.78, 0.85, 0.95, 1.0} {
		p := referenceParams()
		p.HazardRatio = hr
		result, err := model.Run(p)
		require.NoError(t, err)
		assert.Less(t, result.QALYsGainedDiscounted, prev, "hr %g", hr)
		prev = result.QALYsGainedDiscounted
	}
}

func TestConfoundingShrinksBenefit(t *testing.T) {
	model := NewCEA()

	full := referenceParams()
	full.ConfoundingAdjustment = 1.0
	shrunk := referenceParams()
	shrunk.ConfoundingAdjustment = 0.5

	rFull, err := model.Run(full)
	require.NoError(t, err)
	rShrunk, err := model.Run(shrunk)
	require.NoError(t, err)

	assert.Greater(t, rFull.QALYsGainedDiscounted, rShrunk.QALYsGainedDiscounted)

	// Zero confounding adjustment nulls the effect entirely.
	null := referenceParams()
	null.ConfoundingAdjustment = 0.0
	rNull, err := model.Run(null)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, rNull.QALYsGained, 1e-9)
}

func TestNutAdjustmentActsOnLogScale(t *testing.T) {
	model := NewCEA()

	strong := referenceParams()
	strong.NutAdjustment = 1.15 // walnut
	weak := referenceParams()
	weak.NutAdjustment = 0.92 // cashew

	rStrong, err := model.Run(strong)
	require.NoError(t, err)
	rWeak, err := model.Run(weak)
	require.NoError(t, err)
	rRef, err := model.Run(referenceParams())
	require.NoError(t, err)

	assert.Greater(t, rStrong.QALYsGainedDiscounted, rRef.QALYsGainedDiscounted)
	assert.Less(t, rWeak.QALYsGainedDiscounted, rRef.QALYsGainedDiscounted)
}

func TestSurvivalCurveShape(t *testing.T) {
	result, err := NewCEA().Run(referenceParams())
	require.NoError(t, err)

	require.Len(t, result.SurvivalBaseline, 71)
	assert.Equal(t, 1.0, result.SurvivalBaseline[0], "everyone is alive at the start age")
	assert.Equal(t, 1.0, result.SurvivalIntervention[0])

	for i := 1; i < len(result.SurvivalBaseline); i++ {
		assert.LessOrEqual(t, result.SurvivalBaseline[i], result.SurvivalBaseline[i-1])
		assert.GreaterOrEqual(t, result.SurvivalIntervention[i], result.SurvivalBaseline[i],
			"intervention survival can never drop below baseline at a protective HR")
	}
}

func TestLifecycleValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*LifecycleParams)
	}{
		{"negative start age", func(p *LifecycleParams) { p.StartAge = -1 }},
		{"start age above max human age", func(p *LifecycleParams) { p.StartAge = 130 }},
		{"max age not above start age", func(p *LifecycleParams) { p.MaxAge = 40 }},
		{"negative discount", func(p *LifecycleParams) { p.DiscountRate = -0.01 }},
		{"zero hazard ratio", func(p *LifecycleParams) { p.HazardRatio = 0 }},
		{"confounding above 1", func(p *LifecycleParams) { p.ConfoundingAdjustment = 1.5 }},
		{"negative cost", func(p *LifecycleParams) { p.AnnualCost = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := referenceParams()
			tc.mutate(&p)
			_, err := NewCEA().Run(p)
			require.Error(t, err)
		})
	}

	// A harmful HR is accepted; it just loses years.
	p := referenceParams()
	p.HazardRatio = 1.2
	result, err := NewCEA().Run(p)
	require.NoError(t, err)
	assert.Less(t, result.LifeYearsGained, 0.0)
}

func TestZeroCostIsFreeIntervention(t *testing.T) {
	p := referenceParams()
	p.AnnualCost = 0

	result, err := NewCEA().Run(p)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.TotalCostDiscounted)
	assert.Equal(t, 0.0, result.CostPerQALY)
}
