// pathway_test.go
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

func referencePathwayParams() PathwayParams {
	p := DefaultPathwayParams()
	p.ConfoundingAdjustment = 0.80
	return p
}

func TestPathwayContributionsSumToOne(t *testing.T) {
	result, err := NewPathwayCEA().Run(referencePathwayParams())
	require.NoError(t, err)

	sum := result.CVDContribution + result.CancerContribution + result.OtherContribution
	assert.InDelta(t, 1.0, sum, 1e-2)

	for _, c := range []float64{result.CVDContribution, result.CancerContribution, result.OtherContribution} {
		assert.GreaterOrEqual(t, c, 0.0)
		assert.LessOrEqual(t, c, 1.0)
	}
}

func TestPathwayLifeYearsDecompose(t *testing.T) {
	result, err := NewPathwayCEA().Run(referencePathwayParams())
	require.NoError(t, err)

	sum := result.LifeYearsCVD + result.LifeYearsCancer + result.LifeYearsOther
	assert.InDelta(t, result.LifeYearsGained, sum, math.Abs(result.LifeYearsGained)*1e-6)
}

// With the strongest effect on CVD and a low RR spread elsewhere, CVD should
// dominate the decomposition.
func TestCVDDominatesWhenCVDEffectStrongest(t *testing.T) {
	p := referencePathwayParams()
	p.RRCvd = 0.75
	p.RRCancer = 0.87
	p.RROther = 0.90
	p.ConfoundingAdjustment = 0.25

	result, err := NewPathwayCEA().Run(p)
	require.NoError(t, err)

	assert.Greater(t, result.CVDContribution, 0.5)
	assert.Greater(t, result.CVDContribution, result.CancerContribution)
	assert.Greater(t, result.CVDContribution, result.OtherContribution)
}

func TestAllNullRRsYieldNoBenefit(t *testing.T) {
	p := referencePathwayParams()
	p.RRCvd = 1.0
	p.RRCancer = 1.0
	p.RROther = 1.0

	result, err := NewPathwayCEA().Run(p)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, result.LifeYearsGained, 1e-3)
	// Zero total reduction contributes zero to every cause, never NaN.
	assert.Equal(t, 0.0, result.CVDContribution)
	assert.Equal(t, 0.0, result.CancerContribution)
	assert.Equal(t, 0.0, result.OtherContribution)
	assert.False(t, math.IsNaN(result.QALYsGainedDiscounted))
}

func TestPathwayAgreesWithLifecycleOnUniformRR(t *testing.T) {
	// When the three cause-specific RRs are identical, the weighted RR is
	// independent of the cause mix and the pathway engine must reproduce the
	// single-HR engine.
	uniform := 0.80

	pp := referencePathwayParams()
	pp.RRCvd = uniform
	pp.RRCancer = uniform
	pp.RROther = uniform

	lp := referenceParams()
	lp.HazardRatio = uniform
	lp.AnnualCost = pp.AnnualCost

	pathway, err := NewPathwayCEA().Run(pp)
	require.NoError(t, err)
	lifecycle, err := NewCEA().Run(lp)
	require.NoError(t, err)

	assert.InDelta(t, lifecycle.LifeYearsGained, pathway.LifeYearsGained, 1e-9)
	assert.InDelta(t, lifecycle.QALYsGainedDiscounted, pathway.QALYsGainedDiscounted, 1e-9)
	assert.InDelta(t, lifecycle.TotalCostDiscounted, pathway.TotalCostDiscounted, 1e-9)
}

func TestPathwayValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PathwayParams)
	}{
		{"zero rrCvd", func(p *PathwayParams) { p.RRCvd = 0 }},
		{"negative rrCancer", func(p *PathwayParams) { p.RRCancer = -0.5 }},
		{"zero rrOther", func(p *PathwayParams) { p.RROther = 0 }},
		{"zero rrQuality", func(p *PathwayParams) { p.RRQuality = 0 }},
		{"negative rrQuality", func(p *PathwayParams) { p.RRQuality = -0.5 }},
		{"bad confounding shape", func(p *PathwayParams) { p.ConfoundingAlpha = 0 }},
		{"confounding above 1", func(p *PathwayParams) { p.ConfoundingAdjustment = 2 }},
		{"negative quality scale", func(p *PathwayParams) { p.QualityScale = -0.1 }},
		{"max age not above start age", func(p *PathwayParams) { p.MaxAge = p.StartAge }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := referencePathwayParams()
			tc.mutate(&p)
			_, err := NewPathwayCEA().Run(p)
			require.Error(t, err)
		})
	}
}

func TestEffectiveRR(t *testing.T) {
	// Full causal attribution leaves the adjusted RR unchanged.
	assert.InDelta(t, 0.75, effectiveRR(0.75, 1.0, 1.0), 1e-12)

	// Zero attribution nulls the effect.
	assert.InDelta(t, 1.0, effectiveRR(0.75, 1.0, 0.0), 1e-12)

	// Halfway confounding halves the risk reduction.
	assert.InDelta(t, 0.875, effectiveRR(0.75, 1.0, 0.5), 1e-12)

	// The nut adjustment acts before confounding, on the log scale.
	assert.InDelta(t, 1-(1-math.Pow(0.75, 1.15))*0.5, effectiveRR(0.75, 1.15, 0.5), 1e-12)
}
