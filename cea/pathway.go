// pathway.go
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

	"github.com/blgolden/nutCEAModel/nutCEA/curves"
)

// PathwayResult decomposes the benefit across competing causes of death.
// The three contribution fractions sum to 1 whenever any benefit exists;
// they are weighted by discounted life-years gained per age because that is
// the quantity the cost-effectiveness narrative is built on.
type PathwayResult struct {
	// By pathway (undiscounted)
	LifeYearsCVD    float64
	LifeYearsCancer float64
	LifeYearsOther  float64

	// Totals
	LifeYearsGained float64
	QALYsGained     float64

	// Discounted
	LifeYearsGainedDiscounted float64
	QALYsGainedDiscounted     float64
	TotalCostDiscounted       float64

	CostPerQALY float64

	// Pathway contributions (fraction of total discounted benefit)
	CVDContribution    float64
	CancerContribution float64
	OtherContribution  float64
}

// PathwayCEA extends the lifecycle engine with cause-specific mortality
// effects and age-varying cause-of-death fractions, so pathways with
// different temporal profiles (CVD peaks 50-70, cancer spreads 60-85)
// discount differently.
type PathwayCEA struct {
	Mortality *curves.AgeCurve
	Quality   *curves.AgeCurve
	CauseMix  *curves.CauseMixCurve
}

func NewPathwayCEA() *PathwayCEA {
	return &PathwayCEA{
		Mortality: curves.DefaultMortality(),
		Quality:   curves.DefaultQuality(),
		CauseMix:  curves.DefaultCauseMix(),
	}
}

// effectiveRR applies the nut adjustment (log scale) and confounding
// shrinkage to one cause-specific relative risk.
func effectiveRR(rr, nutAdjustment, confounding float64) float64 {
	adjusted := math.Pow(rr, nutAdjustment)
	return 1 - (1-adjusted)*confounding
}

// Run computes one deterministic pathway trajectory.
func (m *PathwayCEA) Run(p PathwayParams) (PathwayResult, error) {
	if err := p.Validate(); err != nil {
		return PathwayResult{}, err
	}

	n := p.MaxAge - p.StartAge + 1
	mortality := m.Mortality.Materialize(p.StartAge, p.MaxAge)
	quality := m.Quality.Materialize(p.StartAge, p.MaxAge)

	rrCvd := effectiveRR(p.RRCvd, p.NutAdjustment, p.ConfoundingAdjustment)
	rrCancer := effectiveRR(p.RRCancer, p.NutAdjustment, p.ConfoundingAdjustment)
	rrOther := effectiveRR(p.RROther, p.NutAdjustment, p.ConfoundingAdjustment)

	// Age-specific weighted RR from the cause-of-death mix, applied to the
	// baseline hazard.
	mortalityIntervention := make([]float64, n)
	for t := 0; t < n; t++ {
		cvdF, cancerF, otherF := m.CauseMix.Interpolate(p.StartAge + t)
		weighted := cvdF*rrCvd + cancerF*rrCancer + otherF*rrOther
		mortalityIntervention[t] = mortality[t] * weighted
	}

	survivalBaseline := survivalCurve(mortality)
	survivalIntervention := survivalCurve(mortalityIntervention)
	discount := discountFactors(p.DiscountRate, n)

	// Per-age contribution of each cause to the mortality reduction,
	// normalized to sum to 1.  A zero total reduction contributes zero to
	// every cause, never NaN.
	var (
		lyCvd, lyCancer, lyOther, lyTotal     float64
		lyCvdDisc, lyCancerDisc, lyOtherDisc  float64
		lyGainedDisc, qalyGained, qalyGainedD float64
		costDisc                              float64
	)
	for t := 0; t < n; t++ {
		gained := survivalIntervention[t] - survivalBaseline[t]

		cvdF, cancerF, otherF := m.CauseMix.Interpolate(p.StartAge + t)
		cvdRed := cvdF * (1 - rrCvd)
		cancerRed := cancerF * (1 - rrCancer)
		otherRed := otherF * (1 - rrOther)
		totalRed := cvdRed + cancerRed + otherRed

		var cvdW, cancerW, otherW float64
		if totalRed > 0 {
			cvdW = cvdRed / totalRed
			cancerW = cancerRed / totalRed
			otherW = otherRed / totalRed
		}

		lyCvd += gained * cvdW
		lyCancer += gained * cancerW
		lyOther += gained * otherW
		lyTotal += gained

		lyCvdDisc += gained * cvdW * discount[t]
		lyCancerDisc += gained * cancerW * discount[t]
		lyOtherDisc += gained * otherW * discount[t]
		lyGainedDisc += gained * discount[t]

		qalyGain := gained * quality[t]
		qalyGained += qalyGain
		qalyGainedD += qalyGain * discount[t]

		costDisc += p.AnnualCost * survivalIntervention[t] * discount[t]
	}

	var cvdContribution, cancerContribution, otherContribution float64
	if lyGainedDisc > 0 {
		cvdContribution = lyCvdDisc / lyGainedDisc
		cancerContribution = lyCancerDisc / lyGainedDisc
		otherContribution = lyOtherDisc / lyGainedDisc
	}

	return PathwayResult{
		LifeYearsCVD:    lyCvd,
		LifeYearsCancer: lyCancer,
		LifeYearsOther:  lyOther,

		LifeYearsGained: lyTotal,
		QALYsGained:     qalyGained,

		LifeYearsGainedDiscounted: lyGainedDisc,
		QALYsGainedDiscounted:     qalyGainedD,
		TotalCostDiscounted:       costDisc,

		CostPerQALY: safeRatio(costDisc, qalyGainedD),

		CVDContribution:    cvdContribution,
		CancerContribution: cancerContribution,
		OtherContribution:  otherContribution,
	}, nil
}
