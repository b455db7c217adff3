// lifecycle.go
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

// Package cea implements the lifecycle cost-effectiveness engines: a
// life-table cohort model converting a mortality hazard reduction into
// age-by-age survival and quality trajectories with discounting, in the
// standard health economics methodology used by NICE, ICER, and WHO-CHOICE.
package cea

import (
	"math"

	"github.com/blgolden/nutCEAModel/nutCEA/curves"

	"gonum.org/v1/gonum/floats"
)

// LifecycleResult is the value-typed output of one deterministic run.
// Results are produced fresh per run and never mutated afterwards.
type LifecycleResult struct {
	// Undiscounted
	LifeYearsBaseline     float64
	LifeYearsIntervention float64
	LifeYearsGained       float64
	QALYsBaseline         float64
	QALYsIntervention     float64
	QALYsGained           float64

	// Discounted
	LifeYearsGainedDiscounted float64
	QALYsGainedDiscounted     float64
	TotalCostDiscounted       float64

	// Cost-effectiveness; +Inf when the discounted gain is not positive.
	CostPerLifeYear float64
	CostPerQALY     float64

	// Intermediate trajectories, index 0 = StartAge.
	SurvivalBaseline     []float64
	SurvivalIntervention []float64
	AnnualQALYsGained    []float64
}

// CEA is the single-hazard-ratio lifecycle engine.  The curves are
// injectable so tests can substitute their own tables; NewCEA wires the
// default literature curves.
type CEA struct {
	Mortality *curves.AgeCurve
	Quality   *curves.AgeCurve
}

func NewCEA() *CEA {
	return &CEA{
		Mortality: curves.DefaultMortality(),
		Quality:   curves.DefaultQuality(),
	}
}

// Run computes one deterministic cohort trajectory.  The only error source
// is parameter validation; numerical edge cases resolve into the result.
func (m *CEA) Run(p LifecycleParams) (LifecycleResult, error) {
	if err := p.Validate(); err != nil {
		return LifecycleResult{}, err
	}

	n := p.MaxAge - p.StartAge + 1
	mortality := m.Mortality.Materialize(p.StartAge, p.MaxAge)
	quality := m.Quality.Materialize(p.StartAge, p.MaxAge)

	// HR applies to all-cause mortality.  The nut adjustment acts on the
	// log-HR scale; confounding shrinks the effect toward the null.
	adjustedHR := math.Pow(p.HazardRatio, p.NutAdjustment)
	effectiveHR := 1 - (1-adjustedHR)*p.ConfoundingAdjustment

	mortalityIntervention := make([]float64, n)
	for t, q := range mortality {
		mortalityIntervention[t] = q * effectiveHR
	}

	survivalBaseline := survivalCurve(mortality)
	survivalIntervention := survivalCurve(mortalityIntervention)

	// Life years: area under the survival curve.
	lyBaseline := floats.Sum(survivalBaseline)
	lyIntervention := floats.Sum(survivalIntervention)

	var qalyBaseline, qalyIntervention float64
	for t := 0; t < n; t++ {
		qalyBaseline += survivalBaseline[t] * quality[t]
		qalyIntervention += survivalIntervention[t] * quality[t]
	}

	discount := discountFactors(p.DiscountRate, n)

	// Discount the difference curve, not each arm separately, to avoid
	// catastrophic cancellation at high t.
	annualQALYsGained := make([]float64, n)
	var lyGainedDisc, qalyGainedDisc, costDisc float64
	for t := 0; t < n; t++ {
		diff := survivalIntervention[t] - survivalBaseline[t]
		annualQALYsGained[t] = diff * quality[t]
		lyGainedDisc += diff * discount[t]
		qalyGainedDisc += annualQALYsGained[t] * discount[t]
		// Cost accrues only while alive in the intervention arm.
		costDisc += p.AnnualCost * survivalIntervention[t] * discount[t]
	}

	return LifecycleResult{
		LifeYearsBaseline:     lyBaseline,
		LifeYearsIntervention: lyIntervention,
		LifeYearsGained:       lyIntervention - lyBaseline,
		QALYsBaseline:         qalyBaseline,
		QALYsIntervention:     qalyIntervention,
		QALYsGained:           qalyIntervention - qalyBaseline,

		LifeYearsGainedDiscounted: lyGainedDisc,
		QALYsGainedDiscounted:     qalyGainedDisc,
		TotalCostDiscounted:       costDisc,

		CostPerLifeYear: safeRatio(costDisc, lyGainedDisc),
		CostPerQALY:     safeRatio(costDisc, qalyGainedDisc),

		SurvivalBaseline:     survivalBaseline,
		SurvivalIntervention: survivalIntervention,
		AnnualQALYsGained:    annualQALYsGained,
	}, nil
}

// survivalCurve is the cumulative product of one-minus-hazard, left-shifted
// one year so survival in year 0 is certain.
func survivalCurve(mortality []float64) []float64 {
	s := make([]float64, len(mortality))
	alive := 1.0
	for t, q := range mortality {
		s[t] = alive
		alive *= 1 - q
	}
	return s
}

func discountFactors(rate float64, n int) []float64 {
	d := make([]float64, n)
	for t := 0; t < n; t++ {
		d[t] = 1 / math.Pow(1+rate, float64(t))
	}
	return d
}

// safeRatio resolves a zero or negative denominator to +Inf rather than an
// error: an intervention with no discounted gain is infinitely costly per
// unit of benefit, not a failure.
func safeRatio(num, den float64) float64 {
	if den > 0 {
		return num / den
	}
	return math.Inf(1)
}
