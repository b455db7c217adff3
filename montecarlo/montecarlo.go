// montecarlo.go
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

// Package montecarlo propagates parameter uncertainty through the lifecycle
// engines.  Draws are sequential on one caller-injected random source; the
// per-draw sampling order is fixed (relative-risk draws first, then
// confounding, then the nut adjustment) so a seed maps to the same outputs
// everywhere.  A conforming parallel implementation must pre-draw the random
// numbers sequentially before dispatching, or hand each worker its own
// pre-drawn seed.
package montecarlo

import (
	"fmt"
	"math"
	"sort"

	"github.com/blgolden/nutCEAModel/nutCEA/cea"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// betaPrecision is the implied precision (pseudo-observations) when a
// confounding prior is given only as a point estimate: Beta(mean*10, (1-mean)*10).
const betaPrecision = 10.0

// DefaultQualityPathwayScale scales the quality-pathway multiplier
// 1 + (1-RRquality)*scale applied per draw in the pathway Monte Carlo.
// The 0.5 is a provisional, conservative placeholder, not a calibrated value.
const DefaultQualityPathwayScale = 0.5

// Summary aggregates the per-draw outputs of a Monte Carlo run.  It owns
// copies of the sampled arrays; the engines may be discarded afterwards.
// ICER statistics cover only the finite draws (a draw with no positive
// discounted QALY gain records +Inf, kept in the raw array).
type Summary struct {
	QALYs []float64 // discounted QALYs gained per draw
	Costs []float64 // discounted total cost per draw
	ICERs []float64 // cost per QALY per draw, +Inf allowed

	QALYMean   float64
	QALYMedian float64
	QALYCI95   [2]float64

	ICERMean   float64
	ICERMedian float64
	ICERCI95   [2]float64
}

// PathwaySummary extends Summary with the per-draw cause decomposition.
type PathwaySummary struct {
	Summary

	CVDContributions    []float64
	CancerContributions []float64

	CVDContributionMean    float64
	CancerContributionMean float64
}

// RunLifecycle reruns the single-hazard-ratio engine once per draw, sampling
// the hazard ratio log-normally around its point estimate, the confounding
// adjustment from Beta(mean*10, (1-mean)*10), and the nut adjustment normally.
func RunLifecycle(model *cea.CEA, p cea.LifecycleParams, nSimulations int, src rand.Source) (Summary, error) {
	if err := p.Validate(); err != nil {
		return Summary{}, err
	}
	if nSimulations < 1 {
		return Summary{}, fmt.Errorf("nSimulations must be >= 1, got %d", nSimulations)
	}

	logHR := distuv.Normal{Mu: math.Log(p.HazardRatio), Sigma: p.HazardRatioSd, Src: src}
	confounding := confoundingSampler(p.ConfoundingAdjustment, src)
	adjustment := distuv.Normal{Mu: p.NutAdjustment, Sigma: p.NutAdjustmentSd, Src: src}

	qalys := make([]float64, nSimulations)
	costs := make([]float64, nSimulations)
	icers := make([]float64, nSimulations)

	for i := 0; i < nSimulations; i++ {
		// Fixed order: hazard ratio, confounding, adjustment.
		sim := p
		sim.HazardRatio = math.Exp(logHR.Rand())
		sim.ConfoundingAdjustment = confounding()
		sim.NutAdjustment = adjustment.Rand()

		result, err := model.Run(sim)
		if err != nil {
			return Summary{}, err
		}
		qalys[i] = result.QALYsGainedDiscounted
		costs[i] = result.TotalCostDiscounted
		icers[i] = result.CostPerQALY
	}

	return newSummary(qalys, costs, icers), nil
}

// RunPathway reruns the pathway engine once per draw.  Fixed order per draw:
// the four relative risks (CVD, cancer, other, quality), then the Beta
// confounding prior, then the nut adjustment.  Each draw's QALY gain is
// scaled by the quality-pathway multiplier 1 + (1-RRquality)*QualityScale
// and the ICER recomputed against the scaled gain.
func RunPathway(model *cea.PathwayCEA, p cea.PathwayParams, nSimulations int, src rand.Source) (PathwaySummary, error) {
	if err := p.Validate(); err != nil {
		return PathwaySummary{}, err
	}
	if nSimulations < 1 {
		return PathwaySummary{}, fmt.Errorf("nSimulations must be >= 1, got %d", nSimulations)
	}

	logCvd := distuv.Normal{Mu: math.Log(p.RRCvd), Sigma: p.RRCvdSd, Src: src}
	logCancer := distuv.Normal{Mu: math.Log(p.RRCancer), Sigma: p.RRCancerSd, Src: src}
	logOther := distuv.Normal{Mu: math.Log(p.RROther), Sigma: p.RROtherSd, Src: src}
	logQuality := distuv.Normal{Mu: math.Log(p.RRQuality), Sigma: p.RRQualitySd, Src: src}
	confounding := distuv.Beta{Alpha: p.ConfoundingAlpha, Beta: p.ConfoundingBeta, Src: src}
	adjustment := distuv.Normal{Mu: p.NutAdjustment, Sigma: p.NutAdjustmentSd, Src: src}

	qalys := make([]float64, nSimulations)
	costs := make([]float64, nSimulations)
	icers := make([]float64, nSimulations)
	cvdContribs := make([]float64, nSimulations)
	cancerContribs := make([]float64, nSimulations)

	for i := 0; i < nSimulations; i++ {
		sim := p
		sim.RRCvd = math.Exp(logCvd.Rand())
		sim.RRCancer = math.Exp(logCancer.Rand())
		sim.RROther = math.Exp(logOther.Rand())
		rrQuality := math.Exp(logQuality.Rand())
		sim.ConfoundingAdjustment = confounding.Rand()
		sim.NutAdjustment = adjustment.Rand()

		result, err := model.Run(sim)
		if err != nil {
			return PathwaySummary{}, err
		}

		qualityMult := 1 + (1-rrQuality)*p.QualityScale
		qalys[i] = result.QALYsGainedDiscounted * qualityMult
		costs[i] = result.TotalCostDiscounted
		icers[i] = costPerQALY(result.TotalCostDiscounted, qalys[i])
		cvdContribs[i] = result.CVDContribution
		cancerContribs[i] = result.CancerContribution
	}

	return PathwaySummary{
		Summary:             newSummary(qalys, costs, icers),
		CVDContributions:    cvdContribs,
		CancerContributions: cancerContribs,

		CVDContributionMean:    stat.Mean(cvdContribs, nil),
		CancerContributionMean: stat.Mean(cancerContribs, nil),
	}, nil
}

// confoundingSampler draws from the point-estimate Beta reparameterization
// Beta(mean*10, (1-mean)*10).  A boundary point estimate (exactly 0 or 1)
// would give the Beta a zero shape parameter, so it degenerates to a point
// mass instead: the value is certain and no draw is consumed.
func confoundingSampler(mean float64, src rand.Source) func() float64 {
	if mean <= 0 || mean >= 1 {
		return func() float64 { return mean }
	}
	d := distuv.Beta{
		Alpha: mean * betaPrecision,
		Beta:  (1 - mean) * betaPrecision,
		Src:   src,
	}
	return d.Rand
}

func costPerQALY(cost, qalys float64) float64 {
	if qalys > 0 {
		return cost / qalys
	}
	return math.Inf(1)
}

func newSummary(qalys, costs, icers []float64) Summary {
	s := Summary{QALYs: qalys, Costs: costs, ICERs: icers}

	s.QALYMean = stat.Mean(qalys, nil)
	s.QALYMedian, s.QALYCI95 = medianCI95(qalys)

	finite := make([]float64, 0, len(icers))
	for _, v := range icers {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) > 0 {
		s.ICERMean = stat.Mean(finite, nil)
		s.ICERMedian, s.ICERCI95 = medianCI95(finite)
	} else {
		s.ICERMean = math.Inf(1)
		s.ICERMedian = math.Inf(1)
		s.ICERCI95 = [2]float64{math.Inf(1), math.Inf(1)}
	}
	return s
}

// medianCI95 returns the median and the [2.5, 97.5] percentile interval.
func medianCI95(x []float64) (median float64, ci [2]float64) {
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	median = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	ci[0] = stat.Quantile(0.025, stat.LinInterp, sorted, nil)
	ci[1] = stat.Quantile(0.975, stat.LinInterp, sorted, nil)
	return median, ci
}
