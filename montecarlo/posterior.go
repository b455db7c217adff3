// posterior.go
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
package montecarlo

import (
	"fmt"

	"github.com/blgolden/nutCEAModel/nutCEA/cea"

	"gonum.org/v1/gonum/stat"
)

// RunPathwayPosterior drives the pathway engine from externally supplied
// posterior relative-risk draws (e.g. a hierarchical Bayesian sampler)
// instead of parametric sampling.  Each draw is an overall causal RR applied
// uniformly to all three pathways; confounding and the nut adjustment are
// held at 1 because the posterior already incorporates them.  The engine
// contract is otherwise unchanged, so the summary shape matches RunPathway
// (the contribution arrays reflect the cause mix at each sampled RR).
func RunPathwayPosterior(model *cea.PathwayCEA, p cea.PathwayParams, rrDraws []float64) (PathwaySummary, error) {
	if err := p.Validate(); err != nil {
		return PathwaySummary{}, err
	}
	if len(rrDraws) == 0 {
		return PathwaySummary{}, fmt.Errorf("posterior run needs at least 1 relative-risk draw")
	}
	for i, rr := range rrDraws {
		if rr <= 0 {
			return PathwaySummary{}, fmt.Errorf("posterior draw %d: relative risk must be > 0, got %g", i, rr)
		}
	}

	n := len(rrDraws)
	qalys := make([]float64, n)
	costs := make([]float64, n)
	icers := make([]float64, n)
	cvdContribs := make([]float64, n)
	cancerContribs := make([]float64, n)

	for i, rr := range rrDraws {
		sim := p
		sim.RRCvd = rr
		sim.RRCancer = rr
		sim.RROther = rr
		sim.ConfoundingAdjustment = 1.0 // already applied upstream
		sim.NutAdjustment = 1.0         // already folded into the posterior

		result, err := model.Run(sim)
		if err != nil {
			return PathwaySummary{}, err
		}
		qalys[i] = result.QALYsGainedDiscounted
		costs[i] = result.TotalCostDiscounted
		icers[i] = result.CostPerQALY
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
