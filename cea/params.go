// params.go
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

import "fmt"

// MaxHumanAge bounds start ages accepted by the engines.
const MaxHumanAge = 120

// LifecycleParams configures a single-hazard-ratio lifecycle run.
// A hazard ratio below 1 is protective; values at or above 1 are accepted
// and correctly yield zero or negative benefit.
type LifecycleParams struct {
	StartAge     int     // age at start of the intervention
	MaxAge       int     // upper bound of the cohort integration
	DiscountRate float64 // annual discount rate for costs and QALYs

	HazardRatio   float64 // all-cause mortality hazard ratio
	HazardRatioSd float64 // log-space SD for Monte Carlo

	ConfoundingAdjustment float64 // causal fraction of the observed effect, in [0,1]
	AnnualCost            float64 // intervention cost per year alive

	NutAdjustment   float64 // nut-specific multiplier on the log-HR scale
	NutAdjustmentSd float64
}

// DefaultLifecycleParams are the reference-case inputs: HR 0.78 from the
// Aune 2016 meta-analysis, 3% discounting, 20% residual-confounding discount.
func DefaultLifecycleParams() LifecycleParams {
	return LifecycleParams{
		StartAge:              40,
		MaxAge:                110,
		DiscountRate:          0.03,
		HazardRatio:           0.78,
		HazardRatioSd:         0.08,
		ConfoundingAdjustment: 0.80,
		AnnualCost:            250.0,
		NutAdjustment:         1.0,
		NutAdjustmentSd:       0.1,
	}
}

// Validate fails fast on out-of-range inputs so a long Monte Carlo run can
// never die midway on a validation problem.
func (p LifecycleParams) Validate() error {
	if p.StartAge < 0 || p.StartAge > MaxHumanAge {
		return fmt.Errorf("start age must be 0-%d, got %d", MaxHumanAge, p.StartAge)
	}
	if p.MaxAge <= p.StartAge {
		return fmt.Errorf("max age %d must exceed start age %d", p.MaxAge, p.StartAge)
	}
	if p.DiscountRate < 0 {
		return fmt.Errorf("discount rate must be >= 0, got %g", p.DiscountRate)
	}
	if p.HazardRatio <= 0 {
		return fmt.Errorf("hazard ratio must be > 0, got %g", p.HazardRatio)
	}
	if p.ConfoundingAdjustment < 0 || p.ConfoundingAdjustment > 1 {
		return fmt.Errorf("confounding adjustment must be in [0,1], got %g", p.ConfoundingAdjustment)
	}
	if p.AnnualCost < 0 {
		return fmt.Errorf("annual cost must be >= 0, got %g", p.AnnualCost)
	}
	return nil
}

// PathwayParams configures a cause-specific lifecycle run.  Cause-specific
// relative risks are from Aune et al. 2016: CVD 0.75 (0.71-0.79),
// cancer 0.87 (0.80-0.93), other 0.90 (assumed).
type PathwayParams struct {
	StartAge     int
	MaxAge       int
	DiscountRate float64

	// Cause-specific relative risks with log-scale SDs.
	RRCvd    float64
	RRCancer float64
	RROther  float64

	RRCvdSd    float64
	RRCancerSd float64
	RROtherSd  float64

	// Morbidity relative risk driving the quality-pathway multiplier in the
	// Monte Carlo.  QualityScale is the provisional 0.5 scaling constant
	// (DefaultQualityPathwayScale in montecarlo); 0 disables the pathway.
	RRQuality    float64
	RRQualitySd  float64
	QualityScale float64

	// Confounding prior: evidence-optimized Beta(1.5, 4.5), mean 0.25.
	// The point estimate is used for deterministic runs; the Beta shape
	// drives the Monte Carlo.
	ConfoundingAlpha      float64
	ConfoundingBeta       float64
	ConfoundingAdjustment float64

	AnnualCost float64

	NutAdjustment   float64 // applied to all pathways on the log-RR scale
	NutAdjustmentSd float64
}

// DefaultPathwayParams are the reference-case pathway inputs.
func DefaultPathwayParams() PathwayParams {
	return PathwayParams{
		StartAge:     40,
		MaxAge:       110,
		DiscountRate: 0.03,

		RRCvd:    0.75,
		RRCancer: 0.87,
		RROther:  0.90,

		RRCvdSd:    0.03,
		RRCancerSd: 0.04,
		RROtherSd:  0.03,

		RRQuality:    0.95,
		RRQualitySd:  0.03,
		QualityScale: 0.5,

		ConfoundingAlpha:      1.5,
		ConfoundingBeta:       4.5,
		ConfoundingAdjustment: 0.25,

		AnnualCost: 250.0,

		NutAdjustment:   1.0,
		NutAdjustmentSd: 0.1,
	}
}

// Validate fails fast on out-of-range inputs.
func (p PathwayParams) Validate() error {
	if p.StartAge < 0 || p.StartAge > MaxHumanAge {
		return fmt.Errorf("start age must be 0-%d, got %d", MaxHumanAge, p.StartAge)
	}
	if p.MaxAge <= p.StartAge {
		return fmt.Errorf("max age %d must exceed start age %d", p.MaxAge, p.StartAge)
	}
	if p.DiscountRate < 0 {
		return fmt.Errorf("discount rate must be >= 0, got %g", p.DiscountRate)
	}
	for _, rr := range []struct {
		name string
		v    float64
	}{
		{"rrCvd", p.RRCvd}, {"rrCancer", p.RRCancer}, {"rrOther", p.RROther},
		{"rrQuality", p.RRQuality},
	} {
		if rr.v <= 0 {
			return fmt.Errorf("%s must be > 0, got %g", rr.name, rr.v)
		}
	}
	if p.ConfoundingAlpha <= 0 || p.ConfoundingBeta <= 0 {
		return fmt.Errorf("confounding Beta prior needs positive shape, got (%g, %g)",
			p.ConfoundingAlpha, p.ConfoundingBeta)
	}
	if p.ConfoundingAdjustment < 0 || p.ConfoundingAdjustment > 1 {
		return fmt.Errorf("confounding adjustment must be in [0,1], got %g", p.ConfoundingAdjustment)
	}
	if p.QualityScale < 0 {
		return fmt.Errorf("quality pathway scale must be >= 0, got %g", p.QualityScale)
	}
	if p.AnnualCost < 0 {
		return fmt.Errorf("annual cost must be >= 0, got %g", p.AnnualCost)
	}
	return nil
}
