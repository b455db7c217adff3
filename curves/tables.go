// tables.go
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

// US Life Table 2021 - annual probability of death (qx) by age.
// Source: CDC National Vital Statistics Reports, Vol 73, No 2 (2024),
// Table 1: Life table for the total population, United States, 2021.
var usMortalityAnchors = []Anchor{
	{0, 0.00530}, {1, 0.00038}, {5, 0.00012}, {10, 0.00010}, {15, 0.00041},
	{20, 0.00097}, {25, 0.00121}, {30, 0.00131}, {35, 0.00153}, {40, 0.00193},
	{45, 0.00282}, {50, 0.00421}, {55, 0.00628}, {60, 0.00931}, {65, 0.01348},
	{70, 0.02006}, {75, 0.03126}, {80, 0.05082}, {85, 0.08453}, {90, 0.14022},
	{95, 0.21890}, {100, 0.32000},
}

// Age-specific health-related quality of life (HRQoL), 0-1 scale.
// Source: Sullivan et al. (2006), "Catalogue of EQ-5D Scores for the
// United Kingdom", Medical Care 44(12):1192-1201.  UK population norms.
var ukQualityAnchors = []Anchor{
	{20, 0.94}, {25, 0.93}, {30, 0.92}, {35, 0.91}, {40, 0.89},
	{45, 0.87}, {50, 0.85}, {55, 0.83}, {60, 0.80}, {65, 0.78},
	{70, 0.75}, {75, 0.72}, {80, 0.68}, {85, 0.62}, {90, 0.55},
	{95, 0.48}, {100, 0.40},
}

// Cause-of-death fractions (CVD, cancer, other) by age.
// Source: CDC WONDER, 2021 US mortality data (approximate).
var usCauseMixAnchors = []MixAnchor{
	{20, 0.10, 0.05, 0.85}, // young: mostly accidents, suicide
	{30, 0.12, 0.10, 0.78},
	{40, 0.20, 0.25, 0.55},
	{50, 0.25, 0.35, 0.40},
	{60, 0.30, 0.35, 0.35},
	{70, 0.35, 0.30, 0.35},
	{80, 0.40, 0.20, 0.40},
	{90, 0.45, 0.10, 0.45},
	{100, 0.50, 0.05, 0.45},
}

var (
	defaultMortality = mustAgeCurve(NewMortalityCurve("US2021", usMortalityAnchors))
	defaultQuality   = mustAgeCurve(NewQualityCurve("UKNorms", ukQualityAnchors))
	defaultCauseMix  = mustCauseMix(NewCauseMixCurve("USWonder2021", usCauseMixAnchors))
)

func mustAgeCurve(c *AgeCurve, err error) *AgeCurve {
	if err != nil {
		panic(err)
	}
	return c
}

func mustCauseMix(c *CauseMixCurve, err error) *CauseMixCurve {
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultMortality returns the shared US 2021 life-table curve.
func DefaultMortality() *AgeCurve { return defaultMortality }

// DefaultQuality returns the shared HRQoL curve.
func DefaultQuality() *AgeCurve { return defaultQuality }

// DefaultCauseMix returns the shared cause-of-death fraction curve.
func DefaultCauseMix() *CauseMixCurve { return defaultCauseMix }

// MaterializeMortality exposes the default mortality curve as a dense
// per-year array, for validation and plotting collaborators.
func MaterializeMortality(startAge, maxAge int) []float64 {
	return defaultMortality.Materialize(startAge, maxAge)
}

// MaterializeQuality is the quality-weight counterpart of
// MaterializeMortality.
func MaterializeQuality(startAge, maxAge int) []float64 {
	return defaultQuality.Materialize(startAge, maxAge)
}
