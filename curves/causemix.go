// causemix.go
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
	"fmt"
	"math"
	"sort"
)

// MixAnchor is one row of the cause-of-death fraction table.  The three
// shares must sum to 1 at every anchor; linear interpolation between two
// sum-to-one vectors preserves the sum, so interpolated values are never
// renormalized.
type MixAnchor struct {
	Age    int
	CVD    float64 // heart disease and cerebrovascular
	Cancer float64 // all malignant neoplasms
	Other  float64 // respiratory, diabetes, accidents, Alzheimer's, etc.
}

const mixSumTolerance = 1e-6

// CauseMixCurve is the age-varying attribution of mortality to competing
// causes.  Immutable after construction.
type CauseMixCurve struct {
	Name    string
	anchors []MixAnchor
}

// NewCauseMixCurve validates the anchor table: non-empty, strictly increasing
// ages, every share in [0,1], and shares summing to 1 within tolerance.
func NewCauseMixCurve(name string, anchors []MixAnchor) (*CauseMixCurve, error) {
	if len(anchors) == 0 {
		return nil, fmt.Errorf("cause mix %q: anchor table is empty", name)
	}
	for i, a := range anchors {
		if i > 0 && a.Age <= anchors[i-1].Age {
			return nil, fmt.Errorf("cause mix %q: anchor ages not strictly increasing at age %d", name, a.Age)
		}
		for _, s := range []float64{a.CVD, a.Cancer, a.Other} {
			if s < 0 || s > 1 {
				return nil, fmt.Errorf("cause mix %q: share out of [0,1] at age %d", name, a.Age)
			}
		}
		if sum := a.CVD + a.Cancer + a.Other; math.Abs(sum-1.0) > mixSumTolerance {
			return nil, fmt.Errorf("cause mix %q: shares sum to %g at age %d, want 1", name, sum, a.Age)
		}
	}
	return &CauseMixCurve{Name: name, anchors: append([]MixAnchor(nil), anchors...)}, nil
}

// Interpolate returns the (cvd, cancer, other) shares at an integer age.
// Ages outside the table clamp to the boundary anchors.
func (c *CauseMixCurve) Interpolate(age int) (cvd, cancer, other float64) {
	first := c.anchors[0]
	last := c.anchors[len(c.anchors)-1]

	if age <= first.Age {
		return first.CVD, first.Cancer, first.Other
	}
	if age >= last.Age {
		return last.CVD, last.Cancer, last.Other
	}

	hi := sort.Search(len(c.anchors), func(i int) bool { return c.anchors[i].Age > age })
	lo := hi - 1
	if c.anchors[lo].Age == age {
		a := c.anchors[lo]
		return a.CVD, a.Cancer, a.Other
	}

	aLo := c.anchors[lo]
	aHi := c.anchors[hi]
	frac := float64(age-aLo.Age) / float64(aHi.Age-aLo.Age)

	cvd = aLo.CVD + frac*(aHi.CVD-aLo.CVD)
	cancer = aLo.Cancer + frac*(aHi.Cancer-aLo.Cancer)
	other = aLo.Other + frac*(aHi.Other-aLo.Other)
	return cvd, cancer, other
}

// Anchors returns a copy of the anchor table.
func (c *CauseMixCurve) Anchors() []MixAnchor {
	return append([]MixAnchor(nil), c.anchors...)
}
