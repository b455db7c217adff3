// curve.go
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

// InterpMode selects how values between anchors are computed.
type InterpMode int

const (
	LogLinear InterpMode = iota // interpolate in log space (Gompertz-like, for mortality)
	Linear                      // straight linear interpolation (for quality weights)
)

// ExtrapMode selects the policy above the last anchor.  Ages at or below the
// first anchor always clamp to the first anchor value.
type ExtrapMode int

const (
	GeometricGrowth ExtrapMode = iota // lastValue * GrowthRate^(age-lastAge), capped at Cap
	LinearFloor                       // lastValue - DecaySlope*(age-lastAge), floored at Floor
)

// Anchor is one (age, value) entry of a sparse curve table.
type Anchor struct {
	Age   int
	Value float64
}

// AgeCurve is an immutable sparse table of anchor points with an interpolation
// policy between anchors and an extrapolation policy above the last anchor.
// Construction validates the table; queries never fail afterwards.
type AgeCurve struct {
	Name string

	anchors []Anchor
	interp  InterpMode
	extrap  ExtrapMode

	growthRate float64 // GeometricGrowth rate per year (> 1)
	cap        float64 // GeometricGrowth upper clamp
	decaySlope float64 // LinearFloor decline per year
	floor      float64 // LinearFloor lower clamp
}

// NewAgeCurve builds a curve from a sorted anchor table.  The table must be
// non-empty with strictly increasing ages; anything else is a construction
// error, so an invalid table can never surface mid-simulation.
func NewAgeCurve(name string, anchors []Anchor, interp InterpMode, extrap ExtrapMode) (*AgeCurve, error) {
	if len(anchors) == 0 {
		return nil, fmt.Errorf("curve %q: anchor table is empty", name)
	}
	for i := 1; i < len(anchors); i++ {
		if anchors[i].Age <= anchors[i-1].Age {
			return nil, fmt.Errorf("curve %q: anchor ages not strictly increasing at age %d", name, anchors[i].Age)
		}
	}
	c := &AgeCurve{
		Name:    name,
		anchors: append([]Anchor(nil), anchors...),
		interp:  interp,
		extrap:  extrap,

		// Extrapolation defaults; the specialized constructors below
		// override them where the literature tables require.
		growthRate: 1.1,
		cap:        1.0,
		decaySlope: 0.02,
		floor:      0.3,
	}
	return c, nil
}

// NewMortalityCurve is an AgeCurve with mortality policies: log-linear
// interpolation and 10%/year geometric growth above the last anchor,
// capped at a probability of 1.
func NewMortalityCurve(name string, anchors []Anchor) (*AgeCurve, error) {
	return NewAgeCurve(name, anchors, LogLinear, GeometricGrowth)
}

// NewQualityCurve is an AgeCurve with quality-weight policies: linear
// interpolation and a 0.02/year decline above the last anchor, floored
// at 0.3.
func NewQualityCurve(name string, anchors []Anchor) (*AgeCurve, error) {
	return NewAgeCurve(name, anchors, Linear, LinearFloor)
}

// Interpolate returns the curve value at an integer age.  Exact anchor ages
// return the table value with no drift.
func (c *AgeCurve) Interpolate(age int) float64 {
	first := c.anchors[0]
	last := c.anchors[len(c.anchors)-1]

	if age <= first.Age {
		return first.Value
	}
	if age >= last.Age {
		switch c.extrap {
		case GeometricGrowth:
			v := last.Value * math.Pow(c.growthRate, float64(age-last.Age))
			return math.Min(c.cap, v)
		default: // LinearFloor
			return math.Max(c.floor, last.Value-c.decaySlope*float64(age-last.Age))
		}
	}

	// Bracketing anchors: hi is the first anchor strictly above age.
	hi := sort.Search(len(c.anchors), func(i int) bool { return c.anchors[i].Age > age })
	lo := hi - 1
	if c.anchors[lo].Age == age {
		return c.anchors[lo].Value
	}

	vLo := c.anchors[lo].Value
	vHi := c.anchors[hi].Value
	frac := float64(age-c.anchors[lo].Age) / float64(c.anchors[hi].Age-c.anchors[lo].Age)

	if c.interp == LogLinear {
		if vLo <= 0 || vHi <= 0 {
			return (vLo + vHi) / 2 // log undefined, fall back to the arithmetic mean
		}
		return math.Exp(math.Log(vLo) + frac*(math.Log(vHi)-math.Log(vLo)))
	}
	return vLo + frac*(vHi-vLo)
}

// Materialize evaluates the curve at every integer age in [startAge, maxAge]
// inclusive.  It is a pure function of its inputs and the table.
func (c *AgeCurve) Materialize(startAge, maxAge int) []float64 {
	v := make([]float64, maxAge-startAge+1)
	for a := startAge; a <= maxAge; a++ {
		v[a-startAge] = c.Interpolate(a)
	}
	return v
}

// Anchors returns a copy of the anchor table.
func (c *AgeCurve) Anchors() []Anchor {
	return append([]Anchor(nil), c.anchors...)
}
