// nuts.go
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

// Package nuts is the evidence and nutrient store: per-nut composition data,
// adjustment factors on the base mortality effect, and retail costs.  The
// engines treat these as opaque calibration inputs.
package nuts

import (
	"errors"
	"fmt"
	"math"
)

// Nutrients is composition per 100g.  Source: USDA FoodData Central.
type Nutrients struct {
	ServingSizeG int
	CaloriesKcal float64
	ProteinG     float64
	FatG         float64
	CarbsG       float64
	FiberG       float64
	Omega3G      float64 // ALA (alpha-linolenic acid)
	Omega6G      float64 // LA (linoleic acid)
	Omega7G      float64 // palmitoleic acid
	MufaG        float64 // monounsaturated fatty acids
	VitaminEMg   float64
	MagnesiumMg  float64
}

// AdjustmentFactor_t is a nut-specific adjustment to the base mortality
// effect.  Mean > 1 means better than the average nut; a larger SD means
// less evidence.
type AdjustmentFactor_t struct {
	Mean      float64
	Sd        float64
	Rationale string
	Sources   []string
}

// Nut is one catalog entry.
type Nut struct {
	ID               string
	Name             string
	Nutrients        Nutrients
	AdjustmentFactor AdjustmentFactor_t
	EvidenceSources  []string
	EvidenceStrength string // "strong", "moderate", "limited"
	Notes            string
}

// Catalog lists every nut the model knows about.  All nutrient values are
// from USDA FoodData Central, https://fdc.nal.usda.gov/
var Catalog = []Nut{
	{
		ID:   "walnut",
		Name: "Walnut",
		Nutrients: Nutrients{
			ServingSizeG: 100, CaloriesKcal: 654, ProteinG: 15.2, FatG: 65.2,
			CarbsG: 13.7, FiberG: 6.7,
			Omega3G: 9.08, // highest ALA of any nut
			Omega6G: 38.1, Omega7G: 0.0, MufaG: 8.9,
			VitaminEMg: 0.7, MagnesiumMg: 158,
		},
		AdjustmentFactor: AdjustmentFactor_t{
			Mean: 1.15, Sd: 0.08,
			Rationale: "Strongest CVD outcome data (PREDIMED, WAHA), unique omega-3 content",
			Sources:   []string{"guasch2017", "predimed_walnuts", "waha2021"},
		},
		EvidenceSources:  []string{"guasch2017", "predimed_walnuts", "waha2021", "delgobbo2015"},
		EvidenceStrength: "strong",
		Notes:            "Only nut with significant omega-3 (ALA). Most nut-specific RCT data.",
	},
	{
		ID:   "almond",
		Name: "Almond",
		Nutrients: Nutrients{
			ServingSizeG: 100, CaloriesKcal: 579, ProteinG: 21.2, FatG: 49.9,
			CarbsG: 21.6, FiberG: 12.5,
			Omega3G: 0.003, Omega6G: 12.3, Omega7G: 0.3, MufaG: 31.6,
			VitaminEMg: 25.6, // highest vitamin E
			MagnesiumMg: 270,
		},
		AdjustmentFactor: AdjustmentFactor_t{
			Mean: 1.00, Sd: 0.06,
			Rationale: "Reference category. Robust RCT base, highest vitamin E and fiber.",
			Sources:   []string{"delgobbo2015"},
		},
		EvidenceSources:  []string{"delgobbo2015", "aune2016"},
		EvidenceStrength: "moderate",
		Notes:            "Used as reference nut in many studies. Most studied after walnuts.",
	},
	{
		ID:   "pistachio",
		Name: "Pistachio",
		Nutrients: Nutrients{
			ServingSizeG: 100, CaloriesKcal: 560, ProteinG: 20.2, FatG: 45.3,
			CarbsG: 27.2, FiberG: 10.6,
			Omega3G: 0.25, Omega6G: 13.2, Omega7G: 0.5, MufaG: 23.3,
			VitaminEMg: 2.9, MagnesiumMg: 121,
		},
		AdjustmentFactor: AdjustmentFactor_t{
			Mean: 1.08, Sd: 0.10,
			Rationale: "Best lipid improvements in network meta-analysis",
			Sources:   []string{"delgobbo2015"},
		},
		EvidenceSources:  []string{"delgobbo2015"},
		EvidenceStrength: "moderate",
		Notes:            "Ranked #1 for LDL and triglyceride reduction in Del Gobbo 2015.",
	},
	{
		ID:   "macadamia",
		Name: "Macadamia",
		Nutrients: Nutrients{
			ServingSizeG: 100, CaloriesKcal: 718, ProteinG: 7.9, FatG: 75.8,
			CarbsG: 13.8, FiberG: 8.6,
			Omega3G: 0.21, Omega6G: 1.3,
			Omega7G: 12.0, // unique: highest omega-7
			MufaG:   58.9,
			VitaminEMg: 0.5, MagnesiumMg: 130,
		},
		AdjustmentFactor: AdjustmentFactor_t{
			Mean: 1.02, Sd: 0.15,
			Rationale: "Limited direct evidence. FDA qualified health claim. Unique omega-7 adds optionality.",
			Sources:   []string{"fda_macadamia"},
		},
		EvidenceSources:  []string{"fda_macadamia", "usda_fdc"},
		EvidenceStrength: "limited",
		Notes:            "Best omega-6:3 ratio (~6:1). Highest MUFA. Omega-7 may have unique benefits but evidence sparse.",
	},
	{
		ID:   "peanut",
		Name: "Peanut",
		Nutrients: Nutrients{
			ServingSizeG: 100, CaloriesKcal: 567, ProteinG: 25.8, FatG: 49.2,
			CarbsG: 16.1, FiberG: 8.5,
			Omega3G: 0.003, Omega6G: 15.6, Omega7G: 0.0, MufaG: 24.4,
			VitaminEMg: 8.3, MagnesiumMg: 168,
		},
		AdjustmentFactor: AdjustmentFactor_t{
			Mean: 0.95, Sd: 0.07,
			Rationale: "Large cohort data, but technically a legume. Slight discount for aflatoxin risk.",
			Sources:   []string{"aune2016", "bao2013"},
		},
		EvidenceSources:  []string{"aune2016", "bao2013"},
		EvidenceStrength: "strong",
		Notes:            "Technically a legume. Included in most nut meta-analyses. Excellent cost-effectiveness.",
	},
	{
		ID:   "pecan",
		Name: "Pecan",
		Nutrients: Nutrients{
			ServingSizeG: 100, CaloriesKcal: 691, ProteinG: 9.2, FatG: 72.0,
			CarbsG: 13.9, FiberG: 9.6,
			Omega3G: 0.99, Omega6G: 20.6, Omega7G: 0.0, MufaG: 40.8,
			VitaminEMg: 1.4, MagnesiumMg: 121,
		},
		AdjustmentFactor: AdjustmentFactor_t{
			Mean: 0.98, Sd: 0.18,
			Rationale: "Minimal nut-specific evidence. Estimate relies on category prior.",
		},
		EvidenceSources:  []string{"usda_fdc"},
		EvidenceStrength: "limited",
		Notes:            "Very limited nut-specific research. Prior-dominated estimate.",
	},
	{
		ID:   "cashew",
		Name: "Cashew",
		Nutrients: Nutrients{
			ServingSizeG: 100, CaloriesKcal: 553, ProteinG: 18.2, FatG: 43.9,
			CarbsG: 30.2, FiberG: 3.3,
			Omega3G: 0.06, Omega6G: 7.8, Omega7G: 0.0, MufaG: 23.8,
			VitaminEMg: 0.9,
			MagnesiumMg: 292, // highest magnesium
		},
		AdjustmentFactor: AdjustmentFactor_t{
			Mean: 0.92, Sd: 0.14,
			Rationale: "Lowest fiber, highest carbs. Very limited RCT data.",
		},
		EvidenceSources:  []string{"usda_fdc"},
		EvidenceStrength: "limited",
		Notes:            "Lower fiber and higher carbs than other nuts. Limited nut-specific evidence.",
	},
}

// ErrUnknownNut tags lookups of ids not in the catalog; the boundary layer
// decides whether to abort or surface a message.
var ErrUnknownNut = errors.New("unknown nut")

// Get looks up one catalog entry by id.
func Get(id string) (Nut, error) {
	for _, n := range Catalog {
		if n.ID == id {
			return n, nil
		}
	}
	return Nut{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownNut, id, IDs())
}

// IDs lists the catalog ids in catalog order.
func IDs() []string {
	ids := make([]string, len(Catalog))
	for i, n := range Catalog {
		ids[i] = n.ID
	}
	return ids
}

// ResolveAdjustment merges caller overrides against the catalog defaults
// before the core's immutable parameter types are built: pass NaN for either
// override to take the catalog value.  The core itself never defaults.
func ResolveAdjustment(id string, overrideMean, overrideSd float64) (mean, sd float64, err error) {
	n, err := Get(id)
	if err != nil {
		return 0, 0, err
	}
	mean = n.AdjustmentFactor.Mean
	sd = n.AdjustmentFactor.Sd
	if !math.IsNaN(overrideMean) {
		mean = overrideMean
	}
	if !math.IsNaN(overrideSd) {
		sd = overrideSd
	}
	return mean, sd, nil
}
