// initSimulation
package main

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

import (
	"flag"
	"fmt"
	"io/ioutil"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/blgolden/nutCEAModel/nutCEA/cea"
	"github.com/blgolden/nutCEAModel/nutCEA/curves"
	"github.com/blgolden/nutCEAModel/nutCEA/logger"
	"github.com/blgolden/nutCEAModel/nutCEA/montecarlo"
	"github.com/blgolden/nutCEAModel/nutCEA/nuts"

	"golang.org/x/exp/rand"

	hjson "github.com/hjson/hjson-go"
)

// setup the map of the array of json name:value pairs - notice "interface{}"
var param map[string]interface{}

var paramFile *string     // Name of the parameter file
var modelName *string     // lifecycle, pathway or quick
var nutName *string       // Which nut to evaluate ("" = category average)
var posteriorFile *string // File of posterior relative-risk draws, one per line
var nSim *int             // Number of Monte Carlo draws

var lifecycleParams cea.LifecycleParams
var pathwayParams cea.PathwayParams
var quickParams montecarlo.QuickParams

var lifecycleModel *cea.CEA
var pathwayModel *cea.PathwayCEA

var posteriorDraws []float64

var rngSource rand.Source

// Initialize the run
func initSimulation() {

	parseArgs()

	loadParam()

	if *logger.OutputMode == "verbose" {
		runComment, ok := param["Comment"].(interface{})
		if ok {
			fmt.Printf("Comment: %v\n\n", runComment.(string))
		}
	}

	lifecycleParams = cea.DefaultLifecycleParams()
	pathwayParams = cea.DefaultPathwayParams()
	quickParams = montecarlo.DefaultQuickParams()

	loadEngineParams()

	loadCurveModels()

	applyNut()

	if *posteriorFile != "" {
		loadPosterior()
	}

	// Set the rnd seed
	rngSource = rand.NewSource(uint64(*logger.Seed))

	if *logger.OutputMode == "verbose" && *paramFile != "" {
		fmt.Printf("\n\tFinished loading %v...\n\n", *paramFile)
	}
}

// Parse the arg list
func parseArgs() {

	paramFile = flag.String("ceaParm", "", "The nutCEA parameter file (optional, defaults apply)")
	modelName = flag.String("model", "lifecycle", "'lifecycle'(default), 'pathway' or 'quick'")
	nutName = flag.String("nut", "", "Nut id to evaluate, e.g. walnut (default: category average)")
	posteriorFile = flag.String("posterior", "", "File of posterior RR draws, one per line (pathway model only)")
	nSim = flag.Int("nSim", 1000, "Number of Monte Carlo draws")
	logger.OutputMode = flag.String("outputMode", "verbose", "'verbose'(default) or 'model'")
	logger.User = flag.String("user", "admin", "user=[Username]")

	logger.Seed = flag.Int64("seed", 1234, "Random number generator seed (int64)")

	showVersion := flag.Bool("version", false, "Print the version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("nutCEA %v\n", version)
		os.Exit(0)
	}

	if *logger.OutputMode == "verbose" {
		fmt.Printf("\n\t*** nutCEA ver %v ***\n\n", version)
	}

	switch *modelName {
	case "lifecycle", "pathway", "quick":
	default:
		if *logger.OutputMode == "verbose" {
			fmt.Printf("Error: unknown model %q\n", *modelName)

			syntax := `Usage of ./nutCEA:
  -ceaParm string
    	The nutCEA parameter hjson file (optional)
  -model string
    	'lifecycle'(default), 'pathway' or 'quick'
  -nut string
    	Nut id to evaluate, e.g. walnut (default: category average)
  -nSim int
    	Number of Monte Carlo draws (default 1000)
  -posterior string
    	File of posterior RR draws, one per line (pathway model only)
  -outputMode string
    	'verbose'(default) or 'model' (default "verbose")
  -seed int
    	Random number generator seed (int64) (default 1234)
  -user string
    	user=[Username] (default "admin")`

			fmt.Printf("\n%s\n\n", syntax)
		}
		logger.LogWriterFatal("unknown model " + *modelName)
	}

	if *posteriorFile != "" && *modelName != "pathway" {
		logger.LogWriterFatal("-posterior requires -model=pathway")
	}
}

// Read in the parameter hjson file and setup the map of param[key] pairs
func loadParam() {

	param = make(map[string]interface{})

	if *paramFile == "" {
		return // run entirely on defaults
	}

	hjsonFile, err := os.Open(*paramFile)
	if err != nil {
		if *logger.OutputMode == "verbose" {
			fmt.Println("Failed to open " + *paramFile)
			fmt.Println(err)
			os.Exit(1)
		} else {
			logger.LogWriter("Failed to open parameter file " + *paramFile)
			os.Exit(1)
		}
	}
	defer hjsonFile.Close()

	byteValue, _ := ioutil.ReadAll(hjsonFile)

	// Translate the byte array into the mapped array of name:value pairs
	if er := hjson.Unmarshal(byteValue, &param); er != nil {
		panic(er)
	}
}

func paramFloat(key string) (float64, bool) {
	v, ok := param[key].(float64)
	return v, ok
}

func paramInt(key string) (int, bool) {
	v, ok := param[key].(float64)
	return int(v), ok
}

// Overlay the hjson keys onto the engine defaults.  Shared keys apply to
// every model so one file can drive all three.
func loadEngineParams() {

	if v, ok := paramInt("startAge"); ok {
		lifecycleParams.StartAge = v
		pathwayParams.StartAge = v
		quickParams.Age = v
	}
	if v, ok := paramInt("maxAge"); ok {
		lifecycleParams.MaxAge = v
		pathwayParams.MaxAge = v
	}
	if v, ok := paramFloat("discountRate"); ok {
		lifecycleParams.DiscountRate = v
		pathwayParams.DiscountRate = v
	}
	if v, ok := paramFloat("annualCost"); ok {
		lifecycleParams.AnnualCost = v
		pathwayParams.AnnualCost = v
	}

	if v, ok := paramFloat("hazardRatio"); ok {
		lifecycleParams.HazardRatio = v
		quickParams.BaseHRMean = v
	}
	if v, ok := paramFloat("hazardRatioSd"); ok {
		lifecycleParams.HazardRatioSd = v
		quickParams.BaseHRSd = v
	}
	if v, ok := paramFloat("confoundingAdjustment"); ok {
		lifecycleParams.ConfoundingAdjustment = v
		quickParams.ConfoundingAdjustment = v
	}

	if v, ok := paramFloat("rrCvd"); ok {
		pathwayParams.RRCvd = v
	}
	if v, ok := paramFloat("rrCancer"); ok {
		pathwayParams.RRCancer = v
	}
	if v, ok := paramFloat("rrOther"); ok {
		pathwayParams.RROther = v
	}
	if v, ok := paramFloat("rrCvdSd"); ok {
		pathwayParams.RRCvdSd = v
	}
	if v, ok := paramFloat("rrCancerSd"); ok {
		pathwayParams.RRCancerSd = v
	}
	if v, ok := paramFloat("rrOtherSd"); ok {
		pathwayParams.RROtherSd = v
	}
	if v, ok := paramFloat("rrQuality"); ok {
		pathwayParams.RRQuality = v
	}
	if v, ok := paramFloat("rrQualitySd"); ok {
		pathwayParams.RRQualitySd = v
	}
	if v, ok := paramFloat("qualityScale"); ok {
		pathwayParams.QualityScale = v
	}
	if v, ok := paramFloat("confoundingAlpha"); ok {
		pathwayParams.ConfoundingAlpha = v
	}
	if v, ok := paramFloat("confoundingBeta"); ok {
		pathwayParams.ConfoundingBeta = v
	}
	if v, ok := paramFloat("pathwayConfoundingAdjustment"); ok {
		pathwayParams.ConfoundingAdjustment = v
	}

	if v, ok := paramFloat("lifeExpectancy"); ok {
		quickParams.LifeExpectancy = v
	}
	if v, ok := paramFloat("qualityWeightAlpha"); ok {
		quickParams.QualityWeightAlpha = v
	}
	if v, ok := paramFloat("qualityWeightBeta"); ok {
		quickParams.QualityWeightBeta = v
	}
	quickParams.NSimulations = *nSim
}

// Build the curve-backed engines, substituting any table overrides from the
// parameter file.  Row format follows the rest of the file: comma separated
// strings, one anchor per row.
func loadCurveModels() {

	lifecycleModel = cea.NewCEA()
	pathwayModel = cea.NewPathwayCEA()

	if anchors, ok := loadAgeAnchors("mortalityCurve"); ok {
		c, err := curves.NewMortalityCurve("paramMortality", anchors)
		if err != nil {
			logger.LogWriterFatal("mortalityCurve: " + err.Error())
		}
		lifecycleModel.Mortality = c
		pathwayModel.Mortality = c
	}
	if anchors, ok := loadAgeAnchors("qualityCurve"); ok {
		c, err := curves.NewQualityCurve("paramQuality", anchors)
		if err != nil {
			logger.LogWriterFatal("qualityCurve: " + err.Error())
		}
		lifecycleModel.Quality = c
		pathwayModel.Quality = c
	}
	if anchors, ok := loadMixAnchors("causeMixCurve"); ok {
		c, err := curves.NewCauseMixCurve("paramCauseMix", anchors)
		if err != nil {
			logger.LogWriterFatal("causeMixCurve: " + err.Error())
		}
		pathwayModel.CauseMix = c
	}
}

// Rows are "age, value"
func loadAgeAnchors(key string) ([]curves.Anchor, bool) {

	array, ok := param[key].([]interface{})
	if !ok {
		return nil, false
	}

	var anchors []curves.Anchor
	for i := range array {
		s := strings.Split(array[i].(string), ",")
		if len(s) != 2 {
			logger.LogWriterFatal(key + ": each row must be 'age, value', got " + array[i].(string))
		}
		age, err := strconv.Atoi(strings.TrimSpace(s[0]))
		if err != nil {
			logger.LogWriterFatal(key + ": bad age in row " + array[i].(string))
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s[1]), 64)
		if err != nil {
			logger.LogWriterFatal(key + ": bad value in row " + array[i].(string))
		}
		anchors = append(anchors, curves.Anchor{Age: age, Value: v})
	}
	return anchors, true
}

// Rows are "age, cvdFraction, cancerFraction, otherFraction"
func loadMixAnchors(key string) ([]curves.MixAnchor, bool) {

	array, ok := param[key].([]interface{})
	if !ok {
		return nil, false
	}

	var anchors []curves.MixAnchor
	for i := range array {
		s := strings.Split(array[i].(string), ",")
		if len(s) != 4 {
			logger.LogWriterFatal(key + ": each row must be 'age, cvd, cancer, other', got " + array[i].(string))
		}
		age, err := strconv.Atoi(strings.TrimSpace(s[0]))
		if err != nil {
			logger.LogWriterFatal(key + ": bad age in row " + array[i].(string))
		}
		var f [3]float64
		for j := 0; j < 3; j++ {
			f[j], err = strconv.ParseFloat(strings.TrimSpace(s[j+1]), 64)
			if err != nil {
				logger.LogWriterFatal(key + ": bad fraction in row " + array[i].(string))
			}
		}
		anchors = append(anchors, curves.MixAnchor{Age: age, CVD: f[0], Cancer: f[1], Other: f[2]})
	}
	return anchors, true
}

// Resolve the -nut flag against the catalog: adjustment factor (hjson keys
// nutAdjustment/nutAdjustmentSd override the catalog) and annual retail cost.
func applyNut() {

	if *nutName == "" {
		// Category average.  Still honor explicit overrides.
		if v, ok := paramFloat("nutAdjustment"); ok {
			lifecycleParams.NutAdjustment = v
			pathwayParams.NutAdjustment = v
		}
		if v, ok := paramFloat("nutAdjustmentSd"); ok {
			lifecycleParams.NutAdjustmentSd = v
			pathwayParams.NutAdjustmentSd = v
		}
		return
	}

	overrideMean := math.NaN()
	overrideSd := math.NaN()
	if v, ok := paramFloat("nutAdjustment"); ok {
		overrideMean = v
	}
	if v, ok := paramFloat("nutAdjustmentSd"); ok {
		overrideSd = v
	}

	mean, sd, err := nuts.ResolveAdjustment(*nutName, overrideMean, overrideSd)
	if err != nil {
		logger.LogWriterFatal(err.Error())
	}
	lifecycleParams.NutAdjustment = mean
	lifecycleParams.NutAdjustmentSd = sd
	pathwayParams.NutAdjustment = mean
	pathwayParams.NutAdjustmentSd = sd

	// Per-nut retail cost replaces the generic annual cost unless the
	// parameter file pinned one.
	if _, pinned := paramFloat("annualCost"); !pinned {
		if c, err := nuts.Cost(*nutName); err == nil {
			lifecycleParams.AnnualCost = c.AnnualCost28g
			pathwayParams.AnnualCost = c.AnnualCost28g
		}
	}

	if *logger.OutputMode == "verbose" {
		n, _ := nuts.Get(*nutName)
		fmt.Printf("Nut: %v  adjustment %.2f (sd %.2f)  %v evidence\n\n",
			n.Name, mean, sd, n.EvidenceStrength)
	}
}

// One draw per line; blank lines and # comments are skipped.
func loadPosterior() {

	byteValue, err := ioutil.ReadFile(*posteriorFile)
	if err != nil {
		logger.LogWriterFatal("Failed to open posterior draw file " + *posteriorFile)
	}

	for _, line := range strings.Split(string(byteValue), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			logger.LogWriterFatal("posterior draw file: bad value " + line)
		}
		posteriorDraws = append(posteriorDraws, v)
	}

	if len(posteriorDraws) == 0 {
		logger.LogWriterFatal("posterior draw file " + *posteriorFile + " contains no draws")
	}

	if *logger.OutputMode == "verbose" {
		fmt.Printf("Loaded %d posterior draws from %v\n\n", len(posteriorDraws), *posteriorFile)
	}
}
