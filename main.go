// nutCEA project main.go
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

package main

import (
	"fmt"

	"github.com/blgolden/nutCEAModel/nutCEA/logger"
	"github.com/blgolden/nutCEAModel/nutCEA/montecarlo"
	"github.com/blgolden/nutCEAModel/nutCEA/nuts"
)

var version = "beta0.1.2"

func main() {

	initSimulation() // Initialize everything

	switch *modelName {
	case "lifecycle":
		runLifecycle()
	case "pathway":
		runPathway()
	case "quick":
		runQuick()
	}
}

func runLifecycle() {

	if *nutName == "" {
		printCatalogTable()
	}

	result, err := lifecycleModel.Run(lifecycleParams)
	if err != nil {
		logger.LogWriterFatal(err.Error())
	}

	if *logger.OutputMode == "verbose" {
		fmt.Printf("Lifecycle model  start age %d  max age %d  discount %.1f%%\n\n",
			lifecycleParams.StartAge, lifecycleParams.MaxAge, lifecycleParams.DiscountRate*100)
		fmt.Printf("                          Undiscounted      Discounted\n")
		fmt.Printf("Life years gained       %12.4f    %12.4f\n", result.LifeYearsGained, result.LifeYearsGainedDiscounted)
		fmt.Printf("QALYs gained            %12.4f    %12.4f\n", result.QALYsGained, result.QALYsGainedDiscounted)
		fmt.Printf("Total cost                              %12.2f\n", result.TotalCostDiscounted)
		fmt.Printf("Cost per life year                      %12.2f\n", result.CostPerLifeYear)
		fmt.Printf("Cost per QALY                           %12.2f\n\n", result.CostPerQALY)
	}

	summary, err := montecarlo.RunLifecycle(lifecycleModel, lifecycleParams, *nSim, rngSource)
	if err != nil {
		logger.LogWriterFatal(err.Error())
	}

	printSummary("Lifecycle", summary)

	logger.LogWriter(fmt.Sprintf("lifecycle run by %s: %d draws, QALY mean %.4f, ICER median %.2f",
		*logger.User, *nSim, summary.QALYMean, summary.ICERMedian))
}

func runPathway() {

	result, err := pathwayModel.Run(pathwayParams)
	if err != nil {
		logger.LogWriterFatal(err.Error())
	}

	if *logger.OutputMode == "verbose" {
		fmt.Printf("Pathway model  start age %d  max age %d  discount %.1f%%\n\n",
			pathwayParams.StartAge, pathwayParams.MaxAge, pathwayParams.DiscountRate*100)
		fmt.Printf("Pathway        Life years    Contribution\n")
		fmt.Printf("CVD          %12.4f    %11.1f%%\n", result.LifeYearsCVD, result.CVDContribution*100)
		fmt.Printf("Cancer       %12.4f    %11.1f%%\n", result.LifeYearsCancer, result.CancerContribution*100)
		fmt.Printf("Other        %12.4f    %11.1f%%\n", result.LifeYearsOther, result.OtherContribution*100)
		fmt.Printf("Total        %12.4f\n\n", result.LifeYearsGained)
		fmt.Printf("QALYs gained (discounted) %12.4f\n", result.QALYsGainedDiscounted)
		fmt.Printf("Cost per QALY             %12.2f\n\n", result.CostPerQALY)
	}

	var summary montecarlo.PathwaySummary
	if *posteriorFile != "" {
		summary, err = montecarlo.RunPathwayPosterior(pathwayModel, pathwayParams, posteriorDraws)
	} else {
		summary, err = montecarlo.RunPathway(pathwayModel, pathwayParams, *nSim, rngSource)
	}
	if err != nil {
		logger.LogWriterFatal(err.Error())
	}

	printSummary("Pathway", summary.Summary)

	if *logger.OutputMode == "verbose" {
		fmt.Printf("Mean CVD contribution    %7.1f%%\n", summary.CVDContributionMean*100)
		fmt.Printf("Mean cancer contribution %7.1f%%\n\n", summary.CancerContributionMean*100)
	}

	logger.LogWriter(fmt.Sprintf("pathway run by %s: %d draws, QALY mean %.4f, ICER median %.2f",
		*logger.User, len(summary.QALYs), summary.QALYMean, summary.ICERMedian))
}

func runQuick() {

	result, err := montecarlo.RunQuick(quickParams, rngSource)
	if err != nil {
		logger.LogWriterFatal(err.Error())
	}

	if *logger.OutputMode == "verbose" {
		fmt.Printf("Quick model  age %d  %d draws per nut\n\n", quickParams.Age, quickParams.NSimulations)
		fmt.Printf("Nut          Median      Mean        95%% CI              P(>0)   P(>1y)\n")
		for _, r := range result.Results {
			fmt.Printf("%-10s %8.3f  %8.3f   [%7.3f, %7.3f]  %6.2f   %6.2f\n",
				r.NutID, r.Median, r.Mean, r.CI95[0], r.CI95[1], r.PPositive, r.PGtOneYear)
		}
		fmt.Printf("\nCategory effect (any nut): median %.3f QALYs  95%% CI [%.3f, %.3f]\n\n",
			result.Category.Median, result.Category.CI95[0], result.Category.CI95[1])
	} else {
		// Machine-readable rows for the web service wrapper.
		for _, r := range result.Results {
			fmt.Printf("nut=%s median=%.6f mean=%.6f lo=%.6f hi=%.6f\n",
				r.NutID, r.Median, r.Mean, r.CI95[0], r.CI95[1])
		}
	}

	logger.LogWriter(fmt.Sprintf("quick run by %s: %d draws per nut", *logger.User, quickParams.NSimulations))
}

// printCatalogTable runs the deterministic lifecycle engine once per catalog
// nut, with each nut's own adjustment factor and retail cost.
func printCatalogTable() {

	if *logger.OutputMode != "verbose" {
		return
	}

	fmt.Printf("Nut          Annual cost    QALYs gained    Cost per QALY\n")
	for _, id := range nuts.IDs() {
		n, _ := nuts.Get(id)
		c, err := nuts.Cost(id)
		if err != nil {
			logger.LogWriterFatal(err.Error())
		}

		p := lifecycleParams
		p.NutAdjustment = n.AdjustmentFactor.Mean
		p.NutAdjustmentSd = n.AdjustmentFactor.Sd
		p.AnnualCost = c.AnnualCost28g

		result, err := lifecycleModel.Run(p)
		if err != nil {
			logger.LogWriterFatal(err.Error())
		}

		fmt.Printf("%-10s %12.2f    %12.4f    %13.2f\n",
			id, p.AnnualCost, result.QALYsGainedDiscounted, result.CostPerQALY)
	}
	fmt.Printf("\n")
}

// printSummary is the shared Monte Carlo output table.
func printSummary(label string, s montecarlo.Summary) {

	if *logger.OutputMode == "verbose" {
		fmt.Printf("%s Monte Carlo  %d draws  seed %d\n\n", label, len(s.QALYs), *logger.Seed)
		fmt.Printf("                     Mean        Median      95%% CI\n")
		fmt.Printf("QALYs gained   %10.4f  %10.4f   [%8.4f, %8.4f]\n",
			s.QALYMean, s.QALYMedian, s.QALYCI95[0], s.QALYCI95[1])
		fmt.Printf("Cost per QALY  %10.2f  %10.2f   [%8.2f, %8.2f]\n\n",
			s.ICERMean, s.ICERMedian, s.ICERCI95[0], s.ICERCI95[1])
	} else {
		fmt.Printf("qalyMean=%.6f qalyMedian=%.6f icerMedian=%.2f\n",
			s.QALYMean, s.QALYMedian, s.ICERMedian)
	}
}
