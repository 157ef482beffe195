package core

import (
	"math"

	"github.com/docu3c/autocodex/schema"
)

// computeQualityScore blends complexity, maintainability and issue density
// into one 0-100 score. Complexity contributes max(0, 100 - 5*avgCC);
// issue density is issues per thousand lines, capped at 100.
func computeQualityScore(avgComplexity, avgMaintainability float64, totalIssues, totalLOC int) float64 {
	complexityScore := math.Max(0, 100-5*avgComplexity)

	issueDensity := 0.0
	if totalLOC > 0 {
		issueDensity = math.Min(100, float64(totalIssues)/float64(totalLOC)*1000)
	}

	score := schema.QualityWeightComplexity*complexityScore +
		schema.QualityWeightMaintainability*avgMaintainability +
		schema.QualityWeightIssueDensity*(100-issueDensity)
	return math.Min(100, math.Max(0, score))
}

// aggregateReport fills the repository-level totals and averages from the
// per-file reviews already collected on the report.
func aggregateReport(report *schema.RepoReport) {
	n := len(report.Files)
	report.FilesAnalyzed = n
	if n == 0 {
		return
	}

	var sumComplexity, sumMaintainability, sumDuplication float64
	for _, fr := range report.Files {
		sumComplexity += float64(fr.Complexity)
		sumMaintainability += fr.Maintainability
		sumDuplication += float64(fr.Duplication)
		report.TotalLOC += fr.Lines.Code
		report.TotalIssues += len(fr.Issues)
	}

	report.AvgComplexity = sumComplexity / float64(n)
	report.AvgMaintainability = sumMaintainability / float64(n)
	report.AvgDuplication = sumDuplication / float64(n)
	report.QualityScore = computeQualityScore(
		report.AvgComplexity, report.AvgMaintainability, report.TotalIssues, report.TotalLOC)
}
