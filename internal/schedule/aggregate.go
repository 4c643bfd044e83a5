package schedule

import (
	"math"

	"github.com/verrev/revise/internal/model"
)

// AggregateScores collapses weighted totals into one representative score
// per subject. Subjects with accumulated weight use their weighted average;
// subjects without history fall back to the predicted grade. Predicted
// grades define the universe: subjects absent from the map are excluded.
// Scores are floored to two decimal places for stable comparisons.
func AggregateScores(totals map[string]model.WeightedTotals, predictedGrades map[string]float64) map[string]float64 {
	aggregated := make(map[string]float64, len(predictedGrades))

	for subject, grade := range predictedGrades {
		score := grade
		if acc, ok := totals[subject]; ok && acc.WeightTotal > 0 {
			score = acc.WeightedSum / acc.WeightTotal
		}
		aggregated[subject] = math.Floor(score*100) / 100
	}

	return aggregated
}
