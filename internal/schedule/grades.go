package schedule

import "github.com/verrev/revise/internal/model"

// DerivePredictedGrades estimates predicted grades directly from history
// when no external prediction source exists. Only non-negative scores
// contribute; results are scaled to [0, 1]. Subjects with zero accumulated
// weight yield 0.
func DerivePredictedGrades(history []model.HistoryEntry, assessmentWeights map[string]float64) map[string]float64 {
	sums := make(map[string]float64)
	weights := make(map[string]float64)

	for _, entry := range history {
		if entry.Score < 0 {
			continue
		}
		weight := assessmentWeights[entry.Type]
		sums[entry.Subject] += entry.Score * weight
		weights[entry.Subject] += weight
	}

	grades := make(map[string]float64, len(weights))
	for subject, weight := range weights {
		if weight <= 0 {
			grades[subject] = 0
			continue
		}
		grades[subject] = clamp(sums[subject]/weight/100, 0, 1)
	}
	return grades
}

func clamp(value, lower, upper float64) float64 {
	if value < lower {
		return lower
	}
	if value > upper {
		return upper
	}
	return value
}
