// Package schedule contains the scoring pipeline: weighting, aggregation,
// and normalisation of historical assessment results.
package schedule

import (
	"math"
	"time"

	"github.com/verrev/revise/internal/model"
)

// fallbackPredictedGrade is assumed for subjects with no configured
// prediction when weighting non-positive scores.
const fallbackPredictedGrade = 0.1

// ApplyWeighting folds history entries into per-subject weighted totals.
// Positive scores weigh by assessment type scaled toward underperformance
// (higher scores contribute less weight); non-positive scores weigh by the
// subject's predicted-grade deficit. Every weight is then discounted by the
// entry's age.
func ApplyWeighting(history []model.HistoryEntry, assessmentWeights map[string]float64, predictedGrades map[string]float64, decay model.DateDecayConfig, today time.Time) map[string]model.WeightedTotals {
	totals := make(map[string]model.WeightedTotals)

	for _, entry := range history {
		var weight float64
		if entry.Score > 0 {
			weight = assessmentWeights[entry.Type] * (100 - entry.Score)
		} else {
			grade, ok := predictedGrades[entry.Subject]
			if !ok {
				grade = fallbackPredictedGrade
			}
			weight = math.Floor(100 * (1 - grade))
		}
		weight *= dateWeight(entry.Date, decay, today)

		acc := totals[entry.Subject]
		acc.WeightedSum += entry.Score * weight
		acc.WeightTotal += weight
		totals[entry.Subject] = acc
	}

	return totals
}

// dateWeight returns the recency multiplier for an entry date. Unparsable
// dates and future dates count as fully recent.
func dateWeight(date string, decay model.DateDecayConfig, today time.Time) float64 {
	parsed, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return decay.MaxWeight
	}

	ageDays := int(today.Truncate(24*time.Hour).Sub(parsed.Truncate(24*time.Hour)).Hours() / 24)
	window := decay.ZeroDayThreshold
	if window < 1 {
		window = 1
	}

	if ageDays <= 0 {
		return decay.MaxWeight
	}
	if ageDays >= window {
		return decay.MinWeight
	}

	span := decay.MaxWeight - decay.MinWeight
	scaled := decay.MaxWeight - span*(float64(ageDays)/float64(window))
	return math.Max(decay.MinWeight, math.Min(decay.MaxWeight, scaled))
}
