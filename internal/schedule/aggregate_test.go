package schedule

import (
	"math"
	"testing"

	"github.com/verrev/revise/internal/model"
)

func TestAggregateScoresUsesWeightedAverage(t *testing.T) {
	totals := map[string]model.WeightedTotals{
		"Maths": {WeightedSum: 7162.5, WeightTotal: 102.5},
	}
	grades := map[string]float64{"Maths": 0.7}

	aggregated := AggregateScores(totals, grades)

	want := math.Floor(7162.5 / 102.5 * 100) / 100
	if got := aggregated["Maths"]; got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAggregateScoresFallsBackToPredictedGrade(t *testing.T) {
	totals := map[string]model.WeightedTotals{
		"Physics": {WeightedSum: 0, WeightTotal: 0},
	}
	grades := map[string]float64{"Physics": 0.6, "Chemistry": 0.45}

	aggregated := AggregateScores(totals, grades)

	if got := aggregated["Physics"]; got != 0.6 {
		t.Fatalf("zero weight should fall back to grade, got %v", got)
	}
	if got := aggregated["Chemistry"]; got != 0.45 {
		t.Fatalf("missing totals should fall back to grade, got %v", got)
	}
}

func TestAggregateScoresExcludesUnpredictedSubjects(t *testing.T) {
	totals := map[string]model.WeightedTotals{
		"Latin": {WeightedSum: 500, WeightTotal: 10},
	}
	aggregated := AggregateScores(totals, map[string]float64{"Maths": 0.5})

	if _, ok := aggregated["Latin"]; ok {
		t.Fatalf("subjects without predicted grades must be excluded")
	}
	if len(aggregated) != 1 {
		t.Fatalf("expected a single subject, got %v", aggregated)
	}
}
