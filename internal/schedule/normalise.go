package schedule

import (
	"errors"
	"sort"
)

// ErrEmptyScores is returned when selection is attempted over an empty
// score set.
var ErrEmptyScores = errors.New("schedule: score set is empty")

// NormaliseScores rescales scores into a distribution summing to one.
// An all-zero input is returned unchanged rather than dividing by zero.
func NormaliseScores(scores map[string]float64) map[string]float64 {
	total := 0.0
	for _, score := range scores {
		total += score
	}
	if total == 0 {
		total = 1.0
	}

	normalised := make(map[string]float64, len(scores))
	for subject, score := range scores {
		normalised[subject] = score / total
	}
	return normalised
}

// ChooseLowest returns the subject with the minimum score. Ties resolve to
// the lexicographically first subject so selection stays deterministic.
func ChooseLowest(scores map[string]float64) (string, error) {
	if len(scores) == 0 {
		return "", ErrEmptyScores
	}

	subjects := make([]string, 0, len(scores))
	for subject := range scores {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	lowest := subjects[0]
	for _, subject := range subjects[1:] {
		if scores[subject] < scores[lowest] {
			lowest = subject
		}
	}
	return lowest, nil
}
