package report

import (
	"github.com/verrev/revise/internal/model"
)

// RunInsights summarises a full multi-shot run.
type RunInsights struct {
	Frequency             map[string]int
	UniqueSubjects        int
	LongestStreakSubject  string
	LongestStreak         int
	FirstRepeatPosition   int // 0 when no subject repeats
	RecommendedSessionCap int
	TotalSessions         int
	Shots                 int
}

// Analyse computes run statistics over the selection order. The order is
// read from the revision entries because the display list is shuffled.
func Analyse(plans []model.SessionPlan) RunInsights {
	var selections []string
	for _, plan := range plans {
		for _, entry := range plan.NewEntries {
			if entry.Type == model.EntryTypeRevision {
				selections = append(selections, entry.Subject)
			}
		}
	}

	frequency := map[string]int{}
	for _, subject := range selections {
		frequency[subject]++
	}

	insights := RunInsights{
		Frequency:      frequency,
		UniqueSubjects: len(frequency),
		TotalSessions:  len(selections),
		Shots:          len(plans),
	}

	current := ""
	currentLength := 0
	for _, subject := range selections {
		if subject == current {
			currentLength++
		} else {
			current = subject
			currentLength = 1
		}
		if currentLength > insights.LongestStreak {
			insights.LongestStreak = currentLength
			insights.LongestStreakSubject = subject
		}
	}

	seen := map[string]struct{}{}
	insights.RecommendedSessionCap = len(selections)
	for i, subject := range selections {
		if _, ok := seen[subject]; ok {
			insights.FirstRepeatPosition = i + 1
			insights.RecommendedSessionCap = i
			break
		}
		seen[subject] = struct{}{}
	}

	return insights
}
