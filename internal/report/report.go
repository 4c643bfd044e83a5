package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/verrev/revise/internal/model"
)

// RenderPlan prints the ordered study schedule for one shot. shotNumber is
// only shown when positive, for multi-shot runs.
func RenderPlan(w io.Writer, plan model.SessionPlan, shotNumber int) error {
	if len(plan.Subjects) == 0 {
		_, err := fmt.Fprintln(w, "No study sessions scheduled.")
		return err
	}

	header := "Study session plan"
	if shotNumber > 0 {
		header = fmt.Sprintf("%s (shot %d)", header, shotNumber)
	}
	if _, err := fmt.Fprintf(w, "%s:\n", header); err != nil {
		return err
	}
	for i, subject := range plan.Subjects {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, subject); err != nil {
			return err
		}
	}
	return nil
}

// RenderInsights prints run-level statistics. currentCount is the
// configured sessions-per-shot shown next to the suggested cap.
func RenderInsights(w io.Writer, insights RunInsights, currentCount int) error {
	if insights.TotalSessions == 0 {
		_, err := fmt.Fprintln(w, "\nNo sessions to analyse.")
		return err
	}

	type freqItem struct {
		subject string
		count   int
	}
	items := make([]freqItem, 0, len(insights.Frequency))
	for subject, count := range insights.Frequency {
		items = append(items, freqItem{subject, count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count == items[j].count {
			return items[i].subject < items[j].subject
		}
		return items[i].count > items[j].count
	})
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s: %d", item.subject, item.count))
	}

	streakSubject := insights.LongestStreakSubject
	if streakSubject == "" {
		streakSubject = "N/A"
	}

	lines := []string{
		"",
		"Overall session insights:",
		fmt.Sprintf("- Shots executed: %d", insights.Shots),
		fmt.Sprintf("- Total sessions scheduled: %d", insights.TotalSessions),
		fmt.Sprintf("- Unique subjects scheduled: %d", insights.UniqueSubjects),
		fmt.Sprintf("- Subject frequency: %s", strings.Join(parts, ", ")),
		fmt.Sprintf("- Longest streak: %s (x%d)", streakSubject, insights.LongestStreak),
	}
	if insights.FirstRepeatPosition > 0 {
		lines = append(lines, fmt.Sprintf("- First repeat detected at session %d", insights.FirstRepeatPosition))
	} else {
		lines = append(lines, "- No repeated subjects within this run.")
	}
	lines = append(lines, fmt.Sprintf("- Suggested session cap: %d (current: %d)", insights.RecommendedSessionCap, currentCount))

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistoryTable prints the most recent history entries, up to limit
// (0 means all).
func RenderHistoryTable(w io.Writer, entries []model.HistoryEntry, limit int) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No history found.")
		return err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	headers := []string{"Date", "Subject", "Type", "Score"}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.Date,
			entry.Subject,
			entry.Type,
			fmt.Sprintf("%.1f", entry.Score),
		})
	}
	rightAlign := map[int]bool{3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderGradesTable prints predicted grades sorted weakest first.
func RenderGradesTable(w io.Writer, grades map[string]float64) error {
	if len(grades) == 0 {
		_, err := fmt.Fprintln(w, "No predicted grades found.")
		return err
	}

	subjects := make([]string, 0, len(grades))
	for subject := range grades {
		subjects = append(subjects, subject)
	}
	sort.Slice(subjects, func(i, j int) bool {
		if grades[subjects[i]] == grades[subjects[j]] {
			return subjects[i] < subjects[j]
		}
		return grades[subjects[i]] < grades[subjects[j]]
	})

	headers := []string{"Subject", "Predicted"}
	rows := make([][]string, 0, len(subjects))
	for _, subject := range subjects {
		rows = append(rows, []string{subject, fmt.Sprintf("%.2f", grades[subject])})
	}
	rightAlign := map[int]bool{1: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
