package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verrev/revise/internal/model"
)

func revisionEntry(subject string) model.HistoryEntry {
	return model.HistoryEntry{Subject: subject, Type: model.EntryTypeRevision, Score: -1, Date: "2026-03-01"}
}

func TestAnalyseCountsSelections(t *testing.T) {
	plans := []model.SessionPlan{
		{NewEntries: []model.HistoryEntry{
			revisionEntry("Maths"),
			revisionEntry("Maths"),
			revisionEntry("Physics"),
			{Subject: "History", Type: model.EntryTypeNotStudied, Score: -1, Date: "2026-03-01"},
		}},
		{NewEntries: []model.HistoryEntry{
			revisionEntry("Maths"),
		}},
	}

	insights := Analyse(plans)
	if insights.TotalSessions != 4 {
		t.Fatalf("TotalSessions = %d, want 4", insights.TotalSessions)
	}
	if insights.Shots != 2 {
		t.Fatalf("Shots = %d, want 2", insights.Shots)
	}
	if insights.UniqueSubjects != 2 {
		t.Fatalf("UniqueSubjects = %d, want 2", insights.UniqueSubjects)
	}
	if insights.Frequency["Maths"] != 3 || insights.Frequency["Physics"] != 1 {
		t.Fatalf("unexpected frequency map: %v", insights.Frequency)
	}
	if _, ok := insights.Frequency["History"]; ok {
		t.Fatalf("penalty entries must not count as sessions")
	}
}

func TestAnalyseStreakAndRepeat(t *testing.T) {
	plans := []model.SessionPlan{
		{NewEntries: []model.HistoryEntry{
			revisionEntry("Maths"),
			revisionEntry("Physics"),
			revisionEntry("Physics"),
			revisionEntry("Maths"),
		}},
	}

	insights := Analyse(plans)
	if insights.LongestStreakSubject != "Physics" || insights.LongestStreak != 2 {
		t.Fatalf("streak = %s x%d, want Physics x2", insights.LongestStreakSubject, insights.LongestStreak)
	}
	if insights.FirstRepeatPosition != 3 {
		t.Fatalf("FirstRepeatPosition = %d, want 3", insights.FirstRepeatPosition)
	}
	if insights.RecommendedSessionCap != 2 {
		t.Fatalf("RecommendedSessionCap = %d, want 2", insights.RecommendedSessionCap)
	}
}

func TestAnalyseNoRepeats(t *testing.T) {
	plans := []model.SessionPlan{
		{NewEntries: []model.HistoryEntry{
			revisionEntry("Maths"),
			revisionEntry("Physics"),
		}},
	}

	insights := Analyse(plans)
	if insights.FirstRepeatPosition != 0 {
		t.Fatalf("FirstRepeatPosition = %d, want 0", insights.FirstRepeatPosition)
	}
	if insights.RecommendedSessionCap != 2 {
		t.Fatalf("RecommendedSessionCap = %d, want 2", insights.RecommendedSessionCap)
	}
}

func TestRenderPlan(t *testing.T) {
	var buf bytes.Buffer
	plan := model.SessionPlan{Subjects: []string{"Physics", "Maths"}}
	if err := RenderPlan(&buf, plan, 2); err != nil {
		t.Fatalf("RenderPlan: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Study session plan (shot 2):", "1. Physics", "2. Maths"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPlanEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPlan(&buf, model.SessionPlan{}, 0); err != nil {
		t.Fatalf("RenderPlan: %v", err)
	}
	if !strings.Contains(buf.String(), "No study sessions scheduled.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderInsights(t *testing.T) {
	insights := RunInsights{
		Frequency:             map[string]int{"Maths": 2, "Physics": 1},
		UniqueSubjects:        2,
		LongestStreakSubject:  "Maths",
		LongestStreak:         2,
		RecommendedSessionCap: 2,
		TotalSessions:         3,
		Shots:                 1,
	}

	var buf bytes.Buffer
	if err := RenderInsights(&buf, insights, 6); err != nil {
		t.Fatalf("RenderInsights: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Subject frequency: Maths: 2, Physics: 1",
		"Longest streak: Maths (x2)",
		"No repeated subjects within this run.",
		"Suggested session cap: 2 (current: 6)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHistoryTableLimitsRows(t *testing.T) {
	entries := []model.HistoryEntry{
		{Subject: "Maths", Type: "Exam", Score: 62.5, Date: "2026-03-01"},
		{Subject: "Physics", Type: "Quiz", Score: 88, Date: "2026-02-20"},
		{Subject: "History", Type: "Homework", Score: 71, Date: "2026-02-10"},
	}

	var buf bytes.Buffer
	if err := RenderHistoryTable(&buf, entries, 2); err != nil {
		t.Fatalf("RenderHistoryTable: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "Maths") || !strings.Contains(lines[1], "62.5") {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if strings.Contains(buf.String(), "History") {
		t.Fatalf("limit not applied:\n%s", buf.String())
	}
}

func TestRenderGradesTableWeakestFirst(t *testing.T) {
	grades := map[string]float64{"Maths": 0.2, "Physics": 0.6, "History": 0.9}

	var buf bytes.Buffer
	if err := RenderGradesTable(&buf, grades); err != nil {
		t.Fatalf("RenderGradesTable: %v", err)
	}

	out := buf.String()
	maths := strings.Index(out, "Maths")
	physics := strings.Index(out, "Physics")
	history := strings.Index(out, "History")
	if maths < 0 || physics < 0 || history < 0 {
		t.Fatalf("missing subjects:\n%s", out)
	}
	if !(maths < physics && physics < history) {
		t.Fatalf("rows not sorted weakest first:\n%s", out)
	}
}

func TestFormatTableAlignment(t *testing.T) {
	lines := formatTable(
		[]string{"Subject", "Score"},
		[][]string{{"Maths", "7.5"}, {"History", "100.0"}},
		map[int]bool{1: true},
	)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[1] != "Maths     7.5" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if lines[2] != "History 100.0" {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}

func TestRenderScoreBarsOrderAndScale(t *testing.T) {
	scores := map[string]float64{"Maths": 0.1, "Physics": 0.4, "History": 0.5}

	var buf bytes.Buffer
	if err := RenderScoreBars(&buf, "Starting scores:", scores, 60, false); err != nil {
		t.Fatalf("RenderScoreBars: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want title plus 3 bars:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Starting scores:" {
		t.Fatalf("unexpected title line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Maths") {
		t.Fatalf("weakest subject should come first: %q", lines[1])
	}
	mathsBar := strings.Count(lines[1], barFillChar)
	historyBar := strings.Count(lines[3], barFillChar)
	if mathsBar >= historyBar {
		t.Fatalf("bar lengths not proportional: maths=%d history=%d", mathsBar, historyBar)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("non-terminal writer must not receive colour codes:\n%q", buf.String())
	}
}

func TestRenderScoreBarsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderScoreBars(&buf, "Scores", nil, 60, false); err != nil {
		t.Fatalf("RenderScoreBars: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
