package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/verrev/revise/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "revise.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return st
}

func seedUserAndSubjects(t *testing.T, st *Store, user string, subjects ...string) {
	t.Helper()
	ctx := context.Background()
	if _, err := st.EnsureUser(ctx, user, "student"); err != nil {
		t.Fatalf("failed to ensure user: %v", err)
	}
	if err := st.EnsureSubjects(ctx, subjects); err != nil {
		t.Fatalf("failed to ensure subjects: %v", err)
	}
}

func TestListSubjectsSortedAndIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	seedUserAndSubjects(t, st, "alex", "Physics", "Maths")
	if err := st.EnsureSubjects(ctx, []string{"Maths", "History"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subjects, err := st.ListSubjects(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"History", "Maths", "Physics"}
	if len(subjects) != len(want) {
		t.Fatalf("got %d subjects, want %d: %v", len(subjects), len(want), subjects)
	}
	for i, subject := range want {
		if subjects[i] != subject {
			t.Fatalf("subjects[%d] = %q, want %q", i, subjects[i], subject)
		}
	}
}

func TestOpenSeedsAssessmentTypes(t *testing.T) {
	st := openTestStore(t)
	weights, err := st.GetAssessmentWeights(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if weights["Exam"] != 0.6 {
		t.Fatalf("expected Exam weight 0.6, got %v", weights["Exam"])
	}
	if weights[model.EntryTypeRevision] != 0.1 {
		t.Fatalf("expected Revision weight 0.1, got %v", weights[model.EntryTypeRevision])
	}
	if _, ok := weights[model.EntryTypeNotStudied]; !ok {
		t.Fatalf("Not Studied type must be seeded")
	}
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	first, err := st.EnsureUser(ctx, "alex", "student")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := st.EnsureUser(ctx, "alex", "student")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected stable user id, got %s and %s", first, second)
	}
}

func TestPredictedGradesRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	seedUserAndSubjects(t, st, "alex")

	grades := map[string]float64{"Maths": 0.5, "Physics": 0.7}
	if err := st.PutPredictedGrades(ctx, "alex", grades); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Upsert overwrites.
	if err := st.PutPredictedGrades(ctx, "alex", map[string]float64{"Maths": 0.6}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := st.GetPredictedGrades(ctx, "alex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored["Maths"] != 0.6 || stored["Physics"] != 0.7 {
		t.Fatalf("unexpected grades: %v", stored)
	}
}

func TestGetPredictedGradesUnknownUser(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.GetPredictedGrades(context.Background(), "ghost"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestAppendAndReadHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	seedUserAndSubjects(t, st, "alex", "Maths", "Physics")

	entries := []model.HistoryEntry{
		{Subject: "Maths", Type: "Quiz", Score: 55, Date: "2025-03-01"},
		{Subject: "Physics", Type: "Exam", Score: 78, Date: "2025-03-05"},
	}
	written, err := st.AppendHistoryEntries(ctx, "alex", entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != 2 {
		t.Fatalf("expected 2 rows written, got %d", written)
	}

	history, err := st.GetStudyHistory(ctx, "alex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if history[0].Subject != "Physics" {
		t.Fatalf("history must be newest first, got %+v", history[0])
	}
}

func TestAppendHistoryEmptyIsNoOp(t *testing.T) {
	st := openTestStore(t)
	seedUserAndSubjects(t, st, "alex")
	written, err := st.AppendHistoryEntries(context.Background(), "alex", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != 0 {
		t.Fatalf("expected no rows written, got %d", written)
	}
}

func TestAppendHistoryRejectsUnknownLabels(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	seedUserAndSubjects(t, st, "alex", "Maths")

	_, err := st.AppendHistoryEntries(ctx, "alex", []model.HistoryEntry{
		{Subject: "Latin", Type: "Quiz", Score: 10, Date: "2025-03-01"},
	})
	if !errors.Is(err, ErrUnknownSubject) {
		t.Fatalf("expected ErrUnknownSubject, got %v", err)
	}

	_, err = st.AppendHistoryEntries(ctx, "alex", []model.HistoryEntry{
		{Subject: "Maths", Type: "Vibes", Score: 10, Date: "2025-03-01"},
	})
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}

	// The failed batch must leave nothing behind.
	history, err := st.GetStudyHistory(ctx, "alex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("rejected batch must not persist rows, got %d", len(history))
	}
}

func TestResetSyntheticHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	seedUserAndSubjects(t, st, "alex", "Maths", "Physics")

	entries := []model.HistoryEntry{
		{Subject: "Maths", Type: "Quiz", Score: 55, Date: "2025-03-01"},
		{Subject: "Maths", Type: model.EntryTypeRevision, Score: 42, Date: "2025-03-02"},
		{Subject: "Physics", Type: model.EntryTypeNotStudied, Score: -30, Date: "2025-03-02"},
	}
	if _, err := st.AppendHistoryEntries(ctx, "alex", entries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	removed, err := st.ResetSyntheticHistory(ctx, "alex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 rows removed, got %d", removed)
	}

	history, err := st.GetStudyHistory(ctx, "alex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 || history[0].Type != "Quiz" {
		t.Fatalf("real assessment rows must survive reset, got %+v", history)
	}
}

func TestSetAssessmentWeight(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.SetAssessmentWeight(ctx, "Quiz", 0.35); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	weights, err := st.GetAssessmentWeights(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if weights["Quiz"] != 0.35 {
		t.Fatalf("expected updated weight, got %v", weights["Quiz"])
	}
	if err := st.SetAssessmentWeight(ctx, "Vibes", 0.5); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}
