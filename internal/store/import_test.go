package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestImportDatasetsJSON(t *testing.T) {
	st := openTestStore(t)
	dir := t.TempDir()
	gradesPath := writeFile(t, dir, "grades.json", `{"Maths": 0.5, "Physics": 0.7}`)
	historyPath := writeFile(t, dir, "history.json",
		`[{"subject": "Maths", "type": "Quiz", "score": 55, "date": "2025-03-01"}]`)

	summary, err := st.ImportDatasets(context.Background(), "alex", "student", gradesPath, historyPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Grades != 2 || summary.History != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	grades, err := st.GetPredictedGrades(context.Background(), "alex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grades["Physics"] != 0.7 {
		t.Fatalf("unexpected grades: %v", grades)
	}
	history, err := st.GetStudyHistory(context.Background(), "alex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 || history[0].Subject != "Maths" {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestImportDatasetsYAML(t *testing.T) {
	st := openTestStore(t)
	dir := t.TempDir()
	gradesPath := writeFile(t, dir, "grades.yaml", "Maths: 0.4\nHistory: 0.9\n")
	historyPath := writeFile(t, dir, "history.yml",
		"- subject: History\n  type: Exam\n  score: 81\n  date: \"2025-02-10\"\n")

	summary, err := st.ImportDatasets(context.Background(), "alex", "student", gradesPath, historyPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Grades != 2 || summary.History != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestImportDatasetsGradesListForm(t *testing.T) {
	st := openTestStore(t)
	dir := t.TempDir()
	gradesPath := writeFile(t, dir, "grades.json", `[{"Maths": 0.5}]`)

	summary, err := st.ImportDatasets(context.Background(), "alex", "student", gradesPath, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Grades != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestImportDatasetsRejectsEmptyRun(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.ImportDatasets(context.Background(), "alex", "student", "", ""); err == nil {
		t.Fatalf("expected error for empty import")
	}
}

func TestImportDatasetsRejectsMalformedGrades(t *testing.T) {
	st := openTestStore(t)
	dir := t.TempDir()
	gradesPath := writeFile(t, dir, "grades.json", `{"Maths": "high"}`)

	if _, err := st.ImportDatasets(context.Background(), "alex", "student", gradesPath, ""); err == nil {
		t.Fatalf("expected error for non-numeric grade")
	}
}
