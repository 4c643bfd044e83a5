package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verrev/revise/internal/model"
)

// ImportSummary reports what an import run wrote.
type ImportSummary struct {
	Grades  int
	History int
}

// ImportDatasets loads predicted grades and/or history from JSON or YAML
// files and writes them to the store for the named user, creating the user
// and any referenced subjects. Either path may be empty.
func (s *Store) ImportDatasets(ctx context.Context, user, role, gradesPath, historyPath string) (ImportSummary, error) {
	var summary ImportSummary
	if gradesPath == "" && historyPath == "" {
		return summary, fmt.Errorf("nothing to import")
	}
	if _, err := s.EnsureUser(ctx, user, role); err != nil {
		return summary, fmt.Errorf("ensure user: %w", err)
	}

	if gradesPath != "" {
		grades, err := decodeGradesFile(gradesPath)
		if err != nil {
			return summary, fmt.Errorf("load grades: %w", err)
		}
		if err := s.PutPredictedGrades(ctx, user, grades); err != nil {
			return summary, fmt.Errorf("store grades: %w", err)
		}
		summary.Grades = len(grades)
	}

	if historyPath != "" {
		history, err := decodeHistoryFile(historyPath)
		if err != nil {
			return summary, fmt.Errorf("load history: %w", err)
		}
		subjects := make([]string, 0, len(history))
		for _, entry := range history {
			subjects = append(subjects, entry.Subject)
		}
		if err := s.EnsureSubjects(ctx, subjects); err != nil {
			return summary, fmt.Errorf("ensure subjects: %w", err)
		}
		written, err := s.AppendHistoryEntries(ctx, user, history)
		if err != nil {
			return summary, fmt.Errorf("store history: %w", err)
		}
		summary.History = written
	}

	return summary, nil
}

// decodeGradesFile accepts a subject-to-score mapping, or a list whose
// first element is such a mapping.
func decodeGradesFile(path string) (map[string]float64, error) {
	var payload any
	if err := decodeFile(path, &payload); err != nil {
		return nil, err
	}
	if list, ok := payload.([]any); ok {
		if len(list) == 0 {
			return nil, fmt.Errorf("grades dataset is empty")
		}
		payload = list[0]
	}
	mapping, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("grades dataset must be a mapping of subject to score")
	}
	grades := make(map[string]float64, len(mapping))
	for subject, raw := range mapping {
		score, ok := asFloat(raw)
		if !ok {
			return nil, fmt.Errorf("grade for %q is not numeric", subject)
		}
		grades[subject] = score
	}
	if len(grades) == 0 {
		return nil, fmt.Errorf("grades dataset is empty")
	}
	return grades, nil
}

type historyRecord struct {
	Subject string  `json:"subject" yaml:"subject"`
	Type    string  `json:"type" yaml:"type"`
	Score   float64 `json:"score" yaml:"score"`
	Date    string  `json:"date" yaml:"date"`
}

func decodeHistoryFile(path string) ([]model.HistoryEntry, error) {
	var records []historyRecord
	if err := decodeFile(path, &records); err != nil {
		return nil, err
	}
	history := make([]model.HistoryEntry, 0, len(records))
	for i, rec := range records {
		if rec.Subject == "" || rec.Type == "" {
			return nil, fmt.Errorf("history entry %d is missing subject or type", i)
		}
		history = append(history, model.HistoryEntry{
			Subject: rec.Subject,
			Type:    rec.Type,
			Score:   rec.Score,
			Date:    rec.Date,
		})
	}
	return history, nil
}

func decodeFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	// Some exports carry a UTF-8 BOM.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, target)
	default:
		return json.Unmarshal(data, target)
	}
}

func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
