// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/verrev/revise/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Errors surfaced when a read or append references labels the store does
// not know.
var (
	ErrUnknownSubject = errors.New("store: unknown subject")
	ErrUnknownType    = errors.New("store: unknown assessment type")
	ErrUnknownUser    = errors.New("store: unknown user")
)

// idNamespace seeds deterministic UUIDs for users, subjects, and types so
// repeated imports resolve to the same rows.
var idNamespace = uuid.MustParse("9b1c6f2e-5f74-4f21-9d3a-2c8a4f6e1b07")

// defaultTypeWeights is the fixed assessment-type vocabulary seeded on open.
var defaultTypeWeights = map[string]float64{
	model.EntryTypeRevision:   0.1,
	"Homework":                0.2,
	"Quiz":                    0.3,
	"Topic Test":              0.4,
	"Mock Exam":               0.5,
	"Exam":                    0.6,
	model.EntryTypeNotStudied: 0.1,
}

// Store wraps SQLite access for assessment data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS subjects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);`,
		`CREATE TABLE IF NOT EXISTS types (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL UNIQUE,
			weight REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS predicted_grades (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			subject_id TEXT NOT NULL REFERENCES subjects(id),
			score REAL NOT NULL,
			UNIQUE (user_id, subject_id)
		);`,
		`CREATE TABLE IF NOT EXISTS history (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			subject_id TEXT NOT NULL REFERENCES subjects(id),
			type_id TEXT NOT NULL REFERENCES types(id),
			score REAL NOT NULL,
			studied_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_history_user_studied_at ON history(user_id, studied_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return s.seedTypes()
}

func (s *Store) seedTypes() error {
	for label, weight := range defaultTypeWeights {
		if _, err := s.db.Exec(
			`INSERT INTO types (id, label, weight) VALUES (?, ?, ?) ON CONFLICT(label) DO NOTHING`,
			deterministicID("type", label), label, weight,
		); err != nil {
			return err
		}
	}
	return nil
}

func deterministicID(kind, name string) string {
	return uuid.NewSHA1(idNamespace, []byte(kind+":"+name)).String()
}

// EnsureUser creates the user if missing and returns its id.
func (s *Store) EnsureUser(ctx context.Context, name, role string) (string, error) {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, role) VALUES (?, ?, ?) ON CONFLICT(name) DO NOTHING`,
		deterministicID("user", name), name, role,
	); err != nil {
		return "", err
	}
	var stored string
	if err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE name = ?`, name).Scan(&stored); err != nil {
		return "", err
	}
	return stored, nil
}

func (s *Store) userID(ctx context.Context, name string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrUnknownUser, name)
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// EnsureSubjects creates any missing subject rows.
func (s *Store) EnsureSubjects(ctx context.Context, names []string) error {
	for _, name := range names {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO subjects (id, name) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`,
			deterministicID("subject", name), name,
		); err != nil {
			return err
		}
	}
	return nil
}

// ListSubjects returns all subject names in alphabetical order.
func (s *Store) ListSubjects(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM subjects ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var subjects []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		subjects = append(subjects, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subjects, nil
}

// GetAssessmentWeights returns the weighting per assessment type.
func (s *Store) GetAssessmentWeights(ctx context.Context) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT label, weight FROM types`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	weights := map[string]float64{}
	for rows.Next() {
		var label string
		var weight float64
		if err := rows.Scan(&label, &weight); err != nil {
			return nil, err
		}
		weights[label] = weight
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return weights, nil
}

// SetAssessmentWeight updates the weight stored for an assessment type.
func (s *Store) SetAssessmentWeight(ctx context.Context, label string, weight float64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE types SET weight = ? WHERE label = ?`, weight, label)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownType, label)
	}
	return nil
}

// GetPredictedGrades returns the predicted grade per subject for a user.
func (s *Store) GetPredictedGrades(ctx context.Context, user string) (map[string]float64, error) {
	userID, err := s.userID(ctx, user)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT sub.name, pg.score
		 FROM predicted_grades pg
		 JOIN subjects sub ON sub.id = pg.subject_id
		 WHERE pg.user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	grades := map[string]float64{}
	for rows.Next() {
		var subject string
		var score float64
		if err := rows.Scan(&subject, &score); err != nil {
			return nil, err
		}
		grades[subject] = score
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return grades, nil
}

// PutPredictedGrades upserts predicted grades for a user, creating subject
// rows as needed.
func (s *Store) PutPredictedGrades(ctx context.Context, user string, grades map[string]float64) error {
	userID, err := s.userID(ctx, user)
	if err != nil {
		return err
	}
	subjects := make([]string, 0, len(grades))
	for subject := range grades {
		subjects = append(subjects, subject)
	}
	if err := s.EnsureSubjects(ctx, subjects); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO predicted_grades (id, user_id, subject_id, score)
		 SELECT ?, ?, id, ? FROM subjects WHERE name = ?
		 ON CONFLICT(user_id, subject_id) DO UPDATE SET score = excluded.score`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for subject, score := range grades {
		if _, err = stmt.ExecContext(ctx, deterministicID("grade", user+":"+subject), userID, score, subject); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetStudyHistory returns the stored history for a user, newest first.
func (s *Store) GetStudyHistory(ctx context.Context, user string) ([]model.HistoryEntry, error) {
	userID, err := s.userID(ctx, user)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT sub.name, t.label, h.score, h.studied_at
		 FROM history h
		 JOIN subjects sub ON sub.id = h.subject_id
		 JOIN types t ON t.id = h.type_id
		 WHERE h.user_id = ?
		 ORDER BY h.studied_at DESC, h.rowid DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var history []model.HistoryEntry
	for rows.Next() {
		var entry model.HistoryEntry
		if err := rows.Scan(&entry.Subject, &entry.Type, &entry.Score, &entry.Date); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

// AppendHistoryEntries writes entries for a user in one transaction and
// returns the count written. Entries naming a subject or assessment type
// the store does not know are rejected. Empty input is a no-op.
func (s *Store) AppendHistoryEntries(ctx context.Context, user string, entries []model.HistoryEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	userID, err := s.userID(ctx, user)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO history (id, user_id, subject_id, type_id, score, studied_at)
		 SELECT ?, ?, sub.id, t.id, ?, ?
		 FROM subjects sub, types t
		 WHERE sub.name = ? AND t.label = ?`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	written := 0
	for _, entry := range entries {
		var res sql.Result
		res, err = stmt.ExecContext(ctx, uuid.NewString(), userID, entry.Score, entry.Date, entry.Subject, entry.Type)
		if err != nil {
			return 0, err
		}
		var affected int64
		affected, err = res.RowsAffected()
		if err != nil {
			return 0, err
		}
		if affected == 0 {
			err = s.classifyMissingLabels(ctx, entry)
			return 0, err
		}
		written += int(affected)
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return written, nil
}

// classifyMissingLabels reports which label made an insert match no rows.
func (s *Store) classifyMissingLabels(ctx context.Context, entry model.HistoryEntry) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subjects WHERE name = ?`, entry.Subject).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownSubject, entry.Subject)
	}
	return fmt.Errorf("%w: %s", ErrUnknownType, entry.Type)
}

// ResetSyntheticHistory deletes the Revision and Not Studied rows recorded
// for a user and returns the number removed.
func (s *Store) ResetSyntheticHistory(ctx context.Context, user string) (int64, error) {
	userID, err := s.userID(ctx, user)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM history
		 WHERE user_id = ?
		   AND type_id IN (SELECT id FROM types WHERE label IN (?, ?))`,
		userID, model.EntryTypeRevision, model.EntryTypeNotStudied)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
