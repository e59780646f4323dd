// Package store persists analysis runs in a local SQLite database so
// past reports can be listed and retrieved after restarts.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"sponsorwatch/internal/monitor"
)

// RunSummary describes an archived analysis run without its full report.
type RunSummary struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Alerts      int       `json:"alerts"`
	Athletes    int       `json:"athletes"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store handles all database operations.
type Store struct {
	db *sql.DB
}

// New creates a Store with a SQLite backend at dbPath.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		generated_at DATETIME NOT NULL,
		alerts INTEGER NOT NULL,
		athletes INTEGER NOT NULL,
		report TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_generated_at ON runs(generated_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveRun archives a full report and returns the run ID.
func (s *Store) SaveRun(report monitor.AlertReport) (string, error) {
	blob, err := json.Marshal(report)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err = s.db.Exec(`
		INSERT INTO runs (id, generated_at, alerts, athletes, report)
		VALUES (?, ?, ?, ?, ?)
	`, id, report.GeneratedAt, len(report.Alerts), report.Analytics.Summary.UniqueAthletes, string(blob))
	if err != nil {
		return "", err
	}

	return id, nil
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	rows, err := s.db.Query(`
		SELECT id, generated_at, alerts, athletes, created_at
		FROM runs
		ORDER BY generated_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.GeneratedAt, &r.Alerts, &r.Athletes, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun loads the full report for a run ID.
func (s *Store) GetRun(id string) (monitor.AlertReport, error) {
	var blob string
	err := s.db.QueryRow(`SELECT report FROM runs WHERE id = ?`, id).Scan(&blob)
	if err == sql.ErrNoRows {
		return monitor.AlertReport{}, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return monitor.AlertReport{}, err
	}

	var report monitor.AlertReport
	if err := json.Unmarshal([]byte(blob), &report); err != nil {
		return monitor.AlertReport{}, err
	}
	return report, nil
}
