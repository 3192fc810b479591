package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite driver registration
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TIMESTAMP NOT NULL,
	sample_rate REAL NOT NULL,
	band_low REAL NOT NULL,
	band_high REAL NOT NULL,
	filter_order INTEGER NOT NULL,
	confidence REAL NOT NULL,
	train_used INTEGER NOT NULL,
	test_count INTEGER NOT NULL,
	threshold REAL NOT NULL,
	flagged TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Run is one persisted detection run: the analysis parameters, the decision
// threshold and the flagged record indices.
type Run struct {
	ID         int64
	CreatedAt  time.Time
	SampleRate float64
	BandLow    float64
	BandHigh   float64
	Order      int
	Confidence float64
	TrainUsed  int
	TestCount  int
	Threshold  float64
	Flagged    []int
}

// Store persists detection runs in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens the run database at path, creating the file, its directory and
// the runs table as needed. The connection carries a 5 second busy timeout
// so concurrent CLI invocations queue instead of failing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create runs table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}

	return nil
}

// Save inserts the run and fills in its ID. A zero CreatedAt is stamped with
// the current time.
func (s *Store) Save(run *Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.Exec(`
		INSERT INTO runs (
			created_at, sample_rate, band_low, band_high, filter_order,
			confidence, train_used, test_count, threshold, flagged
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.CreatedAt,
		run.SampleRate,
		run.BandLow,
		run.BandHigh,
		run.Order,
		run.Confidence,
		run.TrainUsed,
		run.TestCount,
		run.Threshold,
		joinIndices(run.Flagged),
	)
	if err != nil {
		return fmt.Errorf("store: save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("store: save run: %w", err)
	}
	run.ID = id

	return nil
}

// Recent returns the newest runs first. A non-positive limit returns all
// runs.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(`
		SELECT id, created_at, sample_rate, band_low, band_high, filter_order,
		       confidence, train_used, test_count, threshold, flagged
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run     Run
			flagged string
		)
		if err := rows.Scan(
			&run.ID,
			&run.CreatedAt,
			&run.SampleRate,
			&run.BandLow,
			&run.BandHigh,
			&run.Order,
			&run.Confidence,
			&run.TrainUsed,
			&run.TestCount,
			&run.Threshold,
			&flagged,
		); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}

		if run.Flagged, err = splitIndices(flagged); err != nil {
			return nil, fmt.Errorf("store: run %d: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: query runs: %w", err)
	}

	return runs, nil
}

// joinIndices serializes flagged indices as a comma-joined text column.
func joinIndices(indices []int) string {
	if len(indices) == 0 {
		return ""
	}

	parts := make([]string, len(indices))
	for i, v := range indices {
		parts[i] = strconv.Itoa(v)
	}

	return strings.Join(parts, ",")
}

func splitIndices(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	indices := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("flagged column: %w", err)
		}
		indices[i] = v
	}

	return indices, nil
}
