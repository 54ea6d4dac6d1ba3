// Package database provides SQLite-backed storage for the run log: every
// resolved pipeline invocation can be recorded for later inspection.
package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQL database connection
type DB struct {
	*sql.DB
	path string
}

// Initialize creates and configures the database connection
func Initialize(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000&_sync=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",   // Write-ahead logging
		"PRAGMA synchronous = NORMAL", // Balanced safety/speed
		"PRAGMA temp_store = MEMORY",  // Use memory for temp tables
		"PRAGMA busy_timeout = 10000", // 10 second timeout
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DB{
		DB:   db,
		path: path,
	}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS invocations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sample_name TEXT NOT NULL,
		genome TEXT NOT NULL,
		pipeline TEXT NOT NULL,
		argv JSON NOT NULL,
		diagnostics JSON,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_invocation_sample ON invocations(sample_name);
	CREATE INDEX IF NOT EXISTS idx_invocation_genome ON invocations(genome);
	CREATE INDEX IF NOT EXISTS idx_invocation_created ON invocations(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Invocation is one recorded pipeline invocation.
type Invocation struct {
	ID          int64     `json:"id"`
	SampleName  string    `json:"sample_name"`
	Genome      string    `json:"genome"`
	Pipeline    string    `json:"pipeline"`
	Argv        []string  `json:"argv"`
	Diagnostics []string  `json:"diagnostics,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecordInvocation stores a resolved invocation and returns its id.
func (db *DB) RecordInvocation(inv *Invocation) (int64, error) {
	argv, err := json.Marshal(inv.Argv)
	if err != nil {
		return 0, fmt.Errorf("failed to encode argv: %w", err)
	}
	diags, err := json.Marshal(inv.Diagnostics)
	if err != nil {
		return 0, fmt.Errorf("failed to encode diagnostics: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO invocations (sample_name, genome, pipeline, argv, diagnostics)
		VALUES (?, ?, ?, ?, ?)`,
		inv.SampleName, inv.Genome, inv.Pipeline, string(argv), string(diags))
	if err != nil {
		return 0, fmt.Errorf("failed to record invocation: %w", err)
	}
	return result.LastInsertId()
}

// GetInvocation fetches one recorded invocation by id.
func (db *DB) GetInvocation(id int64) (*Invocation, error) {
	row := db.QueryRow(`
		SELECT id, sample_name, genome, pipeline, argv, diagnostics, created_at
		FROM invocations WHERE id = ?`, id)
	return scanInvocation(row)
}

// ListInvocations returns recorded invocations, newest first.
func (db *DB) ListInvocations(limit, offset int) ([]*Invocation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT id, sample_name, genome, pipeline, argv, diagnostics, created_at
		FROM invocations ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invocations: %w", err)
	}
	defer rows.Close()

	var out []*Invocation
	for rows.Next() {
		inv, err := scanInvocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// Stats summarizes the run log.
type Stats struct {
	Invocations int            `json:"invocations"`
	ByGenome    map[string]int `json:"by_genome"`
}

// GetStats returns run log summary counts.
func (db *DB) GetStats() (*Stats, error) {
	stats := &Stats{ByGenome: make(map[string]int)}

	if err := db.QueryRow(`SELECT COUNT(*) FROM invocations`).Scan(&stats.Invocations); err != nil {
		return nil, fmt.Errorf("failed to count invocations: %w", err)
	}

	rows, err := db.Query(`SELECT genome, COUNT(*) FROM invocations GROUP BY genome`)
	if err != nil {
		return nil, fmt.Errorf("failed to group invocations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var genome string
		var count int
		if err := rows.Scan(&genome, &count); err != nil {
			return nil, err
		}
		stats.ByGenome[genome] = count
	}
	return stats, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanInvocation(row scannable) (*Invocation, error) {
	var inv Invocation
	var argv, diags string
	err := row.Scan(&inv.ID, &inv.SampleName, &inv.Genome, &inv.Pipeline,
		&argv, &diags, &inv.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("invocation not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan invocation: %w", err)
	}
	if err := json.Unmarshal([]byte(argv), &inv.Argv); err != nil {
		return nil, fmt.Errorf("failed to decode argv: %w", err)
	}
	if diags != "" && diags != "null" {
		if err := json.Unmarshal([]byte(diags), &inv.Diagnostics); err != nil {
			return nil, fmt.Errorf("failed to decode diagnostics: %w", err)
		}
	}
	return &inv, nil
}
