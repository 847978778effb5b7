package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the sqlite connection with pooling and prepared statements.
type DB struct {
	*sql.DB
	prepared map[string]*sql.Stmt
	mutex    sync.RWMutex
}

// NewDB opens (creating if needed) the pricing database under dataDir.
func NewDB(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "breakmeter.db")
	connStr := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// A pricing run is one write plus occasional reads; a small pool is
	// plenty even with many concurrent sessions.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	database := &DB{
		DB:       db,
		prepared: make(map[string]*sql.Stmt),
	}

	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := database.initPreparedStatements(); err != nil {
		return nil, fmt.Errorf("failed to initialize prepared statements: %w", err)
	}

	slog.Info("Database initialized", "path", dbPath)

	return database, nil
}

// migrate creates the necessary tables
func (db *DB) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS pricing_runs (
			id TEXT PRIMARY KEY,
			profile_key TEXT NOT NULL,
			session_id TEXT,
			target_cents INTEGER NOT NULL,
			floor_cents INTEGER NOT NULL,
			row_count INTEGER NOT NULL,
			entity_count INTEGER NOT NULL,
			result TEXT NOT NULL, -- full Result as JSON
			created_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS session_adjustments (
			session_id TEXT NOT NULL,
			entity TEXT NOT NULL,
			momentum TEXT NOT NULL DEFAULT '',
			velocity TEXT NOT NULL DEFAULT '',
			updated_at DATETIME NOT NULL,
			PRIMARY KEY (session_id, entity),
			FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_pricing_runs_session ON pricing_runs(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_pricing_runs_created ON pricing_runs(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_session_adjustments_session ON session_adjustments(session_id)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}

// initPreparedStatements initializes frequently used prepared statements
func (db *DB) initPreparedStatements() error {
	statements := map[string]string{
		"insert_run": `INSERT INTO pricing_runs (id, profile_key, session_id, target_cents, floor_cents, row_count, entity_count, result, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,

		"get_run": `SELECT id, profile_key, session_id, target_cents, floor_cents, row_count, entity_count, result, created_at
			FROM pricing_runs WHERE id = ?`,

		"insert_session": `INSERT INTO sessions (id, created_at, updated_at) VALUES (?, ?, ?)`,

		"touch_session": `UPDATE sessions SET updated_at = ? WHERE id = ?`,

		"get_session": `SELECT id, created_at, updated_at FROM sessions WHERE id = ?`,

		"upsert_adjustment": `INSERT INTO session_adjustments (session_id, entity, momentum, velocity, updated_at)
			VALUES (?, ?, ?, ?, ?) ON CONFLICT(session_id, entity) DO UPDATE SET
			momentum = excluded.momentum,
			velocity = excluded.velocity,
			updated_at = excluded.updated_at`,

		"get_adjustments": `SELECT entity, momentum, velocity FROM session_adjustments
			WHERE session_id = ? ORDER BY entity`,
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, query := range statements {
		stmt, err := db.Prepare(query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement %s: %w", name, err)
		}
		db.prepared[name] = stmt
	}

	return nil
}

// GetPreparedStatement retrieves a prepared statement
func (db *DB) GetPreparedStatement(name string) (*sql.Stmt, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	stmt, exists := db.prepared[name]
	if !exists {
		return nil, fmt.Errorf("prepared statement %s not found", name)
	}

	return stmt, nil
}

// Close closes the database connection and prepared statements
func (db *DB) Close() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, stmt := range db.prepared {
		if err := stmt.Close(); err != nil {
			slog.Warn("Failed to close prepared statement", "name", name, "error", err)
		}
	}
	db.prepared = make(map[string]*sql.Stmt)

	return db.DB.Close()
}
