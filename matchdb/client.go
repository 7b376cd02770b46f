// Package matchdb persists match runs and their records to SQLite, so
// matching output can be inspected and re-joined after the pass that
// produced it.
package matchdb

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/crosswalklabs/crosswalk/internal/appconf"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Client provides persistence for match runs and their records.
type Client struct {
	DB     *sql.DB
	config Config
	logger *slog.Logger
}

const createMatchRunsTable = `
CREATE TABLE IF NOT EXISTS match_runs (
    id TEXT PRIMARY KEY,
    created_at INTEGER NOT NULL,
    left_rows INTEGER NOT NULL,
    right_rows INTEGER NOT NULL,
    pairs_scored INTEGER NOT NULL,
    chunk_count INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL
)`

const createMatchRecordsTable = `
CREATE TABLE IF NOT EXISTS match_records (
    run_id TEXT NOT NULL REFERENCES match_runs(id),
    position INTEGER NOT NULL,
    left_value TEXT NOT NULL,
    matched_value TEXT NOT NULL,
    distance INTEGER NOT NULL,
    PRIMARY KEY (run_id, position)
)`

// NewClient opens the database at config.DBPath, creating it and the schema
// when needed. Test environments must use in-memory storage so runs never
// leak onto disk.
func NewClient(config Config) (*Client, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		return nil, fmt.Errorf("test database must use in-memory storage, got %s", config.DBPath)
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A :memory: database exists per connection, so the pool must stay at a
	// single connection or the schema vanishes between queries.
	if config.DBPath == ":memory:" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxIdleConns(5)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	client := &Client{
		DB:     db,
		config: config,
		logger: slog.Default().With(slog.String("component", "matchdb")),
	}
	if err := client.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return client, nil
}

func (c *Client) createTables() error {
	for _, stmt := range []string{createMatchRunsTable, createMatchRecordsTable} {
		if _, err := c.DB.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying database.
func (c *Client) Close() error {
	return c.DB.Close()
}
