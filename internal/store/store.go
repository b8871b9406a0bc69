// Package store persists task collections in a local SQLite database
// so plans survive between sessions without re-importing the plan
// file. The engine itself never touches the store; it remains a pure
// consumer of in-memory task lists.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/gantry/internal/task"
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS
// makes it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS tasks (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    category   TEXT NOT NULL DEFAULT '',
    start_at   TEXT,
    end_at     TEXT,
    status     TEXT NOT NULL DEFAULT 'not_started',
    milestone  INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS dependencies (
    task_id            TEXT NOT NULL,
    depends_on_task_id TEXT NOT NULL,
    PRIMARY KEY (task_id, depends_on_task_id)
);
`

const dateLayout = "2006-01-02"

// Store is a SQLite-backed task collection.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path, enables WAL mode and
// a busy timeout, and creates the schema tables if they do not exist.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// SQLite supports a single writer; one pooled connection avoids
	// SQLITE_BUSY contention between connections that each need their
	// own PRAGMA setup.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Replace atomically swaps the stored collection for the given one.
// Insertion order is preserved so downstream group ordering stays
// stable across a round trip.
func (s *Store) Replace(ctx context.Context, tasks []task.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM dependencies"); err != nil {
		return fmt.Errorf("store: clear dependencies: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
		return fmt.Errorf("store: clear tasks: %w", err)
	}

	const insertTask = `
		INSERT INTO tasks (id, title, category, start_at, end_at, status, milestone)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	const insertDep = `
		INSERT INTO dependencies (task_id, depends_on_task_id) VALUES (?, ?)`

	for i := range tasks {
		t := &tasks[i]
		var startAt, endAt any
		if t.Start != nil {
			startAt = t.Start.UTC().Format(dateLayout)
		}
		if t.End != nil {
			endAt = t.End.UTC().Format(dateLayout)
		}
		milestone := 0
		if t.Milestone {
			milestone = 1
		}
		if _, err := tx.ExecContext(ctx, insertTask,
			t.ID, t.Title, t.Category, startAt, endAt, string(t.Status), milestone); err != nil {
			return fmt.Errorf("store: insert task %s: %w", t.ID, err)
		}
		for _, dep := range t.DependsOn {
			if _, err := tx.ExecContext(ctx, insertDep, t.ID, dep); err != nil {
				return fmt.Errorf("store: insert dependency %s -> %s: %w", t.ID, dep, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit replace: %w", err)
	}
	return nil
}

// Tasks loads the stored collection in insertion order.
func (s *Store) Tasks(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, category, start_at, end_at, status, milestone
		FROM tasks ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("store: query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var (
			startAt, endAt         sql.NullString
			id, title, cat, status string
			milestone              int
		)
		if err := rows.Scan(&id, &title, &cat, &startAt, &endAt, &status, &milestone); err != nil {
			return nil, fmt.Errorf("store: scan task: %w", err)
		}
		tk := task.Task{
			ID:        id,
			Title:     title,
			Category:  cat,
			Status:    task.Status(status),
			Milestone: milestone != 0,
		}
		if startAt.Valid {
			d, err := time.Parse(dateLayout, startAt.String)
			if err != nil {
				return nil, fmt.Errorf("store: task %s start date: %w", id, err)
			}
			tk.Start = &d
		}
		if endAt.Valid {
			d, err := time.Parse(dateLayout, endAt.String)
			if err != nil {
				return nil, fmt.Errorf("store: task %s end date: %w", id, err)
			}
			tk.End = &d
		}
		tasks = append(tasks, tk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate tasks: %w", err)
	}

	if err := s.attachDependencies(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Store) attachDependencies(ctx context.Context, tasks []task.Task) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT task_id, depends_on_task_id FROM dependencies ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("store: query dependencies: %w", err)
	}
	defer rows.Close()

	deps := make(map[string][]string)
	for rows.Next() {
		var taskID, dependsOn string
		if err := rows.Scan(&taskID, &dependsOn); err != nil {
			return fmt.Errorf("store: scan dependency: %w", err)
		}
		deps[taskID] = append(deps[taskID], dependsOn)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("store: iterate dependencies: %w", err)
	}

	for i := range tasks {
		tasks[i].DependsOn = deps[tasks[i].ID]
	}
	return nil
}
