// Package cache keeps a local read copy of backend state so the folder
// grid and the most recently opened folder render instantly on startup.
// The backend stays authoritative; every entry here is replaced wholesale
// on fetch and the whole database is wiped on logout.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"taskmaster-tui/internal/model"
)

// Cache is a SQLite-backed local copy of folders and the current
// folder's todos.
type Cache struct {
	db *sqlx.DB
}

// New opens (or creates) the cache database at dbPath, enables WAL mode,
// and runs any pending schema migrations.
func New(dbPath string) (*Cache, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	c := &Cache{db: db}
	if err := c.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (c *Cache) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := c.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = c.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := c.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// ReplaceFolders replaces the cached folder list with the given one.
func (c *Cache) ReplaceFolders(ctx context.Context, folders []model.Folder) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM folders"); err != nil {
		return fmt.Errorf("clearing cached folders: %w", err)
	}

	now := time.Now().UTC()
	for _, f := range folders {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO folders (id, name, description, locked, todo_count, created_at, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			f.ID, f.Name, f.Description, f.Locked, f.TodoCount, f.CreatedAt, now,
		)
		if err != nil {
			return fmt.Errorf("caching folder %d: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing folder cache: %w", err)
	}
	return nil
}

// Folders returns the cached folder list, name-sorted.
func (c *Cache) Folders(ctx context.Context) ([]model.Folder, error) {
	var folders []model.Folder
	err := c.db.SelectContext(ctx, &folders, `
		SELECT id, name, description, locked, todo_count, created_at
		FROM folders ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("reading cached folders: %w", err)
	}
	return folders, nil
}

// SetCurrentFolder stores the most recently opened folder together with
// its todos as a single replaceable blob.
func (c *Cache) SetCurrentFolder(ctx context.Context, folder model.Folder, todos []model.Todo) error {
	folderJSON, err := json.Marshal(folder)
	if err != nil {
		return fmt.Errorf("encoding folder: %w", err)
	}
	todosJSON, err := json.Marshal(todos)
	if err != nil {
		return fmt.Errorf("encoding todos: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO current_folder (slot, folder_id, folder, todos, fetched_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			folder_id = excluded.folder_id,
			folder = excluded.folder,
			todos = excluded.todos,
			fetched_at = excluded.fetched_at`,
		folder.ID, string(folderJSON), string(todosJSON), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("caching current folder: %w", err)
	}
	return nil
}

// CurrentFolder returns the cached current folder and its todos, or
// (nil, nil, nil) when nothing is cached.
func (c *Cache) CurrentFolder(ctx context.Context) (*model.Folder, []model.Todo, error) {
	var row struct {
		Folder string `db:"folder"`
		Todos  string `db:"todos"`
	}
	err := c.db.GetContext(ctx, &row,
		"SELECT folder, todos FROM current_folder WHERE slot = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading current folder cache: %w", err)
	}

	var folder model.Folder
	if err := json.Unmarshal([]byte(row.Folder), &folder); err != nil {
		return nil, nil, fmt.Errorf("decoding cached folder: %w", err)
	}
	var todos []model.Todo
	if err := json.Unmarshal([]byte(row.Todos), &todos); err != nil {
		return nil, nil, fmt.Errorf("decoding cached todos: %w", err)
	}

	return &folder, todos, nil
}

// ClearCurrentFolder drops the cached current folder, e.g. after the
// folder list fails to load and the cached entry may be gone.
func (c *Cache) ClearCurrentFolder(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM current_folder"); err != nil {
		return fmt.Errorf("clearing current folder cache: %w", err)
	}
	return nil
}

// Wipe removes everything. It implements session.Wiper so logging out
// clears cached folder state together with the session.
func (c *Cache) Wipe() error {
	for _, table := range []string{"current_folder", "folders"} {
		if _, err := c.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("wiping %s: %w", table, err)
		}
	}
	return nil
}
