// Package storage persists workspace snapshots in a local sqlite database.
// The whole snapshot is rewritten on every save; collections are small and
// the write path stays a single transaction.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/chelle-c/second-brain/pkg/models"
)

// Store wraps the database handle.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// init creates the database schema
func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS folders (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		parent_id TEXT,
		icon TEXT,
		archived BOOLEAN,
		sort_order INTEGER,
		created_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT,
		folder_id TEXT,
		tags TEXT,
		archived BOOLEAN,
		reminder TEXT,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tags (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		icon TEXT,
		color TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_notes_folder ON notes(folder_id);
	CREATE INDEX IF NOT EXISTS idx_notes_archived ON notes(archived);
	CREATE INDEX IF NOT EXISTS idx_folders_parent ON folders(parent_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes the snapshot, replacing whatever was stored before.
func (s *Store) Save(snap *models.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"folders", "notes", "tags"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, f := range snap.Folders {
		_, err := tx.Exec(`
			INSERT INTO folders (id, name, parent_id, icon, archived, sort_order, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, f.ID, f.Name, f.ParentID, f.Icon, f.Archived, f.Order, f.CreatedAt)
		if err != nil {
			return fmt.Errorf("save folder %s: %w", f.ID, err)
		}
	}

	for _, n := range snap.Notes {
		tags, err := json.Marshal(n.Tags)
		if err != nil {
			return fmt.Errorf("save note %s: %w", n.ID, err)
		}
		var reminder any
		if n.Reminder != nil {
			data, err := json.Marshal(n.Reminder)
			if err != nil {
				return fmt.Errorf("save note %s: %w", n.ID, err)
			}
			reminder = string(data)
		}
		_, err = tx.Exec(`
			INSERT INTO notes (id, title, content, folder_id, tags, archived, reminder, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, n.ID, n.Title, n.Content, n.FolderID, string(tags), n.Archived, reminder,
			n.CreatedAt, n.UpdatedAt)
		if err != nil {
			return fmt.Errorf("save note %s: %w", n.ID, err)
		}
	}

	for _, t := range snap.Tags {
		_, err := tx.Exec(`
			INSERT INTO tags (id, name, icon, color) VALUES (?, ?, ?, ?)
		`, t.ID, t.Name, t.Icon, t.Color)
		if err != nil {
			return fmt.Errorf("save tag %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// Load reads the stored snapshot. An empty database yields an empty
// snapshot, never an error.
func (s *Store) Load() (*models.Snapshot, error) {
	snap := models.NewSnapshot()

	rows, err := s.db.Query(`
		SELECT id, name, parent_id, icon, archived, sort_order, created_at
		FROM folders ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("load folders: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		f := &models.Folder{}
		if err := rows.Scan(&f.ID, &f.Name, &f.ParentID, &f.Icon, &f.Archived, &f.Order, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("load folders: %w", err)
		}
		snap.Folders = append(snap.Folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load folders: %w", err)
	}

	noteRows, err := s.db.Query(`
		SELECT id, title, content, folder_id, tags, archived, reminder, created_at, updated_at
		FROM notes ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	defer noteRows.Close()
	for noteRows.Next() {
		n := &models.Note{}
		var tags string
		var reminder sql.NullString
		err := noteRows.Scan(&n.ID, &n.Title, &n.Content, &n.FolderID, &tags,
			&n.Archived, &reminder, &n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("load notes: %w", err)
		}
		if tags != "" {
			if err := json.Unmarshal([]byte(tags), &n.Tags); err != nil {
				return nil, fmt.Errorf("load note %s tags: %w", n.ID, err)
			}
		}
		if reminder.Valid {
			n.Reminder = &models.Reminder{}
			if err := json.Unmarshal([]byte(reminder.String), n.Reminder); err != nil {
				return nil, fmt.Errorf("load note %s reminder: %w", n.ID, err)
			}
		}
		snap.Notes = append(snap.Notes, n)
	}
	if err := noteRows.Err(); err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}

	tagRows, err := s.db.Query(`SELECT id, name, icon, color FROM tags ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		t := &models.Tag{}
		if err := tagRows.Scan(&t.ID, &t.Name, &t.Icon, &t.Color); err != nil {
			return nil, fmt.Errorf("load tags: %w", err)
		}
		snap.Tags = append(snap.Tags, t)
	}
	if err := tagRows.Err(); err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}

	return snap, nil
}

// Counts reports how many rows each table holds.
func (s *Store) Counts() (folders, notes, tags int, err error) {
	if err = s.db.QueryRow("SELECT COUNT(*) FROM folders").Scan(&folders); err != nil {
		return 0, 0, 0, fmt.Errorf("count folders: %w", err)
	}
	if err = s.db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&notes); err != nil {
		return 0, 0, 0, fmt.Errorf("count notes: %w", err)
	}
	if err = s.db.QueryRow("SELECT COUNT(*) FROM tags").Scan(&tags); err != nil {
		return 0, 0, 0, fmt.Errorf("count tags: %w", err)
	}
	return folders, notes, tags, nil
}
