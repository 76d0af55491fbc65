// Package project persists a record of every torrent that has been built.
package project

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	media_type TEXT NOT NULL,
	folder_path TEXT NOT NULL,
	torrent_path TEXT NOT NULL,
	nfo_path TEXT NOT NULL,
	trackers TEXT NOT NULL DEFAULT '[]',
	files TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_projects_folder ON projects(folder_path);
`

// Project is one finalized torrent build.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	MediaType   string    `json:"media_type"`
	FolderPath  string    `json:"folder_path"`
	TorrentPath string    `json:"torrent_path"`
	NFOPath     string    `json:"nfo_path"`
	Trackers    []string  `json:"trackers"`
	Files       []string  `json:"files"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store provides access to the project history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the project database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open project db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate project db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add records a finished build and returns it with its assigned ID.
func (s *Store) Add(ctx context.Context, p Project) (Project, error) {
	trackers, err := json.Marshal(p.Trackers)
	if err != nil {
		return Project{}, fmt.Errorf("marshal trackers: %w", err)
	}
	files, err := json.Marshal(p.Files)
	if err != nil {
		return Project{}, fmt.Errorf("marshal files: %w", err)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (name, media_type, folder_path, torrent_path, nfo_path, trackers, files, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.MediaType, p.FolderPath, p.TorrentPath, p.NFOPath,
		string(trackers), string(files), p.CreatedAt,
	)
	if err != nil {
		return Project{}, fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Project{}, fmt.Errorf("project id: %w", err)
	}
	p.ID = id
	return p, nil
}

// List returns all projects, newest first.
func (s *Store) List(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, media_type, folder_path, torrent_path, nfo_path, trackers, files, created_at
		 FROM projects ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		var p Project
		var trackers, files string
		if err := rows.Scan(&p.ID, &p.Name, &p.MediaType, &p.FolderPath,
			&p.TorrentPath, &p.NFOPath, &trackers, &files, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		if err := json.Unmarshal([]byte(trackers), &p.Trackers); err != nil {
			return nil, fmt.Errorf("decode trackers: %w", err)
		}
		if err := json.Unmarshal([]byte(files), &p.Files); err != nil {
			return nil, fmt.Errorf("decode files: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// DeleteByFolder removes the records for a staged folder that has been
// deleted. Returns the number of records removed.
func (s *Store) DeleteByFolder(ctx context.Context, folderPath string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM projects WHERE folder_path = ?", folderPath)
	if err != nil {
		return 0, fmt.Errorf("delete projects: %w", err)
	}
	return res.RowsAffected()
}
