// Package catalog caches session metadata in SQLite so the browser commands
// do not re-decode every log on each run. The export pipeline itself never
// touches the catalog.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS sessions (
    session_key   TEXT PRIMARY KEY,
    project       TEXT NOT NULL DEFAULT '',
    file_path     TEXT NOT NULL,
    repo_cwd      TEXT NOT NULL DEFAULT '',
    created_at    TEXT NOT NULL DEFAULT '',
    updated_at    TEXT NOT NULL DEFAULT '',
    summary       TEXT NOT NULL DEFAULT '',
    message_count INTEGER NOT NULL DEFAULT 0,
    mtime         INTEGER NOT NULL DEFAULT 0,
    size          INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS sessions_updated ON sessions(updated_at DESC);
`

type DB struct {
	db *sql.DB
}

func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init catalog schema: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Session is one cached session row.
type Session struct {
	SessionKey   string
	Project      string
	FilePath     string
	RepoCwd      string
	CreatedAt    string
	UpdatedAt    string
	Summary      string
	MessageCount int
	Mtime        int64
	Size         int64
}

func (d *DB) Upsert(s Session) error {
	_, err := d.db.Exec(
		`INSERT INTO sessions (session_key, project, file_path, repo_cwd, created_at, updated_at, summary, message_count, mtime, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_key) DO UPDATE SET
		   project = excluded.project,
		   file_path = excluded.file_path,
		   repo_cwd = excluded.repo_cwd,
		   created_at = excluded.created_at,
		   updated_at = excluded.updated_at,
		   summary = excluded.summary,
		   message_count = excluded.message_count,
		   mtime = excluded.mtime,
		   size = excluded.size`,
		s.SessionKey, s.Project, s.FilePath, s.RepoCwd, s.CreatedAt, s.UpdatedAt,
		s.Summary, s.MessageCount, s.Mtime, s.Size,
	)
	return err
}

// Stamp returns the cached mtime/size for a session key, or ok=false when the
// session is not cached yet.
func (d *DB) Stamp(sessionKey string) (mtime, size int64, ok bool, err error) {
	row := d.db.QueryRow(`SELECT mtime, size FROM sessions WHERE session_key = ?`, sessionKey)
	err = row.Scan(&mtime, &size)
	if err == sql.ErrNoRows {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, err
	}
	return mtime, size, true, nil
}

// List returns cached sessions, newest first. A non-empty project filters to
// that project directory name; limit 0 means no limit.
func (d *DB) List(project string, limit int) ([]Session, error) {
	q := `SELECT session_key, project, file_path, repo_cwd, created_at, updated_at, summary, message_count, mtime, size
	      FROM sessions`
	var args []any
	if project != "" {
		q += ` WHERE project = ?`
		args = append(args, project)
	}
	q += ` ORDER BY updated_at DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.SessionKey, &s.Project, &s.FilePath, &s.RepoCwd,
			&s.CreatedAt, &s.UpdatedAt, &s.Summary, &s.MessageCount, &s.Mtime, &s.Size); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (d *DB) Delete(sessionKey string) error {
	_, err := d.db.Exec(`DELETE FROM sessions WHERE session_key = ?`, sessionKey)
	return err
}

func (d *DB) AllKeys() (map[string]struct{}, error) {
	rows, err := d.db.Query(`SELECT session_key FROM sessions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys[k] = struct{}{}
	}
	return keys, rows.Err()
}

func (d *DB) Count() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&n)
	return n, err
}
