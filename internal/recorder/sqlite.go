package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the artifact audit trail to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS artifact_loads (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			role        TEXT NOT NULL,
			name        TEXT,
			kind        TEXT,
			path        TEXT,
			fingerprint TEXT,
			features    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_loads_ts ON artifact_loads(timestamp)`,

		`CREATE TABLE IF NOT EXISTS artifact_checks (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			check_id  TEXT NOT NULL,
			role      TEXT NOT NULL,
			path      TEXT,
			expected  TEXT,
			actual    TEXT,
			result    TEXT,
			error     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_checks_ts ON artifact_checks(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_checks_check_id ON artifact_checks(check_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordArtifactLoad(evt *ArtifactLoadEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO artifact_loads
		(timestamp, role, name, kind, path, fingerprint, features)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Role, evt.Name, evt.Kind, evt.Path, evt.Fingerprint, evt.Features,
	)
	return err
}

func (r *SQLiteRecorder) RecordArtifactCheck(evt *ArtifactCheckEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := evt.CheckedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO artifact_checks
		(timestamp, check_id, role, path, expected, actual, result, error)
		VALUES (?,?,?,?,?,?,?,?)`,
		ts.Unix(), evt.CheckID, evt.Role, evt.Path,
		evt.Expected, evt.Actual, evt.Result, evt.Error,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
