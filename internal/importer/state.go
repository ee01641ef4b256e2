package importer

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// StateDB remembers which files have been imported, keyed by path and
// fingerprint, along with what each one contributed. Reruns consult it to
// skip files that haven't changed; a file whose size or hash differs is
// processed again.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite state database at dir/state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "state.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS imported_files (
		path        TEXT PRIMARY KEY,
		size        INTEGER NOT NULL,
		hash        TEXT NOT NULL,
		sessions    INTEGER NOT NULL DEFAULT 0,
		sets        INTEGER NOT NULL DEFAULT 0,
		imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// Fingerprint returns a file's size and SHA-256 hash, the identity the
// state db keys on.
func Fingerprint(path string) (int64, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, "", fmt.Errorf("stat %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return info.Size(), hex.EncodeToString(h.Sum(nil)), nil
}

// IsImported checks if a file was already imported with the same fingerprint.
func (s *StateDB) IsImported(relPath string, size int64, hash string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM imported_files WHERE path = ? AND size = ? AND hash = ?`,
		relPath, size, hash,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkImported records a successfully imported file and what it produced.
func (s *StateDB) MarkImported(relPath string, size int64, hash string, sessions, sets int) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO imported_files (path, size, hash, sessions, sets)
		 VALUES (?, ?, ?, ?, ?)`,
		relPath, size, hash, sessions, sets,
	)
	return err
}

// Imported returns the recorded session and set counts for a file, and
// whether the file is known at all.
func (s *StateDB) Imported(relPath string) (sessions, sets int, ok bool, err error) {
	err = s.db.QueryRow(
		`SELECT sessions, sets FROM imported_files WHERE path = ?`,
		relPath,
	).Scan(&sessions, &sets)
	if err == sql.ErrNoRows {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, err
	}
	return sessions, sets, true, nil
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}
