package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"explaindeck/internal/article"
)

// Store is the session-local cache of loaded records plus a small
// key/value table for persisted preferences. A reload replaces the
// whole record set; individual records are never updated.
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			source        TEXT PRIMARY KEY,
			topic         TEXT NOT NULL DEFAULT '',
			model         TEXT NOT NULL DEFAULT '',
			timestamp_utc DATETIME,
			payload       TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_records_timestamp ON records(timestamp_utc DESC);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// ReplaceAll swaps the cached record set for the given one in a single
// transaction, so readers never observe a partial load.
func (s *Store) ReplaceAll(records []article.Record) error {
	tx, err := s.writeDB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM records"); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO records (source, topic, model, timestamp_utc, payload)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		payload, err := article.Encode(r)
		if err != nil {
			return fmt.Errorf("encoding record %s: %w", r.Source, err)
		}
		if _, err := stmt.Exec(r.Source, r.Topic, r.Model, r.TimestampUTC, string(payload)); err != nil {
			return fmt.Errorf("inserting record %s: %w", r.Source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return s.setMeta("last_load", time.Now().Format(time.RFC3339))
}

// All returns the cached records, newest first.
func (s *Store) All() ([]article.Record, error) {
	rows, err := s.readDB.Query(`
		SELECT source, payload FROM records ORDER BY timestamp_utc DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []article.Record
	for rows.Next() {
		var source, payload string
		if err := rows.Scan(&source, &payload); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec, err := article.Decode([]byte(payload), source)
		if err != nil {
			return nil, fmt.Errorf("decoding cached record %s: %w", source, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) Count() (int, error) {
	var n int
	err := s.readDB.QueryRow("SELECT COUNT(*) FROM records").Scan(&n)
	return n, err
}

// Stats returns the record count and database file size.
func (s *Store) Stats(dbPath string) (count int, size int64, err error) {
	count, err = s.Count()
	if err != nil {
		return 0, 0, err
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return 0, 0, err
	}
	return count, info.Size(), nil
}

const darkModeKey = "dark_mode"

// DarkMode reads the persisted dark-mode preference. Missing or
// malformed values default to dark, matching the first-run theme.
func (s *Store) DarkMode() bool {
	v, err := s.getMeta(darkModeKey)
	if err != nil {
		return true
	}
	return v != "0"
}

func (s *Store) SetDarkMode(on bool) error {
	v := "0"
	if on {
		v = "1"
	}
	return s.setMeta(darkModeKey, v)
}

// LastLoad returns the time of the last successful ReplaceAll, or the
// zero time if no load has happened yet.
func (s *Store) LastLoad() time.Time {
	v, err := s.getMeta("last_load")
	if err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (s *Store) getMeta(key string) (string, error) {
	var value string
	err := s.readDB.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	return value, err
}

func (s *Store) setMeta(key, value string) error {
	_, err := s.writeDB.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
