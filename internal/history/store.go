// Package history persists an append-only log of calculations to a local
// sqlite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded calculation.
type Entry struct {
	ID int64

	CreatedAt time.Time

	Allowed    string
	Disallowed string
	Result     string
}

// Store is an append-only calculation log. Appends beyond the retention
// limit prune the oldest entries.
type Store struct {
	db    *sql.DB
	limit int
}

// Open opens (or creates) the history database at dbPath. limit <= 0 means
// unbounded retention.
func Open(ctx context.Context, dbPath string, limit int) (*Store, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, errors.New("empty db path")
	}

	dsn := dbPath
	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		dsn = "file:" + dsn
	}

	// busy_timeout keeps concurrent surfaces (CLI vs UI) friendly; WAL is
	// safer for a store that appends while the UI reads.
	if strings.Contains(dsn, "?") {
		dsn += "&"
	} else {
		dsn += "?"
	}
	dsn += "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, limit: limit}

	if err := s.db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("nil store")
	}

	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS calculations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at INTEGER NOT NULL,
			allowed TEXT NOT NULL,
			disallowed TEXT NOT NULL,
			result TEXT NOT NULL
		)
	`)
	return err
}

// Append records a calculation and returns the stored entry with its ID and
// timestamp filled in. If e.CreatedAt is zero the current time is used.
func (s *Store) Append(ctx context.Context, e Entry) (Entry, error) {
	if s == nil || s.db == nil {
		return Entry{}, errors.New("nil store")
	}

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC().Truncate(time.Second)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO calculations (created_at, allowed, disallowed, result)
		VALUES (?, ?, ?, ?)
	`, e.CreatedAt.Unix(), e.Allowed, e.Disallowed, e.Result)
	if err != nil {
		return Entry{}, err
	}

	e.ID, err = res.LastInsertId()
	if err != nil {
		return Entry{}, err
	}

	if s.limit > 0 {
		_, err = s.db.ExecContext(ctx, `
			DELETE FROM calculations
			WHERE id NOT IN (SELECT id FROM calculations ORDER BY id DESC LIMIT ?)
		`, s.limit)
		if err != nil {
			return Entry{}, err
		}
	}

	return e, nil
}

// Recent returns up to limit entries, newest first. limit <= 0 returns all.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("nil store")
	}

	if limit <= 0 {
		limit = -1 // sqlite: LIMIT -1 means no limit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, allowed, disallowed, result
		FROM calculations
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e         Entry
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &createdAt, &e.Allowed, &e.Disallowed, &e.Result); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count reports the number of stored entries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, errors.New("nil store")
	}

	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calculations`).Scan(&n)
	return n, err
}

// Clear deletes all entries.
func (s *Store) Clear(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("nil store")
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM calculations`)
	return err
}
