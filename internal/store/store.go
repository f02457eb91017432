// Package store persists finished digests in SQLite so their artifacts can be downloaded later.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
	"time"
)

// ErrNotFound is returned when no digest has the requested id.
var ErrNotFound = errors.New("digest not found")

const schema = `
CREATE TABLE IF NOT EXISTS digests (
	id         TEXT PRIMARY KEY,
	filename   TEXT NOT NULL,
	summary    TEXT NOT NULL,
	preview    TEXT NOT NULL DEFAULT '',
	keywords   TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_digests_created ON digests(created_at DESC);
`

// Digest is a stored summary with its keywords.
type Digest struct {
	ID        string
	Filename  string
	Summary   string
	// Preview is the start of the extracted text.
	Preview   string
	Keywords  []string
	CreatedAt time.Time
}

// Store is a SQLite backed digest store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. ":memory:" gives a private in-memory store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// single connection: an in-memory database exists per connection, and SQLite serialises writes anyway
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores d, assigning an ID and creation time when they are unset.
func (s *Store) Save(ctx context.Context, d *Digest) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	kws := d.Keywords
	if kws == nil {
		kws = []string{}
	}
	encoded, err := json.Marshal(kws)
	if err != nil {
		return fmt.Errorf("encode keywords: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO digests (id, filename, summary, preview, keywords, created_at) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET filename = excluded.filename, summary = excluded.summary,
		 preview = excluded.preview, keywords = excluded.keywords`,
		d.ID, d.Filename, d.Summary, d.Preview, string(encoded), d.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("save digest: %w", err)
	}
	return nil
}

// Get returns the digest with the given id.
func (s *Store) Get(ctx context.Context, id string) (*Digest, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, summary, preview, keywords, created_at FROM digests WHERE id = ?`, id)
	d, err := scanDigest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get digest: %w", err)
	}
	return d, nil
}

// Recent returns up to n digests, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]*Digest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, summary, preview, keywords, created_at FROM digests ORDER BY created_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("list digests: %w", err)
	}
	defer rows.Close()

	var digests []*Digest
	for rows.Next() {
		d, err := scanDigest(rows)
		if err != nil {
			return nil, fmt.Errorf("list digests: %w", err)
		}
		digests = append(digests, d)
	}
	return digests, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDigest(row scanner) (*Digest, error) {
	var (
		d       Digest
		kws     string
		created int64
	)
	if err := row.Scan(&d.ID, &d.Filename, &d.Summary, &d.Preview, &kws, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(kws), &d.Keywords); err != nil {
		return nil, fmt.Errorf("decode keywords: %w", err)
	}
	d.CreatedAt = time.Unix(0, created).UTC()
	return &d, nil
}
