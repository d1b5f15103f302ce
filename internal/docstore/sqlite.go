package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
    collection TEXT NOT NULL,
    id         TEXT NOT NULL,
    body       TEXT NOT NULL CHECK (json_valid(body)),
    PRIMARY KEY (collection, id)
);
`

// SQLiteStore keeps documents as JSON in a single SQLite table.
type SQLiteStore struct {
	db *sqlx.DB
}

type documentRow struct {
	ID   string `db:"id"`
	Body string `db:"body"`
}

// OpenSQLite opens a SQLite database, configures pragmas and ensures the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Pragmas are per connection; keep exactly one.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Add inserts a document under a new random ID.
func (s *SQLiteStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}

	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, body) VALUES (?, ?, ?)`,
		collection, id, string(body),
	)
	if err != nil {
		return "", unavailable("adding document", err)
	}
	return id, nil
}

// Get returns a document by ID.
func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var body string
	err := s.db.GetContext(ctx, &body,
		`SELECT body FROM documents WHERE collection = ? AND id = ?`, collection, id,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("getting document", err)
	}
	return decodeBody(body)
}

// Query returns documents whose top-level fields equal every filter value.
func (s *SQLiteStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error) {
	if err := checkFilters(filters); err != nil {
		return nil, unavailable("querying documents", err)
	}

	query := `SELECT id, body FROM documents WHERE collection = ?`
	args := []any{collection}
	for _, f := range filters {
		query += ` AND json_extract(body, ?) = ?`
		args = append(args, "$."+f.Field, f.Value)
	}

	var rows []documentRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, unavailable("querying documents", err)
	}

	snaps := make([]Snapshot, 0, len(rows))
	for _, row := range rows {
		doc, err := decodeBody(row.Body)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, Snapshot{ID: row.ID, Data: doc})
	}
	return snaps, nil
}

// Ping checks that the database answers.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func decodeBody(body string) (Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, unavailable("decoding document", err)
	}
	return doc, nil
}
