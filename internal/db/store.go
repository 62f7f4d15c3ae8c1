package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/user/jobboard/internal/posting"
)

const (
	fetchedAtKey = "fetched_at"
	countKey     = "posting_count"
)

// Store writes fetched postings to a SQLite file for use by other tools.
type Store struct {
	db *sql.DB
}

func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS postings (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		title TEXT,
		company TEXT,
		compensation TEXT,
		location TEXT,
		status TEXT,
		type TEXT,
		description TEXT,
		link TEXT,
		promoting INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_postings_id ON postings(id);
	CREATE INDEX IF NOT EXISTS idx_postings_promoting ON postings(promoting);

	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value TEXT
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveSnapshot replaces the stored postings with the given collection.
// Fetch order is kept in the position column.
func (s *Store) SaveSnapshot(ctx context.Context, postings []posting.Posting, fetchedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM postings`); err != nil {
		return fmt.Errorf("failed to clear postings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO postings (position, id, title, company, compensation, location, status, type, description, link, promoting)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range postings {
		_, err := stmt.ExecContext(ctx,
			i, p.ID, p.Title, p.Company, p.Compensation, p.Location, p.Status, p.Type,
			p.Description, p.Link, p.IsPromoted(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert posting %s: %w", p.ID, err)
		}
	}

	meta := map[string]string{
		fetchedAtKey: fetchedAt.UTC().Format(time.RFC3339),
		countKey:     strconv.Itoa(len(postings)),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)`, k, v); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) List(ctx context.Context) ([]posting.Posting, error) {
	query := `SELECT id, title, company, compensation, location, status, type, description, link, promoting FROM postings ORDER BY position`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var postings []posting.Posting
	for rows.Next() {
		var p posting.Posting
		var promoted bool
		if err := rows.Scan(&p.ID, &p.Title, &p.Company, &p.Compensation, &p.Location, &p.Status, &p.Type, &p.Description, &p.Link, &promoted); err != nil {
			return nil, err
		}
		if promoted {
			p.Promotion = posting.Promoted
		}
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM postings`).Scan(&count)
	return count, err
}

// FetchedAt returns when the stored snapshot was taken, or the zero time if
// nothing was saved yet.
func (s *Store) FetchedAt(ctx context.Context) (time.Time, error) {
	v, err := s.GetMetadata(ctx, fetchedAtKey)
	if err != nil || v == "" {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, v)
}

func (s *Store) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}
