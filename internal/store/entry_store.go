package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vbonduro/aclaudit/internal/domain"
)

const entryColumns = `id, session_id, location, kind, question, answer, photo_key, photo_mime, comment, created_at`

type EntryStore struct {
	db *sql.DB
}

func NewEntryStore(db *sql.DB) *EntryStore {
	return &EntryStore{db: db}
}

// Append inserts entries in order inside one transaction, filling in their
// IDs. Nothing is deduplicated.
func (s *EntryStore) Append(ctx context.Context, sessionID string, entries []*domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to roll back entry append", "error", err)
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (session_id, location, kind, question, answer, photo_key, photo_mime, comment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		result, err := stmt.ExecContext(ctx, sessionID, e.Location, string(e.Kind), e.Question, e.Answer, e.PhotoKey, e.PhotoMIME, e.Comment)
		if err != nil {
			return fmt.Errorf("failed to insert entry: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		e.ID = id
		e.SessionID = sessionID
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entries: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when no entry with id belongs to the session.
func (s *EntryStore) GetByID(ctx context.Context, sessionID string, id int64) (*domain.Entry, error) {
	e, err := scanEntry(s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM entries WHERE session_id = ? AND id = ?
	`, sessionID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

// ListBySession returns every entry of the session in insertion order.
func (s *EntryStore) ListBySession(ctx context.Context, sessionID string) ([]*domain.Entry, error) {
	return s.list(ctx, `
		SELECT `+entryColumns+` FROM entries WHERE session_id = ? ORDER BY id ASC
	`, sessionID)
}

// ListComments returns the comment entries of the session, null comments included.
func (s *EntryStore) ListComments(ctx context.Context, sessionID string) ([]*domain.Entry, error) {
	return s.list(ctx, `
		SELECT `+entryColumns+` FROM entries WHERE session_id = ? AND kind = ? ORDER BY id ASC
	`, sessionID, string(domain.EntryComment))
}

// DeleteByLocation removes all entries whose location equals location exactly
// and returns the photo keys they referenced.
func (s *EntryStore) DeleteByLocation(ctx context.Context, sessionID, location string) ([]string, error) {
	return s.deleteReturningKeys(ctx, `
		SELECT photo_key FROM entries WHERE session_id = ? AND location = ? AND kind = ?
	`, []any{sessionID, location, string(domain.EntryPhoto)}, `
		DELETE FROM entries WHERE session_id = ? AND location = ?
	`, []any{sessionID, location})
}

// DeleteBySession removes every entry of the session and returns the photo
// keys they referenced.
func (s *EntryStore) DeleteBySession(ctx context.Context, sessionID string) ([]string, error) {
	return s.deleteReturningKeys(ctx, `
		SELECT photo_key FROM entries WHERE session_id = ? AND kind = ?
	`, []any{sessionID, string(domain.EntryPhoto)}, `
		DELETE FROM entries WHERE session_id = ?
	`, []any{sessionID})
}

// deleteReturningKeys reads the photo keys and deletes the rows in one
// transaction, so every removed photo row has its key returned.
func (s *EntryStore) deleteReturningKeys(ctx context.Context, selectQuery string, selectArgs []any, deleteQuery string, deleteArgs []any) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to roll back entry delete", "error", err)
		}
	}()

	keys, err := photoKeys(ctx, tx, selectQuery, selectArgs...)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("failed to delete entries: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit entry delete: %w", err)
	}
	return keys, nil
}

func (s *EntryStore) list(ctx context.Context, query string, args ...any) ([]*domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}
	return entries, nil
}

func photoKeys(ctx context.Context, tx *sql.Tx, query string, args ...any) ([]string, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list photo keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan photo key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photo keys: %w", err)
	}
	return keys, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.Entry, error) {
	e := &domain.Entry{}
	var kind string
	var comment sql.NullString
	if err := row.Scan(&e.ID, &e.SessionID, &e.Location, &kind, &e.Question, &e.Answer,
		&e.PhotoKey, &e.PhotoMIME, &comment, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Kind = domain.EntryKind(kind)
	if comment.Valid {
		c := comment.String
		e.Comment = &c
	}
	return e, nil
}
