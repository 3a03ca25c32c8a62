package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vbonduro/aclaudit/internal/domain"
)

type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Create(ctx context.Context, id, auditor string) (*domain.Session, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, auditor) VALUES (?, ?)
	`, id, auditor)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID returns nil, nil when the session does not exist.
func (s *SessionStore) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	sess := &domain.Session{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, auditor, client_site, site_location, position, conducted_on, created_at
		FROM sessions WHERE id = ?
	`, id).Scan(
		&sess.ID, &sess.Auditor,
		&sess.Details.ClientSite, &sess.Details.SiteLocation, &sess.Details.Position, &sess.Details.ConductedOn,
		&sess.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return sess, nil
}

func (s *SessionStore) UpdateDetails(ctx context.Context, id string, d domain.Details) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET client_site = ?, site_location = ?, position = ?, conducted_on = ?
		WHERE id = ?
	`, d.ClientSite, d.SiteLocation, d.Position, d.ConductedOn, id)
	if err != nil {
		return fmt.Errorf("failed to update session details: %w", err)
	}
	return requireOneRow(result, "session")
}

// Delete removes the session; its entries go with it through the foreign key.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM sessions WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return requireOneRow(result, "session")
}

func requireOneRow(result sql.Result, what string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s not found", what)
	}
	return nil
}
