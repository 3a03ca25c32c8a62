package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vbonduro/aclaudit/internal/auth"
	"github.com/vbonduro/aclaudit/internal/catalog"
	"github.com/vbonduro/aclaudit/internal/domain"
	"github.com/vbonduro/aclaudit/internal/export"
	"github.com/vbonduro/aclaudit/internal/photostore"
)

// GeneralLocation is the location recorded for comments added on the
// comments page rather than inside a checklist.
const GeneralLocation = "General"

// ErrNoSession is returned when a request carries no live audit session.
var ErrNoSession = errors.New("no active audit session")

// sessionRepository is the subset of store.SessionStore that AuditService requires.
type sessionRepository interface {
	Create(ctx context.Context, id, auditor string) (*domain.Session, error)
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	UpdateDetails(ctx context.Context, id string, d domain.Details) error
	Delete(ctx context.Context, id string) error
}

// entryRepository is the subset of store.EntryStore that AuditService requires.
type entryRepository interface {
	Append(ctx context.Context, sessionID string, entries []*domain.Entry) error
	GetByID(ctx context.Context, sessionID string, id int64) (*domain.Entry, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.Entry, error)
	ListComments(ctx context.Context, sessionID string) ([]*domain.Entry, error)
	DeleteByLocation(ctx context.Context, sessionID, location string) ([]string, error)
	DeleteBySession(ctx context.Context, sessionID string) ([]string, error)
}

type credentialChecker interface {
	Authenticate(name, password string) (string, error)
}

type AuditService struct {
	sessions sessionRepository
	entries  entryRepository
	checker  credentialChecker
	photoStg photostore.PhotoStore
	logger   *slog.Logger
}

func NewAuditService(
	sessions sessionRepository,
	entries entryRepository,
	checker credentialChecker,
	photoStg photostore.PhotoStore,
	logger *slog.Logger,
) *AuditService {
	return &AuditService{
		sessions: sessions,
		entries:  entries,
		checker:  checker,
		photoStg: photoStg,
		logger:   logger,
	}
}

// Login checks the credentials and opens a new session for the auditor.
func (s *AuditService) Login(ctx context.Context, name, password string) (*domain.Session, error) {
	auditor, err := s.checker.Authenticate(name, password)
	if err != nil {
		s.logger.Info("login rejected")
		return nil, err
	}

	sess, err := s.sessions.Create(ctx, uuid.NewString(), auditor)
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	s.logger.Info("auditor logged in", "auditor", auditor, "session_id", sess.ID)
	return sess, nil
}

// Session returns the live session for id, or ErrNoSession.
func (s *AuditService) Session(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, ErrNoSession
	}
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if sess == nil {
		return nil, ErrNoSession
	}
	return sess, nil
}

func (s *AuditService) SaveDetails(ctx context.Context, sessionID string, d domain.Details) error {
	if _, err := s.Session(ctx, sessionID); err != nil {
		return err
	}
	if err := s.sessions.UpdateDetails(ctx, sessionID, d); err != nil {
		return fmt.Errorf("failed to save audit details: %w", err)
	}
	return nil
}

// Photo is an uploaded image awaiting storage.
type Photo struct {
	Data     []byte
	MIMEType string
}

// Submission is everything the auditor filled in for one location or zone.
// Answers are matched to the checklist by position.
type Submission struct {
	Mode    domain.Mode
	Target  string
	Answers []string
	Photos  []Photo
	Comment string
}

// Questions returns the checklist shown for target in the given mode.
func Questions(mode domain.Mode, target string) []string {
	if mode == domain.ModeZone {
		return catalog.QuestionsForZone(target)
	}
	return catalog.QuestionsForLocation(target)
}

// Submit appends one entry per checklist question, one per photo and one
// comment entry (null when the comment is empty). Repeated submissions
// append again.
func (s *AuditService) Submit(ctx context.Context, sessionID string, sub Submission) ([]*domain.Entry, error) {
	if _, err := s.Session(ctx, sessionID); err != nil {
		return nil, err
	}

	kind := domain.EntryLocationAnswer
	if sub.Mode == domain.ModeZone {
		kind = domain.EntryZoneAnswer
	}
	defaultAnswer := catalog.AnswerOptions()[0]

	var batch []*domain.Entry
	for i, q := range Questions(sub.Mode, sub.Target) {
		answer := defaultAnswer
		if i < len(sub.Answers) {
			answer = sub.Answers[i]
		}
		batch = append(batch, &domain.Entry{Location: sub.Target, Kind: kind, Question: q, Answer: answer})
	}

	var saved []string
	for _, p := range sub.Photos {
		key, err := s.photoStg.Save(ctx, sessionID, sub.Target, p.MIMEType, bytes.NewReader(p.Data))
		if err != nil {
			s.discardPhotos(ctx, saved)
			return nil, fmt.Errorf("failed to save photo: %w", err)
		}
		saved = append(saved, key)
		batch = append(batch, &domain.Entry{Location: sub.Target, Kind: domain.EntryPhoto, PhotoKey: key, PhotoMIME: p.MIMEType})
	}

	comment := &domain.Entry{Location: sub.Target, Kind: domain.EntryComment}
	if sub.Comment != "" {
		text := sub.Comment
		comment.Comment = &text
	}
	batch = append(batch, comment)

	if err := s.entries.Append(ctx, sessionID, batch); err != nil {
		s.discardPhotos(ctx, saved)
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	s.logger.Info("submission stored",
		"session_id", sessionID,
		"mode", string(sub.Mode),
		"location", sub.Target,
		"entries", len(batch),
		"photos", len(saved),
	)
	return batch, nil
}

// ClearLocation drops every entry whose location is exactly target.
func (s *AuditService) ClearLocation(ctx context.Context, sessionID, target string) error {
	if _, err := s.Session(ctx, sessionID); err != nil {
		return err
	}
	keys, err := s.entries.DeleteByLocation(ctx, sessionID, target)
	if err != nil {
		return fmt.Errorf("failed to clear location: %w", err)
	}
	s.discardPhotos(ctx, keys)
	s.logger.Info("location cleared", "session_id", sessionID, "location", target, "photos", len(keys))
	return nil
}

// ClearAll drops every entry of the session but keeps the auditor logged in.
func (s *AuditService) ClearAll(ctx context.Context, sessionID string) error {
	if _, err := s.Session(ctx, sessionID); err != nil {
		return err
	}
	keys, err := s.entries.DeleteBySession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	s.discardPhotos(ctx, keys)
	s.logger.Info("session entries cleared", "session_id", sessionID, "photos", len(keys))
	return nil
}

func (s *AuditService) Entries(ctx context.Context, sessionID string) ([]*domain.Entry, error) {
	if _, err := s.Session(ctx, sessionID); err != nil {
		return nil, err
	}
	entries, err := s.entries.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// Comments returns every comment entry, null comments included.
func (s *AuditService) Comments(ctx context.Context, sessionID string) ([]*domain.Entry, error) {
	if _, err := s.Session(ctx, sessionID); err != nil {
		return nil, err
	}
	comments, err := s.entries.ListComments(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// AddComment records a free-standing comment under GeneralLocation. Empty
// text is ignored.
func (s *AuditService) AddComment(ctx context.Context, sessionID, text string) error {
	if _, err := s.Session(ctx, sessionID); err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	entry := &domain.Entry{Location: GeneralLocation, Kind: domain.EntryComment, Comment: &text}
	if err := s.entries.Append(ctx, sessionID, []*domain.Entry{entry}); err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

// Photo opens the image behind a photo entry of the session.
func (s *AuditService) Photo(ctx context.Context, sessionID string, entryID int64) (io.ReadCloser, string, error) {
	if _, err := s.Session(ctx, sessionID); err != nil {
		return nil, "", err
	}
	entry, err := s.entries.GetByID(ctx, sessionID, entryID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get entry: %w", err)
	}
	if entry == nil || entry.Kind != domain.EntryPhoto {
		return nil, "", fmt.Errorf("photo %d not found", entryID)
	}
	rc, mimeType, err := s.photoStg.Get(ctx, entry.PhotoKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open photo: %w", err)
	}
	if entry.PhotoMIME != "" {
		mimeType = entry.PhotoMIME
	}
	return rc, mimeType, nil
}

// SignOut deletes the session, its entries and its photos.
func (s *AuditService) SignOut(ctx context.Context, sessionID, signature string) error {
	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return err
	}
	keys, err := s.entries.DeleteBySession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	s.discardPhotos(ctx, keys)
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if err := s.photoStg.Purge(ctx, sessionID); err != nil {
		s.logger.Error("failed to purge session photos", "session_id", sessionID, "error", err)
	}
	s.logger.Info("auditor signed out", "auditor", sess.Auditor, "signature", signature, "session_id", sessionID)
	return nil
}

// discardPhotos deletes stored photos, logging failures.
func (s *AuditService) discardPhotos(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.photoStg.Delete(ctx, key); err != nil {
			s.logger.Error("failed to delete photo file", "storage_key", key, "error", err)
		}
	}
}

// DetailRows renders the session's title page for exports and display.
func DetailRows(sess *domain.Session) []export.DetailRow {
	return []export.DetailRow{
		{Label: "Client / Site", Value: sess.Details.ClientSite},
		{Label: "Location", Value: sess.Details.SiteLocation},
		{Label: "Position at ACL", Value: sess.Details.Position},
		{Label: "Conducted on", Value: sess.Details.ConductedOn},
		{Label: "Prepared by", Value: auth.DisplayName(sess.Auditor)},
	}
}
