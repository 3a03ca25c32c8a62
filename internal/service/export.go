package service

import (
	"context"
	"fmt"
	"io"

	"github.com/vbonduro/aclaudit/internal/domain"
	"github.com/vbonduro/aclaudit/internal/export"
)

// CommentsHeading titles the comments document.
const CommentsHeading = "Audit Comments"

// ExportRows flattens every entry of the session, loading photo bytes so the
// Photo column carries the image itself.
func (s *AuditService) ExportRows(ctx context.Context, sessionID string) ([]export.Row, error) {
	entries, err := s.Entries(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	rows := make([]export.Row, 0, len(entries))
	for _, e := range entries {
		var photo []byte
		if e.Kind == domain.EntryPhoto {
			photo, err = s.readPhoto(ctx, e.PhotoKey)
			if err != nil {
				return nil, err
			}
		}
		rows = append(rows, export.NewRow(e, photo))
	}
	return rows, nil
}

func (s *AuditService) WriteCSV(ctx context.Context, sessionID string, w io.Writer) error {
	rows, err := s.ExportRows(ctx, sessionID)
	if err != nil {
		return err
	}
	return export.WriteCSV(w, rows)
}

func (s *AuditService) WriteXLSX(ctx context.Context, sessionID string, w io.Writer) error {
	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return err
	}
	rows, err := s.ExportRows(ctx, sessionID)
	if err != nil {
		return err
	}
	return export.WriteXLSX(w, rows, DetailRows(sess))
}

// WriteCommentsDocument writes one paragraph per comment entry.
func (s *AuditService) WriteCommentsDocument(ctx context.Context, sessionID string, w io.Writer) error {
	comments, err := s.Comments(ctx, sessionID)
	if err != nil {
		return err
	}
	texts := make([]string, len(comments))
	for i, c := range comments {
		texts[i] = c.CommentText()
	}
	return export.WriteCommentsDocument(w, CommentsHeading, texts)
}

func (s *AuditService) readPhoto(ctx context.Context, key string) ([]byte, error) {
	rc, _, err := s.photoStg.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to open photo %s: %w", key, err)
	}
	defer func() {
		if err := rc.Close(); err != nil {
			s.logger.Error("failed to close photo reader", "storage_key", key, "error", err)
		}
	}()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo %s: %w", key, err)
	}
	return data, nil
}
