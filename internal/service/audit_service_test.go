package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/aclaudit/internal/auth"
	"github.com/vbonduro/aclaudit/internal/catalog"
	"github.com/vbonduro/aclaudit/internal/db"
	"github.com/vbonduro/aclaudit/internal/domain"
	"github.com/vbonduro/aclaudit/internal/store"
)

// stubPhotoStore is a minimal in-memory photostore.PhotoStore for tests.
type stubPhotoStore struct {
	saved   map[string][]byte
	counter int
	saveErr error
	purged  []string
}

func newStubPhotoStore() *stubPhotoStore {
	return &stubPhotoStore{saved: make(map[string][]byte)}
}

func (s *stubPhotoStore) Save(_ context.Context, sessionID, location, _ string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, _ := io.ReadAll(r)
	s.counter++
	key := fmt.Sprintf("%s/%s_%d", sessionID, location, s.counter)
	s.saved[key] = data
	return key, nil
}

func (s *stubPhotoStore) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := s.saved[key]
	if !ok {
		return nil, "", errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), "image/jpeg", nil
}

func (s *stubPhotoStore) Delete(_ context.Context, key string) error {
	delete(s.saved, key)
	return nil
}

func (s *stubPhotoStore) Purge(_ context.Context, sessionID string) error {
	s.purged = append(s.purged, sessionID)
	for key := range s.saved {
		if strings.HasPrefix(key, sessionID+"/") {
			delete(s.saved, key)
		}
	}
	return nil
}

func newTestService(t *testing.T) (*AuditService, *stubPhotoStore) {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })

	photos := newStubPhotoStore()
	svc := NewAuditService(
		store.NewSessionStore(d),
		store.NewEntryStore(d),
		auth.NewChecker(auth.DefaultPassword),
		photos,
		slog.Default(),
	)
	return svc, photos
}

func login(t *testing.T, svc *AuditService, name string) *domain.Session {
	t.Helper()
	sess, err := svc.Login(context.Background(), name, auth.DefaultPassword)
	require.NoError(t, err)
	return sess
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Login(ctx, "Callistus Kyire", "ACL101")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "callistus kyire", sess.Auditor)

	got, err := svc.Session(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	_, err = svc.Login(ctx, "Callistus Kyire", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", "ACL101")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestSessionMissing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Session(ctx, "")
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = svc.Session(ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = svc.Submit(ctx, "does-not-exist", Submission{Target: "Exterior"})
	assert.ErrorIs(t, err, ErrNoSession)
	assert.ErrorIs(t, svc.ClearLocation(ctx, "does-not-exist", "Exterior"), ErrNoSession)
	assert.ErrorIs(t, svc.ClearAll(ctx, "does-not-exist"), ErrNoSession)
	assert.ErrorIs(t, svc.SignOut(ctx, "does-not-exist", ""), ErrNoSession)
	assert.ErrorIs(t, svc.AddComment(ctx, "does-not-exist", "x"), ErrNoSession)
	assert.ErrorIs(t, svc.SaveDetails(ctx, "does-not-exist", domain.Details{}), ErrNoSession)
}

func TestSaveDetails(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := login(t, svc, "felix")

	details := domain.Details{ClientSite: "ACL", SiteLocation: "Accra", Position: "Supervisor", ConductedOn: "2024-13-45"}
	require.NoError(t, svc.SaveDetails(ctx, sess.ID, details))

	got, err := svc.Session(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, details, got.Details)

	rows := DetailRows(got)
	assert.Equal(t, "Prepared by", rows[len(rows)-1].Label)
	assert.Equal(t, "Felix", rows[len(rows)-1].Value)
}

func TestSubmitLocation(t *testing.T) {
	svc, photos := newTestService(t)
	ctx := context.Background()
	sess := login(t, svc, "lovia")

	entries, err := svc.Submit(ctx, sess.ID, Submission{
		Mode:    domain.ModeLocation,
		Target:  "Exterior",
		Answers: []string{"No", "N/A"},
		Photos:  []Photo{{Data: []byte("img-1"), MIMEType: "image/jpeg"}, {Data: []byte("img-2"), MIMEType: "image/png"}},
		Comment: "Signage faded",
	})
	require.NoError(t, err)

	questions := catalog.QuestionsForLocation("Exterior")
	require.Len(t, entries, len(questions)+2+1)

	for i, q := range questions {
		assert.Equal(t, domain.EntryLocationAnswer, entries[i].Kind)
		assert.Equal(t, q, entries[i].Question)
		assert.Equal(t, "Exterior", entries[i].Location)
	}
	assert.Equal(t, "No", entries[0].Answer)
	assert.Equal(t, "N/A", entries[1].Answer)
	// Unanswered questions take the preselected first option.
	assert.Equal(t, "Yes", entries[2].Answer)
	assert.Equal(t, "Yes", entries[3].Answer)

	assert.Equal(t, domain.EntryPhoto, entries[4].Kind)
	assert.Equal(t, "image/png", entries[5].PhotoMIME)
	assert.Len(t, photos.saved, 2)

	last := entries[len(entries)-1]
	assert.Equal(t, domain.EntryComment, last.Kind)
	require.NotNil(t, last.Comment)
	assert.Equal(t, "Signage faded", *last.Comment)

	stored, err := svc.Entries(ctx, sess.ID)
	require.NoError(t, err)
	assert.Len(t, stored, len(entries))
}

func TestSubmitEmptyCommentRecordsNull(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := login(t, svc, "lovia")

	entries, err := svc.Submit(ctx, sess.ID, Submission{Mode: domain.ModeZone, Target: "Butchery"})
	require.NoError(t, err)

	require.Len(t, entries, len(catalog.QuestionsForZone("Butchery"))+1)
	assert.Equal(t, domain.EntryZoneAnswer, entries[0].Kind)
	last := entries[len(entries)-1]
	assert.Equal(t, domain.EntryComment, last.Kind)
	assert.Nil(t, last.Comment)
}

func TestSubmitUnknownZoneHasNoQuestions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := login(t, svc, "lovia")

	entries, err := svc.Submit(ctx, sess.ID, Submission{Mode: domain.ModeZone, Target: "Hot Kitchen", Comment: "ok"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.EntryComment, entries[0].Kind)
}

func TestSubmitTwiceDuplicates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := login(t, svc, "felix")

	sub := Submission{Mode: domain.ModeZone, Target: "Cold Room"}
	first, err := svc.Submit(ctx, sess.ID, sub)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, sess.ID, sub)
	require.NoError(t, err)

	stored, err := svc.Entries(ctx, sess.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2*len(first))
}

func TestSubmitPhotoSaveFailureStoresNothing(t *testing.T) {
	svc, photos := newTestService(t)
	ctx := context.Background()
	sess := login(t, svc, "felix")
	photos.saveErr = errors.New("disk full")

	_, err := svc.Submit(ctx, sess.ID, Submission{
		Target: "Interior",
		Photos: []Photo{{Data: []byte("x"), MIMEType: "image/jpeg"}},
	})
	require.Error(t, err)

	stored, err := svc.Entries(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestClearLocationExactMatch(t *testing.T) {
	svc, photos := newTestService(t)
	ctx := context.Background()
	sess := login(t, svc, "callistus kyire")

	_, err := svc.Submit(ctx, sess.ID, Submission{Mode: domain.ModeZone, Target: "Old Lay-up",
		Photos: []Photo{{Data: []byte("p"), MIMEType: "image/jpeg"}}})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, sess.ID, Submission{Mode: domain.ModeZone, Target: "Old Lay-up Holding Room"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, sess.ID, Submission{Target: "Exterior"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearLocation(ctx, sess.ID, "Old Lay-up"))

	stored, err := svc.Entries(ctx, sess.ID)
	require.NoError(t, err)
	want := len(catalog.QuestionsForZone("Old Lay-up Holding Room")) + 1 + len(catalog.QuestionsForLocation("Exterior")) + 1
	assert.Len(t, stored, want)
	for _, e := range stored {
		assert.NotEqual(t, "Old Lay-up", e.Location)
	}
	assert.Empty(t, photos.saved)
}

func TestClearAllKeepsSession(t *testing.T) {
	svc, photos := newTestService(t)
	ctx := context.Background()
	sess := login(t, svc, "felix")

	_, err := svc.Submit(ctx, sess.ID, Submission{Target: "Interior", Photos: []Photo{{Data: []byte("p"), MIMEType: "image/gif"}}})
	require.NoError(t, err)

	require.NoError(t, svc.ClearAll(ctx, sess.ID))

	stored, err := svc.Entries(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Empty(t, photos.saved)

	_, err = svc.Session(ctx, sess.ID)
	assert.NoError(t, err)
}

func TestSignOutRemovesSession(t *testing.T) {
	svc, photos := newTestService(t)
	ctx := context.Background()
	sess := login(t, svc, "felix")
	other := login(t, svc, "lovia")

	_, err := svc.Submit(ctx, sess.ID, Submission{Target: "Interior", Photos: []Photo{{Data: []byte("p"), MIMEType: "image/jpeg"}}})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, other.ID, Submission{Target: "Interior"})
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, sess.ID, "F. Mensah"))

	_, err = svc.Session(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = svc.Entries(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Empty(t, photos.saved)
	assert.Equal(t, []string{sess.ID}, photos.purged)

	left, err := svc.Entries(ctx, other.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, left)
}

func TestAddCommentAndComments(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := login(t, svc, "lovia")

	_, err := svc.Submit(ctx, sess.ID, Submission{Target: "Exterior"})
	require.NoError(t, err)
	require.NoError(t, svc.AddComment(ctx, sess.ID, "Overall good"))
	require.NoError(t, svc.AddComment(ctx, sess.ID, ""))

	comments, err := svc.Comments(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Nil(t, comments[0].Comment)
	assert.Equal(t, GeneralLocation, comments[1].Location)
	assert.Equal(t, "Overall good", comments[1].CommentText())
}

func TestPhoto(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := login(t, svc, "lovia")

	entries, err := svc.Submit(ctx, sess.ID, Submission{Target: "Exterior", Photos: []Photo{{Data: []byte("png!"), MIMEType: "image/png"}}})
	require.NoError(t, err)
	var photoID int64
	for _, e := range entries {
		if e.Kind == domain.EntryPhoto {
			photoID = e.ID
		}
	}
	require.NotZero(t, photoID)

	rc, mimeType, err := svc.Photo(ctx, sess.ID, photoID)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, []byte("png!"), data)

	_, _, err = svc.Photo(ctx, sess.ID, entries[0].ID)
	assert.Error(t, err)

	other := login(t, svc, "felix")
	_, _, err = svc.Photo(ctx, other.ID, photoID)
	assert.Error(t, err)
}

func TestExportOneRowPerEntry(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := login(t, svc, "iddriss nyande")

	_, err := svc.Submit(ctx, sess.ID, Submission{Target: "Interior", Comment: "Lights out"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, sess.ID, Submission{Mode: domain.ModeZone, Target: "Entrance",
		Photos: []Photo{{Data: []byte{1, 2, 3}, MIMEType: "image/jpeg"}}})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, sess.ID, Submission{Target: "Interior", Comment: "Lights out"})
	require.NoError(t, err)

	entries, err := svc.Entries(ctx, sess.ID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(ctx, sess.ID, &buf))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(entries)+1)

	var photoCells []string
	for i, e := range entries {
		rec := records[i+1]
		assert.Equal(t, e.Location, rec[0])
		if e.Kind == domain.EntryPhoto {
			photoCells = append(photoCells, rec[4])
		}
	}
	assert.Equal(t, []string{base64.StdEncoding.EncodeToString([]byte{1, 2, 3})}, photoCells)
}

func TestWriteXLSXAndCommentsDocument(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := login(t, svc, "felix")

	_, err := svc.Submit(ctx, sess.ID, Submission{Mode: domain.ModeZone, Target: "Deep Freezer", Comment: "Frost on shelves"})
	require.NoError(t, err)

	var xlsx bytes.Buffer
	require.NoError(t, svc.WriteXLSX(ctx, sess.ID, &xlsx))
	assert.True(t, bytes.HasPrefix(xlsx.Bytes(), []byte("PK")))

	var docx bytes.Buffer
	require.NoError(t, svc.WriteCommentsDocument(ctx, sess.ID, &docx))
	assert.True(t, bytes.HasPrefix(docx.Bytes(), []byte("PK")))

	assert.ErrorIs(t, svc.WriteCSV(ctx, "gone", io.Discard), ErrNoSession)
	assert.ErrorIs(t, svc.WriteXLSX(ctx, "gone", io.Discard), ErrNoSession)
	assert.ErrorIs(t, svc.WriteCommentsDocument(ctx, "gone", io.Discard), ErrNoSession)
}
