package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/aclaudit/internal/db"
	"github.com/vbonduro/aclaudit/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func strPtr(s string) *string { return &s }

func answer(location, question, ans string) *domain.Entry {
	return &domain.Entry{Location: location, Kind: domain.EntryLocationAnswer, Question: question, Answer: ans}
}

func TestSessionStoreCreateAndGet(t *testing.T) {
	d := openTestDB(t)
	store := NewSessionStore(d)
	ctx := context.Background()

	sess, err := store.Create(ctx, "s-1", "lovia")
	require.NoError(t, err)
	assert.Equal(t, "s-1", sess.ID)
	assert.Equal(t, "lovia", sess.Auditor)
	assert.Equal(t, domain.Details{}, sess.Details)
	assert.False(t, sess.CreatedAt.IsZero())

	missing, err := store.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionStoreUpdateDetails(t *testing.T) {
	d := openTestDB(t)
	store := NewSessionStore(d)
	ctx := context.Background()

	_, err := store.Create(ctx, "s-1", "felix")
	require.NoError(t, err)

	details := domain.Details{ClientSite: "ACL", SiteLocation: "Kotoka", Position: "QA", ConductedOn: "not a date"}
	require.NoError(t, store.UpdateDetails(ctx, "s-1", details))

	sess, err := store.GetByID(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, details, sess.Details)

	assert.Error(t, store.UpdateDetails(ctx, "missing", details))
}

func TestSessionStoreDeleteCascadesEntries(t *testing.T) {
	d := openTestDB(t)
	sessions := NewSessionStore(d)
	entries := NewEntryStore(d)
	ctx := context.Background()

	_, err := sessions.Create(ctx, "s-1", "felix")
	require.NoError(t, err)
	require.NoError(t, entries.Append(ctx, "s-1", []*domain.Entry{answer("Exterior", "Q", "Yes")}))

	require.NoError(t, sessions.Delete(ctx, "s-1"))

	sess, err := sessions.GetByID(ctx, "s-1")
	require.NoError(t, err)
	assert.Nil(t, sess)

	var n int
	require.NoError(t, d.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n))
	assert.Zero(t, n)

	assert.Error(t, sessions.Delete(ctx, "s-1"))
}

func TestEntryStoreAppendPreservesOrderAndDuplicates(t *testing.T) {
	d := openTestDB(t)
	_, err := NewSessionStore(d).Create(context.Background(), "s-1", "lovia")
	require.NoError(t, err)
	store := NewEntryStore(d)
	ctx := context.Background()

	batch := []*domain.Entry{
		answer("Exterior", "Q1", "Yes"),
		{Location: "Exterior", Kind: domain.EntryPhoto, PhotoKey: "s-1/exterior_1.jpg", PhotoMIME: "image/jpeg"},
		{Location: "Exterior", Kind: domain.EntryComment, Comment: strPtr("Bins overflowing")},
	}
	require.NoError(t, store.Append(ctx, "s-1", batch))
	for _, e := range batch {
		assert.NotZero(t, e.ID)
		assert.Equal(t, "s-1", e.SessionID)
	}

	// Submitting the same thing twice keeps both copies.
	require.NoError(t, store.Append(ctx, "s-1", []*domain.Entry{answer("Exterior", "Q1", "Yes")}))

	got, err := store.ListBySession(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, domain.EntryLocationAnswer, got[0].Kind)
	assert.Equal(t, "Q1", got[0].Question)
	assert.Equal(t, domain.EntryPhoto, got[1].Kind)
	assert.Equal(t, "s-1/exterior_1.jpg", got[1].PhotoKey)
	assert.Equal(t, "image/jpeg", got[1].PhotoMIME)
	require.NotNil(t, got[2].Comment)
	assert.Equal(t, "Bins overflowing", *got[2].Comment)
	assert.Equal(t, got[0].Question, got[3].Question)
	assert.NotEqual(t, got[0].ID, got[3].ID)
}

func TestEntryStoreAppendEmpty(t *testing.T) {
	d := openTestDB(t)
	assert.NoError(t, NewEntryStore(d).Append(context.Background(), "s-1", nil))
}

func TestEntryStoreNullComment(t *testing.T) {
	d := openTestDB(t)
	_, err := NewSessionStore(d).Create(context.Background(), "s-1", "lovia")
	require.NoError(t, err)
	store := NewEntryStore(d)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s-1", []*domain.Entry{
		{Location: "Bakery", Kind: domain.EntryComment},
		{Location: "Bakery", Kind: domain.EntryComment, Comment: strPtr("")},
		answer("Bakery", "Q", "No"),
	}))

	comments, err := store.ListComments(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Nil(t, comments[0].Comment)
	require.NotNil(t, comments[1].Comment)
	assert.Equal(t, "", *comments[1].Comment)
}

func TestEntryStoreDeleteByLocationExactMatch(t *testing.T) {
	d := openTestDB(t)
	_, err := NewSessionStore(d).Create(context.Background(), "s-1", "lovia")
	require.NoError(t, err)
	_, err = NewSessionStore(d).Create(context.Background(), "s-2", "felix")
	require.NoError(t, err)
	store := NewEntryStore(d)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s-1", []*domain.Entry{
		answer("Old Lay-up", "Q1", "Yes"),
		{Location: "Old Lay-up", Kind: domain.EntryPhoto, PhotoKey: "k1"},
		answer("Old Lay-up Holding Room", "Q1", "No"),
		answer("old lay-up", "Q1", "N/A"),
		{Location: "Old Lay-up", Kind: domain.EntryComment},
	}))
	require.NoError(t, store.Append(ctx, "s-2", []*domain.Entry{answer("Old Lay-up", "Q1", "Yes")}))

	keys, err := store.DeleteByLocation(ctx, "s-1", "Old Lay-up")
	require.NoError(t, err)
	assert.Equal(t, []string{"k1"}, keys)

	left, err := store.ListBySession(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, "Old Lay-up Holding Room", left[0].Location)
	assert.Equal(t, "old lay-up", left[1].Location)

	other, err := store.ListBySession(ctx, "s-2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestEntryStoreDeleteBySession(t *testing.T) {
	d := openTestDB(t)
	_, err := NewSessionStore(d).Create(context.Background(), "s-1", "lovia")
	require.NoError(t, err)
	store := NewEntryStore(d)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s-1", []*domain.Entry{
		{Location: "Exterior", Kind: domain.EntryPhoto, PhotoKey: "a"},
		{Location: "Interior", Kind: domain.EntryPhoto, PhotoKey: "b"},
		answer("Interior", "Q", "Yes"),
	}))

	keys, err := store.DeleteBySession(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	left, err := store.ListBySession(ctx, "s-1")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestEntryStoreDeleteBySessionConcurrentAppend(t *testing.T) {
	d := openTestDB(t)
	_, err := NewSessionStore(d).Create(context.Background(), "s-1", "felix")
	require.NoError(t, err)
	store := NewEntryStore(d)
	ctx := context.Background()

	const photos = 50
	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		for i := 0; i < photos; i++ {
			e := &domain.Entry{Location: "Exterior", Kind: domain.EntryPhoto, PhotoKey: fmt.Sprintf("k%d", i)}
			assert.NoError(t, store.Append(ctx, "s-1", []*domain.Entry{e}))
		}
	}()

	returned := map[string]int{}
	collect := func() {
		keys, err := store.DeleteBySession(ctx, "s-1")
		require.NoError(t, err)
		for _, k := range keys {
			returned[k]++
		}
	}
loop:
	for {
		select {
		case <-done:
			break loop
		default:
			collect()
		}
	}
	wg.Wait()
	collect()

	// Every deleted photo row must hand back its key exactly once.
	require.Len(t, returned, photos)
	for k, n := range returned {
		assert.Equal(t, 1, n, "key %s", k)
	}
	left, err := store.ListBySession(ctx, "s-1")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestEntryStoreGetByIDScopedToSession(t *testing.T) {
	d := openTestDB(t)
	_, err := NewSessionStore(d).Create(context.Background(), "s-1", "lovia")
	require.NoError(t, err)
	store := NewEntryStore(d)
	ctx := context.Background()

	e := &domain.Entry{Location: "Exterior", Kind: domain.EntryPhoto, PhotoKey: "a", PhotoMIME: "image/png"}
	require.NoError(t, store.Append(ctx, "s-1", []*domain.Entry{e}))

	got, err := store.GetByID(ctx, "s-1", e.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "image/png", got.PhotoMIME)

	got, err = store.GetByID(ctx, "s-other", e.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
