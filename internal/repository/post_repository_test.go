package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/osuda/internal/storage"
)

func newTestRepo(t *testing.T) (PostRepository, *storage.MemoryStorage) {
	t.Helper()
	store := storage.NewMemoryStorage()
	repo := NewPostRepository(store)
	require.NoError(t, repo.Load(context.Background()))
	return repo, store
}

func strPtr(s string) *string { return &s }

func TestCreateAssignsIncreasingIDs(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, "one", "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	second, err := repo.Create(ctx, "two", "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	// deleting a non-max id must not make it available again
	require.NoError(t, repo.Delete(ctx, first.ID))
	third, err := repo.Create(ctx, "three", "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), third.ID)
}

func TestCreateEmptyContent(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "", "a, b", nil)
	assert.ErrorIs(t, err, ErrContentRequired)
	assert.Empty(t, repo.List(ctx))
	assert.Empty(t, store.Stored())
}

func TestCreateSetsTimestampAndKeywords(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	post, err := repo.Create(ctx, "hello", "a, b", strPtr("2024-05-01"))
	require.NoError(t, err)
	assert.NotEmpty(t, post.CreatedAt)
	assert.Equal(t, "a, b", post.Keywords)
	require.NotNil(t, post.ManualDate)
	assert.Equal(t, "2024-05-01", *post.ManualDate)
}

func TestGet(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "hello", "", nil)
	require.NoError(t, err)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = repo.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestUpdate(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "before", "old", strPtr("2024-05-01"))
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, created.ID, "after", "new", strPtr("2024-06-01")))
	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Content)
	assert.Equal(t, "new", got.Keywords)
	require.NotNil(t, got.ManualDate)
	assert.Equal(t, "2024-06-01", *got.ManualDate)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
}

func TestUpdateOmittedManualDateClearsIt(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "note", "", strPtr("2024-05-01"))
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, created.ID, "note", "", nil))
	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ManualDate, "omitted manual_date must clear the stored one")
}

func TestUpdateErrors(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "note", "", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Update(ctx, created.ID, "", "", nil), ErrContentRequired)
	assert.ErrorIs(t, repo.Update(ctx, 999, "x", "", nil), ErrPostNotFound)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "note", got.Content, "failed updates must not mutate the collection")
}

func TestDelete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "note", "", nil)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrPostNotFound)
}

func TestListReturnsSnapshot(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "a", "", nil)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "b", "", nil)
	require.NoError(t, err)

	posts := repo.List(ctx)
	require.Len(t, posts, 2)
	posts[0].Content = "mutated"

	again := repo.List(ctx)
	assert.Equal(t, "a", again[0].Content, "List must hand out copies")
}

func TestPersistFailureDoesNotFailMutation(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "durable", "", nil)
	require.NoError(t, err)

	store.SaveErr = errors.New("disk full")
	created, err := repo.Create(ctx, "memory only", "", nil)
	require.NoError(t, err, "persistence failures must not surface")

	// in-memory state is authoritative, the store kept the old collection
	assert.Len(t, repo.List(ctx), 2)
	assert.Len(t, store.Stored(), 1)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "memory only", got.Content)
}

func TestEveryMutationPersists(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "a", "", nil)
	require.NoError(t, err)
	assert.Len(t, store.Stored(), 1)

	require.NoError(t, repo.Update(ctx, created.ID, "b", "", nil))
	assert.Equal(t, "b", store.Stored()[0].Content)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.Empty(t, store.Stored())
}

func TestLoadPopulatesFromStorage(t *testing.T) {
	store := storage.NewMemoryStorage()
	seeded := NewPostRepository(store)
	require.NoError(t, seeded.Load(context.Background()))
	_, err := seeded.Create(context.Background(), "persisted", "a", nil)
	require.NoError(t, err)

	fresh := NewPostRepository(store)
	require.NoError(t, fresh.Load(context.Background()))
	posts := fresh.List(context.Background())
	require.Len(t, posts, 1)
	assert.Equal(t, "persisted", posts[0].Content)
}
