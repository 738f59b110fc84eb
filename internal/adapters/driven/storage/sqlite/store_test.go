package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudryyy/SHL/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func sampleAssessments() []domain.Assessment {
	return []domain.Assessment{
		{
			ID:          "java-8",
			Title:       "Java 8",
			URL:         "https://www.shl.com/view/java-8",
			Description: "Core Java programming knowledge.",
			Category:    "Technical",
			TestType:    "K",
			Level:       "Mid",
			DurationMin: "30",
			Language:    "English",
			Tags:        "java,programming",
		},
		{
			ID:    "opq",
			Title: "Occupational Personality Questionnaire",
			URL:   "https://www.shl.com/view/opq",
		},
	}
}

func TestPutAllAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutAll(ctx, sampleAssessments()))

	got, err := store.Get(ctx, "java-8")
	require.NoError(t, err)
	assert.Equal(t, "Java 8", got.Title)
	assert.Equal(t, "30", got.DurationMin)
	assert.Equal(t, "java,programming", got.Tags)

	// Row without tags round-trips as an empty string.
	opq, err := store.Get(ctx, "opq")
	require.NoError(t, err)
	assert.Empty(t, opq.Tags)
}

func TestGet_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_PreservesOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutAll(ctx, sampleAssessments()))

	listed, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "java-8", listed[0].ID)
	assert.Equal(t, "opq", listed[1].ID)
}

func TestPutAll_ReplacesContents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutAll(ctx, sampleAssessments()))
	require.NoError(t, store.PutAll(ctx, []domain.Assessment{
		{ID: "sjt", Title: "Situational Judgement", URL: "https://www.shl.com/view/sjt"},
	}))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = store.Get(ctx, "java-8")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCount_Empty(t *testing.T) {
	store := newTestStore(t)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStore_ReopenPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.db")
	ctx := context.Background()

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.PutAll(ctx, sampleAssessments()))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
