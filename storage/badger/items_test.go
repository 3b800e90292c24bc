package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/mangarec/core"
	"github.com/poiesic/mangarec/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) storage.ItemRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func testItems() []*core.Item {
	return []*core.Item{
		{Title: "Naruto", Description: "A ninja's journey to become Hokage.", Genres: []string{"Action", "Adventure"}, Themes: []string{"Martial Arts"}},
		{Title: "One Piece", Description: "Pirate crew sails to find the One Piece.", Genres: []string{"Action", "Adventure"}},
		{Title: "Bleach", Description: "Teen gains powers to fight evil spirits.", Genres: []string{"Action", "Supernatural"}},
	}
}

func TestAddItems_PreservesInsertionOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	added, err := repo.AddItems(ctx, testItems()...)
	require.NoError(t, err)
	require.Len(t, added, 3)

	for _, item := range added {
		assert.Equal(t, core.IDFromTitle(item.Title), item.Id)
		assert.False(t, item.InsertedAt.IsZero())
		assert.False(t, item.UpdatedAt.IsZero())
	}

	more, err := repo.AddItems(ctx, &core.Item{Title: "Death Note", Genres: []string{"Supernatural", "Thriller"}})
	require.NoError(t, err)
	require.Len(t, more, 1)

	corpus, err := repo.LoadCorpus(ctx)
	require.NoError(t, err)
	require.Len(t, corpus, 4)

	titles := make([]string, len(corpus))
	for i, item := range corpus {
		titles[i] = item.Title
	}
	assert.Equal(t, []string{"Naruto", "One Piece", "Bleach", "Death Note"}, titles)
}

func TestAddItems_ExistingTitleUpdatesInPlace(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddItems(ctx, testItems()...)
	require.NoError(t, err)

	original, err := repo.FindItemByTitle(ctx, "Naruto")
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	_, err = repo.AddItems(ctx, &core.Item{Title: "Naruto", Description: "Updated synopsis.", Genres: []string{"Action"}})
	require.NoError(t, err)

	count, err := repo.CountItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count, "re-adding a title must not grow the corpus")

	corpus, err := repo.LoadCorpus(ctx)
	require.NoError(t, err)
	require.Len(t, corpus, 3)
	assert.Equal(t, "Naruto", corpus[0].Title, "updated item keeps its position")
	assert.Equal(t, "Updated synopsis.", corpus[0].Description)
	assert.Equal(t, original.InsertedAt, corpus[0].InsertedAt)
	assert.True(t, corpus[0].UpdatedAt.After(original.UpdatedAt))
}

func TestAddItems_DuplicateTitlesInOneBatch(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddItems(ctx,
		&core.Item{Title: "Bleach", Description: "first"},
		&core.Item{Title: "Bleach", Description: "second"},
	)
	require.NoError(t, err)

	corpus, err := repo.LoadCorpus(ctx)
	require.NoError(t, err)
	require.Len(t, corpus, 1)
	assert.Equal(t, "second", corpus[0].Description)
}

func TestAddItems_InvalidItem(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddItems(ctx, &core.Item{Title: "Valid"}, &core.Item{Title: ""})
	assert.ErrorIs(t, err, core.ErrEmptyTitle)

	count, err := repo.CountItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "a failed batch must not be partially committed")
}

func TestAddItems_Empty(t *testing.T) {
	repo := newTestRepository(t)

	added, err := repo.AddItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestGetItem(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddItems(ctx, testItems()...)
	require.NoError(t, err)

	t.Run("existing item", func(t *testing.T) {
		item, err := repo.GetItem(ctx, core.IDFromTitle("One Piece"))
		require.NoError(t, err)
		assert.Equal(t, "One Piece", item.Title)
		assert.Equal(t, []string{"Action", "Adventure"}, item.Genres)
		assert.Equal(t, []string{}, item.Themes)
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := repo.GetItem(ctx, core.IDFromTitle("Berserk"))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("find by title", func(t *testing.T) {
		item, err := repo.FindItemByTitle(ctx, "Bleach")
		require.NoError(t, err)
		assert.Equal(t, "Teen gains powers to fight evil spirits.", item.Description)

		_, err = repo.FindItemByTitle(ctx, "bleach")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestDeleteItems(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddItems(ctx, testItems()...)
	require.NoError(t, err)

	err = repo.DeleteItems(ctx, core.IDFromTitle("One Piece"))
	require.NoError(t, err)

	corpus, err := repo.LoadCorpus(ctx)
	require.NoError(t, err)
	require.Len(t, corpus, 2)
	assert.Equal(t, "Naruto", corpus[0].Title)
	assert.Equal(t, "Bleach", corpus[1].Title)

	err = repo.DeleteItems(ctx, core.IDFromTitle("One Piece"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLoadCorpus_Empty(t *testing.T) {
	repo := newTestRepository(t)

	corpus, err := repo.LoadCorpus(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, corpus)
	assert.Empty(t, corpus)
}

func TestLoadCorpus_ClosedBackend(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	repo, err := NewItemRepository(backend)
	require.NoError(t, err)
	require.NoError(t, repo.Close())
	require.NoError(t, backend.Close())

	_, err = repo.LoadCorpus(context.Background())
	assert.ErrorIs(t, err, storage.ErrCorpusUnavailable)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestLoadCorpus_CanceledContext(t *testing.T) {
	repo := newTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())

	_, err := repo.AddItems(ctx, testItems()...)
	require.NoError(t, err)

	cancel()
	_, err = repo.LoadCorpus(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
