package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/serroba/linkpreview/internal/link"
	"github.com/serroba/linkpreview/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLink(slug string) *link.Link {
	return &link.Link{
		ID:           uuid.New(),
		Slug:         slug,
		Title:        "Title for " + slug,
		TargetURL:    "https://shop.example.com/" + slug,
		AffiliateURL: "https://partner.example.com/" + slug,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestMemoryRepositoryCreate(t *testing.T) {
	t.Run("creates and reads back by slug", func(t *testing.T) {
		repo := store.NewMemoryRepository()
		l := newLink("abc1234")

		require.NoError(t, repo.Create(context.Background(), l))

		got, err := repo.GetBySlug(context.Background(), "abc1234")
		require.NoError(t, err)
		assert.Equal(t, l.ID, got.ID)
		assert.Equal(t, l.Title, got.Title)
	})

	t.Run("rejects a duplicate slug", func(t *testing.T) {
		repo := store.NewMemoryRepository()

		require.NoError(t, repo.Create(context.Background(), newLink("dup")))

		err := repo.Create(context.Background(), newLink("dup"))

		assert.ErrorIs(t, err, link.ErrSlugConflict)
	})
}

func TestMemoryRepositoryGet(t *testing.T) {
	t.Run("returns ErrNotFound for an unknown slug", func(t *testing.T) {
		repo := store.NewMemoryRepository()

		_, err := repo.GetBySlug(context.Background(), "missing")

		assert.ErrorIs(t, err, link.ErrNotFound)
	})

	t.Run("returns ErrNotFound for an unknown id", func(t *testing.T) {
		repo := store.NewMemoryRepository()

		_, err := repo.GetByID(context.Background(), uuid.New())

		assert.ErrorIs(t, err, link.ErrNotFound)
	})

	t.Run("returns copies that do not alias the stored record", func(t *testing.T) {
		repo := store.NewMemoryRepository()
		l := newLink("copy")
		require.NoError(t, repo.Create(context.Background(), l))

		got, err := repo.GetBySlug(context.Background(), "copy")
		require.NoError(t, err)

		got.Title = "mutated"

		again, err := repo.GetBySlug(context.Background(), "copy")
		require.NoError(t, err)
		assert.Equal(t, l.Title, again.Title)
	})
}

func TestMemoryRepositoryList(t *testing.T) {
	t.Run("lists newest first", func(t *testing.T) {
		repo := store.NewMemoryRepository()

		oldest := newLink("oldest")
		oldest.CreatedAt = time.Now().UTC().Add(-2 * time.Hour)
		middle := newLink("middle")
		middle.CreatedAt = time.Now().UTC().Add(-time.Hour)
		newest := newLink("newest")

		require.NoError(t, repo.Create(context.Background(), oldest))
		require.NoError(t, repo.Create(context.Background(), newest))
		require.NoError(t, repo.Create(context.Background(), middle))

		links, err := repo.List(context.Background())

		require.NoError(t, err)
		require.Len(t, links, 3)
		assert.Equal(t, "newest", links[0].Slug)
		assert.Equal(t, "middle", links[1].Slug)
		assert.Equal(t, "oldest", links[2].Slug)
	})

	t.Run("empty repository lists nothing", func(t *testing.T) {
		repo := store.NewMemoryRepository()

		links, err := repo.List(context.Background())

		require.NoError(t, err)
		assert.Empty(t, links)
	})
}

func TestMemoryRepositoryUpdate(t *testing.T) {
	t.Run("preserves click count and creation time", func(t *testing.T) {
		repo := store.NewMemoryRepository()
		l := newLink("keepers")
		require.NoError(t, repo.Create(context.Background(), l))
		require.NoError(t, repo.IncrementClick(context.Background(), l.ID))

		upd := *l
		upd.Title = "New Title"
		upd.ClickCount = 0
		upd.CreatedAt = time.Time{}

		require.NoError(t, repo.Update(context.Background(), &upd))

		assert.Equal(t, int64(1), upd.ClickCount)
		assert.Equal(t, l.CreatedAt, upd.CreatedAt)

		got, err := repo.GetByID(context.Background(), l.ID)
		require.NoError(t, err)
		assert.Equal(t, "New Title", got.Title)
		assert.Equal(t, int64(1), got.ClickCount)
	})

	t.Run("rejects taking another link's slug", func(t *testing.T) {
		repo := store.NewMemoryRepository()
		first := newLink("first")
		second := newLink("second")
		require.NoError(t, repo.Create(context.Background(), first))
		require.NoError(t, repo.Create(context.Background(), second))

		upd := *second
		upd.Slug = "first"

		err := repo.Update(context.Background(), &upd)

		assert.ErrorIs(t, err, link.ErrSlugConflict)
	})

	t.Run("returns ErrNotFound for an unknown id", func(t *testing.T) {
		repo := store.NewMemoryRepository()

		err := repo.Update(context.Background(), newLink("ghost"))

		assert.ErrorIs(t, err, link.ErrNotFound)
	})
}

func TestMemoryRepositoryDelete(t *testing.T) {
	t.Run("delete is idempotent", func(t *testing.T) {
		repo := store.NewMemoryRepository()
		l := newLink("gone")
		require.NoError(t, repo.Create(context.Background(), l))

		require.NoError(t, repo.Delete(context.Background(), l.ID))
		require.NoError(t, repo.Delete(context.Background(), l.ID))

		_, err := repo.GetByID(context.Background(), l.ID)
		assert.ErrorIs(t, err, link.ErrNotFound)
	})
}

func TestMemoryRepositorySetActive(t *testing.T) {
	t.Run("toggles only the active flag", func(t *testing.T) {
		repo := store.NewMemoryRepository()
		l := newLink("toggle")
		require.NoError(t, repo.Create(context.Background(), l))

		got, err := repo.SetActive(context.Background(), l.ID, false)

		require.NoError(t, err)
		assert.False(t, got.IsActive)
		assert.Equal(t, l.Title, got.Title)
	})

	t.Run("returns ErrNotFound for an unknown id", func(t *testing.T) {
		repo := store.NewMemoryRepository()

		_, err := repo.SetActive(context.Background(), uuid.New(), true)

		assert.ErrorIs(t, err, link.ErrNotFound)
	})
}

func TestMemoryRepositoryIncrementClick(t *testing.T) {
	t.Run("concurrent increments are not lost", func(t *testing.T) {
		repo := store.NewMemoryRepository()
		l := newLink("busy")
		require.NoError(t, repo.Create(context.Background(), l))

		const workers = 50

		var wg sync.WaitGroup
		wg.Add(workers)

		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()

				_ = repo.IncrementClick(context.Background(), l.ID)
			}()
		}

		wg.Wait()

		got, err := repo.GetByID(context.Background(), l.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(workers), got.ClickCount)
	})

	t.Run("returns ErrNotFound for an unknown id", func(t *testing.T) {
		repo := store.NewMemoryRepository()

		err := repo.IncrementClick(context.Background(), uuid.New())

		assert.ErrorIs(t, err, link.ErrNotFound)
	})
}
