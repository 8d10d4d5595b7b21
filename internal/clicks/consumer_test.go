package clicks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/serroba/linkpreview/internal/clicks"
	"github.com/serroba/linkpreview/internal/link"
	"github.com/serroba/linkpreview/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type incrementErrorRepo struct {
	link.Repository
	err error
}

func (r *incrementErrorRepo) IncrementClick(context.Context, uuid.UUID) error {
	return r.err
}

func seedLink(t *testing.T, repo link.Repository) *link.Link {
	t.Helper()

	l := &link.Link{
		ID:           uuid.New(),
		Slug:         "desk",
		Title:        "Standing Desk",
		TargetURL:    "https://shop.example.com/desk",
		AffiliateURL: "https://partner.example.com/desk",
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), l))

	return l
}

func TestIncrementHandler(t *testing.T) {
	t.Run("increments the counter for each event", func(t *testing.T) {
		repo := store.NewMemoryRepository()
		l := seedLink(t, repo)
		handler := clicks.NewIncrementHandler(repo, zap.NewNop())

		event := &clicks.LinkClickedEvent{
			LinkID:     l.ID.String(),
			Slug:       l.Slug,
			OccurredAt: time.Now().UTC(),
		}

		require.NoError(t, handler(context.Background(), event))
		require.NoError(t, handler(context.Background(), event))

		got, err := repo.GetByID(context.Background(), l.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.ClickCount)
	})

	t.Run("acks a malformed link id", func(t *testing.T) {
		repo := store.NewMemoryRepository()
		handler := clicks.NewIncrementHandler(repo, zap.NewNop())

		event := &clicks.LinkClickedEvent{LinkID: "not-a-uuid", Slug: "desk"}

		assert.NoError(t, handler(context.Background(), event))
	})

	t.Run("acks a click for a deleted link", func(t *testing.T) {
		repo := store.NewMemoryRepository()
		handler := clicks.NewIncrementHandler(repo, zap.NewNop())

		event := &clicks.LinkClickedEvent{LinkID: uuid.NewString(), Slug: "gone"}

		assert.NoError(t, handler(context.Background(), event))
	})

	t.Run("nacks on store failure so the event is redelivered", func(t *testing.T) {
		errStore := errors.New("store down")
		repo := &incrementErrorRepo{Repository: store.NewMemoryRepository(), err: errStore}
		handler := clicks.NewIncrementHandler(repo, zap.NewNop())

		event := &clicks.LinkClickedEvent{LinkID: uuid.NewString(), Slug: "desk"}

		err := handler(context.Background(), event)

		assert.ErrorIs(t, err, errStore)
	})
}
