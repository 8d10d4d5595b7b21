package clicks

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/serroba/linkpreview/internal/link"
	"github.com/serroba/linkpreview/internal/messaging"
	"go.uber.org/zap"
)

// NewIncrementHandler returns a handler that turns each click event into
// one atomic counter increment. A malformed id or a click for a link that
// was deleted in the meantime is logged and acked; redelivering those
// cannot succeed.
func NewIncrementHandler(repo link.Repository, logger *zap.Logger) messaging.Handler[LinkClickedEvent] {
	return func(ctx context.Context, event *LinkClickedEvent) error {
		id, err := uuid.Parse(event.LinkID)
		if err != nil {
			logger.Warn("click event with malformed link id",
				zap.String("linkId", event.LinkID),
				zap.String("slug", event.Slug),
			)

			return nil
		}

		err = repo.IncrementClick(ctx, id)
		if errors.Is(err, link.ErrNotFound) {
			logger.Warn("click event for missing link",
				zap.String("linkId", event.LinkID),
				zap.String("slug", event.Slug),
			)

			return nil
		}

		if err != nil {
			return err
		}

		logger.Debug("click recorded",
			zap.String("linkId", event.LinkID),
			zap.String("slug", event.Slug),
		)

		return nil
	}
}
