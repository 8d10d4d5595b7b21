package link

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the data-access interface to the link record store.
type Repository interface {
	// List returns all links ordered by creation time descending. An empty
	// store yields an empty slice, not an error.
	List(ctx context.Context) ([]Link, error)

	// GetBySlug returns the single link with the given slug, or ErrNotFound.
	GetBySlug(ctx context.Context, slug string) (*Link, error)

	// GetByID returns the link with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Link, error)

	// Create persists a new link. A taken slug yields ErrSlugConflict.
	Create(ctx context.Context, l *Link) error

	// Update replaces the editable fields of an existing link and fills the
	// store-owned fields (ClickCount, CreatedAt) back into l.
	Update(ctx context.Context, l *Link) error

	// Delete removes a link. Deleting an absent id is a success, which keeps
	// the operation idempotent from the caller's perspective.
	Delete(ctx context.Context, id uuid.UUID) error

	// SetActive flips only the activation flag and returns the updated link.
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*Link, error)

	// IncrementClick adds exactly one to the click counter as a single
	// atomic store operation. Concurrent callers must never lose updates,
	// so implementations must not read-modify-write.
	IncrementClick(ctx context.Context, id uuid.UUID) error
}
