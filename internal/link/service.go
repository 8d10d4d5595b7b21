package link

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxSlugAttempts bounds the regeneration retry when a generated slug
// collides with an existing one.
const maxSlugAttempts = 3

// Service orchestrates link operations on top of a Repository. Validation
// happens before any store contact; slug uniqueness is enforced by the
// store and recovered here via bounded regeneration.
type Service struct {
	repo    Repository
	newSlug Generator
	logger  *zap.Logger
}

// NewService creates a link service.
func NewService(repo Repository, gen Generator, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		newSlug: gen,
		logger:  logger,
	}
}

// List returns all links, newest first.
func (s *Service) List(ctx context.Context) ([]Link, error) {
	return s.repo.List(ctx)
}

// GetByID returns a single link by id.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Link, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the draft and persists a new link. When the draft has no
// slug, one is generated; on a slug conflict a fresh slug is generated up to
// maxSlugAttempts times. A conflict on an operator-supplied slug is returned
// as-is so the operator can pick another.
func (s *Service) Create(ctx context.Context, draft Draft) (*Link, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	generated := draft.Slug == ""

	slug := draft.Slug

	for attempt := 1; ; attempt++ {
		if generated {
			slug = s.newSlug()
		}

		l := &Link{
			ID:           uuid.New(),
			Slug:         slug,
			Title:        draft.Title,
			Description:  draft.Description,
			TargetURL:    draft.TargetURL,
			AffiliateURL: draft.AffiliateURL,
			ImageURL:     draft.ImageURL,
			IsActive:     draft.IsActive,
			CreatedAt:    time.Now().UTC(),
		}

		err := s.repo.Create(ctx, l)
		if err == nil {
			return l, nil
		}

		if !errors.Is(err, ErrSlugConflict) || !generated || attempt >= maxSlugAttempts {
			return nil, err
		}

		s.logger.Warn("generated slug collided, retrying",
			zap.String("slug", slug),
			zap.Int("attempt", attempt),
		)
	}
}

// Update validates the draft and replaces the editable fields of the link
// with the given id. Changing the slug is allowed; previously shared URLs
// for the old slug stop resolving.
func (s *Service) Update(ctx context.Context, id uuid.UUID, draft Draft) (*Link, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	slug := draft.Slug
	if slug == "" {
		slug = s.newSlug()
	}

	l := &Link{
		ID:           id,
		Slug:         slug,
		Title:        draft.Title,
		Description:  draft.Description,
		TargetURL:    draft.TargetURL,
		AffiliateURL: draft.AffiliateURL,
		ImageURL:     draft.ImageURL,
		IsActive:     draft.IsActive,
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

// Delete removes a link. Deleting an id that no longer exists reports
// success, which avoids double-confirmation races in the dashboard.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// SetActive toggles public visibility without touching any other field.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*Link, error) {
	return s.repo.SetActive(ctx, id, active)
}

// IncrementClick records one click through the store's atomic counter.
func (s *Service) IncrementClick(ctx context.Context, id uuid.UUID) error {
	return s.repo.IncrementClick(ctx, id)
}

// RenderState is the public resolver's decision for a slug.
type RenderState int

const (
	// StateNotFound covers both a missing record and a store failure;
	// visitors cannot tell the two apart.
	StateNotFound RenderState = iota
	// StateInactive means the record exists but is not publicly visible.
	StateInactive
	// StateFound means the preview card should be rendered.
	StateFound
)

// Resolution is the outcome of resolving a public slug.
type Resolution struct {
	State RenderState
	Link  *Link
}

// Resolve maps a slug to a render decision. Store errors are logged and
// presented identically to a missing record.
func (s *Service) Resolve(ctx context.Context, slug string) Resolution {
	l, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("slug lookup failed",
				zap.String("slug", slug),
				zap.Error(err),
			)
		}

		return Resolution{State: StateNotFound}
	}

	if !l.IsActive {
		return Resolution{State: StateInactive, Link: l}
	}

	return Resolution{State: StateFound, Link: l}
}
