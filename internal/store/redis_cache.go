package store

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/linkpreview/internal/link"
)

// CachedRepository wraps a link.Repository with a Redis cache for the
// public slug-resolution path. Cached copies are disposable: every
// mutation invalidates the affected slug so the next read re-fetches from
// the store. Cache failures degrade to plain store reads.
type CachedRepository struct {
	store  link.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCachedRepository creates a Redis-cached repository decorator.
func NewCachedRepository(store link.Repository, client *redis.Client, ttl time.Duration) *CachedRepository {
	return &CachedRepository{
		store:  store,
		client: client,
		prefix: "link:slug:",
		ttl:    ttl,
	}
}

// List always reads from the store; the dashboard must see fresh counters.
func (r *CachedRepository) List(ctx context.Context) ([]link.Link, error) {
	return r.store.List(ctx)
}

func (r *CachedRepository) GetBySlug(ctx context.Context, slug string) (*link.Link, error) {
	if l, err := r.getFromCache(ctx, slug); err == nil {
		return l, nil
	}

	l, err := r.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, l)

	return l, nil
}

func (r *CachedRepository) GetByID(ctx context.Context, id uuid.UUID) (*link.Link, error) {
	return r.store.GetByID(ctx, id)
}

func (r *CachedRepository) Create(ctx context.Context, l *link.Link) error {
	if err := r.store.Create(ctx, l); err != nil {
		return err
	}

	r.cacheLink(ctx, l)

	return nil
}

func (r *CachedRepository) Update(ctx context.Context, l *link.Link) error {
	// The slug may change in an update, so the old slug's cache entry has
	// to go too. Fetch it before the write.
	oldSlug := ""
	if existing, err := r.store.GetByID(ctx, l.ID); err == nil {
		oldSlug = existing.Slug
	}

	if err := r.store.Update(ctx, l); err != nil {
		return err
	}

	if oldSlug != "" && oldSlug != l.Slug {
		r.invalidate(ctx, oldSlug)
	}

	r.invalidate(ctx, l.Slug)

	return nil
}

func (r *CachedRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if existing, err := r.store.GetByID(ctx, id); err == nil {
		r.invalidate(ctx, existing.Slug)
	}

	return r.store.Delete(ctx, id)
}

func (r *CachedRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) (*link.Link, error) {
	l, err := r.store.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, l.Slug)

	return l, nil
}

// IncrementClick delegates straight to the store. The cached copy's
// counter may lag behind, which is harmless: the public card never shows
// it and the dashboard lists bypass the cache.
func (r *CachedRepository) IncrementClick(ctx context.Context, id uuid.UUID) error {
	return r.store.IncrementClick(ctx, id)
}

func (r *CachedRepository) getFromCache(ctx context.Context, slug string) (*link.Link, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+slug).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, link.ErrNotFound
	}

	id, err := uuid.Parse(result["id"])
	if err != nil {
		return nil, err
	}

	l := &link.Link{
		ID:           id,
		Slug:         result["slug"],
		Title:        result["title"],
		Description:  result["description"],
		TargetURL:    result["target_url"],
		AffiliateURL: result["affiliate_url"],
		ImageURL:     result["image_url"],
		IsActive:     result["is_active"] == "1",
	}

	if n, err := strconv.ParseInt(result["click_count"], 10, 64); err == nil {
		l.ClickCount = n
	}

	if nanos, err := strconv.ParseInt(result["created_at"], 10, 64); err == nil {
		l.CreatedAt = time.Unix(0, nanos).UTC()
	}

	return l, nil
}

func (r *CachedRepository) cacheLink(ctx context.Context, l *link.Link) {
	active := "0"
	if l.IsActive {
		active = "1"
	}

	key := r.prefix + l.Slug

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"id":            l.ID.String(),
		"slug":          l.Slug,
		"title":         l.Title,
		"description":   l.Description,
		"target_url":    l.TargetURL,
		"affiliate_url": l.AffiliateURL,
		"image_url":     l.ImageURL,
		"is_active":     active,
		"click_count":   l.ClickCount,
		"created_at":    l.CreatedAt.UnixNano(),
	})

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	_, _ = pipe.Exec(ctx)
}

func (r *CachedRepository) invalidate(ctx context.Context, slug string) {
	_ = r.client.Del(ctx, r.prefix+slug).Err()
}

// Compile-time check.
var _ link.Repository = (*CachedRepository)(nil)
