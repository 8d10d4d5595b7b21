package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/serroba/linkpreview/internal/link"
)

// MemoryRepository is an in-memory implementation of link.Repository,
// used in tests as the store double.
type MemoryRepository struct {
	mu    sync.RWMutex
	links map[uuid.UUID]*link.Link
	seq   map[uuid.UUID]int
	next  int
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		links: make(map[uuid.UUID]*link.Link),
		seq:   make(map[uuid.UUID]int),
	}
}

func (m *MemoryRepository) List(_ context.Context) ([]link.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]link.Link, 0, len(m.links))
	for _, l := range m.links {
		out = append(out, *l)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		// Same timestamp: newest insertion first, to keep ordering stable.
		return m.seq[out[i].ID] > m.seq[out[j].ID]
	})

	return out, nil
}

func (m *MemoryRepository) GetBySlug(_ context.Context, slug string) (*link.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, l := range m.links {
		if l.Slug == slug {
			cp := *l

			return &cp, nil
		}
	}

	return nil, link.ErrNotFound
}

func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*link.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.links[id]
	if !ok {
		return nil, link.ErrNotFound
	}

	cp := *l

	return &cp, nil
}

func (m *MemoryRepository) Create(_ context.Context, l *link.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.links {
		if existing.Slug == l.Slug {
			return link.ErrSlugConflict
		}
	}

	cp := *l
	m.links[l.ID] = &cp
	m.seq[l.ID] = m.next
	m.next++

	return nil
}

func (m *MemoryRepository) Update(_ context.Context, l *link.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.links[l.ID]
	if !ok {
		return link.ErrNotFound
	}

	for _, other := range m.links {
		if other.ID != l.ID && other.Slug == l.Slug {
			return link.ErrSlugConflict
		}
	}

	existing.Slug = l.Slug
	existing.Title = l.Title
	existing.Description = l.Description
	existing.TargetURL = l.TargetURL
	existing.AffiliateURL = l.AffiliateURL
	existing.ImageURL = l.ImageURL
	existing.IsActive = l.IsActive

	l.ClickCount = existing.ClickCount
	l.CreatedAt = existing.CreatedAt

	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.links, id)
	delete(m.seq, id)

	return nil
}

func (m *MemoryRepository) SetActive(_ context.Context, id uuid.UUID, active bool) (*link.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.links[id]
	if !ok {
		return nil, link.ErrNotFound
	}

	l.IsActive = active
	cp := *l

	return &cp, nil
}

func (m *MemoryRepository) IncrementClick(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.links[id]
	if !ok {
		return link.ErrNotFound
	}

	l.ClickCount++

	return nil
}

// Compile-time check.
var _ link.Repository = (*MemoryRepository)(nil)
