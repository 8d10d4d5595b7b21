// Package admin holds the dashboard's create/edit workflow.
package admin

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/serroba/linkpreview/internal/link"
	"github.com/serroba/linkpreview/internal/unfurl"
	"go.uber.org/zap"
)

// ErrNotEditing is returned when a draft operation is attempted without an
// open draft.
var ErrNotEditing = errors.New("no draft in progress")

// State is the editor's position in its workflow.
type State int

const (
	// StateIdle means no draft is open.
	StateIdle State = iota
	// StateEditing means a draft is open for creation or editing.
	StateEditing
)

// Unfurler fetches URL metadata for draft enrichment.
type Unfurler interface {
	Unfurl(ctx context.Context, rawURL string) (*unfurl.Metadata, error)
}

// Editor is the dashboard's draft state machine: Idle, then StartCreate or
// StartEdit opens a draft, then Submit either persists it and returns to
// Idle or keeps the draft open with the surfaced error. There is a single
// operator, so one editor instance serves the whole admin session; the
// mutex only guards against overlapping HTTP requests.
type Editor struct {
	mu       sync.Mutex
	service  *link.Service
	unfurler Unfurler
	logger   *zap.Logger

	state     State
	draft     link.Draft
	editingID uuid.UUID
	editing   bool
}

// NewEditor creates an idle editor.
func NewEditor(service *link.Service, unfurler Unfurler, logger *zap.Logger) *Editor {
	return &Editor{
		service:  service,
		unfurler: unfurler,
		logger:   logger,
	}
}

// State returns the current workflow state.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// Draft returns a copy of the current draft.
func (e *Editor) Draft() link.Draft {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.draft
}

// EditingID returns the id of the link being edited and whether the open
// draft is an edit rather than a create.
func (e *Editor) EditingID() (uuid.UUID, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.editingID, e.editing
}

// StartCreate opens a fresh draft with default values.
func (e *Editor) StartCreate() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = StateEditing
	e.draft = link.NewDraft()
	e.editingID = uuid.Nil
	e.editing = false
}

// StartEdit opens a draft pre-populated from an existing link.
func (e *Editor) StartEdit(l *link.Link) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = StateEditing
	e.draft = link.Draft{
		Slug:         l.Slug,
		Title:        l.Title,
		Description:  l.Description,
		TargetURL:    l.TargetURL,
		AffiliateURL: l.AffiliateURL,
		ImageURL:     l.ImageURL,
		IsActive:     l.IsActive,
	}
	e.editingID = l.ID
	e.editing = true
}

// SetDraft replaces the draft's fields with the operator's input.
func (e *Editor) SetDraft(d link.Draft) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateEditing {
		return ErrNotEditing
	}

	e.draft = d

	return nil
}

// Enrich fetches metadata for the draft's target URL and merges it in:
// title and description fill only empty fields, a returned image always
// replaces the draft's image. On failure the draft is left untouched and
// the error is surfaced as a warning, never blocking manual completion.
func (e *Editor) Enrich(ctx context.Context) (link.Draft, error) {
	e.mu.Lock()

	if e.state != StateEditing {
		e.mu.Unlock()

		return link.Draft{}, ErrNotEditing
	}

	target := e.draft.TargetURL
	e.mu.Unlock()

	if !link.IsValidURL(target) {
		return e.Draft(), &link.ValidationError{
			Field:   "target_url",
			Message: "enter a valid target URL before fetching metadata",
		}
	}

	// The store is not touched while this call is in flight; an abandoned
	// request leaves the draft unchanged.
	md, err := e.unfurler.Unfurl(ctx, target)
	if err != nil {
		e.logger.Warn("metadata fetch failed",
			zap.String("url", target),
			zap.Error(err),
		)

		return e.Draft(), err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateEditing {
		return e.draft, ErrNotEditing
	}

	if e.draft.Title == "" && md.Title != "" {
		e.draft.Title = md.Title
	}

	if e.draft.Description == "" && md.Description != "" {
		e.draft.Description = md.Description
	}

	if md.ImageURL != "" {
		e.draft.ImageURL = md.ImageURL
	}

	return e.draft, nil
}

// Submit persists the draft. On success the editor returns to Idle; on any
// validation or store error it stays in Editing so the operator can fix
// the form and retry.
func (e *Editor) Submit(ctx context.Context) (*link.Link, error) {
	e.mu.Lock()

	if e.state != StateEditing {
		e.mu.Unlock()

		return nil, ErrNotEditing
	}

	draft := e.draft
	id := e.editingID
	editing := e.editing
	e.mu.Unlock()

	var (
		l   *link.Link
		err error
	)

	if editing {
		l, err = e.service.Update(ctx, id, draft)
	} else {
		l, err = e.service.Create(ctx, draft)
	}

	if err != nil {
		return nil, err
	}

	e.Cancel()

	return l, nil
}

// Cancel discards the draft and returns the editor to Idle.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = StateIdle
	e.draft = link.Draft{}
	e.editingID = uuid.Nil
	e.editing = false
}
