package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/serroba/linkpreview/internal/admin"
	"github.com/serroba/linkpreview/internal/auth"
	"github.com/serroba/linkpreview/internal/link"
	"go.uber.org/zap"
)

// AdminHandler serves the dashboard's JSON API: login, link listing and
// mutation, and the create/edit draft workflow.
type AdminHandler struct {
	service  *link.Service
	editor   *admin.Editor
	sessions auth.SessionProvider
	logger   *zap.Logger
}

// NewAdminHandler creates the admin API handler.
func NewAdminHandler(
	service *link.Service,
	editor *admin.Editor,
	sessions auth.SessionProvider,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		service:  service,
		editor:   editor,
		sessions: sessions,
		logger:   logger,
	}
}

// Login checks the shared password and sets the session cookie.
func (h *AdminHandler) Login(_ context.Context, req *LoginRequest) (*LoginResponse, error) {
	token, err := h.sessions.Issue(req.Body.Password)
	if err != nil {
		return nil, huma.Error401Unauthorized("invalid password")
	}

	return &LoginResponse{
		SetCookie: http.Cookie{
			Name:     auth.CookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}, nil
}

// ListLinks returns all links, newest first.
func (h *AdminHandler) ListLinks(ctx context.Context, _ *struct{}) (*ListLinksResponse, error) {
	links, err := h.service.List(ctx)
	if err != nil {
		return nil, h.mapErr(err)
	}

	resp := &ListLinksResponse{}
	resp.Body.Links = make([]LinkPayload, 0, len(links))

	for i := range links {
		resp.Body.Links = append(resp.Body.Links, toLinkPayload(&links[i]))
	}

	return resp, nil
}

// DeleteLink removes a link permanently. Deleting an id that is already
// gone still answers 204.
func (h *AdminHandler) DeleteLink(ctx context.Context, req *LinkIDRequest) (*struct{}, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid link id")
	}

	if err := h.service.Delete(ctx, id); err != nil {
		return nil, h.mapErr(err)
	}

	return &struct{}{}, nil
}

// SetLinkActive toggles public visibility of a link.
func (h *AdminHandler) SetLinkActive(ctx context.Context, req *SetActiveRequest) (*LinkResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid link id")
	}

	l, err := h.service.SetActive(ctx, id, req.Body.Active)
	if err != nil {
		return nil, h.mapErr(err)
	}

	resp := &LinkResponse{}
	resp.Body.Link = toLinkPayload(l)

	return resp, nil
}

// StartCreate opens a fresh draft.
func (h *AdminHandler) StartCreate(_ context.Context, _ *struct{}) (*EditorResponse, error) {
	h.editor.StartCreate()

	return h.editorResponse(), nil
}

// StartEdit opens a draft pre-populated from an existing link.
func (h *AdminHandler) StartEdit(ctx context.Context, req *LinkIDRequest) (*EditorResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid link id")
	}

	l, err := h.service.GetByID(ctx, id)
	if err != nil {
		return nil, h.mapErr(err)
	}

	h.editor.StartEdit(l)

	return h.editorResponse(), nil
}

// GetEditor reports the current editor state and draft.
func (h *AdminHandler) GetEditor(_ context.Context, _ *struct{}) (*EditorResponse, error) {
	return h.editorResponse(), nil
}

// SetDraft replaces the open draft's fields with the operator's input.
func (h *AdminHandler) SetDraft(_ context.Context, req *SetDraftRequest) (*EditorResponse, error) {
	if err := h.editor.SetDraft(req.Body.toDraft()); err != nil {
		return nil, h.mapErr(err)
	}

	return h.editorResponse(), nil
}

// Enrich merges unfurled metadata into the draft. Enrichment failure is a
// warning, not an error: the response still carries the unchanged draft.
func (h *AdminHandler) Enrich(ctx context.Context, _ *struct{}) (*EnrichResponse, error) {
	draft, err := h.editor.Enrich(ctx)
	if err != nil && errors.Is(err, admin.ErrNotEditing) {
		return nil, h.mapErr(err)
	}

	resp := &EnrichResponse{}
	resp.Body.Draft = toDraftPayload(draft)

	if err != nil {
		var ve *link.ValidationError
		if errors.As(err, &ve) {
			resp.Body.Warning = ve.Message
		} else {
			resp.Body.Warning = "could not fetch metadata, please fill the form manually"
		}
	}

	return resp, nil
}

// Submit persists the draft; on failure the draft stays open.
func (h *AdminHandler) Submit(ctx context.Context, _ *struct{}) (*LinkResponse, error) {
	l, err := h.editor.Submit(ctx)
	if err != nil {
		return nil, h.mapErr(err)
	}

	resp := &LinkResponse{}
	resp.Body.Link = toLinkPayload(l)

	return resp, nil
}

// CancelEdit discards the open draft.
func (h *AdminHandler) CancelEdit(_ context.Context, _ *struct{}) (*struct{}, error) {
	h.editor.Cancel()

	return &struct{}{}, nil
}

func (h *AdminHandler) editorResponse() *EditorResponse {
	resp := &EditorResponse{}
	resp.Body.Editing = h.editor.State() == admin.StateEditing
	resp.Body.Draft = toDraftPayload(h.editor.Draft())

	return resp
}

// mapErr translates domain errors to API errors. Store failures become a
// generic message; details stay in the logs.
func (h *AdminHandler) mapErr(err error) error {
	var ve *link.ValidationError

	switch {
	case errors.As(err, &ve):
		return huma.Error422UnprocessableEntity(ve.Error())
	case errors.Is(err, link.ErrSlugConflict):
		return huma.Error409Conflict("slug already in use")
	case errors.Is(err, link.ErrNotFound):
		return huma.Error404NotFound("link does not exist")
	case errors.Is(err, admin.ErrNotEditing):
		return huma.Error409Conflict("no draft in progress")
	default:
		h.logger.Error("admin operation failed", zap.Error(err))

		return huma.Error500InternalServerError("something went wrong")
	}
}
