package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/serroba/linkpreview/internal/auth"
	"github.com/serroba/linkpreview/internal/clicks"
	"github.com/serroba/linkpreview/internal/link"
	"github.com/serroba/linkpreview/internal/messaging"
	"github.com/serroba/linkpreview/internal/web"
	"go.uber.org/zap"
)

// PublicAPI handles the visitor-facing click tracking endpoint.
type PublicAPI struct {
	service      *link.Service
	publishClick messaging.Publish[clicks.LinkClickedEvent]
	logger       *zap.Logger
}

// NewPublicAPI creates the public API handler.
func NewPublicAPI(
	service *link.Service,
	publishClick messaging.Publish[clicks.LinkClickedEvent],
	logger *zap.Logger,
) *PublicAPI {
	return &PublicAPI{
		service:      service,
		publishClick: publishClick,
		logger:       logger,
	}
}

// TrackClick publishes exactly one click event for an active link. The
// consumer turns each event into one atomic counter increment, so the
// visitor's response never waits on the database write.
func (h *PublicAPI) TrackClick(ctx context.Context, req *TrackClickRequest) (*TrackClickResponse, error) {
	res := h.service.Resolve(ctx, req.Slug)
	if res.State != link.StateFound {
		return nil, huma.Error404NotFound("link not found")
	}

	event := &clicks.LinkClickedEvent{
		LinkID:     res.Link.ID.String(),
		Slug:       res.Link.Slug,
		OccurredAt: time.Now().UTC(),
	}

	if err := h.publishClick(event); err != nil {
		h.logger.Error("failed to publish click event",
			zap.String("slug", res.Link.Slug),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("something went wrong")
	}

	return &TrackClickResponse{}, nil
}

// Pages serves the server-rendered HTML: the public preview card and the
// admin login/dashboard shells.
type Pages struct {
	service  *link.Service
	renderer *web.Renderer
	sessions auth.SessionProvider
}

// NewPages creates the HTML page handler.
func NewPages(service *link.Service, renderer *web.Renderer, sessions auth.SessionProvider) *Pages {
	return &Pages{
		service:  service,
		renderer: renderer,
		sessions: sessions,
	}
}

// Preview renders the page for a public slug. Missing records and store
// failures render the same not-found page.
func (p *Pages) Preview(w http.ResponseWriter, r *http.Request) {
	res := p.service.Resolve(r.Context(), chi.URLParam(r, "slug"))

	switch res.State {
	case link.StateFound:
		p.renderer.Preview(w, res.Link)
	case link.StateInactive:
		p.renderer.Inactive(w)
	default:
		p.renderer.NotFound(w)
	}
}

// Login renders the admin login gate; a valid session goes straight to the
// dashboard.
func (p *Pages) Login(w http.ResponseWriter, r *http.Request) {
	if p.hasSession(r) {
		http.Redirect(w, r, "/admin/dashboard", http.StatusFound)

		return
	}

	p.renderer.Login(w)
}

// Dashboard renders the dashboard shell for an authenticated operator.
func (p *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	if !p.hasSession(r) {
		http.Redirect(w, r, "/admin", http.StatusFound)

		return
	}

	p.renderer.Dashboard(w)
}

// RedirectToAdmin sends any unmatched path to the login gate.
func (p *Pages) RedirectToAdmin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (p *Pages) hasSession(r *http.Request) bool {
	cookie, err := r.Cookie(auth.CookieName)
	if err != nil {
		return false
	}

	return p.sessions.Verify(cookie.Value) == nil
}
