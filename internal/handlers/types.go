package handlers

import (
	"net/http"
	"time"

	"github.com/serroba/linkpreview/internal/link"
)

// LinkPayload is the JSON representation of a link in admin responses.
type LinkPayload struct {
	ID           string    `doc:"Link id"                                json:"id"`
	Slug         string    `doc:"Public slug"                            json:"slug"`
	Title        string    `doc:"Title shown on the preview card"        json:"title"`
	Description  string    `doc:"Optional description"                   json:"description,omitempty"`
	TargetURL    string    `doc:"Original (non-monetized) destination"   json:"targetUrl"`
	AffiliateURL string    `doc:"Monetized destination"                  json:"affiliateUrl"`
	ImageURL     string    `doc:"Optional card image"                    json:"imageUrl,omitempty"`
	IsActive     bool      `doc:"Whether the public page is live"        json:"isActive"`
	ClickCount   int64     `doc:"Number of tracked clicks"               json:"clickCount"`
	CreatedAt    time.Time `doc:"Creation time"                          json:"createdAt"`
}

func toLinkPayload(l *link.Link) LinkPayload {
	return LinkPayload{
		ID:           l.ID.String(),
		Slug:         l.Slug,
		Title:        l.Title,
		Description:  l.Description,
		TargetURL:    l.TargetURL,
		AffiliateURL: l.AffiliateURL,
		ImageURL:     l.ImageURL,
		IsActive:     l.IsActive,
		ClickCount:   l.ClickCount,
		CreatedAt:    l.CreatedAt,
	}
}

// DraftPayload carries the editable fields of the editor's draft.
type DraftPayload struct {
	Slug         string `doc:"Custom slug, auto-generated when empty" json:"slug,omitempty"`
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	TargetURL    string `json:"targetUrl,omitempty"`
	AffiliateURL string `json:"affiliateUrl,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	IsActive     bool   `json:"isActive,omitempty"`
}

func toDraftPayload(d link.Draft) DraftPayload {
	return DraftPayload{
		Slug:         d.Slug,
		Title:        d.Title,
		Description:  d.Description,
		TargetURL:    d.TargetURL,
		AffiliateURL: d.AffiliateURL,
		ImageURL:     d.ImageURL,
		IsActive:     d.IsActive,
	}
}

func (p DraftPayload) toDraft() link.Draft {
	return link.Draft{
		Slug:         p.Slug,
		Title:        p.Title,
		Description:  p.Description,
		TargetURL:    p.TargetURL,
		AffiliateURL: p.AffiliateURL,
		ImageURL:     p.ImageURL,
		IsActive:     p.IsActive,
	}
}

// LoginRequest is the admin login request.
type LoginRequest struct {
	Body struct {
		Password string `doc:"Shared admin password" json:"password"`
	}
}

// LoginResponse sets the admin session cookie.
type LoginResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
}

// ListLinksResponse is the admin link listing, newest first.
type ListLinksResponse struct {
	Body struct {
		Links []LinkPayload `json:"links"`
	}
}

// LinkIDRequest addresses a single link by id.
type LinkIDRequest struct {
	ID string `doc:"Link id" path:"id"`
}

// SetActiveRequest toggles a link's public visibility.
type SetActiveRequest struct {
	ID   string `doc:"Link id" path:"id"`
	Body struct {
		Active bool `doc:"Desired activation state" json:"active"`
	}
}

// LinkResponse returns a single link.
type LinkResponse struct {
	Body struct {
		Link LinkPayload `json:"link"`
	}
}

// EditorResponse reports the editor's state and current draft.
type EditorResponse struct {
	Body struct {
		Editing bool         `doc:"Whether a draft is open" json:"editing"`
		Draft   DraftPayload `json:"draft"`
	}
}

// SetDraftRequest replaces the open draft's fields.
type SetDraftRequest struct {
	Body DraftPayload
}

// EnrichResponse returns the draft after metadata enrichment. Warning is
// set when the enrichment call failed; the draft is then unchanged.
type EnrichResponse struct {
	Body struct {
		Draft   DraftPayload `json:"draft"`
		Warning string       `json:"warning,omitempty"`
	}
}

// TrackClickRequest records a click on a preview's call-to-action.
type TrackClickRequest struct {
	Slug string `doc:"Public slug" path:"slug"`
}

// TrackClickResponse is empty; the endpoint answers 204.
type TrackClickResponse struct{}
