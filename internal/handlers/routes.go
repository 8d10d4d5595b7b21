package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the JSON API operations.
func RegisterRoutes(api huma.API, adminH *AdminHandler, publicH *PublicAPI) {
	// Public click tracking; fired once per call-to-action activation.
	huma.Register(api, huma.Operation{
		OperationID:   "track-click",
		Method:        http.MethodPost,
		Path:          "/p/{slug}/click",
		Summary:       "Track a click",
		Description:   "Records one click on the preview's call-to-action.",
		Tags:          []string{"Public"},
		DefaultStatus: http.StatusNoContent,
	}, publicH.TrackClick)

	huma.Register(api, huma.Operation{
		OperationID: "admin-login",
		Method:      http.MethodPost,
		Path:        "/api/admin/login",
		Summary:     "Admin login",
		Tags:        []string{"Admin"},
	}, adminH.Login)

	huma.Register(api, huma.Operation{
		OperationID: "list-links",
		Method:      http.MethodGet,
		Path:        "/api/admin/links",
		Summary:     "List links",
		Tags:        []string{"Admin"},
	}, adminH.ListLinks)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-link",
		Method:        http.MethodDelete,
		Path:          "/api/admin/links/{id}",
		Summary:       "Delete a link",
		Description:   "Deletion is permanent. Deleting an absent id still succeeds.",
		Tags:          []string{"Admin"},
		DefaultStatus: http.StatusNoContent,
	}, adminH.DeleteLink)

	huma.Register(api, huma.Operation{
		OperationID: "set-link-active",
		Method:      http.MethodPost,
		Path:        "/api/admin/links/{id}/active",
		Summary:     "Toggle a link's visibility",
		Tags:        []string{"Admin"},
	}, adminH.SetLinkActive)

	huma.Register(api, huma.Operation{
		OperationID: "editor-state",
		Method:      http.MethodGet,
		Path:        "/api/admin/editor",
		Summary:     "Get the editor state",
		Tags:        []string{"Admin"},
	}, adminH.GetEditor)

	huma.Register(api, huma.Operation{
		OperationID: "editor-start-create",
		Method:      http.MethodPost,
		Path:        "/api/admin/editor",
		Summary:     "Open a fresh draft",
		Tags:        []string{"Admin"},
	}, adminH.StartCreate)

	huma.Register(api, huma.Operation{
		OperationID: "editor-start-edit",
		Method:      http.MethodPost,
		Path:        "/api/admin/editor/edit/{id}",
		Summary:     "Open a draft from an existing link",
		Tags:        []string{"Admin"},
	}, adminH.StartEdit)

	huma.Register(api, huma.Operation{
		OperationID: "editor-set-draft",
		Method:      http.MethodPut,
		Path:        "/api/admin/editor/draft",
		Summary:     "Replace the draft fields",
		Tags:        []string{"Admin"},
	}, adminH.SetDraft)

	huma.Register(api, huma.Operation{
		OperationID: "editor-enrich",
		Method:      http.MethodPost,
		Path:        "/api/admin/editor/enrich",
		Summary:     "Auto-fill the draft from URL metadata",
		Description: "Fetches title, description, and image for the draft's target URL. Failures surface as a warning and leave the draft unchanged.",
		Tags:        []string{"Admin"},
	}, adminH.Enrich)

	huma.Register(api, huma.Operation{
		OperationID: "editor-submit",
		Method:      http.MethodPost,
		Path:        "/api/admin/editor/submit",
		Summary:     "Persist the draft",
		Tags:        []string{"Admin"},
	}, adminH.Submit)

	huma.Register(api, huma.Operation{
		OperationID:   "editor-cancel",
		Method:        http.MethodDelete,
		Path:          "/api/admin/editor",
		Summary:       "Discard the draft",
		Tags:          []string{"Admin"},
		DefaultStatus: http.StatusNoContent,
	}, adminH.CancelEdit)
}

// RegisterPages registers the server-rendered HTML routes. Any path the
// router does not know redirects to the admin login gate.
func RegisterPages(router *chi.Mux, pages *Pages) {
	router.Get("/p/{slug}", pages.Preview)
	router.Get("/admin", pages.Login)
	router.Get("/admin/dashboard", pages.Dashboard)
	router.NotFound(pages.RedirectToAdmin)
}
