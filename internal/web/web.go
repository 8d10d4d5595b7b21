// Package web renders the server-side HTML pages: the public preview card
// and the admin login/dashboard shells. Styling is intentionally minimal.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/serroba/linkpreview/internal/link"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// redirectDelayMS delays the same-tab redirect to the affiliate URL after
// a click. The delay is a UI timing workaround only: it gives the browser
// time to process the new-tab navigation to the target URL before the
// current tab moves on. Nothing else may rely on it.
const redirectDelayMS = 150

// Renderer renders the embedded HTML templates.
type Renderer struct {
	tmpl   *template.Template
	logger *zap.Logger
}

// NewRenderer parses the embedded templates.
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Renderer{tmpl: tmpl, logger: logger}, nil
}

type previewData struct {
	Link            *link.Link
	RedirectDelayMS int
}

// Preview renders the product card for an active link.
func (r *Renderer) Preview(w http.ResponseWriter, l *link.Link) {
	r.render(w, http.StatusOK, "preview.html", previewData{
		Link:            l,
		RedirectDelayMS: redirectDelayMS,
	})
}

// Inactive renders the page for a link that exists but is switched off.
func (r *Renderer) Inactive(w http.ResponseWriter) {
	r.render(w, http.StatusOK, "inactive.html", nil)
}

// NotFound renders the page for a missing slug. Store failures render the
// same page so visitors learn nothing about backend health.
func (r *Renderer) NotFound(w http.ResponseWriter) {
	r.render(w, http.StatusNotFound, "notfound.html", nil)
}

// Login renders the admin login gate.
func (r *Renderer) Login(w http.ResponseWriter) {
	r.render(w, http.StatusOK, "login.html", nil)
}

// Dashboard renders the admin dashboard shell; the page talks to the JSON
// API for data.
func (r *Renderer) Dashboard(w http.ResponseWriter) {
	r.render(w, http.StatusOK, "dashboard.html", nil)
}

func (r *Renderer) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		r.logger.Error("template render failed",
			zap.String("template", name),
			zap.Error(err),
		)
	}
}
