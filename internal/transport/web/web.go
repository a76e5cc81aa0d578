// Package web serves the embedded browser front end: one page with an
// article submission form and a search form talking to the JSON API.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/index.html
var templates embed.FS

//go:embed static
var static embed.FS

type pageData struct {
	IndexName string
}

// Handler serves the front-end page and its static assets.
type Handler struct {
	tmpl      *template.Template
	indexName string
	logger    *zap.Logger
}

// NewHandler parses the embedded templates.
func NewHandler(indexName string, logger *zap.Logger) (*Handler, error) {
	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &Handler{tmpl: tmpl, indexName: indexName, logger: logger}, nil
}

// Index renders the single-page front end.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, pageData{IndexName: h.indexName}); err != nil {
		h.logger.Error("render index page", zap.Error(err))
	}
}

// Static serves the embedded assets under /static/.
func (h *Handler) Static() http.Handler {
	return http.FileServer(http.FS(static))
}
