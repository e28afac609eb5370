// Package rest is the storefront-facing HTTP surface of the plugin: the
// admin configuration form, the shopper card form, checkout dispatch and
// the hosted-page return endpoint.
package rest

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// Templates holds the parsed page templates.
type Templates struct {
	set *template.Template
}

func LoadTemplates() (*Templates, error) {
	set, err := template.ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Templates{set: set}, nil
}

// Render writes one named template, falling back to a bare 500 when the
// template itself fails mid-write.
func (t *Templates) Render(w http.ResponseWriter, logger *slog.Logger, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.set.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("template render failed", "template", name, "error", err)
	}
}
