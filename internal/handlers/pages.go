// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/llmarch/core/internal/models"
	"github.com/llmarch/core/internal/router"
)

// StylesheetURL is the renderer stylesheet matching config.DefaultRendererURL.
const StylesheetURL = "https://esm.sh/reactflow@11.11.4/dist/style.css"

//go:embed templates/*.html
var templateFiles embed.FS

type landingPage struct {
	Title    string
	Sections []models.Section
}

type diagramPage struct {
	Title         string
	Key           string
	GraphJSON     template.JS
	RendererURL   string
	StylesheetURL string
}

type notFoundPage struct {
	Title string
	Path  string
}

// Pages serves the HTML shell for every navigation path. Each request is a
// navigation event on the shared selector.
type Pages struct {
	selector    *router.Selector
	rendererURL string
	logger      *logrus.Logger

	landing  *template.Template
	diagram  *template.Template
	notFound *template.Template
}

func NewPages(selector *router.Selector, rendererURL string, logger *logrus.Logger) (*Pages, error) {
	p := &Pages{selector: selector, rendererURL: rendererURL, logger: logger}
	for name, dst := range map[string]**template.Template{
		"landing.html":  &p.landing,
		"diagram.html":  &p.diagram,
		"notfound.html": &p.notFound,
	} {
		t, err := template.ParseFS(templateFiles, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		*dst = t
	}
	return p, nil
}

func (p *Pages) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	view := p.selector.Navigate(r.URL.Path)

	var (
		tmpl   *template.Template
		data   any
		status = http.StatusOK
	)
	switch view.State {
	case router.Landing:
		tmpl, data = p.landing, landingPage{Title: "Home", Sections: view.Sections}
	case router.DiagramView:
		graphJSON, err := json.Marshal(view.Flow)
		if err != nil {
			p.logger.WithError(err).WithField("key", view.Key).Error("failed to encode diagram")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		tmpl, data = p.diagram, diagramPage{
			Title:         view.Diagram.Title,
			Key:           view.Key,
			GraphJSON:     template.JS(graphJSON),
			RendererURL:   p.rendererURL,
			StylesheetURL: StylesheetURL,
		}
	default:
		p.logger.WithField("path", view.Path).Debug("diagram not found")
		tmpl, data, status = p.notFound, notFoundPage{Title: "Not found", Path: view.Path}, http.StatusNotFound
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		p.logger.WithError(err).WithField("path", view.Path).Error("failed to render page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		p.logger.WithError(err).Debug("failed to write page")
	}
}
