// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/llmarch/core/internal/models"
	"github.com/llmarch/core/internal/parser"
	"github.com/llmarch/core/internal/router"
)

type ListResponse struct {
	Diagrams []models.Summary `json:"diagrams"`
	Groups   []models.Section `json:"groups"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// API serves the diagram catalog as JSON and text exports.
type API struct {
	diagrams router.Lookup
	sections []models.Section
	logger   *logrus.Logger
}

func NewAPI(diagrams router.Lookup, sections []models.Section, logger *logrus.Logger) *API {
	return &API{diagrams: diagrams, sections: sections, logger: logger}
}

// ListHandler serves GET /api/diagrams.
func (a *API) ListHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	a.writeJSON(w, r, http.StatusOK, ListResponse{
		Diagrams: a.diagrams.List(),
		Groups:   a.sections,
	})
}

// DiagramHandler serves GET /api/diagrams/{key} as the renderer graph, or
// as DOT or Mermaid text when ?format= asks for it.
func (a *API) DiagramHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key := r.PathValue("key")
	d, err := a.diagrams.Get(key)
	if err != nil {
		var nf *models.NotFoundError
		if errors.As(err, &nf) {
			a.logger.WithField("key", key).Debug("diagram not found")
			a.writeJSON(w, r, http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		a.logger.WithError(err).Error("failed to look up diagram")
		a.writeJSON(w, r, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "", "json":
		a.writeJSON(w, r, http.StatusOK, parser.BuildFlow(d))
		return
	}

	exporter := parser.ExporterFor(format)
	if exporter == nil {
		a.writeJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: "unsupported format: " + format})
		return
	}
	out, err := exporter.Generate(d)
	if err != nil {
		a.logger.WithError(err).WithField("key", key).Error("failed to export diagram")
		a.writeJSON(w, r, http.StatusInternalServerError, ErrorResponse{Error: "export failed"})
		return
	}

	contentType := "text/plain; charset=utf-8"
	if format == "dot" {
		contentType = "text/vnd.graphviz; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(out)); err != nil {
		a.logger.WithError(err).Debug("failed to write export")
	}
}

// writeJSON encodes v before committing status, so an encoding failure is
// reported as a 500 rather than a truncated body.
func (a *API) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if r.URL.Query().Get("pretty") == "true" {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(v); err != nil {
		a.logger.WithError(err).WithField("path", r.URL.Path).Error("failed to encode response")
		buf.Reset()
		status = http.StatusInternalServerError
		json.NewEncoder(&buf).Encode(ErrorResponse{Error: "internal server error"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.WithError(err).Debug("failed to write response")
	}
}
