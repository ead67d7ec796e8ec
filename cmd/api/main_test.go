// Package main starts the llmarch command line. Its serve command runs an HTTP
// server for the diagram pages, the JSON catalog API and health checks; the
// other commands inspect the same catalog from the terminal.
package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llmarch/core/internal/handlers"
	"github.com/llmarch/core/internal/models"
	"github.com/llmarch/core/internal/registry"
	"github.com/llmarch/core/internal/router"
)

var scenarioContent = fstest.MapFS{
	"catalog.yaml": {Data: []byte(`groups:
  - name: OpenAI
    diagrams: [gpt2]
  - name: Anthropic
    diagrams: [claude2]
`)},
	"diagrams/gpt2.yaml": {Data: []byte(`key: gpt2
title: GPT-2
nodes:
  - {id: "1", kind: input, label: Input Tokens, position: {x: 50, y: 0}}
  - {id: "2", label: Token Embeddings, position: {x: 50, y: 80}}
  - {id: "3", label: Transformer Blocks, position: {x: 50, y: 160}}
  - {id: "4", kind: output, label: Softmax, position: {x: 50, y: 240}}
edges:
  - {id: e1-2, source: "1", target: "2", animated: true}
  - {id: e2-3, source: "2", target: "3", animated: true}
  - {id: e3-4, source: "3", target: "4", animated: true}
`)},
	"diagrams/claude2.yaml": {Data: []byte(`key: claude2
title: Claude 2
nodes:
  - {id: "1", label: Input, position: {x: 0, y: 0}}
  - {id: "2", label: Output, position: {x: 0, y: 100}}
edges:
  - {id: e1-2, source: "1", target: "2"}
`)},
}

func setupRouter(t *testing.T) (*http.ServeMux, *registry.Registry) {
	t.Helper()
	reg, catalog, err := registry.Load(scenarioContent)
	require.NoError(t, err)
	r, err := router.New(reg, catalog)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	mux, err := handlers.NewMux(handlers.Options{
		Registry:    reg,
		Router:      r,
		RendererURL: "https://esm.sh/reactflow@11.11.4",
		Logger:      logger,
	})
	require.NoError(t, err)
	return mux, reg
}

func TestMainRoutes(t *testing.T) {
	mux, _ := setupRouter(t)

	t.Run("health endpoint is accessible", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("api endpoint is accessible", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/diagrams", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("non-existent route returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("root path returns the landing page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestEndToEndFlow(t *testing.T) {
	mux, reg := setupRouter(t)

	t.Run("diagram page mounts every node", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/diagrams/gpt2", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var graph models.FlowGraph
		require.NoError(t, json.NewDecoder(w.Body).Decode(&graph))
		d, err := reg.Get("gpt2")
		require.NoError(t, err)
		assert.Len(t, graph.Nodes, len(d.Nodes))

		page := httptest.NewRecorder()
		mux.ServeHTTP(page, httptest.NewRequest(http.MethodGet, "/gpt2", nil))
		assert.Equal(t, http.StatusOK, page.Code)
		assert.Equal(t, len(d.Nodes), strings.Count(page.Body.String(), `"position":`))
	})

	t.Run("unknown key mounts not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/not-a-real-key", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Diagram not found")
	})

	t.Run("landing lists exactly the registered diagrams", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		body := w.Body.String()
		assert.Equal(t, 2, strings.Count(body, `<li><a href="/`))
		assert.Contains(t, body, `<a href="/gpt2">GPT-2</a>`)
		assert.Contains(t, body, `<a href="/claude2">Claude 2</a>`)
	})

	t.Run("health reflects the last navigation", func(t *testing.T) {
		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/claude2", nil))

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		var response handlers.HealthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "diagram", response.Details["current_view"])
		assert.Equal(t, "2", response.Details["diagrams"])
	})
}
