// Package router maps navigation paths to the view that should be mounted:
// the landing catalog, one diagram, or the not-found page.
package router

import (
	"strings"

	"github.com/llmarch/core/internal/models"
	"github.com/llmarch/core/internal/parser"
	"github.com/llmarch/core/internal/registry"
)

type State int

const (
	Landing State = iota
	DiagramView
	NotFound
)

func (s State) String() string {
	switch s {
	case Landing:
		return "landing"
	case DiagramView:
		return "diagram"
	case NotFound:
		return "not_found"
	}
	return "unknown"
}

// View is the display resolved for one navigation. Only the fields of its
// State are set: Sections for Landing, Diagram and Flow for DiagramView, Key
// for DiagramView and NotFound.
type View struct {
	State    State
	Path     string
	Key      string
	Sections []models.Section
	Diagram  *models.Diagram
	Flow     *models.FlowGraph
}

// Lookup is the part of the registry the router reads.
type Lookup interface {
	Get(key string) (*models.Diagram, error)
	List() []models.Summary
}

type Router struct {
	diagrams Lookup
	sections []models.Section
}

// New groups the registry listing by catalog once; the catalog may be nil.
func New(diagrams Lookup, catalog *models.Catalog) (*Router, error) {
	sections, err := registry.Group(diagrams.List(), catalog)
	if err != nil {
		return nil, err
	}
	return &Router{diagrams: diagrams, sections: sections}, nil
}

// Sections returns the landing page catalog.
func (r *Router) Sections() []models.Section {
	return r.sections
}

// Resolve maps path to a view. "/" is the landing page and "/{key}" the
// diagram registered under key, matched exactly and case-sensitively.
// Anything else resolves to NotFound.
func (r *Router) Resolve(path string) View {
	if path == "/" || path == "" {
		return View{State: Landing, Path: "/", Sections: r.sections}
	}

	key, ok := strings.CutPrefix(path, "/")
	if !ok || key == "" || strings.Contains(key, "/") {
		return View{State: NotFound, Path: path, Key: key}
	}

	d, err := r.diagrams.Get(key)
	if err != nil {
		return View{State: NotFound, Path: path, Key: key}
	}
	return View{State: DiagramView, Path: path, Key: key, Diagram: d, Flow: parser.BuildFlow(d)}
}
