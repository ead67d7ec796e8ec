package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"

	"github.com/llmarch/core/internal/content"
	"github.com/llmarch/core/internal/models"
	"github.com/llmarch/core/internal/parser"
)

// Load builds a registry from the diagram documents and catalog found in
// fsys. Diagrams are registered in catalog order followed by any documents
// the catalog does not mention, in file name order.
//
// Every document is checked before Load returns, so the error joins all
// problems found. The registry is only returned when there are none.
func Load(fsys fs.FS) (*Registry, *models.Catalog, error) {
	data, err := fs.ReadFile(fsys, content.CatalogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	catalog, err := parser.ParseCatalog(data)
	if err != nil {
		return nil, nil, err
	}

	names, err := fs.Glob(fsys, path.Join(content.DiagramsDir, "*.yaml"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list diagrams: %w", err)
	}
	if len(names) == 0 {
		return nil, nil, fmt.Errorf("no diagram documents found in %s", content.DiagramsDir)
	}

	var errs []error
	var built []*models.Diagram
	for _, name := range names {
		d, err := loadDiagram(fsys, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		built = append(built, d)
	}

	reg := New()
	for _, d := range catalogOrder(built, catalog) {
		if err := reg.Register(d); err != nil {
			errs = append(errs, err)
		}
	}

	if _, err := Group(reg.List(), catalog); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}
	return reg, catalog, nil
}

func loadDiagram(fsys fs.FS, name string) (*models.Diagram, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	doc, err := parser.ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return parser.BuildDocument(doc)
}

// catalogOrder sorts diagrams by their first appearance in the catalog.
// Diagrams sharing a key keep their relative order so Register can report
// the duplicate.
func catalogOrder(diagrams []*models.Diagram, catalog *models.Catalog) []*models.Diagram {
	rank := make(map[string]int)
	for _, g := range catalog.Groups {
		for _, key := range g.Diagrams {
			if _, ok := rank[key]; !ok {
				rank[key] = len(rank)
			}
		}
	}

	listed := make([]*models.Diagram, 0, len(diagrams))
	var rest []*models.Diagram
	for _, d := range diagrams {
		if _, ok := rank[d.Key]; ok {
			listed = append(listed, d)
		} else {
			rest = append(rest, d)
		}
	}
	slices.SortStableFunc(listed, func(a, b *models.Diagram) int {
		return rank[a.Key] - rank[b.Key]
	})
	return append(listed, rest...)
}
