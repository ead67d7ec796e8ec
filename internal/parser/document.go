// Package parser provides utilities for parsing and transforming diagram data.
// It decodes authored documents, merges their defaults and converts diagrams
// to and from the renderer's node/edge shape.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"

	"github.com/llmarch/core/internal/models"
	"gopkg.in/yaml.v3"
)

func ParseDocument(data []byte) (*models.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty diagram document")
	}

	var doc models.Document
	if err := decodeStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode diagram document: %w", err)
	}
	return &doc, nil
}

func ParseCatalog(data []byte) (*models.Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty catalog")
	}

	var cat models.Catalog
	if err := decodeStrict(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	for i, g := range cat.Groups {
		if g.Name == "" {
			return nil, fmt.Errorf("invalid catalog: group #%d has no name", i)
		}
	}
	return &cat, nil
}

// BuildDocument merges a document's defaults into its nodes and edges and
// validates the result with models.BuildDiagram.
func BuildDocument(doc *models.Document) (*models.Diagram, error) {
	title := doc.Title
	if title == "" {
		title = doc.Key
	}

	nodes := make([]models.DiagramNode, len(doc.Nodes))
	for i, n := range doc.Nodes {
		style := n.Style
		if n.InheritStyle == nil || *n.InheritStyle {
			style = mergeStyle(doc.Defaults.NodeStyle, n.Style)
		}
		nodes[i] = models.DiagramNode{
			ID:       n.ID,
			Label:    n.Label.Label(),
			Position: n.Position,
			Style:    style,
			Kind:     n.Kind,
			Anchors:  n.Anchors,
		}
	}

	def := doc.Defaults.Edge
	edges := make([]models.DiagramEdge, len(doc.Edges))
	for i, e := range doc.Edges {
		edge := models.DiagramEdge{
			ID:           e.ID,
			SourceID:     e.Source,
			TargetID:     e.Target,
			SourceAnchor: e.SourceAnchor,
			TargetAnchor: e.TargetAnchor,
			Kind:         e.Kind,
			Label:        e.Label,
			Style:        mergeStyle(def.Style, e.Style),
			MarkerEnd:    e.MarkerEnd,
		}
		switch {
		case e.Animated != nil:
			edge.Animated = *e.Animated
		case def.Animated != nil:
			edge.Animated = *def.Animated
		}
		if edge.Kind == "" {
			edge.Kind = def.Kind
		}
		if edge.MarkerEnd == nil {
			edge.MarkerEnd = def.MarkerEnd
		}
		edges[i] = edge
	}

	return models.BuildDiagram(doc.Key, title, nodes, edges)
}

func mergeStyle(base, own models.Style) models.Style {
	if len(base) == 0 && len(own) == 0 {
		return nil
	}
	out := make(models.Style, len(base)+len(own))
	maps.Copy(out, base)
	maps.Copy(out, own)
	return out
}

func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("no YAML document found")
		}
		return err
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return err
		}
		return fmt.Errorf("line %d: file holds more than one YAML document", extra.Line)
	}
	return nil
}
