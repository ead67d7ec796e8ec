package parser

import (
	"maps"
	"slices"

	"github.com/llmarch/core/internal/models"
)

// AnchoredNodeType is the renderer node type for nodes that declare anchors.
// The browser registers a component for it that draws one handle per anchor.
const AnchoredNodeType = "anchored"

// BuildFlow maps a diagram onto the renderer's node/edge lists. Positions,
// ids and endpoints are copied as declared; no layout is computed.
func BuildFlow(d *models.Diagram) *models.FlowGraph {
	graph := &models.FlowGraph{
		Key:   d.Key,
		Title: d.Title,
		Nodes: make([]models.FlowNode, 0, len(d.Nodes)),
		Edges: make([]models.FlowEdge, 0, len(d.Edges)),
	}

	for _, n := range d.Nodes {
		graph.Nodes = append(graph.Nodes, models.FlowNode{
			ID:       n.ID,
			Type:     nodeType(n),
			Position: n.Position,
			Data: models.FlowNodeData{
				Label:   labelContent(n.Label),
				Kind:    string(n.Kind),
				Anchors: slices.Clone(n.Anchors),
			},
			Style: cloneStyle(n.Style),
		})
	}

	for _, e := range d.Edges {
		var marker *models.Marker
		if e.MarkerEnd != nil {
			m := *e.MarkerEnd
			marker = &m
		}
		graph.Edges = append(graph.Edges, models.FlowEdge{
			ID:           e.ID,
			Source:       e.SourceID,
			Target:       e.TargetID,
			SourceHandle: e.SourceAnchor,
			TargetHandle: e.TargetAnchor,
			Type:         edgeType(e.Kind),
			Label:        e.Label,
			Animated:     e.Animated,
			Style:        cloneStyle(e.Style),
			MarkerEnd:    marker,
		})
	}

	graph.Stats = buildStats(d)
	return graph
}

// ReadFlow converts a renderer graph back into a validated diagram.
func ReadFlow(g *models.FlowGraph) (*models.Diagram, error) {
	nodes := make([]models.DiagramNode, len(g.Nodes))
	for i, n := range g.Nodes {
		nodes[i] = models.DiagramNode{
			ID:       n.ID,
			Label:    contentLabel(n.Data.Label),
			Position: n.Position,
			Style:    cloneStyle(n.Style),
			Kind:     models.NodeKind(n.Data.Kind),
			Anchors:  slices.Clone(n.Data.Anchors),
		}
	}

	edges := make([]models.DiagramEdge, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = models.DiagramEdge{
			ID:           e.ID,
			SourceID:     e.Source,
			TargetID:     e.Target,
			SourceAnchor: e.SourceHandle,
			TargetAnchor: e.TargetHandle,
			Animated:     e.Animated,
			Kind:         models.EdgeKind(e.Type),
			Label:        e.Label,
			Style:        cloneStyle(e.Style),
			MarkerEnd:    e.MarkerEnd,
		}
	}

	return models.BuildDiagram(g.Key, g.Title, nodes, edges)
}

func nodeType(n models.DiagramNode) string {
	if len(n.Anchors) > 0 {
		return AnchoredNodeType
	}
	switch n.Kind {
	case models.KindInput, models.KindOutput:
		return string(n.Kind)
	}
	return ""
}

func edgeType(k models.EdgeKind) string {
	if k == models.EdgeDefault {
		return ""
	}
	return string(k)
}

func labelContent(l models.Label) any {
	switch l := l.(type) {
	case models.PlainLabel:
		return string(l)
	case models.StructuredLabel:
		return l.Content
	}
	return ""
}

func contentLabel(v any) models.Label {
	if s, ok := v.(string); ok {
		return models.PlainLabel(s)
	}
	if v == nil {
		return models.PlainLabel("")
	}
	return models.StructuredLabel{Content: v}
}

func cloneStyle(s map[string]any) map[string]any {
	if len(s) == 0 {
		return nil
	}
	return maps.Clone(s)
}

func buildStats(d *models.Diagram) *models.FlowStats {
	stats := &models.FlowStats{
		TotalNodes:  len(d.Nodes),
		TotalEdges:  len(d.Edges),
		NodesByKind: make(map[string]int),
	}
	for _, n := range d.Nodes {
		kind := n.Kind
		if kind == "" {
			kind = models.KindDefault
		}
		stats.NodesByKind[string(kind)]++
	}
	for _, e := range d.Edges {
		if e.Animated {
			stats.AnimatedEdges++
		}
	}
	return stats
}
