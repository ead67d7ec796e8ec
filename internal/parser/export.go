package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/llmarch/core/internal/models"
)

// Exporter renders a diagram as text in some graph description language.
type Exporter interface {
	Generate(d *models.Diagram) (string, error)
}

// ExporterFor returns the exporter registered under format, or nil.
func ExporterFor(format string) Exporter {
	switch format {
	case "dot":
		return &DotGenerator{}
	case "mermaid":
		return &MermaidGenerator{}
	}
	return nil
}

// --- DOT Generator ---

type DotGenerator struct{}

func (g *DotGenerator) Generate(d *models.Diagram) (string, error) {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("digraph %s {\n", dotQuote(d.Key)))
	b.WriteString("  rankdir=TB;\n")
	b.WriteString(fmt.Sprintf("  label=%s;\n", dotQuote(d.Title)))
	b.WriteString("  node [shape=box];\n")

	for _, n := range d.Nodes {
		attrs := []string{"label=" + dotQuote(nodeText(n))}
		attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g!\"", n.Position.X, n.Position.Y))
		switch n.Kind {
		case models.KindInput:
			attrs = append(attrs, "shape=invhouse")
		case models.KindOutput:
			attrs = append(attrs, "shape=house")
		}
		if bg, ok := n.Style["backgroundColor"].(string); ok {
			attrs = append(attrs, "style=filled", "fillcolor="+dotQuote(bg))
		}
		b.WriteString(fmt.Sprintf("  %s [%s];\n", dotQuote(n.ID), strings.Join(attrs, ", ")))
	}

	for _, e := range d.Edges {
		var attrs []string
		if e.Label != "" {
			attrs = append(attrs, "label="+dotQuote(e.Label))
		}
		if e.Animated {
			attrs = append(attrs, "style=dashed")
		}
		if stroke, ok := e.Style["stroke"].(string); ok {
			attrs = append(attrs, "color="+dotQuote(stroke))
		}
		line := fmt.Sprintf("  %s -> %s", dotEndpoint(e.SourceID, e.SourceAnchor), dotEndpoint(e.TargetID, e.TargetAnchor))
		if len(attrs) > 0 {
			line += " [" + strings.Join(attrs, ", ") + "]"
		}
		b.WriteString(line + ";\n")
	}
	b.WriteString("}\n")
	return b.String(), nil
}

func dotEndpoint(node, anchor string) string {
	// Anchors have no DOT equivalent unless they are compass points.
	switch anchor {
	case "n", "s", "e", "w", "ne", "nw", "se", "sw":
		return dotQuote(node) + ":" + anchor
	}
	return dotQuote(node)
}

func dotQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}

// --- Mermaid Generator ---

type MermaidGenerator struct{}

// Generate writes a flowchart. Node ids are replaced by n0, n1, ... since
// authored ids may contain characters mermaid does not accept.
func (g *MermaidGenerator) Generate(d *models.Diagram) (string, error) {
	var b bytes.Buffer
	b.WriteString("graph TD;\n")
	b.WriteString(fmt.Sprintf("  %%%% %s\n", d.Title))

	ids := make(map[string]string, len(d.Nodes))
	for i, n := range d.Nodes {
		id := fmt.Sprintf("n%d", i)
		ids[n.ID] = id
		text := mermaidQuote(nodeText(n))
		switch n.Kind {
		case models.KindInput:
			b.WriteString(fmt.Sprintf("  %s([%s]);\n", id, text))
		case models.KindOutput:
			b.WriteString(fmt.Sprintf("  %s[[%s]];\n", id, text))
		default:
			b.WriteString(fmt.Sprintf("  %s[%s];\n", id, text))
		}
	}

	for _, e := range d.Edges {
		arrow := "-->"
		if e.Animated {
			arrow = "-.->"
		}
		if e.Label != "" {
			b.WriteString(fmt.Sprintf("  %s %s|%s| %s;\n", ids[e.SourceID], arrow, mermaidQuote(e.Label), ids[e.TargetID]))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %s %s;\n", ids[e.SourceID], arrow, ids[e.TargetID]))
	}
	return b.String(), nil
}

func mermaidQuote(s string) string {
	s = strings.ReplaceAll(s, `"`, "#quot;")
	s = strings.ReplaceAll(s, "\n", "<br/>")
	return `"` + s + `"`
}

// nodeText flattens a node label to plain text. Structured labels contribute
// their "lines" entries when present and fall back to the node id otherwise.
func nodeText(n models.DiagramNode) string {
	switch l := n.Label.(type) {
	case models.PlainLabel:
		if l != "" {
			return string(l)
		}
	case models.StructuredLabel:
		if m, ok := l.Content.(map[string]any); ok {
			if lines, ok := m["lines"].([]any); ok {
				var parts []string
				for _, line := range lines {
					if s, ok := line.(string); ok {
						parts = append(parts, s)
					}
				}
				if len(parts) > 0 {
					return strings.Join(parts, "\n")
				}
			}
		}
	}
	return n.ID
}
