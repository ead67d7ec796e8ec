// Package models defines the core data structures of the diagram catalog.
// It includes the diagram schema, its validation rules and the shapes handed
// to the browser graph renderer.
package models

type NodeKind string

const (
	KindDefault NodeKind = "default"
	KindInput   NodeKind = "input"
	KindOutput  NodeKind = "output"
)

type EdgeKind string

const (
	EdgeDefault    EdgeKind = "default"
	EdgeStraight   EdgeKind = "straight"
	EdgeStep       EdgeKind = "step"
	EdgeSmoothStep EdgeKind = "smoothstep"
)

type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

type MarkerType string

const (
	MarkerArrow       MarkerType = "arrow"
	MarkerArrowClosed MarkerType = "arrowclosed"
)

// Label is the content displayed inside a node. It is either a PlainLabel or
// a StructuredLabel.
type Label interface {
	isLabel()
}

type PlainLabel string

func (PlainLabel) isLabel() {}

// StructuredLabel carries renderer content (line lists, markup trees) that is
// passed through to the browser untouched.
type StructuredLabel struct {
	Content any
}

func (StructuredLabel) isLabel() {}

// LabelText returns the plain text of l, or "" for structured labels.
func LabelText(l Label) string {
	if p, ok := l.(PlainLabel); ok {
		return string(p)
	}
	return ""
}

// Style is an opaque set of presentation attributes. Values must be strings,
// numbers or booleans.
type Style map[string]any

type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Anchor is a named connection point on a node.
type Anchor struct {
	ID   string `json:"id" yaml:"id"`
	Side Side   `json:"side,omitempty" yaml:"side,omitempty"`
}

type Marker struct {
	Type   MarkerType `json:"type" yaml:"type"`
	Color  string     `json:"color,omitempty" yaml:"color,omitempty"`
	Width  float64    `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64    `json:"height,omitempty" yaml:"height,omitempty"`
}

type DiagramNode struct {
	ID       string
	Label    Label
	Position Position
	Style    Style
	Kind     NodeKind
	Anchors  []Anchor
}

// HasAnchor reports whether the node declares an anchor with the given id.
func (n DiagramNode) HasAnchor(id string) bool {
	for _, a := range n.Anchors {
		if a.ID == id {
			return true
		}
	}
	return false
}

type DiagramEdge struct {
	ID           string
	SourceID     string
	TargetID     string
	SourceAnchor string
	TargetAnchor string
	Animated     bool
	Kind         EdgeKind
	Label        string
	Style        Style
	MarkerEnd    *Marker
}

// Diagram is a validated, read-only node/edge graph. Values returned by
// BuildDiagram must not be modified.
type Diagram struct {
	Key   string
	Title string
	Nodes []DiagramNode
	Edges []DiagramEdge
}

func (d *Diagram) Node(id string) (DiagramNode, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return DiagramNode{}, false
}

func (d *Diagram) Summary() Summary {
	return Summary{Key: d.Key, Title: d.Title}
}
