// Package models defines the core data structures of the diagram catalog.
// It includes the diagram schema, its validation rules and the shapes handed
// to the browser graph renderer.
package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is one authored diagram file as written on disk.
type Document struct {
	Key      string         `yaml:"key"`
	Title    string         `yaml:"title"`
	Defaults Defaults       `yaml:"defaults,omitempty"`
	Nodes    []NodeDocument `yaml:"nodes"`
	Edges    []EdgeDocument `yaml:"edges"`
}

// Defaults are merged beneath every node and edge of a document. Attributes
// declared on the node or edge itself win.
type Defaults struct {
	NodeStyle Style        `yaml:"node_style,omitempty"`
	Edge      EdgeDefaults `yaml:"edge,omitempty"`
}

type EdgeDefaults struct {
	Animated  *bool    `yaml:"animated,omitempty"`
	Kind      EdgeKind `yaml:"kind,omitempty"`
	Style     Style    `yaml:"style,omitempty"`
	MarkerEnd *Marker  `yaml:"marker_end,omitempty"`
}

type NodeDocument struct {
	ID           string        `yaml:"id"`
	Kind         NodeKind      `yaml:"kind,omitempty"`
	Label        LabelDocument `yaml:"label"`
	Position     Position      `yaml:"position"`
	InheritStyle *bool         `yaml:"inherit_style,omitempty"`
	Style        Style         `yaml:"style,omitempty"`
	Anchors      []Anchor      `yaml:"anchors,omitempty"`
}

type EdgeDocument struct {
	ID           string   `yaml:"id"`
	Source       string   `yaml:"source"`
	Target       string   `yaml:"target"`
	SourceAnchor string   `yaml:"source_anchor,omitempty"`
	TargetAnchor string   `yaml:"target_anchor,omitempty"`
	Animated     *bool    `yaml:"animated,omitempty"`
	Kind         EdgeKind `yaml:"kind,omitempty"`
	Label        string   `yaml:"label,omitempty"`
	Style        Style    `yaml:"style,omitempty"`
	MarkerEnd    *Marker  `yaml:"marker_end,omitempty"`
}

// LabelDocument is either a scalar string or a mapping {rich: <content>}.
type LabelDocument struct {
	Text string
	Rich any
}

func (l *LabelDocument) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&l.Text)
	case yaml.MappingNode:
		var rich struct {
			Rich any `yaml:"rich"`
		}
		if err := value.Decode(&rich); err != nil {
			return err
		}
		if rich.Rich == nil {
			return fmt.Errorf("line %d: structured label needs a rich field", value.Line)
		}
		l.Rich = rich.Rich
		return nil
	}
	return fmt.Errorf("line %d: label must be a string or a mapping", value.Line)
}

func (l LabelDocument) Label() Label {
	if l.Rich != nil {
		return StructuredLabel{Content: l.Rich}
	}
	return PlainLabel(l.Text)
}
