package models

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
)

// BuildDiagram validates nodes and edges and assembles them into a Diagram.
// Every violation found is reported in a single *ValidationError. The
// returned diagram holds its own copies of the slices and styles.
func BuildDiagram(key, title string, nodes []DiagramNode, edges []DiagramEdge) (*Diagram, error) {
	var violations []Violation
	if key == "" {
		violations = append(violations, Violation{Code: EmptyKey})
	}

	byID := make(map[string]DiagramNode, len(nodes))
	for i, n := range nodes {
		if n.ID == "" {
			violations = append(violations, Violation{Code: EmptyNodeID, Ref: strconv.Itoa(i)})
			continue
		}
		if _, exists := byID[n.ID]; exists {
			violations = append(violations, Violation{Code: DuplicateNodeID, Subject: n.ID})
			continue
		}
		byID[n.ID] = n
		violations = append(violations, checkNode(n)...)
	}

	edgeIDs := make(map[string]bool, len(edges))
	for i, e := range edges {
		if e.ID == "" {
			violations = append(violations, Violation{Code: EmptyEdgeID, Ref: strconv.Itoa(i)})
		} else if edgeIDs[e.ID] {
			violations = append(violations, Violation{Code: DuplicateEdgeID, Subject: e.ID})
		}
		edgeIDs[e.ID] = true
		violations = append(violations, checkEdge(e, byID)...)
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Key: key, Violations: violations}
	}

	d := &Diagram{
		Key:   key,
		Title: title,
		Nodes: make([]DiagramNode, len(nodes)),
		Edges: make([]DiagramEdge, len(edges)),
	}
	for i, n := range nodes {
		n.Style = maps.Clone(n.Style)
		n.Anchors = slices.Clone(n.Anchors)
		d.Nodes[i] = n
	}
	for i, e := range edges {
		e.Style = maps.Clone(e.Style)
		if e.MarkerEnd != nil {
			m := *e.MarkerEnd
			e.MarkerEnd = &m
		}
		d.Edges[i] = e
	}
	return d, nil
}

func checkNode(n DiagramNode) []Violation {
	var out []Violation
	switch n.Kind {
	case "", KindDefault, KindInput, KindOutput:
	default:
		out = append(out, Violation{Code: InvalidNodeKind, Subject: n.ID, Ref: string(n.Kind)})
	}
	if !isFinite(n.Position.X) || !isFinite(n.Position.Y) {
		out = append(out, Violation{Code: InvalidPosition, Subject: n.ID, Ref: fmt.Sprintf("(%v, %v)", n.Position.X, n.Position.Y)})
	}

	seen := make(map[string]bool, len(n.Anchors))
	for _, a := range n.Anchors {
		switch {
		case a.ID == "":
			out = append(out, Violation{Code: EmptyAnchorID, Subject: n.ID})
		case seen[a.ID]:
			out = append(out, Violation{Code: DuplicateAnchor, Subject: n.ID, Ref: a.ID})
		}
		seen[a.ID] = true
		switch a.Side {
		case "", SideTop, SideBottom, SideLeft, SideRight:
		default:
			out = append(out, Violation{Code: InvalidAnchorSide, Subject: n.ID, Ref: string(a.Side)})
		}
	}
	return append(out, checkStyle(n.ID, n.Style)...)
}

func checkEdge(e DiagramEdge, nodes map[string]DiagramNode) []Violation {
	var out []Violation
	if src, ok := nodes[e.SourceID]; !ok {
		out = append(out, Violation{Code: DanglingSource, Subject: e.ID, Ref: e.SourceID})
	} else if e.SourceAnchor != "" && !src.HasAnchor(e.SourceAnchor) {
		out = append(out, Violation{Code: UnknownSourceAnchor, Subject: e.ID, Ref: e.SourceAnchor})
	}
	if dst, ok := nodes[e.TargetID]; !ok {
		out = append(out, Violation{Code: DanglingTarget, Subject: e.ID, Ref: e.TargetID})
	} else if e.TargetAnchor != "" && !dst.HasAnchor(e.TargetAnchor) {
		out = append(out, Violation{Code: UnknownTargetAnchor, Subject: e.ID, Ref: e.TargetAnchor})
	}

	switch e.Kind {
	case "", EdgeDefault, EdgeStraight, EdgeStep, EdgeSmoothStep:
	default:
		out = append(out, Violation{Code: InvalidEdgeKind, Subject: e.ID, Ref: string(e.Kind)})
	}
	if m := e.MarkerEnd; m != nil {
		switch {
		case m.Type != MarkerArrow && m.Type != MarkerArrowClosed:
			out = append(out, Violation{Code: InvalidMarker, Subject: e.ID, Ref: string(m.Type)})
		case !isFinite(m.Width) || !isFinite(m.Height):
			out = append(out, Violation{Code: InvalidMarker, Subject: e.ID, Ref: fmt.Sprintf("%v x %v", m.Width, m.Height)})
		}
	}
	return append(out, checkStyle(e.ID, e.Style)...)
}

func checkStyle(subject string, s Style) []Violation {
	var out []Violation
	for _, k := range slices.Sorted(maps.Keys(s)) {
		if !isPrimitive(s[k]) {
			out = append(out, Violation{Code: InvalidStyle, Subject: subject, Ref: k})
		}
	}
	return out
}

// isPrimitive reports whether v can be encoded as a JSON scalar. NaN and
// infinities have no JSON form.
func isPrimitive(v any) bool {
	switch v := v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return isFinite(float64(v))
	case float64:
		return isFinite(v)
	}
	return false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
