package models

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id string) DiagramNode {
	return DiagramNode{ID: id, Label: PlainLabel(id)}
}

func edge(id, source, target string) DiagramEdge {
	return DiagramEdge{ID: id, SourceID: source, TargetID: target}
}

func TestBuildDiagram(t *testing.T) {
	t.Run("valid diagram is assembled", func(t *testing.T) {
		nodes := []DiagramNode{node("1"), node("2")}
		edges := []DiagramEdge{edge("e1-2", "1", "2")}

		d, err := BuildDiagram("gpt2", "GPT-2", nodes, edges)

		require.NoError(t, err)
		assert.Equal(t, "gpt2", d.Key)
		assert.Equal(t, "GPT-2", d.Title)
		assert.Len(t, d.Nodes, 2)
		assert.Len(t, d.Edges, 1)
	})

	t.Run("empty node and edge sets are allowed", func(t *testing.T) {
		d, err := BuildDiagram("empty", "Empty", nil, nil)

		require.NoError(t, err)
		assert.Empty(t, d.Nodes)
		assert.Empty(t, d.Edges)
	})

	t.Run("dangling edge names edge and missing id", func(t *testing.T) {
		nodes := []DiagramNode{node("a"), node("b")}
		edges := []DiagramEdge{edge("e1", "a", "z")}

		d, err := BuildDiagram("broken", "Broken", nodes, edges)

		assert.Nil(t, d)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.Len(t, verr.Violations, 1)
		assert.Equal(t, DanglingTarget, verr.Violations[0].Code)
		assert.Equal(t, "e1", verr.Violations[0].Subject)
		assert.Equal(t, "z", verr.Violations[0].Ref)
		assert.Contains(t, err.Error(), `"e1"`)
		assert.Contains(t, err.Error(), `"z"`)
	})

	t.Run("every violation is reported", func(t *testing.T) {
		nodes := []DiagramNode{node("a"), node("a"), node("")}
		edges := []DiagramEdge{
			edge("e1", "x", "a"),
			edge("e1", "a", "y"),
			edge("", "a", "a"),
		}

		_, err := BuildDiagram("", "Broken", nodes, edges)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		codes := make([]ViolationCode, len(verr.Violations))
		for i, v := range verr.Violations {
			codes[i] = v.Code
		}
		assert.ElementsMatch(t, []ViolationCode{
			EmptyKey, DuplicateNodeID, EmptyNodeID,
			DanglingSource, DuplicateEdgeID, DanglingTarget, EmptyEdgeID,
		}, codes)
		assert.True(t, verr.Has(DuplicateNodeID, "a"))
		assert.True(t, verr.Has(DanglingSource, "e1"))
	})

	t.Run("self loops and parallel edges are permitted", func(t *testing.T) {
		nodes := []DiagramNode{node("a"), node("b")}
		edges := []DiagramEdge{
			edge("loop", "a", "a"),
			edge("main", "a", "b"),
			edge("info", "a", "b"),
		}

		d, err := BuildDiagram("loops", "Loops", nodes, edges)

		require.NoError(t, err)
		assert.Len(t, d.Edges, 3)
	})

	t.Run("anchors are checked against their nodes", func(t *testing.T) {
		a := node("a")
		a.Anchors = []Anchor{{ID: "bottom", Side: SideBottom}}
		b := node("b")
		b.Anchors = []Anchor{{ID: "top", Side: SideTop}}
		good := DiagramEdge{ID: "ok", SourceID: "a", TargetID: "b", SourceAnchor: "bottom", TargetAnchor: "top"}
		bad := DiagramEdge{ID: "bad", SourceID: "a", TargetID: "b", SourceAnchor: "left", TargetAnchor: "bottom"}

		_, err := BuildDiagram("anchors", "Anchors", []DiagramNode{a, b}, []DiagramEdge{good, bad})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Violations, 2)
		assert.True(t, verr.Has(UnknownSourceAnchor, "bad"))
		assert.True(t, verr.Has(UnknownTargetAnchor, "bad"))
		assert.False(t, verr.Has(UnknownSourceAnchor, "ok"))
	})

	t.Run("duplicate and malformed anchors are rejected", func(t *testing.T) {
		a := node("a")
		a.Anchors = []Anchor{{ID: "x"}, {ID: "x"}, {ID: "", Side: "middle"}}

		_, err := BuildDiagram("anchors", "Anchors", []DiagramNode{a}, nil)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has(DuplicateAnchor, "a"))
		assert.True(t, verr.Has(EmptyAnchorID, "a"))
		assert.True(t, verr.Has(InvalidAnchorSide, "a"))
	})

	t.Run("style values must be primitive", func(t *testing.T) {
		a := node("a")
		a.Style = Style{"backgroundColor": "#fff", "width": 220, "nested": map[string]any{"x": 1}}
		e := edge("e", "a", "a")
		e.Style = Style{"stroke": []string{"red"}}

		_, err := BuildDiagram("styles", "Styles", []DiagramNode{a}, []DiagramEdge{e})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Violations, 2)
		assert.Equal(t, Violation{Code: InvalidStyle, Subject: "a", Ref: "nested"}, verr.Violations[0])
		assert.Equal(t, Violation{Code: InvalidStyle, Subject: "e", Ref: "stroke"}, verr.Violations[1])
	})

	t.Run("unknown kinds and markers are rejected", func(t *testing.T) {
		a := node("a")
		a.Kind = "dataPrepNode"
		e := edge("e", "a", "a")
		e.Kind = "redArrow"
		e.MarkerEnd = &Marker{Type: "circle"}

		_, err := BuildDiagram("kinds", "Kinds", []DiagramNode{a}, []DiagramEdge{e})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has(InvalidNodeKind, "a"))
		assert.True(t, verr.Has(InvalidEdgeKind, "e"))
		assert.True(t, verr.Has(InvalidMarker, "e"))
	})

	t.Run("non-finite positions are rejected", func(t *testing.T) {
		a := node("a")
		a.Position = Position{X: math.Inf(1), Y: 0}
		b := node("b")
		b.Position = Position{X: 0, Y: math.NaN()}
		c := node("c")
		c.Position = Position{X: -10, Y: 250.5}

		_, err := BuildDiagram("pos", "Pos", []DiagramNode{a, b, c}, nil)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Violations, 2)
		assert.True(t, verr.Has(InvalidPosition, "a"))
		assert.True(t, verr.Has(InvalidPosition, "b"))
		assert.Contains(t, err.Error(), `node "a" has non-finite position (+Inf, 0)`)
	})

	t.Run("non-finite style numbers are rejected", func(t *testing.T) {
		a := node("a")
		a.Style = Style{"width": math.Inf(-1), "opacity": float32(math.NaN()), "height": 40.5}

		_, err := BuildDiagram("styles", "Styles", []DiagramNode{a}, nil)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []Violation{
			{Code: InvalidStyle, Subject: "a", Ref: "opacity"},
			{Code: InvalidStyle, Subject: "a", Ref: "width"},
		}, verr.Violations)
	})

	t.Run("non-finite marker sizes are rejected", func(t *testing.T) {
		e := edge("e", "a", "a")
		e.MarkerEnd = &Marker{Type: MarkerArrowClosed, Width: math.Inf(1)}

		_, err := BuildDiagram("marker", "Marker", []DiagramNode{node("a")}, []DiagramEdge{e})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has(InvalidMarker, "e"))
	})

	t.Run("result does not alias caller slices", func(t *testing.T) {
		a := node("a")
		a.Style = Style{"color": "red"}
		nodes := []DiagramNode{a}

		d, err := BuildDiagram("copy", "Copy", nodes, nil)
		require.NoError(t, err)

		nodes[0].ID = "changed"
		a.Style["color"] = "blue"
		assert.Equal(t, "a", d.Nodes[0].ID)
		assert.Equal(t, "red", d.Nodes[0].Style["color"])
	})
}

func TestDiagramLookups(t *testing.T) {
	a := node("a")
	a.Anchors = []Anchor{{ID: "top", Side: SideTop}}
	d, err := BuildDiagram("k", "K", []DiagramNode{a, node("b")}, nil)
	require.NoError(t, err)

	got, ok := d.Node("a")
	assert.True(t, ok)
	assert.True(t, got.HasAnchor("top"))
	assert.False(t, got.HasAnchor("bottom"))

	_, ok = d.Node("missing")
	assert.False(t, ok)

	assert.Equal(t, Summary{Key: "k", Title: "K"}, d.Summary())
}

func TestErrors(t *testing.T) {
	t.Run("duplicate key", func(t *testing.T) {
		err := error(&DuplicateKeyError{Key: "gpt2"})
		assert.Equal(t, `diagram "gpt2" is already registered`, err.Error())
	})

	t.Run("not found", func(t *testing.T) {
		err := error(&NotFoundError{Key: "nope"})
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "nope", nf.Key)
		assert.Equal(t, `diagram "nope" not found`, err.Error())
	})

	t.Run("validation message joins violations", func(t *testing.T) {
		err := &ValidationError{Key: "k", Violations: []Violation{
			{Code: EmptyKey},
			{Code: DanglingSource, Subject: "e1", Ref: "x"},
		}}
		assert.Equal(t, `invalid diagram "k": diagram key is empty; edge "e1": source node "x" does not exist`, err.Error())
	})
}

func TestLabelText(t *testing.T) {
	assert.Equal(t, "Softmax", LabelText(PlainLabel("Softmax")))
	assert.Equal(t, "", LabelText(StructuredLabel{Content: map[string]any{"lines": []any{"a"}}}))
	assert.Equal(t, "", LabelText(nil))
}
