package models

// FlowGraph is the node/edge list consumed by the browser graph renderer.
type FlowGraph struct {
	Key   string     `json:"key"`
	Title string     `json:"title"`
	Nodes []FlowNode `json:"nodes"`
	Edges []FlowEdge `json:"edges"`
	Stats *FlowStats `json:"stats,omitempty"`
}

type FlowNode struct {
	ID       string         `json:"id"`
	Type     string         `json:"type,omitempty"`
	Position Position       `json:"position"`
	Data     FlowNodeData   `json:"data"`
	Style    map[string]any `json:"style,omitempty"`
}

type FlowNodeData struct {
	Label   any      `json:"label"`
	Kind    string   `json:"kind,omitempty"`
	Anchors []Anchor `json:"anchors,omitempty"`
}

type FlowEdge struct {
	ID           string         `json:"id"`
	Source       string         `json:"source"`
	Target       string         `json:"target"`
	SourceHandle string         `json:"sourceHandle,omitempty"`
	TargetHandle string         `json:"targetHandle,omitempty"`
	Type         string         `json:"type,omitempty"`
	Label        string         `json:"label,omitempty"`
	Animated     bool           `json:"animated,omitempty"`
	Style        map[string]any `json:"style,omitempty"`
	MarkerEnd    *Marker        `json:"markerEnd,omitempty"`
}

type FlowStats struct {
	TotalNodes    int            `json:"total_nodes"`
	TotalEdges    int            `json:"total_edges"`
	AnimatedEdges int            `json:"animated_edges"`
	NodesByKind   map[string]int `json:"nodes_by_kind,omitempty"`
}
