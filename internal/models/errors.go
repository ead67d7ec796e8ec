package models

import (
	"fmt"
	"strings"
)

type ViolationCode string

const (
	EmptyKey            ViolationCode = "empty_key"
	EmptyNodeID         ViolationCode = "empty_node_id"
	DuplicateNodeID     ViolationCode = "duplicate_node_id"
	InvalidNodeKind     ViolationCode = "invalid_node_kind"
	InvalidPosition     ViolationCode = "invalid_position"
	EmptyAnchorID       ViolationCode = "empty_anchor_id"
	DuplicateAnchor     ViolationCode = "duplicate_anchor"
	InvalidAnchorSide   ViolationCode = "invalid_anchor_side"
	EmptyEdgeID         ViolationCode = "empty_edge_id"
	DuplicateEdgeID     ViolationCode = "duplicate_edge_id"
	DanglingSource      ViolationCode = "dangling_source"
	DanglingTarget      ViolationCode = "dangling_target"
	UnknownSourceAnchor ViolationCode = "unknown_source_anchor"
	UnknownTargetAnchor ViolationCode = "unknown_target_anchor"
	InvalidEdgeKind     ViolationCode = "invalid_edge_kind"
	InvalidMarker       ViolationCode = "invalid_marker"
	InvalidStyle        ViolationCode = "invalid_style"
)

// Violation is one authoring problem found in a diagram. Subject is the node
// or edge id it concerns and Ref the offending value, when there is one.
type Violation struct {
	Code    ViolationCode
	Subject string
	Ref     string
}

func (v Violation) String() string {
	switch v.Code {
	case EmptyKey:
		return "diagram key is empty"
	case EmptyNodeID:
		return fmt.Sprintf("node #%s has an empty id", v.Ref)
	case DuplicateNodeID:
		return fmt.Sprintf("node %q is declared more than once", v.Subject)
	case InvalidNodeKind:
		return fmt.Sprintf("node %q has unknown kind %q", v.Subject, v.Ref)
	case InvalidPosition:
		return fmt.Sprintf("node %q has non-finite position %s", v.Subject, v.Ref)
	case EmptyAnchorID:
		return fmt.Sprintf("node %q has an anchor with an empty id", v.Subject)
	case DuplicateAnchor:
		return fmt.Sprintf("node %q declares anchor %q more than once", v.Subject, v.Ref)
	case InvalidAnchorSide:
		return fmt.Sprintf("node %q has an anchor on unknown side %q", v.Subject, v.Ref)
	case EmptyEdgeID:
		return fmt.Sprintf("edge #%s has an empty id", v.Ref)
	case DuplicateEdgeID:
		return fmt.Sprintf("edge %q is declared more than once", v.Subject)
	case DanglingSource:
		return fmt.Sprintf("edge %q: source node %q does not exist", v.Subject, v.Ref)
	case DanglingTarget:
		return fmt.Sprintf("edge %q: target node %q does not exist", v.Subject, v.Ref)
	case UnknownSourceAnchor:
		return fmt.Sprintf("edge %q: source anchor %q is not declared on its node", v.Subject, v.Ref)
	case UnknownTargetAnchor:
		return fmt.Sprintf("edge %q: target anchor %q is not declared on its node", v.Subject, v.Ref)
	case InvalidEdgeKind:
		return fmt.Sprintf("edge %q has unknown kind %q", v.Subject, v.Ref)
	case InvalidMarker:
		return fmt.Sprintf("edge %q has unknown marker type %q", v.Subject, v.Ref)
	case InvalidStyle:
		return fmt.Sprintf("%q: style attribute %q must be a string, finite number or boolean", v.Subject, v.Ref)
	}
	return fmt.Sprintf("%s: %s %s", v.Code, v.Subject, v.Ref)
}

// ValidationError lists every violation found while building one diagram.
type ValidationError struct {
	Key        string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("invalid diagram %q: %s", e.Key, strings.Join(msgs, "; "))
}

// Has reports whether the error holds a violation with the given code and
// subject.
func (e *ValidationError) Has(code ViolationCode, subject string) bool {
	for _, v := range e.Violations {
		if v.Code == code && v.Subject == subject {
			return true
		}
	}
	return false
}

type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("diagram %q is already registered", e.Key)
}

type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("diagram %q not found", e.Key)
}
