package graph

import (
	"fmt"
	"regexp"
)

// Node is a graph node as served to clients. ID is the store's element id;
// domain identity lives in the `key` property.
type Node struct {
	ID         string                 `json:"id"`
	Labels     []string               `json:"labels"`
	Properties map[string]interface{} `json:"properties"`
}

// Edge is a directed relationship between two nodes in a view. Source and
// Target are node element ids.
type Edge struct {
	ID         string                 `json:"id"`
	Source     string                 `json:"source"`
	Target     string                 `json:"target"`
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
}

// Subgraph is a filtered view of the store: every node carries at least one
// of the selected labels, every edge has a selected type and both endpoints
// in Nodes.
type Subgraph struct {
	Nodes []Node        `json:"nodes"`
	Edges []Edge        `json:"edges"`
	Stats SubgraphStats `json:"stats"`
}

// SubgraphStats describes how the view was produced.
type SubgraphStats struct {
	NodeCount int `json:"nodeCount"`
	EdgeCount int `json:"edgeCount"`
	Limit     int `json:"limit"`
}

// EntityInput describes a node to create or update. Key is the stable merge
// identity; Name is sugar for the `name` property.
type EntityInput struct {
	Labels     []string               `json:"labels"`
	Key        string                 `json:"key"`
	Name       string                 `json:"name,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// RelationshipInput describes a relationship to create or update between two
// existing entities, referenced by key.
type RelationshipInput struct {
	FromKey    string                 `json:"fromKey"`
	ToKey      string                 `json:"toKey"`
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// Labels and relationship types are interpolated into Cypher (they cannot be
// parameters), so they are restricted to identifier characters.
var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether s is usable as a label or relationship type.
func ValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// Errors

type ErrInvalidIdentifier struct {
	Value string
}

func (e ErrInvalidIdentifier) Error() string {
	return fmt.Sprintf("invalid label or relationship type: %q", e.Value)
}

type ErrEntityNotFound struct {
	Key string
}

func (e ErrEntityNotFound) Error() string {
	return fmt.Sprintf("entity not found: %s", e.Key)
}
