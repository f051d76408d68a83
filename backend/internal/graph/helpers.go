package graph

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Record extraction helpers. Neo4j integers arrive as int64; everything is
// tolerant of missing keys so callers can rely on zero values.

func getString(record *neo4j.Record, key, defaultValue string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return defaultValue
	}
	if str, ok := val.(string); ok {
		return str
	}
	return defaultValue
}

func getInt64(record *neo4j.Record, key string, defaultValue int64) int64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return defaultValue
	}
	if i, ok := val.(int64); ok {
		return i
	}
	if i, ok := val.(int); ok {
		return int64(i)
	}
	return defaultValue
}

func nodeFromDB(n neo4j.Node) Node {
	labels := n.Labels
	if labels == nil {
		labels = []string{}
	}
	props := n.Props
	if props == nil {
		props = map[string]interface{}{}
	}
	return Node{
		ID:         n.ElementId,
		Labels:     labels,
		Properties: props,
	}
}

func edgeFromDB(r neo4j.Relationship) Edge {
	props := r.Props
	if props == nil {
		props = map[string]interface{}{}
	}
	return Edge{
		ID:         r.ElementId,
		Source:     r.StartElementId,
		Target:     r.EndElementId,
		Type:       r.Type,
		Properties: props,
	}
}
