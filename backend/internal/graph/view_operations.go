package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/errors"
)

const (
	// DefaultSubgraphLimit bounds a view when the caller gives no limit.
	DefaultSubgraphLimit = 500
	// MaxSubgraphLimit is the hard cap on nodes in a single view.
	MaxSubgraphLimit = 5000
)

const subgraphNodesQuery = `
	MATCH (n)
	WHERE any(label IN labels(n) WHERE label IN $labels)
	WITH n
	ORDER BY n.name
	LIMIT $limit
	RETURN n
`

const subgraphEdgesQuery = `
	MATCH (source)-[r]->(target)
	WHERE elementId(source) IN $ids
	  AND elementId(target) IN $ids
	  AND type(r) IN $types
	RETURN r
`

// Subgraph returns the filtered view for a selection: nodes carrying at
// least one selected label, then every relationship of a selected type
// between two visible nodes. Both phases run in one read transaction.
// Empty selections yield an empty view; callers enforce their own guards.
func (r *Repository) Subgraph(ctx context.Context, labels, relTypes []string, limit int) (*Subgraph, error) {
	if limit <= 0 {
		limit = DefaultSubgraphLimit
	}
	if limit > MaxSubgraphLimit {
		limit = MaxSubgraphLimit
	}

	session := r.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		view := &Subgraph{
			Nodes: []Node{},
			Edges: []Edge{},
		}

		nodeResult, err := tx.Run(ctx, subgraphNodesQuery, map[string]interface{}{
			"labels": labels,
			"limit":  limit,
		})
		if err != nil {
			return nil, err
		}

		nodeIDs := make([]string, 0, limit)
		for nodeResult.Next(ctx) {
			nodeValue, _ := nodeResult.Record().Get("n")
			dbNode, ok := nodeValue.(neo4j.Node)
			if !ok {
				return nil, fmt.Errorf("unexpected node value %T", nodeValue)
			}
			view.Nodes = append(view.Nodes, nodeFromDB(dbNode))
			nodeIDs = append(nodeIDs, dbNode.ElementId)
		}
		if err := nodeResult.Err(); err != nil {
			return nil, err
		}

		if len(nodeIDs) > 0 {
			edgeResult, err := tx.Run(ctx, subgraphEdgesQuery, map[string]interface{}{
				"ids":   nodeIDs,
				"types": relTypes,
			})
			if err != nil {
				return nil, err
			}
			for edgeResult.Next(ctx) {
				relValue, _ := edgeResult.Record().Get("r")
				dbRel, ok := relValue.(neo4j.Relationship)
				if !ok {
					return nil, fmt.Errorf("unexpected relationship value %T", relValue)
				}
				view.Edges = append(view.Edges, edgeFromDB(dbRel))
			}
			if err := edgeResult.Err(); err != nil {
				return nil, err
			}
		}

		view.Stats = SubgraphStats{
			NodeCount: len(view.Nodes),
			EdgeCount: len(view.Edges),
			Limit:     limit,
		}
		return view, nil
	})
	if err != nil {
		return nil, errors.NewGraphQueryFailed("filtered subgraph", err)
	}

	return result.(*Subgraph), nil
}
