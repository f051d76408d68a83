package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/metadata"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/errors"
)

const (
	nodeLabelCountsQuery = `
		MATCH (n)
		UNWIND labels(n) AS label
		RETURN label, count(*) AS count
		ORDER BY label
	`

	relationshipTypeCountsQuery = `
		MATCH ()-[r]->()
		RETURN type(r) AS relType, count(*) AS count
		ORDER BY relType
	`
)

// Metadata returns every node label and relationship type present in the
// store, each with its occurrence count. Both lists are read inside a single
// transaction so they describe one consistent snapshot. An empty store yields
// empty (non-nil) lists.
func (r *Repository) Metadata(ctx context.Context) (*metadata.Inventory, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		inv := &metadata.Inventory{
			NodeLabels:        []metadata.LabelCount{},
			RelationshipTypes: []metadata.RelationshipTypeCount{},
		}

		labelResult, err := tx.Run(ctx, nodeLabelCountsQuery, nil)
		if err != nil {
			return nil, err
		}
		for labelResult.Next(ctx) {
			record := labelResult.Record()
			inv.NodeLabels = append(inv.NodeLabels, metadata.LabelCount{
				Label: getString(record, "label", ""),
				Count: getInt64(record, "count", 0),
			})
		}
		if err := labelResult.Err(); err != nil {
			return nil, err
		}

		typeResult, err := tx.Run(ctx, relationshipTypeCountsQuery, nil)
		if err != nil {
			return nil, err
		}
		for typeResult.Next(ctx) {
			record := typeResult.Record()
			inv.RelationshipTypes = append(inv.RelationshipTypes, metadata.RelationshipTypeCount{
				Type:  getString(record, "relType", ""),
				Count: getInt64(record, "count", 0),
			})
		}
		if err := typeResult.Err(); err != nil {
			return nil, err
		}

		return inv, nil
	})
	if err != nil {
		return nil, errors.NewGraphQueryFailed("metadata inventory", err)
	}

	return result.(*metadata.Inventory), nil
}
