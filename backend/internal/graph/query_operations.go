package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/errors"
)

// ReadRows runs a read-only query and returns every record as a map keyed by
// the query's return names. Used by the analytics exports, which own their
// Cypher; application reads go through the typed operations.
func (r *Repository) ReadRows(ctx context.Context, query string, params map[string]interface{}) ([]map[string]interface{}, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}

		rows := []map[string]interface{}{}
		for res.Next(ctx) {
			record := res.Record()
			row := make(map[string]interface{}, len(record.Keys))
			for i, key := range record.Keys {
				row[key] = record.Values[i]
			}
			rows = append(rows, row)
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return rows, nil
	})
	if err != nil {
		return nil, errors.NewGraphQueryFailed("read rows", err)
	}

	return result.([]map[string]interface{}), nil
}

const entityNamesQuery = `
	MATCH (n)
	WHERE n.name IS NOT NULL
	RETURN DISTINCT n.name AS name
	ORDER BY name
	LIMIT $limit
`

// EntityNames returns the distinct names of named entities, ascending.
func (r *Repository) EntityNames(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultSubgraphLimit
	}

	session := r.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, entityNamesQuery, map[string]interface{}{"limit": limit})
		if err != nil {
			return nil, err
		}

		names := []string{}
		for res.Next(ctx) {
			if name := getString(res.Record(), "name", ""); name != "" {
				names = append(names, name)
			}
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return names, nil
	})
	if err != nil {
		return nil, errors.NewGraphQueryFailed("entity names", err)
	}

	return result.([]string), nil
}
