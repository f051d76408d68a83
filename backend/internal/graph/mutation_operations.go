package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/events"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/errors"
)

// UpsertEntity creates or updates a node, merged on its key. Labels are
// validated before interpolation. The first label is treated as the primary
// one for event reporting.
func (r *Repository) UpsertEntity(ctx context.Context, input EntityInput) (*Node, error) {
	if len(input.Labels) == 0 {
		return nil, ErrInvalidIdentifier{Value: ""}
	}
	for _, label := range input.Labels {
		if !ValidIdentifier(label) {
			return nil, ErrInvalidIdentifier{Value: label}
		}
	}
	if input.Key == "" {
		return nil, fmt.Errorf("entity key is required")
	}

	props := make(map[string]interface{}, len(input.Properties)+2)
	for k, v := range input.Properties {
		props[k] = v
	}
	props["key"] = input.Key
	if input.Name != "" {
		props["name"] = input.Name
	}

	query := fmt.Sprintf(`
		MERGE (n:%s {key: $key})
		ON CREATE SET n.id = $id, n.createdAt = datetime()
		SET n += $props
		RETURN n
	`, strings.Join(input.Labels, ":"))

	session := r.writeSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]interface{}{
			"key":   input.Key,
			"id":    uuid.New().String(),
			"props": props,
		})
		if err != nil {
			return nil, err
		}

		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}

		nodeValue, _ := record.Get("n")
		dbNode, ok := nodeValue.(neo4j.Node)
		if !ok {
			return nil, fmt.Errorf("unexpected node value %T", nodeValue)
		}
		node := nodeFromDB(dbNode)
		return &node, nil
	})
	if err != nil {
		return nil, errors.NewGraphQueryFailed("upsert entity", err)
	}

	r.logger.Info("Entity upserted",
		zap.String("key", input.Key),
		zap.Strings("labels", input.Labels),
	)
	r.emitEvent(events.NodeUpserted(input.Labels[0]))

	return result.(*Node), nil
}

// UpsertRelationship creates or updates a relationship of the given type
// between two existing entities referenced by key.
func (r *Repository) UpsertRelationship(ctx context.Context, input RelationshipInput) (*Edge, error) {
	if !ValidIdentifier(input.Type) {
		return nil, ErrInvalidIdentifier{Value: input.Type}
	}
	if input.FromKey == "" || input.ToKey == "" {
		return nil, fmt.Errorf("both fromKey and toKey are required")
	}

	props := make(map[string]interface{}, len(input.Properties))
	for k, v := range input.Properties {
		props[k] = v
	}

	query := fmt.Sprintf(`
		MATCH (from {key: $fromKey})
		MATCH (to {key: $toKey})
		MERGE (from)-[r:%s]->(to)
		ON CREATE SET r.createdAt = datetime()
		SET r += $props
		RETURN r
	`, input.Type)

	session := r.writeSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]interface{}{
			"fromKey": input.FromKey,
			"toKey":   input.ToKey,
			"props":   props,
		})
		if err != nil {
			return nil, err
		}

		if !res.Next(ctx) {
			if err := res.Err(); err != nil {
				return nil, err
			}
			return nil, ErrEntityNotFound{Key: input.FromKey + " or " + input.ToKey}
		}

		relValue, _ := res.Record().Get("r")
		dbRel, ok := relValue.(neo4j.Relationship)
		if !ok {
			return nil, fmt.Errorf("unexpected relationship value %T", relValue)
		}
		edge := edgeFromDB(dbRel)
		return &edge, nil
	})
	if err != nil {
		if notFound, ok := err.(ErrEntityNotFound); ok {
			return nil, notFound
		}
		return nil, errors.NewGraphQueryFailed("upsert relationship", err)
	}

	r.logger.Info("Relationship upserted",
		zap.String("from", input.FromKey),
		zap.String("to", input.ToKey),
		zap.String("type", input.Type),
	)
	r.emitEvent(events.RelationshipUpserted(input.Type))

	return result.(*Edge), nil
}

// Reset wipes every node and relationship from the store. It returns the
// number of nodes deleted.
func (r *Repository) Reset(ctx context.Context) (int, error) {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (n) DETACH DELETE n`, nil)
		if err != nil {
			return nil, err
		}
		summary, err := res.Consume(ctx)
		if err != nil {
			return nil, err
		}
		return summary.Counters().NodesDeleted(), nil
	})
	if err != nil {
		return 0, errors.NewGraphQueryFailed("reset graph", err)
	}

	deleted := result.(int)
	r.logger.Warn("Graph reset", zap.Int("nodes_deleted", deleted))
	r.emitEvent(events.GraphReset())

	return deleted, nil
}
