package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/graph"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/logger"
)

// Store is the slice of the graph repository the seeder drives.
type Store interface {
	EnsureSchema(ctx context.Context) error
	Reset(ctx context.Context) (int, error)
	UpsertEntity(ctx context.Context, input graph.EntityInput) (*graph.Node, error)
	UpsertRelationship(ctx context.Context, input graph.RelationshipInput) (*graph.Edge, error)
}

// Result reports what a seeding run touched.
type Result struct {
	Entities      int
	Relationships int
	NodesDeleted  int
}

// Seeder loads the demo knowledge graph. Runs are idempotent: entities merge
// on their keys, so reseeding updates in place.
type Seeder struct {
	store  Store
	logger *zap.Logger
}

func NewSeeder(store Store) *Seeder {
	return &Seeder{
		store:  store,
		logger: logger.Get(),
	}
}

// Seed ensures the schema and merges the demo dataset. With force, the store
// is wiped first so the run recreates everything from scratch.
func (s *Seeder) Seed(ctx context.Context, force bool) (*Result, error) {
	result := &Result{}

	if force {
		deleted, err := s.store.Reset(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to reset before seeding: %w", err)
		}
		result.NodesDeleted = deleted
		s.logger.Info("Cleared store before seeding", zap.Int("nodes_deleted", deleted))
	}

	if err := s.store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	for _, entity := range demoEntities() {
		if _, err := s.store.UpsertEntity(ctx, entity); err != nil {
			return nil, fmt.Errorf("failed to seed entity %s: %w", entity.Key, err)
		}
		result.Entities++
	}

	for _, rel := range demoRelationships() {
		if _, err := s.store.UpsertRelationship(ctx, rel); err != nil {
			return nil, fmt.Errorf("failed to seed relationship %s-[%s]->%s: %w",
				rel.FromKey, rel.Type, rel.ToKey, err)
		}
		result.Relationships++
	}

	s.logger.Info("Demo graph seeded",
		zap.Int("entities", result.Entities),
		zap.Int("relationships", result.Relationships),
	)
	return result, nil
}
