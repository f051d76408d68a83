package metadata

import (
	"context"

	"go.uber.org/zap"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/errors"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/logger"
)

// Store is the slice of the graph store the metadata service needs.
type Store interface {
	Metadata(ctx context.Context) (*Inventory, error)
}

// Service answers "what labels and relationship types exist right now?".
// It never returns a partial inventory: any store failure surfaces as a
// MetadataUnavailable error and the caller decides whether to retry.
type Service struct {
	store Store
	log   *zap.Logger
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		log:   logger.Get(),
	}
}

// GetMetadata fetches the current inventory from the store.
func (s *Service) GetMetadata(ctx context.Context) (*Inventory, error) {
	inv, err := s.store.Metadata(ctx)
	if err != nil {
		s.log.Error("Failed to fetch metadata inventory", zap.Error(err))
		return nil, errors.NewMetadataUnavailable(err)
	}

	s.log.Debug("Fetched metadata inventory",
		zap.Int("labels", len(inv.NodeLabels)),
		zap.Int("relationshipTypes", len(inv.RelationshipTypes)))

	return inv, nil
}
