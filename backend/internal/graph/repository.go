package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/events"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/errors"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/logger"
)

// Repository handles all Neo4j database operations
type Repository struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
	emit     func(events.Event)
}

// NewDriver creates a Neo4j driver and verifies connectivity before
// returning it. The caller owns the driver and must close it.
func NewDriver(ctx context.Context, uri, user, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, errors.NewGraphConnectionFailed(uri, err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, errors.NewGraphConnectionFailed(uri, err)
	}

	return driver, nil
}

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext, database string) *Repository {
	return &Repository{
		driver:   driver,
		database: database,
		logger:   logger.Get(),
	}
}

// SetEventEmitter wires a callback invoked after every successful mutation.
// The repository stays transport-free; the host decides where events go.
func (r *Repository) SetEventEmitter(emit func(events.Event)) {
	r.emit = emit
}

func (r *Repository) emitEvent(event events.Event) {
	if r.emit != nil {
		r.emit(event)
	}
}

// Close closes the Neo4j driver connection
func (r *Repository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

func (r *Repository) readSession(ctx context.Context) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: r.database,
	})
}

func (r *Repository) writeSession(ctx context.Context) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: r.database,
	})
}
