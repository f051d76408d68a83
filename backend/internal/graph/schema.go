package graph

import (
	"context"

	"go.uber.org/zap"
)

// EnsureSchema creates the uniqueness constraints and indexes the demo graph
// relies on. Statements use IF NOT EXISTS and individual failures are logged
// rather than fatal, so reruns and older server versions stay usable.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT product_key_unique IF NOT EXISTS FOR (p:Product) REQUIRE p.key IS UNIQUE",
		"CREATE CONSTRAINT module_key_unique IF NOT EXISTS FOR (m:Module) REQUIRE m.key IS UNIQUE",
		"CREATE CONSTRAINT component_key_unique IF NOT EXISTS FOR (c:Component) REQUIRE c.key IS UNIQUE",
		"CREATE CONSTRAINT test_key_unique IF NOT EXISTS FOR (t:Test) REQUIRE t.key IS UNIQUE",
		"CREATE CONSTRAINT library_key_unique IF NOT EXISTS FOR (l:Library) REQUIRE l.key IS UNIQUE",
		"CREATE CONSTRAINT team_key_unique IF NOT EXISTS FOR (t:Team) REQUIRE t.key IS UNIQUE",
	}

	for _, constraint := range constraints {
		if _, err := session.Run(ctx, constraint, nil); err != nil {
			r.logger.Warn("Failed to create constraint (may already exist)",
				zap.String("constraint", constraint),
				zap.Error(err),
			)
		}
	}

	indexes := []string{
		"CREATE INDEX product_name IF NOT EXISTS FOR (p:Product) ON (p.name)",
		"CREATE INDEX module_name IF NOT EXISTS FOR (m:Module) ON (m.name)",
		"CREATE INDEX component_name IF NOT EXISTS FOR (c:Component) ON (c.name)",
		"CREATE INDEX test_name IF NOT EXISTS FOR (t:Test) ON (t.name)",
		"CREATE INDEX library_name IF NOT EXISTS FOR (l:Library) ON (l.name)",
		"CREATE INDEX team_name IF NOT EXISTS FOR (t:Team) ON (t.name)",
	}

	for _, index := range indexes {
		if _, err := session.Run(ctx, index, nil); err != nil {
			r.logger.Warn("Failed to create index (may already exist)",
				zap.String("index", index),
				zap.Error(err),
			)
		}
	}

	// Full-text search over names; not supported by every server version.
	fullText := "CREATE FULLTEXT INDEX entity_names IF NOT EXISTS FOR (n:Product|Module|Component|Test|Library|Team) ON EACH [n.name, n.description]"
	if _, err := session.Run(ctx, fullText, nil); err != nil {
		r.logger.Warn("Failed to create full-text index (may be unsupported)", zap.Error(err))
	}

	r.logger.Info("Schema ensured",
		zap.Int("constraints", len(constraints)),
		zap.Int("indexes", len(indexes)),
	)
	return nil
}
