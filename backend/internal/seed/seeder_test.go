package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/graph"
)

type recordingStore struct {
	resets   int
	schema   int
	entities []graph.EntityInput
	rels     []graph.RelationshipInput
}

func (r *recordingStore) EnsureSchema(ctx context.Context) error {
	r.schema++
	return nil
}

func (r *recordingStore) Reset(ctx context.Context) (int, error) {
	r.resets++
	return 42, nil
}

func (r *recordingStore) UpsertEntity(ctx context.Context, input graph.EntityInput) (*graph.Node, error) {
	r.entities = append(r.entities, input)
	return &graph.Node{ID: input.Key, Labels: input.Labels}, nil
}

func (r *recordingStore) UpsertRelationship(ctx context.Context, input graph.RelationshipInput) (*graph.Edge, error) {
	r.rels = append(r.rels, input)
	return &graph.Edge{Type: input.Type}, nil
}

func TestSeeder_Seed(t *testing.T) {
	store := &recordingStore{}
	seeder := NewSeeder(store)

	result, err := seeder.Seed(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 0, store.resets)
	assert.Equal(t, 1, store.schema)
	assert.Equal(t, len(demoEntities()), result.Entities)
	assert.Equal(t, len(demoRelationships()), result.Relationships)
}

func TestSeeder_SeedForce(t *testing.T) {
	store := &recordingStore{}
	seeder := NewSeeder(store)

	result, err := seeder.Seed(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, 1, store.resets)
	assert.Equal(t, 42, result.NodesDeleted)
}

func TestDataset_KeysAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, e := range demoEntities() {
		assert.False(t, seen[e.Key], "duplicate key %s", e.Key)
		seen[e.Key] = true
	}
}

func TestDataset_IdentifiersAreValid(t *testing.T) {
	for _, e := range demoEntities() {
		require.NotEmpty(t, e.Labels, "entity %s has no labels", e.Key)
		for _, label := range e.Labels {
			assert.True(t, graph.ValidIdentifier(label), "label %q", label)
		}
		assert.NotEmpty(t, e.Key)
		assert.NotEmpty(t, e.Name, "entity %s has no name", e.Key)
	}
	for _, r := range demoRelationships() {
		assert.True(t, graph.ValidIdentifier(r.Type), "type %q", r.Type)
	}
}

func TestDataset_RelationshipsReferenceSeededEntities(t *testing.T) {
	keys := make(map[string]bool)
	for _, e := range demoEntities() {
		keys[e.Key] = true
	}

	for _, r := range demoRelationships() {
		assert.True(t, keys[r.FromKey], "unknown fromKey %s", r.FromKey)
		assert.True(t, keys[r.ToKey], "unknown toKey %s", r.ToKey)
	}
}

func TestDataset_CoversAdvertisedSchema(t *testing.T) {
	labels := make(map[string]bool)
	for _, e := range demoEntities() {
		for _, l := range e.Labels {
			labels[l] = true
		}
	}
	for _, want := range []string{"Product", "Module", "Component", "Test", "Library", "Team"} {
		assert.True(t, labels[want], "missing label %s", want)
	}

	relTypes := make(map[string]bool)
	for _, r := range demoRelationships() {
		relTypes[r.Type] = true
	}
	for _, want := range []string{"CONTAINS", "DEPENDS_ON", "VERIFIES", "USES", "MAINTAINS"} {
		assert.True(t, relTypes[want], "missing relationship type %s", want)
	}
}
