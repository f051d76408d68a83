package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/graph"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/metadata"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/config"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/errors"
)

type mockStore struct {
	view    *graph.Subgraph
	node    *graph.Node
	edge    *graph.Edge
	err     error
	gotArgs struct {
		labels   []string
		relTypes []string
		limit    int
	}
}

func (m *mockStore) Subgraph(ctx context.Context, labels, relTypes []string, limit int) (*graph.Subgraph, error) {
	m.gotArgs.labels = labels
	m.gotArgs.relTypes = relTypes
	m.gotArgs.limit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.view, nil
}

func (m *mockStore) UpsertEntity(ctx context.Context, input graph.EntityInput) (*graph.Node, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.node, nil
}

func (m *mockStore) UpsertRelationship(ctx context.Context, input graph.RelationshipInput) (*graph.Edge, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.edge, nil
}

type mockMetadata struct {
	inventory *metadata.Inventory
	err       error
}

func (m *mockMetadata) GetMetadata(ctx context.Context) (*metadata.Inventory, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.inventory, nil
}

type mockEvents struct{}

func (m *mockEvents) ServeWS(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(http.StatusSwitchingProtocols)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Env:         "development",
		CORSOrigins: []string{"http://localhost:5173"},
	}
}

func newTestRouter(store *mockStore, meta *mockMetadata) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(testConfig(), Dependencies{
		Store:    store,
		Metadata: meta,
		Events:   &mockEvents{},
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&mockStore{}, &mockMetadata{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "ok", response["status"])
}

func TestMetadataEndpoint(t *testing.T) {
	meta := &mockMetadata{
		inventory: &metadata.Inventory{
			NodeLabels: []metadata.LabelCount{
				{Label: "Module", Count: 12},
				{Label: "Product", Count: 3},
			},
			RelationshipTypes: []metadata.RelationshipTypeCount{
				{Type: "CONTAINS", Count: 20},
			},
		},
	}
	router := newTestRouter(&mockStore{}, meta)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/metadata", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		NodeLabels []struct {
			Label string `json:"label"`
			Count int64  `json:"count"`
		} `json:"nodeLabels"`
		RelationshipTypes []struct {
			Type  string `json:"type"`
			Count int64  `json:"count"`
		} `json:"relationshipTypes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.NodeLabels, 2)
	assert.Equal(t, "Module", response.NodeLabels[0].Label)
	assert.Equal(t, int64(12), response.NodeLabels[0].Count)
	require.Len(t, response.RelationshipTypes, 1)
	assert.Equal(t, "CONTAINS", response.RelationshipTypes[0].Type)
}

func TestMetadataEndpoint_Unavailable(t *testing.T) {
	meta := &mockMetadata{
		err: errors.NewMetadataUnavailable(fmt.Errorf("connection refused")),
	}
	router := newTestRouter(&mockStore{}, meta)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/metadata", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.NotEmpty(t, response["error"])
}

func TestGraphEndpoint(t *testing.T) {
	store := &mockStore{
		view: &graph.Subgraph{
			Nodes: []graph.Node{{ID: "n1", Labels: []string{"Module"}, Properties: map[string]interface{}{"name": "Checkout"}}},
			Edges: []graph.Edge{},
			Stats: graph.SubgraphStats{NodeCount: 1, EdgeCount: 0, Limit: 100},
		},
	}
	router := newTestRouter(store, &mockMetadata{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/graph?labels=Module,Product&types=CONTAINS&limit=100", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Module", "Product"}, store.gotArgs.labels)
	assert.Equal(t, []string{"CONTAINS"}, store.gotArgs.relTypes)
	assert.Equal(t, 100, store.gotArgs.limit)

	var response struct {
		Nodes []graph.Node        `json:"nodes"`
		Edges []graph.Edge        `json:"edges"`
		Stats graph.SubgraphStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Nodes, 1)
	assert.Equal(t, 1, response.Stats.NodeCount)
}

func TestGraphEndpoint_EmptySelection(t *testing.T) {
	router := newTestRouter(&mockStore{}, &mockMetadata{})

	for _, url := range []string{
		"/api/graph",
		"/api/graph?labels=&types=CONTAINS",
		"/api/graph?labels=Module&types=",
		"/api/graph?labels=,,&types=CONTAINS",
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", url, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "url: %s", url)
	}
}

func TestGraphEndpoint_InvalidLimit(t *testing.T) {
	router := newTestRouter(&mockStore{}, &mockMetadata{})

	for _, url := range []string{
		"/api/graph?labels=Module&types=CONTAINS&limit=abc",
		"/api/graph?labels=Module&types=CONTAINS&limit=0",
		"/api/graph?labels=Module&types=CONTAINS&limit=-5",
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", url, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "url: %s", url)
	}
}

func TestUpsertNodeEndpoint(t *testing.T) {
	store := &mockStore{
		node: &graph.Node{ID: "n1", Labels: []string{"Module"}, Properties: map[string]interface{}{"key": "checkout"}},
	}
	router := newTestRouter(store, &mockMetadata{})

	body, _ := json.Marshal(map[string]interface{}{
		"labels": []string{"Module"},
		"key":    "checkout",
		"name":   "Checkout",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/graph/nodes", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpsertNodeEndpoint_InvalidRequest(t *testing.T) {
	router := newTestRouter(&mockStore{}, &mockMetadata{})

	// Missing required fields.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/graph/nodes", bytes.NewBuffer([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpsertNodeEndpoint_InvalidLabel(t *testing.T) {
	store := &mockStore{err: graph.ErrInvalidIdentifier{Value: "Bad Label"}}
	router := newTestRouter(store, &mockMetadata{})

	body, _ := json.Marshal(map[string]interface{}{
		"labels": []string{"Bad Label"},
		"key":    "k",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/graph/nodes", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpsertRelationshipEndpoint(t *testing.T) {
	store := &mockStore{
		edge: &graph.Edge{ID: "e1", Source: "n1", Target: "n2", Type: "CONTAINS"},
	}
	router := newTestRouter(store, &mockMetadata{})

	body, _ := json.Marshal(map[string]interface{}{
		"fromKey": "product-nova",
		"toKey":   "checkout",
		"type":    "CONTAINS",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/graph/relationships", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response graph.Edge
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "CONTAINS", response.Type)
}

func TestUpsertRelationshipEndpoint_MissingEndpoint(t *testing.T) {
	store := &mockStore{err: graph.ErrEntityNotFound{Key: "product-nova or checkout"}}
	router := newTestRouter(store, &mockMetadata{})

	body, _ := json.Marshal(map[string]interface{}{
		"fromKey": "product-nova",
		"toKey":   "checkout",
		"type":    "CONTAINS",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/graph/relationships", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
