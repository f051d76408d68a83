package checks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/graph"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/metadata"
)

const demoIndexHTML = `<!doctype html>
<html>
  <head><title>Knowledge Graph</title></head>
  <body>
    <div id="root"></div>
    <script type="module" src="/assets/index-4f2a1c.js"></script>
  </body>
</html>`

type fakeAPIOptions struct {
	healthStatus  string
	acceptEmpty   bool
	strayRelLabel bool
}

func newFakeAPI(t *testing.T, opts fakeAPIOptions) *httptest.Server {
	t.Helper()
	if opts.healthStatus == "" {
		opts.healthStatus = "ok"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"status": opts.healthStatus})
	})
	mux.HandleFunc("/api/metadata", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, metadata.Inventory{
			NodeLabels: []metadata.LabelCount{
				{Label: "Module", Count: 12},
				{Label: "Product", Count: 3},
			},
			RelationshipTypes: []metadata.RelationshipTypeCount{
				{Type: "CONTAINS", Count: 20},
			},
		})
	})
	mux.HandleFunc("/api/graph", func(w http.ResponseWriter, r *http.Request) {
		labels := r.URL.Query().Get("labels")
		types := r.URL.Query().Get("types")
		if labels == "" || types == "" {
			if opts.acceptEmpty {
				writeJSON(t, w, http.StatusOK, graph.Subgraph{Nodes: []graph.Node{}, Edges: []graph.Edge{}})
			} else {
				writeJSON(t, w, http.StatusBadRequest, map[string]string{
					"error": "at least one label and one relationship type must be selected",
				})
			}
			return
		}

		edgeType := "CONTAINS"
		if opts.strayRelLabel {
			edgeType = "DEPENDS_ON"
		}
		writeJSON(t, w, http.StatusOK, graph.Subgraph{
			Nodes: []graph.Node{
				{ID: "n1", Labels: []string{"Module"}, Properties: map[string]interface{}{"name": "checkout"}},
				{ID: "n2", Labels: []string{"Module"}, Properties: map[string]interface{}{"name": "billing"}},
			},
			Edges: []graph.Edge{
				{ID: "e1", Source: "n1", Target: "n2", Type: edgeType},
			},
			Stats: graph.SubgraphStats{NodeCount: 2, EdgeCount: 1, Limit: 50},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newFakeWeb(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, payload interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

func resultByName(t *testing.T, results []CheckResult, name string) CheckResult {
	t.Helper()
	for _, result := range results {
		if result.Name == name {
			return result
		}
	}
	t.Fatalf("no check named %q in %v", name, results)
	return CheckResult{}
}

func TestDemoValidator_AllPass(t *testing.T) {
	api := newFakeAPI(t, fakeAPIOptions{})
	web := newFakeWeb(t, demoIndexHTML)

	results := NewDemoValidator(api.URL, web.URL).Run(context.Background())
	require.Len(t, results, 5)
	for _, result := range results {
		assert.True(t, result.Passed, "%s failed: %s", result.Name, result.Detail)
	}

	meta := resultByName(t, results, "metadata inventory")
	assert.Contains(t, meta.Detail, "2 labels")
	filtered := resultByName(t, results, "filtered graph")
	assert.Contains(t, filtered.Detail, "Module/CONTAINS")
}

func TestDemoValidator_EmptySelectionAccepted(t *testing.T) {
	api := newFakeAPI(t, fakeAPIOptions{acceptEmpty: true})
	web := newFakeWeb(t, demoIndexHTML)

	results := NewDemoValidator(api.URL, web.URL).Run(context.Background())

	empty := resultByName(t, results, "empty selection rejected")
	assert.False(t, empty.Passed)
	assert.Contains(t, empty.Detail, "expected 400, got 200")

	// The misbehaving endpoint must not drag healthy checks down with it.
	assert.True(t, resultByName(t, results, "api health").Passed)
	assert.True(t, resultByName(t, results, "filtered graph").Passed)
}

func TestDemoValidator_EdgeOutsideSelection(t *testing.T) {
	api := newFakeAPI(t, fakeAPIOptions{strayRelLabel: true})
	web := newFakeWeb(t, demoIndexHTML)

	results := NewDemoValidator(api.URL, web.URL).Run(context.Background())

	filtered := resultByName(t, results, "filtered graph")
	assert.False(t, filtered.Passed)
	assert.Contains(t, filtered.Detail, "DEPENDS_ON")
}

func TestDemoValidator_WebMissingRoot(t *testing.T) {
	api := newFakeAPI(t, fakeAPIOptions{})
	web := newFakeWeb(t, `<html><body><p>placeholder</p></body></html>`)

	results := NewDemoValidator(api.URL, web.URL).Run(context.Background())

	webCheck := resultByName(t, results, "web index")
	assert.False(t, webCheck.Passed)
	assert.Contains(t, webCheck.Detail, "#root")
}

func TestDemoValidator_WebMissingScripts(t *testing.T) {
	api := newFakeAPI(t, fakeAPIOptions{})
	web := newFakeWeb(t, `<html><body><div id="root"></div></body></html>`)

	results := NewDemoValidator(api.URL, web.URL).Run(context.Background())

	webCheck := resultByName(t, results, "web index")
	assert.False(t, webCheck.Passed)
	assert.Contains(t, webCheck.Detail, "script")
}

func TestDemoValidator_UnhealthyAPI(t *testing.T) {
	api := newFakeAPI(t, fakeAPIOptions{healthStatus: "degraded"})
	web := newFakeWeb(t, demoIndexHTML)

	results := NewDemoValidator(api.URL, web.URL).Run(context.Background())

	health := resultByName(t, results, "api health")
	assert.False(t, health.Passed)
	assert.Contains(t, health.Detail, "degraded")
}

func TestDemoValidator_APIUnreachable(t *testing.T) {
	api := newFakeAPI(t, fakeAPIOptions{})
	api.Close()
	web := newFakeWeb(t, demoIndexHTML)

	results := NewDemoValidator(api.URL, web.URL).Run(context.Background())
	require.Len(t, results, 5)

	assert.False(t, resultByName(t, results, "api health").Passed)
	assert.False(t, resultByName(t, results, "metadata inventory").Passed)
	assert.False(t, resultByName(t, results, "filtered graph").Passed)
	assert.True(t, resultByName(t, results, "web index").Passed)
}
