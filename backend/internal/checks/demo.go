package checks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/graph"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/metadata"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/logger"
)

// CheckResult is the outcome of one demo validation probe.
type CheckResult struct {
	Name   string
	Passed bool
	Detail string
}

// DemoValidator probes a running API server and frontend and reports whether
// the demo deployment works end to end.
type DemoValidator struct {
	apiBase string
	webBase string
	client  *http.Client
	logger  *zap.Logger
}

func NewDemoValidator(apiBase, webBase string) *DemoValidator {
	return &DemoValidator{
		apiBase: strings.TrimRight(apiBase, "/"),
		webBase: strings.TrimRight(webBase, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger.Get(),
	}
}

// Run executes every check and returns their results in a fixed order.
// Checks record pass/fail in their result rather than returning an error, so
// one failing probe never cancels its siblings.
func (v *DemoValidator) Run(ctx context.Context) []CheckResult {
	var (
		health    CheckResult
		meta      CheckResult
		empty     CheckResult
		web       CheckResult
		inventory metadata.Inventory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { health = v.checkHealth(gctx); return nil })
	g.Go(func() error { meta, inventory = v.checkMetadata(gctx); return nil })
	g.Go(func() error { empty = v.checkEmptySelection(gctx); return nil })
	g.Go(func() error { web = v.checkWebIndex(gctx); return nil })
	_ = g.Wait()

	// Needs the live inventory to pick a selection, so it runs after the
	// metadata probe has finished.
	filtered := v.checkFilteredGraph(ctx, inventory)

	results := []CheckResult{health, meta, filtered, empty, web}
	for _, result := range results {
		if result.Passed {
			v.logger.Debug("Check passed", zap.String("check", result.Name))
		} else {
			v.logger.Warn("Check failed",
				zap.String("check", result.Name),
				zap.String("detail", result.Detail),
			)
		}
	}
	return results
}

func (v *DemoValidator) checkHealth(ctx context.Context) CheckResult {
	result := CheckResult{Name: "api health"}

	var payload struct {
		Status string `json:"status"`
	}
	status, err := v.getJSON(ctx, v.apiBase+"/health", &payload)
	if err != nil {
		result.Detail = err.Error()
		return result
	}
	if status != http.StatusOK {
		result.Detail = fmt.Sprintf("expected 200, got %d", status)
		return result
	}
	if payload.Status != "ok" {
		result.Detail = fmt.Sprintf("unexpected health status %q", payload.Status)
		return result
	}
	result.Passed = true
	return result
}

func (v *DemoValidator) checkMetadata(ctx context.Context) (CheckResult, metadata.Inventory) {
	result := CheckResult{Name: "metadata inventory"}

	var inventory metadata.Inventory
	status, err := v.getJSON(ctx, v.apiBase+"/api/metadata", &inventory)
	if err != nil {
		result.Detail = err.Error()
		return result, inventory
	}
	if status != http.StatusOK {
		result.Detail = fmt.Sprintf("expected 200, got %d", status)
		return result, inventory
	}
	if len(inventory.NodeLabels) == 0 {
		result.Detail = "no node labels; is the graph seeded?"
		return result, inventory
	}

	seen := make(map[string]struct{}, len(inventory.NodeLabels))
	for _, label := range inventory.NodeLabels {
		if label.Label == "" || label.Count < 1 {
			result.Detail = fmt.Sprintf("invalid label entry %q (count %d)", label.Label, label.Count)
			return result, inventory
		}
		if _, dup := seen[label.Label]; dup {
			result.Detail = fmt.Sprintf("duplicate label %q", label.Label)
			return result, inventory
		}
		seen[label.Label] = struct{}{}
	}

	result.Passed = true
	result.Detail = fmt.Sprintf("%d labels, %d relationship types",
		len(inventory.NodeLabels), len(inventory.RelationshipTypes))
	return result, inventory
}

func (v *DemoValidator) checkFilteredGraph(ctx context.Context, inventory metadata.Inventory) CheckResult {
	result := CheckResult{Name: "filtered graph"}
	if len(inventory.NodeLabels) == 0 || len(inventory.RelationshipTypes) == 0 {
		result.Detail = "no labels or relationship types to select"
		return result
	}

	label := inventory.NodeLabels[0].Label
	relType := inventory.RelationshipTypes[0].Type
	endpoint := fmt.Sprintf("%s/api/graph?labels=%s&types=%s&limit=50",
		v.apiBase, url.QueryEscape(label), url.QueryEscape(relType))

	var view graph.Subgraph
	status, err := v.getJSON(ctx, endpoint, &view)
	if err != nil {
		result.Detail = err.Error()
		return result
	}
	if status != http.StatusOK {
		result.Detail = fmt.Sprintf("expected 200, got %d", status)
		return result
	}
	if len(view.Nodes) == 0 {
		result.Detail = fmt.Sprintf("selection %s/%s returned no nodes", label, relType)
		return result
	}
	for _, node := range view.Nodes {
		if !hasLabel(node.Labels, label) {
			result.Detail = fmt.Sprintf("node %s does not carry selected label %s", node.ID, label)
			return result
		}
	}
	for _, edge := range view.Edges {
		if edge.Type != relType {
			result.Detail = fmt.Sprintf("edge %s has type %s outside selection %s", edge.ID, edge.Type, relType)
			return result
		}
	}

	result.Passed = true
	result.Detail = fmt.Sprintf("%d nodes, %d edges for %s/%s",
		len(view.Nodes), len(view.Edges), label, relType)
	return result
}

func (v *DemoValidator) checkEmptySelection(ctx context.Context) CheckResult {
	result := CheckResult{Name: "empty selection rejected"}

	status, err := v.getJSON(ctx, v.apiBase+"/api/graph?labels=&types=", nil)
	if err != nil {
		result.Detail = err.Error()
		return result
	}
	if status != http.StatusBadRequest {
		result.Detail = fmt.Sprintf("expected 400, got %d", status)
		return result
	}
	result.Passed = true
	return result
}

func (v *DemoValidator) checkWebIndex(ctx context.Context) CheckResult {
	result := CheckResult{Name: "web index"}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.webBase+"/", nil)
	if err != nil {
		result.Detail = fmt.Sprintf("failed to create request: %v", err)
		return result
	}
	resp, err := v.client.Do(req)
	if err != nil {
		result.Detail = fmt.Sprintf("request failed: %v", err)
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Detail = fmt.Sprintf("expected 200, got %d", resp.StatusCode)
		return result
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		result.Detail = fmt.Sprintf("failed to parse index.html: %v", err)
		return result
	}
	if doc.Find("#root").Length() == 0 {
		result.Detail = "index.html has no #root mount point"
		return result
	}
	scripts := doc.Find("script[src]").Length()
	if scripts == 0 {
		result.Detail = "index.html references no script bundles"
		return result
	}

	result.Passed = true
	result.Detail = fmt.Sprintf("%d script bundles", scripts)
	return result
}

// getJSON issues a GET and decodes the body into out when the response is
// 200. Non-200 bodies are skipped so callers can report the status instead.
func (v *DemoValidator) getJSON(ctx context.Context, endpoint string, out interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func hasLabel(labels []string, want string) bool {
	for _, label := range labels {
		if label == want {
			return true
		}
	}
	return false
}
