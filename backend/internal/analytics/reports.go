package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/errors"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/logger"
)

// RowReader runs a read-only query and returns flat records.
type RowReader interface {
	ReadRows(ctx context.Context, query string, params map[string]interface{}) ([]map[string]interface{}, error)
}

// Report is a named, fixed query whose rows are exported as one JSON file.
type Report struct {
	Name  string
	query string
}

// Reports returns the full analytics catalog in export order.
func Reports() []Report {
	return []Report{
		{
			Name: "moduleStats",
			query: `
				MATCH (m:Module)
				OPTIONAL MATCH (m)-[:CONTAINS]->(c:Component)
				WITH m, count(DISTINCT c) AS components
				OPTIONAL MATCH (m)-[:DEPENDS_ON]->(d:Module)
				WITH m, components, count(DISTINCT d) AS dependencies
				OPTIONAL MATCH (t:Test)-[:VERIFIES]->(m)
				RETURN m.name AS module, components, dependencies, count(DISTINCT t) AS tests
				ORDER BY module
			`,
		},
		{
			Name: "testStats",
			query: `
				MATCH (t:Test)
				OPTIONAL MATCH (t)-[:VERIFIES]->(m:Module)
				WITH t, count(DISTINCT m) AS modulesVerified
				RETURN t.name AS test, modulesVerified, modulesVerified > 0 AS covered
				ORDER BY test
			`,
		},
		{
			Name: "dependencyStats",
			query: `
				MATCH (l:Library)
				OPTIONAL MATCH (m:Module)-[:USES]->(l)
				WITH l, collect(DISTINCT m.name) AS modules
				RETURN l.name AS library, modules, size(modules) AS dependents
				ORDER BY library
			`,
		},
	}
}

// Exporter materializes every report as <name>.json under a directory.
type Exporter struct {
	store  RowReader
	dir    string
	logger *zap.Logger
}

func NewExporter(store RowReader, dir string) *Exporter {
	return &Exporter{
		store:  store,
		dir:    dir,
		logger: logger.Get(),
	}
}

// Export runs the full catalog and returns the written file paths. Each file
// is written atomically (temp file + rename), so a failed run never leaves a
// half-written report behind.
func (e *Exporter) Export(ctx context.Context) ([]string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}

	written := make([]string, 0, len(Reports()))
	for _, report := range Reports() {
		rows, err := e.store.ReadRows(ctx, report.query, nil)
		if err != nil {
			return written, errors.NewReportFailed(report.Name, err)
		}

		path, err := e.writeJSON(report.Name, rows)
		if err != nil {
			return written, errors.NewReportFailed(report.Name, err)
		}

		e.logger.Info("Report written",
			zap.String("report", report.Name),
			zap.Int("rows", len(rows)),
			zap.String("path", path),
		)
		written = append(written, path)
	}

	return written, nil
}

func (e *Exporter) writeJSON(name string, rows []map[string]interface{}) (string, error) {
	if rows == nil {
		rows = []map[string]interface{}{}
	}

	tmp, err := os.CreateTemp(e.dir, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to flush report: %w", err)
	}

	path := filepath.Join(e.dir, name+".json")
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to move report into place: %w", err)
	}
	return path, nil
}
