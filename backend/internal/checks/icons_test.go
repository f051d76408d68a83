package checks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/logger"
)

func init() {
	logger.Init("development")
}

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadIconRegistry(t *testing.T) {
	path := writeRegistry(t, `{
		"Module": "icons/module.svg",
		"Product": "icons/product.svg"
	}`)

	registry, err := LoadIconRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Module":  "icons/module.svg",
		"Product": "icons/product.svg",
	}, registry)
}

func TestLoadIconRegistry_MissingFile(t *testing.T) {
	_, err := LoadIconRegistry(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read icon registry")
}

func TestLoadIconRegistry_InvalidJSON(t *testing.T) {
	path := writeRegistry(t, `["not", "an", "object"]`)
	_, err := LoadIconRegistry(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse icon registry")
}

func TestCheckIcons_AllCovered(t *testing.T) {
	registry := map[string]string{
		"Module":  "icons/module.svg",
		"Product": "icons/product.svg",
	}

	report := CheckIcons(registry, []string{"Module", "Product"})
	assert.True(t, report.OK())
	assert.Empty(t, report.Missing)
	assert.Empty(t, report.Orphans)
	assert.Equal(t, "all labels have icons", report.String())
}

func TestCheckIcons_MissingAndOrphans(t *testing.T) {
	registry := map[string]string{
		"Module": "icons/module.svg",
		"Legacy": "icons/legacy.svg",
	}

	report := CheckIcons(registry, []string{"Team", "Module", "Component"})
	assert.False(t, report.OK())
	assert.Equal(t, []string{"Component", "Team"}, report.Missing)
	assert.Equal(t, []string{"Legacy"}, report.Orphans)
	assert.Contains(t, report.String(), "missing icons: Component, Team")
	assert.Contains(t, report.String(), "orphan registry entries: Legacy")
}

func TestCheckIcons_EmptyAssetCountsAsMissing(t *testing.T) {
	registry := map[string]string{"Module": ""}

	report := CheckIcons(registry, []string{"Module"})
	assert.False(t, report.OK())
	assert.Equal(t, []string{"Module"}, report.Missing)
}

func TestCheckIcons_OrphansAloneStillOK(t *testing.T) {
	registry := map[string]string{
		"Module": "icons/module.svg",
		"Legacy": "icons/legacy.svg",
	}

	report := CheckIcons(registry, []string{"Module"})
	assert.True(t, report.OK())
	assert.Equal(t, []string{"Legacy"}, report.Orphans)
}
