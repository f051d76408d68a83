package checks

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// IconReport is the outcome of diffing the icon registry against the labels
// currently present in the graph.
type IconReport struct {
	Missing []string // labels in the graph with no registered icon
	Orphans []string // registered labels that no longer exist in the graph
}

// OK reports whether every live label has an icon. Orphan entries are
// tolerated; they only warrant a warning.
func (r IconReport) OK() bool {
	return len(r.Missing) == 0
}

func (r IconReport) String() string {
	if r.OK() && len(r.Orphans) == 0 {
		return "all labels have icons"
	}
	parts := make([]string, 0, 2)
	if len(r.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing icons: %s", strings.Join(r.Missing, ", ")))
	}
	if len(r.Orphans) > 0 {
		parts = append(parts, fmt.Sprintf("orphan registry entries: %s", strings.Join(r.Orphans, ", ")))
	}
	return strings.Join(parts, "; ")
}

// LoadIconRegistry reads a JSON object mapping node labels to icon asset
// paths, as maintained by the frontend.
func LoadIconRegistry(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read icon registry: %w", err)
	}

	var registry map[string]string
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse icon registry: %w", err)
	}
	return registry, nil
}

// CheckIcons diffs the registry against the live label set. A registry entry
// with an empty asset path counts as missing.
func CheckIcons(registry map[string]string, labels []string) IconReport {
	live := make(map[string]struct{}, len(labels))
	report := IconReport{Missing: []string{}, Orphans: []string{}}

	for _, label := range labels {
		live[label] = struct{}{}
		if asset, ok := registry[label]; !ok || asset == "" {
			report.Missing = append(report.Missing, label)
		}
	}
	for label := range registry {
		if _, ok := live[label]; !ok {
			report.Orphans = append(report.Orphans, label)
		}
	}

	sort.Strings(report.Missing)
	sort.Strings(report.Orphans)
	return report
}
