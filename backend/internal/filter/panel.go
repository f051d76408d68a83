package filter

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/metadata"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/logger"
)

var (
	// ErrNotReady is returned when an apply is attempted before the
	// metadata load has succeeded.
	ErrNotReady = errors.New("filter panel is not ready")
	// ErrEmptySelection is returned when an apply is attempted with no
	// labels or no relationship types selected.
	ErrEmptySelection = errors.New("at least one label and one relationship type must be selected")
)

// State is the lifecycle phase of a mounted panel.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateErrored State = "errored"
)

// MetadataProvider supplies the label and relationship type inventory.
type MetadataProvider interface {
	GetMetadata(ctx context.Context) (*metadata.Inventory, error)
}

// Callbacks are the host's hooks. OnFilterChange receives the applied
// selection; OnError receives a user-facing message when the metadata load
// fails. Either may be nil.
type Callbacks struct {
	OnFilterChange func(labels, relationshipTypes []string)
	OnError        func(message string)
}

// Panel is the headless state container behind a filter UI. It loads the
// metadata inventory once per mount, tracks which labels and relationship
// types are selected, and hands the selection to the host on apply.
//
// A Panel is safe for concurrent use; the load completes asynchronously to
// user events.
type Panel struct {
	mu        sync.Mutex
	provider  MetadataProvider
	callbacks Callbacks
	logger    *zap.Logger

	state      State
	generation uint64

	labels   map[string]struct{}
	relTypes map[string]struct{}

	selectedLabels   map[string]struct{}
	selectedRelTypes map[string]struct{}
}

func New(provider MetadataProvider, callbacks Callbacks) *Panel {
	return &Panel{
		provider:  provider,
		callbacks: callbacks,
		logger:    logger.Get(),
		state:     StateIdle,
	}
}

// Mount loads the metadata inventory and moves the panel to Ready with
// everything selected, or to Errored. Hosts typically call it in a
// goroutine; completion is reported through the callbacks. Mounting an
// already-mounted panel is a no-op.
func (p *Panel) Mount(ctx context.Context) {
	p.mu.Lock()
	if p.state != StateIdle {
		p.mu.Unlock()
		return
	}
	p.state = StateLoading
	generation := p.generation
	p.mu.Unlock()

	inv, err := p.provider.GetMetadata(ctx)

	p.mu.Lock()
	if p.generation != generation {
		// Unmounted while loading; this result belongs to a dead mount.
		p.mu.Unlock()
		p.logger.Debug("Discarded stale filter option load")
		return
	}

	if err != nil {
		p.state = StateErrored
		onError := p.callbacks.OnError
		p.mu.Unlock()

		p.logger.Error("Failed to load filter options", zap.Error(err))
		if onError != nil {
			onError("Failed to load filter options: " + err.Error())
		}
		return
	}

	p.labels = make(map[string]struct{}, len(inv.NodeLabels))
	p.selectedLabels = make(map[string]struct{}, len(inv.NodeLabels))
	for _, l := range inv.NodeLabels {
		p.labels[l.Label] = struct{}{}
		p.selectedLabels[l.Label] = struct{}{}
	}

	p.relTypes = make(map[string]struct{}, len(inv.RelationshipTypes))
	p.selectedRelTypes = make(map[string]struct{}, len(inv.RelationshipTypes))
	for _, t := range inv.RelationshipTypes {
		p.relTypes[t.Type] = struct{}{}
		p.selectedRelTypes[t.Type] = struct{}{}
	}

	p.state = StateReady
	p.mu.Unlock()

	p.logger.Debug("Filter options loaded",
		zap.Int("labels", len(inv.NodeLabels)),
		zap.Int("relationshipTypes", len(inv.RelationshipTypes)))
}

// Unmount resets the panel to Idle. Any load still in flight for the old
// mount is discarded when it completes. No selection state survives.
func (p *Panel) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.generation++
	p.state = StateIdle
	p.labels = nil
	p.relTypes = nil
	p.selectedLabels = nil
	p.selectedRelTypes = nil
}

// ToggleLabel flips the selection of a label. Unknown labels and calls
// outside Ready are no-ops.
func (p *Panel) ToggleLabel(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateReady {
		return
	}
	if _, known := p.labels[label]; !known {
		return
	}
	if _, selected := p.selectedLabels[label]; selected {
		delete(p.selectedLabels, label)
	} else {
		p.selectedLabels[label] = struct{}{}
	}
}

// ToggleRelationshipType flips the selection of a relationship type.
// Unknown types and calls outside Ready are no-ops.
func (p *Panel) ToggleRelationshipType(relType string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateReady {
		return
	}
	if _, known := p.relTypes[relType]; !known {
		return
	}
	if _, selected := p.selectedRelTypes[relType]; selected {
		delete(p.selectedRelTypes, relType)
	} else {
		p.selectedRelTypes[relType] = struct{}{}
	}
}

// SelectAllLabels selects every known label.
func (p *Panel) SelectAllLabels() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateReady {
		return
	}
	p.selectedLabels = make(map[string]struct{}, len(p.labels))
	for label := range p.labels {
		p.selectedLabels[label] = struct{}{}
	}
}

// ClearAllLabels deselects every label.
func (p *Panel) ClearAllLabels() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateReady {
		return
	}
	p.selectedLabels = make(map[string]struct{})
}

// SelectAllRelationshipTypes selects every known relationship type.
func (p *Panel) SelectAllRelationshipTypes() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateReady {
		return
	}
	p.selectedRelTypes = make(map[string]struct{}, len(p.relTypes))
	for relType := range p.relTypes {
		p.selectedRelTypes[relType] = struct{}{}
	}
}

// ClearAllRelationshipTypes deselects every relationship type.
func (p *Panel) ClearAllRelationshipTypes() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateReady {
		return
	}
	p.selectedRelTypes = make(map[string]struct{})
}

// ApplyFilters snapshots the current selection and delivers it to the host
// via OnFilterChange. The callback arguments are sorted copies; later
// toggles do not mutate a delivered selection. With no labels or no types
// selected it returns ErrEmptySelection and the callback is not invoked.
func (p *Panel) ApplyFilters() error {
	p.mu.Lock()
	if p.state != StateReady {
		p.mu.Unlock()
		return ErrNotReady
	}
	if len(p.selectedLabels) == 0 || len(p.selectedRelTypes) == 0 {
		p.mu.Unlock()
		return ErrEmptySelection
	}

	labels := sortedKeys(p.selectedLabels)
	relTypes := sortedKeys(p.selectedRelTypes)
	onFilterChange := p.callbacks.OnFilterChange
	p.mu.Unlock()

	if onFilterChange != nil {
		onFilterChange(labels, relTypes)
	}
	return nil
}

// CanApply reports whether ApplyFilters would currently succeed. UIs bind
// this to the apply control's enabled state.
func (p *Panel) CanApply() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state == StateReady &&
		len(p.selectedLabels) > 0 &&
		len(p.selectedRelTypes) > 0
}

// State returns the current lifecycle state.
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Labels returns the loaded labels, sorted. The slice is a copy.
func (p *Panel) Labels() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return sortedKeys(p.labels)
}

// RelationshipTypes returns the loaded relationship types, sorted. The
// slice is a copy.
func (p *Panel) RelationshipTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return sortedKeys(p.relTypes)
}

// SelectedLabels returns the selected labels, sorted. The slice is a copy.
func (p *Panel) SelectedLabels() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return sortedKeys(p.selectedLabels)
}

// SelectedTypes returns the selected relationship types, sorted. The slice
// is a copy.
func (p *Panel) SelectedTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return sortedKeys(p.selectedRelTypes)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
