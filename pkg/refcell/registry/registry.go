// Package registry tracks named reference cells for diagnostics.
//
// A process that leans on global cells tends to accumulate them across
// packages. Tracking them in one place makes "which cells exist, and which
// currently hold a value" answerable at runtime — in a debug endpoint, a
// crash dump, or a test asserting that every scoped registration was cleared.
//
// Track cells where they're declared:
//
//	var config = refcell.NewRef[AppConfig](refcell.WithName("app-config"))
//
//	func init() {
//	    registry.MustTrack("app-config", config)
//	}
//
// and snapshot anywhere:
//
//	for name, registered := range registry.Snapshot() {
//	    fmt.Println(name, registered)
//	}
package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Probe reports whether a cell currently holds a registration. Both cell
// kinds in pkg/refcell implement it.
type Probe interface {
	Registered() bool
}

// Sentinel errors for tracking.
var (
	// ErrNameRequired indicates Track was called with an empty name.
	ErrNameRequired = errors.New("cell name is required")

	// ErrNilProbe indicates Track was called with a nil probe.
	ErrNilProbe = errors.New("probe is required")

	// ErrDuplicateName indicates the name is already tracked.
	ErrDuplicateName = errors.New("cell name already tracked")
)

// Tracker is a thread-safe collection of named cells.
// It uses sync.RWMutex for optimal read-heavy workloads.
type Tracker struct {
	mu    sync.RWMutex
	cells map[string]Probe
}

// New creates a new empty tracker.
func New() *Tracker {
	return &Tracker{
		cells: make(map[string]Probe),
	}
}

// Track adds a cell under a unique name.
func (t *Tracker) Track(name string, probe Probe) error {
	if name == "" {
		return ErrNameRequired
	}
	if probe == nil {
		return ErrNilProbe
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.cells[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	t.cells[name] = probe
	return nil
}

// MustTrack tracks a cell, panicking on error. Intended for package init.
func (t *Tracker) MustTrack(name string, probe Probe) {
	if err := t.Track(name, probe); err != nil {
		panic(err)
	}
}

// Untrack removes a cell by name. Removing an unknown name is a no-op.
func (t *Tracker) Untrack(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.cells, name)
}

// List returns the tracked cell names, sorted.
func (t *Tracker) List() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.cells))
	for name := range t.cells {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Snapshot reports, per tracked cell, whether it currently holds a value.
// The probes run outside any registration they observe; a snapshot taken
// concurrently with a registration reflects each cell's state at probe time.
func (t *Tracker) Snapshot() map[string]bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	states := make(map[string]bool, len(t.cells))
	for name, probe := range t.cells {
		states[name] = probe.Registered()
	}
	return states
}

// Len returns the number of tracked cells.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.cells)
}

// Default is the process-wide tracker used by the package-level functions.
var Default = New()

// Track adds a cell to the default tracker.
func Track(name string, probe Probe) error {
	return Default.Track(name, probe)
}

// MustTrack adds a cell to the default tracker, panicking on error.
func MustTrack(name string, probe Probe) {
	Default.MustTrack(name, probe)
}

// Untrack removes a cell from the default tracker.
func Untrack(name string) {
	Default.Untrack(name)
}

// List returns the default tracker's cell names, sorted.
func List() []string {
	return Default.List()
}

// Snapshot reports each default-tracked cell's current state.
func Snapshot() map[string]bool {
	return Default.Snapshot()
}
