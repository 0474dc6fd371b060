package scenario

import (
	"fmt"
	"sort"
	"sync"

	"renkon/ident"
)

// Registry is the read-write scenario store. Unlike endpoints and action
// types it accepts changes at any time, including while the server is
// running; a single lock is its exclusion domain. Stored scenarios are
// immutable values, so a reader's pointer is a point-in-time snapshot for
// the duration of its request.
type Registry struct {
	mu         sync.RWMutex
	scenarios  map[ident.Scenario]*Scenario
	defaultID  ident.Scenario
	hasDefault bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{scenarios: make(map[ident.Scenario]*Scenario)}
}

// Add registers a scenario. Ids are globally unique within a server;
// duplicates are rejected.
func (r *Registry) Add(s *Scenario) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("scenario id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.scenarios[s.ID]; exists {
		return fmt.Errorf("scenario %q is already registered", s.ID)
	}
	r.scenarios[s.ID] = s
	return nil
}

// Update registers or replaces a scenario.
func (r *Registry) Update(s *Scenario) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("scenario id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenarios[s.ID] = s
	return nil
}

// Remove deletes a scenario and reports whether it existed. Removing the
// default scenario clears the default.
func (r *Registry) Remove(id ident.Scenario) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.scenarios[id]; !exists {
		return false
	}
	delete(r.scenarios, id)
	if r.hasDefault && r.defaultID == id {
		r.hasDefault = false
		r.defaultID = ""
	}
	return true
}

// SetDefault registers the scenario if needed and marks it as the default
// used when a request carries no scenario header.
func (r *Registry) SetDefault(s *Scenario) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("scenario id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenarios[s.ID] = s
	r.defaultID = s.ID
	r.hasDefault = true
	return nil
}

// ClearDefault removes the default selection without removing the scenario.
func (r *Registry) ClearDefault() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hasDefault = false
	r.defaultID = ""
}

// Get resolves a scenario by id.
func (r *Registry) Get(id ident.Scenario) (*Scenario, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scenarios[id]
	return s, ok
}

// Default returns the default scenario, if one is configured.
func (r *Registry) Default() (*Scenario, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.hasDefault {
		return nil, false
	}
	s, ok := r.scenarios[r.defaultID]
	return s, ok
}

// List returns all scenarios sorted by id.
func (r *Registry) List() []*Scenario {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Scenario, 0, len(r.scenarios))
	for _, s := range r.scenarios {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered scenarios.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.scenarios)
}

// Apply atomically replaces the registry contents, used by the config
// watcher on hot reload. An empty defaultID keeps the previous default if
// that scenario still exists, and clears it otherwise.
func (r *Registry) Apply(scenarios []*Scenario, defaultID ident.Scenario) error {
	next := make(map[ident.Scenario]*Scenario, len(scenarios))
	for _, s := range scenarios {
		if s == nil || s.ID == "" {
			return fmt.Errorf("scenario id is required")
		}
		if _, exists := next[s.ID]; exists {
			return fmt.Errorf("scenario %q is declared twice", s.ID)
		}
		next[s.ID] = s
	}
	if defaultID != "" {
		if _, ok := next[defaultID]; !ok {
			return fmt.Errorf("default scenario %q is not declared", defaultID)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenarios = next
	switch {
	case defaultID != "":
		r.defaultID = defaultID
		r.hasDefault = true
	case r.hasDefault:
		if _, ok := next[r.defaultID]; !ok {
			r.hasDefault = false
			r.defaultID = ""
		}
	}
	return nil
}

// Builder accumulates scenarios for batch registration.
type Builder struct {
	scenarios []*Scenario
}

// Add appends a scenario.
func (b *Builder) Add(s *Scenario) *Builder {
	if s != nil {
		b.scenarios = append(b.scenarios, s)
	}
	return b
}

// AddIf appends a scenario only when cond holds.
func (b *Builder) AddIf(cond bool, s *Scenario) *Builder {
	if cond {
		b.Add(s)
	}
	return b
}

// Build returns the accumulated list.
func (b *Builder) Build() []*Scenario {
	out := make([]*Scenario, len(b.scenarios))
	copy(out, b.scenarios)
	return out
}
