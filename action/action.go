// Package action defines the unit of pipeline work: a configured behavior
// that either produces a response, fails, or defers to the next action.
package action

import (
	"context"
	"fmt"

	"renkon/boxed"
	"renkon/endpoint"
	"renkon/ident"
	"renkon/wire"
)

// Action is one configured pipeline step. Perform has three outcomes:
// a non-nil response (the pipeline terminates and the server encodes it),
// an error (the pipeline terminates and the error propagates), or
// (nil, nil) — absent — which advances the pipeline to the next action.
type Action interface {
	Perform(ctx context.Context, req *wire.Request, ectx *endpoint.Context) (*wire.Response, error)
	// MakeConfiguration re-serializes the action. For every built-in,
	// constructing from a configuration and serializing again is
	// idempotent.
	MakeConfiguration() Configuration
}

// Type binds an action id to its constructor.
type Type struct {
	ID   ident.Action
	Make func(Configuration) (Action, error)
}

// Registry is the action-type table. It is populated before the server
// runs and read-only afterwards.
type Registry struct {
	types map[ident.Action]Type
}

// NewRegistry creates a registry pre-loaded with the built-in action types.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[ident.Action]Type)}
	_ = r.Add(ReturnResponseType())
	_ = r.Add(WaitType())
	return r
}

// Add registers an action type.
func (r *Registry) Add(t Type) error {
	if t.ID == "" {
		return fmt.Errorf("action type id is required")
	}
	if t.Make == nil {
		return fmt.Errorf("action type %q has no constructor", t.ID)
	}
	if _, exists := r.types[t.ID]; exists {
		return fmt.Errorf("action type %q is already registered", t.ID)
	}
	r.types[t.ID] = t
	return nil
}

// Get resolves a type by id.
func (r *Registry) Get(id ident.Action) (Type, bool) {
	t, ok := r.types[id]
	return t, ok
}

// Make constructs an action instance from a configuration. An id absent
// from the table is an unknown-action-type error.
func (r *Registry) Make(cfg Configuration) (Action, error) {
	t, ok := r.types[cfg.ID]
	if !ok {
		return nil, wire.ErrUnknownActionType(
			fmt.Sprintf("action type '%s' is not registered", cfg.ID))
	}
	return t.Make(cfg)
}

// Builder accumulates action types for batch registration.
type Builder struct {
	types []Type
}

// Add appends a type.
func (b *Builder) Add(t Type) *Builder {
	b.types = append(b.types, t)
	return b
}

// AddIf appends a type only when cond holds.
func (b *Builder) AddIf(cond bool, t Type) *Builder {
	if cond {
		b.types = append(b.types, t)
	}
	return b
}

// Build returns the accumulated list.
func (b *Builder) Build() []Type {
	out := make([]Type, len(b.types))
	copy(out, b.types)
	return out
}

// requireValue reads a required configuration key.
func requireValue(cfg Configuration, key string) (boxed.Value, error) {
	v, ok := cfg.Configuration[key]
	if !ok {
		return boxed.Null(), wire.ErrConfigPropertyMissing(
			fmt.Sprintf("action '%s' requires configuration key '%s'", cfg.ID, key))
	}
	return v, nil
}
