// Package pipeline implements the per-(session, endpoint) action pipeline
// engine: cursor state, the compatibility check, cyclic traversal with its
// looping safeguard, and response production.
package pipeline

import (
	"context"
	"sync"

	"renkon/action"
	"renkon/endpoint"
	"renkon/ident"
	"renkon/wire"
)

// Pipeline owns the cursor for one (session, endpoint) pair. It is an
// exclusion domain of its own: Handle serializes concurrent calls on the
// same pipeline, while distinct pipelines proceed in parallel.
type Pipeline struct {
	mu         sync.Mutex
	session    ident.Session
	configured []action.Configuration
	types      *action.Registry
	cursor     int
}

// New builds a pipeline over a scenario's configured action list. The
// cursor starts at the pre-wrap sentinel so that the first advance lands
// on index 0.
func New(session ident.Session, configured []action.Configuration, types *action.Registry) *Pipeline {
	return &Pipeline{
		session:    session,
		configured: configured,
		types:      types,
		cursor:     len(configured),
	}
}

// Session returns the session this pipeline belongs to.
func (p *Pipeline) Session() ident.Session { return p.session }

// Cursor returns the current cursor position.
func (p *Pipeline) Cursor() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// IsCompatible reports whether the pipeline was built from an action list
// element-wise structurally equal to the given one. An incompatible
// pipeline is discarded and rebuilt by its responder.
func (p *Pipeline) IsCompatible(with []action.Configuration) bool {
	return action.EqualLists(p.configured, with)
}

// Handle serves one request. The cursor advances exactly once per call, so
// consecutive requests from the same session land on consecutive actions;
// actions that return absent are consumed within the same call and the
// next action is tried immediately. A full cycle without a response is a
// pipeline-looped error.
//
// The advance stands even if the request is cancelled mid-action: behavior
// stays a deterministic function of arrival order and configuration.
func (p *Pipeline) Handle(ctx context.Context, req *wire.Request, ectx *endpoint.Context) (*wire.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.configured)
	if n == 0 {
		return nil, wire.ErrNoActionsConfigured(
			"no actions configured for this endpoint in the selected scenario")
	}

	p.cursor++
	if p.cursor >= n {
		p.cursor = 0
	}

	for offset := 0; offset < n; offset++ {
		index := (p.cursor + offset) % n
		act, err := p.types.Make(p.configured[index])
		if err != nil {
			return nil, err
		}
		resp, err := act.Perform(ctx, req, ectx)
		if err != nil {
			return nil, err
		}
		if resp != nil {
			return resp, nil
		}
	}

	return nil, wire.ErrPipelineLooped(
		"pipeline looped through all actions without producing a response")
}
