package pipeline

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"renkon/action"
	"renkon/endpoint"
	"renkon/ident"
	"renkon/scenario"
	"renkon/wire"
)

// Responder owns the pipelines of one endpoint, keyed by session. Access
// to the map is serialized; each pipeline then linearizes its own calls.
type Responder struct {
	endpoint *endpoint.Endpoint
	types    *action.Registry
	logger   *zap.Logger

	mu        sync.Mutex
	pipelines map[ident.Session]*Pipeline
}

// NewResponder builds a responder for an endpoint.
func NewResponder(e *endpoint.Endpoint, types *action.Registry, logger *zap.Logger) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{
		endpoint:  e,
		types:     types,
		logger:    logger,
		pipelines: make(map[ident.Session]*Pipeline),
	}
}

// Endpoint returns the endpoint this responder serves.
func (r *Responder) Endpoint() *endpoint.Endpoint { return r.endpoint }

// Respond resolves the session's pipeline and handles the request. A
// pipeline is created lazily on the session's first request and replaced
// whenever the scenario's action list for this endpoint stops being
// structurally equal to the one the pipeline was built from; replacement
// resets the cursor to the pre-wrap sentinel. In-flight calls keep running
// on the pipeline they already hold.
func (r *Responder) Respond(ctx context.Context, req *wire.Request, scn *scenario.Scenario, session ident.Session) (*wire.Response, error) {
	actions, ok := scn.Actions(r.endpoint.ID)
	if !ok {
		return nil, wire.ErrEndpointNotInScenario(fmt.Sprintf(
			"endpoint '%s' is not configured in scenario '%s'", r.endpoint.ID, scn.ID))
	}

	ectx := &endpoint.Context{
		Endpoint: r.endpoint,
		Scenario: scn.ID,
		Session:  session,
		Logger:   r.logger.With(
			zap.String("endpoint", string(r.endpoint.ID)),
			zap.String("scenario", string(scn.ID)),
			zap.String("session", string(session)),
		),
	}

	r.mu.Lock()
	p, exists := r.pipelines[session]
	if !exists || !p.IsCompatible(actions) {
		p = New(session, actions, r.types)
		r.pipelines[session] = p
	}
	r.mu.Unlock()

	return p.Handle(ctx, req, ectx)
}

// SessionCount returns the number of live pipelines, for introspection.
func (r *Responder) SessionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pipelines)
}
