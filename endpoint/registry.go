package endpoint

import (
	"fmt"
	"strings"

	"renkon/ident"
	"renkon/pathmatch"
)

// Registry holds registered endpoints. Registration happens before the
// server runs; after that the registry is read-only, so lookups take no
// locks. Resolution walks patterns in registration order: the first
// registered match wins, by contract.
type Registry struct {
	ordered  []*Endpoint
	byID     map[ident.Endpoint]*Endpoint
	matchers map[string]*pathmatch.Matcher[*Endpoint]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:     make(map[ident.Endpoint]*Endpoint),
		matchers: make(map[string]*pathmatch.Matcher[*Endpoint]),
	}
}

// Add registers an endpoint. Because ids derive from "<METHOD>-<path>",
// rejecting duplicate ids also guarantees no two endpoints share a
// (method, path) pair.
func (r *Registry) Add(e *Endpoint) error {
	if e == nil {
		return fmt.Errorf("endpoint is nil")
	}
	if err := e.Validate(); err != nil {
		return err
	}
	if _, exists := r.byID[e.ID]; exists {
		return fmt.Errorf("endpoint %q is already registered", e.ID)
	}
	r.byID[e.ID] = e
	r.ordered = append(r.ordered, e)

	method := strings.ToUpper(e.Method)
	matcher, ok := r.matchers[method]
	if !ok {
		matcher = pathmatch.NewMatcher[*Endpoint]()
		r.matchers[method] = matcher
	}
	matcher.Match(e.Path.String(), e)
	return nil
}

// Get resolves an endpoint by id.
func (r *Registry) Get(id ident.Endpoint) (*Endpoint, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// List returns endpoints in registration order.
func (r *Registry) List() []*Endpoint {
	out := make([]*Endpoint, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of registered endpoints.
func (r *Registry) Len() int { return len(r.ordered) }

// Resolve finds the endpoint for a request method and path, plus any bound
// path parameters.
func (r *Registry) Resolve(method, path string) (*Endpoint, pathmatch.Params, bool) {
	matcher, ok := r.matchers[strings.ToUpper(method)]
	if !ok {
		return nil, pathmatch.Params{}, false
	}
	return matcher.Parse(pathmatch.New(path))
}
