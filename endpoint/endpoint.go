// Package endpoint implements declarative endpoints: a (method, path) pair
// with a fixed catalogue of canned responses, keyed by response id.
package endpoint

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"renkon/ident"
	"renkon/pathmatch"
	"renkon/wire"
)

// Context travels alongside the request through actions and response
// factories.
type Context struct {
	Endpoint *Endpoint
	Scenario ident.Scenario
	Session  ident.Session
	Logger   *zap.Logger
}

// ResponseFactory produces a response envelope for a request. Factories are
// either static (fixed content captured at declaration) or dynamic
// (computed per call); either way the catalogue itself is immutable once
// the endpoint is registered.
type ResponseFactory func(req *wire.Request, ctx *Context) (*wire.Response, error)

// Responses is an endpoint's response catalogue.
type Responses map[ident.Response]ResponseFactory

// Static builds a factory whose status and content are fixed at declaration
// time.
func Static(status int, content any) ResponseFactory {
	return func(*wire.Request, *Context) (*wire.Response, error) {
		return wire.NewResponse("", status, content), nil
	}
}

// Endpoint is immutable once registered.
type Endpoint struct {
	ID           ident.Endpoint
	Method       string
	Path         pathmatch.Path
	Description  string
	Responses    Responses
	RequestType  wire.ContentType
	ResponseType wire.ContentType
}

// Option configures an endpoint at declaration.
type Option func(*Endpoint)

// WithID overrides the derived "<METHOD>-<path>" identifier.
func WithID(id ident.Endpoint) Option {
	return func(e *Endpoint) { e.ID = id }
}

// WithDescription attaches a human-readable description.
func WithDescription(d string) Option {
	return func(e *Endpoint) { e.Description = d }
}

// New declares a JSON endpoint: request and response content type json.
func New(method, path string, responses Responses, opts ...Option) *Endpoint {
	e := &Endpoint{
		Method:       strings.ToUpper(method),
		Path:         pathmatch.New(path),
		Responses:    responses,
		RequestType:  wire.JSON,
		ResponseType: wire.JSON,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.ID == "" {
		e.ID = ident.DeriveEndpoint(e.Method, path)
	}
	return e
}

// NewProtobuf declares a Protobuf unary endpoint: request and response
// content type protobuf, covering the grpc, grpc-web, and grpc-web-text
// variants.
func NewProtobuf(method, path string, responses Responses, opts ...Option) *Endpoint {
	e := New(method, path, responses, opts...)
	e.RequestType = wire.Protobuf
	e.ResponseType = wire.Protobuf
	return e
}

// Validate checks the declaration.
func (e *Endpoint) Validate() error {
	if e.Method == "" {
		return fmt.Errorf("endpoint %q: method is required", e.ID)
	}
	if e.Path.IsEmpty() && e.Path.String() != "/" {
		return fmt.Errorf("endpoint %q: path is required", e.ID)
	}
	return nil
}

// Response resolves a factory from the catalogue.
func (e *Endpoint) Response(id ident.Response) (ResponseFactory, bool) {
	factory, ok := e.Responses[id]
	return factory, ok
}
