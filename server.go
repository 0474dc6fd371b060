// Package renkon is an embeddable mock API server. A host program declares
// endpoints with canned response catalogues, registers action types and
// scenarios, and runs the server; clients select a scenario per request
// with the x-renkon-scenario header and a session with x-renkon-session,
// and a per-(session, endpoint) action pipeline produces each response.
package renkon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"renkon/action"
	"renkon/admin"
	"renkon/endpoint"
	"renkon/ident"
	"renkon/metrics"
	"renkon/middleware"
	"renkon/pathmatch"
	"renkon/pipeline"
	"renkon/recorder"
	"renkon/scenario"
	"renkon/wire"
)

// Server is the embedding surface. Endpoints and action types are
// registered before Run and frozen for the running lifetime; scenarios may
// be added, removed, or set as default at any time.
type Server struct {
	logger      *zap.Logger
	accessLog   bool
	cors        middleware.CORSConfig
	adminPrefix string

	endpoints  *endpoint.Registry
	actions    *action.Registry
	scenarios  *scenario.Registry
	responders map[ident.Endpoint]*pipeline.Responder

	stats   *metrics.Store
	journal *recorder.Recorder

	running atomic.Bool
	ran     atomic.Bool

	mu     sync.Mutex
	engine *gin.Engine
	http   *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the zap logger used for access logs and pipeline
// contexts. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAccessLog enables the request access log.
func WithAccessLog() Option {
	return func(s *Server) { s.accessLog = true }
}

// WithCORS enables the CORS middleware.
func WithCORS(cfg middleware.CORSConfig) Option {
	return func(s *Server) {
		cfg.Enabled = true
		s.cors = cfg
	}
}

// WithAdminAPI mounts the JSON management API under the given prefix
// (e.g. "/renkon-admin").
func WithAdminAPI(prefix string) Option {
	return func(s *Server) {
		if prefix != "" {
			s.adminPrefix = prefix
		}
	}
}

// WithJournal sets the capacity of the interaction journal exposed by the
// admin API. The default keeps 1000 entries.
func WithJournal(maxEntries int) Option {
	return func(s *Server) { s.journal = recorder.New(maxEntries) }
}

// NewServer creates a server with the built-in action types registered.
func NewServer(opts ...Option) *Server {
	s := &Server{
		logger:     zap.NewNop(),
		endpoints:  endpoint.NewRegistry(),
		actions:    action.NewRegistry(),
		scenarios:  scenario.NewRegistry(),
		responders: make(map[ident.Endpoint]*pipeline.Responder),
		stats:      metrics.New(),
		journal:    recorder.New(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsRunning reports whether Run is currently serving.
func (s *Server) IsRunning() bool { return s.running.Load() }

// Scenarios exposes the scenario registry, e.g. for a config watcher.
func (s *Server) Scenarios() *scenario.Registry { return s.scenarios }

// AddEndpoint registers an endpoint. Fails while the server is running.
func (s *Server) AddEndpoint(e *endpoint.Endpoint) error {
	if s.running.Load() {
		return wire.ErrRegistrationWhileRunning("cannot add endpoints while running")
	}
	return s.endpoints.Add(e)
}

// AddEndpoints registers the endpoints accumulated by the builder
// function. Fails while the server is running.
func (s *Server) AddEndpoints(build func(*endpoint.Builder)) error {
	if s.running.Load() {
		return wire.ErrRegistrationWhileRunning("cannot add endpoints while running")
	}
	var b endpoint.Builder
	build(&b)
	for _, e := range b.Build() {
		if err := s.endpoints.Add(e); err != nil {
			return err
		}
	}
	return nil
}

// AddAction registers an action type. Fails while the server is running.
func (s *Server) AddAction(t action.Type) error {
	if s.running.Load() {
		return wire.ErrRegistrationWhileRunning("cannot add actions while running")
	}
	return s.actions.Add(t)
}

// AddActions registers the action types accumulated by the builder
// function. Fails while the server is running.
func (s *Server) AddActions(build func(*action.Builder)) error {
	if s.running.Load() {
		return wire.ErrRegistrationWhileRunning("cannot add actions while running")
	}
	var b action.Builder
	build(&b)
	for _, t := range b.Build() {
		if err := s.actions.Add(t); err != nil {
			return err
		}
	}
	return nil
}

// AddScenario registers a scenario. Allowed at any time.
func (s *Server) AddScenario(scn *scenario.Scenario) error {
	return s.scenarios.Add(scn)
}

// AddScenarios registers the scenarios accumulated by the builder
// function. Allowed at any time.
func (s *Server) AddScenarios(build func(*scenario.Builder)) error {
	var b scenario.Builder
	build(&b)
	for _, scn := range b.Build() {
		if err := s.scenarios.Add(scn); err != nil {
			return err
		}
	}
	return nil
}

// UpdateScenario registers or replaces a scenario. Allowed at any time;
// sessions whose action list changed restart their pipelines from the
// beginning on their next request.
func (s *Server) UpdateScenario(scn *scenario.Scenario) error {
	return s.scenarios.Update(scn)
}

// RemoveScenario deletes a scenario. Allowed at any time.
func (s *Server) RemoveScenario(id ident.Scenario) bool {
	return s.scenarios.Remove(id)
}

// SetDefaultScenario registers the scenario if necessary and uses it for
// requests that carry no scenario header. Allowed at any time.
func (s *Server) SetDefaultScenario(scn *scenario.Scenario) error {
	return s.scenarios.SetDefault(scn)
}

// Handler builds (once) and returns the HTTP handler: routes installed
// from the endpoint registry and the {scenario, session} middlewares
// mounted in order.
func (s *Server) Handler() http.Handler {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		s.engine = s.buildEngine()
	}
	return s.engine
}

// Run installs the routes and serves on addr, blocking until the transport
// stops. Re-entering Run fails.
func (s *Server) Run(addr string) error {
	if !s.ran.CompareAndSwap(false, true) {
		return fmt.Errorf("renkon: Run may only be entered once")
	}

	handler := s.Handler()

	for _, e := range s.endpoints.List() {
		s.logger.Info("Registered endpoint",
			zap.String("id", string(e.ID)),
			zap.String("method", e.Method),
			zap.String("path", e.Path.String()))
	}

	server := &http.Server{Addr: addr, Handler: handler}
	s.mu.Lock()
	s.http = server
	s.mu.Unlock()

	s.running.Store(true)
	defer s.running.Store(false)

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops a running server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	server := s.http
	s.mu.Unlock()
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

// buildEngine assembles the gin engine. Endpoint resolution happens
// against the registry's path matcher mounted as the fallback handler:
// gin's radix router cannot express the first-registered-wins contract.
func (s *Server) buildEngine() *gin.Engine {
	router := gin.New()

	if s.cors.Enabled {
		router.Use(middleware.CORS(s.cors))
	}
	router.Use(middleware.Logger(s.logger, s.accessLog))
	router.Use(middleware.Recovery(s.logger, false))

	if s.adminPrefix != "" {
		adminHandler := admin.New(s.endpoints, s.scenarios, s.journal, s.stats)
		adminHandler.RegisterRoutes(router, s.adminPrefix)
	}

	// Mock dispatch: {scenario, session} selection, then the pipeline.
	router.NoRoute(middleware.Scenario(s.scenarios), middleware.Session(), s.dispatch)

	return router
}

func (s *Server) dispatch(c *gin.Context) {
	scn, ok := middleware.SelectedScenario(c)
	if !ok {
		middleware.AbortWithError(c, fmt.Errorf("no scenario selected"))
		return
	}
	session, ok := middleware.SelectedSession(c)
	if !ok {
		middleware.AbortWithError(c, fmt.Errorf("no session selected"))
		return
	}

	start := time.Now()
	method := c.Request.Method
	path := c.Request.URL.Path

	ep, params, found := s.endpoints.Resolve(method, path)
	if !found {
		s.handleNotFound(c)
		return
	}

	requestContentType := c.GetHeader("Content-Type")
	if !ep.RequestType.Accepts(requestContentType) {
		s.renderError(c, ep, requestContentType, wire.ErrUnsupportedMediaType(fmt.Sprintf(
			"endpoint '%s' does not accept content type '%s'", ep.ID, requestContentType)))
		s.record(c, ep, scn, session, "", start)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		body = []byte{}
	}

	req := wire.NewRequest(method, pathmatch.New(path), ep.RequestType)
	req.Params = params
	req.Query = c.Request.URL.Query()
	req.Header = c.Request.Header
	req.Body = body

	ctx := c.Request.Context()

	// Scenario-level delay, applied once before pipeline entry.
	if delay := scn.Options.DelayAllRequests; delay > 0 {
		if err := sleepContext(ctx, delay); err != nil {
			return
		}
	}

	responder := s.responderFor(ep)
	resp, err := responder.Respond(ctx, req, scn, session)
	if err != nil {
		s.renderError(c, ep, requestContentType, err)
		s.record(c, ep, scn, session, "", start)
		return
	}

	s.writeResponse(c, ep, scn, requestContentType, resp)
	s.record(c, ep, scn, session, string(resp.ID), start)
}

// responderFor returns the per-endpoint responder, creating it on first
// use. Responders live for the server's lifetime.
func (s *Server) responderFor(ep *endpoint.Endpoint) *pipeline.Responder {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.responders[ep.ID]
	if !ok {
		r = pipeline.NewResponder(ep, s.actions, s.logger)
		s.responders[ep.ID] = r
	}
	return r
}

func (s *Server) writeResponse(c *gin.Context, ep *endpoint.Endpoint, scn *scenario.Scenario, requestContentType string, resp *wire.Response) {
	contentType := resp.ContentType
	if contentType == "" {
		contentType = resp.Header.Get("Content-Type")
	}
	if contentType == "" {
		contentType = ep.ResponseType.CanonicalFor(requestContentType)
	}

	for key, values := range resp.Header {
		if key == "Content-Type" {
			continue
		}
		for _, value := range values {
			c.Writer.Header().Add(key, value)
		}
	}

	if resp.Stream != nil {
		s.writeStream(c, scn, resp, contentType)
		return
	}

	body, err := resp.Encode(wire.CodecFor(ep.ResponseType))
	if err != nil {
		s.renderError(c, ep, requestContentType, err)
		return
	}

	if len(resp.Trailer) > 0 {
		declareTrailers(c, resp)
		c.Data(resp.Status, contentType, body)
		setTrailers(c, resp)
		return
	}
	c.Data(resp.Status, contentType, body)
}

// writeStream drives a long-lived response under the scenario's maximum
// stream lifetime. Exceeding the cap cancels the stream's context, which
// is the transport's normal cancellation.
func (s *Server) writeStream(c *gin.Context, scn *scenario.Scenario, resp *wire.Response, contentType string) {
	ctx := c.Request.Context()
	if lifetime := scn.Options.MaximumStreamLifetime; lifetime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, lifetime)
		defer cancel()
	}

	declareTrailers(c, resp)
	c.Writer.Header().Set("Content-Type", contentType)
	c.Writer.WriteHeader(resp.Status)
	c.Writer.Flush()

	if err := resp.Stream(ctx, c.Writer); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warn("Stream ended with error", zap.Error(err))
	}
	setTrailers(c, resp)
	c.Writer.Flush()
}

func declareTrailers(c *gin.Context, resp *wire.Response) {
	for key := range resp.Trailer {
		c.Writer.Header().Add("Trailer", key)
	}
}

func setTrailers(c *gin.Context, resp *wire.Response) {
	for key, values := range resp.Trailer {
		for _, value := range values {
			c.Writer.Header().Add(http.TrailerPrefix+key, value)
		}
	}
}

// renderError renders a taxonomy error in the endpoint's response family.
func (s *Server) renderError(c *gin.Context, ep *endpoint.Endpoint, requestContentType string, err error) {
	if ep != nil && ep.ResponseType == wire.Protobuf {
		middleware.AbortWithProtobufError(c, err, ep.ResponseType.CanonicalFor(requestContentType))
		return
	}
	middleware.AbortWithError(c, err)
}

// handleNotFound handles requests that resolve to no endpoint.
func (s *Server) handleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": gin.H{
			"code":    "NOT_FOUND",
			"message": "The requested resource was not found",
			"path":    c.Request.URL.Path,
		},
	})
}

func (s *Server) record(c *gin.Context, ep *endpoint.Endpoint, scn *scenario.Scenario, session ident.Session, responseID string, start time.Time) {
	durationMs := time.Since(start).Milliseconds()
	status := c.Writer.Status()
	s.stats.Record(ep.Method, ep.Path.String(), string(scn.ID), status, durationMs)
	s.journal.Record(&recorder.Interaction{
		Timestamp:  start,
		Method:     ep.Method,
		Path:       c.Request.URL.Path,
		Scenario:   string(scn.ID),
		Session:    string(session),
		ResponseID: responseID,
		Status:     status,
		DurationMs: durationMs,
	})
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
