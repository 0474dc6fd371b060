// Package scenario implements named scenarios: a mapping from endpoint id
// to an ordered action configuration list, plus scalar options, held in a
// registry that may be reconfigured while the server is running.
package scenario

import (
	"encoding/json"
	"math"
	"time"

	"renkon/action"
	"renkon/boxed"
	"renkon/ident"
)

// Options are the scenario's scalar options.
type Options struct {
	// MaximumStreamLifetime bounds the wall-clock lifetime of long-lived
	// streaming responses. The default is effectively unbounded.
	MaximumStreamLifetime time.Duration
	// DelayAllRequests, when positive, is applied once per request before
	// pipeline entry.
	DelayAllRequests time.Duration
	// Custom carries user-extensible options.
	Custom map[string]boxed.Value
}

// DefaultOptions returns options with the maximum stream lifetime at its
// maximum value.
func DefaultOptions() Options {
	return Options{MaximumStreamLifetime: time.Duration(math.MaxInt64)}
}

// Scenario maps each endpoint to its ordered action list. Scenarios are
// treated as immutable values once registered; reconfiguration replaces
// the whole value in the registry.
type Scenario struct {
	ID          ident.Scenario
	DisplayName string
	Description string
	Options     Options
	Endpoints   map[ident.Endpoint][]action.Configuration
}

// New builds a scenario with default options.
func New(id ident.Scenario, endpoints map[ident.Endpoint][]action.Configuration) *Scenario {
	if endpoints == nil {
		endpoints = map[ident.Endpoint][]action.Configuration{}
	}
	return &Scenario{ID: id, Options: DefaultOptions(), Endpoints: endpoints}
}

// Actions returns the configured action list for an endpoint.
func (s *Scenario) Actions(id ident.Endpoint) ([]action.Configuration, bool) {
	actions, ok := s.Endpoints[id]
	return actions, ok
}

type optionsJSON struct {
	MaximumStreamLifetimeNs int64                  `json:"maximum_stream_lifetime_ns"`
	DelayAllRequestsNs      int64                  `json:"delay_all_requests_ns,omitempty"`
	Custom                  map[string]boxed.Value `json:"custom,omitempty"`
}

type scenarioJSON struct {
	ID          ident.Scenario                               `json:"id"`
	DisplayName string                                       `json:"display_name,omitempty"`
	Description string                                       `json:"description,omitempty"`
	Options     optionsJSON                                  `json:"options"`
	Endpoints   map[ident.Endpoint][]action.Configuration `json:"endpoints"`
}

// MarshalJSON serializes the scenario so that unmarshaling yields an equal
// value, except for boxed values whose tag the smallest JSON form does not
// carry: bytes come back as strings, floats as doubles, and integral
// doubles as ints.
func (s *Scenario) MarshalJSON() ([]byte, error) {
	endpoints := s.Endpoints
	if endpoints == nil {
		endpoints = map[ident.Endpoint][]action.Configuration{}
	}
	return json.Marshal(scenarioJSON{
		ID:          s.ID,
		DisplayName: s.DisplayName,
		Description: s.Description,
		Options: optionsJSON{
			MaximumStreamLifetimeNs: int64(s.Options.MaximumStreamLifetime),
			DelayAllRequestsNs:      int64(s.Options.DelayAllRequests),
			Custom:                  s.Options.Custom,
		},
		Endpoints: endpoints,
	})
}

// UnmarshalJSON parses the serialized form.
func (s *Scenario) UnmarshalJSON(data []byte) error {
	var raw scenarioJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ID = raw.ID
	s.DisplayName = raw.DisplayName
	s.Description = raw.Description
	s.Options = Options{
		MaximumStreamLifetime: time.Duration(raw.Options.MaximumStreamLifetimeNs),
		DelayAllRequests:      time.Duration(raw.Options.DelayAllRequestsNs),
		Custom:                raw.Options.Custom,
	}
	if raw.Endpoints == nil {
		raw.Endpoints = map[ident.Endpoint][]action.Configuration{}
	}
	s.Endpoints = raw.Endpoints
	return nil
}
