// Package config loads scenario declarations from a YAML file and keeps a
// running server's scenario registry in sync with it.
package config

import (
	"fmt"
	"time"

	"renkon/action"
	"renkon/boxed"
	"renkon/ident"
	"renkon/scenario"
)

// ==================== File schema ====================

type File struct {
	DefaultScenario string           `yaml:"default_scenario"`
	Scenarios       []ScenarioConfig `yaml:"scenarios"`
}

type ScenarioConfig struct {
	ID          string           `yaml:"id"`
	DisplayName string           `yaml:"display_name"`
	Description string           `yaml:"description"`
	Options     OptionsConfig    `yaml:"options"`
	Endpoints   []EndpointConfig `yaml:"endpoints"`
}

type OptionsConfig struct {
	MaximumStreamLifetimeMs int64          `yaml:"maximum_stream_lifetime_ms"`
	DelayAllRequestsMs      int64          `yaml:"delay_all_requests_ms"`
	Custom                  map[string]any `yaml:"custom"`
}

type EndpointConfig struct {
	Endpoint string         `yaml:"endpoint"` // endpoint id, e.g. "GET-/accounts"
	Actions  []ActionConfig `yaml:"actions"`
}

type ActionConfig struct {
	ID            string         `yaml:"id"`
	Configuration map[string]any `yaml:"configuration"`
}

// ==================== Conversion ====================

// Build converts the file into registry values plus the default scenario
// id ("" when none is declared).
func (f *File) Build() ([]*scenario.Scenario, ident.Scenario, error) {
	out := make([]*scenario.Scenario, 0, len(f.Scenarios))
	for i, sc := range f.Scenarios {
		if sc.ID == "" {
			return nil, "", fmt.Errorf("scenario %d: id is required", i)
		}
		scn := scenario.New(ident.Scenario(sc.ID), nil)
		scn.DisplayName = sc.DisplayName
		scn.Description = sc.Description
		if sc.Options.MaximumStreamLifetimeMs > 0 {
			scn.Options.MaximumStreamLifetime = time.Duration(sc.Options.MaximumStreamLifetimeMs) * time.Millisecond
		}
		if sc.Options.DelayAllRequestsMs > 0 {
			scn.Options.DelayAllRequests = time.Duration(sc.Options.DelayAllRequestsMs) * time.Millisecond
		}
		if len(sc.Options.Custom) > 0 {
			custom := make(map[string]boxed.Value, len(sc.Options.Custom))
			for key, value := range sc.Options.Custom {
				custom[key] = boxed.FromAny(value)
			}
			scn.Options.Custom = custom
		}
		for _, ep := range sc.Endpoints {
			if ep.Endpoint == "" {
				return nil, "", fmt.Errorf("scenario %q: endpoint id is required", sc.ID)
			}
			actions := make([]action.Configuration, 0, len(ep.Actions))
			for j, ac := range ep.Actions {
				if ac.ID == "" {
					return nil, "", fmt.Errorf("scenario %q, endpoint %q: action %d has no id", sc.ID, ep.Endpoint, j)
				}
				values := make(map[string]boxed.Value, len(ac.Configuration))
				for key, value := range ac.Configuration {
					values[key] = boxed.FromAny(value)
				}
				actions = append(actions, action.NewConfiguration(ident.Action(ac.ID), values))
			}
			scn.Endpoints[ident.Endpoint(ep.Endpoint)] = actions
		}
		out = append(out, scn)
	}
	return out, ident.Scenario(f.DefaultScenario), nil
}
