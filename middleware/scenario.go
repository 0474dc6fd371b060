// Package middleware provides the gin middlewares mounted by the server:
// scenario selection, session selection, access logging, panic recovery,
// and CORS. The selection middlewares run before routing so that routing
// targets already know their scenario and session.
package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"renkon/ident"
	"renkon/scenario"
	"renkon/wire"
)

// Wire headers.
const (
	// ScenarioHeader selects the active scenario for a request.
	ScenarioHeader = "x-renkon-scenario"
	// SessionHeader selects the session for a request.
	SessionHeader = "x-renkon-session"
)

// Context keys under which the selections are stored.
const (
	ScenarioKey = "renkon_scenario"
	SessionKey  = "renkon_session"
)

// Scenario returns a middleware that resolves the active scenario from the
// x-renkon-scenario header. A header naming an unknown scenario, or a
// missing header with no default configured, aborts with 403.
func Scenario(registry *scenario.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.GetHeader(ScenarioHeader)
		if name == "" {
			def, ok := registry.Default()
			if !ok {
				AbortWithError(c, wire.ErrScenarioHeaderMissing(fmt.Sprintf(
					"no scenario selected: set the '%s' header or configure a default scenario",
					ScenarioHeader)))
				return
			}
			c.Set(ScenarioKey, def)
			c.Next()
			return
		}

		scn, ok := registry.Get(ident.Scenario(name))
		if !ok {
			AbortWithError(c, wire.ErrScenarioUnknown(fmt.Sprintf(
				"scenario '%s' does not exist", name)))
			return
		}
		c.Set(ScenarioKey, scn)
		c.Next()
	}
}

// SelectedScenario returns the scenario attached by the Scenario
// middleware.
func SelectedScenario(c *gin.Context) (*scenario.Scenario, bool) {
	value, exists := c.Get(ScenarioKey)
	if !exists {
		return nil, false
	}
	scn, ok := value.(*scenario.Scenario)
	return scn, ok
}
