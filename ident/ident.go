// Package ident defines the namespaced identifier types used across the
// server. Each namespace is a distinct Go type, so two identifiers compare
// equal only when both the namespace and the string match.
package ident

import "strings"

// Action identifies a registered action type (e.g. "return-response").
type Action string

// Endpoint identifies a registered endpoint.
type Endpoint string

// Response identifies an entry in an endpoint's response catalogue.
type Response string

// Scenario identifies a registered scenario.
type Scenario string

// Session identifies a client session. The value comes from the
// x-renkon-session header, or is a freshly minted UUID when absent.
type Session string

// DeriveEndpoint builds the default endpoint identifier for a method and
// path pattern: "<METHOD>-<path>". Two endpoints with the same method and
// path therefore collide on id, which the registry rejects.
func DeriveEndpoint(method, path string) Endpoint {
	return Endpoint(strings.ToUpper(method) + "-" + path)
}

func (a Action) String() string   { return string(a) }
func (e Endpoint) String() string { return string(e) }
func (r Response) String() string { return string(r) }
func (s Scenario) String() string { return string(s) }
func (s Session) String() string  { return string(s) }
