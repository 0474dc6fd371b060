package scenario

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"renkon/action"
	"renkon/boxed"
	"renkon/ident"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func respond(id string) action.Configuration {
	return action.NewConfiguration("return-response", map[string]boxed.Value{
		"response-id": boxed.String(id),
	})
}

func sample() *Scenario {
	scn := New("flat-broke", map[ident.Endpoint][]action.Configuration{
		"GET-/accounts": {respond("zero-balance")},
	})
	scn.DisplayName = "Flat Broke"
	scn.Description = "Every account is empty"
	scn.Options.DelayAllRequests = 50 * time.Millisecond
	scn.Options.Custom = map[string]boxed.Value{"tier": boxed.String("basic")}
	return scn
}

// ── options ───────────────────────────────────────────────────────────────────

func TestDefaultOptions_MaxStreamLifetime(t *testing.T) {
	opts := DefaultOptions()
	if opts.MaximumStreamLifetime != time.Duration(math.MaxInt64) {
		t.Errorf("default stream lifetime = %v, want maximum", opts.MaximumStreamLifetime)
	}
	if opts.DelayAllRequests != 0 {
		t.Errorf("default delay = %v, want 0", opts.DelayAllRequests)
	}
}

func TestNew_DefaultsOptionsAndEndpoints(t *testing.T) {
	scn := New("s", nil)
	if scn.Endpoints == nil {
		t.Error("endpoints map must not be nil")
	}
	if scn.Options.MaximumStreamLifetime != time.Duration(math.MaxInt64) {
		t.Error("options must default")
	}
}

// ── action lookup ─────────────────────────────────────────────────────────────

func TestActions(t *testing.T) {
	scn := sample()
	actions, ok := scn.Actions("GET-/accounts")
	if !ok || len(actions) != 1 {
		t.Fatalf("Actions = (%v, %v)", actions, ok)
	}
	if _, ok := scn.Actions("GET-/other"); ok {
		t.Error("unknown endpoint must miss")
	}
}

// ── JSON round trip ───────────────────────────────────────────────────────────

func TestScenario_JSONRoundTrip(t *testing.T) {
	original := sample()

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Scenario
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.ID != original.ID {
		t.Errorf("id = %q, want %q", decoded.ID, original.ID)
	}
	if decoded.DisplayName != original.DisplayName {
		t.Errorf("display name = %q", decoded.DisplayName)
	}
	if decoded.Description != original.Description {
		t.Errorf("description = %q", decoded.Description)
	}
	if decoded.Options.MaximumStreamLifetime != original.Options.MaximumStreamLifetime {
		t.Errorf("stream lifetime = %v, want %v",
			decoded.Options.MaximumStreamLifetime, original.Options.MaximumStreamLifetime)
	}
	if decoded.Options.DelayAllRequests != original.Options.DelayAllRequests {
		t.Errorf("delay = %v, want %v",
			decoded.Options.DelayAllRequests, original.Options.DelayAllRequests)
	}
	if !decoded.Options.Custom["tier"].Equal(original.Options.Custom["tier"]) {
		t.Error("custom options did not survive the round trip")
	}
	if !action.EqualLists(decoded.Endpoints["GET-/accounts"], original.Endpoints["GET-/accounts"]) {
		t.Error("endpoint action lists did not survive the round trip")
	}
}

func TestScenario_JSONRoundTrip_EmptyEndpoints(t *testing.T) {
	original := New("empty", nil)
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Scenario
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Endpoints == nil {
		t.Error("endpoints must decode to an empty map, not nil")
	}
}
