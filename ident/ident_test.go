package ident

import "testing"

func TestDeriveEndpoint(t *testing.T) {
	if got := DeriveEndpoint("get", "/accounts"); got != "GET-/accounts" {
		t.Errorf("derived id = %q, want GET-/accounts", got)
	}
	if got := DeriveEndpoint("POST", "/accounts/:id"); got != "POST-/accounts/:id" {
		t.Errorf("derived id = %q, want POST-/accounts/:id", got)
	}
}

func TestStringForms(t *testing.T) {
	if Action("wait").String() != "wait" {
		t.Error("Action.String")
	}
	if Scenario("flat-broke").String() != "flat-broke" {
		t.Error("Scenario.String")
	}
	if Session("abc").String() != "abc" {
		t.Error("Session.String")
	}
	if Response("zero").String() != "zero" {
		t.Error("Response.String")
	}
	if Endpoint("GET-/a").String() != "GET-/a" {
		t.Error("Endpoint.String")
	}
}
