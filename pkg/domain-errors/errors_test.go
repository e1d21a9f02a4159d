package domainerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestHasCode(t *testing.T) {
	err := New(CodeConflict, "email already registered")
	if !HasCode(err, CodeConflict) {
		t.Fatalf("expected conflict code")
	}
	if HasCode(err, CodeNotFound) {
		t.Fatalf("did not expect not found code")
	}
	if HasCode(errors.New("plain"), CodeConflict) {
		t.Fatalf("plain errors carry no code")
	}
}

func TestHasCodeThroughWrapping(t *testing.T) {
	inner := New(CodeNotFound, "person not found")
	outer := fmt.Errorf("handling request: %w", inner)
	if !HasCode(outer, CodeNotFound) {
		t.Fatalf("expected code to survive fmt.Errorf wrapping")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeUnavailable, "backing store unavailable")

	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be reachable via errors.Is")
	}
	if CodeOf(err) != CodeUnavailable {
		t.Fatalf("expected unavailable code, got %s", CodeOf(err))
	}
}

func TestCodeOfDefaultsToInternal(t *testing.T) {
	if CodeOf(errors.New("boom")) != CodeInternal {
		t.Fatalf("unclassified errors default to internal")
	}
}

func TestMessageOfHidesNonDomainDetails(t *testing.T) {
	if MessageOf(errors.New("secret backend detail")) != "" {
		t.Fatalf("non-domain errors must not leak messages")
	}
	if MessageOf(New(CodeBadRequest, "name is required")) != "name is required" {
		t.Fatalf("domain messages should round-trip")
	}
}
