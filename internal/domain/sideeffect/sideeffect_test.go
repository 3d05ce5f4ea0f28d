package sideeffect

import (
	"errors"
	"testing"
)

func TestOutcomeOK(t *testing.T) {
	var out Outcome
	if !out.OK() {
		t.Fatal("empty outcome should be OK")
	}

	out.Record("calendar_event", errors.New("boom"))
	if !out.OK() {
		t.Fatal("side-effect failure must not affect OK")
	}

	out.Primary = errors.New("insert failed")
	if out.OK() {
		t.Fatal("primary failure should not be OK")
	}
}

func TestOutcomeFailed(t *testing.T) {
	var out Outcome
	out.Record("a", nil)
	out.Record("b", errors.New("boom"))
	out.Record("c", nil)
	out.Record("d", errors.New("bang"))

	failed := out.Failed()
	if len(failed) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(failed))
	}
	if failed[0].Name != "b" || failed[1].Name != "d" {
		t.Fatalf("unexpected failures: %v", failed)
	}
}
