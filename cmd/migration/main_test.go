package main

import (
	"errors"
	"testing"

	"github.com/riskibarqy/booze-baton/internal/platform/logging"
)

func TestParseSteps(t *testing.T) {
	if steps, err := parseSteps(nil); err != nil || steps != 1 {
		t.Fatalf("expected default of 1 step, got %d err=%v", steps, err)
	}
	if steps, err := parseSteps([]string{" 3 "}); err != nil || steps != 3 {
		t.Fatalf("expected 3 steps, got %d err=%v", steps, err)
	}
	for _, raw := range []string{"0", "-2", "x"} {
		if _, err := parseSteps([]string{raw}); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if v, err := parseVersion("2"); err != nil || v != 2 {
		t.Fatalf("unexpected version %d err=%v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if target, err := parseTarget("7"); err != nil || target != 7 {
		t.Fatalf("unexpected target %d err=%v", target, err)
	}
	if _, err := parseTarget("seven"); err == nil {
		t.Fatalf("expected error for non-numeric target")
	}
}

func TestRunRequiresCommandAndDBURL(t *testing.T) {
	if err := run(nil, logging.NewNop()); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}

	t.Setenv("DB_URL", "")
	if err := run([]string{"up"}, logging.NewNop()); err == nil {
		t.Fatalf("expected error without DB_URL")
	}
}

func TestWithPreparedBinaryResult(t *testing.T) {
	got := withPreparedBinaryResult("postgres://localhost/booze_baton", true)
	if got != "postgres://localhost/booze_baton?disable_prepared_binary_result=yes" {
		t.Fatalf("unexpected url: %s", got)
	}
	if got := withPreparedBinaryResult("postgres://localhost/booze_baton", false); got != "postgres://localhost/booze_baton" {
		t.Fatalf("expected unchanged url, got %s", got)
	}
}
