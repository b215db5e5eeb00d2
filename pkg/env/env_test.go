package env

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("PLANNER_ENV_TEST", "  value ")
	if got := Get("PLANNER_ENV_TEST", "fallback"); got != "value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}

	t.Setenv("PLANNER_ENV_TEST", "   ")
	if got := Get("PLANNER_ENV_TEST", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for blank value, got %q", got)
	}

	if got := Get("PLANNER_ENV_TEST_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for unset value, got %q", got)
	}
}
