package crawler

import (
	"net/url"
	"strings"
	"testing"
)

func TestConfig_ListPageURL(t *testing.T) {
	cfg := testConfig()

	raw := cfg.ListPageURL(3)
	if !strings.HasPrefix(raw, cfg.BaseURL+"?") {
		t.Fatalf("expected URL to start with base URL, got %q", raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("ListPageURL produced unparseable URL: %v", err)
	}

	q := u.Query()
	checks := map[string]string{
		"search":          "true",
		"category[]":      "100",
		"page":            "3",
		"cost_min":        "0",
		"cost_max":        "9",
		"power_min":       "0",
		"power_max":       "55000",
		"combo_power_min": "0",
		"combo_power_max": "10000",
	}
	for key, want := range checks {
		if got := q.Get(key); got != want {
			t.Errorf("param %s = %q, want %q", key, got, want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := testConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestConfig_Validate_MissingCategory(t *testing.T) {
	cfg := testConfig()
	cfg.Category = ""

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing category")
	}
}

func TestConfig_Validate_EmptyAllowSet(t *testing.T) {
	cfg := testConfig()
	cfg.Rarities = nil

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty rarity allow-set")
	}
}

func TestConfig_Validate_BadBaseURL(t *testing.T) {
	cfg := testConfig()
	cfg.BaseURL = "not a url"

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for malformed base URL")
	}
}

func TestConfig_AllowSet(t *testing.T) {
	cfg := testConfig()
	cfg.Rarities = []string{"r", "SR"}

	set := cfg.AllowSet()
	if !set.Contains("R") || !set.Contains("SR") {
		t.Errorf("allow-set missing members: %v", set.Tokens())
	}
	if set.Contains("SCR") {
		t.Error("allow-set should not contain SCR")
	}
}
