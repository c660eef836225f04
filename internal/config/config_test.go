package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config file to be written: %v", err)
	}
	if cfg.Engine.MaxOutputChars != 2000 || cfg.Engine.AssistantName != "Beacon" {
		t.Fatalf("unexpected defaults: %+v", cfg.Engine)
	}
	if cfg.Policy.Strict {
		t.Fatal("expected strict mode off by default")
	}
}

func TestLoadFrom_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
  "engine": {"max_output_chars": 500, "assistant_name": "Faro"},
  "policy": {"strict": true},
  "log": {"level": "debug"}
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom error: %v", err)
	}
	if cfg.Engine.MaxOutputChars != 500 {
		t.Fatalf("expected max_output_chars 500, got %d", cfg.Engine.MaxOutputChars)
	}
	if cfg.Engine.AssistantName != "Faro" {
		t.Fatalf("expected assistant name Faro, got %q", cfg.Engine.AssistantName)
	}
	if !cfg.Policy.Strict {
		t.Fatal("expected strict mode on")
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Log.Level)
	}
	// Untouched fields keep their defaults.
	if cfg.Engine.MaxBullets != 5 {
		t.Fatalf("expected default max_bullets 5, got %d", cfg.Engine.MaxBullets)
	}
}

func TestLoadFrom_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"negative output cap", `{"engine": {"max_output_chars": -1}}`},
		{"inverted thresholds", `{"engine": {"short_input_threshold": 500, "long_input_threshold": 100}}`},
		{"bad log level", `{"log": {"level": "verbose"}}`},
	}

	for _, tc := range cases {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
			t.Fatalf("%s: write config: %v", tc.name, err)
		}
		if _, err := loadFrom(path); err == nil {
			t.Fatalf("%s: expected validation error, got none", tc.name)
		}
	}
}

func TestSaveTo_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := DefaultConfig()
	cfg.Engine.MaxOutputChars = 1234
	if err := saveTo(cfg, path); err != nil {
		t.Fatalf("saveTo error: %v", err)
	}

	loaded, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom error: %v", err)
	}
	if loaded.Engine.MaxOutputChars != 1234 {
		t.Fatalf("expected round-tripped value 1234, got %d", loaded.Engine.MaxOutputChars)
	}
}

func TestCategories_BuiltInByDefault(t *testing.T) {
	cfg := DefaultConfig()
	categories, err := cfg.Categories()
	if err != nil {
		t.Fatalf("Categories error: %v", err)
	}
	if len(categories) == 0 {
		t.Fatal("expected built-in categories")
	}
}

func TestCategories_LoadsRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	rules := `
categories:
  - name: piracy
    severity: refuse
    phrases: [crack the drm]
`
	if err := os.WriteFile(path, []byte(rules), 0644); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Policy.RulesFile = path

	categories, err := cfg.Categories()
	if err != nil {
		t.Fatalf("Categories error: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "piracy" {
		t.Fatalf("unexpected categories: %+v", categories)
	}

	cfg.Policy.RulesFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := cfg.Categories(); err == nil {
		t.Fatal("expected error for missing rules file")
	}
}

func TestParseLevelName(t *testing.T) {
	for input, want := range map[string]string{
		"":        "info",
		"info":    "info",
		"DEBUG":   "debug",
		"warning": "warn",
		"error":   "error",
	} {
		got, err := parseLevelName(input)
		if err != nil || got != want {
			t.Fatalf("parseLevelName(%q) = %q, %v; want %q", input, got, err, want)
		}
	}
	if _, err := parseLevelName("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
