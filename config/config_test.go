// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/creachadair/cfo/config"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	t.Setenv("TEST_CFO_KEY", "sekrit")
	t.Setenv("CFO_DB", "")

	cfg, err := config.Parse([]byte(`{
  // Where the ledger lives.
  "database": "/tmp/ledger.db",
  "llm": {
    "provider": "gemini",
    "model": "gemini-2.5-flash",
    "api_key_env": "TEST_CFO_KEY", /* read at load time */
  },
}`))
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	want := config.Default()
	want.Database = "/tmp/ledger.db"
	want.LLM.Provider = "gemini"
	want.LLM.Model = "gemini-2.5-flash"
	want.LLM.APIKeyEnv = "TEST_CFO_KEY"
	want.LLM.APIKey = "sekrit"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse (-want, +got):\n%s", diff)
	}
	if err := cfg.LLM.Validate(); err != nil {
		t.Errorf("Validate: unexpected error: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		`{"database": }`,
		`{"databse": "typo.db"}`,
		`{"llm": {"max_tokens": "many"}}`,
	}
	for _, input := range tests {
		if cfg, err := config.Parse([]byte(input)); err == nil {
			t.Errorf("Parse(%#q): got %+v, want error", input, cfg)
		}
	}
}

func TestProviderDefaults(t *testing.T) {
	t.Setenv("CFO_DB", "")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("ANTHROPIC_API_KEY", "ant-key")

	tests := []struct {
		name, input   string
		yaml          bool
		model, keyEnv string
		key           string
	}{
		{"Gemini", `{"llm": {"provider": "gemini"}}`, false,
			"gemini-2.5-flash", "GEMINI_API_KEY", "gem-key"},
		{"GeminiYAML", "llm:\n  provider: gemini\n", true,
			"gemini-2.5-flash", "GEMINI_API_KEY", "gem-key"},
		{"Anthropic", `{}`, false,
			"claude-sonnet-4-20250514", "ANTHROPIC_API_KEY", "ant-key"},
		{"ModelKept", `{"llm": {"provider": "gemini", "model": "gemini-2.5-pro"}}`, false,
			"gemini-2.5-pro", "GEMINI_API_KEY", "gem-key"},
		{"KeyEnvKept", `{"llm": {"provider": "gemini", "api_key_env": "ANTHROPIC_API_KEY"}}`, false,
			"gemini-2.5-flash", "ANTHROPIC_API_KEY", "ant-key"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			parse := config.Parse
			if test.yaml {
				parse = config.ParseYAML
			}
			cfg, err := parse([]byte(test.input))
			if err != nil {
				t.Fatalf("Parse: unexpected error: %v", err)
			}
			got := []string{cfg.LLM.Model, cfg.LLM.APIKeyEnv, cfg.LLM.APIKey}
			want := []string{test.model, test.keyEnv, test.key}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Model, key env, key (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("CFO_DB", "")
	dir := t.TempDir()

	t.Run("Missing", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(dir, "nonesuch.jwcc"))
		if err != nil {
			t.Fatalf("Load: unexpected error: %v", err)
		}
		if diff := cmp.Diff(config.Default(), cfg); diff != "" {
			t.Errorf("Load missing (-want, +got):\n%s", diff)
		}
	})

	t.Run("YAML", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("currency: EUR\nllm:\n  timeout: 30s\n"), 0600); err != nil {
			t.Fatal(err)
		}
		cfg, err := config.Load(path)
		if err != nil {
			t.Fatalf("Load: unexpected error: %v", err)
		}
		if cfg.Currency != "EUR" {
			t.Errorf("Currency: got %q, want EUR", cfg.Currency)
		}
		if got := cfg.LLM.TimeoutDuration(); got != 30*time.Second {
			t.Errorf("Timeout: got %v, want 30s", got)
		}
		if cfg.LLM.Model != config.Default().LLM.Model {
			t.Errorf("Model: got %q, want default", cfg.LLM.Model)
		}
	})

	t.Run("EmptyYAML", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yml")
		if err := os.WriteFile(path, nil, 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := config.Load(path); err != nil {
			t.Errorf("Load: unexpected error: %v", err)
		}
	})

	t.Run("DatabaseOverride", func(t *testing.T) {
		t.Setenv("CFO_DB", "/elsewhere.db")
		cfg, err := config.Load(filepath.Join(dir, "nonesuch.jwcc"))
		if err != nil {
			t.Fatalf("Load: unexpected error: %v", err)
		}
		if cfg.Database != "/elsewhere.db" {
			t.Errorf("Database: got %q, want /elsewhere.db", cfg.Database)
		}
	})
}

func TestLLM(t *testing.T) {
	tests := []struct {
		name    string
		llm     config.LLM
		timeout time.Duration
		ok      bool
	}{
		{"OK", config.LLM{Provider: "anthropic", APIKey: "k", Timeout: "5s"}, 5 * time.Second, true},
		{"NoTimeout", config.LLM{Provider: "gemini", APIKey: "k"}, 120 * time.Second, true},
		{"BadProvider", config.LLM{Provider: "oracle", APIKey: "k"}, 120 * time.Second, false},
		{"NoKey", config.LLM{Provider: "anthropic", APIKeyEnv: "X"}, 120 * time.Second, false},
		{"BadTimeout", config.LLM{Provider: "anthropic", APIKey: "k", Timeout: "soon"}, 120 * time.Second, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.llm.TimeoutDuration(); got != test.timeout {
				t.Errorf("TimeoutDuration: got %v, want %v", got, test.timeout)
			}
			if err := test.llm.Validate(); (err == nil) != test.ok {
				t.Errorf("Validate: got %v, want ok=%v", err, test.ok)
			}
		})
	}
}
