// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package config loads the settings for the cfo tool.
//
// A configuration file is either JWCC (JSON with commas and comments), or
// YAML if its name ends in ".yaml" or ".yml". Fields not mentioned in the
// file keep their default values.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// Config holds the settings for the cfo tool.
type Config struct {
	// Path of the ledger database.
	Database string `json:"database" yaml:"database"`

	// Currency code reported with ledger amounts.
	Currency string `json:"currency" yaml:"currency"`

	// Settings for the language model behind the advisor.
	LLM LLM `json:"llm" yaml:"llm"`
}

// LLM configures a streaming language model client.
type LLM struct {
	Provider  string `json:"provider" yaml:"provider"` // anthropic, gemini
	Model     string `json:"model" yaml:"model"`
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Timeout   string `json:"timeout" yaml:"timeout"`
	MaxTokens int    `json:"max_tokens" yaml:"max_tokens"`

	// The name of the environment variable holding the API key.
	APIKeyEnv string `json:"api_key_env" yaml:"api_key_env"`

	// The API key, read from APIKeyEnv when the config is loaded.
	APIKey string `json:"-" yaml:"-"`
}

// ValidProviders lists the supported LLM providers.
var ValidProviders = []string{"anthropic", "gemini"}

// providerDefaults gives the model and API key variable used for each
// provider when the configuration does not name them.
var providerDefaults = map[string]struct{ model, keyEnv string }{
	"anthropic": {"claude-sonnet-4-20250514", "ANTHROPIC_API_KEY"},
	"gemini":    {"gemini-2.5-flash", "GEMINI_API_KEY"},
}

const defaultTimeout = 120 * time.Second

// Dir returns the directory where cfo keeps its files by default.
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "cfo")
}

// DefaultPath returns the default location of the configuration file.
func DefaultPath() string { return filepath.Join(Dir(), "config.jwcc") }

// Default returns a configuration with default settings.
func Default() *Config {
	cfg := base()
	cfg.fill()
	return cfg
}

// base returns the defaults that do not depend on the LLM provider.
func base() *Config {
	return &Config{
		Database: filepath.Join(Dir(), "ledger.db"),
		Currency: "USD",
		LLM: LLM{
			Provider:  "anthropic",
			Timeout:   "120s",
			MaxTokens: 4096,
		},
	}
}

// fill sets the model and API key variable for the chosen provider, where
// the configuration leaves them empty.
func (c *Config) fill() {
	d, ok := providerDefaults[c.LLM.Provider]
	if !ok {
		return
	}
	if c.LLM.Model == "" {
		c.LLM.Model = d.model
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = d.keyEnv
	}
}

// Load reads the configuration file at path on top of the defaults. If the
// file does not exist, Load returns the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// Parse parses a JWCC configuration on top of the defaults.
func Parse(data []byte) (*Config, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg := base()
	dec := json.NewDecoder(bytes.NewReader(std))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.fill()
	cfg.applyEnv()
	return cfg, nil
}

// ParseYAML parses a YAML configuration on top of the defaults.
func ParseYAML(data []byte) (*Config, error) {
	cfg := base()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.fill()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if c.LLM.APIKeyEnv != "" {
		c.LLM.APIKey = os.Getenv(c.LLM.APIKeyEnv)
	}
	if path := os.Getenv("CFO_DB"); path != "" {
		c.Database = path
	}
}

// TimeoutDuration returns the LLM request timeout. An empty or invalid setting
// yields the default.
func (c LLM) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

// Validate reports an error if the LLM settings cannot be used to make
// requests.
func (c LLM) Validate() error {
	if !slices.Contains(ValidProviders, c.Provider) {
		return fmt.Errorf("invalid LLM provider %q (valid: %s)", c.Provider, strings.Join(ValidProviders, ", "))
	}
	if c.APIKey == "" {
		return fmt.Errorf("LLM API key not configured (set %s)", c.APIKeyEnv)
	}
	if _, err := time.ParseDuration(c.Timeout); c.Timeout != "" && err != nil {
		return fmt.Errorf("invalid LLM timeout: %w", err)
	}
	return nil
}
