// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package translate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/qrewrite/core"
)

// Config holds configuration for translation service providers.
type Config struct {
	// Host is the base URL of the translation model API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server
	Host string `yaml:"host"`

	// Model is the chat model used for translation.
	// Example: "qwen2.5:7b", "gpt-4o-mini"
	Model string `yaml:"model"`

	// Token is the API token. Local servers accept "none".
	Token string `yaml:"token"`

	// Languages are the ISO 639-1 codes every query is translated into.
	// The source language is always included in the result even if absent here.
	Languages []string `yaml:"languages"`

	// MaxAttempts bounds how often a failed or malformed request is tried.
	// Default: 3
	MaxAttempts int `yaml:"max_attempts"`

	// RetryDelay is the base delay before retrying a failed request.
	// It doubles on every further attempt.
	// Default: 500ms
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the translation service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the translation model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithToken sets the API token.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithLanguages sets the target languages.
func WithLanguages(languages ...string) ConfigOption {
	return func(c *Config) {
		c.Languages = languages
	}
}

// WithMaxAttempts sets the number of attempts per translation.
func WithMaxAttempts(attempts int) ConfigOption {
	return func(c *Config) {
		c.MaxAttempts = attempts
	}
}

// WithRetryDelay sets the base backoff delay between failed requests.
func WithRetryDelay(delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.RetryDelay = delay
	}
}

// DefaultConfig returns a Config for a local OpenAI-compatible service.
// The default languages match the document collection of the search frontend.
func DefaultConfig() *Config {
	return &Config{
		Host:        "http://localhost:11434/v1",
		Model:       "qwen2.5:7b",
		Token:       "none",
		Languages:   []string{"en", "de", "fr", "it", "es"},
		MaxAttempts: 3,
		RetryDelay:  500 * time.Millisecond,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It adds the /v1 suffix to the host and canonicalizes language codes,
// dropping duplicates. Unparseable codes are left for Validate to report.
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/") + "/v1"
	}
	if c.Token == "" {
		c.Token = "none"
	}

	seen := make(map[string]bool, len(c.Languages))
	languages := make([]string, 0, len(c.Languages))
	for _, lang := range c.Languages {
		if normalized, err := core.NormalizeLanguage(lang); err == nil {
			lang = normalized
		}
		if !seen[lang] {
			seen[lang] = true
			languages = append(languages, lang)
		}
	}
	c.Languages = languages
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("translate config: Host is required")
	}
	if c.Model == "" {
		return errors.New("translate config: Model is required")
	}
	if len(c.Languages) == 0 {
		return errors.New("translate config: at least one language is required")
	}
	for _, lang := range c.Languages {
		if _, err := core.NormalizeLanguage(lang); err != nil {
			return fmt.Errorf("translate config: %w", err)
		}
	}
	if c.MaxAttempts < 1 {
		return errors.New("translate config: MaxAttempts must be at least 1")
	}
	if c.RetryDelay < 0 {
		return errors.New("translate config: RetryDelay must not be negative")
	}
	return nil
}
