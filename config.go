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


package qrewrite

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/goccy/go-yaml"
	"github.com/poiesic/qrewrite/multilang"
	"github.com/poiesic/qrewrite/stemfilter"
	"github.com/poiesic/qrewrite/translate"
)

// Config holds the settings for a rewrite chain.
type Config struct {
	Multilang  MultilangConfig   `yaml:"multilang"`
	StemFilter StemFilterConfig  `yaml:"stem_filter"`
	Translator *translate.Config `yaml:"translator"`

	// PoolSize is the number of requests RewriteBatch rewrites at once.
	// Default: runtime.NumCPU() / 2, at least 1
	PoolSize int `yaml:"pool_size"`
}

// MultilangConfig configures the multilingual expansion stage.
type MultilangConfig struct {
	// Enabled turns the stage on. Default: true
	Enabled *bool `yaml:"enabled"`

	// EligibleFields are the index names whose queries are expanded.
	// Default: default, body
	EligibleFields []string `yaml:"eligible_fields"`

	// DefaultLanguage is assumed when language detection is unsure. Default: en
	DefaultLanguage string `yaml:"default_language"`
}

// IsEnabled reports whether the stage should run.
func (m MultilangConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// StemFilterConfig configures the stem filter stage.
type StemFilterConfig struct {
	// LanguageField is the document field holding the language. Default: language
	LanguageField string `yaml:"language_field"`

	// PropertyName is the request property carrying the filters. Default: stemFilter
	PropertyName string `yaml:"property_name"`
}

// DefaultConfig returns a Config with every stage enabled and a local translator.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Normalize()
	return cfg
}

// LoadConfig reads a YAML config file. Unknown keys are rejected, missing
// values take their defaults and ${VAR} references in the translator
// settings are expanded from the environment.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML config document.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Translator != nil {
		cfg.Translator.Host = os.ExpandEnv(cfg.Translator.Host)
		cfg.Translator.Model = os.ExpandEnv(cfg.Translator.Model)
		cfg.Translator.Token = os.ExpandEnv(cfg.Translator.Token)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Normalize fills in defaults for missing values.
func (c *Config) Normalize() {
	if len(c.Multilang.EligibleFields) == 0 {
		c.Multilang.EligibleFields = append([]string(nil), multilang.DefaultEligibleFields...)
	}
	if c.Multilang.DefaultLanguage == "" {
		c.Multilang.DefaultLanguage = "en"
	}
	if c.StemFilter.LanguageField == "" {
		c.StemFilter.LanguageField = stemfilter.DefaultLanguageField
	}
	if c.StemFilter.PropertyName == "" {
		c.StemFilter.PropertyName = stemfilter.DefaultPropertyName
	}

	defaults := translate.DefaultConfig()
	if c.Translator == nil {
		c.Translator = defaults
	} else {
		if c.Translator.Host == "" {
			c.Translator.Host = defaults.Host
		}
		if c.Translator.Model == "" {
			c.Translator.Model = defaults.Model
		}
		if len(c.Translator.Languages) == 0 {
			c.Translator.Languages = defaults.Languages
		}
		if c.Translator.MaxAttempts == 0 {
			c.Translator.MaxAttempts = defaults.MaxAttempts
		}
		if c.Translator.RetryDelay == 0 {
			c.Translator.RetryDelay = defaults.RetryDelay
		}
	}
	c.Translator.Normalize()

	if c.PoolSize == 0 {
		c.PoolSize = max(runtime.NumCPU()/2, 1)
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.PoolSize < 0 {
		return errors.New("config: pool_size must not be negative")
	}
	for _, field := range c.Multilang.EligibleFields {
		if field == "" {
			return errors.New("config: eligible field names must not be empty")
		}
	}
	if c.Multilang.IsEnabled() {
		if err := c.Translator.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}
