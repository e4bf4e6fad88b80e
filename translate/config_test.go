package translate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.Equal(t, "qwen2.5:7b", cfg.Model)
	assert.Equal(t, "none", cfg.Token)
	assert.Equal(t, []string{"en", "de", "fr", "it", "es"}, cfg.Languages)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryDelay)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://translate:8080/v1"),
			WithModel("gpt-4o-mini"),
			WithToken("secret"),
			WithLanguages("de", "it"),
			WithMaxAttempts(5),
		)

		assert.Equal(t, "http://translate:8080/v1", cfg.Host)
		assert.Equal(t, "gpt-4o-mini", cfg.Model)
		assert.Equal(t, "secret", cfg.Token)
		assert.Equal(t, []string{"de", "it"}, cfg.Languages)
		assert.Equal(t, 5, cfg.MaxAttempts)
	})
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		host      string
		languages []string
		wantHost  string
		wantLangs []string
	}{
		{
			name:      "adds v1 suffix",
			host:      "http://localhost:11434",
			languages: []string{"en"},
			wantHost:  "http://localhost:11434/v1",
			wantLangs: []string{"en"},
		},
		{
			name:      "trailing slash",
			host:      "http://localhost:11434/",
			languages: []string{"en"},
			wantHost:  "http://localhost:11434/v1",
			wantLangs: []string{"en"},
		},
		{
			name:      "canonical and deduplicated languages",
			host:      "http://localhost:11434/v1",
			languages: []string{"EN", "de-AT", "en-US", "de"},
			wantHost:  "http://localhost:11434/v1",
			wantLangs: []string{"en", "de"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Host: tt.host, Languages: tt.languages}
			cfg.Normalize()
			assert.Equal(t, tt.wantHost, cfg.Host)
			assert.Equal(t, tt.wantLangs, cfg.Languages)
			assert.Equal(t, "none", cfg.Token)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "valid", modify: func(c *Config) {}},
		{name: "missing host", modify: func(c *Config) { c.Host = "" }, wantErr: "Host is required"},
		{name: "missing model", modify: func(c *Config) { c.Model = "" }, wantErr: "Model is required"},
		{name: "no languages", modify: func(c *Config) { c.Languages = nil }, wantErr: "at least one language"},
		{name: "bad language", modify: func(c *Config) { c.Languages = []string{"not a language"} }, wantErr: "invalid language code"},
		{name: "zero attempts", modify: func(c *Config) { c.MaxAttempts = 0 }, wantErr: "MaxAttempts"},
		{name: "negative delay", modify: func(c *Config) { c.RetryDelay = -time.Second }, wantErr: "RetryDelay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
