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


package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/qrewrite/core"
	"github.com/poiesic/qrewrite/translate"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Translator implements translate.Translator using an OpenAI-compatible chat API.
type Translator struct {
	client      llms.Model
	languages   []string
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

var _ translate.Translator = (*Translator)(nil)

// response is the wrapper structure for the model's JSON response.
type response struct {
	Translations map[string][]string `json:"translations"`
}

// errMalformedResponse marks a response worth retrying.
var errMalformedResponse = errors.New("malformed translation response")

// newTranslator is an internal constructor that returns the concrete type.
func newTranslator(config *translate.Config) (*Translator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return newTranslatorWithModel(client, config)
}

func newTranslatorWithModel(client llms.Model, config *translate.Config) (*Translator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Translator{
		client:      client,
		languages:   config.Languages,
		maxAttempts: config.MaxAttempts,
		retryDelay:  config.RetryDelay,
		logger:      slog.Default().With("component", "openai-translator"),
	}, nil
}

// NewTranslator creates a new translator using the provided configuration.
//
// Returns translate.Translator interface to enforce abstraction.
func NewTranslator(config *translate.Config) (translate.Translator, error) {
	return newTranslator(config)
}

// NewTranslatorWithModel creates a translator that talks to an existing
// langchaingo model instead of dialing config.Host.
func NewTranslatorWithModel(client llms.Model, config *translate.Config) (translate.Translator, error) {
	return newTranslatorWithModel(client, config)
}

// MultiTranslate translates words into every configured language.
// The source language part is the input itself and is always listed first.
func (t *Translator) MultiTranslate(ctx context.Context, words []string, sourceLanguage string) (*core.MultiTranslation, error) {
	result := &core.MultiTranslation{
		SourceLanguage: sourceLanguage,
		Languages:      []string{sourceLanguage},
		Translations: []core.MultiTranslationPart{
			{LanguageCode: sourceLanguage, Content: append([]string(nil), words...)},
		},
	}

	targets := make([]string, 0, len(t.languages))
	for _, lang := range t.languages {
		if lang != sourceLanguage {
			targets = append(targets, lang)
		}
	}
	if len(words) == 0 || len(targets) == 0 {
		return result, nil
	}

	translated, err := t.requestTranslations(ctx, words, sourceLanguage, targets)
	if err != nil {
		return nil, err
	}

	for _, lang := range targets {
		result.Languages = append(result.Languages, lang)
		result.Translations = append(result.Translations, core.MultiTranslationPart{
			LanguageCode: lang,
			Content:      translated[lang],
		})
	}

	t.logger.Debug("translated words",
		"source", sourceLanguage,
		"words", len(words),
		"languages", len(result.Languages))
	return result, nil
}

func (t *Translator) requestTranslations(ctx context.Context, words []string, source string, targets []string) (map[string][]string, error) {
	input, err := json.Marshal(words)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", translate.ErrTranslationFailed, err)
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt(source, targets, len(words))),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(string(input)),
			},
		},
	}

	var lastErr error
	for attempt := 1; attempt <= t.maxAttempts; attempt++ {
		resp, err := t.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			lastErr = err
			t.logger.Warn("failed to generate content", "attempt", attempt, "err", err)
			if attempt == t.maxAttempts {
				break
			}
			// Back off before retrying a failed request
			if sleepErr := sleep(ctx, backoffDelay(t.retryDelay, attempt)); sleepErr != nil {
				return nil, fmt.Errorf("%w: %w", translate.ErrTranslationFailed, sleepErr)
			}
			continue
		}
		if len(resp.Choices) < 1 {
			lastErr = fmt.Errorf("%w: no choices returned", errMalformedResponse)
			t.logger.Warn("no choices returned from model", "attempt", attempt)
			continue
		}

		translated, err := parseResponse(resp.Choices[0].Content, targets, len(words))
		if err != nil {
			lastErr = err
			t.logger.Warn("error parsing translation response",
				"attempt", attempt,
				"response", resp.Choices[0].Content,
				"err", err)
			continue
		}
		if attempt > 1 {
			t.logger.Debug("translation succeeded after retry", "attempt", attempt)
		}
		return translated, nil
	}

	t.logger.Error("translation failed after retries", "attempts", t.maxAttempts, "err", lastErr)
	return nil, fmt.Errorf("%w: %w", translate.ErrTranslationFailed, lastErr)
}

// parseResponse decodes a model response and checks that every target
// language has exactly one non-empty lower cased entry per source word.
func parseResponse(text string, targets []string, wordCount int) (map[string][]string, error) {
	var parsed response
	if err := json.Unmarshal([]byte(cleanResponse(text)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformedResponse, err)
	}

	translated := make(map[string][]string, len(targets))
	for _, lang := range targets {
		content, ok := parsed.Translations[lang]
		if !ok {
			return nil, fmt.Errorf("%w: missing language %q", errMalformedResponse, lang)
		}
		if len(content) != wordCount {
			return nil, fmt.Errorf("%w: %w: %s has %d words, want %d",
				errMalformedResponse, core.ErrMisalignedTranslation, lang, len(content), wordCount)
		}
		words := make([]string, len(content))
		for i, word := range content {
			words[i] = strings.ToLower(strings.TrimSpace(word))
			if words[i] == "" {
				return nil, fmt.Errorf("%w: %s has an empty entry at position %d", errMalformedResponse, lang, i)
			}
		}
		translated[lang] = words
	}
	return translated, nil
}
