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

package mock

import (
	"context"
	"sync/atomic"

	"github.com/poiesic/qrewrite/core"
	"github.com/poiesic/qrewrite/translate"
)

// MockTranslator is a test double for translate.Translator.
type MockTranslator struct {
	// MultiTranslateFunc is called by MultiTranslate if set.
	MultiTranslateFunc func(ctx context.Context, words []string, sourceLanguage string) (*core.MultiTranslation, error)

	// Languages are the target languages used by the default behavior.
	Languages []string

	callCount atomic.Int64
}

var _ translate.Translator = (*MockTranslator)(nil)

// NewMockTranslator creates a mock translator whose default behavior
// "translates" into the given languages by copying the input words.
func NewMockTranslator(languages ...string) *MockTranslator {
	return &MockTranslator{Languages: languages}
}

// MultiTranslate returns the result of MultiTranslateFunc, or an echo
// translation with the source part first.
func (m *MockTranslator) MultiTranslate(ctx context.Context, words []string, sourceLanguage string) (*core.MultiTranslation, error) {
	m.callCount.Add(1)
	if m.MultiTranslateFunc != nil {
		return m.MultiTranslateFunc(ctx, words, sourceLanguage)
	}
	return Echo(words, sourceLanguage, m.Languages...), nil
}

// CallCount returns the number of times MultiTranslate was called.
func (m *MockTranslator) CallCount() int {
	return int(m.callCount.Load())
}

// Echo builds an aligned translation where every language repeats words.
func Echo(words []string, sourceLanguage string, languages ...string) *core.MultiTranslation {
	result := &core.MultiTranslation{SourceLanguage: sourceLanguage}
	add := func(lang string) {
		if result.Part(lang) != nil {
			return
		}
		result.Languages = append(result.Languages, lang)
		result.Translations = append(result.Translations, core.MultiTranslationPart{
			LanguageCode: lang,
			Content:      append([]string(nil), words...),
		})
	}
	add(sourceLanguage)
	for _, lang := range languages {
		add(lang)
	}
	return result
}
