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


package core

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// NormalizeLanguage returns the canonical ISO 639 base code for a language tag.
// "EN", "en-US" and "en_GB" all normalize to "en".
func NormalizeLanguage(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrEmptyLanguage
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidLanguage, code, err)
	}
	base, _ := tag.Base()
	return base.String(), nil
}

// ParseStemFilters decodes a JSON-encoded list of stem filters.
// An empty input yields an empty list. Filter order is preserved and
// duplicate languages are kept: callers pick the first match.
func ParseStemFilters(data string) ([]StemFilter, error) {
	if strings.TrimSpace(data) == "" {
		return nil, nil
	}

	var filters []StemFilter
	if err := json.Unmarshal([]byte(data), &filters); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStemFilter, err)
	}

	for i := range filters {
		if err := ValidateStemFilter(&filters[i]); err != nil {
			return nil, err
		}
	}
	return filters, nil
}

// ValidateStemFilter validates a StemFilter.
//
// Validation rules:
//   - Language must not be blank
//
// The language is kept exactly as given. An empty stem list is valid; it
// simply removes nothing.
func ValidateStemFilter(filter *StemFilter) error {
	if filter == nil {
		return fmt.Errorf("%w: filter is nil", ErrInvalidStemFilter)
	}
	if strings.TrimSpace(filter.Language) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidStemFilter, ErrEmptyLanguage)
	}
	return nil
}

// ValidateMultiTranslation checks that every part of a translation is aligned
// with a source word list of length wordCount.
func ValidateMultiTranslation(t *MultiTranslation, wordCount int) error {
	if t == nil {
		return fmt.Errorf("%w: translation is nil", ErrInvalidTranslation)
	}
	if t.SourceLanguage == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTranslation, ErrEmptyLanguage)
	}

	for _, part := range t.Translations {
		if part.LanguageCode == "" {
			return fmt.Errorf("%w: %w", ErrInvalidTranslation, ErrEmptyLanguage)
		}
		if len(part.Content) != wordCount {
			return fmt.Errorf("%w: %w: %s has %d words, want %d",
				ErrInvalidTranslation, ErrMisalignedTranslation, part.LanguageCode, len(part.Content), wordCount)
		}
	}
	return nil
}
