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
	"encoding/binary"
	"slices"

	"github.com/go-crypt/x/blake2b"
)

// ID is a deterministic identifier for a rewrite request.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// StemFilter lists the stems to exclude from matching for one language.
type StemFilter struct {
	Language string   `json:"language"`
	Stems    []string `json:"stems"`
}

// Contains reports whether word is one of the filtered stems.
func (f *StemFilter) Contains(word string) bool {
	return slices.Contains(f.Stems, word)
}

// StemList holds the candidate stems for a single word, in stemmer order.
// Ambiguous stemming yields more than one candidate.
type StemList []string

// Token is a single unit produced by a tokenizer.
type Token struct {
	Text      string
	Indexable bool // false for whitespace and punctuation
}

// MultiTranslationPart holds the translation of a word list into one language.
// Content[j] is the translation of source word j.
type MultiTranslationPart struct {
	LanguageCode string   `json:"languageCode"`
	Content      []string `json:"content"`
}

// MultiTranslation is the result of translating a word list into several languages.
type MultiTranslation struct {
	SourceLanguage string                 `json:"sourceLanguage"`
	Languages      []string               `json:"languages"`
	Translations   []MultiTranslationPart `json:"translations"`
}

// Part returns the translation into language, or nil if there is none.
func (t *MultiTranslation) Part(language string) *MultiTranslationPart {
	for i := range t.Translations {
		if t.Translations[i].LanguageCode == language {
			return &t.Translations[i]
		}
	}
	return nil
}
