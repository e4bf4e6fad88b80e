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


package snowball

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
	"github.com/kljensen/snowball"
	"github.com/poiesic/qrewrite/core"
	"github.com/poiesic/qrewrite/linguistics"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// stemmerLanguages maps ISO 639-1 codes to Snowball stemmer names.
var stemmerLanguages = map[string]string{
	"en": "english",
	"es": "spanish",
	"fr": "french",
	"ru": "russian",
	"sv": "swedish",
}

// Linguistics implements linguistics.Linguistics without external services.
type Linguistics struct {
	defaultLanguage string
	minConfidence   float64
	logger          *slog.Logger
}

var (
	_ linguistics.Linguistics = (*Linguistics)(nil)
	_ linguistics.Detector    = (*Linguistics)(nil)
	_ linguistics.Tokenizer   = (*Linguistics)(nil)
	_ linguistics.Normalizer  = (*Linguistics)(nil)
	_ linguistics.Stemmer     = (*Linguistics)(nil)
)

// Option configures Linguistics.
type Option func(*Linguistics)

// WithDefaultLanguage sets the language reported when detection is unreliable.
// Default is "en".
func WithDefaultLanguage(lang string) Option {
	return func(l *Linguistics) {
		l.defaultLanguage = lang
	}
}

// WithMinConfidence sets the detection confidence below which the default
// language is reported. Default is 0, which trusts every detection.
func WithMinConfidence(confidence float64) Option {
	return func(l *Linguistics) {
		l.minConfidence = confidence
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linguistics) {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
	}
}

// New creates a Linguistics.
func New(opts ...Option) *Linguistics {
	l := &Linguistics{
		defaultLanguage: "en",
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("component", "snowball-linguistics")
	return l
}

func (l *Linguistics) Detector() linguistics.Detector     { return l }
func (l *Linguistics) Tokenizer() linguistics.Tokenizer   { return l }
func (l *Linguistics) Normalizer() linguistics.Normalizer { return l }
func (l *Linguistics) Stemmer() linguistics.Stemmer       { return l }

// Detect returns the ISO 639-1 code of the most likely language of text.
func (l *Linguistics) Detect(ctx context.Context, text string) (string, error) {
	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" || info.Confidence < l.minConfidence {
		l.logger.Debug("language detection unreliable, using default",
			"detected", info.Lang.String(),
			"confidence", info.Confidence,
			"default", l.defaultLanguage)
		return l.defaultLanguage, nil
	}
	return code, nil
}

// Tokenize splits text into runs of letters and digits (indexable) and runs of
// everything else. With stem set, indexable tokens are replaced by their stems.
func (l *Linguistics) Tokenize(ctx context.Context, text, language string, stem bool) ([]core.Token, error) {
	var tokens []core.Token
	start := -1
	startIndexable := false

	emit := func(end int) {
		if start < 0 || end <= start {
			return
		}
		token := core.Token{Text: text[start:end], Indexable: startIndexable}
		if stem && token.Indexable {
			token.Text = l.stemWord(l.Normalize(token.Text), language)
		}
		tokens = append(tokens, token)
	}

	for i, r := range text {
		indexable := unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
		if start >= 0 && indexable == startIndexable {
			continue
		}
		emit(i)
		start = i
		startIndexable = indexable
	}
	emit(len(text))
	return tokens, nil
}

// Normalize applies NFKC normalization and case folding.
func (l *Linguistics) Normalize(text string) string {
	// Casers are stateful and not safe for concurrent use.
	return cases.Fold().String(norm.NFKC.String(text))
}

// Stem returns a single candidate stem for every whitespace separated unit of text.
func (l *Linguistics) Stem(ctx context.Context, text, language string) ([]core.StemList, error) {
	units := strings.Fields(text)
	stems := make([]core.StemList, len(units))
	for i, unit := range units {
		stems[i] = core.StemList{l.stemWord(unit, language)}
	}
	return stems, nil
}

func (l *Linguistics) stemWord(word, language string) string {
	trimmed := strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if trimmed == "" {
		return word
	}

	name, ok := stemmerLanguages[language]
	if !ok {
		return trimmed
	}
	stemmed, err := snowball.Stem(trimmed, name, true)
	if err != nil {
		l.logger.Warn("snowball stemming failed", "word", trimmed, "language", language, "err", err)
		return trimmed
	}
	return stemmed
}
