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


package multilang

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/qrewrite/core"
	"github.com/poiesic/qrewrite/linguistics"
	"github.com/poiesic/qrewrite/query"
	"github.com/poiesic/qrewrite/translate"
)

// TranslationsKey is the request context key holding the JSON encoded translation.
const TranslationsKey = "translations"

// DefaultEligibleFields are the fields whose queries are expanded.
var DefaultEligibleFields = []string{"default", "body"}

// Rewriter expands queries on eligible fields into every translated language.
// A Rewriter holds no per-request state and may be shared between goroutines.
type Rewriter struct {
	detector   linguistics.Detector
	tokenizer  linguistics.Tokenizer
	normalizer linguistics.Normalizer
	stemmer    linguistics.Stemmer
	translator translate.Translator
	eligible   []string
	monitor    Monitor
	logger     *slog.Logger
}

// Option configures a Rewriter.
type Option func(*Rewriter) error

// WithEligibleFields sets the index names whose queries are expanded.
// Default is "default" and "body".
func WithEligibleFields(fields ...string) Option {
	return func(r *Rewriter) error {
		if len(fields) == 0 {
			return ErrNoEligibleFields
		}
		r.eligible = slices.Clone(fields)
		return nil
	}
}

// WithMonitor sets the monitor used by Rewrite.
// Default is a monitor that does nothing.
func WithMonitor(monitor Monitor) Option {
	return func(r *Rewriter) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		r.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Rewriter) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRewriter creates a multilingual expansion rewriter.
func NewRewriter(ling linguistics.Linguistics, translator translate.Translator, opts ...Option) (*Rewriter, error) {
	if ling == nil {
		return nil, ErrLinguisticsRequired
	}
	if translator == nil {
		return nil, ErrTranslatorRequired
	}

	r := &Rewriter{
		detector:   ling.Detector(),
		tokenizer:  ling.Tokenizer(),
		normalizer: ling.Normalizer(),
		stemmer:    ling.Stemmer(),
		translator: translator,
		eligible:   slices.Clone(DefaultEligibleFields),
		monitor:    &noopMonitor{},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "multilang")

	return r, nil
}

// Rewrite expands the request's query and stores the result as the new root.
func (r *Rewriter) Rewrite(ctx context.Context, req *query.Request) (query.Node, error) {
	return r.RewriteWithMonitor(ctx, req, r.monitor)
}

// RewriteWithMonitor is Rewrite with a monitor for this request only.
// The monitor receives callbacks at each stage of the rewrite.
//
// The tree is returned unchanged when the primary node is not a term on an
// eligible field, when the text has no indexable words, or when translation
// fails. Detector, tokenizer and stemmer errors fail the request.
func (r *Rewriter) RewriteWithMonitor(ctx context.Context, req *query.Request, monitor Monitor) (query.Node, error) {
	if req == nil {
		return nil, ErrRequestRequired
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	root := req.Root
	and, isAnd := query.AsComposite(root, query.KindAnd)
	primary := root
	if isAnd {
		primary = and.Child(0)
	}

	text, index, ok := termText(primary)
	if !ok || !slices.Contains(r.eligible, index) {
		return root, nil
	}

	monitor.Start(text)
	req.Context.Trace("String value of query: '%s'", text)

	// 1. Detect the source language
	source, err := r.detector.Detect(ctx, text)
	if err != nil {
		r.logger.Error("error detecting language", "request", req.ID, "err", err)
		return nil, fmt.Errorf("detect language: %w", err)
	}
	monitor.AfterDetection(source)
	req.Context.Trace("Detected language: '%s'", source)

	// 2. Tokenize without stemming
	tokens, err := r.tokenizer.Tokenize(ctx, text, source, false)
	if err != nil {
		r.logger.Error("error tokenizing query", "request", req.ID, "language", source, "err", err)
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	words := linguistics.IndexableWords(tokens)
	monitor.AfterTokenization(words)
	if len(words) == 0 {
		r.logger.Debug("query has no indexable words", "request", req.ID)
		return root, nil
	}

	// 3. Translate
	translation, err := r.translate(ctx, words, source)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		r.logger.Warn("translation failed, query left unchanged", "request", req.ID, "err", err)
		req.Context.Trace("Translator failed: %v", err)
		monitor.TranslationFailed(err)
		return root, nil
	}
	monitor.AfterTranslation(translation)

	encoded, err := json.Marshal(translation)
	if err != nil {
		return nil, fmt.Errorf("encode translation: %w", err)
	}
	req.Context.Set(TranslationsKey, string(encoded))
	req.Context.Trace("Translator result: %s", encoded)

	// 4. Stem every translated entry
	parts := orderedParts(translation, words)
	stems := make(Stems, len(parts))
	for _, part := range parts {
		entries := make([][]core.StemList, len(part.Content))
		for j, entry := range part.Content {
			lists, err := r.stemmer.Stem(ctx, r.normalizer.Normalize(entry), part.LanguageCode)
			if err != nil {
				r.logger.Error("error stemming translation", "request", req.ID, "language", part.LanguageCode, "err", err)
				return nil, fmt.Errorf("stem %s: %w", part.LanguageCode, err)
			}
			entries[j] = lists
		}
		stems[part.LanguageCode] = entries
	}
	monitor.AfterStemming(stems)
	if encodedStems, err := json.Marshal(stems); err == nil {
		req.Context.Trace("Stemmed translations: %s", encodedStems)
	}

	// 5. Build the ranked expansion
	rank := r.buildRank(req, index, words, parts, stems)

	newRoot := query.Node(rank)
	if isAnd {
		if err := and.Set(0, rank); err != nil {
			return nil, err
		}
		newRoot = and
	}
	req.Root = newRoot
	req.Context.Trace("Query modification done")
	monitor.Finish(newRoot)

	r.logger.Debug("query expanded",
		"request", req.ID,
		"source", source,
		"words", len(words),
		"languages", len(parts))
	return newRoot, nil
}

// translate calls the translator and rejects results that are not aligned
// with words.
func (r *Rewriter) translate(ctx context.Context, words []string, source string) (*core.MultiTranslation, error) {
	translation, err := r.translator.MultiTranslate(ctx, words, source)
	if err != nil {
		if errors.Is(err, translate.ErrTranslationFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", translate.ErrTranslationFailed, err)
	}
	if err := core.ValidateMultiTranslation(translation, len(words)); err != nil {
		return nil, fmt.Errorf("%w: %w", translate.ErrTranslationFailed, err)
	}
	return translation, nil
}

// buildRank builds RANK(WEAKAND(EQUIV...) terms...) for words.
func (r *Rewriter) buildRank(req *query.Request, index string, words []string, parts []core.MultiTranslationPart, stems Stems) *query.Composite {
	weakAnd := query.WeakAnd()
	for j, word := range words {
		equiv := query.Equiv()
		for _, part := range parts {
			entries := stems[part.LanguageCode]
			var node query.Node
			if j < len(entries) {
				node = entryNode(index, entries[j])
			}
			if node == nil {
				r.logger.Warn("no stems for word position",
					"request", req.ID,
					"language", part.LanguageCode,
					"position", j)
				continue
			}
			equiv.Add(node)
		}
		if equiv.Len() == 0 {
			equiv.Add(query.NewTerm(index, word))
		}
		weakAnd.Add(equiv)
	}

	rank := query.Rank(weakAnd)
	for _, word := range words {
		rank.Add(query.NewTerm(index, word))
	}
	return rank
}

// entryNode returns the node for one translated entry. A single unit becomes
// its stemNode; several units become a phrase with one child per unit, where
// ambiguous units are an equivalence of their candidates. It returns nil when
// the entry has no stems.
func entryNode(index string, units []core.StemList) query.Node {
	nonEmpty := make([]core.StemList, 0, len(units))
	for _, unit := range units {
		if len(unit) > 0 {
			nonEmpty = append(nonEmpty, unit)
		}
	}
	switch len(nonEmpty) {
	case 0:
		return nil
	case 1:
		return stemNode(index, nonEmpty[0])
	}

	phrase := query.Phrase()
	for _, unit := range nonEmpty {
		if len(unit) == 1 {
			phrase.Add(query.NewTerm(index, unit[0]))
			continue
		}
		alternatives := query.Equiv()
		for _, stem := range unit {
			alternatives.Add(query.NewTerm(index, stem))
		}
		phrase.Add(alternatives)
	}
	return phrase
}

// stemNode returns a term for a single stem, or a phrase of all candidates.
func stemNode(index string, stems core.StemList) query.Node {
	if len(stems) == 1 {
		return query.NewTerm(index, stems[0])
	}
	phrase := query.Phrase()
	for _, stem := range stems {
		phrase.Add(query.NewTerm(index, stem))
	}
	return phrase
}

// orderedParts returns the translation parts in the order of the listed
// languages, followed by unlisted parts. The source language is added from
// words when the translator left it out.
func orderedParts(translation *core.MultiTranslation, words []string) []core.MultiTranslationPart {
	parts := make([]core.MultiTranslationPart, 0, len(translation.Translations)+1)
	seen := make(map[string]bool, len(translation.Translations)+1)

	for _, lang := range translation.Languages {
		if seen[lang] {
			continue
		}
		if part := translation.Part(lang); part != nil {
			seen[lang] = true
			parts = append(parts, *part)
		}
	}
	for _, part := range translation.Translations {
		if !seen[part.LanguageCode] {
			seen[part.LanguageCode] = true
			parts = append(parts, part)
		}
	}
	if source := translation.SourceLanguage; source != "" && !seen[source] {
		parts = append(parts, core.MultiTranslationPart{LanguageCode: source, Content: words})
	}
	return parts
}

// termText returns the text and index of a term like node: a term, or a
// phrase of terms on a single index.
func termText(n query.Node) (text, index string, ok bool) {
	switch v := n.(type) {
	case *query.Term:
		return v.Word, v.Index, v.Word != ""
	case *query.Composite:
		if v.Kind != query.KindPhrase || v.Len() == 0 {
			return "", "", false
		}
		words := make([]string, 0, v.Len())
		for i, child := range v.Children {
			t, isTerm := child.(*query.Term)
			if !isTerm || (i > 0 && t.Index != index) {
				return "", "", false
			}
			index = t.Index
			words = append(words, t.Word)
		}
		return strings.Join(words, " "), index, true
	case *query.RegexMatch, nil:
		return "", "", false
	default:
		return "", "", false
	}
}
