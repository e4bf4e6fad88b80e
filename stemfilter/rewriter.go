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


package stemfilter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/qrewrite/core"
	"github.com/poiesic/qrewrite/query"
)

const (
	// DefaultLanguageField is the document field holding the detected language.
	DefaultLanguageField = "language"

	// DefaultPropertyName is the request property carrying the JSON stem filters.
	DefaultPropertyName = "stemFilter"
)

// Rewriter applies stem filters to query trees.
// A Rewriter holds no per-request state and may be shared between goroutines.
type Rewriter struct {
	languageField string
	propertyName  string
	logger        *slog.Logger
}

// Option configures a Rewriter.
type Option func(*Rewriter) error

// WithLanguageField sets the field name used for language regex predicates.
// Default is "language".
func WithLanguageField(field string) Option {
	return func(r *Rewriter) error {
		if field == "" {
			return ErrEmptyLanguageField
		}
		r.languageField = field
		return nil
	}
}

// WithPropertyName sets the request property holding the stem filters.
// Default is "stemFilter".
func WithPropertyName(name string) Option {
	return func(r *Rewriter) error {
		if name == "" {
			return ErrEmptyPropertyName
		}
		r.propertyName = name
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

// NewRewriter creates a stem filter rewriter.
func NewRewriter(opts ...Option) (*Rewriter, error) {
	r := &Rewriter{
		languageField: DefaultLanguageField,
		propertyName:  DefaultPropertyName,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "stemfilter")

	return r, nil
}

// Rewrite reads the stem filters from the request, rewrites the request's
// tree and stores the result as the new root.
// Malformed filter JSON fails the request before the tree is touched.
func (r *Rewriter) Rewrite(ctx context.Context, req *query.Request) (query.Node, error) {
	if req == nil {
		return nil, ErrRequestRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filters, err := core.ParseStemFilters(req.Property(r.propertyName))
	if err != nil {
		r.logger.Error("error parsing stem filters", "request", req.ID, "err", err)
		return nil, err
	}

	root, changed := r.apply(req.Root, filters)
	if !changed {
		return req.Root, nil
	}

	req.Root = root
	req.Context.Trace("Filtering done: %s", formatFilters(filters))
	r.logger.Debug("stem filters applied", "request", req.ID, "filters", len(filters))
	return root, nil
}

// RewriteTree applies filters to root and returns the resulting tree.
// Unrecognized shapes, and language filtered queries without a matching
// filter, are returned as is.
func (r *Rewriter) RewriteTree(root query.Node, filters []core.StemFilter) query.Node {
	result, _ := r.apply(root, filters)
	return result
}

// apply reports whether the tree went through filtering.
func (r *Rewriter) apply(root query.Node, filters []core.StemFilter) (query.Node, bool) {
	if len(filters) == 0 {
		return root, false
	}

	switch v := root.(type) {
	case *query.Composite:
		switch v.Kind {
		case query.KindAnd:
			if !query.IsComposite(v.Child(0), query.KindWeakAnd) {
				return root, false
			}
			language, ok := r.filterLanguage(v)
			if ok {
				filter := matchingFilter(filters, language)
				if filter == nil {
					return root, false
				}
				removeStems(v, filter)
				return v, true
			}
			return r.branch(v, filters), true
		case query.KindWeakAnd:
			return r.branch(v, filters), true
		default:
			return root, false
		}
	default:
		return root, false
	}
}

// filterLanguage returns the pattern of the first language regex directly under and.
func (r *Rewriter) filterLanguage(and *query.Composite) (string, bool) {
	for _, child := range and.Children {
		if re, ok := child.(*query.RegexMatch); ok && re.Index == r.languageField {
			return re.Pattern, true
		}
	}
	return "", false
}

// branch builds the per-language OR. root becomes the fallback branch;
// every language branch filters its own clone.
func (r *Rewriter) branch(root *query.Composite, filters []core.StemFilter) *query.Composite {
	or := query.Or(query.And(root, r.excludeLanguages(filters)))
	for i := range filters {
		clone := query.Clone(root).(*query.Composite)
		removeStems(clone, &filters[i])
		or.Add(query.And(clone, query.NewRegex(r.languageField, filters[i].Language)))
	}
	return or
}

// excludeLanguages builds NOT(-field:/(l1|l2|...)/) over the distinct filter languages.
func (r *Rewriter) excludeLanguages(filters []core.StemFilter) *query.Composite {
	seen := make(map[string]bool, len(filters))
	languages := make([]string, 0, len(filters))
	for _, f := range filters {
		if !seen[f.Language] {
			seen[f.Language] = true
			languages = append(languages, f.Language)
		}
	}
	exclude := &query.RegexMatch{
		Index:   r.languageField,
		Pattern: "(" + strings.Join(languages, "|") + ")",
		Negated: true,
	}
	return query.Not(exclude)
}

// matchingFilter returns the first filter whose language equals the regex
// pattern.
func matchingFilter(filters []core.StemFilter, language string) *core.StemFilter {
	for i := range filters {
		if filters[i].Language == language {
			return &filters[i]
		}
	}
	return nil
}

// removeStems drops every term whose word is a filtered stem, children first.
func removeStems(c *query.Composite, filter *core.StemFilter) {
	for _, child := range c.Children {
		if sub, ok := child.(*query.Composite); ok {
			removeStems(sub, filter)
		}
	}
	c.RemoveIf(func(n query.Node) bool {
		t, ok := n.(*query.Term)
		return ok && filter.Contains(t.Word)
	})
}

func formatFilters(filters []core.StemFilter) string {
	parts := make([]string, len(filters))
	for i, f := range filters {
		parts[i] = fmt.Sprintf("%s:%v", f.Language, f.Stems)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
