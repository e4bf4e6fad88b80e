package stemfilter

import (
	"context"
	"regexp"
	"testing"

	"github.com/poiesic/qrewrite/core"
	"github.com/poiesic/qrewrite/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func term(word string) *query.Term {
	return query.NewTerm("default", word)
}

func lang(code string) *query.RegexMatch {
	return query.NewRegex("language", code)
}

func canonical() *query.Composite {
	return query.And(query.WeakAnd(term("war"), term("mission")), lang("en"))
}

func newTestRewriter(t *testing.T, opts ...Option) *Rewriter {
	t.Helper()
	r, err := NewRewriter(opts...)
	require.NoError(t, err)
	return r
}

func newRequest(root query.Node, filters string) *query.Request {
	return query.NewRequest(root, map[string]string{DefaultPropertyName: filters})
}

func TestRewrite_LanguageFilterWithoutMatchingStems(t *testing.T) {
	r := newTestRewriter(t)
	root := canonical()
	req := newRequest(root, `[{"language": "en", "stems": ["or"]}]`)

	result, err := r.Rewrite(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, query.Equal(canonical(), result))
	assert.Same(t, root, result)
}

func TestRewrite_RemovesStemInPlace(t *testing.T) {
	r := newTestRewriter(t)
	root := canonical()
	req := newRequest(root, `[{"language": "en", "stems": ["war"]}]`)

	result, err := r.Rewrite(context.Background(), req)
	require.NoError(t, err)

	want := query.And(query.WeakAnd(term("mission")), lang("en"))
	assert.True(t, query.Equal(want, result), "got %s", result)
	assert.Same(t, result, req.Root)
	assert.Equal(t, []string{"Filtering done: [en:[war]]"}, req.Context.Traces())
}

func TestRewrite_BranchesPerLanguage(t *testing.T) {
	r := newTestRewriter(t)
	root := query.WeakAnd(term("war"))
	req := newRequest(root, `[{"language": "en", "stems": ["war"]}, {"language": "de", "stems": ["krieg"]}]`)

	result, err := r.Rewrite(context.Background(), req)
	require.NoError(t, err)

	want := query.Or(
		query.And(query.WeakAnd(term("war")), query.Not(&query.RegexMatch{Index: "language", Pattern: "(en|de)", Negated: true})),
		query.And(query.WeakAnd(), lang("en")),
		query.And(query.WeakAnd(term("war")), lang("de")),
	)
	assert.True(t, query.Equal(want, result), "got %s", result)
	assert.Same(t, result, req.Root)
}

func TestRewrite_BranchesWhenAndHasNoLanguageFilter(t *testing.T) {
	r := newTestRewriter(t)
	root := query.And(query.WeakAnd(term("war")), query.NewTerm("title", "news"))

	result := r.RewriteTree(root, []core.StemFilter{{Language: "en", Stems: []string{"war"}}})

	or, ok := query.AsComposite(result, query.KindOr)
	require.True(t, ok)
	require.Equal(t, 2, or.Len())
	fallback := or.Child(0).(*query.Composite)
	assert.Same(t, root, fallback.Child(0))

	en := or.Child(1).(*query.Composite)
	want := query.And(query.And(query.WeakAnd(), query.NewTerm("title", "news")), lang("en"))
	assert.True(t, query.Equal(want, en), "got %s", en)
}

func TestRewrite_SingleFilterStillBranches(t *testing.T) {
	r := newTestRewriter(t)
	result := r.RewriteTree(query.WeakAnd(term("war")), []core.StemFilter{{Language: "en", Stems: []string{"or"}}})

	or, ok := query.AsComposite(result, query.KindOr)
	require.True(t, ok)
	assert.Equal(t, 2, or.Len())
}

func TestRewrite_OrHasKPlusOneBranches(t *testing.T) {
	r := newTestRewriter(t)
	filters := []core.StemFilter{
		{Language: "en", Stems: []string{"the"}},
		{Language: "de", Stems: []string{"der"}},
		{Language: "fr", Stems: []string{"le"}},
	}

	result := r.RewriteTree(query.WeakAnd(term("the"), term("der"), term("le")), filters)

	or, ok := query.AsComposite(result, query.KindOr)
	require.True(t, ok)
	require.Equal(t, len(filters)+1, or.Len())

	seen := make(map[string]bool)
	for i, f := range filters {
		branch := or.Child(i + 1).(*query.Composite)
		re, ok := branch.Child(1).(*query.RegexMatch)
		require.True(t, ok)
		assert.Equal(t, f.Language, re.Pattern)
		assert.False(t, seen[re.Pattern])
		seen[re.Pattern] = true

		filtered := branch.Child(0).(*query.Composite)
		assert.Equal(t, 2, filtered.Len())
		for _, child := range filtered.Children {
			assert.False(t, f.Contains(child.(*query.Term).Word))
		}
	}
}

func TestRewrite_ClonesDoNotAlias(t *testing.T) {
	r := newTestRewriter(t)
	root := query.WeakAnd(term("war"), term("peace"))
	result := r.RewriteTree(root, []core.StemFilter{{Language: "en", Stems: []string{"war"}}})

	or := result.(*query.Composite)
	branch := or.Child(1).(*query.Composite).Child(0).(*query.Composite)
	branch.Child(0).(*query.Term).Word = "changed"

	assert.Equal(t, "peace", root.Child(1).(*query.Term).Word)
	assert.Equal(t, 2, root.Len())
}

func TestExcludeLanguages(t *testing.T) {
	r := newTestRewriter(t)
	filters := []core.StemFilter{{Language: "de"}, {Language: "en"}, {Language: "de"}}

	not := r.excludeLanguages(filters)
	require.Equal(t, 1, not.Len())
	exclude := not.Child(0).(*query.RegexMatch)
	assert.True(t, exclude.Negated)
	assert.Equal(t, "(de|en)", exclude.Pattern)

	for _, code := range []string{"de", "en"} {
		assert.True(t, exclude.Matches(code), code)
	}
	for _, code := range []string{"fr", "d", "ende", "english", ""} {
		assert.False(t, exclude.Matches(code), code)
	}
}

func TestRewrite_UnrecognizedShapesPassThrough(t *testing.T) {
	r := newTestRewriter(t)
	filters := []core.StemFilter{{Language: "en", Stems: []string{"war"}}}

	tests := []struct {
		name string
		root query.Node
	}{
		{"term", term("war")},
		{"regex", lang("en")},
		{"or", query.Or(term("war"), term("peace"))},
		{"rank", query.Rank(query.WeakAnd(term("war")), term("war"))},
		{"and without weakand first", query.And(lang("en"), query.WeakAnd(term("war")))},
		{"and with term first", query.And(term("war"), lang("en"))},
		{"nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := query.Clone(tt.root)
			result := r.RewriteTree(tt.root, filters)
			assert.Equal(t, tt.root, result)
			assert.True(t, query.Equal(before, result))
		})
	}
}

func TestRewrite_NoFilters(t *testing.T) {
	r := newTestRewriter(t)

	for _, property := range []string{"", "  ", "[]"} {
		root := query.WeakAnd(term("war"))
		req := newRequest(root, property)
		result, err := r.Rewrite(context.Background(), req)
		require.NoError(t, err)
		assert.Same(t, root, result)
		assert.Empty(t, req.Context.Traces())
	}
}

func TestRewrite_LanguageWithoutFilter(t *testing.T) {
	r := newTestRewriter(t)
	root := query.And(query.WeakAnd(term("krieg")), lang("de"))
	before := query.Clone(root)

	result := r.RewriteTree(root, []core.StemFilter{{Language: "en", Stems: []string{"krieg"}}})
	assert.Same(t, root, result)
	assert.True(t, query.Equal(before, result))
}

func TestRewrite_FirstMatchingFilterWins(t *testing.T) {
	r := newTestRewriter(t)
	root := query.And(query.WeakAnd(term("war"), term("mission")), lang("en"))
	filters := []core.StemFilter{
		{Language: "en", Stems: []string{"war"}},
		{Language: "en", Stems: []string{"mission"}},
	}

	result := r.RewriteTree(root, filters)
	want := query.And(query.WeakAnd(term("mission")), lang("en"))
	assert.True(t, query.Equal(want, result), "got %s", result)
}

func TestRewrite_NestedAndAdjacentRemoval(t *testing.T) {
	r := newTestRewriter(t)
	root := query.And(
		query.WeakAnd(
			term("war"), term("war"), term("mission"),
			query.Phrase(term("war"), term("games")),
		),
		lang("en"),
	)

	result := r.RewriteTree(root, []core.StemFilter{{Language: "en", Stems: []string{"war"}}})
	want := query.And(query.WeakAnd(term("mission"), query.Phrase(term("games"))), lang("en"))
	assert.True(t, query.Equal(want, result), "got %s", result)
}

func TestRewrite_Idempotent(t *testing.T) {
	r := newTestRewriter(t)
	filters := []core.StemFilter{{Language: "en", Stems: []string{"war", "the"}}}
	root := query.And(query.WeakAnd(term("the"), term("war"), term("mission")), lang("en"))

	once := query.Clone(r.RewriteTree(root, filters))
	twice := r.RewriteTree(root, filters)
	assert.True(t, query.Equal(once, twice))
}

func TestRewrite_MalformedFilters(t *testing.T) {
	r := newTestRewriter(t)
	root := canonical()
	req := newRequest(root, `[{"language": "en", "stems": ["war"]`)

	_, err := r.Rewrite(context.Background(), req)
	assert.ErrorIs(t, err, core.ErrInvalidStemFilter)
	assert.Same(t, root, req.Root)
	assert.True(t, query.Equal(canonical(), req.Root))
}

func TestRewrite_CustomFieldAndProperty(t *testing.T) {
	r := newTestRewriter(t, WithLanguageField("lang"), WithPropertyName("filters"))
	root := query.And(query.WeakAnd(term("war"), term("mission")), query.NewRegex("lang", "en"))
	req := query.NewRequest(root, map[string]string{"filters": `[{"language": "en", "stems": ["war"]}]`})

	result, err := r.Rewrite(context.Background(), req)
	require.NoError(t, err)
	want := query.And(query.WeakAnd(term("mission")), query.NewRegex("lang", "en"))
	assert.True(t, query.Equal(want, result), "got %s", result)
}

func TestRewrite_FallbackExcludesFilterLanguages(t *testing.T) {
	r := newTestRewriter(t)
	filters := []core.StemFilter{{Language: "en"}, {Language: "de"}}
	result := r.RewriteTree(query.WeakAnd(term("war")), filters)

	fallback := result.(*query.Composite).Child(0).(*query.Composite)
	exclude := fallback.Child(1).(*query.Composite).Child(0).(*query.RegexMatch)
	re := regexp.MustCompile("^(?:" + exclude.Pattern + ")$")
	for _, f := range filters {
		assert.True(t, re.MatchString(f.Language))
	}
	assert.False(t, re.MatchString("fr"))
}

func TestRewrite_RegionTaggedLanguagesKeptVerbatim(t *testing.T) {
	r := newTestRewriter(t)
	root := query.WeakAnd(term("war"))
	req := newRequest(root, `[{"language": "zh-hant", "stems": ["war"]}, {"language": "pt-BR", "stems": ["x"]}]`)

	result, err := r.Rewrite(context.Background(), req)
	require.NoError(t, err)

	want := query.Or(
		query.And(query.WeakAnd(term("war")), query.Not(&query.RegexMatch{Index: "language", Pattern: "(zh-hant|pt-BR)", Negated: true})),
		query.And(query.WeakAnd(), lang("zh-hant")),
		query.And(query.WeakAnd(term("war")), lang("pt-BR")),
	)
	assert.True(t, query.Equal(want, result), "got %s", result)
	assert.Equal(t, []string{"Filtering done: [zh-hant:[war], pt-BR:[x]]"}, req.Context.Traces())
}

func TestRewrite_ExistingLanguageComparedVerbatim(t *testing.T) {
	r := newTestRewriter(t)
	filters := []core.StemFilter{{Language: "pt-BR", Stems: []string{"guerra"}}}

	regional := query.And(query.WeakAnd(term("guerra"), term("fria")), lang("pt-BR"))
	result := r.RewriteTree(regional, filters)
	want := query.And(query.WeakAnd(term("fria")), lang("pt-BR"))
	assert.True(t, query.Equal(want, result), "got %s", result)

	base := query.And(query.WeakAnd(term("guerra")), lang("pt"))
	before := query.Clone(base)
	result = r.RewriteTree(base, filters)
	assert.Same(t, base, result)
	assert.True(t, query.Equal(before, result))
}

func TestRewrite_UnparseableLanguageTagAccepted(t *testing.T) {
	r := newTestRewriter(t)
	root := query.And(query.WeakAnd(term("war"), term("mission")), lang("english"))
	req := newRequest(root, `[{"language": "english", "stems": ["war"]}]`)

	result, err := r.Rewrite(context.Background(), req)
	require.NoError(t, err)
	want := query.And(query.WeakAnd(term("mission")), lang("english"))
	assert.True(t, query.Equal(want, result), "got %s", result)
}

func TestNewRewriter_InvalidOptions(t *testing.T) {
	_, err := NewRewriter(WithLanguageField(""))
	assert.ErrorIs(t, err, ErrEmptyLanguageField)

	_, err = NewRewriter(WithPropertyName(""))
	assert.ErrorIs(t, err, ErrEmptyPropertyName)
}

func TestRewrite_NilRequest(t *testing.T) {
	r := newTestRewriter(t)
	_, err := r.Rewrite(context.Background(), nil)
	assert.ErrorIs(t, err, ErrRequestRequired)
}
