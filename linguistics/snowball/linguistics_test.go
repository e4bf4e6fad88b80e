package snowball

import (
	"context"
	"testing"

	"github.com/poiesic/qrewrite/core"
	"github.com/poiesic/qrewrite/linguistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	ctx := context.Background()
	ling := New()

	lang, err := ling.Detect(ctx, "Das sollte als deutscher Text erkannt werden, weil er lang genug ist.")
	require.NoError(t, err)
	assert.Equal(t, "de", lang)

	lang, err = ling.Detect(ctx, "This sentence should be recognised as English text by the detector.")
	require.NoError(t, err)
	assert.Equal(t, "en", lang)
}

func TestDetect_FallsBackToDefault(t *testing.T) {
	ling := New(WithDefaultLanguage("fr"), WithMinConfidence(1.1))

	lang, err := ling.Detect(context.Background(), "This sentence is clearly English text.")
	require.NoError(t, err)
	assert.Equal(t, "fr", lang)
}

func TestTokenize(t *testing.T) {
	ctx := context.Background()
	ling := New()

	tokens, err := ling.Tokenize(ctx, "War, missions!", "en", false)
	require.NoError(t, err)
	assert.Equal(t, []core.Token{
		{Text: "War", Indexable: true},
		{Text: ", ", Indexable: false},
		{Text: "missions", Indexable: true},
		{Text: "!", Indexable: false},
	}, tokens)
	assert.Equal(t, []string{"War", "missions"}, linguistics.IndexableWords(tokens))

	t.Run("with stemming", func(t *testing.T) {
		tokens, err := ling.Tokenize(ctx, "Running wars", "en", true)
		require.NoError(t, err)
		assert.Equal(t, []string{"run", "war"}, linguistics.IndexableWords(tokens))
	})

	t.Run("empty text", func(t *testing.T) {
		tokens, err := ling.Tokenize(ctx, "", "en", false)
		require.NoError(t, err)
		assert.Empty(t, tokens)
	})
}

func TestNormalize(t *testing.T) {
	ling := New()
	assert.Equal(t, "war and peace", ling.Normalize("War AND Peace"))
	// NFKC folds the ligature into plain letters.
	assert.Equal(t, "fire", ling.Normalize("ﬁre"))
}

func TestStem(t *testing.T) {
	ctx := context.Background()
	ling := New()

	stems, err := ling.Stem(ctx, "running wars", "en")
	require.NoError(t, err)
	assert.Equal(t, []core.StemList{{"run"}, {"war"}}, stems)

	t.Run("one stem list per unit", func(t *testing.T) {
		stems, err := ling.Stem(ctx, "-- american", "en")
		require.NoError(t, err)
		require.Len(t, stems, 2)
		assert.Equal(t, core.StemList{"--"}, stems[0])
	})

	t.Run("language without stemmer", func(t *testing.T) {
		stems, err := ling.Stem(ctx, "krieg", "de")
		require.NoError(t, err)
		assert.Equal(t, []core.StemList{{"krieg"}}, stems)
	})
}

func TestServicesShareInstance(t *testing.T) {
	ling := New()
	assert.Same(t, ling, ling.Detector())
	assert.Same(t, ling, ling.Stemmer())
}
