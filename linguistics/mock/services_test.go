package mock

import (
	"context"
	"testing"

	"github.com/poiesic/qrewrite/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTokens(t *testing.T) {
	tokens := SplitTokens("War, and peace!")
	assert.Equal(t, []core.Token{
		{Text: "War", Indexable: true},
		{Text: ", ", Indexable: false},
		{Text: "and", Indexable: true},
		{Text: " ", Indexable: false},
		{Text: "peace", Indexable: true},
		{Text: "!", Indexable: false},
	}, tokens)

	assert.Empty(t, SplitTokens(""))
}

func TestMockLinguistics_Defaults(t *testing.T) {
	ctx := context.Background()
	ling := NewMockLinguistics()

	lang, err := ling.Detector().Detect(ctx, "anything")
	require.NoError(t, err)
	assert.Equal(t, "en", lang)

	assert.Equal(t, "krieg und frieden", ling.Normalizer().Normalize("Krieg UND Frieden"))

	stems, err := ling.Stemmer().Stem(ctx, "krieg  frieden", "de")
	require.NoError(t, err)
	assert.Equal(t, []core.StemList{{"krieg"}, {"frieden"}}, stems)

	assert.Equal(t, 1, ling.GetMockDetector().CallCount())
	assert.Equal(t, 1, ling.GetMockNormalizer().CallCount())
	assert.Equal(t, 1, ling.GetMockStemmer().CallCount())
	assert.Equal(t, 0, ling.GetMockTokenizer().CallCount())
}

func TestMockLinguistics_CustomBehavior(t *testing.T) {
	detector := NewMockDetector()
	detector.DetectFunc = func(ctx context.Context, text string) (string, error) {
		return "de", nil
	}
	ling := NewMockLinguisticsWithServices(detector, nil, nil, nil)

	lang, err := ling.Detector().Detect(context.Background(), "Krieg")
	require.NoError(t, err)
	assert.Equal(t, "de", lang)
	assert.Same(t, detector, ling.GetMockDetector())
}
