package linguistics

import (
	"context"

	"github.com/poiesic/qrewrite/core"
)

// Detector guesses the language of text.
// Implementations must be thread-safe for concurrent use.
type Detector interface {
	// Detect returns the ISO 639-1 code of the most likely language of text.
	// Returns an error if detection fails.
	Detect(ctx context.Context, text string) (string, error)
}

// Tokenizer splits text into tokens.
// Implementations must be thread-safe for concurrent use.
type Tokenizer interface {
	// Tokenize splits text into tokens in document order, using the rules of
	// language. When stem is true, indexable tokens are replaced by their stems.
	// Whitespace and punctuation are returned as non-indexable tokens.
	Tokenize(ctx context.Context, text, language string, stem bool) ([]core.Token, error)
}

// Normalizer folds text into a canonical form before stemming.
// Implementations must be thread-safe for concurrent use.
type Normalizer interface {
	Normalize(text string) string
}

// Stemmer computes stems.
// Implementations must be thread-safe for concurrent use.
type Stemmer interface {
	// Stem returns one StemList per whitespace separated unit of text, in order.
	// Every StemList holds at least one candidate.
	Stem(ctx context.Context, text, language string) ([]core.StemList, error)
}

// Linguistics aggregates the language services used by the rewriters.
type Linguistics interface {
	Detector() Detector
	Tokenizer() Tokenizer
	Normalizer() Normalizer
	Stemmer() Stemmer
}

// IndexableWords returns the text of the indexable tokens, in order.
func IndexableWords(tokens []core.Token) []string {
	words := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token.Indexable {
			words = append(words, token.Text)
		}
	}
	return words
}
