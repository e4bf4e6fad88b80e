package translate

import (
	"context"

	"github.com/poiesic/qrewrite/core"
)

// Translator translates word lists word by word into several languages.
// Implementations must be thread-safe for concurrent use.
type Translator interface {
	// MultiTranslate translates every word of words from sourceLanguage into each
	// configured target language. Every part of the result has exactly one entry
	// per input word, in input order.
	// Failures wrap ErrTranslationFailed.
	MultiTranslate(ctx context.Context, words []string, sourceLanguage string) (*core.MultiTranslation, error)
}
