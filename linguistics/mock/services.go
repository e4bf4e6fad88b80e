package mock

import (
	"context"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/poiesic/qrewrite/core"
)

// MockDetector is a test double for linguistics.Detector.
type MockDetector struct {
	// DetectFunc is called by Detect if set.
	DetectFunc func(ctx context.Context, text string) (string, error)

	callCount atomic.Int64
}

// NewMockDetector creates a mock detector that always detects English.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// Detect returns the result of DetectFunc, or "en".
func (m *MockDetector) Detect(ctx context.Context, text string) (string, error) {
	m.callCount.Add(1)
	if m.DetectFunc != nil {
		return m.DetectFunc(ctx, text)
	}
	return "en", nil
}

// CallCount returns the number of times Detect was called.
func (m *MockDetector) CallCount() int {
	return int(m.callCount.Load())
}

// MockTokenizer is a test double for linguistics.Tokenizer.
type MockTokenizer struct {
	// TokenizeFunc is called by Tokenize if set.
	TokenizeFunc func(ctx context.Context, text, language string, stem bool) ([]core.Token, error)

	callCount atomic.Int64
}

// NewMockTokenizer creates a mock tokenizer with default behavior.
func NewMockTokenizer() *MockTokenizer {
	return &MockTokenizer{}
}

// Tokenize splits text into runs of letters and digits (indexable) and
// runs of anything else (not indexable).
func (m *MockTokenizer) Tokenize(ctx context.Context, text, language string, stem bool) ([]core.Token, error) {
	m.callCount.Add(1)
	if m.TokenizeFunc != nil {
		return m.TokenizeFunc(ctx, text, language, stem)
	}
	return SplitTokens(text), nil
}

// CallCount returns the number of times Tokenize was called.
func (m *MockTokenizer) CallCount() int {
	return int(m.callCount.Load())
}

// SplitTokens is the default MockTokenizer behavior.
func SplitTokens(text string) []core.Token {
	var tokens []core.Token
	var current strings.Builder
	currentIndexable := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, core.Token{Text: current.String(), Indexable: currentIndexable})
			current.Reset()
		}
	}

	for _, r := range text {
		indexable := unicode.IsLetter(r) || unicode.IsDigit(r)
		if current.Len() > 0 && indexable != currentIndexable {
			flush()
		}
		currentIndexable = indexable
		current.WriteRune(r)
	}
	flush()
	return tokens
}

// MockNormalizer is a test double for linguistics.Normalizer.
type MockNormalizer struct {
	// NormalizeFunc is called by Normalize if set.
	NormalizeFunc func(text string) string

	callCount atomic.Int64
}

// NewMockNormalizer creates a mock normalizer that lower cases text.
func NewMockNormalizer() *MockNormalizer {
	return &MockNormalizer{}
}

// Normalize returns the result of NormalizeFunc, or the lower cased text.
func (m *MockNormalizer) Normalize(text string) string {
	m.callCount.Add(1)
	if m.NormalizeFunc != nil {
		return m.NormalizeFunc(text)
	}
	return strings.ToLower(text)
}

// CallCount returns the number of times Normalize was called.
func (m *MockNormalizer) CallCount() int {
	return int(m.callCount.Load())
}

// MockStemmer is a test double for linguistics.Stemmer.
type MockStemmer struct {
	// StemFunc is called by Stem if set.
	StemFunc func(ctx context.Context, text, language string) ([]core.StemList, error)

	callCount atomic.Int64
}

// NewMockStemmer creates a mock stemmer that returns every word as its own stem.
func NewMockStemmer() *MockStemmer {
	return &MockStemmer{}
}

// Stem returns the result of StemFunc, or one single-candidate StemList per word.
func (m *MockStemmer) Stem(ctx context.Context, text, language string) ([]core.StemList, error) {
	m.callCount.Add(1)
	if m.StemFunc != nil {
		return m.StemFunc(ctx, text, language)
	}
	words := strings.Fields(text)
	stems := make([]core.StemList, len(words))
	for i, word := range words {
		stems[i] = core.StemList{word}
	}
	return stems, nil
}

// CallCount returns the number of times Stem was called.
func (m *MockStemmer) CallCount() int {
	return int(m.callCount.Load())
}
