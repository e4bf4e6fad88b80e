package mock

import "github.com/poiesic/qrewrite/linguistics"

// MockLinguistics is a test double for linguistics.Linguistics.
type MockLinguistics struct {
	detector   *MockDetector
	tokenizer  *MockTokenizer
	normalizer *MockNormalizer
	stemmer    *MockStemmer
}

var _ linguistics.Linguistics = (*MockLinguistics)(nil)

// NewMockLinguistics creates mock linguistics with default mock services.
func NewMockLinguistics() *MockLinguistics {
	return NewMockLinguisticsWithServices(nil, nil, nil, nil)
}

// NewMockLinguisticsWithServices creates mock linguistics with custom mock services.
// Nil arguments are replaced with default mocks.
func NewMockLinguisticsWithServices(
	detector *MockDetector,
	tokenizer *MockTokenizer,
	normalizer *MockNormalizer,
	stemmer *MockStemmer,
) *MockLinguistics {
	if detector == nil {
		detector = NewMockDetector()
	}
	if tokenizer == nil {
		tokenizer = NewMockTokenizer()
	}
	if normalizer == nil {
		normalizer = NewMockNormalizer()
	}
	if stemmer == nil {
		stemmer = NewMockStemmer()
	}
	return &MockLinguistics{
		detector:   detector,
		tokenizer:  tokenizer,
		normalizer: normalizer,
		stemmer:    stemmer,
	}
}

func (l *MockLinguistics) Detector() linguistics.Detector     { return l.detector }
func (l *MockLinguistics) Tokenizer() linguistics.Tokenizer   { return l.tokenizer }
func (l *MockLinguistics) Normalizer() linguistics.Normalizer { return l.normalizer }
func (l *MockLinguistics) Stemmer() linguistics.Stemmer       { return l.stemmer }

// GetMockDetector returns the underlying mock detector for test assertions.
func (l *MockLinguistics) GetMockDetector() *MockDetector { return l.detector }

// GetMockTokenizer returns the underlying mock tokenizer for test assertions.
func (l *MockLinguistics) GetMockTokenizer() *MockTokenizer { return l.tokenizer }

// GetMockNormalizer returns the underlying mock normalizer for test assertions.
func (l *MockLinguistics) GetMockNormalizer() *MockNormalizer { return l.normalizer }

// GetMockStemmer returns the underlying mock stemmer for test assertions.
func (l *MockLinguistics) GetMockStemmer() *MockStemmer { return l.stemmer }
