// Package mock provides test double implementations of the linguistics interfaces.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	ling := mock.NewMockLinguistics()
//
//	// Custom behavior injection
//	detector := mock.NewMockDetector()
//	detector.DetectFunc = func(ctx context.Context, text string) (string, error) {
//	    return "de", nil
//	}
//	ling = mock.NewMockLinguisticsWithServices(detector, nil, nil, nil)
//
// # Default Behavior
//
//   - MockDetector: Always detects "en"
//   - MockTokenizer: Splits on letter/digit boundaries; everything else is non-indexable
//   - MockNormalizer: Lower cases text
//   - MockStemmer: Returns each whitespace separated unit as its own single stem
package mock
