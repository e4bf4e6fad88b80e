package translate

import "errors"

var (
	// ErrTranslationFailed is returned when the translation service fails or
	// returns an unusable result.
	ErrTranslationFailed = errors.New("translation failed")
)
