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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidStemFilter indicates a stem filter list failed parsing or validation.
	ErrInvalidStemFilter = errors.New("invalid stem filter")

	// ErrInvalidTranslation indicates a MultiTranslation failed validation.
	ErrInvalidTranslation = errors.New("invalid translation")

	// ErrEmptyLanguage indicates a language code is empty.
	ErrEmptyLanguage = errors.New("language cannot be empty")

	// ErrInvalidLanguage indicates a language code could not be parsed.
	ErrInvalidLanguage = errors.New("invalid language code")

	// ErrMisalignedTranslation indicates a translation part does not have one entry per source word.
	ErrMisalignedTranslation = errors.New("translation is not aligned with source words")
)
