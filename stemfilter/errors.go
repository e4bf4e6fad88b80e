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


package stemfilter

import "errors"

var (
	// ErrRequestRequired is returned when Rewrite is called with a nil request.
	ErrRequestRequired = errors.New("request required")

	// ErrEmptyLanguageField is returned when the language field name is empty.
	ErrEmptyLanguageField = errors.New("language field must not be empty")

	// ErrEmptyPropertyName is returned when the stem filter property name is empty.
	ErrEmptyPropertyName = errors.New("property name must not be empty")
)
