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


package multilang

import "errors"

var (
	// ErrLinguisticsRequired is returned when no linguistics provider is given.
	ErrLinguisticsRequired = errors.New("linguistics required")

	// ErrTranslatorRequired is returned when no translator is given.
	ErrTranslatorRequired = errors.New("translator required")

	// ErrRequestRequired is returned when Rewrite is called with a nil request.
	ErrRequestRequired = errors.New("request required")

	// ErrNoEligibleFields is returned when the eligible field list is empty.
	ErrNoEligibleFields = errors.New("at least one eligible field is required")
)
