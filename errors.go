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


package qrewrite

import "errors"

var (
	// ErrConfigRequired is returned when a nil Config is passed to a constructor.
	ErrConfigRequired = errors.New("config required")

	// ErrLinguisticsRequired is returned when multilingual expansion is
	// enabled without a linguistics provider.
	ErrLinguisticsRequired = errors.New("linguistics required")

	// ErrTranslatorRequired is returned when multilingual expansion is
	// enabled without a translator.
	ErrTranslatorRequired = errors.New("translator required")

	// ErrRequestRequired is returned when Rewrite is called with a nil request.
	ErrRequestRequired = errors.New("request required")

	// ErrChainReleased is returned by RewriteBatch after Release.
	ErrChainReleased = errors.New("chain released")
)
