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


// Package multilang expands a single language query into a multilingual one.
//
// The text of the query's primary term is language detected, tokenized and
// translated word by word. Every translation is stemmed, and the query term
// is replaced by
//
//	RANK(WEAKAND(EQUIV(...) EQUIV(...) ...) default:word0 default:word1 ...)
//
// where each EQUIV holds the stems of one source word across all languages.
// The WEAKAND decides what matches; the original words only add to the score.
// A language filter next to the query term is left as is.
//
// A failed translation is not an error: the query runs unchanged and the
// failure is recorded in the request trace.
package multilang
