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


// Package linguistics defines the language processing services consumed by
// the query rewriters.
//
// The rewriters never detect, tokenize or stem text themselves. They depend on
// the interfaces in this package, grouped behind a single Linguistics value:
//
//   - Detector: guesses the language of a piece of text
//   - Tokenizer: splits text into tokens, marking which ones are indexable
//   - Normalizer: folds text into the form the stemmer expects
//   - Stemmer: returns candidate stems for each whitespace separated unit
//
// # Implementation Packages
//
//   - linguistics/snowball: whatlanggo detection, Unicode normalization and
//     Snowball stemming
//   - linguistics/mock: test doubles with injectable behavior
//
// # Usage Example
//
//	ling := snowball.New()
//	lang, err := ling.Detector().Detect(ctx, "Das sollte als deutscher Text erkannt werden")
//	tokens, err := ling.Tokenizer().Tokenize(ctx, text, lang, false)
//	stems, err := ling.Stemmer().Stem(ctx, ling.Normalizer().Normalize(text), lang)
package linguistics
