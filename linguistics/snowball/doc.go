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


// Package snowball provides an in-process linguistics.Linguistics.
//
// Language detection uses whatlanggo trigram profiles, normalization applies
// Unicode NFKC and case folding from golang.org/x/text, and stemming uses the
// Snowball stemmers from github.com/kljensen/snowball. Languages without a
// Snowball stemmer are stemmed to their case folded form.
//
// # Usage
//
//	ling := snowball.New(snowball.WithDefaultLanguage("en"))
//	lang, _ := ling.Detector().Detect(ctx, "la guerre et la paix")  // "fr"
package snowball
