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


// Package translate defines the word to word translation service used for
// multilingual query expansion.
//
// A Translator receives the indexable words of a query and returns, for every
// target language, one translated word per source word. Positional alignment
// is part of the contract: translation j of every language corresponds to
// source word j.
//
// # Implementation Packages
//
//   - translate/openai: translation through an OpenAI-compatible chat model
//   - translate/mock: test double with injectable behavior
//
// # Usage Example
//
//	cfg := translate.NewConfig(
//	    translate.WithHost("http://localhost:11434/v1"),
//	    translate.WithLanguages("en", "de", "fr"),
//	)
//	translator, err := openai.NewTranslator(cfg)
//	mt, err := translator.MultiTranslate(ctx, []string{"war", "mission"}, "en")
package translate
