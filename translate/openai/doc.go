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


// Package openai implements translate.Translator on top of an
// OpenAI-compatible chat model (OpenAI, Ollama, LocalAI, vLLM) using langchaingo.
//
// The model is asked for a JSON object mapping every target language to a list
// of translated words. Malformed or misaligned responses are retried up to
// Config.MaxAttempts times before the call fails with translate.ErrTranslationFailed.
//
// # Usage
//
//	cfg := translate.NewConfig(translate.WithLanguages("en", "de", "fr"))
//	translator, err := openai.NewTranslator(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mt, err := translator.MultiTranslate(ctx, []string{"war"}, "en")
package openai
