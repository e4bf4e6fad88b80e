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


package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/poiesic/qrewrite/core"
	"github.com/poiesic/qrewrite/multilang"
	"github.com/poiesic/qrewrite/query"
)

// explainMonitor prints each multilingual expansion step.
type explainMonitor struct {
	w     io.Writer
	step  *color.Color
	fail  *color.Color
	value *color.Color
}

var _ multilang.Monitor = (*explainMonitor)(nil)

func newExplainMonitor(w io.Writer) *explainMonitor {
	return &explainMonitor{
		w:     w,
		step:  color.New(color.FgGreen),
		fail:  color.New(color.FgRed),
		value: color.New(color.FgYellow),
	}
}

func (m *explainMonitor) printf(c *color.Color, label, format string, args ...any) {
	c.Fprintf(m.w, "  %-12s ", label)
	m.value.Fprintf(m.w, format, args...)
	fmt.Fprintln(m.w)
}

func (m *explainMonitor) Start(text string) {
	m.printf(m.step, "multilang", "%q", text)
}

func (m *explainMonitor) AfterDetection(language string) {
	m.printf(m.step, "language", "%s", language)
}

func (m *explainMonitor) AfterTokenization(words []string) {
	m.printf(m.step, "words", "%s", strings.Join(words, " | "))
}

func (m *explainMonitor) AfterTranslation(translation *core.MultiTranslation) {
	for _, part := range translation.Translations {
		m.printf(m.step, "translated", "%s: %s", part.LanguageCode, strings.Join(part.Content, " | "))
	}
}

func (m *explainMonitor) TranslationFailed(err error) {
	m.printf(m.fail, "failed", "%v", err)
}

func (m *explainMonitor) AfterStemming(stems multilang.Stems) {
	for _, lang := range slices.Sorted(maps.Keys(stems)) {
		m.printf(m.step, "stemmed", "%s: %v", lang, stems[lang])
	}
}

func (m *explainMonitor) Finish(root query.Node) {
	m.printf(m.step, "expanded", "%s", root)
}
