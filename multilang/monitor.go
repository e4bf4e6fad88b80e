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

import (
	"github.com/poiesic/qrewrite/core"
	"github.com/poiesic/qrewrite/query"
)

// Stems holds the stems of a translation by language and word position.
// Each position has one StemList per whitespace separated unit of the
// translated entry, so a multi word translation has several.
type Stems map[string][][]core.StemList

// Monitor provides hooks to observe a multilingual rewrite.
// Implement this interface to inspect intermediate results.
type Monitor interface {
	Start(text string)
	AfterDetection(language string)
	AfterTokenization(words []string)
	AfterTranslation(translation *core.MultiTranslation)
	TranslationFailed(err error)
	AfterStemming(stems Stems)
	Finish(root query.Node)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                            {}
func (n *noopMonitor) AfterDetection(_ string)                   {}
func (n *noopMonitor) AfterTokenization(_ []string)              {}
func (n *noopMonitor) AfterTranslation(_ *core.MultiTranslation) {}
func (n *noopMonitor) TranslationFailed(_ error)                 {}
func (n *noopMonitor) AfterStemming(_ Stems)                     {}
func (n *noopMonitor) Finish(_ query.Node)                       {}
