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


// Package query provides the query expression tree shared by all rewriters.
//
// A tree is built from three node variants:
//
//   - Term: a single word matched against an index
//   - RegexMatch: a field regex predicate, used for language filters
//   - Composite: an ordered list of children combined by a Kind
//     (And, Or, Not, WeakAnd, Rank, Equiv, Phrase)
//
// Node is a closed set: only the variants in this package implement it, and
// every traversal switches over all three.
//
// # Ownership
//
// A tree belongs to the Request that carries it. Rewriters mutate it in place
// or build new branches from Clone, which returns a fully independent copy.
// Children are never shared between two parents.
//
// # Canonical shapes
//
// The search frontend produces one of two root shapes:
//
//	AND(WEAKAND(default:war default:mission) language:/en/)
//	WEAKAND(default:war default:mission)
//
// Rewriters treat any other root as unrecognized and leave it alone.
package query
