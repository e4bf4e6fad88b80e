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


// Package stemfilter removes per-language stop stems from a query tree.
//
// When the query already carries a language filter, terms whose word is a
// filtered stem for that language are removed in place. Otherwise the query
// is split into one branch per filtered language plus a fallback branch
// that only matches documents in none of those languages:
//
//	OR(
//	  AND(<original> NOT(-language:/(en|de)/))
//	  AND(<original without en stems> language:/en/)
//	  AND(<original without de stems> language:/de/)
//	)
//
// Recognized roots are a bare WEAKAND and an AND whose first child is a
// WEAKAND. Every other shape passes through untouched.
package stemfilter
