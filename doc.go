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


// Package qrewrite rewrites query trees before they are executed.
//
// A Chain runs the multilingual expansion rewriter followed by the stem
// filter rewriter, in that order, on one request at a time. RewriteBatch
// rewrites independent requests concurrently on a worker pool.
//
// A Chain is normally built from a Config, which can be loaded from YAML:
//
//	cfg, err := qrewrite.LoadConfig("qrewrite.yaml")
//	chain, err := qrewrite.New(cfg)
//	defer chain.Release()
//	root, err := chain.Rewrite(ctx, query.NewRequest(root, props))
package qrewrite
