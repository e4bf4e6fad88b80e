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


package qrewrite

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/qrewrite/linguistics"
	"github.com/poiesic/qrewrite/linguistics/snowball"
	"github.com/poiesic/qrewrite/multilang"
	"github.com/poiesic/qrewrite/query"
	"github.com/poiesic/qrewrite/stemfilter"
	"github.com/poiesic/qrewrite/translate"
	"github.com/poiesic/qrewrite/translate/openai"
)

// Rewriter rewrites the tree of a single request.
// Implementations store the result as the request's new root and return it.
type Rewriter interface {
	Rewrite(ctx context.Context, req *query.Request) (query.Node, error)
}

var (
	_ Rewriter = (*multilang.Rewriter)(nil)
	_ Rewriter = (*stemfilter.Rewriter)(nil)
	_ Rewriter = (*Chain)(nil)
)

type stage struct {
	name     string
	rewriter Rewriter
}

// Chain runs rewriters in order: multilingual expansion, then stem filtering.
type Chain struct {
	stages  []stage
	pool    *ants.Pool
	monitor multilang.Monitor
	onDone  func(Result)
	logger  *slog.Logger
	mu      sync.RWMutex
}

// Option configures a Chain.
type Option func(*Chain) error

// WithPoolSize overrides the batch worker pool size from the config.
func WithPoolSize(size int) Option {
	return func(c *Chain) error {
		if size < 1 {
			size = 1
		}
		if c.pool != nil {
			c.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		c.pool = pool
		return nil
	}
}

// WithMonitor sets the monitor passed to the multilingual stage.
func WithMonitor(monitor multilang.Monitor) Option {
	return func(c *Chain) error {
		c.monitor = monitor
		return nil
	}
}

// WithBatchCallback sets a function called as each request of a batch
// finishes. It runs on the worker goroutine and must be safe for concurrent use.
func WithBatchCallback(fn func(Result)) Option {
	return func(c *Chain) error {
		c.onDone = fn
		return nil
	}
}

// WithLogger sets a custom logger for the chain and its stages.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chain) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// New creates a chain backed by the snowball linguistics provider and the
// OpenAI compatible translator described by cfg.Translator.
func New(cfg *Config, opts ...Option) (*Chain, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		ling       linguistics.Linguistics
		translator translate.Translator
	)
	if cfg.Multilang.IsEnabled() {
		ling = snowball.New(snowball.WithDefaultLanguage(cfg.Multilang.DefaultLanguage))
		var err error
		translator, err = openai.NewTranslator(cfg.Translator)
		if err != nil {
			return nil, err
		}
	}
	return NewChain(cfg, ling, translator, opts...)
}

// NewChain creates a chain from cfg using the given collaborators.
// ling and translator may be nil when multilingual expansion is disabled.
func NewChain(cfg *Config, ling linguistics.Linguistics, translator translate.Translator, opts ...Option) (*Chain, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(cfg.PoolSize)
	if err != nil {
		return nil, err
	}

	c := &Chain{
		pool:   pool,
		logger: slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(c); optErr != nil {
			c.Release()
			return nil, optErr
		}
	}

	// Create stages after options are applied so they share the final logger
	if cfg.Multilang.IsEnabled() {
		if ling == nil {
			c.Release()
			return nil, ErrLinguisticsRequired
		}
		if translator == nil {
			c.Release()
			return nil, ErrTranslatorRequired
		}
		expander, err := multilang.NewRewriter(ling, translator,
			multilang.WithEligibleFields(cfg.Multilang.EligibleFields...),
			multilang.WithMonitor(c.monitor),
			multilang.WithLogger(c.logger))
		if err != nil {
			c.Release()
			return nil, err
		}
		c.stages = append(c.stages, stage{name: "multilang", rewriter: expander})
	}

	filter, err := stemfilter.NewRewriter(
		stemfilter.WithLanguageField(cfg.StemFilter.LanguageField),
		stemfilter.WithPropertyName(cfg.StemFilter.PropertyName),
		stemfilter.WithLogger(c.logger))
	if err != nil {
		c.Release()
		return nil, err
	}
	c.stages = append(c.stages, stage{name: "stemfilter", rewriter: filter})

	c.logger = c.logger.With("component", "chain")
	return c, nil
}

// Stages returns the stage names in execution order.
func (c *Chain) Stages() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.name
	}
	return names
}

// Rewrite runs every stage on req. Each stage sees the root left by the
// previous one. The first stage error stops the chain.
func (c *Chain) Rewrite(ctx context.Context, req *query.Request) (query.Node, error) {
	if req == nil {
		return nil, ErrRequestRequired
	}
	for _, s := range c.stages {
		root, err := s.rewriter.Rewrite(ctx, req)
		if err != nil {
			c.logger.Error("rewrite stage failed", "stage", s.name, "request", req.ID, "err", err)
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		req.Root = root
	}
	return req.Root, nil
}

// Result is the outcome of rewriting one request of a batch.
type Result struct {
	Request *query.Request
	Root    query.Node
	Err     error
}

// RewriteBatch rewrites independent requests concurrently.
// Every request is rewritten by a single goroutine. Results are in input order;
// a failed request does not affect the others.
func (c *Chain) RewriteBatch(ctx context.Context, reqs []*query.Request) ([]Result, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.pool == nil {
		return nil, ErrChainReleased
	}

	results := make([]Result, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		results[i].Request = req
		wg.Add(1)
		err := c.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				results[i].Err = err
			} else {
				results[i].Root, results[i].Err = c.Rewrite(ctx, req)
			}
			if c.onDone != nil {
				c.onDone(results[i])
			}
		})
		if err != nil {
			wg.Done()
			results[i].Err = err
		}
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	c.logger.Debug("batch rewritten", "requests", len(reqs), "failed", failed)
	return results, nil
}

// Release releases the worker pool.
// The chain should not be used for batches after calling Release.
func (c *Chain) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pool != nil {
		c.pool.Release()
		c.pool = nil
	}
}
