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
	"sync"
	"time"
)

// progress reports how many batch queries have been rewritten.
type progress struct {
	writer   io.Writer
	total    int
	interval int
	done     int
	failed   int
	reported int
	start    time.Time
	mu       sync.Mutex
}

// newProgress creates a tracker that reports every interval queries.
// An interval below 1 disables intermediate reports.
func newProgress(writer io.Writer, total, interval int) *progress {
	return &progress{
		writer:   writer,
		total:    total,
		interval: interval,
		start:    time.Now(),
	}
}

// record counts one finished query.
func (p *progress) record(failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = min(p.done+1, p.total)
	if failed {
		p.failed++
	}
	if p.interval > 0 && p.done-p.reported >= p.interval {
		p.report()
		p.reported = p.done
	}
}

// finish prints the final count.
func (p *progress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.report()
	fmt.Fprintln(p.writer)
}

// report must be called with the lock held.
func (p *progress) report() {
	rate := 0.0
	if elapsed := time.Since(p.start).Seconds(); elapsed > 0 {
		rate = float64(p.done) / elapsed
	}
	fmt.Fprintf(p.writer, "\rRewritten: %d/%d (%d failed) - %.1f queries/s",
		p.done, p.total, p.failed, rate)
}
