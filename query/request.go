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


package query

import (
	"fmt"
	"maps"
	"slices"

	"github.com/poiesic/qrewrite/core"
)

// Request is a single query in flight: its tree, the caller supplied
// properties and the metadata attached by rewriters.
// A Request is not safe for concurrent use.
type Request struct {
	ID         core.ID
	Root       Node
	Properties map[string]string
	Context    *Context
}

// NewRequest creates a request for root. The ID is derived from the rendered tree.
func NewRequest(root Node, properties map[string]string) *Request {
	props := make(map[string]string, len(properties))
	maps.Copy(props, properties)

	var id core.ID
	if root != nil {
		id = core.IDFromContent(root.String())
	}
	return &Request{
		ID:         id,
		Root:       root,
		Properties: props,
		Context:    NewContext(),
	}
}

// Property returns a caller supplied property, or "" if unset.
func (r *Request) Property(key string) string {
	return r.Properties[key]
}

// Context is the request scoped metadata sink. Rewriters write to it;
// later stages only read.
type Context struct {
	values map[string]string
	traces []string
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{values: make(map[string]string)}
}

// Set stores value under key, replacing any previous value.
func (c *Context) Set(key, value string) {
	c.values[key] = value
}

// Get returns the value stored under key.
func (c *Context) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Keys returns the stored keys in sorted order.
func (c *Context) Keys() []string {
	return slices.Sorted(maps.Keys(c.values))
}

// Trace appends a formatted trace message.
func (c *Context) Trace(format string, args ...any) {
	c.traces = append(c.traces, fmt.Sprintf(format, args...))
}

// Traces returns a copy of the trace messages in the order they were added.
func (c *Context) Traces() []string {
	return slices.Clone(c.traces)
}
