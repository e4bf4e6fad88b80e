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
	"regexp"
	"strings"
)

// Kind identifies how a Composite combines its children.
type Kind int

const (
	// KindAnd requires every child to match.
	KindAnd Kind = iota + 1
	// KindOr requires any child to match.
	KindOr
	// KindNot excludes documents matching any child. All children are negative.
	KindNot
	// KindWeakAnd requires most children to match and contributes to the score.
	KindWeakAnd
	// KindRank matches on its first child; the rest only contribute to the score.
	KindRank
	// KindEquiv treats its children as alternative forms of one term.
	KindEquiv
	// KindPhrase requires its children to match in sequence.
	KindPhrase
)

var kindNames = map[Kind]string{
	KindAnd:     "and",
	KindOr:      "or",
	KindNot:     "not",
	KindWeakAnd: "weakand",
	KindRank:    "rank",
	KindEquiv:   "equiv",
	KindPhrase:  "phrase",
}

// String returns the lower case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind returns the Kind with the given name.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(name)
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Node is a query expression tree node: *Term, *RegexMatch or *Composite.
type Node interface {
	fmt.Stringer
	node()
}

// Term matches a single word in an index.
type Term struct {
	Index string
	Word  string
}

// RegexMatch matches documents whose field value fully matches Pattern.
// Negated marks the predicate as an exclusion when it sits under a Not.
type RegexMatch struct {
	Index   string
	Pattern string
	Negated bool
}

// Composite combines an ordered list of children.
// Child order matters for Phrase and Rank, and for the And-first-child convention.
type Composite struct {
	Kind     Kind
	Children []Node
}

func (*Term) node()       {}
func (*RegexMatch) node() {}
func (*Composite) node()  {}

var (
	_ Node = (*Term)(nil)
	_ Node = (*RegexMatch)(nil)
	_ Node = (*Composite)(nil)
)

// NewTerm creates a term node.
func NewTerm(index, word string) *Term {
	return &Term{Index: index, Word: word}
}

// NewRegex creates a regex predicate node.
func NewRegex(index, pattern string) *RegexMatch {
	return &RegexMatch{Index: index, Pattern: pattern}
}

// NewComposite creates a composite node of the given kind.
func NewComposite(kind Kind, children ...Node) *Composite {
	c := &Composite{Kind: kind, Children: make([]Node, 0, len(children))}
	c.Children = append(c.Children, children...)
	return c
}

// And, Or, Not, WeakAnd, Rank, Equiv and Phrase create composites of the matching kind.
func And(children ...Node) *Composite     { return NewComposite(KindAnd, children...) }
func Or(children ...Node) *Composite      { return NewComposite(KindOr, children...) }
func Not(children ...Node) *Composite     { return NewComposite(KindNot, children...) }
func WeakAnd(children ...Node) *Composite { return NewComposite(KindWeakAnd, children...) }
func Rank(children ...Node) *Composite    { return NewComposite(KindRank, children...) }
func Equiv(children ...Node) *Composite   { return NewComposite(KindEquiv, children...) }
func Phrase(children ...Node) *Composite  { return NewComposite(KindPhrase, children...) }

// Matches reports whether value fully matches the pattern.
// An invalid pattern matches nothing.
func (r *RegexMatch) Matches(value string) bool {
	re, err := regexp.Compile("^(?:" + r.Pattern + ")$")
	if err != nil {
		return false
	}
	return re.MatchString(value)
}

// Len returns the number of children.
func (c *Composite) Len() int {
	return len(c.Children)
}

// Child returns the child at index i, or nil if i is out of range.
func (c *Composite) Child(i int) Node {
	if i < 0 || i >= len(c.Children) {
		return nil
	}
	return c.Children[i]
}

// Add appends a child.
func (c *Composite) Add(n Node) {
	c.Children = append(c.Children, n)
}

// Set replaces the child at index i.
func (c *Composite) Set(i int, n Node) error {
	if n == nil {
		return ErrNilNode
	}
	if i < 0 || i >= len(c.Children) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(c.Children))
	}
	c.Children[i] = n
	return nil
}

// RemoveAt removes the child at index i, keeping the order of the others.
func (c *Composite) RemoveAt(i int) error {
	if i < 0 || i >= len(c.Children) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(c.Children))
	}
	c.Children = append(c.Children[:i], c.Children[i+1:]...)
	return nil
}

// RemoveIf removes every child for which match returns true and reports how
// many were removed. Survivors keep their relative order.
func (c *Composite) RemoveIf(match func(Node) bool) int {
	kept := c.Children[:0]
	for _, child := range c.Children {
		if !match(child) {
			kept = append(kept, child)
		}
	}
	removed := len(c.Children) - len(kept)
	clear(c.Children[len(kept):])
	c.Children = kept
	return removed
}

func (t *Term) String() string {
	if t.Index == "" {
		return t.Word
	}
	return t.Index + ":" + t.Word
}

func (r *RegexMatch) String() string {
	s := r.Index + ":/" + r.Pattern + "/"
	if r.Negated {
		return "-" + s
	}
	return s
}

func (c *Composite) String() string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(c.Kind.String()))
	b.WriteByte('(')
	for i, child := range c.Children {
		if i > 0 {
			b.WriteByte(' ')
		}
		if child == nil {
			b.WriteString("<nil>")
			continue
		}
		b.WriteString(child.String())
	}
	b.WriteByte(')')
	return b.String()
}
