package query

import (
	"encoding/json"
	"fmt"
)

const (
	kindTerm  = "term"
	kindRegex = "regex"
)

// wireNode is the JSON representation of a node.
type wireNode struct {
	Kind     string      `json:"kind"`
	Index    string      `json:"index,omitempty"`
	Word     string      `json:"word,omitempty"`
	Pattern  string      `json:"pattern,omitempty"`
	Negated  bool        `json:"negated,omitempty"`
	Children []*wireNode `json:"children,omitempty"`
}

// Marshal encodes a tree as JSON.
func Marshal(n Node) ([]byte, error) {
	w, err := toWire(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// Unmarshal decodes a tree from JSON produced by Marshal.
func Unmarshal(data []byte) (Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return fromWire(&w)
}

func toWire(n Node) (*wireNode, error) {
	switch v := n.(type) {
	case nil:
		return nil, ErrNilNode
	case *Term:
		return &wireNode{Kind: kindTerm, Index: v.Index, Word: v.Word}, nil
	case *RegexMatch:
		return &wireNode{Kind: kindRegex, Index: v.Index, Pattern: v.Pattern, Negated: v.Negated}, nil
	case *Composite:
		w := &wireNode{Kind: v.Kind.String(), Children: make([]*wireNode, 0, len(v.Children))}
		for _, child := range v.Children {
			cw, err := toWire(child)
			if err != nil {
				return nil, err
			}
			w.Children = append(w.Children, cw)
		}
		return w, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, n)
	}
}

func fromWire(w *wireNode) (Node, error) {
	if w == nil {
		return nil, ErrNilNode
	}
	switch w.Kind {
	case kindTerm:
		return NewTerm(w.Index, w.Word), nil
	case kindRegex:
		return &RegexMatch{Index: w.Index, Pattern: w.Pattern, Negated: w.Negated}, nil
	}

	kind, err := ParseKind(w.Kind)
	if err != nil {
		return nil, err
	}
	c := &Composite{Kind: kind, Children: make([]Node, 0, len(w.Children))}
	for _, cw := range w.Children {
		child, err := fromWire(cw)
		if err != nil {
			return nil, err
		}
		c.Children = append(c.Children, child)
	}
	return c, nil
}
