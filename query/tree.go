package query

// Clone returns a deep copy of n. The copy shares no nodes with n.
func Clone(n Node) Node {
	switch v := n.(type) {
	case nil:
		return nil
	case *Term:
		c := *v
		return &c
	case *RegexMatch:
		c := *v
		return &c
	case *Composite:
		c := &Composite{Kind: v.Kind, Children: make([]Node, len(v.Children))}
		for i, child := range v.Children {
			c.Children[i] = Clone(child)
		}
		return c
	default:
		// Node is sealed; only the cases above implement it.
		return nil
	}
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b Node) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case *Term:
		bv, ok := b.(*Term)
		return ok && *av == *bv
	case *RegexMatch:
		bv, ok := b.(*RegexMatch)
		return ok && *av == *bv
	case *Composite:
		bv, ok := b.(*Composite)
		if !ok || av.Kind != bv.Kind || len(av.Children) != len(bv.Children) {
			return false
		}
		for i := range av.Children {
			if !Equal(av.Children[i], bv.Children[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Walk visits n depth-first, children before their parent.
// It stops at the first error returned by fn.
func Walk(n Node, fn func(Node) error) error {
	switch v := n.(type) {
	case nil:
		return nil
	case *Term, *RegexMatch:
		return fn(v)
	case *Composite:
		for _, child := range v.Children {
			if err := Walk(child, fn); err != nil {
				return err
			}
		}
		return fn(v)
	default:
		return nil
	}
}

// AsComposite returns n as a composite of the given kind.
func AsComposite(n Node, kind Kind) (*Composite, bool) {
	c, ok := n.(*Composite)
	if !ok || c.Kind != kind {
		return nil, false
	}
	return c, true
}

// IsComposite reports whether n is a composite of the given kind.
func IsComposite(n Node, kind Kind) bool {
	_, ok := AsComposite(n, kind)
	return ok
}

// IsTermWord reports whether n is a term whose word equals word.
func IsTermWord(n Node, word string) bool {
	t, ok := n.(*Term)
	return ok && t.Word == word
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	count := 0
	_ = Walk(n, func(Node) error {
		count++
		return nil
	})
	return count
}
