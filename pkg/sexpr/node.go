// Package sexpr parses KiCad-style S-expressions into ordered nested
// lists. Symbol drawing commands arrive in this form: the first
// element of each list names the command kind and the remaining
// elements are scalar tokens or nested commands.
package sexpr

import "strings"

// Node is one S-expression node, either an Atom or a List.
type Node interface {
	// IsAtom reports whether the node is a scalar token.
	IsAtom() bool

	// String renders the node back into S-expression text.
	String() string
}

// Atom is a scalar token: an identifier, a number, or the contents of
// a quoted string (quotes and escapes already resolved).
type Atom string

func (a Atom) IsAtom() bool   { return true }
func (a Atom) String() string { return string(a) }

// List is an ordered sequence of nodes.
type List []Node

func (l List) IsAtom() bool { return false }

// Len returns the number of elements, including the kind label.
func (l List) Len() int { return len(l) }

// Get returns the element at index i, or nil if out of range.
func (l List) Get(i int) Node {
	if i < 0 || i >= len(l) {
		return nil
	}
	return l[i]
}

// Kind returns the first element as a string if it is an atom, which
// is how drawing commands are labeled. Returns "" for empty lists or
// lists headed by a sublist.
func (l List) Kind() string {
	if len(l) == 0 {
		return ""
	}
	if a, ok := l[0].(Atom); ok {
		return string(a)
	}
	return ""
}

func (l List) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, n := range l {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(n.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
