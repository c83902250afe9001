package sexpr

import (
	"fmt"
	"io"
	"strings"
)

// Parse reads all top-level S-expressions from r.
func Parse(r io.Reader) ([]Node, error) {
	lex := newLexer(r)
	var out []Node
	for {
		tok, err := lex.next()
		if err != nil {
			return nil, err
		}
		if tok.typ == tokenEOF {
			return out, nil
		}
		node, err := parseNode(lex, tok)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
}

// ParseString parses all S-expressions from a string.
func ParseString(s string) ([]Node, error) {
	return Parse(strings.NewReader(s))
}

// ParseOne parses a single S-expression from a string and errors if
// the input is empty.
func ParseOne(s string) (Node, error) {
	nodes, err := ParseString(s)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("no s-expression in input")
	}
	return nodes[0], nil
}

func parseNode(lex *lexer, tok token) (Node, error) {
	switch tok.typ {
	case tokenAtom:
		return Atom(tok.value), nil
	case tokenOpen:
		var list List
		for {
			tok, err := lex.next()
			if err != nil {
				return nil, err
			}
			switch tok.typ {
			case tokenClose:
				return list, nil
			case tokenEOF:
				return nil, fmt.Errorf("unexpected end of input in list")
			default:
				elem, err := parseNode(lex, tok)
				if err != nil {
					return nil, err
				}
				list = append(list, elem)
			}
		}
	case tokenClose:
		return nil, fmt.Errorf("unexpected ')'")
	default:
		return nil, fmt.Errorf("unexpected token %q", tok.value)
	}
}
