package sexpr

import (
	"bufio"
	"fmt"
	"io"
	"unicode"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenOpen
	tokenClose
	tokenAtom
)

type token struct {
	typ   tokenType
	value string
}

// lexer tokenizes S-expression input. It understands line comments
// starting with '#' and quoted strings with backslash escapes.
type lexer struct {
	r      *bufio.Reader
	peeked *rune
}

func newLexer(r io.Reader) *lexer {
	return &lexer{r: bufio.NewReader(r)}
}

func (l *lexer) next() (token, error) {
	for {
		ch, err := l.peek()
		if err != nil {
			if err == io.EOF {
				return token{typ: tokenEOF}, nil
			}
			return token{}, err
		}
		if unicode.IsSpace(ch) {
			l.read()
			continue
		}
		if ch == '#' {
			for {
				c, err := l.read()
				if err != nil || c == '\n' {
					break
				}
			}
			continue
		}
		break
	}

	ch, err := l.peek()
	if err != nil {
		if err == io.EOF {
			return token{typ: tokenEOF}, nil
		}
		return token{}, err
	}

	switch ch {
	case '(':
		l.read()
		return token{typ: tokenOpen, value: "("}, nil
	case ')':
		l.read()
		return token{typ: tokenClose, value: ")"}, nil
	case '"':
		return l.readString()
	default:
		return l.readBare()
	}
}

func (l *lexer) peek() (rune, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	ch, _, err := l.r.ReadRune()
	if err != nil {
		return 0, err
	}
	l.peeked = &ch
	return ch, nil
}

func (l *lexer) read() (rune, error) {
	if l.peeked != nil {
		ch := *l.peeked
		l.peeked = nil
		return ch, nil
	}
	ch, _, err := l.r.ReadRune()
	return ch, err
}

func (l *lexer) readString() (token, error) {
	l.read() // opening quote

	var out []rune
	for {
		ch, err := l.read()
		if err != nil {
			return token{}, fmt.Errorf("unterminated string")
		}
		if ch == '"' {
			break
		}
		if ch == '\\' {
			esc, err := l.read()
			if err != nil {
				return token{}, fmt.Errorf("unterminated escape in string")
			}
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			default:
				out = append(out, esc)
			}
			continue
		}
		out = append(out, ch)
	}
	return token{typ: tokenAtom, value: string(out)}, nil
}

func (l *lexer) readBare() (token, error) {
	var out []rune
	for {
		ch, err := l.peek()
		if err != nil {
			if err == io.EOF {
				break
			}
			return token{}, err
		}
		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			break
		}
		l.read()
		out = append(out, ch)
	}
	if len(out) == 0 {
		return token{}, fmt.Errorf("empty token")
	}
	return token{typ: tokenAtom, value: string(out)}, nil
}
