package notation

import (
	"fmt"
	"os"
)

// SyntaxError reports a malformed document. Line is 1-based.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// parser holds the only state there is: a byte cursor and a line counter.
// There is no lookahead beyond the current byte and no backtracking, so a
// given input always parses to the same tree.
type parser struct {
	src  string
	pos  int
	line int
}

// Parse parses src into its top-level forms. Whitespace-only stretches
// produce no node; only Ident and Pair values appear in the result.
//
// The single possible failure is end of input inside an unterminated
// `(`-form, reported as a *SyntaxError carrying the line the parser had
// reached.
func Parse(src string) ([]Value, error) {
	p := &parser{src: src, line: 1}
	var forms []Value
	for !p.eof() {
		v, err := p.form()
		if err != nil {
			return nil, err
		}
		if v != nil {
			forms = append(forms, v)
		}
	}
	return forms, nil
}

// ParseFile reads path and parses its contents.
func ParseFile(path string) ([]Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(string(data))
}

// form consumes one form. A nil Value with a nil error means the consumed
// input was whitespace and produced nothing.
func (p *parser) form() (Value, error) {
	c := p.src[p.pos]
	p.pos++
	switch c {
	case ' ', '\t', '\r':
		return nil, nil
	case '\n':
		p.line++
		return nil, nil
	case '(':
		key := p.ident()
		var body List
		for !p.eof() && p.src[p.pos] != ')' {
			v, err := p.form()
			if err != nil {
				return nil, err
			}
			if v != nil {
				body = append(body, v)
			}
		}
		if p.eof() {
			return nil, &SyntaxError{Line: p.line, Msg: "expected ')', found end of input"}
		}
		p.pos++ // consume ')'
		return Pair{Key: key, Body: body}, nil
	default:
		// Any other byte starts an identifier and belongs to it. A '('
		// only opens a keyed form when it starts a form of its own.
		return Ident(string(c) + p.ident()), nil
	}
}

// ident consumes bytes up to the next delimiter. Delimiters are the
// whitespace bytes and ')'; everything else, '(' included, is identifier
// text.
func (p *parser) ident() string {
	start := p.pos
	for !p.eof() && !isDelim(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func isDelim(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', ')':
		return true
	}
	return false
}
