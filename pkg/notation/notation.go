// Package notation implements the parenthesized configuration notation used
// by Kilnfiles.
//
// A document is an ordered sequence of forms. A form is either a bare
// identifier or a keyed list written `(key form...)`. Whitespace separates
// forms and is otherwise ignored; there is no quoting or escaping, so an
// identifier can never contain whitespace. The parser produces a tree of
// Value nodes which is immutable by convention: nothing in this package
// modifies a tree after Parse returns it.
package notation

import "strings"

// Value is one node of a parsed document. The concrete types are Ident,
// List and Pair; validation code is expected to switch over them
// exhaustively.
type Value interface {
	isValue()

	// String renders the node back into notation source. Rendering a tree
	// returned by Parse and parsing the result yields an identical tree.
	String() string
}

// Ident is an atomic token.
type Ident string

// List is an anonymous ordered group of forms. The parser only ever emits a
// List as the body of a Pair, but the type is addressable on its own so
// lookups can return bodies directly.
type List []Value

// Pair is a keyed list `(key form...)`. Key may be empty: `()` parses to a
// Pair with an empty key and body.
type Pair struct {
	Key  string
	Body List
}

func (Ident) isValue() {}
func (List) isValue()  {}
func (Pair) isValue()  {}

func (v Ident) String() string { return string(v) }

func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

func (p Pair) String() string {
	if len(p.Body) == 0 {
		return "(" + p.Key + ")"
	}
	return "(" + p.Key + " " + p.Body.String() + ")"
}

// Format renders a whole document, one top-level form per line.
func Format(forms []Value) string {
	var b strings.Builder
	for _, f := range forms {
		b.WriteString(f.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Find returns the body of the first top-level Pair whose key equals key.
// Later pairs with the same key are shadowed; that leniency is part of the
// format's contract, not an oversight.
func Find(forms []Value, key string) (List, bool) {
	for _, f := range forms {
		if p, ok := f.(Pair); ok && p.Key == key {
			return p.Body, true
		}
	}
	return nil, false
}
