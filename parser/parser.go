/*
Package parser provides a lisp reader.

	expr   := <list> | <quote> | <atom>
	list   := <open> <expr>* <close>
	open   := '(' | '[' | '{'
	close  := ')' | ']' | '}'
	quote  := "'" <expr>
	atom   := /[^\s()\[\]{}']+/

Any closing delimiter closes a list, whichever delimiter opened it.  A
quoted expression 'x is read as (quote x).
*/
package parser

import (
	"strings"

	"github.com/radicle-lang/radicle/lisp"
	"github.com/radicle-lang/radicle/parser/rdparser"
	"github.com/radicle-lang/radicle/parser/token"
)

// NewReader returns a new lisp.Reader.
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}

// Read parses every expression in text.
func Read(text string) ([]*lisp.Expr, error) {
	return NewReader().Read("<input>", strings.NewReader(text))
}

// ReadExpr parses text as a single expression.  It is an error for text to
// contain anything following the expression.
func ReadExpr(text string) (*lisp.Expr, error) {
	s := token.NewScanner("<input>", strings.NewReader(text))
	return rdparser.New(s).ParseSingle()
}
