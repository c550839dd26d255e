package rdparser

import (
	"errors"
	"fmt"
	"io"

	"github.com/radicle-lang/radicle/lisp"
	"github.com/radicle-lang/radicle/parser/lexer"
	"github.com/radicle-lang/radicle/parser/token"
)

// Errors wrapped by ParseError.
var (
	ErrUnexpectedEOF  = errors.New("unexpected end of token stream")
	ErrUnmatchedClose = errors.New("unmatched closing delimiter")
	ErrTrailingTokens = errors.New("unexpected tokens after expression")
	ErrScan           = errors.New("scan error")
)

// ParseError is a syntax error located in the source text.
type ParseError struct {
	Source *token.Location
	Err    error
	Detail string
}

func (e *ParseError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg = e.Detail
	}
	return fmt.Sprintf("%v: %s", e.Source, msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type reader struct {
}

// NewReader returns a lisp.Reader that parses programs with a Parser.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader) ([]*lisp.Expr, error) {
	s := token.NewScanner(name, r)
	p := New(s)
	return p.ParseProgram()
}

// Parser is a recursive-descent parser for lisp expressions.
type Parser struct {
	lex  *lexer.Lexer
	curr *token.Token
	peek *token.Token
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	p := &Parser{
		lex: lexer.New(scanner),
	}
	p.initTokens()
	return p
}

func (p *Parser) initTokens() {
	// Setup the peek token so the parser is in the proper state when the first
	// parse function is called.
	p.ReadToken()
}

// ParseProgram parses expressions until the end of the token stream.
func (p *Parser) ParseProgram() ([]*lisp.Expr, error) {
	var exprs []*lisp.Expr
	for !p.expect(token.EOF) {
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseSingle parses exactly one expression and requires that it is followed
// by the end of the token stream.
func (p *Parser) ParseSingle() (*lisp.Expr, error) {
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if !p.expect(token.EOF) {
		p.ReadToken()
		return nil, p.errorf(ErrTrailingTokens, "unexpected %v after expression", p.Token())
	}
	return expr, nil
}

// ParseExpression parses one expression.  A quoted expression 'x is expanded
// to (quote x).
func (p *Parser) ParseExpression() (*lisp.Expr, error) {
	typ := p.PeekType()
	switch {
	case typ == token.ATOM:
		p.ReadToken()
		return lisp.Atom(p.Token().Text), nil
	case typ == token.QUOTE:
		return p.ParseQuote()
	case typ.IsOpen():
		return p.ParseList()
	case typ.IsClose():
		p.ReadToken()
		return nil, p.errorf(ErrUnmatchedClose, "unexpected '%s'", p.Token().Text)
	case typ == token.EOF:
		p.ReadToken()
		return nil, p.errorf(ErrUnexpectedEOF, "")
	default:
		p.ReadToken()
		return nil, p.errorf(ErrScan, "%s", p.Token().Text)
	}
}

// ParseQuote parses 'x as (quote x).
func (p *Parser) ParseQuote() (*lisp.Expr, error) {
	if !p.expect(token.QUOTE) {
		return nil, p.errorf(ErrScan, "invalid quote: %v", p.PeekType())
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return lisp.Quote(expr), nil
}

// ParseList parses a delimited list.  Any closing delimiter ends a list
// regardless of the delimiter which opened it.
func (p *Parser) ParseList() (*lisp.Expr, error) {
	if !p.PeekType().IsOpen() {
		return nil, p.errorf(ErrScan, "invalid list: %v", p.PeekType())
	}
	p.ReadToken()
	cells := []*lisp.Expr{}
	for {
		if p.expect(token.EOF) {
			return nil, p.errorf(ErrUnexpectedEOF, "")
		}
		if p.PeekType().IsClose() {
			p.ReadToken()
			break
		}
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		cells = append(cells, x)
	}
	return lisp.List(cells...), nil
}

// ReadToken advances the parser one token and returns the new current token.
func (p *Parser) ReadToken() *token.Token {
	p.curr = p.peek
	p.peek = p.lex.NextToken()
	return p.curr
}

// Token returns the current token.
func (p *Parser) Token() *token.Token {
	return p.curr
}

// Peek returns the next token.
func (p *Parser) Peek() *token.Token {
	return p.peek
}

// PeekType returns the type of the next token.
func (p *Parser) PeekType() token.Type {
	return p.peek.Type
}

func (p *Parser) expect(typ ...token.Type) bool {
	peekType := p.peek.Type
	for _, typ := range typ {
		if typ == peekType {
			p.ReadToken()
			return true
		}
	}
	return false
}

func (p *Parser) errorf(err error, format string, v ...interface{}) error {
	perr := &ParseError{Err: err}
	if p.curr != nil {
		perr.Source = p.curr.Source
	}
	if format != "" {
		perr.Detail = fmt.Sprintf(format, v...)
	}
	return perr
}
