package lexer

import (
	"io"
	"unicode"

	"github.com/radicle-lang/radicle/parser/token"
)

// Lexer splits a rune stream into tokens.  Atoms are maximal runs of runes
// that are not whitespace, list delimiters, or the quote character.
type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune

	// readErr is the first error returned by the scanner.  Once set every
	// call to NextToken returns a token reflecting it.
	readErr error
}

// New returns a Lexer that reads runes from s.
func New(s *token.Scanner) *Lexer {
	lex := &Lexer{
		scanner: s,
	}
	return lex
}

// NextToken returns the next token in the stream.  At the end of the stream
// NextToken returns EOF tokens indefinitely.
func (lex *Lexer) NextToken() *token.Token {
	if lex.readErr != nil {
		return lex.emitError(lex.readErr)
	}
	lex.readErr = lex.skipWhitespace()
	if lex.readErr != nil {
		return lex.emitError(lex.readErr)
	}
	if lex.readChar() != nil {
		return lex.emitError(lex.readErr)
	}
	switch lex.ch {
	case '(':
		return lex.charToken(token.PAREN_L)
	case ')':
		return lex.charToken(token.PAREN_R)
	case '[':
		return lex.charToken(token.BRACKET_L)
	case ']':
		return lex.charToken(token.BRACKET_R)
	case '{':
		return lex.charToken(token.BRACE_L)
	case '}':
		return lex.charToken(token.BRACE_R)
	case '\'':
		return lex.charToken(token.QUOTE)
	default:
		err := lex.readAtom()
		if err != nil && err != io.EOF {
			lex.readErr = err
			return lex.emitError(err)
		}
		return lex.scanner.EmitToken(token.ATOM)
	}
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitError(err error) *token.Token {
	if err == io.EOF {
		return lex.emit(token.EOF, "")
	}
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) charToken(typ token.Type) *token.Token {
	return lex.scanner.EmitToken(typ)
}

func (lex *Lexer) readAtom() error {
	for {
		c, ok := lex.scanner.Peek()
		if !ok {
			// Let the next call to NextToken report the cause.
			return nil
		}
		if !isAtomRune(c) {
			return nil
		}
		err := lex.readChar()
		if err != nil {
			return err
		}
	}
}

func (lex *Lexer) skipWhitespace() error {
	for {
		c, ok := lex.scanner.Peek()
		if !ok || !unicode.IsSpace(c) {
			break
		}
		err := lex.readChar()
		if err != nil {
			return err
		}
	}
	lex.scanner.Ignore()
	return nil
}

func (lex *Lexer) readChar() error {
	lex.readErr = lex.scanner.ScanRune()
	if lex.readErr != nil {
		return lex.readErr
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

func isAtomRune(c rune) bool {
	if unicode.IsSpace(c) {
		return false
	}
	switch c {
	case '(', ')', '[', ']', '{', '}', '\'':
		return false
	}
	return true
}
