package token

import "fmt"

// Token is a lexical token together with its location in the source.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	if tok.Type == ATOM || tok.Type == ERROR {
		return fmt.Sprintf("%s %q", tok.Type, tok.Text)
	}
	return tok.Type.String()
}

// Type is the type of a Token.
type Type uint

// Type constants used by the lexer and parser.
const (
	INVALID Type = iota
	ERROR
	EOF

	ATOM

	QUOTE

	// Delimiters.  Opening and closing delimiters are interchangeable, a list
	// opened with '(' may be closed with ']' or '}'.
	PAREN_L
	PAREN_R
	BRACKET_L
	BRACKET_R
	BRACE_L
	BRACE_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID:   "invalid",
		ERROR:     "error",
		EOF:       "EOF",
		ATOM:      "atom",
		QUOTE:     "'",
		PAREN_L:   "(",
		PAREN_R:   ")",
		BRACKET_L: "[",
		BRACKET_R: "]",
		BRACE_L:   "{",
		BRACE_R:   "}",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// IsOpen returns true if typ opens a list.
func (typ Type) IsOpen() bool {
	return typ == PAREN_L || typ == BRACKET_L || typ == BRACE_L
}

// IsClose returns true if typ closes a list.
func (typ Type) IsClose() bool {
	return typ == PAREN_R || typ == BRACKET_R || typ == BRACE_R
}

// Location is a position in a source file.
type Location struct {
	File string
	Pos  int // byte offset
	Line int // line number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	if loc == nil {
		return "<unknown>"
	}
	if loc.Line == 0 {
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	}
	return fmt.Sprintf("%s:%d", loc.File, loc.Line)
}
