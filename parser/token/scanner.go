package token

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from a byte stream (io.Reader).
type Scanner struct {
	file      string
	totalPos  int // byte offset of the rune following c
	line      int // line number at totalPos
	startPos  int // byte offset of the start of the current token
	startLine int

	r       *bufio.Reader
	readErr error

	text strings.Builder
	c    Rune
	peek *Rune
}

// NewScanner initializes and returns a new Scanner.
func NewScanner(file string, r io.Reader) *Scanner {
	return &Scanner{
		file:      file,
		r:         bufio.NewReader(r),
		line:      1,
		startLine: 1,
	}
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.text.Reset()
	s.startPos = s.totalPos
	s.startLine = s.line
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return s.text.String()
}

// Rune returns the current unicode rune that is being scanned.  The rune
// returned by Rune is the last rune in a token returned by EmitToken.
func (s *Scanner) Rune() rune {
	return s.c.C
}

// Peek returns the next rune to be scanned, if there are any.  If an invalid
// utf-8 sequence or EOF prevents futher runes from being scanned Peek returns
// a false second value.  If Peek returns a false value the next call to
// s.ScanRune will return an error that reflects of the cause.
func (s *Scanner) Peek() (rune, bool) {
	if s.peek == nil {
		r, err := s.read()
		if err != nil {
			s.readErr = err
			return 0, false
		}
		s.peek = &r
	}
	if s.peek.IsRuneError() {
		return utf8.RuneError, false
	}
	return s.peek.C, true
}

// ScanRune attempts to scan a utf-8 rune from the input for inclusion in the
// current token.  If an error prevents a valid unicode rune from being scanned
// then an error will be returned.
func (s *Scanner) ScanRune() error {
	var r Rune
	if s.peek != nil {
		r = *s.peek
		s.peek = nil
	} else {
		if s.readErr != nil {
			return s.readErr
		}
		var err error
		r, err = s.read()
		if err != nil {
			s.readErr = err
			return err
		}
	}
	if r.IsRuneError() {
		return fmt.Errorf("%s: invalid utf-8 sequence in source text", s.Loc())
	}
	s.scan(r)
	return nil
}

func (s *Scanner) read() (Rune, error) {
	c, n, err := s.r.ReadRune()
	if err != nil {
		return Rune{}, err
	}
	return Rune{c, n}, nil
}

func (s *Scanner) scan(r Rune) {
	s.c = r
	s.totalPos += r.N
	if r.C == '\n' {
		s.line++
	}
	s.text.WriteRune(r.C)
}

// LocStart returns a Location referencing the beginning of the current token,
// just beyond the end of the previous token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Line: s.startLine,
		Pos:  s.startPos,
	}
}

// Loc returns a Location referencing the current scanner position, the last
// position of the current token.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Line: s.line,
		Pos:  s.totalPos,
	}
}

// Rune contains a rune that read by Scanner during peeking operations.
type Rune struct {
	C rune
	N int
}

// IsRuneError returns true if Rune represents an invalid utf-8 sequence read
// by utf8.DecodeRune.
func (r Rune) IsRuneError() bool {
	return r.C == utf8.RuneError && r.N == 1
}
