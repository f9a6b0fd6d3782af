package token

import (
	"fmt"
	"unicode"
)

// ScanError reports a malformed input at a source position.
type ScanError struct {
	Pos     Pos
	Message string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// Multi-rune punctuation, longest match first.
var puncts3 = map[string]bool{"<<=": true, ">>=": true, "...": true, "..=": true}

var puncts2 = map[string]bool{
	"::": true, "->": true, "=>": true, "==": true, "!=": true,
	"<=": true, ">=": true, "&&": true, "||": true, "<<": true,
	">>": true, "+=": true, "-=": true, "*=": true, "/=": true,
	"%=": true, "^=": true, "&=": true, "|=": true, "..": true,
}

var puncts1 = map[rune]bool{
	'+': true, '-': true, '*': true, '/': true, '%': true, '^': true,
	'!': true, '&': true, '|': true, '=': true, '<': true, '>': true,
	'@': true, '#': true, '$': true, '?': true, ',': true, ';': true,
	':': true, '.': true, '~': true,
}

var openDelims = map[rune]Delim{'(': Paren, '[': Bracket, '{': Brace}
var closeDelims = map[rune]Delim{')': Paren, ']': Bracket, '}': Brace}

type scanner struct {
	src  []rune
	next int
	pos  Pos
}

// Scan tokenizes src into a delimiter-balanced tree sequence.
func Scan(src string) ([]Tree, error) {
	s := &scanner{src: []rune(src), pos: Pos{Line: 1, Col: 1}}

	type frame struct {
		delim Delim
		pos   Pos
		trees []Tree
	}
	stack := []frame{{}}

	for {
		s.skipSpace()
		if s.eof() {
			break
		}
		pos := s.pos
		r := s.peek()

		if d, ok := openDelims[r]; ok {
			s.advance()
			stack = append(stack, frame{delim: d, pos: pos})
			continue
		}
		if d, ok := closeDelims[r]; ok {
			if len(stack) == 1 {
				return nil, &ScanError{pos, fmt.Sprintf("unexpected `%s`", d.Close())}
			}
			top := stack[len(stack)-1]
			if top.delim != d {
				return nil, &ScanError{pos, fmt.Sprintf("expected `%s`, found `%s`", top.delim.Close(), d.Close())}
			}
			s.advance()
			stack = stack[:len(stack)-1]
			group := &Group{Delim: top.delim, Trees: top.trees, Pos: top.pos}
			stack[len(stack)-1].trees = append(stack[len(stack)-1].trees, Tree{Group: group})
			continue
		}

		tok, err := s.token()
		if err != nil {
			return nil, err
		}
		stack[len(stack)-1].trees = append(stack[len(stack)-1].trees, Tree{Token: tok})
	}

	if len(stack) > 1 {
		top := stack[len(stack)-1]
		return nil, &ScanError{top.pos, fmt.Sprintf("unclosed `%s`", top.delim.Open())}
	}
	return stack[0].trees, nil
}

func (s *scanner) eof() bool {
	return s.next >= len(s.src)
}

func (s *scanner) peek() rune {
	return s.src[s.next]
}

func (s *scanner) peekAt(offset int) (rune, bool) {
	if s.next+offset >= len(s.src) {
		return 0, false
	}
	return s.src[s.next+offset], true
}

func (s *scanner) advance() rune {
	r := s.src[s.next]
	s.next++
	if r == '\n' {
		s.pos.Line++
		s.pos.Col = 1
	} else {
		s.pos.Col++
	}
	return r
}

func (s *scanner) skipSpace() {
	for !s.eof() && unicode.IsSpace(s.peek()) {
		s.advance()
	}
}

func (s *scanner) token() (*Token, error) {
	pos := s.pos
	r := s.peek()
	switch {
	case isIdentStart(r):
		return &Token{Kind: Ident, Text: s.identText(), Pos: pos}, nil
	case unicode.IsDigit(r):
		return &Token{Kind: Number, Text: s.numberText(), Pos: pos}, nil
	case r == '"':
		text, err := s.stringText()
		if err != nil {
			return nil, err
		}
		return &Token{Kind: String, Text: text, Pos: pos}, nil
	case r == '\'':
		return s.quoted(pos)
	}

	if text, ok := s.punctText(); ok {
		return &Token{Kind: Punct, Text: text, Pos: pos}, nil
	}
	return nil, &ScanError{pos, fmt.Sprintf("unexpected character `%c`", r)}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (s *scanner) identText() string {
	start := s.next
	for !s.eof() && isIdentPart(s.peek()) {
		s.advance()
	}
	return string(s.src[start:s.next])
}

func (s *scanner) numberText() string {
	start := s.next
	s.advance()
	if !s.eof() && (s.peek() == 'x' || s.peek() == 'b' || s.peek() == 'o') && s.src[start] == '0' {
		s.advance()
	}
	for !s.eof() {
		r := s.peek()
		if isIdentPart(r) {
			s.advance()
			continue
		}
		if r == '.' {
			// Only part of the number when a digit follows; `1..2` is a
			// number and a range operator.
			if d, ok := s.peekAt(1); ok && unicode.IsDigit(d) {
				s.advance()
				continue
			}
		}
		break
	}
	return string(s.src[start:s.next])
}

func (s *scanner) stringText() (string, error) {
	pos := s.pos
	start := s.next
	s.advance()
	for !s.eof() {
		r := s.advance()
		if r == '\\' && !s.eof() {
			s.advance()
			continue
		}
		if r == '"' && s.next > start+1 {
			return string(s.src[start:s.next]), nil
		}
	}
	return "", &ScanError{pos, "unterminated string literal"}
}

// quoted scans either a char literal (`'a'`, `'\n'`) or a lifetime (`'a`).
func (s *scanner) quoted(pos Pos) (*Token, error) {
	start := s.next
	s.advance()
	if s.eof() {
		return nil, &ScanError{pos, "unterminated char literal"}
	}
	if s.peek() == '\\' {
		s.advance()
		if !s.eof() {
			s.advance()
		}
		if s.eof() || s.peek() != '\'' {
			return nil, &ScanError{pos, "unterminated char literal"}
		}
		s.advance()
		return &Token{Kind: Char, Text: string(s.src[start:s.next]), Pos: pos}, nil
	}
	if isIdentStart(s.peek()) {
		if q, ok := s.peekAt(1); ok && q == '\'' {
			s.advance()
			s.advance()
			return &Token{Kind: Char, Text: string(s.src[start:s.next]), Pos: pos}, nil
		}
		for !s.eof() && isIdentPart(s.peek()) {
			s.advance()
		}
		return &Token{Kind: Lifetime, Text: string(s.src[start:s.next]), Pos: pos}, nil
	}
	r := s.advance()
	if s.eof() || s.peek() != '\'' {
		return nil, &ScanError{pos, fmt.Sprintf("unterminated char literal `%c`", r)}
	}
	s.advance()
	return &Token{Kind: Char, Text: string(s.src[start:s.next]), Pos: pos}, nil
}

func (s *scanner) punctText() (string, bool) {
	if a, ok := s.peekAt(0); ok {
		if b, ok := s.peekAt(1); ok {
			if c, ok := s.peekAt(2); ok && puncts3[string([]rune{a, b, c})] {
				s.advance()
				s.advance()
				s.advance()
				return string([]rune{a, b, c}), true
			}
			if puncts2[string([]rune{a, b})] {
				s.advance()
				s.advance()
				return string([]rune{a, b}), true
			}
		}
		if puncts1[a] {
			s.advance()
			return string(a), true
		}
	}
	return "", false
}
