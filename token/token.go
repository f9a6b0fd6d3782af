package token

import (
	"fmt"
	"strings"
)

// Kind classifies a leaf token.
type Kind int

const (
	Ident Kind = iota
	Lifetime
	Number
	String
	Char
	Punct
)

var kindNames = [...]string{"identifier", "lifetime", "number", "string", "char", "punctuation"}

func (k Kind) String() string {
	return kindNames[k]
}

// Pos is a 1-based line/column position in the scanned source.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d col %d", p.Line, p.Col)
}

// Token is a single atomic token.
type Token struct {
	Kind Kind
	Text string
	Pos  Pos
}

// Eq reports whether two tokens are interchangeable for literal matching:
// same kind and same text. Positions are ignored.
func (t Token) Eq(o Token) bool {
	return t.Kind == o.Kind && t.Text == o.Text
}

func (t Token) String() string {
	return t.Text
}

// Delim identifies a delimiter pair.
type Delim int

const (
	Paren Delim = iota
	Bracket
	Brace
)

var opens = [...]string{"(", "[", "{"}
var closes = [...]string{")", "]", "}"}

func (d Delim) Open() string  { return opens[d] }
func (d Delim) Close() string { return closes[d] }

// Group is a delimited sequence of token trees.
type Group struct {
	Delim Delim
	Trees []Tree
	Pos   Pos // position of the opening delimiter
}

// Tree is one node of a token stream: a leaf token or a delimited group.
// Exactly one field is set.
type Tree struct {
	Token *Token
	Group *Group
}

func (t Tree) Pos() Pos {
	if t.Token != nil {
		return t.Token.Pos
	}
	return t.Group.Pos
}

func (t Tree) String() string {
	if t.Token != nil {
		return t.Token.Text
	}
	inner := Render(t.Group.Trees)
	if inner == "" {
		return t.Group.Delim.Open() + t.Group.Delim.Close()
	}
	return t.Group.Delim.Open() + inner + t.Group.Delim.Close()
}

// Render joins a tree sequence back into display text, space-separated.
func Render(trees []Tree) string {
	parts := make([]string, len(trees))
	for i, t := range trees {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
