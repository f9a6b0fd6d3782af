// Package spec defines the specifier tree and parses specification text
// into it. A specification describes the shape of the token sequence a
// macro expects; the match package walks the tree against actual input.
package spec

import (
	"github.com/mspec-go/mspec/fragment"
	"github.com/mspec-go/mspec/token"
)

// Amount says how many times a sequence may occur.
type Amount int

const (
	OneOrMore  Amount = iota // +
	ZeroOrMore               // *
	ZeroOrOne                // ?
)

func (a Amount) String() string {
	switch a {
	case OneOrMore:
		return "+"
	case ZeroOrMore:
		return "*"
	}
	return "?"
}

// Specifier is one grammar node. The concrete types are Named, Specific,
// Delimited, Sequence and Enum.
type Specifier interface {
	specifier()
}

// Named matches one fragment of the given kind and binds it under Name.
type Named struct {
	Kind fragment.Kind
	Name string
}

// Specific matches one exact token and binds nothing.
type Specific struct {
	Tok token.Token
}

// Delimited matches a group of the given delimiter kind whose contents
// match Inner completely.
type Delimited struct {
	Delim token.Delim
	Inner Specification
}

// Sequence matches Inner repeatedly, governed by Amount and an optional
// separator token. A named sequence additionally binds its repetition
// count (for `*`/`+`) or presence (for `?`) under Name; an unnamed
// sequence is transparent and only hoists its inner bindings.
type Sequence struct {
	Name   string
	Amount Amount
	Sep    *token.Token
	Inner  Specification
}

// Enum matches the first variant whose body parses completely, binding
// the variant index and its own sub-store under Name.
type Enum struct {
	Name     string
	Variants []Variant
}

// Variant is one labeled alternative of an Enum.
type Variant struct {
	Name string
	Body Specification
}

func (Named) specifier()     {}
func (Specific) specifier()  {}
func (Delimited) specifier() {}
func (Sequence) specifier()  {}
func (Enum) specifier()      {}

// Specification is an ordered sequence of specifiers. The tree is
// immutable after Parse and safe to share across concurrent matches.
type Specification []Specifier

// BoundNames returns every name the specification binds in its own
// store, in declaration order. Enum variant bodies bind into the enum's
// sub-store, so only the enum's own name is reported.
func (s Specification) BoundNames() []string {
	var names []string
	for _, item := range s {
		switch it := item.(type) {
		case Named:
			names = append(names, it.Name)
		case Delimited:
			names = append(names, it.Inner.BoundNames()...)
		case Sequence:
			names = append(names, it.Inner.BoundNames()...)
			if it.Name != "" {
				names = append(names, it.Name)
			}
		case Enum:
			names = append(names, it.Name)
		}
	}
	return names
}
