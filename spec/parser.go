package spec

import (
	"fmt"

	"github.com/mspec-go/mspec/fragment"
	"github.com/mspec-go/mspec/token"
)

// ParseError describes a malformed specification.
type ParseError struct {
	Pos     token.Pos
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

func errorAt(pos token.Pos, format string, args ...interface{}) *ParseError {
	return &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Parse builds the specifier tree for a specification text.
func Parse(src string) (Specification, error) {
	trees, err := token.Scan(src)
	if err != nil {
		se := err.(*token.ScanError)
		return nil, &ParseError{Pos: se.Pos, Message: se.Message}
	}
	p := &parser{names: map[string]bool{}}
	s, perr := p.specification(trees)
	if perr != nil {
		return nil, perr
	}
	return s, nil
}

// parser tracks the names bound in the current scope. The top-level
// specification is one scope; each enum variant body is another, since
// variants populate their own sub-store.
type parser struct {
	names map[string]bool
}

func (p *parser) specification(trees []token.Tree) (Specification, *ParseError) {
	cur := token.NewCursor(trees)
	var s Specification
	for !cur.Done() {
		t := cur.Next()
		switch {
		case t.Token != nil && t.Token.Kind == token.Punct && t.Token.Text == "$":
			item, err := p.dollar(cur)
			if err != nil {
				return nil, err
			}
			s = append(s, item)
		case t.Token != nil:
			s = append(s, Specific{Tok: *t.Token})
		default:
			inner, err := p.specification(t.Group.Trees)
			if err != nil {
				return nil, err
			}
			s = append(s, Delimited{Delim: t.Group.Delim, Inner: inner})
		}
	}
	return s, nil
}

// dollar parses what follows a `$`: a named specifier (`$a:expr`), a
// named sequence (`$a:(A)*`), an inline enum (`$a:{V(...), ...}`) or an
// unnamed sequence (`$(...)+`).
func (p *parser) dollar(cur *token.Cursor) (Specifier, *ParseError) {
	t := cur.Next()
	if t == nil {
		return nil, errorAt(cur.Pos(), "unexpected end of specification")
	}
	if t.Group != nil {
		if t.Group.Delim != token.Paren {
			return nil, errorAt(t.Group.Pos, "expected named specifier or sequence")
		}
		inner, err := p.specification(t.Group.Trees)
		if err != nil {
			return nil, err
		}
		amount, sep, err := sequenceSuffix(cur)
		if err != nil {
			return nil, err
		}
		return Sequence{Amount: amount, Sep: sep, Inner: inner}, nil
	}
	if t.Token.Kind != token.Ident {
		return nil, errorAt(t.Token.Pos, "expected named specifier or sequence")
	}
	name := t.Token.Text
	if p.names[name] {
		return nil, errorAt(t.Token.Pos, "duplicate named specifier '%s'", name)
	}
	p.names[name] = true
	return p.named(cur, name)
}

func (p *parser) named(cur *token.Cursor, name string) (Specifier, *ParseError) {
	colon := cur.Next()
	if colon == nil {
		return nil, errorAt(cur.Pos(), "unexpected end of specification")
	}
	if colon.Token == nil || colon.Token.Kind != token.Punct || colon.Token.Text != ":" {
		return nil, errorAt(colon.Pos(), "expected `:`")
	}
	t := cur.Next()
	if t == nil {
		return nil, errorAt(cur.Pos(), "unexpected end of specification")
	}
	if t.Group != nil {
		switch t.Group.Delim {
		case token.Paren:
			inner, err := p.specification(t.Group.Trees)
			if err != nil {
				return nil, err
			}
			amount, sep, err := sequenceSuffix(cur)
			if err != nil {
				return nil, err
			}
			return Sequence{Name: name, Amount: amount, Sep: sep, Inner: inner}, nil
		case token.Brace:
			return p.enum(name, t.Group)
		}
		return nil, errorAt(t.Group.Pos, "expected named specifier type or sequence")
	}
	if t.Token.Kind != token.Ident {
		return nil, errorAt(t.Token.Pos, "expected named specifier type or sequence")
	}
	kind, ok := fragment.Named(t.Token.Text)
	if !ok {
		return nil, errorAt(t.Token.Pos, "invalid named specifier type '%s'", t.Token.Text)
	}
	return Named{Kind: kind, Name: name}, nil
}

// sequenceSuffix parses the tail of a sequence: `?`, `*`, `+`, or a
// single separator token followed by `*` or `+`.
func sequenceSuffix(cur *token.Cursor) (Amount, *token.Token, *ParseError) {
	t := cur.Next()
	if t == nil {
		return 0, nil, errorAt(cur.Pos(), "expected separator, `*`, or `+`")
	}
	if t.Token == nil {
		return 0, nil, errorAt(t.Group.Pos, "expected separator, `*`, or `+`")
	}
	switch t.Token.Text {
	case "+":
		return OneOrMore, nil, nil
	case "*":
		return ZeroOrMore, nil, nil
	case "?":
		return ZeroOrOne, nil, nil
	}
	sep := *t.Token
	q := cur.Next()
	if q == nil || q.Token == nil {
		return 0, nil, errorAt(sep.Pos, "expected `*` or `+`")
	}
	switch q.Token.Text {
	case "+":
		return OneOrMore, &sep, nil
	case "*":
		return ZeroOrMore, &sep, nil
	}
	return 0, nil, errorAt(sep.Pos, "expected `*` or `+`")
}

// enum parses an inline enum body: `Variant(spec), Variant(spec)`.
func (p *parser) enum(name string, group *token.Group) (Specifier, *ParseError) {
	cur := token.NewCursor(group.Trees)
	var variants []Variant
	seen := map[string]bool{}
	for {
		t := cur.Next()
		if t == nil {
			return nil, errorAt(cur.Pos(), "expected enum variant")
		}
		if t.Token == nil || t.Token.Kind != token.Ident {
			return nil, errorAt(t.Pos(), "expected enum variant name")
		}
		vname := t.Token.Text
		if seen[vname] {
			return nil, errorAt(t.Token.Pos, "duplicate enum variant '%s'", vname)
		}
		seen[vname] = true
		b := cur.Next()
		if b == nil || b.Group == nil || b.Group.Delim != token.Paren {
			return nil, errorAt(cur.Pos(), "expected `(` after enum variant name")
		}
		sub := &parser{names: map[string]bool{}}
		body, err := sub.specification(b.Group.Trees)
		if err != nil {
			return nil, err
		}
		variants = append(variants, Variant{Name: vname, Body: body})

		sep := cur.Next()
		if sep == nil {
			break
		}
		if sep.Token == nil || sep.Token.Kind != token.Punct || sep.Token.Text != "," {
			return nil, errorAt(sep.Pos(), "expected `,` between enum variants")
		}
	}
	return Enum{Name: name, Variants: variants}, nil
}
