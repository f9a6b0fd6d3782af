package fragment

import (
	"fmt"

	"github.com/mspec-go/mspec/token"
)

// The host grammar: a small Rust-flavored recursive descent over token
// trees. It exists to answer one question per fragment kind — how far
// does the next fragment extend — so it parses shapes, not meaning.

func errAt(cur *token.Cursor, format string, args ...interface{}) error {
	return fmt.Errorf("%s at %s", fmt.Sprintf(format, args...), cur.Pos())
}

func nextLeaf(cur *token.Cursor) (*token.Token, error) {
	t := cur.Next()
	if t == nil {
		return nil, errAt(cur, "unexpected end of input")
	}
	if t.Token == nil {
		return nil, errAt(cur, "unexpected `%s`", t.Group.Delim.Open())
	}
	return t.Token, nil
}

func peekPunct(cur *token.Cursor, text string) bool {
	t := cur.Peek()
	return t != nil && t.Token != nil && t.Token.Kind == token.Punct && t.Token.Text == text
}

func eatPunct(cur *token.Cursor, text string) bool {
	if peekPunct(cur, text) {
		cur.Next()
		return true
	}
	return false
}

func peekIdent(cur *token.Cursor, text string) bool {
	t := cur.Peek()
	return t != nil && t.Token != nil && t.Token.Kind == token.Ident && t.Token.Text == text
}

func eatIdent(cur *token.Cursor, text string) bool {
	if peekIdent(cur, text) {
		cur.Next()
		return true
	}
	return false
}

func eatGroup(cur *token.Cursor, delim token.Delim) bool {
	t := cur.Peek()
	if t != nil && t.Group != nil && t.Group.Delim == delim {
		cur.Next()
		return true
	}
	return false
}

func expectGroup(cur *token.Cursor, delim token.Delim, what string) error {
	if !eatGroup(cur, delim) {
		return errAt(cur, "expected %s", what)
	}
	return nil
}

// - Single-token and single-tree kinds -

func parseIdent(cur *token.Cursor) error {
	t, err := nextLeaf(cur)
	if err != nil {
		return err
	}
	if t.Kind != token.Ident {
		return fmt.Errorf("expected identifier, found `%s` at %s", t.Text, t.Pos)
	}
	return nil
}

func parseLftm(cur *token.Cursor) error {
	t, err := nextLeaf(cur)
	if err != nil {
		return err
	}
	if t.Kind != token.Lifetime {
		return fmt.Errorf("expected lifetime, found `%s` at %s", t.Text, t.Pos)
	}
	return nil
}

func parseLit(cur *token.Cursor) error {
	t, err := nextLeaf(cur)
	if err != nil {
		return err
	}
	switch t.Kind {
	case token.Number, token.String, token.Char:
		return nil
	}
	return fmt.Errorf("expected literal, found `%s` at %s", t.Text, t.Pos)
}

var binOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"^": true, "&": true, "|": true, "<<": true, ">>": true,
}

func parseBinOp(cur *token.Cursor) error {
	t, err := nextLeaf(cur)
	if err != nil {
		return err
	}
	if t.Kind != token.Punct || !binOps[t.Text] {
		return fmt.Errorf("expected binary operator, found `%s` at %s", t.Text, t.Pos)
	}
	return nil
}

func parseTok(cur *token.Cursor) error {
	_, err := nextLeaf(cur)
	return err
}

func parseTt(cur *token.Cursor) error {
	if cur.Next() == nil {
		return errAt(cur, "unexpected end of input")
	}
	return nil
}

func parseDelim(cur *token.Cursor) error {
	t := cur.Next()
	if t == nil {
		return errAt(cur, "unexpected end of input")
	}
	if t.Group == nil {
		return fmt.Errorf("expected delimited token sequence, found `%s` at %s", t.Token.Text, t.Token.Pos)
	}
	return nil
}

func parseBlock(cur *token.Cursor) error {
	return expectGroup(cur, token.Brace, "block")
}

// - Compound kinds -

// path := `::`? ident (`::` ident)*
func parsePath(cur *token.Cursor) error {
	eatPunct(cur, "::")
	if err := parseIdent(cur); err != nil {
		return err
	}
	for eatPunct(cur, "::") {
		if err := parseIdent(cur); err != nil {
			return err
		}
	}
	return nil
}

// attr := `#` `[` ... `]`
func parseAttr(cur *token.Cursor) error {
	if !eatPunct(cur, "#") {
		return errAt(cur, "expected `#`")
	}
	return expectGroup(cur, token.Bracket, "`[`")
}

// meta := path (paren group | `=` lit)?
func parseMeta(cur *token.Cursor) error {
	if err := parsePath(cur); err != nil {
		return err
	}
	if eatGroup(cur, token.Paren) {
		return nil
	}
	if eatPunct(cur, "=") {
		return parseLit(cur)
	}
	return nil
}

// generics consumes an angle-bracketed argument list. `<` and `>` are
// ordinary punctuation, so balance is tracked by hand; `>>` closes two
// levels.
func generics(cur *token.Cursor) error {
	if !eatPunct(cur, "<") {
		return nil
	}
	depth := 1
	for depth > 0 {
		t := cur.Next()
		if t == nil {
			return errAt(cur, "unclosed `<`")
		}
		if t.Token == nil || t.Token.Kind != token.Punct {
			continue
		}
		switch t.Token.Text {
		case "<":
			depth++
		case ">":
			depth--
		case ">>":
			depth -= 2
		}
	}
	if depth < 0 {
		return errAt(cur, "unbalanced `>`")
	}
	return nil
}

// ty := `&`* lifetime? `mut`? (paren group | bracket group | path generics?)
func parseTy(cur *token.Cursor) error {
	for eatPunct(cur, "&") || eatPunct(cur, "&&") {
		t := cur.Peek()
		if t != nil && t.Token != nil && t.Token.Kind == token.Lifetime {
			cur.Next()
		}
		eatIdent(cur, "mut")
	}
	if eatGroup(cur, token.Paren) || eatGroup(cur, token.Bracket) {
		return nil
	}
	if err := parsePath(cur); err != nil {
		return err
	}
	return generics(cur)
}

// pat := `&`* `mut`? (lit | `-` lit | path (paren group | brace group)? )
func parsePat(cur *token.Cursor) error {
	for eatPunct(cur, "&") || eatPunct(cur, "&&") {
		eatIdent(cur, "mut")
	}
	eatIdent(cur, "mut")
	if eatGroup(cur, token.Paren) {
		return nil
	}
	if eatPunct(cur, "-") {
		return parseLit(cur)
	}
	t := cur.Peek()
	if t != nil && t.Token != nil {
		switch t.Token.Kind {
		case token.Number, token.String, token.Char:
			cur.Next()
			return nil
		}
	}
	if err := parsePath(cur); err != nil {
		return err
	}
	if eatGroup(cur, token.Paren) {
		return nil
	}
	eatGroup(cur, token.Brace)
	return nil
}

var unaryOps = map[string]bool{"-": true, "!": true, "*": true, "&": true, "&&": true}

// Binary operators that continue an expression. Precedence is irrelevant
// here: only the extent of the expression matters.
var exprBinOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "^": true,
	"&": true, "|": true, "<<": true, ">>": true, "&&": true, "||": true,
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
	"..": true, "..=": true, "=": true,
}

func parseExpr(cur *token.Cursor) error {
	if err := parseUnaryExpr(cur); err != nil {
		return err
	}
	for {
		t := cur.Peek()
		if t == nil || t.Token == nil || t.Token.Kind != token.Punct || !exprBinOps[t.Token.Text] {
			return nil
		}
		cur.Next()
		if err := parseUnaryExpr(cur); err != nil {
			return err
		}
	}
}

func parseUnaryExpr(cur *token.Cursor) error {
	for {
		t := cur.Peek()
		if t == nil || t.Token == nil || t.Token.Kind != token.Punct || !unaryOps[t.Token.Text] {
			break
		}
		cur.Next()
		eatIdent(cur, "mut")
	}
	if err := parsePrimaryExpr(cur); err != nil {
		return err
	}
	return parsePostfix(cur)
}

func parsePrimaryExpr(cur *token.Cursor) error {
	t := cur.Peek()
	if t == nil {
		return errAt(cur, "expected expression")
	}
	if t.Group != nil {
		cur.Next()
		return nil
	}
	switch t.Token.Kind {
	case token.Number, token.String, token.Char:
		cur.Next()
		return nil
	case token.Ident:
		if peekIdent(cur, "if") {
			return parseIfExpr(cur)
		}
		if err := parsePath(cur); err != nil {
			return err
		}
		// Macro invocation: path `!` group.
		if eatPunct(cur, "!") {
			t := cur.Next()
			if t == nil || t.Group == nil {
				return errAt(cur, "expected delimiters after `!`")
			}
		}
		return nil
	}
	return fmt.Errorf("expected expression, found `%s` at %s", t.Token.Text, t.Token.Pos)
}

func parseIfExpr(cur *token.Cursor) error {
	cur.Next() // `if`
	if err := parseExpr(cur); err != nil {
		return err
	}
	if err := expectGroup(cur, token.Brace, "block"); err != nil {
		return err
	}
	if eatIdent(cur, "else") {
		if peekIdent(cur, "if") {
			return parseIfExpr(cur)
		}
		return expectGroup(cur, token.Brace, "block")
	}
	return nil
}

func parsePostfix(cur *token.Cursor) error {
	for {
		switch {
		case eatPunct(cur, "."):
			t, err := nextLeaf(cur)
			if err != nil {
				return err
			}
			if t.Kind != token.Ident && t.Kind != token.Number {
				return fmt.Errorf("expected field or method, found `%s` at %s", t.Text, t.Pos)
			}
			eatGroup(cur, token.Paren)
		case eatPunct(cur, "?"):
		case eatGroup(cur, token.Paren):
		case eatGroup(cur, token.Bracket):
		default:
			return nil
		}
	}
}

// stmt := `let` pat (`:` ty)? (`=` expr)? | expr
// The statement does not include a trailing `;`.
func parseStmt(cur *token.Cursor) error {
	if !eatIdent(cur, "let") {
		return parseExpr(cur)
	}
	if err := parsePat(cur); err != nil {
		return err
	}
	if eatPunct(cur, ":") {
		if err := parseTy(cur); err != nil {
			return err
		}
	}
	if eatPunct(cur, "=") {
		return parseExpr(cur)
	}
	return nil
}

// item := attr* `pub`? (fn | struct | enum | mod | use | const | static | type)
func parseItem(cur *token.Cursor) error {
	for peekPunct(cur, "#") {
		if err := parseAttr(cur); err != nil {
			return err
		}
	}
	eatIdent(cur, "pub")
	t := cur.Peek()
	if t == nil || t.Token == nil || t.Token.Kind != token.Ident {
		return errAt(cur, "expected item")
	}
	switch t.Token.Text {
	case "fn":
		return parseFnItem(cur)
	case "struct":
		return parseStructItem(cur)
	case "enum":
		cur.Next()
		if err := parseIdent(cur); err != nil {
			return err
		}
		if err := generics(cur); err != nil {
			return err
		}
		return expectGroup(cur, token.Brace, "enum body")
	case "mod":
		cur.Next()
		if err := parseIdent(cur); err != nil {
			return err
		}
		return expectGroup(cur, token.Brace, "module body")
	case "use":
		cur.Next()
		if err := parsePath(cur); err != nil {
			return err
		}
		if !eatPunct(cur, ";") {
			return errAt(cur, "expected `;`")
		}
		return nil
	case "const", "static":
		cur.Next()
		if err := parseIdent(cur); err != nil {
			return err
		}
		if !eatPunct(cur, ":") {
			return errAt(cur, "expected `:`")
		}
		if err := parseTy(cur); err != nil {
			return err
		}
		if !eatPunct(cur, "=") {
			return errAt(cur, "expected `=`")
		}
		if err := parseExpr(cur); err != nil {
			return err
		}
		if !eatPunct(cur, ";") {
			return errAt(cur, "expected `;`")
		}
		return nil
	case "type":
		cur.Next()
		if err := parseIdent(cur); err != nil {
			return err
		}
		if err := generics(cur); err != nil {
			return err
		}
		if !eatPunct(cur, "=") {
			return errAt(cur, "expected `=`")
		}
		if err := parseTy(cur); err != nil {
			return err
		}
		if !eatPunct(cur, ";") {
			return errAt(cur, "expected `;`")
		}
		return nil
	}
	return fmt.Errorf("expected item, found `%s` at %s", t.Token.Text, t.Token.Pos)
}

func parseFnItem(cur *token.Cursor) error {
	cur.Next() // `fn`
	if err := parseIdent(cur); err != nil {
		return err
	}
	if err := generics(cur); err != nil {
		return err
	}
	if err := expectGroup(cur, token.Paren, "parameter list"); err != nil {
		return err
	}
	if eatPunct(cur, "->") {
		if err := parseTy(cur); err != nil {
			return err
		}
	}
	return expectGroup(cur, token.Brace, "function body")
}

func parseStructItem(cur *token.Cursor) error {
	cur.Next() // `struct`
	if err := parseIdent(cur); err != nil {
		return err
	}
	if err := generics(cur); err != nil {
		return err
	}
	if eatGroup(cur, token.Brace) {
		return nil
	}
	eatGroup(cur, token.Paren)
	if !eatPunct(cur, ";") {
		return errAt(cur, "expected `;`")
	}
	return nil
}
