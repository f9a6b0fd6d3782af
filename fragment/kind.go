// Package fragment maps fragment-kind names to consumption rules over a
// token cursor. Each kind knows how to take exactly one fragment of its
// category off the front of the remaining input, or report that it cannot.
package fragment

import (
	"github.com/mspec-go/mspec/token"
)

// Kind is one of the fixed fragment-kind vocabulary.
type Kind int

const (
	Attr Kind = iota
	BinOp
	Block
	Delim
	Expr
	Ident
	Item
	Lftm
	Lit
	Meta
	Pat
	Path
	Stmt
	Ty
	Tok
	Tt
)

type classifier struct {
	keyword     string
	description string
	parse       func(*token.Cursor) error
}

var classifiers = [...]classifier{
	Attr:  {"attr", "attribute", parseAttr},
	BinOp: {"binop", "binary operator", parseBinOp},
	Block: {"block", "block", parseBlock},
	Delim: {"delim", "delimited token sequence", parseDelim},
	Expr:  {"expr", "expression", parseExpr},
	Ident: {"ident", "identifier", parseIdent},
	Item:  {"item", "item", parseItem},
	Lftm:  {"lftm", "lifetime", parseLftm},
	Lit:   {"lit", "literal", parseLit},
	Meta:  {"meta", "meta item", parseMeta},
	Pat:   {"pat", "pattern", parsePat},
	Path:  {"path", "path", parsePath},
	Stmt:  {"stmt", "statement", parseStmt},
	Ty:    {"ty", "type", parseTy},
	Tok:   {"tok", "token", parseTok},
	Tt:    {"tt", "token tree", parseTt},
}

var byKeyword = map[string]Kind{}

func init() {
	for k, c := range classifiers {
		byKeyword[c.keyword] = Kind(k)
	}
}

// Named returns the kind for a specification keyword such as "expr".
func Named(keyword string) (Kind, bool) {
	k, ok := byKeyword[keyword]
	return k, ok
}

// String returns the specification keyword for the kind.
func (k Kind) String() string {
	return classifiers[k].keyword
}

// Description returns the human-readable category name used in match
// diagnostics ("expression", "identifier", ...).
func (k Kind) Description() string {
	return classifiers[k].description
}

// Parse consumes one fragment of the given kind from the cursor. On
// failure the cursor is left wherever the classifier stopped; callers
// rewind before reporting.
func Parse(k Kind, cur *token.Cursor) error {
	return classifiers[k].parse(cur)
}
