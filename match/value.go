// Package match walks a specifier tree against an input token stream and
// records matched fragments into an argument store. Matching is a single
// greedy left-to-right pass: committed items are never revisited, only
// sequence repetitions and enum variant trials roll back.
package match

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mspec-go/mspec/fragment"
	"github.com/mspec-go/mspec/token"
)

// Value is one entry in an argument store. The concrete types are
// Fragment, Seq, Count, Flag and EnumValue.
type Value interface {
	value()
}

// Fragment is a scalar match: the token trees one classifier consumed.
type Fragment struct {
	Kind  fragment.Kind
	Trees []token.Tree
	Pos   token.Pos
}

// Seq holds one value per repetition of an enclosing sequence. Nested
// sequences produce nested Seqs.
type Seq []Value

// Count is the repetition count bound by a named `*` or `+` sequence.
type Count int

// Flag is the presence bound by a named `?` sequence.
type Flag bool

// EnumValue records which variant of an enum matched and the bindings of
// its body.
type EnumValue struct {
	Variant int
	Name    string
	Args    *Args
}

func (Fragment) value()  {}
func (Seq) value()       {}
func (Count) value()     {}
func (Flag) value()      {}
func (EnumValue) value() {}

// Text renders the fragment's tokens.
func (f Fragment) Text() string {
	return token.Render(f.Trees)
}

// First projects a zero-or-one Seq into its optional value.
func (s Seq) First() (Value, bool) {
	if len(s) == 0 {
		return nil, false
	}
	return s[0], true
}

// Flatten collapses one nested Seq layer, turning for example the
// sequence-of-sequences bound under `$($(...)...)...` into a single
// sequence. Every element must itself be a Seq.
func (s Seq) Flatten() (Seq, error) {
	var out Seq
	for _, e := range s {
		inner, ok := e.(Seq)
		if !ok {
			return nil, &ShapeError{Want: "sequence", Got: describe(e)}
		}
		out = append(out, inner...)
	}
	return out, nil
}

func describe(v Value) string {
	switch v.(type) {
	case Fragment:
		return "scalar"
	case Seq:
		return "sequence"
	case Count:
		return "count"
	case Flag:
		return "flag"
	case EnumValue:
		return "enum"
	}
	return "unbound"
}

// Render formats a value for display.
func Render(v Value) string {
	switch val := v.(type) {
	case Fragment:
		return val.Text()
	case Seq:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = Render(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Count:
		return strconv.Itoa(int(val))
	case Flag:
		return strconv.FormatBool(bool(val))
	case EnumValue:
		parts := make([]string, 0, len(val.Args.Names()))
		for _, n := range val.Args.Names() {
			parts = append(parts, fmt.Sprintf("%s = %s", n, Render(val.Args.values[n])))
		}
		return val.Name + "(" + strings.Join(parts, ", ") + ")"
	}
	return ""
}
