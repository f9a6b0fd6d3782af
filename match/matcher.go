package match

import (
	"fmt"
	"strings"

	"github.com/mspec-go/mspec/fragment"
	"github.com/mspec-go/mspec/spec"
	"github.com/mspec-go/mspec/token"
)

// Error is a match failure at a specific input position. It is a
// per-invocation diagnostic, not a program failure.
type Error struct {
	Pos     token.Pos
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

func failAt(pos token.Pos, format string, args ...interface{}) *Error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Match walks the specification against the input trees and returns the
// populated argument store. The input must be consumed completely.
func Match(s spec.Specification, trees []token.Tree) (*Args, error) {
	cur := token.NewCursor(trees)
	args := newArgs()
	if err := matchInto(s, cur, args); err != nil {
		return nil, err
	}
	if !cur.Done() {
		return nil, failAt(cur.Pos(), "unexpected trailing tokens")
	}
	return args, nil
}

func matchInto(s spec.Specification, cur *token.Cursor, args *Args) *Error {
	for _, item := range s {
		if err := matchItem(item, cur, args); err != nil {
			return err
		}
	}
	return nil
}

func matchItem(item spec.Specifier, cur *token.Cursor, args *Args) *Error {
	switch it := item.(type) {
	case spec.Specific:
		t := cur.Next()
		if t == nil {
			return failAt(cur.Pos(), "unexpected end of input")
		}
		if t.Token == nil || !t.Token.Eq(it.Tok) {
			return failAt(t.Pos(), "expected `%s`, found `%s`", it.Tok.Text, t)
		}
		return nil
	case spec.Named:
		pos := cur.Pos()
		mark := cur.Mark()
		if err := fragment.Parse(it.Kind, cur); err != nil {
			cur.Rewind(mark)
			return failAt(pos, "expected %s: '%s'", it.Kind.Description(), it.Name)
		}
		args.bind(it.Name, Fragment{Kind: it.Kind, Trees: cur.Since(mark), Pos: pos})
		return nil
	case spec.Delimited:
		t := cur.Next()
		if t == nil {
			return failAt(cur.Pos(), "unexpected end of input")
		}
		if t.Group == nil || t.Group.Delim != it.Delim {
			return failAt(t.Pos(), "expected `%s`, found `%s`", it.Delim.Open(), t)
		}
		sub := token.NewCursor(t.Group.Trees)
		if err := matchInto(it.Inner, sub, args); err != nil {
			return err
		}
		if !sub.Done() {
			return failAt(sub.Pos(), "unexpected trailing tokens")
		}
		return nil
	case spec.Sequence:
		return matchSequence(it, cur, args)
	case spec.Enum:
		return matchEnum(it, cur, args)
	}
	return nil
}

// matchSequence repeats the inner specification greedily. Each attempt
// runs against a trial store and is rolled back wholesale on failure;
// once a separator has been consumed the following repetition must
// succeed. After the loop every inner name is wrapped in one Seq layer,
// empty when nothing matched, so the store's nesting always mirrors the
// specification's.
func matchSequence(seq spec.Sequence, cur *token.Cursor, args *Args) *Error {
	names := seq.Inner.BoundNames()
	acc := make(map[string]Seq, len(names))
	count := 0

	for {
		if count > 0 && seq.Sep != nil {
			t := cur.Peek()
			if t == nil || t.Token == nil || !t.Token.Eq(*seq.Sep) {
				break
			}
			cur.Next()
		}
		mark := cur.Mark()
		trial := newArgs()
		if err := matchInto(seq.Inner, cur, trial); err != nil {
			if count == 0 {
				cur.Rewind(mark)
				if seq.Amount == spec.OneOrMore {
					return err
				}
				break
			}
			if seq.Sep != nil {
				// The separator is already committed.
				return err
			}
			cur.Rewind(mark)
			break
		}
		if seq.Amount == spec.ZeroOrOne && cur.Mark() == mark {
			// The body matched nothing; an empty `?` is absent, not
			// present.
			break
		}
		for _, n := range names {
			acc[n] = append(acc[n], trial.values[n])
		}
		count++
		if seq.Amount == spec.ZeroOrOne {
			break
		}
		if cur.Mark() == mark {
			// The inner specification consumed nothing; repeating
			// would loop forever.
			break
		}
	}

	for _, n := range names {
		args.bind(n, acc[n])
	}
	if seq.Name != "" {
		if seq.Amount == spec.ZeroOrOne {
			args.bind(seq.Name, Flag(count > 0))
		} else {
			args.bind(seq.Name, Count(count))
		}
	}
	return nil
}

// matchEnum tries each variant in declaration order; the first whose
// body parses completely wins. A failed trial is rolled back entirely,
// so no variant can partially consume input.
func matchEnum(e spec.Enum, cur *token.Cursor, args *Args) *Error {
	pos := cur.Pos()
	for i, v := range e.Variants {
		mark := cur.Mark()
		sub := newArgs()
		if err := matchInto(v.Body, cur, sub); err == nil {
			args.bind(e.Name, EnumValue{Variant: i, Name: v.Name, Args: sub})
			return nil
		}
		cur.Rewind(mark)
	}
	names := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		names[i] = v.Name
	}
	return failAt(pos, "no variant matched: %s", strings.Join(names, ", "))
}
