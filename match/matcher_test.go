package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mspec-go/mspec/spec"
	"github.com/mspec-go/mspec/token"
)

func match(t *testing.T, specSrc, input string) *Args {
	t.Helper()
	s, err := spec.Parse(specSrc)
	require.NoError(t, err)
	trees, err := token.Scan(input)
	require.NoError(t, err)
	args, merr := Match(s, trees)
	require.NoError(t, merr)
	return args
}

func matchErr(t *testing.T, specSrc, input string) *Error {
	t.Helper()
	s, err := spec.Parse(specSrc)
	require.NoError(t, err)
	trees, err := token.Scan(input)
	require.NoError(t, err)
	_, merr := Match(s, trees)
	require.Error(t, merr)
	var e *Error
	require.ErrorAs(t, merr, &e)
	return e
}

func scalarText(t *testing.T, args *Args, name string) string {
	t.Helper()
	f, err := args.Scalar(name)
	require.NoError(t, err)
	return f.Text()
}

func TestMatch_Scalars(t *testing.T) {
	args := match(t, "$a:ident = $b:expr", "x = 1 + 2")
	assert.Equal(t, "x", scalarText(t, args, "a"))
	assert.Equal(t, "1 + 2", scalarText(t, args, "b"))
	assert.Equal(t, []string{"a", "b"}, args.Names())
}

func TestMatch_SpecificMismatch(t *testing.T) {
	e := matchErr(t, "hello $a:ident", "goodbye world")
	assert.Equal(t, "expected `hello`, found `goodbye`", e.Message)
	assert.Equal(t, token.Pos{Line: 1, Col: 1}, e.Pos)
}

func TestMatch_FragmentMismatchReportsKindAndName(t *testing.T) {
	e := matchErr(t, "$a:ident $b:ident", "1 2")
	assert.Equal(t, "expected identifier: 'a'", e.Message)
	assert.Equal(t, token.Pos{Line: 1, Col: 1}, e.Pos)
}

func TestMatch_EndOfInput(t *testing.T) {
	e := matchErr(t, "foo bar", "foo")
	assert.Equal(t, "unexpected end of input", e.Message)
}

func TestMatch_TrailingTokens(t *testing.T) {
	e := matchErr(t, "$a:ident", "a b")
	assert.Equal(t, "unexpected trailing tokens", e.Message)
	assert.Equal(t, token.Pos{Line: 1, Col: 3}, e.Pos)
}

func TestMatch_Delimited(t *testing.T) {
	args := match(t, "($a:ident $b:ident)", "(x y)")
	assert.Equal(t, "x", scalarText(t, args, "a"))
	assert.Equal(t, "y", scalarText(t, args, "b"))

	e := matchErr(t, "($a:ident)", "[x]")
	assert.Equal(t, "expected `(`, found `[x]`", e.Message)

	e = matchErr(t, "($a:ident)", "(x y)")
	assert.Equal(t, "unexpected trailing tokens", e.Message)
}

func TestMatch_SequenceCardinality(t *testing.T) {
	args := match(t, "$($i:ident), *", "a, b, c")
	s, err := args.Sequence("i")
	require.NoError(t, err)
	require.Len(t, s, 3)
	assert.Equal(t, "a", s[0].(Fragment).Text())
	assert.Equal(t, "c", s[2].(Fragment).Text())
}

func TestMatch_SequenceEmpty(t *testing.T) {
	args := match(t, "$($i:ident), *", "")
	s, err := args.Sequence("i")
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestMatch_OneOrMoreRequiresOne(t *testing.T) {
	e := matchErr(t, "$($i:ident), +", "")
	assert.Equal(t, "expected identifier: 'i'", e.Message)
}

func TestMatch_SeparatorCommits(t *testing.T) {
	// Once a separator is consumed the next repetition must succeed.
	e := matchErr(t, "$($i:ident), *", "a, b,")
	assert.Equal(t, "expected identifier: 'i'", e.Message)
}

func TestMatch_GreedySequenceDoesNotBacktrack(t *testing.T) {
	// An unseparated `*` sequence eats every identifier, so nothing is
	// left for the trailing specifier.
	e := matchErr(t, "$($x:ident)* $y:ident", "a b")
	assert.Equal(t, "expected identifier: 'y'", e.Message)
}

func TestMatch_EmptyInnerSequenceTerminates(t *testing.T) {
	args := match(t, "$()* $a:ident", "x")
	assert.Equal(t, "x", scalarText(t, args, "a"))
}

func TestMatch_OptionalPresent(t *testing.T) {
	args := match(t, "$($x:ident)?", "a")
	v, ok, err := args.Optional("x")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", v.(Fragment).Text())
}

func TestMatch_OptionalAbsent(t *testing.T) {
	args := match(t, "$($x:ident)?", "")
	_, ok, err := args.Optional("x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatch_NamedSequenceCount(t *testing.T) {
	args := match(t, "$n:(A), *", "A, A, A")
	n, err := args.Count("n")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	args = match(t, "$n:(A), *", "")
	n, err = args.Count("n")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestMatch_NamedSequenceFlag(t *testing.T) {
	args := match(t, "$opt:(foo)?", "foo")
	f, err := args.Flag("opt")
	require.NoError(t, err)
	assert.True(t, f)

	args = match(t, "$opt:(foo)?", "")
	f, err = args.Flag("opt")
	require.NoError(t, err)
	assert.False(t, f)
}

func TestMatch_NamedSequenceBindsInnerNames(t *testing.T) {
	args := match(t, "$pairs:($k:ident = $v:expr), *", "a = 1, b = 2")
	n, err := args.Count("pairs")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ks, err := args.Sequence("k")
	require.NoError(t, err)
	require.Len(t, ks, 2)
	assert.Equal(t, "a", ks[0].(Fragment).Text())
	assert.Equal(t, "b", ks[1].(Fragment).Text())
}

func TestMatch_NestedSequencePresent(t *testing.T) {
	args := match(t, "$($($v:ident), *)?", "a, b")
	v, err := args.Nested("v", 2)
	require.NoError(t, err)
	outer := v.(Seq)
	require.Len(t, outer, 1)
	inner := outer[0].(Seq)
	require.Len(t, inner, 2)
	assert.Equal(t, "a", inner[0].(Fragment).Text())
	assert.Equal(t, "b", inner[1].(Fragment).Text())
}

func TestMatch_NestedSequenceAbsent(t *testing.T) {
	args := match(t, "$($($v:ident), *)?", "")
	v, err := args.Nested("v", 2)
	require.NoError(t, err)
	outer := v.(Seq)
	assert.Empty(t, outer)
	_, ok := outer.First()
	assert.False(t, ok)
}

func TestMatch_OptionalWithEmptyBodyIsAbsent(t *testing.T) {
	// The inner `*` matches zero items on empty input; the enclosing
	// `?` must then report absence, not an empty presence.
	args := match(t, "$o:($($v:ident), *)?", "")
	f, err := args.Flag("o")
	require.NoError(t, err)
	assert.False(t, f)

	v, err := args.Nested("v", 2)
	require.NoError(t, err)
	assert.Empty(t, v.(Seq))

	args = match(t, "$o:($($v:ident), *)?", "a, b")
	f, err = args.Flag("o")
	require.NoError(t, err)
	assert.True(t, f)
}

func TestMatch_EnumFirstVariantWins(t *testing.T) {
	args := match(t, "$e:{A($x:ident), B($y:expr)}", "foo")
	e, err := args.Enum("e")
	require.NoError(t, err)
	assert.Equal(t, 0, e.Variant)
	assert.Equal(t, "A", e.Name)
	f, err := e.Args.Scalar("x")
	require.NoError(t, err)
	assert.Equal(t, "foo", f.Text())
}

func TestMatch_EnumFallsThrough(t *testing.T) {
	args := match(t, "$e:{A('x $a:ident), B($b:lit)}", "42")
	e, err := args.Enum("e")
	require.NoError(t, err)
	assert.Equal(t, 1, e.Variant)
	assert.Equal(t, "B", e.Name)
}

func TestMatch_EnumNoVariant(t *testing.T) {
	e := matchErr(t, "$e:{A(foo), B(bar)}", "baz")
	assert.Equal(t, "no variant matched: A, B", e.Message)
}

func TestMatch_EnumRollsBackPartialConsumption(t *testing.T) {
	// Variant A consumes `x` before failing; the trial must be rolled
	// back so B sees the full input.
	args := match(t, "$e:{A(x y), B(x z)}", "x z")
	e, err := args.Enum("e")
	require.NoError(t, err)
	assert.Equal(t, "B", e.Name)
}

func TestMatch_FragmentPositions(t *testing.T) {
	args := match(t, "$a:ident $b:ident", "foo bar")
	f, err := args.Scalar("b")
	require.NoError(t, err)
	assert.Equal(t, token.Pos{Line: 1, Col: 5}, f.Pos)
}

func TestRenderValues(t *testing.T) {
	args := match(t, "$a:ident $($b:ident), * $c:(C)? $e:{V($x:lit)}", "w x, y C 3")
	a, _ := args.Get("a")
	assert.Equal(t, "w", Render(a))
	b, _ := args.Get("b")
	assert.Equal(t, "[x, y]", Render(b))
	c, _ := args.Get("c")
	assert.Equal(t, "true", Render(c))
	e, _ := args.Get("e")
	assert.Equal(t, "V(x = 3)", Render(e))
}
