package match

import (
	"fmt"
	"sort"
)

// Args is the name-indexed store populated by one match. It is written
// once by the matcher and read-only afterwards.
type Args struct {
	values map[string]Value
}

func newArgs() *Args {
	return &Args{values: map[string]Value{}}
}

func (a *Args) bind(name string, v Value) {
	a.values[name] = v
}

// Names returns the bound names in sorted order.
func (a *Args) Names() []string {
	names := make([]string, 0, len(a.values))
	for n := range a.values {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Get returns the raw value bound under name.
func (a *Args) Get(name string) (Value, bool) {
	v, ok := a.values[name]
	return v, ok
}

// ShapeError reports an access whose expected shape does not match how
// the specification bound the name. It signals a mismatch between the
// specification and the accessing code, not bad input.
type ShapeError struct {
	Name string
	Want string
	Got  string
}

func (e *ShapeError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("expected %s value, got %s", e.Want, e.Got)
	}
	return fmt.Sprintf("'%s': expected %s value, got %s", e.Name, e.Want, e.Got)
}

func (a *Args) lookup(name, want string) (Value, *ShapeError) {
	v, ok := a.values[name]
	if !ok {
		return nil, &ShapeError{Name: name, Want: want, Got: "unbound"}
	}
	return v, nil
}

// Scalar returns the single fragment bound under name outside any
// sequence.
func (a *Args) Scalar(name string) (Fragment, error) {
	v, serr := a.lookup(name, "scalar")
	if serr != nil {
		return Fragment{}, serr
	}
	f, ok := v.(Fragment)
	if !ok {
		return Fragment{}, &ShapeError{Name: name, Want: "scalar", Got: describe(v)}
	}
	return f, nil
}

// Sequence returns the repetitions of a name bound inside exactly one
// enclosing sequence.
func (a *Args) Sequence(name string) (Seq, error) {
	v, serr := a.lookup(name, "sequence")
	if serr != nil {
		return nil, serr
	}
	s, ok := v.(Seq)
	if !ok {
		return nil, &ShapeError{Name: name, Want: "sequence", Got: describe(v)}
	}
	return s, nil
}

// Optional projects a name bound inside one `?` sequence: the value and
// whether it was present.
func (a *Args) Optional(name string) (Value, bool, error) {
	s, err := a.Sequence(name)
	if err != nil {
		return nil, false, err
	}
	if len(s) > 1 {
		return nil, false, &ShapeError{Name: name, Want: "optional", Got: fmt.Sprintf("sequence of %d", len(s))}
	}
	v, ok := s.First()
	return v, ok, nil
}

// Nested returns the value bound under a name nested in `depth`
// enclosing sequences, verifying the nesting shape throughout.
func (a *Args) Nested(name string, depth int) (Value, error) {
	v, serr := a.lookup(name, nestedWant(depth))
	if serr != nil {
		return nil, serr
	}
	if err := checkDepth(name, v, depth); err != nil {
		return nil, err
	}
	return v, nil
}

func nestedWant(depth int) string {
	if depth == 0 {
		return "scalar"
	}
	return fmt.Sprintf("sequence nested %d deep", depth)
}

func checkDepth(name string, v Value, depth int) error {
	if depth == 0 {
		if _, ok := v.(Seq); ok {
			return &ShapeError{Name: name, Want: "scalar", Got: "sequence"}
		}
		return nil
	}
	s, ok := v.(Seq)
	if !ok {
		return &ShapeError{Name: name, Want: nestedWant(depth), Got: describe(v)}
	}
	for _, e := range s {
		if err := checkDepth(name, e, depth-1); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the repetition count of a named `*` or `+` sequence.
func (a *Args) Count(name string) (int, error) {
	v, serr := a.lookup(name, "count")
	if serr != nil {
		return 0, serr
	}
	c, ok := v.(Count)
	if !ok {
		return 0, &ShapeError{Name: name, Want: "count", Got: describe(v)}
	}
	return int(c), nil
}

// Flag returns the presence of a named `?` sequence.
func (a *Args) Flag(name string) (bool, error) {
	v, serr := a.lookup(name, "flag")
	if serr != nil {
		return false, serr
	}
	f, ok := v.(Flag)
	if !ok {
		return false, &ShapeError{Name: name, Want: "flag", Got: describe(v)}
	}
	return bool(f), nil
}

// Enum returns the matched variant of an enum-bound name.
func (a *Args) Enum(name string) (EnumValue, error) {
	v, serr := a.lookup(name, "enum")
	if serr != nil {
		return EnumValue{}, serr
	}
	e, ok := v.(EnumValue)
	if !ok {
		return EnumValue{}, &ShapeError{Name: name, Want: "enum", Got: describe(v)}
	}
	return e, nil
}

// The Must accessors panic on shape errors. Generated code trusts that
// its accesses mirror the specification exactly, so a failure there is a
// programming error, not recoverable input.

func MustScalar(a *Args, name string) Fragment {
	f, err := a.Scalar(name)
	if err != nil {
		panic(err)
	}
	return f
}

func MustSequence(a *Args, name string) Seq {
	s, err := a.Sequence(name)
	if err != nil {
		panic(err)
	}
	return s
}

func MustCount(a *Args, name string) int {
	c, err := a.Count(name)
	if err != nil {
		panic(err)
	}
	return c
}

func MustFlag(a *Args, name string) bool {
	f, err := a.Flag(name)
	if err != nil {
		panic(err)
	}
	return f
}

func MustEnum(a *Args, name string) EnumValue {
	e, err := a.Enum(name)
	if err != nil {
		panic(err)
	}
	return e
}

// Conversions used by generated bind functions.

func AsSeq(v Value) (Seq, error) {
	s, ok := v.(Seq)
	if !ok {
		return nil, &ShapeError{Want: "sequence", Got: describe(v)}
	}
	return s, nil
}

func AsFragment(v Value) (Fragment, error) {
	f, ok := v.(Fragment)
	if !ok {
		return Fragment{}, &ShapeError{Want: "scalar", Got: describe(v)}
	}
	return f, nil
}

func AsCount(v Value) (int, error) {
	c, ok := v.(Count)
	if !ok {
		return 0, &ShapeError{Want: "count", Got: describe(v)}
	}
	return int(c), nil
}

func AsFlag(v Value) (bool, error) {
	f, ok := v.(Flag)
	if !ok {
		return false, &ShapeError{Want: "flag", Got: describe(v)}
	}
	return bool(f), nil
}

func AsEnum(v Value) (EnumValue, error) {
	e, ok := v.(EnumValue)
	if !ok {
		return EnumValue{}, &ShapeError{Want: "enum", Got: describe(v)}
	}
	return e, nil
}
