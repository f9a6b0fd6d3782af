// Package gen emits Go declarations for a specification: a struct whose
// fields mirror the specification's bindings and a bind function that
// fills it from a populated argument store. Field types wrap per
// enclosing sequence: `?` adds a pointer, `*` and `+` add a slice.
package gen

import (
	"fmt"
	"strings"

	"github.com/mspec-go/mspec/spec"
)

type binding int

const (
	bindFragment binding = iota
	bindCount
	bindFlag
	bindEnum
)

func (b binding) baseType() string {
	switch b {
	case bindFragment:
		return "match.Fragment"
	case bindCount:
		return "int"
	case bindFlag:
		return "bool"
	}
	return "match.EnumValue"
}

// field is one generated struct field: a bound name, its base binding
// and the amounts of its enclosing sequences, outermost first.
type field struct {
	name   string
	goName string
	bind   binding
	stack  []spec.Amount
}

func (f field) goType() string {
	t := f.bind.baseType()
	for i := len(f.stack) - 1; i >= 0; i-- {
		if f.stack[i] == spec.ZeroOrOne {
			t = "*" + t
		} else {
			t = "[]" + t
		}
	}
	return t
}

func collect(s spec.Specification, stack []spec.Amount, out *[]field) {
	for _, item := range s {
		switch it := item.(type) {
		case spec.Named:
			*out = append(*out, field{it.Name, goName(it.Name), bindFragment, stack})
		case spec.Delimited:
			collect(it.Inner, stack, out)
		case spec.Sequence:
			inner := append(append([]spec.Amount{}, stack...), it.Amount)
			collect(it.Inner, inner, out)
			if it.Name != "" {
				b := bindCount
				if it.Amount == spec.ZeroOrOne {
					b = bindFlag
				}
				*out = append(*out, field{it.Name, goName(it.Name), b, stack})
			}
		case spec.Enum:
			*out = append(*out, field{it.Name, goName(it.Name), bindEnum, stack})
		}
	}
}

func goName(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// StructName returns the generated struct name for a specification name.
func StructName(specName string) string {
	return goName(specName) + "Args"
}

// File emits a complete Go source file for the named specification.
func File(pkg, specName string, s spec.Specification) string {
	var fields []field
	collect(s, nil, &fields)

	structName := StructName(specName)
	g := &emitter{}

	g.wl("// Code generated by mspec gen; DO NOT EDIT.")
	g.wl("")
	g.wl("package %s", pkg)
	g.wl("")
	g.wl("import (")
	g.wl("\t%q", "github.com/mspec-go/mspec/match")
	g.wl(")")
	g.wl("")
	g.wl("// %s holds the arguments matched by the %q specification.", structName, specName)
	g.wl("type %s struct {", structName)
	for _, f := range fields {
		g.wl("\t%s %s", f.goName, f.goType())
	}
	g.wl("}")
	g.wl("")
	g.wl("// Bind%s extracts %s from a store populated by match.Match.", structName, structName)
	g.wl("func Bind%s(args *match.Args) (%s, error) {", structName, structName)
	g.wl("\tvar out %s", structName)
	g.indent++
	for _, f := range fields {
		g.bindField(f)
	}
	g.indent--
	g.wl("\treturn out, nil")
	g.wl("}")
	return g.b.String()
}

type emitter struct {
	b      strings.Builder
	indent int
	n      int
}

func (g *emitter) wl(format string, args ...interface{}) {
	if format != "" {
		g.b.WriteString(strings.Repeat("\t", g.indent))
		fmt.Fprintf(&g.b, format, args...)
	}
	g.b.WriteByte('\n')
}

func (g *emitter) fresh(prefix string) string {
	g.n++
	return fmt.Sprintf("%s%d", prefix, g.n)
}

func (g *emitter) fail() {
	g.wl("if err != nil {")
	g.wl("\treturn out, err")
	g.wl("}")
}

func (g *emitter) bindField(f field) {
	if len(f.stack) == 0 {
		v := g.fresh("v")
		switch f.bind {
		case bindFragment:
			g.wl("%s, err := args.Scalar(%q)", v, f.name)
		case bindCount:
			g.wl("%s, err := args.Count(%q)", v, f.name)
		case bindFlag:
			g.wl("%s, err := args.Flag(%q)", v, f.name)
		case bindEnum:
			g.wl("%s, err := args.Enum(%q)", v, f.name)
		}
		g.fail()
		g.wl("out.%s = %s", f.goName, v)
		return
	}
	v := g.fresh("v")
	g.wl("%s, err := args.Nested(%q, %d)", v, f.name, len(f.stack))
	g.fail()
	r := g.convert(v, f.stack, f.bind)
	g.wl("out.%s = %s", f.goName, r)
}

// convert emits the code that reshapes a nested store value into the
// field's Go type, one Seq layer at a time.
func (g *emitter) convert(src string, stack []spec.Amount, b binding) string {
	if len(stack) == 0 {
		r := g.fresh("f")
		switch b {
		case bindFragment:
			g.wl("%s, err := match.AsFragment(%s)", r, src)
		case bindCount:
			g.wl("%s, err := match.AsCount(%s)", r, src)
		case bindFlag:
			g.wl("%s, err := match.AsFlag(%s)", r, src)
		case bindEnum:
			g.wl("%s, err := match.AsEnum(%s)", r, src)
		}
		g.fail()
		return r
	}

	elemType := field{bind: b, stack: stack[1:]}.goType()
	s := g.fresh("s")
	g.wl("%s, err := match.AsSeq(%s)", s, src)
	g.fail()

	if stack[0] == spec.ZeroOrOne {
		r := g.fresh("r")
		e := g.fresh("e")
		g.wl("var %s *%s", r, elemType)
		g.wl("if %s, ok := %s.First(); ok {", e, s)
		g.indent++
		inner := g.convert(e, stack[1:], b)
		g.wl("%s = &%s", r, inner)
		g.indent--
		g.wl("}")
		return r
	}

	r := g.fresh("r")
	e := g.fresh("e")
	g.wl("%s := make([]%s, 0, len(%s))", r, elemType, s)
	g.wl("for _, %s := range %s {", e, s)
	g.indent++
	inner := g.convert(e, stack[1:], b)
	g.wl("%s = append(%s, %s)", r, r, inner)
	g.indent--
	g.wl("}")
	return r
}
