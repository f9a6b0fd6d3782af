package spec

import (
	"fmt"
	"strings"
)

// String renders the specification in (roughly) its source form.
func (s Specification) String() string {
	parts := make([]string, len(s))
	for i, item := range s {
		parts[i] = formatSpecifier(item)
	}
	return strings.Join(parts, " ")
}

func formatSpecifier(item Specifier) string {
	switch it := item.(type) {
	case Named:
		return fmt.Sprintf("$%s:%s", it.Name, it.Kind)
	case Specific:
		return it.Tok.Text
	case Delimited:
		return it.Delim.Open() + it.Inner.String() + it.Delim.Close()
	case Sequence:
		prefix := "$"
		if it.Name != "" {
			prefix = "$" + it.Name + ":"
		}
		suffix := it.Amount.String()
		if it.Sep != nil {
			suffix = it.Sep.Text + " " + suffix
		}
		return prefix + "(" + it.Inner.String() + ")" + suffix
	case Enum:
		vs := make([]string, len(it.Variants))
		for i, v := range it.Variants {
			vs[i] = v.Name + "(" + v.Body.String() + ")"
		}
		return "$" + it.Name + ":{" + strings.Join(vs, ", ") + "}"
	}
	return ""
}

// Dump renders the tree one node per line, indented by depth. Used by
// the CLI to show how a specification was understood.
func (s Specification) Dump() string {
	var b strings.Builder
	dumpInto(&b, s, 0)
	return b.String()
}

func dumpInto(b *strings.Builder, s Specification, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, item := range s {
		switch it := item.(type) {
		case Named:
			fmt.Fprintf(b, "%s%s %q\n", indent, it.Kind.Description(), it.Name)
		case Specific:
			fmt.Fprintf(b, "%stoken `%s`\n", indent, it.Tok.Text)
		case Delimited:
			fmt.Fprintf(b, "%sdelimited %s%s\n", indent, it.Delim.Open(), it.Delim.Close())
			dumpInto(b, it.Inner, depth+1)
		case Sequence:
			fmt.Fprintf(b, "%ssequence", indent)
			if it.Name != "" {
				fmt.Fprintf(b, " %q", it.Name)
			}
			fmt.Fprintf(b, " %s", it.Amount)
			if it.Sep != nil {
				fmt.Fprintf(b, " sep `%s`", it.Sep.Text)
			}
			b.WriteByte('\n')
			dumpInto(b, it.Inner, depth+1)
		case Enum:
			fmt.Fprintf(b, "%senum %q\n", indent, it.Name)
			for _, v := range it.Variants {
				fmt.Fprintf(b, "%s  variant %q\n", indent, v.Name)
				dumpInto(b, v.Body, depth+2)
			}
		}
	}
}
