package cmd

import (
	"fmt"
	"strings"
)

// A .mspec definition file holds one specification per line:
//
//	name := $a:ident = $b:expr
//
// Blank lines and lines starting with `#` are skipped.

type def struct {
	name   string
	source string
	line   int
}

func parseDefs(content string) ([]def, []error) {
	var defs []def
	var errs []error
	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		name, source, ok := strings.Cut(trimmed, ":=")
		if !ok {
			errs = append(errs, fmt.Errorf("line %d: expected `name := specification`", i+1))
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" || !isDefName(name) {
			errs = append(errs, fmt.Errorf("line %d: invalid specification name %q", i+1, name))
			continue
		}
		defs = append(defs, def{name: name, source: strings.TrimSpace(source), line: i + 1})
	}
	return defs, errs
}

func isDefName(name string) bool {
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
