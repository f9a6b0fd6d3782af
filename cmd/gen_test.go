package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenCmd_EmitsDeclarations(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeDefs(t, "core.mspec", "greet := hello $name:ident $($arg:expr), *\n")
	runSync(t)

	var buf bytes.Buffer
	require.NoError(t, RunGen(&buf, "greet", "macros"))
	out := buf.String()

	assert.Contains(t, out, "// Code generated by mspec gen; DO NOT EDIT.")
	assert.Contains(t, out, "package macros")
	assert.Contains(t, out, "type GreetArgs struct {")
	assert.Contains(t, out, "Name match.Fragment")
	assert.Contains(t, out, "Arg []match.Fragment")
	assert.Contains(t, out, "func BindGreetArgs(args *match.Args) (GreetArgs, error) {")
}

func TestGenCmd_UnknownSpec(t *testing.T) {
	inTempDir(t)
	runInit(t)
	err := RunGen(&bytes.Buffer{}, "nope", "main")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `specification "nope" not found`)
}

func TestGenCmd_InvalidSpecRefused(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeDefs(t, "core.mspec", "bad := $a:wibble\n")
	runSync(t)

	err := RunGen(&bytes.Buffer{}, "bad", "main")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `specification "bad" is invalid`)
}
