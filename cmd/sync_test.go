package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mspec-go/mspec/internal/db"
)

func writeDefs(t *testing.T, file, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join("mspecs", file), []byte(content), 0o644))
}

func runSync(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunSync(&buf))
	return buf.String()
}

func lookupSpec(t *testing.T, name string) db.Spec {
	t.Helper()
	sqlDB, err := db.Open("mspecs/mspec.db")
	require.NoError(t, err)
	defer sqlDB.Close()
	s, err := db.LookupSpec(sqlDB, name)
	require.NoError(t, err)
	return s
}

func TestSync_RequiresInit(t *testing.T) {
	inTempDir(t)
	err := RunSync(&bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run `mspec init` first")
}

func TestSync_RegistersNewSpecs(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeDefs(t, "core.mspec", "greet := hello $name:ident\npair := $k:ident = $v:expr\n")

	out := runSync(t)

	assert.Contains(t, out, "new")
	assert.Contains(t, out, "greet")
	assert.Contains(t, out, "pair")
	assert.Contains(t, out, "synced 2 specs from 1 files")

	s := lookupSpec(t, "greet")
	assert.Equal(t, "hello $name:ident", s.Source)
	assert.Equal(t, "ok", s.Status)
}

func TestSync_TracksExistingSpecs(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeDefs(t, "core.mspec", "greet := hello $name:ident\n")
	runSync(t)

	out := runSync(t)
	assert.Contains(t, out, "trk")
	assert.NotContains(t, out, "new")
}

func TestSync_UpdatesChangedSource(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeDefs(t, "core.mspec", "greet := hello $name:ident\n")
	runSync(t)
	writeDefs(t, "core.mspec", "greet := hi $name:ident\n")
	runSync(t)

	s := lookupSpec(t, "greet")
	assert.Equal(t, "hi $name:ident", s.Source)
}

func TestSync_RecordsParseErrors(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeDefs(t, "core.mspec", "bad := $a:wibble\n")

	out := runSync(t)
	assert.Contains(t, out, "err")
	assert.Contains(t, out, "bad")
	assert.Contains(t, out, "invalid named specifier type 'wibble'")

	s := lookupSpec(t, "bad")
	assert.Equal(t, "error", s.Status)
	assert.Contains(t, s.Error, "invalid named specifier type 'wibble'")
}

func TestSync_ReportsMalformedLines(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeDefs(t, "core.mspec", "this is not a definition\n")

	out := runSync(t)
	assert.Contains(t, out, "line 1: expected `name := specification`")
	assert.Contains(t, out, "synced 0 specs from 1 files")
}

func TestSync_SkipsCommentsAndBlankLines(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeDefs(t, "core.mspec", "# a comment\n\ngreet := hello $name:ident\n")

	out := runSync(t)
	assert.Contains(t, out, "synced 1 specs from 1 files")
}

func TestSync_MultipleFiles(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeDefs(t, "a.mspec", "alpha := $a:ident\n")
	writeDefs(t, "b.mspec", "beta := $b:expr\n")

	out := runSync(t)
	assert.Contains(t, out, "synced 2 specs from 2 files")
}

func TestParseDefs(t *testing.T) {
	defs, errs := parseDefs("greet := hello $name:ident\n# skip\nbad line\n9bad := x\n")
	require.Len(t, defs, 1)
	assert.Equal(t, "greet", defs[0].name)
	assert.Equal(t, "hello $name:ident", defs[0].source)
	assert.Equal(t, 1, defs[0].line)

	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "line 3")
	assert.Contains(t, errs[1].Error(), `invalid specification name "9bad"`)
}
