package frontend

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cxxbind/internal/decl"
	"cxxbind/internal/diag"
	"cxxbind/internal/errs"
)

func sample() *decl.Stream {
	b := decl.NewBuilder("a.h")
	b.Add(decl.Function("f", b.Prim("int")))
	return b.Stream()
}

func TestCheckDiagnosticsThreshold(t *testing.T) {
	b := decl.NewBuilder("a.h")
	b.Diag("warning", "unused parameter").
		Diag("note", "declared here").
		Diag("error", "unknown type name 'foo'").
		Diag("fatal", "'b.h' file not found")

	warnings, err := CheckDiagnostics(b.Stream(), diag.SevError)
	require.Error(t, err)
	assert.Len(t, warnings, 2)
	var fe *errs.FrontEndError
	require.True(t, errs.As(err, &fe))
	assert.Len(t, fe.Diagnostics, 2)
	assert.Equal(t, diag.FrontFatal, fe.Diagnostics[0].Code)
	assert.True(t, errs.IsFatal(err))

	warnings, err = CheckDiagnostics(b.Stream(), diag.SevFatal)
	require.Error(t, err)
	assert.Len(t, warnings, 3)
	assert.Equal(t, diag.FrontReported, warnings[2].Code)
}

func TestCheckDiagnosticsDanglingHandle(t *testing.T) {
	s := sample()
	s.Decls = append(s.Decls, decl.Decl{Kind: decl.KindVariable, Name: "v", Type: 99})
	warnings, err := CheckDiagnostics(s, diag.SevError)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, diag.FrontBadHandle, warnings[0].Code)
}

func TestDumpFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.json")
	require.NoError(t, decl.WriteFile(path, sample()))

	s, err := DumpFile{Path: path}.Parse(context.Background(), Request{})
	require.NoError(t, err)
	require.Len(t, s.Decls, 1)
	assert.Equal(t, "f", s.Decls[0].Name)

	_, err = DumpFile{Path: filepath.Join(t.TempDir(), "missing.mp")}.Parse(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, errs.KindFrontEnd, errs.KindOf(err))
}

func TestCommandArgv(t *testing.T) {
	c := Command{Path: "walker", Args: []string{"--std=c++17"}}
	got := c.argv(Request{
		Headers:     []string{"a.h"},
		IncludeDirs: []string{"inc"},
		Sources:     []string{"a.cpp"},
		Flags:       []string{"-DX=1"},
	})
	assert.Equal(t, []string{"--std=c++17", "-I", "inc", "-DX=1", "--", "a.h", "a.cpp"}, got)
}

func TestCommandRunsWalker(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("no shell")
	}
	path := filepath.Join(t.TempDir(), "dump.mp")
	require.NoError(t, decl.WriteFile(path, sample()))

	ok := Command{Path: sh, Args: []string{"-c", `cat "$0"`, path}}
	s, err := ok.Parse(context.Background(), Request{Headers: []string{"a.h"}})
	require.NoError(t, err)
	assert.Len(t, s.Decls, 1)

	bad := Command{Path: sh, Args: []string{"-c", "echo boom >&2; exit 3"}}
	_, err = bad.Parse(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, errs.KindFrontEnd, errs.KindOf(err))
	assert.Contains(t, err.Error(), "boom")
}
