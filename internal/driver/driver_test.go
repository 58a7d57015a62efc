package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cxxbind/internal/config"
	"cxxbind/internal/decl"
	"cxxbind/internal/diag"
	"cxxbind/internal/errs"
	"cxxbind/internal/frontend"
	"cxxbind/internal/overload"
	"cxxbind/internal/testkit"
)

func geoStream() *decl.Stream {
	b := decl.NewBuilder("geo.hpp")
	i, d := b.Prim("int"), b.Prim("double")
	shape := b.Record("geo::Shape")
	b.Add(
		decl.Function("scale", d, decl.P("x", d)).In("geo"),
		decl.Function("scale", i, decl.P("x", i)).In("geo"),
		decl.Class("Shape",
			decl.Method("area", d).Const().PureVirtual(),
		).In("geo").Abstract().OfType(shape),
		decl.Class("Square",
			decl.Base("Shape"),
			decl.Constructor(decl.P("side", d)),
			decl.Method("area", d).Const(),
		).In("geo"),
	)
	return b.Stream()
}

func TestRunStream(t *testing.T) {
	var (
		mu     sync.Mutex
		events []PhaseEvent
	)
	opts := Options{
		Config: &config.Config{Module: config.Module{Name: "geo"}},
		OnPhase: func(e PhaseEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
		},
	}
	res, err := RunStream(context.Background(), geoStream(), opts)
	require.NoError(t, err)

	require.NotNil(t, res.Output)
	assert.Len(t, res.Output.Functions, 1)
	assert.Len(t, res.Output.Classes, 2)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, diag.BindIgnoredOverload, res.Warnings[0].Code)
	assert.Contains(t, res.Docs.Implementation, "cdef class Square:")
	assert.Equal(t, "geo", res.Manifest.Module)
	require.NoError(t, testkit.CheckTableInvariants(res.Output.Table))
	require.NoError(t, testkit.CheckOutputInvariants(res.Output))
	require.NoError(t, testkit.CheckDocuments(res.Docs))

	var names []string
	for _, e := range events {
		if e.Status == PhaseEnd {
			names = append(names, e.Name)
		}
	}
	assert.Equal(t, []string{"check", "symbols", "rename", "inherit", "bind", "emit"}, names)
	assert.Len(t, res.Timing.Phases(), 6)
}

func TestRenameKeepsBothOverloads(t *testing.T) {
	cfg := &config.Config{
		Module:  config.Module{Name: "geo"},
		Renames: []overload.Rename{{Name: "geo::scale", Signature: "int (int)", Exposed: "scale_i"}},
	}
	res, err := RunStream(context.Background(), geoStream(), Options{Config: cfg})
	require.NoError(t, err)
	require.Len(t, res.Output.Functions, 2)
	assert.Equal(t, "scale_i", res.Output.Functions[1].Name)
	assert.Empty(t, res.Warnings)
	require.NoError(t, testkit.CheckOutputInvariants(res.Output))
}

func TestRunFrontEndFatal(t *testing.T) {
	b := decl.NewBuilder("bad.h")
	b.Add(decl.Function("f", b.Prim("int")))
	b.Diag("warning", "something odd").Diag("error", "unknown type name 'foo'")

	res, err := RunStream(context.Background(), b.Stream(), Options{
		Config: &config.Config{Module: config.Module{Name: "bad"}},
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindFrontEnd, errs.KindOf(err))
	require.NotNil(t, res)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "something odd", res.Warnings[0].Message)
	assert.Nil(t, res.Output)
}

func TestRunNeedsModuleName(t *testing.T) {
	_, err := RunStream(context.Background(), geoStream(), Options{
		Config: &config.Config{Module: config.Module{Headers: []string{"a.h", "b.h"}}},
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindConfiguration, errs.KindOf(err))
}

func writeProject(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	header := filepath.Join(dir, "geo.hpp")
	require.NoError(t, os.WriteFile(header, nil, 0o644))
	dump := filepath.Join(dir, "geo.mp")
	require.NoError(t, decl.WriteFile(dump, geoStream()))
	return &config.Config{
		Module:   config.Module{Headers: []string{header}},
		FrontEnd: config.FrontEnd{Dump: dump},
		Path:     filepath.Join(dir, "cxxbind.toml"),
	}
}

func TestRunFromDumpAndWrite(t *testing.T) {
	cfg := writeProject(t)
	res, err := Run(context.Background(), Options{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, "geo", res.Module)
	assert.Equal(t, "frontend", res.Timing.Phases()[0].Name)

	out := t.TempDir()
	paths, err := res.Write(out, true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(out, "_geo.pxd"),
		filepath.Join(out, "geo.pyx"),
		filepath.Join(out, "geo.pyi"),
		filepath.Join(out, "geo.manifest"),
	}, paths)
}

func TestRunPreflightFailure(t *testing.T) {
	cfg := writeProject(t)
	cfg.Module.IncludeDirs = []string{filepath.Join(t.TempDir(), "missing")}
	_, err := Run(context.Background(), Options{Config: cfg})
	require.Error(t, err)
	assert.Equal(t, errs.KindConfiguration, errs.KindOf(err))
}

func TestRunFrontEndOverride(t *testing.T) {
	cfg := writeProject(t)
	b := decl.NewBuilder("geo.hpp")
	b.Add(decl.Function("only", b.Prim("int")))
	res, err := Run(context.Background(), Options{Config: cfg, FrontEnd: frontend.Static{Stream: b.Stream()}})
	require.NoError(t, err)
	require.Len(t, res.Output.Functions, 1)
	assert.Equal(t, "only", res.Output.Functions[0].Name)
}

func TestDiskCacheServesUnchangedInputs(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)
	opts := Options{Config: &config.Config{Module: config.Module{Name: "geo"}}, Cache: cache}

	first, err := RunStream(context.Background(), geoStream(), opts)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := RunStream(context.Background(), geoStream(), opts)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Nil(t, second.Output)
	assert.Equal(t, first.Docs.Implementation, second.Docs.Implementation)
	assert.Equal(t, first.Manifest, second.Manifest)
	assert.Equal(t, first.Warnings, second.Warnings)
	require.NoError(t, second.Docs.Agree())

	opts.Config.Module.Globals = "state"
	third, err := RunStream(context.Background(), geoStream(), opts)
	require.NoError(t, err)
	assert.False(t, third.Cached, "settings are part of the key")

	require.NoError(t, cache.DropAll())
	fourth, err := RunStream(context.Background(), geoStream(), opts)
	require.NoError(t, err)
	assert.False(t, fourth.Cached)
}

func TestRunIsDeterministic(t *testing.T) {
	opts := Options{Config: &config.Config{Module: config.Module{Name: "geo"}}}
	first, err := RunStream(context.Background(), geoStream(), opts)
	require.NoError(t, err)
	for range 3 {
		again, err := RunStream(context.Background(), geoStream(), opts)
		require.NoError(t, err)
		assert.Equal(t, first.Docs.Declarations, again.Docs.Declarations)
		assert.Equal(t, first.Docs.Implementation, again.Docs.Implementation)
		assert.Equal(t, first.Docs.Stub, again.Docs.Stub)
		assert.Equal(t, first.Manifest, again.Manifest)
	}
}
