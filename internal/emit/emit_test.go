package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cxxbind/internal/binder"
	"cxxbind/internal/cxxtypes"
	"cxxbind/internal/decl"
	"cxxbind/internal/diag"
	"cxxbind/internal/inherit"
	"cxxbind/internal/symbols"
)

func bind(t *testing.T, b *decl.Builder) *binder.Output {
	t.Helper()
	rep := diag.BagReporter{Bag: diag.NewBag(0)}
	table := symbols.Build(b.Stream(), cxxtypes.NewArena(), rep)
	inherit.Linearize(table, rep)
	return binder.Bind(table, binder.Options{Reporter: rep})
}

// block returns the lines of the indented body that follows header.
func block(text, header string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != header {
			continue
		}
		prefix := l[:len(l)-len(strings.TrimLeft(l, " "))] + indent
		var body []string
		for _, b := range lines[i+1:] {
			if !strings.HasPrefix(b, prefix) {
				break
			}
			body = append(body, strings.TrimPrefix(b, prefix))
		}
		return body
	}
	return nil
}

func TestEnumValuesPreserved(t *testing.T) {
	b := decl.NewBuilder("lvl.h")
	b.Add(decl.Enum("Level", decl.C("LOW", -1), decl.C("MID", 0), decl.C("HIGH", 4294967296)))
	docs := Emit(bind(t, b), Options{Module: "lvl"})

	assert.Equal(t, []string{"LOW", "MID", "HIGH"}, block(docs.Declarations, "    enum Level:"))
	want := []string{"LOW = -1", "MID = 0", "HIGH = 4294967296"}
	assert.Equal(t, want, block(docs.Implementation, "class Level(IntEnum):"))
	assert.Equal(t, want, block(docs.Stub, "class Level(IntEnum):"))
	assert.Contains(t, docs.Implementation, "from enum import IntEnum\n")
	assert.NoError(t, docs.Agree())
}

func TestUnsignedEnumValues(t *testing.T) {
	b := decl.NewBuilder("mask.h")
	b.Add(decl.Enum("Mask", decl.CU("NONE", 0), decl.CU("ALL", 0xFFFFFFFFFFFFFFFF)))
	docs := Emit(bind(t, b), Options{Module: "mask"})

	want := []string{"NONE = 0", "ALL = 18446744073709551615"}
	assert.Equal(t, want, block(docs.Implementation, "class Mask(IntEnum):"))
	assert.Equal(t, want, block(docs.Stub, "class Mask(IntEnum):"))
}

func TestSnakeCaseCollisionEmittedOnce(t *testing.T) {
	b := decl.NewBuilder("v.h")
	i := b.Prim("int")
	b.Add(decl.Function("getValue", i), decl.Function("get_value", i))
	docs := Emit(bind(t, b), Options{Module: "v"})

	assert.Equal(t, 1, strings.Count(docs.Implementation, "cpdef get_value("))
	assert.Equal(t, 1, strings.Count(docs.Stub, "def get_value("))
	assert.NoError(t, docs.Agree())
}

func module(t *testing.T) *Documents {
	t.Helper()
	b := decl.NewBuilder("m.h")
	i, d := b.Prim("int"), b.Prim("double")
	point := b.Record("geo::Point")
	b.Add(
		decl.Enum("Color", decl.C("RED", 0), decl.C("GREEN", 1)),
		decl.Macro("VERSION", decl.Int("3")),
		decl.Variable("counter", i),
		decl.Function("area", d, decl.P("r", d)),
		decl.Class("Point",
			decl.Field("posX", i),
			decl.Method("norm", d).Const(),
		).In("geo").OfType(point),
	)
	return Emit(bind(t, b), Options{Module: "m"})
}

func TestDocumentsAgree(t *testing.T) {
	docs := module(t)
	require.NoError(t, docs.Agree())
	assert.Equal(t, []string{"Color", "VERSION", "counter", "area", "Point", "Point.posX", "Point.norm"}, docs.DeclarationIDs)
	assert.Equal(t, docs.DeclarationIDs, docs.ImplementationIDs)
	assert.Equal(t, docs.DeclarationIDs, docs.StubIDs)
}

func TestDeclarationsDocument(t *testing.T) {
	docs := module(t)
	text := docs.Declarations

	assert.True(t, strings.HasPrefix(text, generatedHeader+"\nfrom libcpp cimport bool\n"))
	assert.Contains(t, text, "from libcpp.memory cimport shared_ptr\n")
	assert.Equal(t, []string{
		"enum Color:",
		"    RED",
		"    GREEN",
		"cdef enum:",
		"    VERSION",
		"int counter",
		"double area(double r) except +",
	}, block(text, `cdef extern from "m.h":`))
	assert.Equal(t, []string{
		"cppclass Point:",
		"    int posX",
		"    Point() except +",
		"    double norm() except +",
	}, block(text, `cdef extern from "m.h" namespace "geo":`))
}

func TestImplementationDocument(t *testing.T) {
	docs := module(t)
	text := docs.Implementation

	assert.True(t, strings.HasPrefix(text, directives+"\n"))
	assert.Contains(t, text, "\ncimport _m as cpp\n")
	assert.Contains(t, text, "\nVERSION = cpp.VERSION\n")
	assert.Contains(t, text, "\ncvar = _cvar()\n")
	assert.Contains(t, text, "    cdef shared_ptr[cpp.Point] thisptr\n")
	assert.Contains(t, text, "    def __init__(Point self):\n        self.thisptr = shared_ptr[cpp.Point](new cpp.Point())\n")

	order := []string{"class Color(IntEnum):", "VERSION = cpp.VERSION", "cdef class _cvar:", "cpdef area(", "cdef class Point:"}
	last := -1
	for _, s := range order {
		at := strings.Index(text, s)
		require.Greater(t, at, last, s)
		last = at
	}
}

func TestStubDocument(t *testing.T) {
	docs := module(t)
	text := docs.Stub

	assert.Contains(t, text, "\nimport numpy as np\n")
	assert.NotContains(t, text, "from typing")
	assert.Contains(t, text, "\nVERSION: int\n")
	assert.Contains(t, text, "\ncvar: _cvar\n")
	assert.Contains(t, text, "    @property\n    def pos_x(self) -> np.int32: ...\n")
	assert.Contains(t, text, "    def norm(self) -> np.float64: ...\n")
}

func TestTypedefAndArrayDeclarations(t *testing.T) {
	b := decl.NewBuilder("arr.h")
	i := b.Prim("int")
	b.Add(
		decl.Typedef("Index", i),
		decl.Function("sum3", i, decl.P("v", b.Array(i, 3))),
	)
	docs := Emit(bind(t, b), Options{Module: "arr", Declarations: "arr_decl"})

	assert.Equal(t, []string{
		"ctypedef int Index",
		"int sum3(int v[3]) except +",
	}, block(docs.Declarations, `cdef extern from "arr.h":`))
	assert.Contains(t, docs.Implementation, "cimport arr_decl as cpp")
	assert.Equal(t, []string{"arr_decl.pxd", "arr.pyx"}, fileNames(docs.Files(false)))
}

func fileNames(files []File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}

func TestAgreeReportsMismatch(t *testing.T) {
	docs := &Documents{
		DeclarationIDs:    []string{"a", "b"},
		ImplementationIDs: []string{"a", "c"},
		StubIDs:           []string{"a", "b"},
	}
	err := docs.Agree()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"c" vs "b"`)

	docs.ImplementationIDs = []string{"a", "b"}
	docs.StubIDs = []string{"a"}
	require.Error(t, docs.Agree())
}

func TestWriteDocumentsAndManifest(t *testing.T) {
	b := decl.NewBuilder("m.h")
	i := b.Prim("int")
	b.Add(decl.Function("twice", i, decl.P("x", i)), decl.Variable("counter", i))
	out := bind(t, b)
	docs := Emit(out, Options{Module: "m"})

	dir := t.TempDir()
	paths, err := docs.Write(dir, true)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	data, err := os.ReadFile(filepath.Join(dir, "m.pyi"))
	require.NoError(t, err)
	assert.Equal(t, docs.Stub, string(data))

	m := NewManifest("m", out)
	mp := filepath.Join(dir, "m.manifest")
	require.NoError(t, m.Write(mp))
	got, err := ReadManifest(mp)
	require.NoError(t, err)
	assert.Equal(t, m, got)
	require.Len(t, got.Entries, 3)
	assert.Equal(t, "getter", got.Entries[0].Kind)
	assert.Equal(t, "counter", got.Entries[0].Native)
	assert.Equal(t, []string{"numeric", "numeric"}, got.Entries[2].Converters)
}
