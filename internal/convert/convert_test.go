package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cxxbind/internal/cxxtypes"
	"cxxbind/internal/decl"
	"cxxbind/internal/errs"
)

type classSet map[string]bool

func (c classSet) IsClass(plain string) bool { return c[plain] }

type fixture struct {
	b       *decl.Builder
	arena   *cxxtypes.Arena
	classes classSet
}

func newFixture() *fixture {
	return &fixture{b: decl.NewBuilder("t.h"), arena: cxxtypes.NewArena(), classes: classSet{"Point": true}}
}

func (f *fixture) id(h decl.Handle) cxxtypes.TypeID {
	return f.arena.Resolve(f.b.Stream().Native(h))
}

func (f *fixture) sel(t *testing.T, s *Selector, h decl.Handle, role Role) *Conversion {
	t.Helper()
	conv, err := s.Select(f.arena, f.classes, f.id(h), role)
	require.NoError(t, err)
	return conv
}

func TestCatalogPriority(t *testing.T) {
	f := newFixture()
	b := f.b
	point := b.Record("geo::Point")
	cases := []struct {
		h    decl.Handle
		role Role
		want string
	}{
		{b.Void(), RoleReturn, "void"},
		{b.Prim("int"), RoleParam, "numeric"},
		{b.ConstRef(b.Prim("double")), RoleParam, "numeric"},
		{b.Pointer(b.Const(b.Prim("char"))), RoleParam, "cstring"},
		{b.Record("std::string"), RoleReturn, "string"},
		{b.Pointer(b.Prim("float")), RoleParam, "numeric-pointer"},
		{b.Pointer(b.Pointer(b.Prim("char"))), RoleParam, "cstring-array"},
		{b.Array(b.Prim("int"), 3), RoleParam, "fixed-array"},
		{b.EnumType("geo::Color"), RoleReturn, "enum"},
		{point, RoleReturn, "class"},
		{b.ConstRef(point), RoleParam, "class"},
		{b.Pointer(point), RoleReturn, "class-pointer"},
		{b.Pointer(b.Pointer(point)), RoleParam, "class-pointer-pointer"},
		{b.Template("std::vector", b.Prim("int")), RoleReturn, "container"},
		{b.Template("std::map", b.Record("std::string"), b.Prim("double")), RoleParam, "container"},
		{b.Template("std::vector", point), RoleParam, "class-vector"},
		{b.Alias("Index", b.Prim("unsigned long")), RoleParam, "numeric"},
	}
	s := NewSelector()
	for _, tc := range cases {
		conv := f.sel(t, s, tc.h, tc.role)
		assert.Equal(t, tc.want, conv.Name(), b.Spelling(tc.h))
	}
}

func TestRoleUnsupportedIsHardError(t *testing.T) {
	f := newFixture()
	point := f.b.Record("geo::Point")
	s := NewSelector()

	for _, h := range []decl.Handle{
		f.b.Pointer(f.b.Pointer(point)),
		f.b.Template("std::vector", point),
		f.b.Array(f.b.Prim("int"), 4),
		f.b.Pointer(f.b.Pointer(f.b.Prim("char"))),
	} {
		_, err := s.Select(f.arena, f.classes, f.id(h), RoleReturn)
		require.Error(t, err)
		var ute *errs.UnsupportedTypeError
		require.True(t, errs.As(err, &ute))
		assert.Equal(t, "return value", ute.Role)
	}

	_, err := s.Select(f.arena, f.classes, f.id(f.b.Void()), RoleParam)
	assert.Error(t, err)
	assert.Equal(t, errs.KindUnsupportedType, errs.KindOf(err))
}

func TestVoidPointerOverride(t *testing.T) {
	f := newFixture()
	vp := f.b.Pointer(f.b.Void())

	_, err := NewSelector().Select(f.arena, f.classes, f.id(vp), RoleParam)
	require.Error(t, err, "void pointers have no built-in strategy")
	assert.Contains(t, err.Error(), "no converter matches pointer type")

	v, err := NewVoidPointer("", "double")
	require.NoError(t, err)
	conv := f.sel(t, NewSelector(v), vp, RoleParam)
	assert.Equal(t, "void-pointer[double]", conv.Name())
	assert.Equal(t, "double[:]", conv.InputDecl())
	assert.Equal(t, "<void *>&buf[0]", conv.CallArg(NewArg("buf")))
	assert.Equal(t, "np.ndarray[Any, np.dtype[np.float64]]", conv.Signature())

	ret := f.sel(t, NewSelector(v), vp, RoleReturn)
	assert.Equal(t, []string{"return deref(<double *> cpp.get())"}, ret.FromNative("cpp.get()", true))

	_, err = NewVoidPointer("(", "int")
	assert.Error(t, err)
}

func TestUnsignedPlainCharIsString(t *testing.T) {
	f := newFixture()
	b := f.b
	// targets where plain char is unsigned report Char_U
	char := b.Raw(decl.TypeRecord{Spelling: "char", Kind: cxxtypes.KindCharU.String()})
	s := NewSelector()

	assert.Equal(t, "cstring", f.sel(t, s, b.Pointer(b.Const(char)), RoleParam).Name())
	assert.Equal(t, "cstring", f.sel(t, s, b.Pointer(char), RoleReturn).Name())
	assert.Equal(t, "cstring-array", f.sel(t, s, b.Pointer(b.Pointer(char)), RoleParam).Name())
	assert.Equal(t, "numeric-pointer", f.sel(t, s, b.Pointer(b.Prim("unsigned char")), RoleParam).Name())
}

func TestRegisteredFirst(t *testing.T) {
	f := newFixture()
	custom := &VoidPointer{Element: "int"}
	// a registered converter that matches int wins over the catalog
	conv := f.sel(t, NewSelector(intOverride{}, custom), f.b.Prim("int"), RoleParam)
	assert.Equal(t, "int-override", conv.Name())
}

type intOverride struct{ base }

func (intOverride) Name() string { return "int-override" }
func (intOverride) Matches(s *Subject) bool {
	return s.Node.Kind == cxxtypes.KindInt
}

func TestGeneratedText(t *testing.T) {
	f := newFixture()
	b := f.b
	s := NewSelector()
	point := b.Record("geo::Point")
	a := NewArg("p")

	num := f.sel(t, s, b.Prim("unsigned int"), RoleParam)
	assert.Equal(t, "unsigned int", num.InputDecl())
	assert.Equal(t, "np.uint32", num.Signature())
	assert.Equal(t, "p", num.CallArg(a))

	ptr := f.sel(t, s, b.Pointer(b.Prim("double")), RoleParam)
	assert.Equal(t, "double[:]", ptr.InputDecl())
	assert.Equal(t, "&p[0]", ptr.CallArg(a))
	assert.Equal(t, "np.ndarray[Any, np.dtype[np.float64]]", ptr.Signature())
	ret := f.sel(t, s, b.Pointer(b.Prim("double")), RoleReturn)
	assert.Equal(t, "np.float64", ret.Signature())
	assert.Equal(t, []string{"return deref(cpp.f())"}, ret.FromNative("cpp.f()", true))

	arr := f.sel(t, s, b.Array(b.Prim("int"), 3), RoleParam)
	lines := arr.ToNative(a)
	require.NotEmpty(t, lines)
	assert.Equal(t, "cdef int _p[3]", lines[0])
	assert.Contains(t, lines[4], "ValueError")
	assert.Equal(t, "_p", arr.CallArg(a))

	cls := f.sel(t, s, point, RoleParam)
	assert.Equal(t, "Point", cls.InputDecl())
	assert.Equal(t, "deref(p.thisptr)", cls.CallArg(a))
	clsRet := f.sel(t, s, point, RoleReturn)
	assert.Equal(t, []string{
		"cdef Point _ret_ = Point.__new__(Point)",
		"_ret_.thisptr = shared_ptr[cpp.Point](new cpp.Point(cpp.origin()))",
		"return _ret_",
	}, clsRet.FromNative("cpp.origin()", true))

	cp := f.sel(t, s, b.Pointer(point), RoleReturn)
	alias := cp.FromNative("self.thisptr.get().next", false)
	assert.Equal(t, "cdef cpp.Point* _ret_ptr = self.thisptr.get().next", alias[0])
	assert.Contains(t, alias[4], "shared_ptr[cpp.Point](shared_ptr[cpp.Point](), _ret_ptr)")
	owned := cp.FromNative("cpp.make()", true)
	assert.Contains(t, owned[4], "new cpp.Point(deref(_ret_ptr))")

	enum := f.sel(t, s, b.EnumType("geo::Color"), RoleReturn)
	assert.Equal(t, []string{"return Color(cpp.pick())"}, enum.FromNative("cpp.pick()", true))
	assert.Equal(t, "cpp.Color", enum.InputDecl())

	vec := f.sel(t, s, b.Template("std::vector", point), RoleParam)
	assert.Equal(t, "list[Point]", vec.Signature())
	assert.Equal(t, "cdef vector[cpp.Point] _p", vec.ToNative(a)[0])

	m := f.sel(t, s, b.Template("std::map", b.Prim("int"), b.Prim("double")), RoleReturn)
	assert.Equal(t, "dict", m.Signature())
	assert.Equal(t, "vector[int]", f.sel(t, s, b.Template("std::vector", b.Prim("int")), RoleParam).TypeName())
}

func TestImports(t *testing.T) {
	f := newFixture()
	b := f.b
	s := NewSelector()
	imp := NewImports()
	for _, h := range []decl.Handle{
		b.Template("std::map", b.Record("std::string"), b.Prim("int")),
		b.Pointer(b.Pointer(b.Prim("char"))),
		b.Record("geo::Point"),
	} {
		f.sel(t, s, h, RoleParam).AddImports(imp)
	}
	assert.Equal(t, []string{"map", "string", "shared_ptr"}, imp.STL())
	assert.True(t, imp.Malloc)
	assert.True(t, imp.Deref)

	lines := imp.ImplementationLines("_declarations")
	assert.Equal(t, "from libcpp cimport bool", lines[0])
	assert.Equal(t, "cimport _declarations as cpp", lines[len(lines)-1])
	assert.Contains(t, lines, "from libc.stdlib cimport malloc")
	assert.NotContains(t, imp.DeclarationLines(), "cimport _declarations as cpp")
}
