package overload

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cxxbind/internal/cxxtypes"
	"cxxbind/internal/decl"
	"cxxbind/internal/diag"
	"cxxbind/internal/symbols"
)

func table(t *testing.T, b *decl.Builder) *symbols.Table {
	t.Helper()
	return symbols.Build(b.Stream(), cxxtypes.NewArena(), diag.NopReporter{})
}

func bindAll[T any](T) (string, error) { return "ok", nil }

func TestResolveKeepsFirstOfEachGroup(t *testing.T) {
	b := decl.NewBuilder("f.h")
	i, d := b.Prim("int"), b.Prim("double")
	b.Add(
		decl.Function("f", i, decl.P("a", i)),
		decl.Function("g", i),
		decl.Function("f", d, decl.P("a", d)),
		decl.Function("f", i, decl.P("a", i), decl.P("b", i)),
	)
	tab := table(t, b)

	bag := diag.NewBag(0)
	got := Resolve(Functions(tab), PerExposedName, bindAll[*symbols.Function], diag.BagReporter{Bag: bag})
	require.Len(t, got, 2)
	assert.Equal(t, "f", got[0].Exposed)
	assert.Equal(t, "int (int)", got[0].Signature)
	assert.Equal(t, 2, got[0].Dropped)
	assert.Equal(t, "g", got[1].Exposed)
	assert.Equal(t, 2, bag.Count(diag.BindIgnoredOverload), "N candidates leave N-1 warnings")
}

func TestResolveSkipsUnbindable(t *testing.T) {
	b := decl.NewBuilder("f.h")
	i, d := b.Prim("int"), b.Prim("double")
	b.Add(
		decl.Function("f", i, decl.P("a", b.Pointer(b.Void()))),
		decl.Function("f", d, decl.P("a", d)),
		decl.Function("h", i, decl.P("a", b.Pointer(b.Void()))),
	)
	tab := table(t, b)

	bind := func(f *symbols.Function) (string, error) {
		if f.Signature == "int (void *)" {
			return "", errors.New("void pointer")
		}
		return f.Signature, nil
	}
	bag := diag.NewBag(0)
	got := Resolve(Functions(tab), PerExposedName, bind, diag.BagReporter{Bag: bag})
	require.Len(t, got, 1)
	assert.Equal(t, "double (double)", got[0].Binding)
	assert.Equal(t, 0, got[0].Dropped)
	assert.Equal(t, 2, bag.Count(diag.BindUnsupportedType))
	assert.Equal(t, 0, bag.Count(diag.BindIgnoredOverload))
}

func TestRenameDisambiguates(t *testing.T) {
	b := decl.NewBuilder("f.h")
	i, d := b.Prim("int"), b.Prim("double")
	b.Add(
		decl.Function("scale", i, decl.P("a", i)).In("m"),
		decl.Function("scale", d, decl.P("a", d)).In("m"),
		decl.Class("Box",
			decl.Method("get", i),
			decl.Method("get", d, decl.P("k", i)),
		).In("m"),
	)
	tab := table(t, b)

	renames := NewRenameTable([]Rename{
		{Name: "m::scale", Signature: "double(double)", Exposed: "scale_double"},
		{Name: "m::Box::get", Signature: "double (int)", Exposed: "get_at"},
		{Name: "m::missing", Exposed: "nothing"},
	})
	bag := diag.NewBag(0)
	n := ApplyRenames(tab, renames, diag.BagReporter{Bag: bag})
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, bag.Count(diag.BindUnusedRename))

	got := Resolve(Functions(tab), PerExposedName, bindAll[*symbols.Function], nil)
	require.Len(t, got, 2)
	assert.Equal(t, "scale", got[0].Exposed)
	assert.Equal(t, "scale_double", got[1].Exposed)

	first := Resolve(Functions(tab), FirstBindable, bindAll[*symbols.Function], nil)
	require.Len(t, first, 1, "first-bindable groups by declared name")

	box, _ := tab.Class("Box")
	assert.Equal(t, []string{"get", "get_at"}, box.MethodNames())
	methods := Resolve(Methods(box), PerExposedName, bindAll[*symbols.Method], nil)
	assert.Len(t, methods, 2)
}

func TestRenameByNameWinsOverSignature(t *testing.T) {
	rt := NewRenameTable([]Rename{
		{Name: "f", Signature: "int(int)", Exposed: "by_sig"},
		{Name: "f", Exposed: "by_name"},
	})
	to, ok := rt.Lookup("f", "int (int)")
	require.True(t, ok)
	assert.Equal(t, "by_name", to)
	assert.Len(t, rt.Unused(), 1)

	var empty *RenameTable
	_, ok = empty.Lookup("f", "")
	assert.False(t, ok)
	assert.Equal(t, 0, empty.Len())
}

func TestConstructors(t *testing.T) {
	b := decl.NewBuilder("c.h")
	i := b.Prim("int")
	b.Add(
		decl.Class("Implicit"),
		decl.Class("Abstract", decl.Method("run", i).PureVirtual()).Abstract(),
		decl.Class("Two",
			decl.Constructor(decl.P("a", i)),
			decl.Constructor(decl.P("a", i), decl.P("b", i)),
		),
		decl.Class("NoDefault", decl.Constructor().Private(), decl.Constructor(decl.P("a", i)).Private()),
	)
	tab := table(t, b)

	implicit, _ := tab.Class("Implicit")
	cands := Constructors(implicit)
	require.Len(t, cands, 1)
	assert.Empty(t, cands[0].Symbol.Args)
	assert.Equal(t, symbols.SymbolConstructor, cands[0].Symbol.Kind)

	abstract, _ := tab.Class("Abstract")
	assert.Empty(t, Constructors(abstract))

	two, _ := tab.Class("Two")
	bag := diag.NewBag(0)
	got := Resolve(Constructors(two), PerExposedName, bindAll[*symbols.Method], diag.BagReporter{Bag: bag})
	require.Len(t, got, 1)
	assert.Len(t, got[0].Symbol.Args, 1)
	assert.Equal(t, 1, bag.Count(diag.BindIgnoredOverload))

	none, _ := tab.Class("NoDefault")
	assert.Empty(t, Constructors(none), "class resolves with zero constructors")
}

func TestParsePolicy(t *testing.T) {
	p, ok := ParsePolicy("first_bindable")
	require.True(t, ok)
	assert.Equal(t, FirstBindable, p)
	p, ok = ParsePolicy("")
	require.True(t, ok)
	assert.Equal(t, PerExposedName, p)
	_, ok = ParsePolicy("random")
	assert.False(t, ok)
	assert.Equal(t, "first-bindable", FirstBindable.String())
}
