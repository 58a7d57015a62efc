package inherit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cxxbind/internal/cxxtypes"
	"cxxbind/internal/decl"
	"cxxbind/internal/diag"
	"cxxbind/internal/symbols"
)

func build(b *decl.Builder) *symbols.Table {
	return symbols.Build(b.Stream(), cxxtypes.NewArena(), diag.NopReporter{})
}

func TestDiamondFirstBaseWins(t *testing.T) {
	b := decl.NewBuilder("d.h")
	i, d := b.Prim("int"), b.Prim("double")
	b.Add(
		decl.Class("D", decl.Base("B"), decl.Base("C"), decl.Method("own", i)),
		decl.Class("B", decl.Base("A"), decl.Method("f", i), decl.Field("b", i)),
		decl.Class("C", decl.Base("A"), decl.Method("f", d), decl.Method("g", d)),
		decl.Class("A", decl.Method("f", b.Prim("float")), decl.Method("root", i), decl.Field("a", i)),
	)
	tab := build(b)

	res := Linearize(tab, nil)
	assert.Empty(t, res.Cyclic)
	assert.Equal(t, []string{"A", "B", "C", "D"}, res.Order)

	dd, _ := tab.Class("D")
	assert.Equal(t, []string{"own", "f", "root", "g"}, dd.MethodNames())
	f := dd.Overloads("f")
	require.Len(t, f, 1)
	assert.Equal(t, "B", f[0].Namespace, "first declared base wins")
	assert.True(t, dd.HasField("a"))
	assert.True(t, dd.HasField("b"))

	cc, _ := tab.Class("C")
	assert.Equal(t, "C", cc.Overloads("f")[0].Namespace, "own methods are never replaced")
}

func TestLinearizeIdempotent(t *testing.T) {
	b := decl.NewBuilder("i.h")
	i := b.Prim("int")
	b.Add(
		decl.Class("Base", decl.Method("m", i), decl.Field("x", i)),
		decl.Class("Mid", decl.Base("Base")),
		decl.Class("Leaf", decl.Base("Mid"), decl.Base("Ghost")),
	)
	tab := build(b)

	bag := diag.NewBag(0)
	first := Linearize(tab, diag.BagReporter{Bag: bag})
	assert.Equal(t, 4, first.Inherited)
	assert.Equal(t, 1, bag.Count(diag.InhUnresolvedBase))

	leaf, _ := tab.Class("Leaf")
	methods := leaf.MethodNames()
	fields := len(leaf.Fields)
	assert.Equal(t, []string{"Mid"}, leaf.Bases)

	second := Linearize(tab, diag.BagReporter{Bag: bag})
	assert.Equal(t, 0, second.Inherited)
	assert.Equal(t, methods, leaf.MethodNames())
	assert.Equal(t, fields, len(leaf.Fields))
	assert.Equal(t, 1, bag.Count(diag.InhUnresolvedBase))
}

func TestLinearizeCycle(t *testing.T) {
	b := decl.NewBuilder("c.h")
	i := b.Prim("int")
	b.Add(
		decl.Class("X", decl.Base("Y"), decl.Method("x", i)),
		decl.Class("Y", decl.Base("X"), decl.Method("y", i)),
		decl.Class("Z", decl.Method("z", i)),
	)
	tab := build(b)

	bag := diag.NewBag(0)
	res := Linearize(tab, diag.BagReporter{Bag: bag})
	assert.Equal(t, []string{"X", "Y"}, res.Cyclic)
	assert.Equal(t, []string{"Z"}, res.Order)
	assert.Equal(t, 2, bag.Count(diag.InhCycle))

	x, _ := tab.Class("X")
	assert.Equal(t, []string{"x"}, x.MethodNames())
}

func TestNamespacedBases(t *testing.T) {
	b := decl.NewBuilder("n.h")
	i := b.Prim("int")
	b.Add(
		decl.Class("Shape", decl.Method("area", b.Prim("double"))).In("geo"),
		decl.Class("Square", decl.Base("geo::Shape"), decl.Field("side", i)).In("geo"),
	)
	tab := build(b)
	Linearize(tab, nil)

	sq, _ := tab.Class("Square")
	assert.True(t, sq.HasMethod("area"))
}
