package cxxtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSameSpellingSameNode(t *testing.T) {
	a := NewArena()
	first := a.Resolve(&fakeType{spelling: "int", kind: KindInt})
	second := a.Resolve(&fakeType{spelling: "int", kind: KindInt})

	require.True(t, first.IsValid())
	assert.Equal(t, first, second)
	assert.Same(t, a.Get(first), a.Get(second))
	assert.Equal(t, 1, a.Len())
}

func TestResolveStripsElaboratedKeyword(t *testing.T) {
	a := NewArena()
	rec := a.Resolve(&fakeType{spelling: "NA::Widget", kind: KindRecord})
	elab := a.Resolve(&fakeType{spelling: "class NA::Widget", kind: KindElaborated})
	assert.Equal(t, rec, elab)

	n := a.MustGet(rec)
	assert.Equal(t, "NA::Widget", n.CppName)
	assert.Equal(t, "Widget", n.Name)
	assert.Equal(t, "Widget", n.PlainName)
}

func TestResolveConstReferenceChain(t *testing.T) {
	a := NewArena()
	widget := &fakeType{spelling: "ns::Widget", kind: KindRecord}
	constWidget := &fakeType{spelling: "const ns::Widget", kind: KindRecord, isConst: true, canonical: &fakeType{spelling: "const ns::Widget", kind: KindRecord}}
	ref := &fakeType{spelling: "const ns::Widget &", kind: KindLValueReference, pointee: constWidget}
	_ = widget

	id := a.Resolve(ref)
	n := a.MustGet(id)
	assert.Equal(t, KindLValueReference, n.Kind)
	assert.Equal(t, "const Widget &", n.Name)
	assert.Equal(t, "Widget", n.PlainName)
	assert.Equal(t, ShapePointer, n.Shape())

	p := a.MustGet(n.Pointee)
	assert.True(t, p.Const)
	assert.Equal(t, ShapeRecord, p.Shape())
	assert.Equal(t, n.Pointee, a.Canonical(n.Pointee), "canonical with same spelling is not linked")
}

func TestResolveTemplateArgsAndCanonical(t *testing.T) {
	a := NewArena()
	i := &fakeType{spelling: "int", kind: KindInt}
	canonVec := &fakeType{spelling: "std::vector<int, std::allocator<int>>", kind: KindRecord, args: []*fakeType{i, nil}}
	vec := &fakeType{spelling: "std::vector<int>", kind: KindElaborated, args: []*fakeType{i}, canonical: canonVec}

	id := a.Resolve(vec)
	n := a.MustGet(id)
	require.Len(t, n.TemplateArgs, 1)
	assert.Equal(t, "int", a.MustGet(n.TemplateArgs[0]).Name)
	assert.Equal(t, "vector[int]", n.Name)
	assert.Equal(t, ShapeTemplate, n.Shape())

	c := a.MustGet(a.Canonical(id))
	assert.Equal(t, "std::vector<int, std::allocator<int>>", c.CppName)
	assert.Len(t, c.TemplateArgs, 1, "failing template arg probe is skipped")
	assert.Equal(t, []string{"vector", "allocator"}, a.STLNames())
}

func TestResolveConstantArray(t *testing.T) {
	a := NewArena()
	arr := &fakeType{spelling: "double[3]", kind: KindConstantArray, elem: &fakeType{spelling: "double", kind: KindDouble}, count: 3}
	n := a.MustGet(a.Resolve(arr))
	assert.Equal(t, int64(3), n.Count)
	assert.Equal(t, "double", a.MustGet(n.Elem).Name)
	assert.Equal(t, ShapeArray, n.Shape())
}

func TestProbeFailureDegradesToAbsent(t *testing.T) {
	a := NewArena()
	probes := 0
	// A pointer whose pointee probe fails must still resolve.
	broken := &fakeType{spelling: "opaque *", kind: KindPointer, probes: &probes}
	n := a.MustGet(a.Resolve(broken))
	assert.Equal(t, 1, probes)
	assert.False(t, n.Pointee.IsValid())
	assert.False(t, n.Elem.IsValid())
	assert.Equal(t, int64(-1), n.Count)
	assert.Empty(t, n.TemplateArgs)
}

func TestResolveSelfReferenceTerminates(t *testing.T) {
	a := NewArena()
	node := &fakeType{spelling: "Node", kind: KindRecord}
	ptr := &fakeType{spelling: "Node *", kind: KindPointer}
	ptr.pointee = node
	// A canonical that points back at the pointer spelling builds a loop.
	node.canonical = &fakeType{spelling: "struct Node *", kind: KindPointer, pointee: node}

	id := a.Resolve(ptr)
	n := a.MustGet(id)
	pointee := a.MustGet(n.Pointee)
	assert.Equal(t, "Node", pointee.Name)
	assert.Equal(t, id, pointee.Canonical, "re-entrant spelling returns the reserved slot")
}

func TestResolveNil(t *testing.T) {
	a := NewArena()
	assert.Equal(t, NoTypeID, a.Resolve(nil))
	assert.Nil(t, a.Get(NoTypeID))
	assert.Nil(t, a.Get(TypeID(99)))
	_, ok := a.Lookup("int")
	assert.False(t, ok)
}

func TestArenaLookupAndEachOrder(t *testing.T) {
	a := NewArena()
	a.Resolve(&fakeType{spelling: "float", kind: KindFloat})
	a.Resolve(&fakeType{spelling: "char *", kind: KindPointer, pointee: &fakeType{spelling: "char", kind: KindCharS}})

	id, ok := a.Lookup("char *")
	require.True(t, ok)
	assert.Equal(t, KindPointer, a.MustGet(id).Kind)

	var order []string
	a.Each(func(n *Node) { order = append(order, n.CppName) })
	assert.Equal(t, []string{"float", "char *", "char"}, order)
}
