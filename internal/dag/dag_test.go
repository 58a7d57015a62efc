package dag

import (
	"slices"
	"testing"
)

func names(g *Graph, ids []NodeID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.Name(id))
	}
	return out
}

func TestToposortGenerations(t *testing.T) {
	g := NewGraph()
	d := g.Add("D")
	b := g.Add("B")
	c := g.Add("C")
	a := g.Add("A")
	g.Depend(b, a)
	g.Depend(c, a)
	g.Depend(d, b)
	g.Depend(d, c)
	g.Depend(d, c) // duplicate base must not count twice

	topo := ToposortKahn(g)
	if topo.Cyclic {
		t.Fatal("unexpected cycle")
	}
	want := [][]string{{"A"}, {"B", "C"}, {"D"}}
	if len(topo.Batches) != len(want) {
		t.Fatalf("batches = %d, want %d", len(topo.Batches), len(want))
	}
	for i, batch := range topo.Batches {
		if got := names(g, batch); !slices.Equal(got, want[i]) {
			t.Fatalf("batch %d = %v, want %v", i, got, want[i])
		}
	}
	if got := names(g, topo.Order); !slices.Equal(got, []string{"A", "B", "C", "D"}) {
		t.Fatalf("order = %v", got)
	}
}

func TestToposortTiesFollowInsertion(t *testing.T) {
	g := NewGraph()
	g.Add("Zeta")
	g.Add("Alpha")
	g.Add("Mid")
	topo := ToposortKahn(g)
	if got := names(g, topo.Order); !slices.Equal(got, []string{"Zeta", "Alpha", "Mid"}) {
		t.Fatalf("order = %v", got)
	}
}

func TestToposortCycle(t *testing.T) {
	g := NewGraph()
	x := g.Add("X")
	y := g.Add("Y")
	z := g.Add("Z")
	g.Depend(x, y)
	g.Depend(y, x)
	_ = z

	topo := ToposortKahn(g)
	if !topo.Cyclic {
		t.Fatal("cycle not detected")
	}
	if got := names(g, topo.Cycles); !slices.Equal(got, []string{"X", "Y"}) {
		t.Fatalf("cycles = %v", got)
	}
	if got := names(g, topo.Order); !slices.Equal(got, []string{"Z"}) {
		t.Fatalf("order = %v", got)
	}
}

func TestGraphAddIsIdempotent(t *testing.T) {
	g := NewGraph()
	a := g.Add("A")
	if again := g.Add("A"); again != a {
		t.Fatalf("re-add returned %d, want %d", again, a)
	}
	if g.Len() != 1 {
		t.Fatalf("Len = %d", g.Len())
	}
	if _, ok := g.ID("missing"); ok {
		t.Fatal("unknown name resolved")
	}
}
