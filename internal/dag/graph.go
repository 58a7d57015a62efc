// Package dag orders named nodes by their dependencies with Kahn's
// algorithm. Node ids follow insertion order, so ties inside one
// generation resolve to declaration order.
package dag

import (
	"fmt"

	"fortio.org/safecast"
)

type NodeID uint32

// Graph is a dependency graph over names. An edge from -> to means that
// from must be processed before to.
type Graph struct {
	Names   []string
	Edges   [][]NodeID // Edges[from] = []to
	Indeg   []int
	index   map[string]NodeID
	edgeSet map[[2]NodeID]struct{}
}

func NewGraph() *Graph {
	return &Graph{
		index:   make(map[string]NodeID),
		edgeSet: make(map[[2]NodeID]struct{}),
	}
}

// Add registers name and returns its id; re-adding returns the existing id.
func (g *Graph) Add(name string) NodeID {
	if id, ok := g.index[name]; ok {
		return id
	}
	id, err := safecast.Conv[NodeID](len(g.Names))
	if err != nil {
		panic(fmt.Errorf("node id overflow: %w", err))
	}
	g.Names = append(g.Names, name)
	g.Edges = append(g.Edges, nil)
	g.Indeg = append(g.Indeg, 0)
	g.index[name] = id
	return id
}

// ID looks up a previously added name.
func (g *Graph) ID(name string) (NodeID, bool) {
	id, ok := g.index[name]
	return id, ok
}

func (g *Graph) Name(id NodeID) string {
	return g.Names[int(id)]
}

func (g *Graph) Len() int {
	return len(g.Names)
}

// Depend records that node must come after dep. Duplicate edges are ignored
// so repeated bases do not inflate in-degrees.
func (g *Graph) Depend(node, dep NodeID) {
	key := [2]NodeID{dep, node}
	if _, ok := g.edgeSet[key]; ok {
		return
	}
	g.edgeSet[key] = struct{}{}
	g.Edges[int(dep)] = append(g.Edges[int(dep)], node)
	g.Indeg[int(node)]++
}
