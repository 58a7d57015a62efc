// Package inherit folds base-class members into derived classes. Classes
// are visited bases-first, so a class sees every member its bases have
// already inherited.
package inherit

import (
	"fmt"

	"cxxbind/internal/dag"
	"cxxbind/internal/diag"
	"cxxbind/internal/symbols"
)

// Result describes one Linearize pass.
type Result struct {
	// Order lists qualified class names in processing order.
	Order []string
	// Cyclic lists classes left un-merged because their bases form a cycle.
	Cyclic []string
	// Inherited counts method names and fields copied in this pass.
	Inherited int
}

// Linearize copies absent method names and absent fields from each direct
// base, in base declaration order, so the first declared base wins on a
// diamond. Unresolvable base names are removed from the class with a
// warning. Running it again changes nothing.
func Linearize(table *symbols.Table, r diag.Reporter) *Result {
	if r == nil {
		r = diag.NopReporter{}
	}
	classes := table.ClassList()
	g := dag.NewGraph()
	for _, c := range classes {
		g.Add(c.Qualified())
	}

	bases := make(map[*symbols.Class][]*symbols.Class, len(classes))
	for _, c := range classes {
		kept := c.Bases[:0]
		for _, name := range c.Bases {
			base, ok := table.ResolveBase(c, name)
			if !ok {
				diag.ReportWarning(r, diag.InhUnresolvedBase, c.Loc,
					fmt.Sprintf("base %s of %s is not a bound class; its members are not inherited", name, c.Qualified())).
					WithSymbol(c.Qualified()).
					Emit()
				continue
			}
			kept = append(kept, name)
			bases[c] = append(bases[c], base)
			from, _ := g.ID(base.Qualified())
			to, _ := g.ID(c.Qualified())
			g.Depend(to, from)
		}
		c.Bases = kept
	}

	topo := dag.ToposortKahn(g)
	res := &Result{Order: make([]string, 0, len(topo.Order))}
	for _, id := range topo.Order {
		name := g.Name(id)
		c, _ := table.ClassByQualified(name)
		res.Order = append(res.Order, name)
		for _, base := range bases[c] {
			res.Inherited += merge(c, base)
		}
	}
	for _, id := range topo.Cycles {
		name := g.Name(id)
		res.Cyclic = append(res.Cyclic, name)
		c, _ := table.ClassByQualified(name)
		diag.ReportWarning(r, diag.InhCycle, c.Loc,
			fmt.Sprintf("%s is part of an inheritance cycle; bases are not merged", name)).
			WithSymbol(name).
			Emit()
	}
	return res
}

func merge(c, base *symbols.Class) int {
	n := 0
	for p := base.Methods.Oldest(); p != nil; p = p.Next() {
		if c.HasMethod(p.Key) {
			continue
		}
		c.Methods.Set(p.Key, p.Value)
		n++
	}
	for _, f := range base.Fields {
		if c.HasField(f.Native) {
			continue
		}
		c.Fields = append(c.Fields, f)
		n++
	}
	return n
}
