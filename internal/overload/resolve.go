package overload

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"cxxbind/internal/diag"
	"cxxbind/internal/source"
	"cxxbind/internal/symbols"
)

// Candidate is one overload offered to Resolve.
type Candidate[T any] struct {
	Symbol    T
	Declared  string // native name, grouping key under FirstBindable
	Exposed   string // host name, grouping key under PerExposedName
	Qualified string
	Signature string
	Loc       source.Location
}

// Survivor is the candidate kept for a group together with its binding.
type Survivor[T, B any] struct {
	Candidate[T]
	Binding B
	// Dropped counts later candidates of the group that were ignored.
	Dropped int
}

func (c *Candidate[T]) key(p Policy) string {
	if p == FirstBindable {
		return c.Declared
	}
	return c.Exposed
}

// Resolve groups cands by policy and keeps the first candidate of each
// group that bind accepts. Candidates bind refuses are reported as
// unsupported; candidates after the survivor are reported as ignored.
// Groups keep the order of their first candidate.
func Resolve[T, B any](cands []Candidate[T], policy Policy, bind func(T) (B, error), r diag.Reporter) []Survivor[T, B] {
	if r == nil {
		r = diag.NopReporter{}
	}
	groups := orderedmap.New[string, []int]()
	for i := range cands {
		k := cands[i].key(policy)
		list, _ := groups.Get(k)
		groups.Set(k, append(list, i))
	}

	out := make([]Survivor[T, B], 0, groups.Len())
	for p := groups.Oldest(); p != nil; p = p.Next() {
		var kept *Survivor[T, B]
		for _, i := range p.Value {
			c := &cands[i]
			if kept != nil {
				kept.Dropped++
				diag.ReportWarning(r, diag.BindIgnoredOverload, c.Loc,
					fmt.Sprintf("ignoring overload %s %s", c.Qualified, c.Signature)).
					WithSymbol(c.Qualified).
					WithNote(kept.Loc, "bound overload: "+kept.Signature).
					Emit()
				continue
			}
			b, err := bind(c.Symbol)
			if err != nil {
				diag.ReportWarning(r, diag.BindUnsupportedType, c.Loc,
					fmt.Sprintf("skipping %s %s: %v", c.Qualified, c.Signature, err)).
					WithSymbol(c.Qualified).
					Emit()
				continue
			}
			out = append(out, Survivor[T, B]{Candidate: *c, Binding: b})
			kept = &out[len(out)-1]
		}
	}
	return out
}

// Functions flattens the table's overload lists in declaration order.
func Functions(t *symbols.Table) []Candidate[*symbols.Function] {
	var out []Candidate[*symbols.Function]
	for _, group := range t.FunctionGroups() {
		for _, f := range group {
			out = append(out, Candidate[*symbols.Function]{
				Symbol:    f,
				Declared:  f.Native,
				Exposed:   f.Exposed,
				Qualified: f.Qualified(),
				Signature: f.Signature,
				Loc:       f.Loc,
			})
		}
	}
	return out
}

// Methods lists a class's methods, overloads grouped as stored.
func Methods(c *symbols.Class) []Candidate[*symbols.Method] {
	var out []Candidate[*symbols.Method]
	c.EachMethod(func(m *symbols.Method) {
		out = append(out, methodCandidate(m))
	})
	return out
}

func methodCandidate(m *symbols.Method) Candidate[*symbols.Method] {
	return Candidate[*symbols.Method]{
		Symbol:    m,
		Declared:  m.Native,
		Exposed:   m.Exposed,
		Qualified: m.Qualified(),
		Signature: m.Signature,
		Loc:       m.Loc,
	}
}

// Constructors lists the constructors a class offers to the host. Abstract
// classes offer none; a class without declared constructors that is still
// default constructible offers a synthetic one. All candidates share one
// group, so at most one survives.
func Constructors(c *symbols.Class) []Candidate[*symbols.Method] {
	if c.Abstract {
		return nil
	}
	ctors := c.Ctors
	if len(ctors) == 0 && c.DefaultConstructible {
		ctors = []*symbols.Method{Synthetic(c)}
	}
	out := make([]Candidate[*symbols.Method], 0, len(ctors))
	for _, m := range ctors {
		cand := methodCandidate(m)
		cand.Declared = c.Native
		cand.Exposed = c.Native
		out = append(out, cand)
	}
	return out
}

// Synthetic builds the implicit zero-argument constructor of c.
func Synthetic(c *symbols.Class) *symbols.Method {
	m := &symbols.Method{}
	m.Kind = symbols.SymbolConstructor
	m.Native = c.Native
	m.Exposed = c.Native
	m.Namespace = c.Qualified()
	m.File = c.File
	m.Loc = c.Loc
	m.Signature = "void ()"
	return m
}
