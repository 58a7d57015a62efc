package decl

import "fmt"

// Problem is one structural defect of a stream.
type Problem struct {
	Loc     Loc
	Message string
}

// Validate checks that every handle points into the type table. It does not
// stop at the first defect.
func (s *Stream) Validate() []Problem {
	var out []Problem
	check := func(h Handle, loc Loc, what string) {
		if h != NoHandle && int(h) > len(s.Types) {
			out = append(out, Problem{Loc: loc, Message: fmt.Sprintf("%s: dangling type handle %d", what, h)})
		}
	}
	for i := range s.Types {
		rec := &s.Types[i]
		what := fmt.Sprintf("type %q", rec.Spelling)
		check(rec.Canonical, Loc{}, what)
		check(rec.Pointee, Loc{}, what)
		check(rec.Element, Loc{}, what)
		for _, a := range rec.TemplateArgs {
			check(a, Loc{}, what)
		}
	}
	var walk func(ds []Decl)
	walk = func(ds []Decl) {
		for i := range ds {
			d := &ds[i]
			what := fmt.Sprintf("%s %q", d.Kind, d.Name)
			check(d.Type, d.Loc, what)
			check(d.Result, d.Loc, what)
			for _, p := range d.Params {
				check(p.Type, d.Loc, what)
			}
			walk(d.Members)
		}
	}
	walk(s.Decls)
	return out
}
