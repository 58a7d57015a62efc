package convert

import (
	"slices"

	"cxxbind/internal/cxxtypes"
)

// stlModules lists the containers the host dialect can cimport, in the
// order they are emitted.
var stlModules = []struct{ name, line string }{
	{"pair", "from libcpp.utility cimport pair"},
	{"map", "from libcpp.map cimport map"},
	{"set", "from libcpp.set cimport set"},
	{"list", "from libcpp.list cimport list"},
	{"vector", "from libcpp.vector cimport vector"},
	{"string", "from libcpp.string cimport string"},
	{"unordered_map", "from libcpp.unordered_map cimport unordered_map"},
	{"unordered_set", "from libcpp.unordered_set cimport unordered_set"},
	{"complex", "from libcpp.complex cimport complex"},
	{"unique_ptr", "from libcpp.memory cimport unique_ptr"},
	{"shared_ptr", "from libcpp.memory cimport shared_ptr"},
}

// Imports collects what generated code needs cimported. Converters set the
// module flags; STL names come from every type spelling that is bound.
type Imports struct {
	stl    map[string]bool
	NumPy  bool
	Deref  bool
	Malloc bool
	Move   bool
}

func NewImports() *Imports {
	return &Imports{stl: make(map[string]bool)}
}

// AddSTL records the std:: containers named in spelling. Names the dialect
// has no cimport for are ignored.
func (i *Imports) AddSTL(spelling string) {
	for _, name := range cxxtypes.STLNames(spelling) {
		i.UseSTL(name)
	}
}

func (i *Imports) UseSTL(name string) {
	for _, m := range stlModules {
		if m.name == name {
			i.stl[name] = true
			return
		}
	}
}

// STL lists the used containers in emission order.
func (i *Imports) STL() []string {
	var out []string
	for _, m := range stlModules {
		if i.stl[m.name] {
			out = append(out, m.name)
		}
	}
	return out
}

func (i *Imports) Merge(o *Imports) {
	if o == nil {
		return
	}
	for name := range o.stl {
		i.stl[name] = true
	}
	i.NumPy = i.NumPy || o.NumPy
	i.Deref = i.Deref || o.Deref
	i.Malloc = i.Malloc || o.Malloc
	i.Move = i.Move || o.Move
}

func (i *Imports) stlLines() []string {
	out := []string{"from libcpp cimport bool"}
	for _, m := range stlModules {
		if i.stl[m.name] {
			out = append(out, m.line)
		}
	}
	return out
}

// DeclarationLines are the cimports of the declarations document.
func (i *Imports) DeclarationLines() []string {
	return i.stlLines()
}

// ImplementationLines are the cimports of the implementation document;
// declarations is the module name the declarations document is cimported
// under as "cpp".
func (i *Imports) ImplementationLines(declarations string) []string {
	out := slices.Clone(i.stlLines())
	if i.NumPy {
		out = append(out, "cimport numpy as np", "import numpy as np")
	}
	if i.Deref {
		out = append(out, "from cython.operator cimport dereference as deref")
	}
	if i.Malloc {
		out = append(out, "from libc.stdlib cimport malloc")
	}
	if i.Move {
		out = append(out, "from libcpp.utility cimport move")
	}
	return append(out, "cimport "+declarations+" as cpp")
}
