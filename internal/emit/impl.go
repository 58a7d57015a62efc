package emit

import (
	"fmt"

	"cxxbind/internal/binder"
	"cxxbind/internal/convert"
	"cxxbind/internal/symbols"
)

const directives = "# cython: language_level=3, c_string_type=unicode, c_string_encoding=utf8"

func enumBody(e *symbols.Enum) []string {
	if len(e.Constants) == 0 {
		return []string{"pass"}
	}
	out := make([]string, 0, len(e.Constants))
	for _, c := range e.Constants {
		out = append(out, c.Exposed+" = "+c.Host())
	}
	return out
}

func hasEnums(list []entry) bool {
	for _, e := range list {
		if e.kind == EntryEnum {
			return true
		}
	}
	return false
}

type implementation struct {
	w   writer
	out *binder.Output

	globalsDone bool
}

func renderImplementation(out *binder.Output, list []entry, declModule string) (string, []string) {
	m := &implementation{out: out}
	imports := convert.NewImports()
	imports.Merge(out.Imports)
	if len(out.Classes) > 0 {
		imports.UseSTL("shared_ptr")
	}

	m.w.line(0, directives)
	m.w.line(0, "# distutils: language = c++")
	m.w.line(0, generatedHeader)
	m.w.blank()
	m.w.lines(0, imports.ImplementationLines(declModule))
	if hasEnums(list) {
		m.w.line(0, "from enum import IntEnum")
	}

	for _, e := range list {
		if e.kind > EntryMacro {
			m.globals()
		}
		switch e.kind {
		case EntryEnum:
			m.w.blank()
			m.w.line(0, fmt.Sprintf("class %s(IntEnum):", e.name))
			m.w.lines(1, enumBody(e.enum))
		case EntryMacro:
			m.w.blank()
			m.w.line(0, fmt.Sprintf("%s = cpp.%s", e.name, e.name))
		case EntryFunction:
			m.w.blank()
			m.w.lines(0, e.fn.Impl)
		case EntryClass:
			m.class(e.class)
		}
		m.w.id(e.name)
		if e.kind == EntryClass {
			m.w.ids = append(m.w.ids, memberIDs(e.class)...)
		}
	}
	m.globals()
	return m.w.String(), m.w.ids
}

func varLines(v *binder.Var) []string {
	lines := append([]string(nil), v.Getter.Impl...)
	if v.Setter != nil {
		lines = append(lines, v.Setter.Impl...)
	}
	return lines
}

// globals emits the class holding variables and macros, once.
func (m *implementation) globals() {
	if m.globalsDone || len(m.out.Vars) == 0 {
		m.globalsDone = true
		return
	}
	m.globalsDone = true
	m.w.blank()
	m.w.line(0, fmt.Sprintf("cdef class %s:", m.out.GlobalsClass))
	for i, v := range m.out.Vars {
		if i > 0 {
			m.w.line(0, "")
		}
		m.w.lines(1, varLines(v))
	}
	m.w.blank()
	m.w.line(0, fmt.Sprintf("%s = %s()", m.out.GlobalsName, m.out.GlobalsClass))
}

func (m *implementation) class(c *binder.Class) {
	m.w.blank()
	m.w.line(0, fmt.Sprintf("cdef class %s:", c.Class.Exposed))
	m.w.line(1, fmt.Sprintf("cdef shared_ptr[cpp.%s] thisptr", c.Class.Exposed))
	for _, f := range c.Fields {
		m.w.line(0, "")
		m.w.lines(1, varLines(f))
	}
	if c.Ctor != nil {
		m.w.line(0, "")
		m.w.lines(1, c.Ctor.Impl)
	}
	for _, b := range c.Methods {
		m.w.line(0, "")
		m.w.lines(1, b.Impl)
	}
}
