package emit

import (
	"fmt"
	"strings"

	"cxxbind/internal/binder"
	"cxxbind/internal/convert"
	"cxxbind/internal/cxxtypes"
	"cxxbind/internal/symbols"
)

// declType spells a declaration of name with type id in the declarations
// dialect. Arrays put their extent after the name.
func declType(types *cxxtypes.Arena, id cxxtypes.TypeID, name string) string {
	n := types.Get(id)
	if n == nil {
		return "void " + name
	}
	if n.Kind == cxxtypes.KindConstantArray && n.Count >= 0 {
		if elem := types.Get(n.Elem); elem != nil {
			return fmt.Sprintf("%s %s[%d]", elem.Name, name, n.Count)
		}
	}
	if name == "" {
		return n.Name
	}
	return n.Name + " " + name
}

func declArgs(types *cxxtypes.Arena, args []*symbols.Variable) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, declType(types, a.Type, a.Exposed))
	}
	return strings.Join(parts, ", ")
}

func externHeader(file, namespace string) string {
	if namespace == "" {
		return fmt.Sprintf("cdef extern from %q:", file)
	}
	return fmt.Sprintf("cdef extern from %q namespace %q:", file, namespace)
}

type declarations struct {
	w     writer
	types *cxxtypes.Arena
	out   *binder.Output

	// open extern block; blocks merge while consecutive entries share it
	file, namespace string
	open            bool
}

func (d *declarations) block(file, namespace string) {
	if d.open && d.file == file && d.namespace == namespace {
		return
	}
	d.w.blank()
	d.w.line(0, externHeader(file, namespace))
	d.file, d.namespace, d.open = file, namespace, true
}

func renderDeclarations(out *binder.Output, list []entry, opts Options) (string, []string) {
	d := &declarations{types: out.Table.Types, out: out}
	imports := convert.NewImports()
	imports.Merge(out.Imports)
	for _, td := range out.Table.Typedefs {
		if n := d.types.Get(td.UnderlyingType); n != nil {
			imports.AddSTL(n.CppName)
		}
	}
	if len(out.Classes) > 0 {
		imports.UseSTL("shared_ptr")
	}

	d.w.line(0, generatedHeader)
	d.w.lines(0, imports.DeclarationLines())
	if len(opts.Extra) > 0 {
		d.w.blank()
		d.w.lines(0, opts.Extra)
	}

	d.typedefs()
	for _, e := range list {
		d.block(e.file, e.namespace)
		switch e.kind {
		case EntryEnum:
			d.enum(e.enum)
		case EntryMacro:
			d.macro(e.macro)
		case EntryVariable:
			d.w.line(1, declType(d.types, e.v.Variable.Type, e.v.Variable.Decl()))
		case EntryFunction:
			d.function(1, e.fn.Function, false)
		case EntryClass:
			d.class(e.class)
		}
		d.w.id(e.name)
		if e.kind == EntryClass {
			d.w.ids = append(d.w.ids, memberIDs(e.class)...)
		}
	}
	return d.w.String(), d.w.ids
}

// typedefs go first so every later declaration can use them.
func (d *declarations) typedefs() {
	for _, td := range d.out.Table.Typedefs {
		d.block(td.File, td.Namespace)
		underlying := td.Underlying
		if n := d.types.Get(td.UnderlyingType); n != nil {
			underlying = n.Name
		}
		d.w.line(1, fmt.Sprintf("ctypedef %s %s", underlying, td.Decl()))
	}
}

func (d *declarations) enum(e *symbols.Enum) {
	d.w.line(1, fmt.Sprintf("enum %s:", e.Decl()))
	if len(e.Constants) == 0 {
		d.w.line(2, "pass")
		return
	}
	for _, c := range e.Constants {
		if c.Exposed == c.Name {
			d.w.line(2, c.Name)
		} else {
			d.w.line(2, fmt.Sprintf("%s %q", c.Exposed, c.Name))
		}
	}
}

// macro declares a macro with the narrowest dialect form its literal
// allows: integers as anonymous enum constants.
func (d *declarations) macro(m *symbols.Macro) {
	switch m.Literal.Kind {
	case symbols.LitFloat:
		d.w.line(1, "double "+m.Decl())
	case symbols.LitString:
		d.w.line(1, "const char* "+m.Decl())
	default:
		d.w.line(1, "cdef enum:")
		d.w.line(2, m.Decl())
	}
}

func (d *declarations) function(depth int, f *symbols.Function, static bool) {
	if static {
		d.w.line(depth, "@staticmethod")
	}
	d.w.line(depth, fmt.Sprintf("%s(%s) except +", declType(d.types, f.Result, f.Decl()), declArgs(d.types, f.Args)))
}

func (d *declarations) class(c *binder.Class) {
	d.w.line(1, fmt.Sprintf("cppclass %s:", c.Class.Decl()))
	body := 0
	for _, f := range c.Fields {
		d.w.line(2, declType(d.types, f.Variable.Type, f.Variable.Decl()))
		body++
	}
	if c.Ctor != nil {
		d.w.line(2, fmt.Sprintf("%s(%s) except +", c.Class.Exposed, declArgs(d.types, c.Ctor.Function.Args)))
		body++
	}
	for _, m := range c.Methods {
		d.function(2, m.Function, m.Kind == binder.KindStaticMethod)
		body++
	}
	if body == 0 {
		d.w.line(2, "pass")
	}
}
