package symbols

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"cxxbind/internal/cxxtypes"
)

// Table holds every record of a run. Single-valued tables are keyed by
// exposed name; Functions keeps all overloads of a declared name.
type Table struct {
	Macros    *orderedmap.OrderedMap[string, *Macro]
	Variables *orderedmap.OrderedMap[string, *Variable]
	Enums     *orderedmap.OrderedMap[string, *Enum]
	Classes   *orderedmap.OrderedMap[string, *Class]
	Functions *orderedmap.OrderedMap[string, []*Function]
	Typedefs  []*Typedef
	Types     *cxxtypes.Arena

	qualified map[string]*Class
}

func NewTable(types *cxxtypes.Arena) *Table {
	if types == nil {
		types = cxxtypes.NewArena()
	}
	return &Table{
		Macros:    orderedmap.New[string, *Macro](),
		Variables: orderedmap.New[string, *Variable](),
		Enums:     orderedmap.New[string, *Enum](),
		Classes:   orderedmap.New[string, *Class](),
		Functions: orderedmap.New[string, []*Function](),
		Types:     types,
		qualified: make(map[string]*Class),
	}
}

// PutClass stores c and returns the record it replaced, if any.
func (t *Table) PutClass(c *Class) *Class {
	prev, replaced := t.Classes.Set(c.Exposed, c)
	if replaced && prev != nil {
		delete(t.qualified, prev.Qualified())
	}
	t.qualified[c.Qualified()] = c
	if replaced {
		return prev
	}
	return nil
}

func (t *Table) Class(name string) (*Class, bool) {
	return t.Classes.Get(name)
}

// ClassByQualified finds a class by namespace-qualified native name.
func (t *Table) ClassByQualified(name string) (*Class, bool) {
	c, ok := t.qualified[name]
	return c, ok
}

// ResolveBase finds the class a base specifier of owner refers to. The
// spelling is tried as written, then relative to owner's enclosing
// namespaces, then by unqualified name.
func (t *Table) ResolveBase(owner *Class, base string) (*Class, bool) {
	base = cxxtypes.CppName(base)
	if c, ok := t.qualified[base]; ok {
		return c, true
	}
	for ns := owner.Namespace; ns != ""; ns = parentNamespace(ns) {
		if c, ok := t.qualified[ns+"::"+base]; ok {
			return c, true
		}
	}
	return t.Classes.Get(cxxtypes.RemoveNamespace(base))
}

func parentNamespace(ns string) string {
	for i := len(ns) - 1; i > 0; i-- {
		if ns[i] == ':' && ns[i-1] == ':' {
			return ns[:i-1]
		}
	}
	return ""
}

// IsClass reports whether plain is the plain name of a known class.
func (t *Table) IsClass(plain string) bool {
	_, ok := t.Classes.Get(plain)
	return ok
}

func (t *Table) IsEnum(plain string) bool {
	_, ok := t.Enums.Get(plain)
	return ok
}

// ClassList returns classes in table order.
func (t *Table) ClassList() []*Class {
	out := make([]*Class, 0, t.Classes.Len())
	for p := t.Classes.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

// FunctionGroups returns overload lists in order of first declaration.
func (t *Table) FunctionGroups() [][]*Function {
	out := make([][]*Function, 0, t.Functions.Len())
	for p := t.Functions.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

func (t *Table) MacroList() []*Macro {
	out := make([]*Macro, 0, t.Macros.Len())
	for p := t.Macros.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

func (t *Table) VariableList() []*Variable {
	out := make([]*Variable, 0, t.Variables.Len())
	for p := t.Variables.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

func (t *Table) EnumList() []*Enum {
	out := make([]*Enum, 0, t.Enums.Len())
	for p := t.Enums.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}
