package emit

import (
	"cxxbind/internal/binder"
	"cxxbind/internal/symbols"
)

// EntryKind orders the exposed identifiers of a module. Every document
// emits entries in this order.
type EntryKind uint8

const (
	EntryEnum EntryKind = iota
	EntryMacro
	EntryVariable
	EntryFunction
	EntryClass
)

// entry is one top-level exposed identifier with the records needed to
// render it in any document.
type entry struct {
	kind      EntryKind
	name      string
	file      string
	namespace string

	enum  *symbols.Enum
	macro *symbols.Macro
	v     *binder.Var
	fn    *binder.Binding
	class *binder.Class
}

func entries(out *binder.Output) []entry {
	var list []entry
	for _, e := range out.Table.EnumList() {
		list = append(list, entry{kind: EntryEnum, name: e.Exposed, file: e.File, namespace: e.Namespace, enum: e})
	}
	for _, v := range out.Vars {
		if v.Macro != nil {
			list = append(list, entry{kind: EntryMacro, name: v.Name, file: v.Macro.File, macro: v.Macro, v: v})
		}
	}
	for _, v := range out.Vars {
		if v.Variable != nil {
			list = append(list, entry{kind: EntryVariable, name: v.Name, file: v.Variable.File, namespace: v.Variable.Namespace, v: v})
		}
	}
	for _, f := range out.Functions {
		list = append(list, entry{kind: EntryFunction, name: f.Name, file: f.Function.File, namespace: f.Function.Namespace, fn: f})
	}
	for _, c := range out.Classes {
		list = append(list, entry{kind: EntryClass, name: c.Class.Exposed, file: c.Class.File, namespace: c.Class.Namespace, class: c})
	}
	return list
}

// memberIDs lists a class's exposed members: fields, then methods.
func memberIDs(c *binder.Class) []string {
	out := make([]string, 0, len(c.Fields)+len(c.Methods))
	for _, f := range c.Fields {
		out = append(out, c.Class.Exposed+"."+f.Name)
	}
	for _, m := range c.Methods {
		out = append(out, c.Class.Exposed+"."+m.Name)
	}
	return out
}
