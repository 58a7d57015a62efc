package symbols

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"cxxbind/internal/cxxtypes"
	"cxxbind/internal/source"
)

// Class is a class, struct or union. Methods are keyed by exposed name and
// keep overloads in declaration order; Bases keep declaration order.
type Class struct {
	Symbol
	Record  RecordKind
	Type    cxxtypes.TypeID
	Methods *orderedmap.OrderedMap[string, []*Method]
	Ctors   []*Method
	Fields  []*Variable
	Bases   []string

	Abstract bool
	// DefaultConstructible is true while nothing rules out the implicit
	// default constructor.
	DefaultConstructible bool
}

func NewClass(name, namespace string, loc source.Location) *Class {
	return &Class{
		Symbol:               newSymbol(SymbolClass, name, namespace, loc),
		Methods:              orderedmap.New[string, []*Method](),
		DefaultConstructible: true,
	}
}

// AddMethod files m under its exposed name.
func (c *Class) AddMethod(m *Method) {
	list, _ := c.Methods.Get(m.Exposed)
	c.Methods.Set(m.Exposed, append(list, m))
}

func (c *Class) HasMethod(name string) bool {
	_, ok := c.Methods.Get(name)
	return ok
}

func (c *Class) Overloads(name string) []*Method {
	list, _ := c.Methods.Get(name)
	return list
}

// MethodNames lists exposed method names in first-declaration order.
func (c *Class) MethodNames() []string {
	out := make([]string, 0, c.Methods.Len())
	for p := c.Methods.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// EachMethod visits every overload, grouped by name, in order.
func (c *Class) EachMethod(fn func(*Method)) {
	for p := c.Methods.Oldest(); p != nil; p = p.Next() {
		for _, m := range p.Value {
			fn(m)
		}
	}
}

func (c *Class) HasField(name string) bool {
	for _, f := range c.Fields {
		if f.Native == name {
			return true
		}
	}
	return false
}

// AddBase records a direct base once, keeping the first position.
func (c *Class) AddBase(name string) bool {
	for _, b := range c.Bases {
		if b == name {
			return false
		}
	}
	c.Bases = append(c.Bases, name)
	return true
}

// Rekey rebuilds Methods so every key equals the exposed name of the
// overloads under it. Needed after renames; order of first appearance is
// kept.
func (c *Class) Rekey() {
	next := orderedmap.New[string, []*Method]()
	for p := c.Methods.Oldest(); p != nil; p = p.Next() {
		for _, m := range p.Value {
			list, _ := next.Get(m.Exposed)
			next.Set(m.Exposed, append(list, m))
		}
	}
	c.Methods = next
}
