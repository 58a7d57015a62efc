package binder

import (
	"cxxbind/internal/convert"
	"cxxbind/internal/symbols"
)

// Kind is the host construct a binding produces.
type Kind uint8

const (
	KindFunction Kind = iota
	KindMethod
	KindStaticMethod
	KindConstructor
	KindGetter
	KindSetter
)

func (k Kind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindStaticMethod:
		return "static_method"
	case KindConstructor:
		return "constructor"
	case KindGetter:
		return "getter"
	case KindSetter:
		return "setter"
	default:
		return "function"
	}
}

// Param is one bound argument.
type Param struct {
	Name    string
	Conv    *convert.Conversion
	Default *symbols.Literal // only set on trailing defaulted parameters
}

// Binding is one generated host entry point.
type Binding struct {
	Kind     Kind
	Name     string // exposed identifier
	HostName string // name in the implementation and stub
	Owner    string // host class, empty for free functions
	Params   []Param
	Return   *convert.Conversion // nil for constructors, setters and macros
	Copy     bool                // pointer results are copied, not aliased

	Impl []string
	Stub []string

	// Function is set for functions, methods and constructors.
	Function *symbols.Function
}

// Converters lists converter names: parameters first, then the result.
func (b *Binding) Converters() []string {
	out := make([]string, 0, len(b.Params)+1)
	for _, p := range b.Params {
		out = append(out, p.Conv.Name())
	}
	if b.Return != nil {
		out = append(out, b.Return.Name())
	}
	return out
}

func (b *Binding) conversions() []*convert.Conversion {
	out := make([]*convert.Conversion, 0, len(b.Params)+1)
	for _, p := range b.Params {
		out = append(out, p.Conv)
	}
	if b.Return != nil {
		out = append(out, b.Return)
	}
	return out
}

// Var is a global variable, macro or field exposed as a property.
type Var struct {
	Name     string
	HostName string
	Getter   *Binding
	Setter   *Binding // nil when read-only

	Variable *symbols.Variable // nil for macros
	Macro    *symbols.Macro
}

// Class groups the bindings of one class.
type Class struct {
	Class   *symbols.Class
	Ctor    *Binding // nil when the class cannot be constructed from the host
	Methods []*Binding
	Fields  []*Var
}

// Output is everything the emitter needs.
type Output struct {
	Table *symbols.Table
	// GlobalsClass is the host class holding global variables and macros;
	// GlobalsName is its single instance.
	GlobalsClass string
	GlobalsName  string

	Vars      []*Var
	Functions []*Binding
	Classes   []*Class
	Imports   *convert.Imports
}

// Count returns the number of bindings produced.
func (o *Output) Count() int {
	n := len(o.Functions)
	for _, v := range o.Vars {
		n += v.count()
	}
	for _, c := range o.Classes {
		n += len(c.Methods)
		if c.Ctor != nil {
			n++
		}
		for _, f := range c.Fields {
			n += f.count()
		}
	}
	return n
}

func (v *Var) count() int {
	if v.Setter != nil {
		return 2
	}
	return 1
}
