// Package binder turns resolved symbols into host bindings: one converter
// per argument and result, plus the generated implementation and stub
// text. Symbols whose types cannot cross the boundary are skipped with a
// warning.
package binder

import (
	"fmt"

	"cxxbind/internal/convert"
	"cxxbind/internal/cxxtypes"
	"cxxbind/internal/diag"
	"cxxbind/internal/errs"
	"cxxbind/internal/overload"
	"cxxbind/internal/symbols"
)

const DefaultGlobals = "cvar"

type Options struct {
	Selector *convert.Selector
	Policy   overload.Policy
	// Globals names the instance holding global variables and macros;
	// its class is the name with a leading underscore.
	Globals string
	// HostName maps exposed function, method and field names to host
	// names. Defaults to camel-to-snake conversion.
	HostName func(string) string
	Reporter diag.Reporter
}

type binder struct {
	table *symbols.Table
	opts  Options
	out   *Output
}

// Bind binds every record of table. Inheritance must already be
// linearized and renames applied.
func Bind(table *symbols.Table, opts Options) *Output {
	if opts.Selector == nil {
		opts.Selector = convert.NewSelector()
	}
	if opts.Globals == "" {
		opts.Globals = DefaultGlobals
	}
	if opts.HostName == nil {
		opts.HostName = cxxtypes.CamelToSnake
	}
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	b := &binder{
		table: table,
		opts:  opts,
		out: &Output{
			Table:        table,
			GlobalsClass: "_" + opts.Globals,
			GlobalsName:  opts.Globals,
			Imports:      convert.NewImports(),
		},
	}
	b.globals()
	b.functions()
	for _, c := range table.ClassList() {
		b.out.Classes = append(b.out.Classes, b.class(c))
	}
	return b.out
}

func (b *binder) selectType(id cxxtypes.TypeID, role convert.Role) (*convert.Conversion, error) {
	return b.opts.Selector.Select(b.table.Types, b.table, id, role)
}

func (b *binder) use(bd *Binding) {
	for _, c := range bd.conversions() {
		c.AddImports(b.out.Imports)
	}
}

func (b *binder) warn(code diag.Code, loc symbols.Symbol, format string, args ...any) {
	diag.ReportWarning(b.opts.Reporter, code, loc.Loc, fmt.Sprintf(format, args...)).
		WithSymbol(loc.Qualified()).
		Emit()
}

func (b *binder) params(args []*symbols.Variable) ([]Param, error) {
	defaults := trailingDefaults(args)
	out := make([]Param, 0, len(args))
	for i, a := range args {
		conv, err := b.selectType(a.Type, convert.RoleParam)
		if err != nil {
			return nil, errs.Wrapf(err, "argument %s", a.Exposed)
		}
		out = append(out, Param{Name: a.Exposed, Conv: conv, Default: defaults[i]})
	}
	return out, nil
}

func (b *binder) bindFunction(kind Kind, owner string, f *symbols.Function) (*Binding, error) {
	params, err := b.params(f.Args)
	if err != nil {
		return nil, err
	}
	bd := &Binding{
		Kind:     kind,
		Name:     f.Exposed,
		HostName: b.hostName(f.Exposed),
		Owner:    owner,
		Params:   params,
		Copy:     true,
		Function: f,
	}
	if kind == KindConstructor {
		bd.HostName = "__init__"
	} else {
		ret, err := b.selectType(f.Result, convert.RoleReturn)
		if err != nil {
			return nil, errs.Wrap(err, "result")
		}
		bd.Return = ret
	}
	bd.render()
	return bd, nil
}

// hostScope tracks the host names taken inside one generated namespace:
// the free functions, one class, or the globals instance. Distinct native
// names can meet after HostName (getValue and get_value); the first
// binding keeps the name.
type hostScope struct {
	b     *binder
	taken map[string]string // host name -> qualified native name
}

func (b *binder) scope() *hostScope {
	return &hostScope{b: b, taken: make(map[string]string)}
}

func (s *hostScope) claim(host string, sym *symbols.Symbol) bool {
	kept, taken := s.taken[host]
	if !taken {
		s.taken[host] = sym.Qualified()
		return true
	}
	err := &errs.NameConflictError{Name: host, Kept: kept, Dropped: sym.Qualified()}
	diag.ReportWarning(s.b.opts.Reporter, diag.BindHostConflict, sym.Loc,
		fmt.Sprintf("skipping %s %s: %v", sym.Kind, sym.Qualified(), err)).
		WithSymbol(sym.Qualified()).
		Emit()
	return false
}

func (b *binder) hostName(exposed string) string {
	if len(exposed) > 4 && exposed[:2] == "__" && exposed[len(exposed)-2:] == "__" {
		return exposed
	}
	return b.opts.HostName(exposed)
}

func (b *binder) functions() {
	bind := func(f *symbols.Function) (*Binding, error) {
		return b.bindFunction(KindFunction, "", f)
	}
	names := b.scope()
	for _, s := range overload.Resolve(overload.Functions(b.table), b.opts.Policy, bind, b.opts.Reporter) {
		if !names.claim(s.Binding.HostName, &s.Symbol.Symbol) {
			continue
		}
		b.use(s.Binding)
		b.out.Functions = append(b.out.Functions, s.Binding)
	}
}

func (b *binder) class(c *symbols.Class) *Class {
	bc := &Class{Class: c}
	owner := c.Exposed
	// methods and properties share the class namespace
	names := b.scope()

	bindMethod := func(m *symbols.Method) (*Binding, error) {
		kind := KindMethod
		if m.Static {
			kind = KindStaticMethod
		}
		return b.bindFunction(kind, owner, &m.Function)
	}
	for _, s := range overload.Resolve(overload.Methods(c), b.opts.Policy, bindMethod, b.opts.Reporter) {
		if !names.claim(s.Binding.HostName, &s.Symbol.Symbol) {
			continue
		}
		b.use(s.Binding)
		bc.Methods = append(bc.Methods, s.Binding)
	}

	bindCtor := func(m *symbols.Method) (*Binding, error) {
		return b.bindFunction(KindConstructor, owner, &m.Function)
	}
	ctors := overload.Resolve(overload.Constructors(c), overload.PerExposedName, bindCtor, b.opts.Reporter)
	if len(ctors) > 0 {
		bc.Ctor = ctors[0].Binding
		b.use(bc.Ctor)
		b.out.Imports.UseSTL("shared_ptr")
	} else if !c.Abstract {
		b.warn(diag.BindNoConstructor, c.Symbol, "%s has no bindable constructor; instances come only from native results", c.Qualified())
	}

	for _, f := range c.Fields {
		host := b.hostName(f.Exposed)
		if !names.claim(host, &f.Symbol) {
			continue
		}
		if v := b.variable(f, owner, "self.thisptr.get()", host); v != nil {
			bc.Fields = append(bc.Fields, v)
		}
	}
	return bc
}

// variable binds a getter and, unless the variable is const, a setter.
func (b *binder) variable(v *symbols.Variable, owner, prefix, hostName string) *Var {
	ret, err := b.selectType(v.Type, convert.RoleReturn)
	if err != nil {
		b.warn(diag.BindUnsupportedType, v.Symbol, "skipping %s: %v", v.Qualified(), err)
		return nil
	}
	bv := &Var{Name: v.Exposed, HostName: hostName, Variable: v}
	bv.Getter = &Binding{Kind: KindGetter, Name: v.Exposed, HostName: hostName, Owner: owner, Return: ret}
	bv.Getter.renderGetter(prefix, v.Exposed, "")
	b.use(bv.Getter)

	if v.Const {
		return bv
	}
	param, err := b.selectType(v.Type, convert.RoleParam)
	if err != nil {
		b.warn(diag.BindUnsupportedType, v.Symbol, "%s is read-only: %v", v.Qualified(), err)
		return bv
	}
	bv.Setter = &Binding{
		Kind:     KindSetter,
		Name:     v.Exposed,
		HostName: hostName,
		Owner:    owner,
		Params:   []Param{{Name: "value", Conv: param}},
		Copy:     true,
	}
	bv.Setter.renderSetter(prefix, v.Exposed)
	b.use(bv.Setter)
	return bv
}

func (b *binder) globals() {
	owner := b.out.GlobalsClass
	names := b.scope()
	for _, v := range b.table.VariableList() {
		if !names.claim(v.Exposed, &v.Symbol) {
			continue
		}
		if bv := b.variable(v, owner, "cpp", v.Exposed); bv != nil {
			b.out.Vars = append(b.out.Vars, bv)
		}
	}
	for _, m := range b.table.MacroList() {
		if !names.claim(m.Exposed, &m.Symbol) {
			continue
		}
		bv := &Var{Name: m.Exposed, HostName: m.Exposed, Macro: m}
		bv.Getter = &Binding{Kind: KindGetter, Name: m.Exposed, HostName: m.Exposed, Owner: owner}
		bv.Getter.renderGetter("cpp", m.Exposed, m.Literal.HostType())
		b.out.Vars = append(b.out.Vars, bv)
	}
}
