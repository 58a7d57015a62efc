package symbols

import (
	"fmt"
	"strings"

	"cxxbind/internal/cxxtypes"
	"cxxbind/internal/decl"
	"cxxbind/internal/diag"
	"cxxbind/internal/errs"
)

// Builder populates a Table from a declaration stream. Types are resolved
// into the table's arena as records are built.
type Builder struct {
	stream   *decl.Stream
	table    *Table
	reporter diag.Reporter
}

// Build creates every record of s in stream order.
func Build(s *decl.Stream, types *cxxtypes.Arena, r diag.Reporter) *Table {
	if r == nil {
		r = diag.NopReporter{}
	}
	b := &Builder{stream: s, table: NewTable(types), reporter: r}
	for i := range s.Decls {
		b.topLevel(&s.Decls[i])
	}
	return b.table
}

func (b *Builder) resolve(h decl.Handle) cxxtypes.TypeID {
	return b.table.Types.Resolve(b.stream.Native(h))
}

func (b *Builder) warn(code diag.Code, d *decl.Decl, symbol, format string, args ...any) {
	diag.ReportWarning(b.reporter, code, d.Loc.Location(), fmt.Sprintf(format, args...)).
		WithSymbol(symbol).
		Emit()
}

func (b *Builder) topLevel(d *decl.Decl) {
	switch d.Kind {
	case decl.KindMacro:
		b.macro(d)
	case decl.KindVariable:
		b.variable(d, d.Namespace)
	case decl.KindFunction:
		b.function(d)
	case decl.KindTypedef:
		b.typedef(d, d.Namespace)
	case decl.KindEnum:
		b.enum(d, d.Namespace)
	case decl.KindClass:
		b.class(d, d.Namespace)
	default:
		b.warn(diag.FrontUnexpected, d, d.Name, "unexpected %s declaration %q at top level", d.Kind, d.Name)
	}
}

// conflict reports that a later declaration replaced an earlier one.
func (b *Builder) conflict(d *decl.Decl, kind SymbolKind, kept, dropped string) {
	err := &errs.NameConflictError{Name: d.Name, Kept: kept, Dropped: dropped}
	diag.ReportWarning(b.reporter, diag.SymNameConflict, d.Loc.Location(),
		fmt.Sprintf("duplicate %s, later declaration wins: %v", kind, err)).
		WithSymbol(kept).
		Emit()
}

func (b *Builder) macro(d *decl.Decl) {
	lit, ok := ParseTokens(d.Tokens)
	if !ok {
		return
	}
	m := &Macro{Symbol: newSymbol(SymbolMacro, d.Name, "", d.Loc.Location()), Literal: lit}
	if prev, replaced := b.table.Macros.Set(m.Exposed, m); replaced {
		b.conflict(d, SymbolMacro, m.Qualified(), prev.Qualified())
	}
}

func (b *Builder) variable(d *decl.Decl, namespace string) {
	if d.IsOutOfLine {
		return
	}
	if d.Namespace != "" {
		namespace = d.Namespace
	}
	v := &Variable{
		Symbol: newSymbol(SymbolVariable, d.Name, namespace, d.Loc.Location()),
		Type:   b.resolve(d.Type),
	}
	v.Const = d.IsConst || b.isConst(v.Type)
	if prev, replaced := b.table.Variables.Set(v.Exposed, v); replaced {
		b.conflict(d, SymbolVariable, v.Qualified(), prev.Qualified())
	}
}

// isConst checks the canonical form, so a typedef of a const type counts.
func (b *Builder) isConst(id cxxtypes.TypeID) bool {
	n := b.table.Types.Get(b.table.Types.Canonical(id))
	return n != nil && n.Const
}

func (b *Builder) params(d *decl.Decl, owner string) []*Variable {
	out := make([]*Variable, 0, len(d.Params))
	for i, p := range d.Params {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		v := &Variable{
			Symbol: newSymbol(SymbolVariable, name, "", d.Loc.Location()),
			Type:   b.resolve(p.Type),
		}
		if len(p.Default) > 0 {
			if lit, ok := ParseTokens(p.Default); ok {
				v.Default = &lit
			} else {
				diag.ReportInfo(b.reporter, diag.SymBadDefault, d.Loc.Location(),
					fmt.Sprintf("default value of %q is not a literal; treated as required", name)).
					WithSymbol(owner).
					Emit()
			}
		}
		out = append(out, v)
	}
	return out
}

func (b *Builder) signature(d *decl.Decl) string {
	if d.Signature != "" {
		return d.Signature
	}
	result := "void"
	if t, ok := b.stream.Type(d.Result); ok {
		result = t.Spelling()
	}
	parts := make([]string, 0, len(d.Params))
	for _, p := range d.Params {
		if t, ok := b.stream.Type(p.Type); ok {
			parts = append(parts, t.Spelling())
		}
	}
	return result + " (" + strings.Join(parts, ", ") + ")"
}

func (b *Builder) newFunction(kind SymbolKind, d *decl.Decl, namespace string) Function {
	f := Function{
		Symbol:    newSymbol(kind, d.Name, namespace, d.Loc.Location()),
		Result:    b.resolve(d.Result),
		Signature: b.signature(d),
	}
	f.Args = b.params(d, f.Qualified())
	return f
}

func (b *Builder) function(d *decl.Decl) {
	if IsOperatorName(d.Name) {
		// operator overloading is bound on methods only
		return
	}
	f := b.newFunction(SymbolFunction, d, d.Namespace)
	fn := &f
	list, _ := b.table.Functions.Get(fn.Native)
	b.table.Functions.Set(fn.Native, append(list, fn))
}

func (b *Builder) typedef(d *decl.Decl, namespace string) {
	if d.Namespace != "" {
		namespace = d.Namespace
	}
	if IsHostKeyword(d.Name) {
		b.warn(diag.SymKeywordRecord, d, d.Name, "typedef %q collides with a host keyword", d.Name)
		return
	}
	id := b.resolve(d.Type)
	underlying := ""
	if t, ok := b.stream.Type(d.Type); ok {
		underlying = cxxtypes.RemoveNamespace(cxxtypes.CppName(t.Spelling()))
	}
	if underlying == d.Name {
		// typedef struct X X;
		return
	}
	b.table.Typedefs = append(b.table.Typedefs, &Typedef{
		Symbol:         newSymbol(SymbolTypedef, d.Name, namespace, d.Loc.Location()),
		Underlying:     underlying,
		UnderlyingType: id,
	})
}

func (b *Builder) enum(d *decl.Decl, namespace string) {
	if d.Namespace != "" {
		namespace = d.Namespace
	}
	if d.IsAnonymous || d.Name == "" {
		b.warn(diag.SymAnonymous, d, namespace, "anonymous enum skipped")
		return
	}
	if IsHostKeyword(d.Name) {
		b.warn(diag.SymKeywordRecord, d, d.Name, "enum %q collides with a host keyword", d.Name)
		return
	}
	e := &Enum{
		Symbol:    newSymbol(SymbolEnum, d.Name, namespace, d.Loc.Location()),
		Type:      b.resolve(d.Type),
		Constants: make([]EnumConstant, 0, len(d.Constants)),
	}
	for _, c := range d.Constants {
		name := normalizeIdent(c.Name)
		e.Constants = append(e.Constants, EnumConstant{
			Name:     name,
			Exposed:  escapeKeyword(name),
			Value:    c.Value,
			Unsigned: c.Unsigned,
		})
	}
	if prev, replaced := b.table.Enums.Set(e.Exposed, e); replaced {
		b.conflict(d, SymbolEnum, e.Qualified(), prev.Qualified())
	}
}

func (b *Builder) class(d *decl.Decl, namespace string) {
	if d.Namespace != "" {
		namespace = d.Namespace
	}
	if d.IsAnonymous || d.Name == "" {
		b.warn(diag.SymAnonymous, d, namespace, "anonymous %s skipped", parseRecordKind(d.RecordKind))
		return
	}
	if IsHostKeyword(d.Name) {
		b.warn(diag.SymKeywordRecord, d, d.Name, "%s %q collides with a host keyword", parseRecordKind(d.RecordKind), d.Name)
		return
	}
	c := NewClass(d.Name, namespace, d.Loc.Location())
	c.Record = parseRecordKind(d.RecordKind)
	c.Abstract = d.IsAbstract
	c.Type = b.resolve(d.Type)

	inner := c.Qualified()
	for i := range d.Members {
		m := &d.Members[i]
		switch m.Kind {
		case decl.KindBase:
			if m.IsPublic() {
				c.AddBase(cxxtypes.CppName(m.Name))
			}
		case decl.KindMethod:
			b.method(m, c)
		case decl.KindConstructor:
			b.constructor(m, c)
		case decl.KindField:
			b.field(m, c)
		case decl.KindVariable:
			if m.IsPublic() {
				b.variable(m, inner)
			}
		case decl.KindEnum:
			if m.IsPublic() {
				b.enum(m, inner)
			}
		case decl.KindClass:
			if m.IsPublic() {
				b.class(m, inner)
			}
		case decl.KindTypedef:
			if m.IsPublic() {
				b.typedef(m, inner)
			}
		default:
			b.warn(diag.FrontUnexpected, m, inner, "unexpected %s member %q", m.Kind, m.Name)
		}
	}
	if prev := b.table.PutClass(c); prev != nil {
		b.conflict(d, SymbolClass, c.Qualified(), prev.Qualified())
	}
}

func ignoredMember(d *decl.Decl) bool {
	return !d.IsPublic() || d.IsDeleted
}

func (b *Builder) method(d *decl.Decl, c *Class) {
	if ignoredMember(d) {
		return
	}
	operator := ""
	if IsOperatorName(d.Name) {
		host, ok := HostOperator(d.Name)
		if !ok {
			b.warn(diag.SymUnsupportedOperator, d, c.Qualified()+"::"+d.Name, "%s is not supported", d.Name)
			return
		}
		operator = host
	}
	m := &Method{
		Function:    b.newFunction(SymbolMethod, d, c.Qualified()),
		Const:       d.IsConst,
		Static:      d.IsStatic,
		PureVirtual: d.IsPureVirtual,
	}
	if operator != "" {
		m.Operator = m.Native
		m.Exposed = operator
	}
	c.AddMethod(m)
}

func (b *Builder) constructor(d *decl.Decl, c *Class) {
	isDefault := d.CtorKind == decl.CtorDefault || (d.CtorKind == decl.CtorOrdinary && len(d.Params) == 0)
	if !isDefault {
		c.DefaultConstructible = false
	}
	if ignoredMember(d) {
		if isDefault {
			c.DefaultConstructible = false
		}
		return
	}
	if d.CtorKind == decl.CtorCopy || d.CtorKind == decl.CtorMove {
		return
	}
	ctor := *d
	ctor.Name = c.Native
	m := &Method{Function: b.newFunction(SymbolConstructor, &ctor, c.Qualified())}
	c.Ctors = append(c.Ctors, m)
}

func (b *Builder) field(d *decl.Decl, c *Class) {
	if !d.IsPublic() {
		return
	}
	if d.IsAnonymous || d.Name == "" {
		b.warn(diag.SymAnonymous, d, c.Qualified(), "anonymous field skipped")
		return
	}
	v := &Variable{
		Symbol: newSymbol(SymbolVariable, d.Name, c.Qualified(), d.Loc.Location()),
		Type:   b.resolve(d.Type),
	}
	v.Const = d.IsConst || b.isConst(v.Type)
	c.Fields = append(c.Fields, v)
}
