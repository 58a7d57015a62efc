package decl

// Constructors for declaration records. Modifiers return a modified copy so
// they chain: Method("get", i).Const().In("ns").

func Macro(name string, body ...Token) Decl {
	return Decl{Kind: KindMacro, Name: name, Tokens: body}
}

func Variable(name string, t Handle) Decl {
	return Decl{Kind: KindVariable, Name: name, Type: t}
}

func Function(name string, result Handle, params ...Param) Decl {
	return Decl{Kind: KindFunction, Name: name, Result: result, Params: params}
}

func Method(name string, result Handle, params ...Param) Decl {
	return Decl{Kind: KindMethod, Name: name, Result: result, Params: params}
}

func Constructor(params ...Param) Decl {
	k := CtorOrdinary
	if len(params) == 0 {
		k = CtorDefault
	}
	return Decl{Kind: KindConstructor, Params: params, CtorKind: k}
}

func Field(name string, t Handle) Decl {
	return Decl{Kind: KindField, Name: name, Type: t}
}

// Base names a direct base by its qualified spelling.
func Base(name string) Decl {
	return Decl{Kind: KindBase, Name: name}
}

func Typedef(name string, underlying Handle) Decl {
	return Decl{Kind: KindTypedef, Name: name, Type: underlying}
}

func Enum(name string, constants ...EnumConstant) Decl {
	return Decl{Kind: KindEnum, Name: name, Constants: constants}
}

func Class(name string, members ...Decl) Decl {
	return Decl{Kind: KindClass, Name: name, RecordKind: "class", Members: members}
}

func Struct(name string, members ...Decl) Decl {
	return Decl{Kind: KindClass, Name: name, RecordKind: "struct", Members: members}
}

func P(name string, t Handle, def ...Token) Param {
	return Param{Name: name, Type: t, Default: def}
}

func C(name string, value int64) EnumConstant {
	return EnumConstant{Name: name, Value: value}
}

// CU is a constant of an enum with an unsigned underlying type.
func CU(name string, value uint64) EnumConstant {
	return EnumConstant{Name: name, Value: int64(value), Unsigned: true}
}

func Int(s string) Token   { return Token{Kind: TokInteger, Spelling: s} }
func Float(s string) Token { return Token{Kind: TokFloating, Spelling: s} }
func Str(s string) Token   { return Token{Kind: TokString, Spelling: s} }
func Char(s string) Token  { return Token{Kind: TokChar, Spelling: s} }
func Kw(s string) Token    { return Token{Kind: TokKeyword, Spelling: s} }
func Ident(s string) Token { return Token{Kind: TokIdentifier, Spelling: s} }
func Punct(s string) Token { return Token{Kind: TokPunctuation, Spelling: s} }

func (d Decl) In(ns string) Decl         { d.Namespace = ns; return d }
func (d Decl) AtLoc(l Loc) Decl          { d.Loc = l; return d }
func (d Decl) Const() Decl               { d.IsConst = true; return d }
func (d Decl) Static() Decl              { d.IsStatic = true; return d }
func (d Decl) PureVirtual() Decl         { d.IsPureVirtual = true; return d }
func (d Decl) Deleted() Decl             { d.IsDeleted = true; return d }
func (d Decl) Abstract() Decl            { d.IsAbstract = true; return d }
func (d Decl) Anonymous() Decl           { d.IsAnonymous = true; return d }
func (d Decl) OutOfLine() Decl           { d.IsOutOfLine = true; return d }
func (d Decl) Private() Decl             { d.Access = "private"; return d }
func (d Decl) Protected() Decl           { d.Access = "protected"; return d }
func (d Decl) Sig(signature string) Decl { d.Signature = signature; return d }
func (d Decl) Ctor(k CtorKind) Decl      { d.CtorKind = k; return d }
func (d Decl) OfType(t Handle) Decl      { d.Type = t; return d }
