package symbols

import (
	"strconv"

	"cxxbind/internal/cxxtypes"
	"cxxbind/internal/source"
)

// SymbolKind classifies a declaration record.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolMacro
	SymbolVariable
	SymbolFunction
	SymbolMethod
	SymbolConstructor
	SymbolTypedef
	SymbolEnum
	SymbolClass
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolMacro:
		return "macro"
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolMethod:
		return "method"
	case SymbolConstructor:
		return "constructor"
	case SymbolTypedef:
		return "typedef"
	case SymbolEnum:
		return "enum"
	case SymbolClass:
		return "class"
	default:
		return "invalid"
	}
}

// Symbol is the part every record shares. Native is the name as declared;
// Exposed is the host identifier after keyword escaping, operator mapping
// and renaming.
type Symbol struct {
	Kind      SymbolKind
	Native    string
	Exposed   string
	Namespace string
	File      string
	Loc       source.Location
}

func newSymbol(kind SymbolKind, name, namespace string, loc source.Location) Symbol {
	name = normalizeIdent(name)
	return Symbol{
		Kind:      kind,
		Native:    name,
		Exposed:   escapeKeyword(name),
		Namespace: namespace,
		File:      loc.File,
		Loc:       loc,
	}
}

// Qualified is the native name with its namespace.
func (s *Symbol) Qualified() string {
	if s.Namespace == "" {
		return s.Native
	}
	return s.Namespace + "::" + s.Native
}

// Decl is the spelling used in the declarations document: the exposed
// name, followed by the quoted native name when the two differ.
func (s *Symbol) Decl() string {
	if s.Exposed == s.Native {
		return s.Native
	}
	return s.Exposed + ` "` + s.Native + `"`
}

// Renamed reports whether the exposed name differs from the native one.
func (s *Symbol) Renamed() bool {
	return s.Exposed != s.Native
}

type Macro struct {
	Symbol
	Literal Literal
}

// Variable is a global, a static member, a field or a parameter.
type Variable struct {
	Symbol
	Type    cxxtypes.TypeID
	Const   bool
	Default *Literal
}

type Function struct {
	Symbol
	Result cxxtypes.TypeID
	Args   []*Variable
	// Signature is the native function type spelling, e.g. "int (int, double)".
	Signature string
}

type Method struct {
	Function
	Const       bool
	Static      bool
	PureVirtual bool
	// Operator holds the native operator spelling ("operator+") when the
	// method overloads one.
	Operator string
}

func (m *Method) IsOperator() bool {
	return m.Operator != ""
}

type Typedef struct {
	Symbol
	Underlying     string
	UnderlyingType cxxtypes.TypeID
}

type EnumConstant struct {
	Name     string
	Exposed  string
	Value    int64
	Unsigned bool
}

// Host renders the value as host source text.
func (c EnumConstant) Host() string {
	if c.Unsigned {
		return strconv.FormatUint(uint64(c.Value), 10)
	}
	return strconv.FormatInt(c.Value, 10)
}

type Enum struct {
	Symbol
	Type      cxxtypes.TypeID
	Constants []EnumConstant
}

type RecordKind uint8

const (
	RecordClass RecordKind = iota
	RecordStruct
	RecordUnion
)

func (k RecordKind) String() string {
	switch k {
	case RecordStruct:
		return "struct"
	case RecordUnion:
		return "union"
	default:
		return "class"
	}
}

func parseRecordKind(s string) RecordKind {
	switch s {
	case "struct":
		return RecordStruct
	case "union":
		return RecordUnion
	}
	return RecordClass
}
