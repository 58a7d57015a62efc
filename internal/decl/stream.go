// Package decl defines the declaration stream a C++ front end hands to the
// binder: a flat type table plus an already-walked, already-filtered tree of
// declaration records. Streams travel as msgpack or JSON.
package decl

import (
	"cxxbind/internal/source"
)

// SchemaVersion is bumped whenever the stream layout changes.
const SchemaVersion uint16 = 1

// Handle is a 1-based index into Stream.Types. Zero means "no type".
type Handle uint32

const NoHandle Handle = 0

type Stream struct {
	Schema      uint16       `msgpack:"schema" json:"schema"`
	Headers     []string     `msgpack:"headers" json:"headers"`
	Types       []TypeRecord `msgpack:"types" json:"types"`
	Decls       []Decl       `msgpack:"decls" json:"decls"`
	Diagnostics []Diagnostic `msgpack:"diagnostics,omitempty" json:"diagnostics,omitempty"`
}

// TypeRecord describes one type occurrence. Kind uses clang's TypeKind
// names ("Int", "Pointer", "LValueReference", ...).
type TypeRecord struct {
	Spelling     string   `msgpack:"spelling" json:"spelling"`
	Kind         string   `msgpack:"kind" json:"kind"`
	Const        bool     `msgpack:"const,omitempty" json:"const,omitempty"`
	Canonical    Handle   `msgpack:"canonical,omitempty" json:"canonical,omitempty"`
	Pointee      Handle   `msgpack:"pointee,omitempty" json:"pointee,omitempty"`
	Element      Handle   `msgpack:"element,omitempty" json:"element,omitempty"`
	Count        int64    `msgpack:"count,omitempty" json:"count,omitempty"`
	TemplateArgs []Handle `msgpack:"template_args,omitempty" json:"template_args,omitempty"`
}

type Kind string

const (
	KindMacro       Kind = "macro"
	KindVariable    Kind = "variable"
	KindFunction    Kind = "function"
	KindTypedef     Kind = "typedef"
	KindEnum        Kind = "enum"
	KindClass       Kind = "class"
	KindMethod      Kind = "method"
	KindConstructor Kind = "constructor"
	KindField       Kind = "field"
	KindBase        Kind = "base"
)

// CtorKind tells the special constructors apart.
type CtorKind string

const (
	CtorOrdinary CtorKind = ""
	CtorDefault  CtorKind = "default"
	CtorCopy     CtorKind = "copy"
	CtorMove     CtorKind = "move"
)

type Loc struct {
	File string `msgpack:"file,omitempty" json:"file,omitempty"`
	Line uint32 `msgpack:"line,omitempty" json:"line,omitempty"`
	Col  uint32 `msgpack:"col,omitempty" json:"col,omitempty"`
}

func (l Loc) Location() source.Location {
	return source.Location{File: l.File, Line: l.Line, Col: l.Col}
}

// Decl is one declaration. Which fields are meaningful depends on Kind;
// class members live in Members, in declaration order.
type Decl struct {
	Kind      Kind   `msgpack:"kind" json:"kind"`
	Name      string `msgpack:"name,omitempty" json:"name,omitempty"`
	Namespace string `msgpack:"namespace,omitempty" json:"namespace,omitempty"`
	Loc       Loc    `msgpack:"loc,omitempty" json:"loc,omitempty"`
	// Access is "public", "protected" or "private"; empty means public.
	Access string `msgpack:"access,omitempty" json:"access,omitempty"`

	// Type of a variable or field, underlying type of a typedef, the
	// record's own type for a class, the named type for a base.
	Type      Handle  `msgpack:"type,omitempty" json:"type,omitempty"`
	Result    Handle  `msgpack:"result,omitempty" json:"result,omitempty"`
	Signature string  `msgpack:"signature,omitempty" json:"signature,omitempty"`
	Params    []Param `msgpack:"params,omitempty" json:"params,omitempty"`
	// Tokens of a macro body.
	Tokens    []Token        `msgpack:"tokens,omitempty" json:"tokens,omitempty"`
	Constants []EnumConstant `msgpack:"constants,omitempty" json:"constants,omitempty"`

	RecordKind    string   `msgpack:"record_kind,omitempty" json:"record_kind,omitempty"`
	CtorKind      CtorKind `msgpack:"ctor_kind,omitempty" json:"ctor_kind,omitempty"`
	IsConst       bool     `msgpack:"const,omitempty" json:"const,omitempty"`
	IsStatic      bool     `msgpack:"static,omitempty" json:"static,omitempty"`
	IsPureVirtual bool     `msgpack:"pure_virtual,omitempty" json:"pure_virtual,omitempty"`
	IsDeleted     bool     `msgpack:"deleted,omitempty" json:"deleted,omitempty"`
	IsAbstract    bool     `msgpack:"abstract,omitempty" json:"abstract,omitempty"`
	IsAnonymous   bool     `msgpack:"anonymous,omitempty" json:"anonymous,omitempty"`
	// IsOutOfLine marks a definition whose semantic parent differs from its
	// lexical parent (int A::x = 1; at namespace scope).
	IsOutOfLine bool `msgpack:"out_of_line,omitempty" json:"out_of_line,omitempty"`

	Members []Decl `msgpack:"members,omitempty" json:"members,omitempty"`
}

// IsPublic treats a missing access specifier as public.
func (d *Decl) IsPublic() bool {
	return d.Access == "" || d.Access == "public"
}

// QualifiedName joins namespace and name with "::".
func (d *Decl) QualifiedName() string {
	if d.Namespace == "" {
		return d.Name
	}
	return d.Namespace + "::" + d.Name
}

type Param struct {
	Name    string  `msgpack:"name,omitempty" json:"name,omitempty"`
	Type    Handle  `msgpack:"type" json:"type"`
	Default []Token `msgpack:"default,omitempty" json:"default,omitempty"`
}

type TokenKind string

const (
	TokInteger     TokenKind = "integer"
	TokFloating    TokenKind = "floating"
	TokChar        TokenKind = "char"
	TokString      TokenKind = "string"
	TokKeyword     TokenKind = "keyword"
	TokIdentifier  TokenKind = "identifier"
	TokPunctuation TokenKind = "punctuation"
)

type Token struct {
	Kind     TokenKind `msgpack:"kind" json:"kind"`
	Spelling string    `msgpack:"spelling" json:"spelling"`
}

// EnumConstant carries the value's bit pattern; Unsigned marks enums whose
// underlying type is unsigned.
type EnumConstant struct {
	Name     string `msgpack:"name" json:"name"`
	Value    int64  `msgpack:"value" json:"value"`
	Unsigned bool   `msgpack:"unsigned,omitempty" json:"unsigned,omitempty"`
}

// Diagnostic is a front-end finding; Severity uses clang's level names.
type Diagnostic struct {
	Severity string `msgpack:"severity" json:"severity"`
	Message  string `msgpack:"message" json:"message"`
	Loc      Loc    `msgpack:"loc,omitempty" json:"loc,omitempty"`
}
