package cxxtypes

import (
	"fmt"
	"strings"
)

// Kind is the native type kind as reported by the front end.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBool
	KindCharS
	KindCharU
	KindSChar
	KindUChar
	KindShort
	KindUShort
	KindInt
	KindUInt
	KindLong
	KindULong
	KindLongLong
	KindULongLong
	KindFloat
	KindDouble
	KindLongDouble
	KindPointer
	KindLValueReference
	KindRValueReference
	KindEnum
	KindRecord
	KindConstantArray
	KindIncompleteArray
	KindTypedef
	KindElaborated
	KindUnexposed
	KindFunctionProto
	KindOther
)

var kindNames = [...]string{
	KindInvalid:         "Invalid",
	KindVoid:            "Void",
	KindBool:            "Bool",
	KindCharS:           "Char_S",
	KindCharU:           "Char_U",
	KindSChar:           "SChar",
	KindUChar:           "UChar",
	KindShort:           "Short",
	KindUShort:          "UShort",
	KindInt:             "Int",
	KindUInt:            "UInt",
	KindLong:            "Long",
	KindULong:           "ULong",
	KindLongLong:        "LongLong",
	KindULongLong:       "ULongLong",
	KindFloat:           "Float",
	KindDouble:          "Double",
	KindLongDouble:      "LongDouble",
	KindPointer:         "Pointer",
	KindLValueReference: "LValueReference",
	KindRValueReference: "RValueReference",
	KindEnum:            "Enum",
	KindRecord:          "Record",
	KindConstantArray:   "ConstantArray",
	KindIncompleteArray: "IncompleteArray",
	KindTypedef:         "Typedef",
	KindElaborated:      "Elaborated",
	KindUnexposed:       "Unexposed",
	KindFunctionProto:   "FunctionProto",
	KindOther:           "Other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind maps the front end's kind spelling (clang TypeKind names,
// case-insensitive, with or without underscores) to a Kind. Unknown names
// map to KindOther so a newer front end never breaks resolution.
func ParseKind(s string) Kind {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	for k, name := range kindNames {
		if strings.ToLower(strings.ReplaceAll(name, "_", "")) == norm {
			return Kind(k)
		}
	}
	if norm == "" {
		return KindInvalid
	}
	return KindOther
}

func (k Kind) IsReference() bool {
	return k == KindLValueReference || k == KindRValueReference
}

// HasPointee is true for kinds whose pointee is meaningful.
func (k Kind) HasPointee() bool {
	return k == KindPointer || k.IsReference()
}

func (k Kind) IsNumeric() bool {
	return k >= KindBool && k <= KindLongDouble
}

func (k Kind) IsChar() bool {
	switch k {
	case KindCharS, KindCharU, KindSChar:
		return true
	}
	return false
}

// Shape is the closed set of type shapes converter predicates dispatch on.
type Shape uint8

const (
	ShapeOther Shape = iota
	ShapePrimitive
	ShapePointer
	ShapeEnum
	ShapeRecord
	ShapeArray
	ShapeTemplate
)

func (s Shape) String() string {
	switch s {
	case ShapePrimitive:
		return "primitive"
	case ShapePointer:
		return "pointer"
	case ShapeEnum:
		return "enum"
	case ShapeRecord:
		return "record"
	case ShapeArray:
		return "array"
	case ShapeTemplate:
		return "template"
	case ShapeOther:
		return "other"
	}
	return fmt.Sprintf("Shape(%d)", s)
}
