package cxxtypes

import "errors"

// ErrNotApplicable is returned by NativeType probes that make no sense for
// the type at hand (element type of an int, pointee of a record, ...).
var ErrNotApplicable = errors.New("attribute not applicable to type kind")

// NativeType is the front end's view of one type occurrence. Every probe may
// fail; the resolver treats any error as "absent".
type NativeType interface {
	Spelling() string
	Kind() Kind
	IsConst() bool
	Canonical() (NativeType, error)
	Pointee() (NativeType, error)
	Element() (NativeType, error)
	ElementCount() (int64, error)
	NumTemplateArgs() int
	TemplateArg(i int) (NativeType, error)
}
