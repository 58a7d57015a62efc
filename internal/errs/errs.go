// Package errs holds the error kinds of a binding run on top of
// github.com/cockroachdb/errors.
//
// Two kinds are fatal and end a run: FrontEndError and ConfigurationError.
// UnsupportedTypeError and NameConflictError are recoverable; the phase that
// meets them drops one member and reports a warning.
package errs

import (
	crdb "github.com/cockroachdb/errors"
)

var (
	New         = crdb.New
	Newf        = crdb.Newf
	Wrap        = crdb.Wrap
	Wrapf       = crdb.Wrapf
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
	Is          = crdb.Is
	As          = crdb.As
	GetAllHints = crdb.GetAllHints
)

// Kind classifies a failure for logs and exit codes.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindFrontEnd
	KindConfiguration
	KindUnsupportedType
	KindNameConflict
)

func (k Kind) String() string {
	switch k {
	case KindFrontEnd:
		return "front_end"
	case KindConfiguration:
		return "configuration"
	case KindUnsupportedType:
		return "unsupported_type"
	case KindNameConflict:
		return "name_conflict"
	}
	return "unknown"
}

// KindOf walks the wrap chain and returns the first recognised kind.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var (
		fe  *FrontEndError
		ce  *ConfigurationError
		ute *UnsupportedTypeError
		nce *NameConflictError
	)
	switch {
	case crdb.As(err, &fe):
		return KindFrontEnd
	case crdb.As(err, &ce):
		return KindConfiguration
	case crdb.As(err, &ute):
		return KindUnsupportedType
	case crdb.As(err, &nce):
		return KindNameConflict
	}
	return KindUnknown
}

// IsFatal reports whether err must abort the run.
func IsFatal(err error) bool {
	switch KindOf(err) {
	case KindFrontEnd, KindConfiguration:
		return true
	}
	return err != nil && KindOf(err) == KindUnknown
}
