package decl

import (
	"fmt"

	"cxxbind/internal/cxxtypes"
)

// Type is a handle into a stream's type table. It implements
// cxxtypes.NativeType.
type Type struct {
	s *Stream
	h Handle
}

var _ cxxtypes.NativeType = Type{}

// Type returns the type for h, or false when h is absent or dangling.
func (s *Stream) Type(h Handle) (Type, bool) {
	if s == nil || h == NoHandle || int(h) > len(s.Types) {
		return Type{}, false
	}
	return Type{s: s, h: h}, true
}

// Native is Type(h) as a NativeType, nil when h is absent. Callers pass
// the result straight to Arena.Resolve.
func (s *Stream) Native(h Handle) cxxtypes.NativeType {
	t, ok := s.Type(h)
	if !ok {
		return nil
	}
	return t
}

func (t Type) Handle() Handle { return t.h }

func (t Type) rec() *TypeRecord {
	return &t.s.Types[int(t.h)-1]
}

func (t Type) Spelling() string { return t.rec().Spelling }

func (t Type) Kind() cxxtypes.Kind { return cxxtypes.ParseKind(t.rec().Kind) }

func (t Type) IsConst() bool { return t.rec().Const }

func (t Type) follow(h Handle, what string) (cxxtypes.NativeType, error) {
	if h == NoHandle {
		return nil, cxxtypes.ErrNotApplicable
	}
	next, ok := t.s.Type(h)
	if !ok {
		return nil, fmt.Errorf("type %q: dangling %s handle %d", t.Spelling(), what, h)
	}
	return next, nil
}

func (t Type) Canonical() (cxxtypes.NativeType, error) {
	if t.rec().Canonical == NoHandle {
		return t, nil
	}
	return t.follow(t.rec().Canonical, "canonical")
}

func (t Type) Pointee() (cxxtypes.NativeType, error) {
	if !t.Kind().HasPointee() {
		return nil, cxxtypes.ErrNotApplicable
	}
	return t.follow(t.rec().Pointee, "pointee")
}

func (t Type) Element() (cxxtypes.NativeType, error) {
	return t.follow(t.rec().Element, "element")
}

func (t Type) ElementCount() (int64, error) {
	if t.Kind() != cxxtypes.KindConstantArray {
		return 0, cxxtypes.ErrNotApplicable
	}
	return t.rec().Count, nil
}

func (t Type) NumTemplateArgs() int { return len(t.rec().TemplateArgs) }

func (t Type) TemplateArg(i int) (cxxtypes.NativeType, error) {
	args := t.rec().TemplateArgs
	if i < 0 || i >= len(args) {
		return nil, cxxtypes.ErrNotApplicable
	}
	return t.follow(args[i], "template argument")
}
