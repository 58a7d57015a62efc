package convert

import (
	"regexp"

	"cxxbind/internal/cxxtypes"
	"cxxbind/internal/errs"
)

// VoidPointer treats void pointers as buffers of Element. The catalog has
// no void pointer strategy; callers register one per element type they
// need. Match, when set, is a regular expression the type as written must
// match, so typedef'd handles can be told apart.
type VoidPointer struct {
	base
	Match   string
	Element string

	re *regexp.Regexp
}

// NewVoidPointer compiles match up front.
func NewVoidPointer(match, element string) (*VoidPointer, error) {
	v := &VoidPointer{Match: match, Element: element}
	if match != "" {
		re, err := regexp.Compile(match)
		if err != nil {
			return nil, errs.Wrapf(err, "void pointer match %q", match)
		}
		v.re = re
	}
	return v, nil
}

func (v *VoidPointer) Name() string { return "void-pointer[" + v.Element + "]" }

func (v *VoidPointer) Matches(s *Subject) bool {
	p := s.Pointee()
	if p == nil || p.Kind != cxxtypes.KindVoid {
		return false
	}
	if v.Match == "" {
		return true
	}
	if v.re == nil {
		re, err := regexp.Compile(v.Match)
		if err != nil {
			return false
		}
		v.re = re
	}
	return v.re.MatchString(s.Raw.Spelling)
}

func (v *VoidPointer) AddImports(_ *Subject, imp *Imports) {
	imp.Deref = true
}

func (v *VoidPointer) InputDecl(*Subject) string { return v.Element + "[:]" }

func (v *VoidPointer) CallArg(_ *Subject, a Arg) string {
	return "<void *>&" + a.Host + "[0]"
}

func (v *VoidPointer) FromNative(_ *Subject, call string, _ bool) []string {
	return []string{"return deref(<" + v.Element + " *> " + call + ")"}
}

func (v *VoidPointer) Signature(_ *Subject, r Role) string {
	elem, ok := numericByName[v.Element]
	if !ok {
		return "Any"
	}
	if r == RoleParam {
		return ndarray(elem)
	}
	return elem
}
