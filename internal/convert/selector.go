package convert

import (
	"cxxbind/internal/cxxtypes"
	"cxxbind/internal/errs"
)

// Selector picks the converter for a type occurrence. Registered
// converters are consulted before the built-in catalog. A Selector belongs
// to one run.
type Selector struct {
	Registered []Converter
	builtins   []Converter
}

func NewSelector(registered ...Converter) *Selector {
	return &Selector{Registered: registered}
}

func (s *Selector) chain() []Converter {
	if s.builtins == nil {
		s.builtins = Builtins()
	}
	out := make([]Converter, 0, len(s.Registered)+len(s.builtins))
	out = append(out, s.Registered...)
	return append(out, s.builtins...)
}

// Select returns the first converter matching id. When that converter
// cannot serve role, selection fails rather than trying the next one.
func (s *Selector) Select(types *cxxtypes.Arena, classes ClassSet, id cxxtypes.TypeID, role Role) (*Conversion, error) {
	subj := NewSubject(types, classes, id)
	if subj == nil {
		return nil, errs.Unsupported("<absent>", role.String(), "type is unknown")
	}
	for _, c := range s.chain() {
		if !c.Matches(subj) {
			continue
		}
		if !c.Supports(role) {
			return nil, errs.Unsupportedf(subj.Raw.Name, role.String(), "%s conversion cannot be used here", c.Name())
		}
		return &Conversion{Converter: c, Subject: subj, Role: role}, nil
	}
	return nil, errs.Unsupportedf(subj.Raw.Name, role.String(), "no converter matches %s type", subj.Node.Shape())
}

// AddImports records what the conversion's generated code needs.
func (c *Conversion) AddImports(imp *Imports) {
	imp.AddSTL(c.Subject.Raw.CppName)
	imp.AddSTL(c.Subject.Node.CppName)
	c.Converter.AddImports(c.Subject, imp)
}
