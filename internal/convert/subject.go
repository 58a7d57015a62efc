package convert

import "cxxbind/internal/cxxtypes"

// ClassSet tells converters which plain names are bound classes.
type ClassSet interface {
	IsClass(plain string) bool
}

// Subject is the type a converter looks at. Node has references unwrapped
// and typedefs canonicalized; Raw is the type as written.
type Subject struct {
	Types   *cxxtypes.Arena
	Classes ClassSet
	Raw     *cxxtypes.Node
	Node    *cxxtypes.Node
}

// NewSubject returns nil when id is not in the arena.
func NewSubject(types *cxxtypes.Arena, classes ClassSet, id cxxtypes.TypeID) *Subject {
	raw := types.Get(id)
	if raw == nil {
		return nil
	}
	node := types.Get(types.Canonical(id))
	if node.Kind.IsReference() {
		if p := types.Get(types.Canonical(node.Pointee)); p != nil {
			node = p
		}
	}
	return &Subject{Types: types, Classes: classes, Raw: raw, Node: node}
}

// Follow returns the canonical node of id, nil when absent.
func (s *Subject) Follow(id cxxtypes.TypeID) *cxxtypes.Node {
	return s.Types.Get(s.Types.Canonical(id))
}

// Pointee is the canonical pointee of a pointer subject.
func (s *Subject) Pointee() *cxxtypes.Node {
	if s.Node.Kind != cxxtypes.KindPointer {
		return nil
	}
	return s.Follow(s.Node.Pointee)
}

// PointeeOf follows one more pointer level below n.
func (s *Subject) PointeeOf(n *cxxtypes.Node) *cxxtypes.Node {
	if n == nil || n.Kind != cxxtypes.KindPointer {
		return nil
	}
	return s.Follow(n.Pointee)
}

func (s *Subject) IsClass(n *cxxtypes.Node) bool {
	if n == nil || s.Classes == nil || n.Shape() == cxxtypes.ShapePointer {
		return false
	}
	return s.Classes.IsClass(n.PlainName)
}

// Arg names one parameter on both sides of the boundary.
type Arg struct {
	Host   string // host parameter name
	Native string // local holding the converted native value
}

func NewArg(host string) Arg {
	return Arg{Host: host, Native: "_" + host}
}
