package cxxtypes

import (
	"fmt"

	"fortio.org/safecast"

	"cxxbind/internal/source"
)

// TypeID indexes a Node in its Arena. NoTypeID means "absent".
type TypeID uint32

const NoTypeID TypeID = 0

func (id TypeID) IsValid() bool { return id != NoTypeID }

// Node is one resolved type. Links to other types are TypeIDs into the
// owning arena; a node never owns another node.
type Node struct {
	ID           TypeID
	Kind         Kind
	Spelling     string // as reported by the front end
	CppName      string // spelling without class/struct/enum/union
	Name         string // namespaces removed, <> -> []
	PlainName    string // Name without cv, reference and pointer markers
	Const        bool
	Canonical    TypeID
	Pointee      TypeID
	Elem         TypeID
	Count        int64 // element count of a constant array, -1 when absent
	TemplateArgs []TypeID
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.Name
}

// Shape folds the native kind into the closed shape union.
func (n *Node) Shape() Shape {
	switch {
	case n.Kind == KindVoid || n.Kind.IsNumeric():
		return ShapePrimitive
	case n.Kind.HasPointee():
		return ShapePointer
	case n.Kind == KindEnum:
		return ShapeEnum
	case n.Kind == KindConstantArray || n.Kind == KindIncompleteArray:
		return ShapeArray
	case len(n.TemplateArgs) > 0:
		return ShapeTemplate
	case n.Kind == KindRecord:
		return ShapeRecord
	}
	return ShapeOther
}

// Arena memoizes nodes by native spelling. It belongs to a single run.
type Arena struct {
	nodes     []*Node // nodes[0] is the NoTypeID sentinel
	spellings *source.Interner
	index     map[source.StringID]TypeID
	stl       map[string]struct{}
	stlOrder  []string
}

func NewArena() *Arena {
	return &Arena{
		nodes:     []*Node{nil},
		spellings: source.NewInterner(),
		index:     make(map[source.StringID]TypeID, 64),
		stl:       make(map[string]struct{}),
	}
}

// Resolve returns the node for native, building it and everything it links
// to on first sight. The slot is reserved before any link is followed, so a
// type graph that refers back to a spelling under construction terminates.
// Probe failures leave the corresponding link absent.
func (a *Arena) Resolve(native NativeType) TypeID {
	if native == nil {
		return NoTypeID
	}
	cpp := CppName(native.Spelling())
	key := a.spellings.Intern(cpp)
	if id, ok := a.index[key]; ok {
		return id
	}
	a.noteSTL(cpp)

	id := a.reserve(key)
	node := a.nodes[id]
	node.Kind = native.Kind()
	node.Spelling = native.Spelling()
	node.CppName = cpp
	node.Name = DisplayName(cpp)
	node.PlainName = PlainName(node.Name)
	node.Const = native.IsConst()
	node.Count = -1

	switch {
	case node.Kind.HasPointee():
		if p, err := native.Pointee(); err == nil {
			node.Pointee = a.Resolve(p)
		}
	case native.NumTemplateArgs() > 0:
		n := native.NumTemplateArgs()
		args := make([]TypeID, 0, n)
		for i := range n {
			arg, err := native.TemplateArg(i)
			if err != nil {
				continue
			}
			if argID := a.Resolve(arg); argID.IsValid() {
				args = append(args, argID)
			}
		}
		node.TemplateArgs = args
	default:
		if el, err := native.Element(); err == nil {
			node.Elem = a.Resolve(el)
			if cnt, err := native.ElementCount(); err == nil {
				node.Count = cnt
			}
		}
	}

	if canon, err := native.Canonical(); err == nil && canon != nil && canon.Spelling() != native.Spelling() {
		if cid := a.Resolve(canon); cid != id {
			node.Canonical = cid
		}
	}
	return id
}

func (a *Arena) reserve(key source.StringID) TypeID {
	n, err := safecast.Conv[uint32](len(a.nodes))
	if err != nil {
		panic(fmt.Errorf("type arena overflow: %w", err))
	}
	id := TypeID(n)
	a.nodes = append(a.nodes, &Node{ID: id, Count: -1})
	a.index[key] = id
	return id
}

func (a *Arena) noteSTL(spelling string) {
	for _, name := range STLNames(spelling) {
		if _, ok := a.stl[name]; ok {
			continue
		}
		a.stl[name] = struct{}{}
		a.stlOrder = append(a.stlOrder, name)
	}
}

// Get returns the node for id, or nil for NoTypeID and unknown ids.
func (a *Arena) Get(id TypeID) *Node {
	if id == NoTypeID || int(id) >= len(a.nodes) {
		return nil
	}
	return a.nodes[id]
}

// MustGet panics on an absent id.
func (a *Arena) MustGet(id TypeID) *Node {
	n := a.Get(id)
	if n == nil {
		panic(fmt.Sprintf("cxxtypes: unknown type id %d", id))
	}
	return n
}

// Canonical returns the canonical form of id, or id itself when the
// spelling is already canonical.
func (a *Arena) Canonical(id TypeID) TypeID {
	n := a.Get(id)
	if n == nil || !n.Canonical.IsValid() {
		return id
	}
	return n.Canonical
}

// Lookup finds a node by spelling without creating one.
func (a *Arena) Lookup(spelling string) (TypeID, bool) {
	key, ok := a.spellings.Find(CppName(spelling))
	if !ok {
		return NoTypeID, false
	}
	id, ok := a.index[key]
	return id, ok
}

// Len counts real nodes, not the sentinel.
func (a *Arena) Len() int {
	return len(a.nodes) - 1
}

// Each visits nodes in creation order.
func (a *Arena) Each(fn func(*Node)) {
	for _, n := range a.nodes[1:] {
		fn(n)
	}
}

// STLNames lists every std:: identifier seen in any resolved spelling, in
// first-seen order.
func (a *Arena) STLNames() []string {
	out := make([]string, len(a.stlOrder))
	copy(out, a.stlOrder)
	return out
}
