package convert

import (
	"fmt"
	"regexp"
	"strings"

	"cxxbind/internal/cxxtypes"
)

// Builtins returns the built-in catalog in priority order. The slice is
// fresh on every call.
func Builtins() []Converter {
	return []Converter{
		Void{},
		Numeric{},
		CString{},
		String{},
		NumericPointer{},
		CStringArray{},
		FixedArray{},
		Enum{},
		ClassValue{},
		ClassPointer{},
		ClassPointerPointer{},
		Container{},
		ClassVector{},
	}
}

const retVar = "_ret_"

// Void carries no value; the call is a statement.
type Void struct{ base }

func (Void) Name() string { return "void" }
func (Void) Matches(s *Subject) bool { return s.Node.Kind == cxxtypes.KindVoid }
func (Void) Supports(r Role) bool { return r == RoleReturn }
func (Void) InputDecl(*Subject) string { return "" }
func (Void) Signature(*Subject, Role) string { return "None" }
func (Void) FromNative(_ *Subject, call string, _ bool) []string {
	return []string{call}
}

// Numeric passes bool, integer and floating types by value.
type Numeric struct{ base }

func (Numeric) Name() string { return "numeric" }
func (Numeric) Matches(s *Subject) bool { return isNumeric(s.Node) }
func (Numeric) Signature(s *Subject, _ Role) string {
	return numericStub[s.Node.Kind]
}

// isPlainChar accepts char of either signedness; signed char and
// unsigned char stay numeric.
func isPlainChar(n *cxxtypes.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case cxxtypes.KindCharS:
		return true
	case cxxtypes.KindCharU:
		return n.PlainName == "char"
	}
	return false
}

// CString maps char pointers to host strings.
type CString struct{ base }

func (CString) Name() string { return "cstring" }
func (CString) Matches(s *Subject) bool { return isPlainChar(s.Pointee()) }
func (CString) InputDecl(*Subject) string { return "str" }
func (CString) Signature(*Subject, Role) string { return "str" }

// String maps std::string to host strings.
type String struct{ base }

func (String) Name() string { return "string" }
func (String) Matches(s *Subject) bool {
	if s.Node.Shape() == cxxtypes.ShapePointer {
		return false
	}
	plain := s.Node.PlainName
	return plain == "string" || plain == "basic_string[char]" || strings.HasPrefix(plain, "basic_string[char,")
}
func (String) InputDecl(*Subject) string { return "str" }
func (String) Signature(*Subject, Role) string { return "str" }

// NumericPointer views a host buffer as a pointer to its first element; a
// returned pointer is dereferenced once.
type NumericPointer struct{ base }

func (NumericPointer) Name() string { return "numeric-pointer" }
func (NumericPointer) Matches(s *Subject) bool { return isNumeric(s.Pointee()) }
func (NumericPointer) AddImports(_ *Subject, imp *Imports) {
	imp.Deref = true
}
func (NumericPointer) InputDecl(s *Subject) string {
	return s.Pointee().PlainName + "[:]"
}
func (NumericPointer) CallArg(_ *Subject, a Arg) string {
	return "&" + a.Host + "[0]"
}
func (NumericPointer) FromNative(_ *Subject, call string, _ bool) []string {
	return []string{"return deref(" + call + ")"}
}
func (NumericPointer) Signature(s *Subject, r Role) string {
	elem := numericStub[s.Pointee().Kind]
	if r == RoleParam {
		return ndarray(elem)
	}
	return elem
}

// CStringArray builds a native array of string pointers from a host
// sequence.
type CStringArray struct{ base }

func (CStringArray) Name() string { return "cstring-array" }
func (CStringArray) Matches(s *Subject) bool {
	return isPlainChar(s.PointeeOf(s.Pointee()))
}
func (CStringArray) Supports(r Role) bool { return r == RoleParam }
func (CStringArray) AddImports(_ *Subject, imp *Imports) {
	imp.Malloc = true
}
func (CStringArray) InputDecl(*Subject) string { return "object" }
func (CStringArray) ToNative(_ *Subject, a Arg) []string {
	idx := a.Host + "_idx"
	return []string{
		fmt.Sprintf("cdef char** %s = <char **>malloc(sizeof(char *)*len(%s))", a.Native, a.Host),
		fmt.Sprintf("cdef unsigned int %s", idx),
		fmt.Sprintf("for %s in range(len(%s)):", idx, a.Host),
		fmt.Sprintf("    %s[%s] = %s[%s]", a.Native, idx, a.Host, idx),
	}
}
func (CStringArray) CallArg(_ *Subject, a Arg) string { return a.Native }
func (CStringArray) Signature(*Subject, Role) string { return "Iterable[str]" }

// FixedArray copies a host sequence of exactly Count numeric elements into
// a native array.
type FixedArray struct{ base }

func (FixedArray) Name() string { return "fixed-array" }
func (FixedArray) Matches(s *Subject) bool {
	n := s.Node
	return n.Shape() == cxxtypes.ShapeArray && n.Count >= 0 && isNumeric(s.Follow(n.Elem))
}
func (FixedArray) Supports(r Role) bool { return r == RoleParam }
func (FixedArray) InputDecl(*Subject) string { return "object" }
func (FixedArray) ToNative(s *Subject, a Arg) []string {
	elem := s.Follow(s.Node.Elem).PlainName
	idx := a.Native + "_idx"
	n := s.Node.Count
	return []string{
		fmt.Sprintf("cdef %s %s[%d]", elem, a.Native, n),
		fmt.Sprintf("if not hasattr(%s, \"__len__\"):", a.Host),
		fmt.Sprintf("    raise TypeError(\"%s must be a sequence of %d elements\")", a.Host, n),
		fmt.Sprintf("if len(%s) != %d:", a.Host, n),
		fmt.Sprintf("    raise ValueError(\"%s must have %d elements, got %%d\" %% len(%s))", a.Host, n, a.Host),
		fmt.Sprintf("for %s in range(%d):", idx, n),
		fmt.Sprintf("    %s[%s] = %s[%s]", a.Native, idx, a.Host, idx),
	}
}
func (FixedArray) CallArg(_ *Subject, a Arg) string { return a.Native }
func (FixedArray) Signature(*Subject, Role) string { return "Iterable" }

// Enum passes the underlying integer and re-tags returned values.
type Enum struct{ base }

func (Enum) Name() string { return "enum" }
func (Enum) Matches(s *Subject) bool { return s.Node.Shape() == cxxtypes.ShapeEnum }
func (Enum) InputDecl(s *Subject) string {
	return "cpp." + s.Node.PlainName
}
func (Enum) FromNative(s *Subject, call string, _ bool) []string {
	return []string{"return " + s.Node.PlainName + "(" + call + ")"}
}
func (Enum) Signature(s *Subject, _ Role) string { return s.Node.PlainName }

func wrapHandle(class, ptr string) []string {
	return []string{
		fmt.Sprintf("cdef %s %s = %s.__new__(%s)", class, retVar, class, class),
		fmt.Sprintf("%s.thisptr = %s", retVar, ptr),
		"return " + retVar,
	}
}

func ownedCopy(class, value string) string {
	return fmt.Sprintf("shared_ptr[cpp.%s](new cpp.%s(%s))", class, class, value)
}

// ClassValue copies instances of bound classes across the boundary.
type ClassValue struct{ base }

func (ClassValue) Name() string { return "class" }
func (ClassValue) Matches(s *Subject) bool { return s.IsClass(s.Node) }
func (ClassValue) AddImports(_ *Subject, imp *Imports) {
	imp.Deref = true
	imp.UseSTL("shared_ptr")
}
func (ClassValue) CallArg(_ *Subject, a Arg) string {
	return "deref(" + a.Host + ".thisptr)"
}
func (ClassValue) FromNative(s *Subject, call string, _ bool) []string {
	return wrapHandle(s.Node.PlainName, ownedCopy(s.Node.PlainName, call))
}
func (ClassValue) Signature(s *Subject, _ Role) string { return s.Node.PlainName }

// ClassPointer passes the handle's raw pointer. A returned pointer is
// copied, or aliased without ownership when copy is false.
type ClassPointer struct{ base }

func (ClassPointer) Name() string { return "class-pointer" }
func (ClassPointer) Matches(s *Subject) bool { return s.IsClass(s.Pointee()) }
func (ClassPointer) AddImports(_ *Subject, imp *Imports) {
	imp.Deref = true
	imp.UseSTL("shared_ptr")
}
func (ClassPointer) InputDecl(s *Subject) string { return s.Pointee().PlainName }
func (ClassPointer) CallArg(_ *Subject, a Arg) string {
	return a.Host + ".thisptr.get()"
}
func (ClassPointer) FromNative(s *Subject, call string, copy bool) []string {
	class := s.Pointee().PlainName
	ptr := retVar + "ptr"
	handle := fmt.Sprintf("shared_ptr[cpp.%s](shared_ptr[cpp.%s](), %s)", class, class, ptr)
	if copy {
		handle = ownedCopy(class, "deref("+ptr+")")
	}
	out := []string{
		fmt.Sprintf("cdef cpp.%s* %s = %s", class, ptr, call),
		fmt.Sprintf("if %s == NULL:", ptr),
		"    return None",
	}
	return append(out, wrapHandle(class, handle)...)
}
func (ClassPointer) Signature(s *Subject, _ Role) string { return s.Pointee().PlainName }

// ClassPointerPointer passes the address of a handle's raw pointer.
type ClassPointerPointer struct{ base }

func (ClassPointerPointer) Name() string { return "class-pointer-pointer" }
func (ClassPointerPointer) Matches(s *Subject) bool {
	return s.IsClass(s.PointeeOf(s.Pointee()))
}
func (ClassPointerPointer) Supports(r Role) bool { return r == RoleParam }
func (ClassPointerPointer) InputDecl(s *Subject) string {
	return s.PointeeOf(s.Pointee()).PlainName
}
func (ClassPointerPointer) ToNative(s *Subject, a Arg) []string {
	class := s.PointeeOf(s.Pointee()).PlainName
	return []string{fmt.Sprintf("cdef cpp.%s* %s = %s.thisptr.get()", class, a.Native, a.Host)}
}
func (ClassPointerPointer) CallArg(_ *Subject, a Arg) string { return "&" + a.Native }
func (ClassPointerPointer) Signature(s *Subject, _ Role) string {
	return s.PointeeOf(s.Pointee()).PlainName
}

var (
	containerPattern  = regexp.MustCompile(`^(?:const )?std::(map|unordered_map|set|unordered_set|vector|list|complex|pair)<`)
	identifierPattern = regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_]*`)
)

var containerTyping = map[string][2]string{
	"map":           {"Mapping", "dict"},
	"unordered_map": {"Mapping", "dict"},
	"set":           {"Iterable", "set"},
	"unordered_set": {"Iterable", "set"},
	"pair":          {"Iterable", "tuple"},
	"vector":        {"Iterable", "list"},
	"list":          {"Iterable", "list"},
	"complex":       {"complex", "complex"},
}

func containerOf(n *cxxtypes.Node) string {
	m := containerPattern.FindStringSubmatch(n.CppName)
	if m == nil {
		return ""
	}
	return m[1]
}

// Container passes standard containers of non-class elements through the
// dialect's structural conversion.
type Container struct{ base }

func (Container) Name() string { return "container" }
func (Container) Matches(s *Subject) bool {
	if containerOf(s.Node) == "" {
		return false
	}
	for _, id := range identifierPattern.FindAllString(s.Node.PlainName, -1) {
		if s.Classes != nil && s.Classes.IsClass(id) {
			return false
		}
	}
	return true
}
func (Container) InputDecl(*Subject) string { return "object" }
func (Container) Signature(s *Subject, r Role) string {
	typing := containerTyping[containerOf(s.Node)]
	if r == RoleReturn {
		return typing[1]
	}
	return typing[0]
}

// ClassVector builds a native vector by copying each host handle.
type ClassVector struct{ base }

func (ClassVector) Name() string { return "class-vector" }
func (ClassVector) element(s *Subject) *cxxtypes.Node {
	if containerOf(s.Node) != "vector" || len(s.Node.TemplateArgs) == 0 {
		return nil
	}
	return s.Follow(s.Node.TemplateArgs[0])
}
func (c ClassVector) Matches(s *Subject) bool { return s.IsClass(c.element(s)) }
func (ClassVector) Supports(r Role) bool { return r == RoleParam }
func (ClassVector) AddImports(_ *Subject, imp *Imports) {
	imp.Deref = true
	imp.UseSTL("vector")
}
func (ClassVector) InputDecl(*Subject) string { return "object" }
func (c ClassVector) ToNative(s *Subject, a Arg) []string {
	class := c.element(s).PlainName
	item := a.Native + "_item"
	return []string{
		fmt.Sprintf("cdef vector[cpp.%s] %s", class, a.Native),
		fmt.Sprintf("for %s in %s:", item, a.Host),
		fmt.Sprintf("    %s.push_back(deref((<%s?>%s).thisptr))", a.Native, class, item),
	}
}
func (ClassVector) CallArg(_ *Subject, a Arg) string { return a.Native }
func (c ClassVector) Signature(s *Subject, _ Role) string {
	return "list[" + c.element(s).PlainName + "]"
}
