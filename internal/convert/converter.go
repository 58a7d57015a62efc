package convert

// Converter is one conversion strategy. Matches and Supports decide
// applicability; the remaining methods produce host-dialect text for a
// matched subject. Code methods return statements without indentation.
type Converter interface {
	Name() string
	Matches(s *Subject) bool
	Supports(r Role) bool
	AddImports(s *Subject, imp *Imports)
	// InputDecl is the host-facing parameter type.
	InputDecl(s *Subject) string
	// ToNative converts the host argument before the call.
	ToNative(s *Subject, a Arg) []string
	// CallArg is the expression passed to the native call.
	CallArg(s *Subject, a Arg) string
	// FromNative turns the native call into host statements; the last one
	// returns unless the type carries no value. copy=false lets pointer
	// results alias native memory.
	FromNative(s *Subject, call string, copy bool) []string
	// Signature is the documentation type for the stub.
	Signature(s *Subject, r Role) string
}

// base gives a converter pass-through behavior; strategies override what
// differs.
type base struct{}

func (base) Supports(Role) bool { return true }
func (base) AddImports(*Subject, *Imports) {}
func (base) InputDecl(s *Subject) string { return s.Node.PlainName }
func (base) ToNative(*Subject, Arg) []string { return nil }
func (base) CallArg(_ *Subject, a Arg) string { return a.Host }
func (base) Signature(*Subject, Role) string { return "Any" }
func (base) FromNative(_ *Subject, call string, _ bool) []string {
	return []string{"return " + call}
}

// Conversion is a converter bound to one subject and role.
type Conversion struct {
	Converter Converter
	Subject   *Subject
	Role      Role
}

func (c *Conversion) Name() string { return c.Converter.Name() }

// TypeName is the type as written, for declaration documents.
func (c *Conversion) TypeName() string { return c.Subject.Raw.Name }

func (c *Conversion) InputDecl() string { return c.Converter.InputDecl(c.Subject) }

func (c *Conversion) ToNative(a Arg) []string { return c.Converter.ToNative(c.Subject, a) }

func (c *Conversion) CallArg(a Arg) string { return c.Converter.CallArg(c.Subject, a) }

func (c *Conversion) FromNative(call string, copy bool) []string {
	return c.Converter.FromNative(c.Subject, call, copy)
}

func (c *Conversion) Signature() string { return c.Converter.Signature(c.Subject, c.Role) }
