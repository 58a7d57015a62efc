// Package convert decides how a type occurrence crosses the native/host
// boundary. A Selector walks registered converters, then the built-in
// catalog, and returns the first that matches.
package convert

// Role is the position a type occupies in a call.
type Role uint8

const (
	RoleParam Role = iota
	RoleReturn
)

func (r Role) String() string {
	if r == RoleReturn {
		return "return value"
	}
	return "parameter"
}
