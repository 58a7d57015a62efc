package overload

import "strings"

// Policy decides how overload candidates are grouped before the first
// bindable one of each group is kept.
type Policy uint8

const (
	// PerExposedName groups by host identifier, so renamed overloads
	// survive side by side.
	PerExposedName Policy = iota
	// FirstBindable groups by declared name and ignores renames when
	// grouping.
	FirstBindable
)

func (p Policy) String() string {
	switch p {
	case FirstBindable:
		return "first-bindable"
	default:
		return "per-exposed-name"
	}
}

// ParsePolicy accepts the names printed by String; "_" and "-" are
// interchangeable.
func ParsePolicy(s string) (Policy, bool) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "", "per-exposed-name", "exposed":
		return PerExposedName, true
	case "first-bindable", "first":
		return FirstBindable, true
	}
	return PerExposedName, false
}
