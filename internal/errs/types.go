package errs

import (
	"fmt"
	"strings"

	"cxxbind/internal/diag"
)

// FrontEndError carries every front-end diagnostic at or above the
// configured threshold.
type FrontEndError struct {
	Diagnostics []diag.Diagnostic
}

func (e *FrontEndError) Error() string {
	switch len(e.Diagnostics) {
	case 0:
		return "front end failed"
	case 1:
		return "front end: " + e.Diagnostics[0].String()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "front end reported %d fatal diagnostics:", len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		sb.WriteString("\n  ")
		sb.WriteString(d.String())
	}
	return sb.String()
}

// ConfigurationError lists every pre-flight problem found, not just the first.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Problems) == 1 {
		return "configuration: " + e.Problems[0]
	}
	return "configuration:\n  " + strings.Join(e.Problems, "\n  ")
}

// Add appends a problem; nil-safe so callers can collect lazily.
func (e *ConfigurationError) Add(format string, args ...any) *ConfigurationError {
	if e == nil {
		e = &ConfigurationError{}
	}
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
	return e
}

// OrNil returns nil when no problem was collected.
func (e *ConfigurationError) OrNil() error {
	if e == nil || len(e.Problems) == 0 {
		return nil
	}
	return e
}

// UnsupportedTypeError means no converter can carry Type in Role.
type UnsupportedTypeError struct {
	Type   string
	Role   string
	Detail string
}

func (e *UnsupportedTypeError) Error() string {
	msg := fmt.Sprintf("unsupported type %q", e.Type)
	if e.Role != "" {
		msg += " as " + e.Role
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// NameConflictError records that Dropped lost against Kept for Name.
type NameConflictError struct {
	Name    string
	Kept    string
	Dropped string
}

func (e *NameConflictError) Error() string {
	if e.Kept == "" && e.Dropped == "" {
		return fmt.Sprintf("name conflict on %q", e.Name)
	}
	return fmt.Sprintf("name conflict on %q: kept %s, dropped %s", e.Name, e.Kept, e.Dropped)
}

func Unsupported(typ, role, detail string) error {
	return &UnsupportedTypeError{Type: typ, Role: role, Detail: detail}
}

func Unsupportedf(typ, role, format string, args ...any) error {
	return &UnsupportedTypeError{Type: typ, Role: role, Detail: fmt.Sprintf(format, args...)}
}
