package diag

import (
	"fmt"

	"cxxbind/internal/source"
)

type Note struct {
	Loc source.Location
	Msg string
}

// Diagnostic is one finding of a run. Symbol names the declaration it is
// about (qualified where known), so warnings stay useful without a location.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Location
	Symbol   string
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Location, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewWarning(code Code, primary source.Location, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

func NewError(code Code, primary source.Location, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(loc source.Location, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Loc: loc, Msg: msg})
	return d
}

func (d Diagnostic) WithSymbol(name string) Diagnostic {
	d.Symbol = name
	return d
}

// String renders the single-line form used in logs and error messages.
func (d Diagnostic) String() string {
	if d.Primary.IsZero() {
		return fmt.Sprintf("%s %s: %s", d.Severity, d.Code.ID(), d.Message)
	}
	return fmt.Sprintf("%s: %s %s: %s", d.Primary, d.Severity, d.Code.ID(), d.Message)
}
