package frontend

import (
	"cxxbind/internal/decl"
	"cxxbind/internal/diag"
	"cxxbind/internal/errs"
)

// CheckDiagnostics splits the stream's own diagnostics, plus any dangling
// type handles, into warnings and a fatal error. Everything at or above
// threshold goes into the error; structural defects are always warnings
// because the affected types degrade to absent.
func CheckDiagnostics(s *decl.Stream, threshold diag.Severity) ([]diag.Diagnostic, error) {
	var warnings, fatals []diag.Diagnostic
	for _, fd := range s.Diagnostics {
		sev, ok := diag.ParseSeverity(fd.Severity)
		if !ok {
			sev = diag.SevWarning
		}
		code := diag.FrontReported
		if sev >= threshold {
			code = diag.FrontFatal
		}
		d := diag.New(sev, code, fd.Loc.Location(), fd.Message)
		if sev >= threshold {
			fatals = append(fatals, d)
		} else {
			warnings = append(warnings, d)
		}
	}
	for _, p := range s.Validate() {
		warnings = append(warnings, diag.NewWarning(diag.FrontBadHandle, p.Loc.Location(), p.Message))
	}
	if len(fatals) > 0 {
		return warnings, &errs.FrontEndError{Diagnostics: fatals}
	}
	return warnings, nil
}
