// Package diag defines the diagnostic model shared by every phase of a
// binding run.
//
// Phases never print. They emit Diagnostic values through a Reporter; the
// driver owns a Bag per run and hands its contents back to the caller as
// the run's warnings. Rendering lives in internal/diagfmt.
//
// # Data model
//
//   - Severity – Info, Warning, Error, Fatal. Front-end diagnostics keep
//     their own level; everything the binder emits is a Warning.
//   - Code – compact numeric identifier grouped by phase (FE, SYM, INH,
//     BND, CFG) with a stable string form.
//   - Message – short and actionable.
//   - Primary – header location of the declaration, when known.
//   - Symbol – qualified name of the declaration the finding is about.
//   - Notes – extra context such as the location of the kept overload.
//
// A Bag created with NewBag(0) has no limit. The binder relies on that: a
// dropped member must always leave a warning behind.
package diag
