package overload

import (
	"fmt"
	"strings"
	"unicode"

	"cxxbind/internal/diag"
	"cxxbind/internal/source"
	"cxxbind/internal/symbols"
)

// Rename gives a function or method a different host name. Signature is
// optional; without it every overload of Name is renamed.
type Rename struct {
	Name      string `toml:"name" yaml:"name" validate:"required"`
	Signature string `toml:"signature,omitempty" yaml:"signature,omitempty"`
	Exposed   string `toml:"to" yaml:"to" validate:"required"`
}

type sigKey struct{ name, sig string }

type entry struct {
	Rename
	used bool
}

// RenameTable answers lookups by qualified name, or by qualified name and
// whitespace-insensitive signature.
type RenameTable struct {
	entries []*entry
	byName  map[string]*entry
	bySig   map[sigKey]*entry
}

func NewRenameTable(renames []Rename) *RenameTable {
	t := &RenameTable{
		byName: make(map[string]*entry),
		bySig:  make(map[sigKey]*entry),
	}
	for _, r := range renames {
		e := &entry{Rename: r}
		t.entries = append(t.entries, e)
		if r.Signature == "" {
			t.byName[r.Name] = e
		} else {
			t.bySig[sigKey{r.Name, NormalizeSignature(r.Signature)}] = e
		}
	}
	return t
}

// NormalizeSignature drops all whitespace: "int (int, double)" and
// "int(int,double)" compare equal.
func NormalizeSignature(sig string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, sig)
}

func (t *RenameTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Lookup returns the new host name of the overload. Entries without a
// signature win over entries with one.
func (t *RenameTable) Lookup(qualified, signature string) (string, bool) {
	if t == nil {
		return "", false
	}
	if e, ok := t.byName[qualified]; ok {
		e.used = true
		return e.Exposed, true
	}
	if e, ok := t.bySig[sigKey{qualified, NormalizeSignature(signature)}]; ok {
		e.used = true
		return e.Exposed, true
	}
	return "", false
}

// Unused lists the entries no lookup has matched so far.
func (t *RenameTable) Unused() []Rename {
	if t == nil {
		return nil
	}
	var out []Rename
	for _, e := range t.entries {
		if !e.used {
			out = append(out, e.Rename)
		}
	}
	return out
}

// ApplyRenames sets the exposed name of every renamed free function and
// method, then rekeys the method maps. Constructors keep their names.
// Returns the number of renamed overloads.
func ApplyRenames(table *symbols.Table, renames *RenameTable, r diag.Reporter) int {
	if renames.Len() == 0 {
		return 0
	}
	if r == nil {
		r = diag.NopReporter{}
	}
	n := 0
	for _, group := range table.FunctionGroups() {
		for _, f := range group {
			if to, ok := renames.Lookup(f.Qualified(), f.Signature); ok {
				f.Exposed = to
				n++
			}
		}
	}
	for _, c := range table.ClassList() {
		changed := false
		c.EachMethod(func(m *symbols.Method) {
			if to, ok := renames.Lookup(m.Qualified(), m.Signature); ok {
				m.Exposed = to
				changed = true
				n++
			}
		})
		if changed {
			c.Rekey()
		}
	}
	for _, u := range renames.Unused() {
		msg := fmt.Sprintf("rename of %s matched no declaration", u.Name)
		if u.Signature != "" {
			msg = fmt.Sprintf("rename of %s %s matched no declaration", u.Name, u.Signature)
		}
		diag.ReportWarning(r, diag.BindUnusedRename, source.Location{}, msg).
			WithSymbol(u.Name).
			Emit()
	}
	return n
}
