// Package testkit checks structural invariants of symbol tables, bindings
// and emitted documents. Tests of several packages share it.
package testkit

import (
	"fmt"

	"cxxbind/internal/binder"
	"cxxbind/internal/emit"
	"cxxbind/internal/symbols"
)

// CheckTableInvariants runs a minimal set of table invariants:
// 1) every overload is filed under its exposed name
// 2) every recorded base resolves to a class of the same table (holds once
//    the linearizer dropped unresolved bases)
func CheckTableInvariants(t *symbols.Table) error {
	if t == nil {
		return fmt.Errorf("nil table")
	}
	for _, c := range t.ClassList() {
		for p := c.Methods.Oldest(); p != nil; p = p.Next() {
			for _, m := range p.Value {
				if m.Exposed != p.Key {
					return fmt.Errorf("%s: overload %q filed under %q", c.Native, m.Exposed, p.Key)
				}
			}
		}
		for _, base := range c.Bases {
			if _, ok := t.ResolveBase(c, base); !ok {
				return fmt.Errorf("%s: base %q does not resolve", c.Native, base)
			}
		}
	}
	return nil
}

// CheckOutputInvariants checks the bindings of one run:
// 1) host names are unique among free functions and within each class
// 2) every parameter has a conversion; defaults only trail
// 3) constructors and setters return nothing
func CheckOutputInvariants(out *binder.Output) error {
	if out == nil {
		return fmt.Errorf("nil output")
	}
	if err := uniqueHostNames("functions", out.Functions); err != nil {
		return err
	}
	all := append([]*binder.Binding(nil), out.Functions...)
	for _, v := range out.Vars {
		all = append(all, v.Getter)
		if v.Setter != nil {
			all = append(all, v.Setter)
		}
	}
	for _, c := range out.Classes {
		if err := uniqueHostNames(c.Class.Native, c.Methods); err != nil {
			return err
		}
		fields := make(map[string]bool, len(c.Fields))
		for _, f := range c.Fields {
			if fields[f.HostName] {
				return fmt.Errorf("%s: field %q bound twice", c.Class.Native, f.HostName)
			}
			fields[f.HostName] = true
			all = append(all, f.Getter)
			if f.Setter != nil {
				all = append(all, f.Setter)
			}
		}
		if c.Ctor != nil {
			all = append(all, c.Ctor)
		}
		all = append(all, c.Methods...)
	}
	for _, b := range all {
		if err := checkBinding(b); err != nil {
			return err
		}
	}
	return nil
}

func uniqueHostNames(scope string, list []*binder.Binding) error {
	seen := make(map[string]bool, len(list))
	for _, b := range list {
		if seen[b.HostName] {
			return fmt.Errorf("%s: host name %q bound twice", scope, b.HostName)
		}
		seen[b.HostName] = true
	}
	return nil
}

func checkBinding(b *binder.Binding) error {
	if b == nil {
		return fmt.Errorf("nil binding")
	}
	defaulted := false
	for i, p := range b.Params {
		if p.Conv == nil {
			return fmt.Errorf("%s: parameter %d has no conversion", b.Name, i)
		}
		if p.Default != nil {
			defaulted = true
		} else if defaulted {
			return fmt.Errorf("%s: parameter %d follows a defaulted one", b.Name, i)
		}
	}
	switch b.Kind {
	case binder.KindConstructor, binder.KindSetter:
		if b.Return != nil {
			return fmt.Errorf("%s: %s returns a value", b.Name, b.Kind)
		}
	}
	return nil
}

// CheckDocuments verifies that the three documents expose the same
// identifiers in the same order.
func CheckDocuments(d *emit.Documents) error {
	if d == nil {
		return fmt.Errorf("nil documents")
	}
	return d.Agree()
}
