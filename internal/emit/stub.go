package emit

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"cxxbind/internal/binder"
)

var typingNames = regexp.MustCompile(`\b(Any|Iterable|Mapping)\b`)

type stub struct {
	w   writer
	out *binder.Output

	globalsDone bool
}

func renderStub(out *binder.Output, list []entry) (string, []string) {
	s := &stub{out: out}
	var body writer
	s.body(&body, list)

	s.w.line(0, generatedHeader)
	if hasEnums(list) {
		s.w.line(0, "from enum import IntEnum")
	}
	text := body.sb.String()
	if names := typingImports(text); len(names) > 0 {
		s.w.line(0, "from typing import "+strings.Join(names, ", "))
	}
	if strings.Contains(text, "np.") {
		s.w.line(0, "import numpy as np")
	}
	if text != "" {
		s.w.sb.WriteString("\n" + text)
	}
	s.w.ids = body.ids
	return s.w.String(), s.w.ids
}

// typingImports lists the typing names the stub body mentions.
func typingImports(text string) []string {
	seen := map[string]bool{}
	for _, m := range typingNames.FindAllString(text, -1) {
		seen[m] = true
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func (s *stub) body(w *writer, list []entry) {
	for _, e := range list {
		if e.kind > EntryMacro {
			s.globals(w)
		}
		switch e.kind {
		case EntryEnum:
			w.blank()
			w.line(0, fmt.Sprintf("class %s(IntEnum):", e.name))
			w.lines(1, enumBody(e.enum))
		case EntryMacro:
			w.blank()
			w.line(0, fmt.Sprintf("%s: %s", e.name, e.macro.Literal.HostType()))
		case EntryFunction:
			w.blank()
			w.lines(0, e.fn.Stub)
		case EntryClass:
			s.class(w, e.class)
		}
		w.id(e.name)
		if e.kind == EntryClass {
			w.ids = append(w.ids, memberIDs(e.class)...)
		}
	}
	s.globals(w)
}

func varStub(v *binder.Var) []string {
	lines := append([]string(nil), v.Getter.Stub...)
	if v.Setter != nil {
		lines = append(lines, v.Setter.Stub...)
	}
	return lines
}

func (s *stub) globals(w *writer) {
	if s.globalsDone || len(s.out.Vars) == 0 {
		s.globalsDone = true
		return
	}
	s.globalsDone = true
	w.blank()
	w.line(0, fmt.Sprintf("class %s:", s.out.GlobalsClass))
	for _, v := range s.out.Vars {
		w.lines(1, varStub(v))
	}
	w.blank()
	w.line(0, fmt.Sprintf("%s: %s", s.out.GlobalsName, s.out.GlobalsClass))
}

func (s *stub) class(w *writer, c *binder.Class) {
	w.blank()
	w.line(0, fmt.Sprintf("class %s:", c.Class.Exposed))
	n := 0
	for _, f := range c.Fields {
		w.lines(1, varStub(f))
		n++
	}
	if c.Ctor != nil {
		w.lines(1, c.Ctor.Stub)
		n++
	}
	for _, b := range c.Methods {
		w.lines(1, b.Stub)
		n++
	}
	if n == 0 {
		w.line(1, "...")
	}
}
