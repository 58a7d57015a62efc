package emit

import "strings"

const indent = "    "

// writer assembles one document and records the exposed identifiers in
// the order it emits them.
type writer struct {
	sb  strings.Builder
	ids []string
}

func (w *writer) line(depth int, s string) {
	if s == "" {
		w.sb.WriteByte('\n')
		return
	}
	for range depth {
		w.sb.WriteString(indent)
	}
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
}

func (w *writer) lines(depth int, ls []string) {
	for _, l := range ls {
		w.line(depth, l)
	}
}

func (w *writer) blank() {
	s := w.sb.String()
	if s == "" || strings.HasSuffix(s, "\n\n") {
		return
	}
	w.sb.WriteByte('\n')
}

func (w *writer) id(name string) {
	w.ids = append(w.ids, name)
}

func (w *writer) String() string {
	return strings.TrimRight(w.sb.String(), "\n") + "\n"
}
