package emit

import (
	"bytes"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"cxxbind/internal/binder"
	"cxxbind/internal/errs"
)

// bump when Manifest changes shape
const manifestSchema uint16 = 1

// Manifest records what a run bound, for tooling that diffs runs or checks
// that a module was regenerated. Stored as msgpack next to the documents.
type Manifest struct {
	Schema  uint16
	Module  string
	Globals string
	Entries []ManifestEntry
}

type ManifestEntry struct {
	Kind       string
	Owner      string `msgpack:",omitempty"`
	Name       string
	HostName   string
	Native     string   `msgpack:",omitempty"`
	Converters []string `msgpack:",omitempty"`
}

func bindingEntry(b *binder.Binding) ManifestEntry {
	e := ManifestEntry{
		Kind:       b.Kind.String(),
		Owner:      b.Owner,
		Name:       b.Name,
		HostName:   b.HostName,
		Converters: b.Converters(),
	}
	if b.Function != nil {
		e.Native = b.Function.Qualified()
	}
	return e
}

func varEntries(v *binder.Var) []ManifestEntry {
	out := []ManifestEntry{bindingEntry(v.Getter)}
	if v.Setter != nil {
		out = append(out, bindingEntry(v.Setter))
	}
	switch {
	case v.Variable != nil:
		for i := range out {
			out[i].Native = v.Variable.Qualified()
		}
	case v.Macro != nil:
		out[0].Native = v.Macro.Native
	}
	return out
}

// NewManifest lists every binding of out in emission order.
func NewManifest(module string, out *binder.Output) *Manifest {
	m := &Manifest{Schema: manifestSchema, Module: module, Globals: out.GlobalsName}
	for _, v := range out.Vars {
		m.Entries = append(m.Entries, varEntries(v)...)
	}
	for _, f := range out.Functions {
		m.Entries = append(m.Entries, bindingEntry(f))
	}
	for _, c := range out.Classes {
		for _, f := range c.Fields {
			m.Entries = append(m.Entries, varEntries(f)...)
		}
		if c.Ctor != nil {
			m.Entries = append(m.Entries, bindingEntry(c.Ctor))
		}
		for _, b := range c.Methods {
			m.Entries = append(m.Entries, bindingEntry(b))
		}
	}
	return m
}

func (m *Manifest) Encode(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(m)
}

// DecodeManifest reads a manifest; a schema mismatch is an error.
func DecodeManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := msgpack.NewDecoder(r).Decode(&m); err != nil {
		return nil, errs.Wrap(err, "decode manifest")
	}
	if m.Schema != manifestSchema {
		return nil, errs.Newf("manifest schema %d, want %d", m.Schema, manifestSchema)
	}
	return &m, nil
}

func (m *Manifest) Write(path string) error {
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		return errs.Wrap(err, "encode manifest")
	}
	return writeAtomic(path, buf.Bytes())
}

func ReadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeManifest(f)
}
