// Package emit renders a bound module as three documents: declarations
// for the native side, the host implementation and an optional type stub.
// All three are produced from one ordered entry list.
package emit

import (
	"os"
	"path/filepath"
	"slices"

	"cxxbind/internal/binder"
	"cxxbind/internal/errs"
)

const generatedHeader = "# Generated by cxxbind. Do not edit."

type Options struct {
	// Module is the host module name; documents are named after it.
	Module string
	// Declarations names the declarations module; "_" + Module by default.
	Declarations string
	// Extra lines are copied into the declarations document after the
	// imports.
	Extra []string
}

// Documents holds the generated text and the exposed identifiers each
// document emitted, in order.
type Documents struct {
	Module             string
	DeclarationsModule string

	Declarations   string
	Implementation string
	Stub           string

	DeclarationIDs    []string
	ImplementationIDs []string
	StubIDs           []string
}

func Emit(out *binder.Output, opts Options) *Documents {
	if opts.Declarations == "" {
		opts.Declarations = "_" + opts.Module
	}
	list := entries(out)
	d := &Documents{Module: opts.Module, DeclarationsModule: opts.Declarations}
	d.Declarations, d.DeclarationIDs = renderDeclarations(out, list, opts)
	d.Implementation, d.ImplementationIDs = renderImplementation(out, list, opts.Declarations)
	d.Stub, d.StubIDs = renderStub(out, list)
	return d
}

// Agree checks that the documents expose the same identifiers in the same
// order.
func (d *Documents) Agree() error {
	if err := agree("implementation", d.DeclarationIDs, d.ImplementationIDs); err != nil {
		return err
	}
	return agree("stub", d.DeclarationIDs, d.StubIDs)
}

func agree(what string, want, got []string) error {
	if slices.Equal(want, got) {
		return nil
	}
	for i := range min(len(want), len(got)) {
		if want[i] != got[i] {
			return errs.Newf("%s disagrees with declarations at identifier %d: %q vs %q", what, i, got[i], want[i])
		}
	}
	return errs.Newf("%s exposes %d identifiers, declarations %d", what, len(got), len(want))
}

// File is one generated document.
type File struct {
	Name    string
	Content string
}

// Files lists the documents to write. The stub is left out unless asked
// for.
func (d *Documents) Files(stub bool) []File {
	files := []File{
		{Name: d.DeclarationsModule + ".pxd", Content: d.Declarations},
		{Name: d.Module + ".pyx", Content: d.Implementation},
	}
	if stub {
		files = append(files, File{Name: d.Module + ".pyi", Content: d.Stub})
	}
	return files
}

// Write stores the documents in dir and returns the written paths.
func (d *Documents) Write(dir string, stub bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrapf(err, "create %s", dir)
	}
	var paths []string
	for _, f := range d.Files(stub) {
		p := filepath.Join(dir, f.Name)
		if err := writeAtomic(p, []byte(f.Content)); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// writeAtomic replaces path through a temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return errs.Wrapf(err, "write %s", path)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(data); err != nil {
		f.Close()
		return errs.Wrapf(err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errs.Wrapf(err, "write %s", path)
	}
	return errs.Wrapf(os.Rename(f.Name(), path), "write %s", path)
}
