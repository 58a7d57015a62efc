// Package frontend obtains a declaration stream for a set of headers. The
// C++ parsing itself happens in an external walker; this package either
// reads a dump it wrote earlier or runs it once and decodes its output.
package frontend

import (
	"context"

	"cxxbind/internal/decl"
	"cxxbind/internal/diag"
	"cxxbind/internal/errs"
	"cxxbind/internal/source"
)

// Request is what the walker needs to see the same translation unit as
// the compiler will.
type Request struct {
	Headers     []string
	IncludeDirs []string
	Sources     []string
	Flags       []string
}

type FrontEnd interface {
	Parse(ctx context.Context, req Request) (*decl.Stream, error)
}

// fatal wraps err as a front-end failure about file.
func fatal(file string, err error) error {
	d := diag.New(diag.SevFatal, diag.FrontFatal, source.Location{File: file}, err.Error())
	return &errs.FrontEndError{Diagnostics: []diag.Diagnostic{d}}
}

// DumpFile reads a stream written by the walker, msgpack or JSON by
// extension.
type DumpFile struct {
	Path string
}

func (d DumpFile) Parse(ctx context.Context, _ Request) (*decl.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := decl.ReadFile(d.Path)
	if err != nil {
		return nil, fatal(d.Path, err)
	}
	return s, nil
}

// Static returns a fixed stream. Tools that build streams in memory with
// decl.Builder use it.
type Static struct {
	Stream *decl.Stream
}

func (s Static) Parse(ctx context.Context, _ Request) (*decl.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Stream == nil {
		return nil, fatal("", errs.New("no declaration stream"))
	}
	return s.Stream, nil
}
