// Package config loads and checks the description of one binding run.
// Files are TOML or YAML; relative paths are taken from the file's
// directory.
package config

import (
	"path/filepath"
	"regexp"
	"strings"

	"cxxbind/internal/convert"
	"cxxbind/internal/cxxtypes"
	"cxxbind/internal/diag"
	"cxxbind/internal/frontend"
	"cxxbind/internal/overload"
)

type Config struct {
	Module       Module            `toml:"module" yaml:"module"`
	FrontEnd     FrontEnd          `toml:"frontend" yaml:"frontend"`
	Overload     Overload          `toml:"overload" yaml:"overload"`
	Renames      []overload.Rename `toml:"rename" yaml:"rename" validate:"dive"`
	VoidPointers []VoidPointer     `toml:"void_pointer" yaml:"void_pointer" validate:"dive"`

	// Path is the file the config came from, empty for built configs.
	Path string `toml:"-" yaml:"-"`
}

type Module struct {
	// Name of the host module; derived from the header when there is
	// exactly one.
	Name        string   `toml:"name" yaml:"name" validate:"omitempty,hostident"`
	Headers     []string `toml:"headers" yaml:"headers" validate:"required,dive,required"`
	IncludeDirs []string `toml:"include_dirs" yaml:"include_dirs" validate:"dive,required"`
	Sources     []string `toml:"sources" yaml:"sources" validate:"dive,required"`
	Flags       []string `toml:"flags" yaml:"flags"`
	Output      string   `toml:"output" yaml:"output"`
	Globals     string   `toml:"globals" yaml:"globals" validate:"omitempty,hostident"`
	// Stub defaults to true.
	Stub *bool `toml:"stub" yaml:"stub"`
	// HostNames is "snake" (default) or "keep".
	HostNames         string   `toml:"host_names" yaml:"host_names" validate:"omitempty,oneof=snake keep"`
	ExtraDeclarations []string `toml:"extra_declarations" yaml:"extra_declarations"`
}

type FrontEnd struct {
	// Dump is a stream file written by the walker. Exactly one of Dump and
	// Command is set.
	Dump              string   `toml:"dump" yaml:"dump"`
	Command           []string `toml:"command" yaml:"command"`
	SeverityThreshold string   `toml:"severity_threshold" yaml:"severity_threshold"`
}

type Overload struct {
	Policy string `toml:"policy" yaml:"policy"`
}

// VoidPointer maps void* parameters and results whose spelling matches
// Match (any void* when empty) to arrays of Element.
type VoidPointer struct {
	Match   string `toml:"match" yaml:"match"`
	Element string `toml:"element" yaml:"element" validate:"required"`
}

var nonIdent = regexp.MustCompile(`[^A-Za-z0-9_]`)

// ModuleName returns the configured name or the one derived from a
// single header; empty when neither is available.
func (c *Config) ModuleName() string {
	if c.Module.Name != "" {
		return c.Module.Name
	}
	if len(c.Module.Headers) != 1 {
		return ""
	}
	base := filepath.Base(c.Module.Headers[0])
	name := nonIdent.ReplaceAllString(strings.TrimSuffix(base, filepath.Ext(base)), "_")
	if name == "" || name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name
}

func (c *Config) WantStub() bool {
	return c.Module.Stub == nil || *c.Module.Stub
}

// Threshold is the lowest front-end severity that fails the run; error by
// default.
func (c *Config) Threshold() diag.Severity {
	if sev, ok := diag.ParseSeverity(c.FrontEnd.SeverityThreshold); ok {
		return sev
	}
	return diag.SevError
}

func (c *Config) Policy() overload.Policy {
	p, _ := overload.ParsePolicy(c.Overload.Policy)
	return p
}

func keepName(s string) string { return s }

func (c *Config) HostName() func(string) string {
	if c.Module.HostNames == "keep" {
		return keepName
	}
	return cxxtypes.CamelToSnake
}

// Converters builds the registered converters, in file order.
func (c *Config) Converters() ([]convert.Converter, error) {
	out := make([]convert.Converter, 0, len(c.VoidPointers))
	for _, vp := range c.VoidPointers {
		conv, err := convert.NewVoidPointer(vp.Match, vp.Element)
		if err != nil {
			return nil, err
		}
		out = append(out, conv)
	}
	return out, nil
}

func (c *Config) Request() frontend.Request {
	return frontend.Request{
		Headers:     c.Module.Headers,
		IncludeDirs: c.Module.IncludeDirs,
		Sources:     c.Module.Sources,
		Flags:       c.Module.Flags,
	}
}

// NewFrontEnd picks the dump reader when a dump is configured, the
// command otherwise.
func (c *Config) NewFrontEnd() frontend.FrontEnd {
	if c.FrontEnd.Dump != "" {
		return frontend.DumpFile{Path: c.FrontEnd.Dump}
	}
	if len(c.FrontEnd.Command) == 0 {
		return nil
	}
	return frontend.Command{Path: c.FrontEnd.Command[0], Args: c.FrontEnd.Command[1:], Dir: c.Dir()}
}

// Dir is the directory relative paths are taken from.
func (c *Config) Dir() string {
	if c.Path == "" {
		return "."
	}
	return filepath.Dir(c.Path)
}

// OutputDir defaults to the config's directory.
func (c *Config) OutputDir() string {
	if c.Module.Output != "" {
		return c.Module.Output
	}
	return c.Dir()
}

// resolvePaths makes every relative path absolute against Dir.
func (c *Config) resolvePaths() {
	dir := c.Dir()
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	each := func(ps []string) {
		for i := range ps {
			ps[i] = abs(ps[i])
		}
	}
	each(c.Module.Headers)
	each(c.Module.IncludeDirs)
	each(c.Module.Sources)
	c.Module.Output = abs(c.Module.Output)
	c.FrontEnd.Dump = abs(c.FrontEnd.Dump)
}
