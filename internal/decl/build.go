package decl

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"cxxbind/internal/cxxtypes"
)

// Builder assembles a Stream in code. Tools that wrap a front end and the
// tests of every phase use it; types with the same spelling share a handle.
type Builder struct {
	s      Stream
	byName map[string]Handle
	file   string
	line   uint32
}

func NewBuilder(headers ...string) *Builder {
	b := &Builder{
		s:      Stream{Schema: SchemaVersion, Headers: headers},
		byName: make(map[string]Handle),
	}
	if len(headers) > 0 {
		b.file = headers[0]
	}
	return b
}

var primKinds = map[string]cxxtypes.Kind{
	"void":               cxxtypes.KindVoid,
	"bool":               cxxtypes.KindBool,
	"char":               cxxtypes.KindCharS,
	"signed char":        cxxtypes.KindSChar,
	"unsigned char":      cxxtypes.KindUChar,
	"short":              cxxtypes.KindShort,
	"unsigned short":     cxxtypes.KindUShort,
	"int":                cxxtypes.KindInt,
	"unsigned int":       cxxtypes.KindUInt,
	"long":               cxxtypes.KindLong,
	"unsigned long":      cxxtypes.KindULong,
	"long long":          cxxtypes.KindLongLong,
	"unsigned long long": cxxtypes.KindULongLong,
	"float":              cxxtypes.KindFloat,
	"double":             cxxtypes.KindDouble,
	"long double":        cxxtypes.KindLongDouble,
}

// Raw adds a type record as is, or returns the handle already registered
// for its spelling.
func (b *Builder) Raw(rec TypeRecord) Handle {
	if h, ok := b.byName[rec.Spelling]; ok {
		return h
	}
	n, err := safecast.Conv[uint32](len(b.s.Types) + 1)
	if err != nil {
		panic(fmt.Errorf("type table overflow: %w", err))
	}
	b.s.Types = append(b.s.Types, rec)
	h := Handle(n)
	b.byName[rec.Spelling] = h
	return h
}

func (b *Builder) Spelling(h Handle) string {
	return b.s.Types[int(h)-1].Spelling
}

// Prim returns a builtin type by its C++ spelling ("int", "unsigned long").
func (b *Builder) Prim(name string) Handle {
	k, ok := primKinds[name]
	if !ok {
		panic(fmt.Sprintf("decl: unknown primitive %q", name))
	}
	return b.Raw(TypeRecord{Spelling: name, Kind: k.String()})
}

func (b *Builder) Void() Handle { return b.Prim("void") }

// Const returns the const-qualified form of h.
func (b *Builder) Const(h Handle) Handle {
	base := b.s.Types[int(h)-1]
	spelling := "const " + base.Spelling
	if base.Kind == cxxtypes.KindPointer.String() {
		spelling = base.Spelling + "const"
	}
	rec := base
	rec.Spelling = spelling
	rec.Const = true
	rec.Canonical = NoHandle
	return b.Raw(rec)
}

func (b *Builder) derived(h Handle, suffix string, k cxxtypes.Kind) Handle {
	base := b.Spelling(h)
	spelling := base + " " + suffix
	if strings.HasSuffix(base, "*") && suffix == "*" {
		spelling = base + "*"
	}
	return b.Raw(TypeRecord{Spelling: spelling, Kind: k.String(), Pointee: h})
}

func (b *Builder) Pointer(h Handle) Handle { return b.derived(h, "*", cxxtypes.KindPointer) }
func (b *Builder) LRef(h Handle) Handle    { return b.derived(h, "&", cxxtypes.KindLValueReference) }
func (b *Builder) RRef(h Handle) Handle    { return b.derived(h, "&&", cxxtypes.KindRValueReference) }

// ConstRef is the common "const T &" parameter form.
func (b *Builder) ConstRef(h Handle) Handle { return b.LRef(b.Const(h)) }

// Record returns a class/struct type by qualified spelling.
func (b *Builder) Record(spelling string) Handle {
	return b.Raw(TypeRecord{Spelling: spelling, Kind: cxxtypes.KindRecord.String()})
}

func (b *Builder) EnumType(spelling string) Handle {
	return b.Raw(TypeRecord{Spelling: spelling, Kind: cxxtypes.KindEnum.String()})
}

func (b *Builder) Array(elem Handle, n int64) Handle {
	spelling := fmt.Sprintf("%s[%d]", b.Spelling(elem), n)
	return b.Raw(TypeRecord{Spelling: spelling, Kind: cxxtypes.KindConstantArray.String(), Element: elem, Count: n})
}

// Template returns an instantiation such as std::vector<int>; the spelling
// is derived from name and the argument spellings.
func (b *Builder) Template(name string, args ...Handle) Handle {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = b.Spelling(a)
	}
	spelling := name + "<" + strings.Join(parts, ", ") + ">"
	return b.Raw(TypeRecord{Spelling: spelling, Kind: cxxtypes.KindRecord.String(), TemplateArgs: args})
}

// Alias returns a typedef'd spelling whose canonical form is target.
func (b *Builder) Alias(spelling string, target Handle) Handle {
	return b.Raw(TypeRecord{Spelling: spelling, Kind: cxxtypes.KindTypedef.String(), Canonical: target})
}

// At sets the file and line stamped on following declarations.
func (b *Builder) At(file string, line uint32) *Builder {
	b.file = file
	b.line = line
	return b
}

// Add appends top-level declarations, stamping locations on those without
// one. Each added declaration advances the line counter.
func (b *Builder) Add(ds ...Decl) *Builder {
	for _, d := range ds {
		b.stamp(&d)
		b.s.Decls = append(b.s.Decls, d)
	}
	return b
}

func (b *Builder) stamp(d *Decl) {
	if d.Loc.File == "" {
		b.line++
		d.Loc = Loc{File: b.file, Line: b.line, Col: 1}
	}
	for i := range d.Members {
		b.stamp(&d.Members[i])
	}
}

// Diag appends a front-end diagnostic.
func (b *Builder) Diag(severity, message string) *Builder {
	b.s.Diagnostics = append(b.s.Diagnostics, Diagnostic{Severity: severity, Message: message, Loc: Loc{File: b.file, Line: b.line}})
	return b
}

// Stream returns the built stream. The builder must not be used afterwards.
func (b *Builder) Stream() *Stream {
	return &b.s
}
