package binder

import (
	"fmt"
	"strings"

	"cxxbind/internal/convert"
	"cxxbind/internal/symbols"
)

const indent = "    "

// call forms of the host dialect
const (
	funcCall   = "cpp.%s(%s)"
	methodCall = "self.thisptr.get().%s(%s)"
	staticCall = "cpp.%s.%s(%s)"
	ctorCall   = "self.thisptr = shared_ptr[cpp.%s](new cpp.%s(%s))"
	setterCall = "%s.%s = %s"
	getterCall = "%s.%s"
)

func block(header string, body []string) []string {
	out := make([]string, 0, len(body)+1)
	out = append(out, header)
	if len(body) == 0 {
		return append(out, indent+"pass")
	}
	for _, line := range body {
		out = append(out, indent+line)
	}
	return out
}

// trailingDefaults keeps defaults only on the last run of defaulted
// arguments.
func trailingDefaults(args []*symbols.Variable) []*symbols.Literal {
	out := make([]*symbols.Literal, len(args))
	for i := len(args) - 1; i >= 0; i-- {
		if args[i].Default == nil {
			break
		}
		out[i] = args[i].Default
	}
	return out
}

func withDefault(s string, lit *symbols.Literal) string {
	if lit == nil {
		return s
	}
	return s + " = " + lit.Host()
}

func inputArgs(self string, params []Param) string {
	parts := make([]string, 0, len(params)+1)
	if self != "" {
		parts = append(parts, self+" self")
	}
	for _, p := range params {
		parts = append(parts, withDefault(p.Conv.InputDecl()+" "+p.Name, p.Default))
	}
	return strings.Join(parts, ", ")
}

func stubArgs(self bool, params []Param) string {
	parts := make([]string, 0, len(params)+1)
	if self {
		parts = append(parts, "self")
	}
	for _, p := range params {
		parts = append(parts, withDefault(p.Name+": "+p.Conv.Signature(), p.Default))
	}
	return strings.Join(parts, ", ")
}

func convertArgs(params []Param) (pre []string, call string) {
	args := make([]string, 0, len(params))
	for _, p := range params {
		a := convert.NewArg(p.Name)
		pre = append(pre, p.Conv.ToNative(a)...)
		args = append(args, p.Conv.CallArg(a))
	}
	return pre, strings.Join(args, ", ")
}

func returnType(ret *convert.Conversion) string {
	if ret == nil {
		return "None"
	}
	return ret.Signature()
}

func stubDef(name, args, ret string) string {
	return fmt.Sprintf("def %s(%s) -> %s: ...", name, args, ret)
}

// render fills Impl and Stub of a function-like binding.
func (b *Binding) render() {
	pre, args := convertArgs(b.Params)
	var (
		prefix = "cpdef"
		self   string
		call   string
	)
	switch b.Kind {
	case KindFunction:
		call = fmt.Sprintf(funcCall, b.Name, args)
	case KindMethod:
		self = b.Owner
		call = fmt.Sprintf(methodCall, b.Name, args)
		if strings.HasPrefix(b.HostName, "__") {
			prefix = "def"
		}
	case KindStaticMethod:
		prefix = "def"
		call = fmt.Sprintf(staticCall, b.Owner, b.Name, args)
	case KindConstructor:
		prefix = "def"
		self = b.Owner
		call = fmt.Sprintf(ctorCall, b.Owner, b.Owner, args)
	}

	body := pre
	if b.Return != nil {
		body = append(body, b.Return.FromNative(call, b.Copy)...)
	} else {
		body = append(body, call)
	}
	header := fmt.Sprintf("%s %s(%s):", prefix, b.HostName, inputArgs(self, b.Params))
	b.Impl = block(header, body)
	b.Stub = []string{stubDef(b.HostName, stubArgs(self != "", b.Params), returnType(b.Return))}
	if b.Kind == KindStaticMethod {
		b.Impl = append([]string{"@staticmethod"}, b.Impl...)
		b.Stub = append([]string{"@staticmethod"}, b.Stub...)
	}
}

// renderGetter reads prefix.name; Return is nil for untyped macros.
func (b *Binding) renderGetter(prefix, native, stubType string) {
	call := fmt.Sprintf(getterCall, prefix, native)
	var body []string
	if b.Return != nil {
		body = b.Return.FromNative(call, b.Copy)
		stubType = b.Return.Signature()
	} else {
		body = []string{"return " + call}
	}
	b.Impl = append([]string{"@property"}, block(fmt.Sprintf("def %s(self):", b.HostName), body)...)
	b.Stub = []string{"@property", stubDef(b.HostName, "self", stubType)}
}

func (b *Binding) renderSetter(prefix, native string) {
	p := b.Params[0]
	a := convert.NewArg(p.Name)
	body := append(p.Conv.ToNative(a), fmt.Sprintf(setterCall, prefix, native, p.Conv.CallArg(a)))
	header := fmt.Sprintf("def %s(self, %s %s):", b.HostName, p.Conv.InputDecl(), p.Name)
	b.Impl = append([]string{"@" + b.HostName + ".setter"}, block(header, body)...)
	b.Stub = []string{"@" + b.HostName + ".setter", stubDef(b.HostName, "self, "+p.Name+": "+p.Conv.Signature(), "None")}
}
