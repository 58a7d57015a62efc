package config

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"cxxbind/internal/convert"
	"cxxbind/internal/diag"
	"cxxbind/internal/errs"
	"cxxbind/internal/overload"
	"cxxbind/internal/symbols"
)

var hostIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("hostident", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return hostIdent.MatchString(s) && !symbols.IsHostKeyword(s)
	})
	return v
}

// Preflight reports every problem that would make a run fail before the
// front end is started. All problems come back in one ConfigurationError.
func Preflight(c *Config) error {
	var problems *errs.ConfigurationError
	if err := newValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errs.As(err, &verrs) {
			return errs.Wrap(err, "validate config")
		}
		for _, fe := range verrs {
			problems = problems.Add("%s: %s", fieldPath(fe.Namespace()), describe(fe))
		}
	}

	for _, h := range c.Module.Headers {
		problems = checkPath(problems, "header", h, false)
	}
	for _, d := range c.Module.IncludeDirs {
		problems = checkPath(problems, "include dir", d, true)
	}
	for _, s := range c.Module.Sources {
		problems = checkPath(problems, "source", s, false)
	}
	if c.ModuleName() == "" && len(c.Module.Headers) > 1 {
		problems = problems.Add("module.name: required when there is more than one header")
	}

	switch {
	case c.FrontEnd.Dump != "" && len(c.FrontEnd.Command) > 0:
		problems = problems.Add("frontend: dump and command are mutually exclusive")
	case c.FrontEnd.Dump != "":
		problems = checkPath(problems, "front-end dump", c.FrontEnd.Dump, false)
	case len(c.FrontEnd.Command) == 0:
		problems = problems.Add("frontend: one of dump or command is required")
	}
	if s := c.FrontEnd.SeverityThreshold; s != "" {
		if _, ok := diag.ParseSeverity(s); !ok {
			problems = problems.Add("frontend.severity_threshold: unknown severity %q", s)
		}
	}
	if _, ok := overload.ParsePolicy(c.Overload.Policy); !ok {
		problems = problems.Add("overload.policy: unknown policy %q", c.Overload.Policy)
	}
	for i, vp := range c.VoidPointers {
		if vp.Element == "" {
			continue
		}
		if _, err := convert.NewVoidPointer(vp.Match, vp.Element); err != nil {
			problems = problems.Add("void_pointer[%d]: %v", i, err)
		}
	}
	return problems.OrNil()
}

func checkPath(problems *errs.ConfigurationError, what, path string, dir bool) *errs.ConfigurationError {
	info, err := os.Stat(path)
	switch {
	case err != nil && os.IsNotExist(err):
		return problems.Add("%s %s does not exist", what, path)
	case err != nil:
		return problems.Add("%s %s: %v", what, path, err)
	case dir && !info.IsDir():
		return problems.Add("%s %s is not a directory", what, path)
	case !dir && info.IsDir():
		return problems.Add("%s %s is a directory", what, path)
	}
	return problems
}

// fieldPath drops the root type name: "Config.module.headers" -> "module.headers".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "hostident":
		return fmt.Sprintf("%q is not a usable host identifier", fe.Value())
	case "oneof":
		return fmt.Sprintf("%q is not one of %s", fe.Value(), fe.Param())
	}
	return fmt.Sprintf("failed %q", fe.Tag())
}
