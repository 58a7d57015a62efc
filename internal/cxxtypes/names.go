package cxxtypes

import (
	"regexp"
	"strings"
)

var (
	namespacePattern = regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_]*::`)
	stlPattern       = regexp.MustCompile(`std::(\w+)`)
	camelPattern     = regexp.MustCompile(`[A-Z]`)
)

var elaboratedPrefixes = [...]string{"class ", "struct ", "enum ", "union "}

// CppName drops the elaborated-type keyword from a native spelling, so that
// "class A" and "A" share one node.
func CppName(spelling string) string {
	name := strings.TrimSpace(spelling)
	for _, p := range elaboratedPrefixes {
		name = strings.TrimPrefix(name, p)
	}
	return name
}

// RemoveNamespace strips every namespace qualifier, including the ones
// nested inside template arguments.
func RemoveNamespace(name string) string {
	return namespacePattern.ReplaceAllString(name, "")
}

// DisplayName is the host-facing name: no namespaces, angle brackets
// replaced by square ones.
func DisplayName(cppName string) string {
	name := RemoveNamespace(cppName)
	name = strings.ReplaceAll(name, "<", "[")
	return strings.ReplaceAll(name, ">", "]")
}

// PlainName removes cv-qualifiers and reference/pointer markers from a
// display name.
func PlainName(display string) string {
	name := strings.ReplaceAll(display, "const ", "")
	name = strings.ReplaceAll(name, "volatile ", "")
	name = strings.ReplaceAll(name, "*const", "*")
	name = strings.ReplaceAll(name, " &&", "")
	name = strings.ReplaceAll(name, " &", "")
	name = strings.ReplaceAll(name, "&", "")
	name = strings.ReplaceAll(name, " *", "")
	name = strings.ReplaceAll(name, "*", "")
	name = strings.TrimSuffix(name, " const")
	return strings.TrimSpace(name)
}

// STLNames lists the std:: identifiers mentioned in a spelling, in order of
// appearance, without duplicates.
func STLNames(spelling string) []string {
	matches := stlPattern.FindAllStringSubmatch(spelling, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		out = append(out, m[1])
	}
	return out
}

// CamelToSnake converts "getValueAt" to "get_value_at" and "HTTPServer" to
// "http_server". An underscore goes before an upper-case letter that
// follows a lower-case one, or that starts a lower-case run.
func CamelToSnake(name string) string {
	if !camelPattern.MatchString(name) {
		return name
	}
	var sb strings.Builder
	sb.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isUpper(c) && i > 0 {
			prevLower := isLower(name[i-1])
			nextLower := i+1 < len(name) && isLower(name[i+1])
			if prevLower || nextLower {
				sb.WriteByte('_')
			}
		}
		if isUpper(c) {
			c += 'a' - 'A'
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
