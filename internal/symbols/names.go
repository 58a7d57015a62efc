package symbols

import (
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// host language keywords; a symbol named like one is exposed with a leading
// underscore.
var hostKeywords = map[string]struct{}{
	"False": {}, "None": {}, "True": {}, "and": {}, "as": {}, "assert": {},
	"async": {}, "await": {}, "break": {}, "class": {}, "continue": {},
	"def": {}, "del": {}, "elif": {}, "else": {}, "except": {}, "finally": {},
	"for": {}, "from": {}, "global": {}, "if": {}, "import": {}, "in": {},
	"is": {}, "lambda": {}, "nonlocal": {}, "not": {}, "or": {}, "pass": {},
	"raise": {}, "return": {}, "try": {}, "while": {}, "with": {}, "yield": {},
}

func IsHostKeyword(name string) bool {
	_, ok := hostKeywords[name]
	return ok
}

func escapeKeyword(name string) string {
	if IsHostKeyword(name) {
		return "_" + name
	}
	return name
}

// normalizeIdent folds identifiers to NFC so that headers saved with
// decomposed characters produce the same host names.
func normalizeIdent(name string) string {
	if norm.NFC.IsNormalString(name) {
		return name
	}
	return norm.NFC.String(name)
}

var operatorPattern = regexp.MustCompile(`^operator\W+`)

// IsOperatorName matches "operator+", "operator()", "operator bool", ...
func IsOperatorName(name string) bool {
	return operatorPattern.MatchString(name)
}

var operatorNames = map[string]string{
	"operator()":  "__call__",
	"operator[]":  "__getitem__",
	"operator+":   "__add__",
	"operator-":   "__sub__",
	"operator*":   "__mul__",
	"operator/":   "__truediv__",
	"operator%":   "__mod__",
	"operator&":   "__and__",
	"operator|":   "__or__",
	"operator~":   "__invert__",
	"operator^":   "__xor__",
	"operator<<":  "__lshift__",
	"operator>>":  "__rshift__",
	"operator<":   "__lt__",
	"operator>":   "__gt__",
	"operator<=":  "__le__",
	"operator>=":  "__ge__",
	"operator==":  "__eq__",
	"operator!=":  "__ne__",
	"operator+=":  "__iadd__",
	"operator-=":  "__isub__",
	"operator*=":  "__imul__",
	"operator/=":  "__itruediv__",
	"operator%=":  "__imod__",
	"operator&=":  "__iand__",
	"operator|=":  "__ior__",
	"operator^=":  "__ixor__",
	"operator<<=": "__ilshift__",
	"operator>>=": "__irshift__",
}

// HostOperator maps a native operator spelling to its host method name.
func HostOperator(native string) (string, bool) {
	name, ok := operatorNames[native]
	return name, ok
}
