package symbols

import (
	"strconv"
	"strings"

	"cxxbind/internal/decl"
)

type LiteralKind uint8

const (
	LitInvalid LiteralKind = iota
	LitInt
	LitFloat
	LitString
	LitBool
)

// Literal is a parsed macro body or default argument.
type Literal struct {
	Kind LiteralKind
	Int  int64
	// Unsigned marks integers above MaxInt64; Int then holds the bit pattern.
	Unsigned bool
	Float    float64
	Str      string // string literals keep their quotes
	Bool     bool
}

func (l Literal) IsValid() bool { return l.Kind != LitInvalid }

// Host renders the literal as host source text.
func (l Literal) Host() string {
	switch l.Kind {
	case LitInt:
		if l.Unsigned {
			return strconv.FormatUint(uint64(l.Int), 10)
		}
		return strconv.FormatInt(l.Int, 10)
	case LitFloat:
		s := strconv.FormatFloat(l.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case LitString:
		return l.Str
	case LitBool:
		if l.Bool {
			return "True"
		}
		return "False"
	}
	return "None"
}

// HostType is the stub annotation for the literal's value.
func (l Literal) HostType() string {
	switch l.Kind {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitString:
		return "str"
	case LitBool:
		return "bool"
	}
	return "Any"
}

func (l Literal) negate() (Literal, bool) {
	switch l.Kind {
	case LitInt:
		if l.Unsigned {
			// ширина типа неизвестна, значение после переполнения не восстановить
			return Literal{}, false
		}
		l.Int = -l.Int
		return l, true
	case LitFloat:
		l.Float = -l.Float
		return l, true
	}
	return Literal{}, false
}

// ParseNumber parses a C integer or floating literal. Digit separators and
// type suffixes are dropped; hex, octal and binary prefixes follow C.
func ParseNumber(s string) (Literal, bool) {
	s = strings.TrimSpace(s)
	if !isCNumber(s) {
		return Literal{}, false
	}
	s = strings.ReplaceAll(s, "'", "")
	lower := strings.ToLower(s)
	isHex := strings.HasPrefix(lower, "0x")
	if isHex {
		s = strings.TrimRight(s, "lLuU")
	} else {
		s = strings.TrimRight(s, "lLfFuU")
	}
	if s == "" {
		return Literal{}, false
	}
	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		return Literal{Kind: LitInt, Int: v}, true
	}
	if v, err := strconv.ParseUint(s, 0, 64); err == nil {
		return Literal{Kind: LitInt, Int: int64(v), Unsigned: true}, true
	}
	if isHex {
		return Literal{}, false
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Literal{Kind: LitFloat, Float: v}, true
	}
	return Literal{}, false
}

// isCNumber rejects spellings only strconv understands: underscores, the
// 0o prefix, inf and nan.
func isCNumber(s string) bool {
	if s == "" || strings.ContainsRune(s, '_') {
		return false
	}
	if c := s[0]; c != '.' && (c < '0' || c > '9') {
		return false
	}
	lower := strings.ToLower(s)
	return !strings.HasPrefix(lower, "0o")
}

// parseChar turns 'a' or '\n' into its code point.
func parseChar(s string) (Literal, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\''); i > 0 {
		s = s[i:] // u8'a', L'a'
	}
	if len(s) < 3 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return Literal{}, false
	}
	r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
	if err != nil || tail != "" {
		return Literal{}, false
	}
	return Literal{Kind: LitInt, Int: int64(r)}, true
}

func parseToken(tok decl.Token) (Literal, bool) {
	switch tok.Kind {
	case decl.TokInteger, decl.TokFloating:
		return ParseNumber(tok.Spelling)
	case decl.TokChar:
		return parseChar(tok.Spelling)
	case decl.TokString:
		return Literal{Kind: LitString, Str: tok.Spelling}, true
	case decl.TokKeyword, decl.TokIdentifier:
		switch tok.Spelling {
		case "true":
			return Literal{Kind: LitBool, Bool: true}, true
		case "false":
			return Literal{Kind: LitBool}, true
		}
	}
	return Literal{}, false
}

// ParseTokens accepts a single literal token, or a unary + or - followed by
// a numeric literal. Balanced outer parentheses are ignored. Anything else
// is not a literal.
func ParseTokens(toks []decl.Token) (Literal, bool) {
	for len(toks) >= 2 && toks[0].Spelling == "(" && toks[len(toks)-1].Spelling == ")" {
		toks = toks[1 : len(toks)-1]
	}
	switch len(toks) {
	case 1:
		return parseToken(toks[0])
	case 2:
		lit, ok := parseToken(toks[1])
		if !ok {
			return Literal{}, false
		}
		switch toks[0].Spelling {
		case "-":
			return lit.negate()
		case "+":
			if lit.Kind == LitInt || lit.Kind == LitFloat {
				return lit, true
			}
		}
	}
	return Literal{}, false
}
