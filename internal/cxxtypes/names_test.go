package cxxtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameDerivation(t *testing.T) {
	cases := []struct {
		spelling, cpp, name, plain string
	}{
		{"int", "int", "int", "int"},
		{"const char *", "const char *", "const char *", "char"},
		{"struct ns::Point", "ns::Point", "Point", "Point"},
		{"const ns::inner::Point &", "const ns::inner::Point &", "const Point &", "Point"},
		{"std::map<std::string, ns::Point>", "std::map<std::string, ns::Point>", "map[string, Point]", "map[string, Point]"},
		{"Point &&", "Point &&", "Point &&", "Point"},
		{"char *const", "char *const", "char *const", "char"},
		{"enum Color", "Color", "Color", "Color"},
	}
	for _, tc := range cases {
		cpp := CppName(tc.spelling)
		assert.Equal(t, tc.cpp, cpp, tc.spelling)
		name := DisplayName(cpp)
		assert.Equal(t, tc.name, name, tc.spelling)
		assert.Equal(t, tc.plain, PlainName(name), tc.spelling)
	}
}

func TestCamelToSnake(t *testing.T) {
	cases := map[string]string{
		"getValue":     "get_value",
		"GetValue":     "get_value",
		"HTTPServer":   "http_server",
		"already_snake": "already_snake",
		"x":            "x",
		"sumOfN":       "sum_of_n",
	}
	for in, want := range cases {
		assert.Equal(t, want, CamelToSnake(in), in)
	}
}

func TestParseKind(t *testing.T) {
	assert.Equal(t, KindCharS, ParseKind("CHAR_S"))
	assert.Equal(t, KindLValueReference, ParseKind("lvalue_reference"))
	assert.Equal(t, KindConstantArray, ParseKind("ConstantArray"))
	assert.Equal(t, KindOther, ParseKind("ObjCObjectPointer"))
	assert.Equal(t, KindInvalid, ParseKind(""))
	assert.True(t, KindULongLong.IsNumeric())
	assert.False(t, KindPointer.IsNumeric())
}

func TestSTLNames(t *testing.T) {
	assert.Equal(t, []string{"vector", "string"}, STLNames("std::vector<std::string, std::vector<int>>"))
	assert.Nil(t, STLNames("int"))
}
