package convert

import "cxxbind/internal/cxxtypes"

// numericStub maps numeric kinds to fixed-width host types, assuming LP64.
var numericStub = map[cxxtypes.Kind]string{
	cxxtypes.KindBool:       "bool",
	cxxtypes.KindCharS:      "np.int8",
	cxxtypes.KindSChar:      "np.int8",
	cxxtypes.KindCharU:      "np.uint8",
	cxxtypes.KindUChar:      "np.uint8",
	cxxtypes.KindShort:      "np.int16",
	cxxtypes.KindUShort:     "np.uint16",
	cxxtypes.KindInt:        "np.int32",
	cxxtypes.KindUInt:       "np.uint32",
	cxxtypes.KindLong:       "np.int64",
	cxxtypes.KindULong:      "np.uint64",
	cxxtypes.KindLongLong:   "np.int64",
	cxxtypes.KindULongLong:  "np.uint64",
	cxxtypes.KindFloat:      "np.float32",
	cxxtypes.KindDouble:     "np.float64",
	cxxtypes.KindLongDouble: "np.float128",
}

// numericByName is numericStub keyed by the native spelling, for element
// types given by name.
var numericByName = map[string]string{
	"bool":               "bool",
	"char":               "np.int8",
	"signed char":        "np.int8",
	"unsigned char":      "np.uint8",
	"short":              "np.int16",
	"unsigned short":     "np.uint16",
	"int":                "np.int32",
	"unsigned int":       "np.uint32",
	"long":               "np.int64",
	"unsigned long":      "np.uint64",
	"long long":          "np.int64",
	"unsigned long long": "np.uint64",
	"float":              "np.float32",
	"double":             "np.float64",
	"long double":        "np.float128",
}

func isNumeric(n *cxxtypes.Node) bool {
	if n == nil {
		return false
	}
	_, ok := numericStub[n.Kind]
	return ok
}

func ndarray(elem string) string {
	return "np.ndarray[Any, np.dtype[" + elem + "]]"
}
