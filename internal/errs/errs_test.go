package errs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cxxbind/internal/diag"
	"cxxbind/internal/source"
)

func TestKindOfThroughWrap(t *testing.T) {
	base := Unsupported("void *", "parameter", "no converter")
	wrapped := Wrap(base, "binding f")

	assert.Equal(t, KindUnsupportedType, KindOf(wrapped))
	assert.False(t, IsFatal(wrapped))

	var ute *UnsupportedTypeError
	require.True(t, As(wrapped, &ute))
	assert.Equal(t, "void *", ute.Type)
	assert.Contains(t, wrapped.Error(), `unsupported type "void *" as parameter: no converter`)
}

func TestConfigurationErrorCollects(t *testing.T) {
	var ce *ConfigurationError
	require.NoError(t, ce.OrNil())

	ce = ce.Add("header %q does not exist", "a.hpp")
	ce = ce.Add("cannot derive module name from %d headers", 2)
	err := ce.OrNil()
	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.Equal(t, KindConfiguration, KindOf(err))
	assert.Len(t, ce.Problems, 2)
	assert.Contains(t, err.Error(), "a.hpp")
}

func TestFrontEndErrorListsAll(t *testing.T) {
	err := &FrontEndError{Diagnostics: []diag.Diagnostic{
		diag.NewError(diag.FrontReported, source.Location{File: "a.hpp", Line: 3, Col: 1}, "unknown type name 'foo'"),
		diag.New(diag.SevFatal, diag.FrontReported, source.Location{File: "a.hpp", Line: 9}, "'b.hpp' file not found"),
	}}
	msg := err.Error()
	assert.Contains(t, msg, "2 fatal diagnostics")
	assert.Contains(t, msg, "a.hpp:3:1")
	assert.Contains(t, msg, "file not found")
	assert.True(t, IsFatal(Wrap(err, "parse")))
}

func TestUnknownErrorsAreFatal(t *testing.T) {
	assert.True(t, IsFatal(New("boom")))
	assert.False(t, IsFatal(nil))
	assert.False(t, IsFatal(&NameConflictError{Name: "x"}))
}
