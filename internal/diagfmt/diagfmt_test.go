package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cxxbind/internal/diag"
	"cxxbind/internal/source"
)

func sample() []diag.Diagnostic {
	loc := source.Location{File: "/home/user/proj/include/geo.h", Line: 4, Col: 7}
	return []diag.Diagnostic{
		diag.NewWarning(diag.BindIgnoredOverload, loc, "overload ignored").
			WithSymbol("geo::scale").
			WithNote(source.Location{File: "/home/user/proj/include/geo.h", Line: 3}, "kept here"),
		diag.NewError(diag.CfgProblem, source.Location{}, "bad"),
	}
}

func TestPrettyBasename(t *testing.T) {
	var buf bytes.Buffer
	err := Pretty(&buf, sample(), PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, Summary: true})
	require.NoError(t, err)

	want := strings.Join([]string{
		"geo.h:4:7: WARNING BND4002: overload ignored [geo::scale]",
		"    note: geo.h:3: kept here",
		"ERROR   CFG5001: bad",
		"1 error, 1 warning",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestPrettyHidesNotes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, sample(), PrettyOpts{}))
	assert.NotContains(t, buf.String(), "note:")
	assert.Contains(t, buf.String(), "/home/user/proj/include/geo.h:4:7")
}

func TestPrettyRelative(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, sample()[:1], PrettyOpts{PathMode: PathModeRelative, BaseDir: "/home/user/proj"}))
	assert.True(t, strings.HasPrefix(buf.String(), "include/geo.h:4:7: "), buf.String())
}

func TestPrettyWidth(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, sample()[:1], PrettyOpts{PathMode: PathModeBasename, Width: 40}))
	line := strings.TrimRight(buf.String(), "\n")
	assert.LessOrEqual(t, runewidth.StringWidth(line), 40)
	assert.True(t, strings.HasSuffix(line, "..."), line)
}

func TestPrettyColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, sample()[1:], PrettyOpts{Color: true}))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "no diagnostics", Summary(nil))
	ds := sample()
	ds = append(ds, diag.NewWarning(diag.BindUnsupportedType, source.Location{}, "x"))
	assert.Equal(t, "1 error, 2 warnings", Summary(ds))
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sample(), JSONOpts{PathMode: PathModeBasename, IncludeNotes: true}))

	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, 2, out.Count)

	first := out.Diagnostics[0]
	assert.Equal(t, "WARNING", first.Severity)
	assert.Equal(t, "BND4002", first.Code)
	assert.Equal(t, "geo::scale", first.Symbol)
	require.NotNil(t, first.Location)
	assert.Equal(t, LocationJSON{File: "geo.h", Line: 4, Col: 7}, *first.Location)
	require.Len(t, first.Notes, 1)
	assert.Equal(t, "kept here", first.Notes[0].Message)

	assert.Nil(t, out.Diagnostics[1].Location)
}

func TestJSONMax(t *testing.T) {
	out := BuildDiagnosticsOutput(sample(), JSONOpts{Max: 1})
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, 1, out.Truncated)
	assert.Empty(t, out.Diagnostics[0].Notes)
}

func TestSarif(t *testing.T) {
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "cxxbind", ToolVersion: "0.1.0", InvocationArgs: []string{"generate"}, PathMode: PathModeBasename}
	require.NoError(t, Sarif(&buf, sample(), meta))

	var log sarifLog
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)
	run := log.Runs[0]

	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "BND4002", run.Tool.Driver.Rules[0].ID)
	assert.Equal(t, "CFG5001", run.Tool.Driver.Rules[1].ID)

	require.Len(t, run.Results, 2)
	assert.Equal(t, "warning", run.Results[0].Level)
	assert.Equal(t, "geo.h", run.Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, uint32(4), run.Results[0].Locations[0].PhysicalLocation.Region.StartLine)
	assert.Equal(t, "error", run.Results[1].Level)
	assert.Empty(t, run.Results[1].Locations)

	require.Len(t, run.Invocations, 1)
	assert.False(t, run.Invocations[0].ExecutionSuccessful)
}

func TestParsePathMode(t *testing.T) {
	m, ok := ParsePathMode("basename")
	assert.True(t, ok)
	assert.Equal(t, PathModeBasename, m)
	_, ok = ParsePathMode("nope")
	assert.False(t, ok)
}
