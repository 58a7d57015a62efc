// Package version holds build information for the cxxbind CLI. The
// variables can be overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version, major.minor.patch with an optional
	// suffix after a dash.
	Version = "0.1.0-dev"

	GitCommit = ""

	// BuildDate is ISO-8601 when set.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with one color per component. Versions that do
// not look like major.minor.patch are returned as is.
func Colored() string {
	core, suffix, hasSuffix := strings.Cut(Version, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}

// Details lists the optional build fields that are set, as "key value"
// lines.
func Details() []string {
	var out []string
	if GitCommit != "" {
		out = append(out, "commit "+GitCommit)
	}
	if BuildDate != "" {
		out = append(out, "built  "+BuildDate)
	}
	return out
}
