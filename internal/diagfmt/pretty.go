package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cxxbind/internal/diag"
)

type palette struct {
	sev  map[diag.Severity]*color.Color
	loc  *color.Color
	code *color.Color
	note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevInfo:    color.New(color.FgCyan),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevFatal:   color.New(color.FgMagenta, color.Bold),
		},
		loc:  color.New(color.Bold),
		code: color.New(color.Faint),
		note: color.New(color.FgBlue),
	}
	all := []*color.Color{p.loc, p.code, p.note}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty writes diagnostics in the human-readable form:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message> [symbol]
//	    note: <path>:<line>: <Message>
//
// Diagnostics are printed in the given order; sort the bag first if needed.
func Pretty(w io.Writer, diags []diag.Diagnostic, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	sevWidth := 0
	for _, d := range diags {
		sevWidth = max(sevWidth, runewidth.StringWidth(d.Severity.String()))
	}

	var b strings.Builder
	for _, d := range diags {
		b.Reset()
		if !d.Primary.IsZero() {
			b.WriteString(p.loc.Sprint(formatLocation(d.Primary, opts.PathMode, opts.BaseDir).String()))
			b.WriteString(": ")
		}
		sev := runewidth.FillRight(d.Severity.String(), sevWidth)
		b.WriteString(p.sev[d.Severity].Sprint(sev))
		b.WriteString(" ")
		b.WriteString(p.code.Sprint(d.Code.ID()))
		b.WriteString(": ")

		msg := d.Message
		if d.Symbol != "" {
			msg = fmt.Sprintf("%s [%s]", msg, d.Symbol)
		}
		if opts.Width > 0 {
			// ширина считается по видимому тексту без ANSI
			used := runewidth.StringWidth(plainPrefix(d, sevWidth, opts))
			msg = truncate(msg, opts.Width-used)
		}
		b.WriteString(msg)
		b.WriteString("\n")

		if opts.ShowNotes {
			for _, n := range d.Notes {
				b.WriteString("    ")
				b.WriteString(p.note.Sprint("note"))
				b.WriteString(": ")
				if !n.Loc.IsZero() {
					b.WriteString(formatLocation(n.Loc, opts.PathMode, opts.BaseDir).String())
					b.WriteString(": ")
				}
				b.WriteString(n.Msg)
				b.WriteString("\n")
			}
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}

	if opts.Summary {
		_, err := io.WriteString(w, Summary(diags)+"\n")
		return err
	}
	return nil
}

func plainPrefix(d diag.Diagnostic, sevWidth int, opts PrettyOpts) string {
	prefix := ""
	if !d.Primary.IsZero() {
		prefix = formatLocation(d.Primary, opts.PathMode, opts.BaseDir).String() + ": "
	}
	return prefix + runewidth.FillRight(d.Severity.String(), sevWidth) + " " + d.Code.ID() + ": "
}

// Summary counts diagnostics per severity, e.g. "2 warnings, 1 error".
func Summary(diags []diag.Diagnostic) string {
	var counts [diag.SevFatal + 1]int
	for _, d := range diags {
		if d.Severity <= diag.SevFatal {
			counts[d.Severity]++
		}
	}
	parts := make([]string, 0, 4)
	for _, sev := range []diag.Severity{diag.SevFatal, diag.SevError, diag.SevWarning, diag.SevInfo} {
		n := counts[sev]
		if n == 0 {
			continue
		}
		word := strings.ToLower(sev.String())
		if n != 1 {
			word += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, word))
	}
	if len(parts) == 0 {
		return "no diagnostics"
	}
	return strings.Join(parts, ", ")
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
