// Package diagfmt renders collected diagnostics for humans.
package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cppbind/internal/diag"
	"cppbind/internal/source"
)

// Pretty formats every diagnostic in bag, one block per entry:
//
//	<path>:<line>:<col>: <SEV> [<ID>]: <message>
//	  <source line>
//	  ^~~~~
//
// followed by the notes when opts.ShowNotes is set. Entries are written in
// the bag's current order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	head := fmt.Sprintf("%s %s", d.Severity, "["+d.Code.ID()+"]")
	if opts.Color {
		head = severityColor(d.Severity).Sprint(head)
	}
	fmt.Fprintf(w, "%s: %s: %s\n", location(fs, d.Primary, opts), head, d.Message)
	writeContext(w, fs, d.Primary, opts)
	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		fmt.Fprintf(w, "%s: note: %s\n", location(fs, n.Span, opts), n.Msg)
		writeContext(w, fs, n.Span, opts)
	}
}

func location(fs *source.FileSet, sp source.Span, opts PrettyOpts) string {
	f := fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	path := f.Path
	if opts.PathMode == PathModeBasename {
		path = filepath.Base(path)
	}
	pos := fs.Position(sp.File, sp.Start)
	return fmt.Sprintf("%s:%d:%d", path, pos.Line, pos.Col)
}

func writeContext(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	if fs.Get(sp.File) == nil {
		return
	}
	pos := fs.Position(sp.File, sp.Start)
	line := fs.Line(sp.File, pos.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	colIdx := int(pos.Col) - 1
	if colIdx > len(line) {
		colIdx = len(line)
	}
	pad := runewidth.StringWidth(expandTabs(line[:colIdx]))
	width := int(sp.Len())
	if remaining := len(line) - colIdx; width > remaining {
		width = remaining
	}
	if width < 1 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = color.New(color.FgGreen, color.Bold).Sprint(marker)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), marker)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
