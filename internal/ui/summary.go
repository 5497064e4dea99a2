// Package ui renders human-facing report tables for the command line.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Row is one expanded template in the summary table.
type Row struct {
	Symbol   string
	Template string
	Args     string
	Uses     int
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	symbolStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderSummary writes the instantiation table. With color off the text is
// emitted unstyled so the output stays pipe-friendly.
func RenderSummary(w io.Writer, rows []Row, color bool) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "no template instantiations")
		return
	}
	style := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	symW := runewidth.StringWidth("symbol")
	tmplW := runewidth.StringWidth("template")
	for _, r := range rows {
		symW = max(symW, runewidth.StringWidth(displaySymbol(r)))
		tmplW = max(tmplW, runewidth.StringWidth(r.Template))
	}

	fmt.Fprintf(w, "%s  %s  %s\n",
		style(headerStyle, runewidth.FillRight("symbol", symW)),
		style(headerStyle, runewidth.FillRight("template", tmplW)),
		style(headerStyle, "arguments"))
	for _, r := range rows {
		args := r.Args
		if r.Uses > 1 {
			args += style(dimStyle, fmt.Sprintf("  (%d uses)", r.Uses))
		}
		fmt.Fprintf(w, "%s  %s  %s\n",
			style(symbolStyle, runewidth.FillRight(displaySymbol(r), symW)),
			runewidth.FillRight(r.Template, tmplW),
			args)
	}
}

func displaySymbol(r Row) string {
	if strings.TrimSpace(r.Symbol) == "" {
		return "(anonymous)"
	}
	return r.Symbol
}
