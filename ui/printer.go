// Package ui renders listings and diagnostics as plain lines of text. Colour
// is only applied when enabled; the words printed are the same either way.
package ui

import (
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jamesbehr/symlinker/errors"
	"github.com/jamesbehr/symlinker/filesystem"
	"github.com/jamesbehr/symlinker/pkg"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorEnabled decides whether output to f should be coloured for the given
// mode. In auto mode colour requires a terminal with colour support and no
// NO_COLOR in the environment.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}

	return termenv.ColorProfile() != termenv.Ascii
}

type Printer struct {
	Out io.Writer

	// ShowType prefixes each listed link with b, d or f.
	ShowType bool

	tags    map[filesystem.LinkKind]lipgloss.Style
	arrow   lipgloss.Style
	failure lipgloss.Style
	done    lipgloss.Style
}

func NewPrinter(out io.Writer, color bool) *Printer {
	renderer := lipgloss.NewRenderer(out)
	if color {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		Out: out,
		tags: map[filesystem.LinkKind]lipgloss.Style{
			filesystem.Broken:    renderer.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			filesystem.Directory: renderer.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
			filesystem.File:      renderer.NewStyle().Foreground(lipgloss.Color("10")),
		},
		arrow:   renderer.NewStyle().Faint(true),
		failure: renderer.NewStyle().Foreground(lipgloss.Color("9")),
		done:    renderer.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	}
}

// Link prints "<path> -> <destination>". The type tag is computed now, not
// taken from discovery.
func (p *Printer) Link(entry pkg.LinkEntry) {
	if p.ShowType {
		kind := entry.Kind()
		fmt.Fprintf(p.Out, "%s ", p.tags[kind].Render(kind.Tag()))
	}

	fmt.Fprintf(p.Out, "%s %s %s\n", entry.Path, p.arrow.Render("->"), entry.Destination)
}

// Links prints every entry of seq as it is produced.
func (p *Printer) Links(seq iter.Seq[pkg.LinkEntry]) int {
	n := 0
	for entry := range seq {
		p.Link(entry)
		n++
	}
	return n
}

func (p *Printer) Failure(err error) {
	fmt.Fprintln(p.Out, p.failure.Render(errors.Message(err)))
}

// Rewrite prints one batch result. A failed rewrite prints its diagnostic.
func (p *Printer) Rewrite(result pkg.Result, dryRun bool) {
	if result.Err != nil {
		p.Failure(result.Err)
		return
	}

	verb := ""
	if dryRun {
		verb = "would rewrite "
	}

	fmt.Fprintf(p.Out, "%s%s %s %s %s %s\n",
		verb,
		result.Entry.Path,
		p.arrow.Render("->"),
		result.Entry.Destination,
		p.arrow.Render("=>"),
		result.Stored,
	)
}

// Done prints the summary line of a batch. The failure count is only shown
// when something failed.
func (p *Printer) Done(report pkg.Report) {
	line := fmt.Sprintf("done: %d link(s) processed", report.Processed)
	if failed := report.Failed(); failed > 0 {
		line += fmt.Sprintf(", %d failed", failed)
	}

	fmt.Fprintln(p.Out, p.done.Render(line))
}
