package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// output decides how results are written to one stream.
type output struct {
	styled bool
	width  int
}

// detectOutput styles f only when it is a terminal and NO_COLOR is unset,
// and wraps results to the terminal width.
func detectOutput(f *os.File) output {
	fd := f.Fd()
	var o output
	if _, ok := os.LookupEnv("NO_COLOR"); !ok {
		o.styled = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	if term.IsTerminal(int(fd)) {
		if w, _, err := term.GetSize(int(fd)); err == nil {
			o.width = w
		}
	}
	return o
}

func (o output) render(style lipgloss.Style, s string) string {
	if !o.styled && o.width == 0 {
		return s
	}
	st := lipgloss.NewStyle()
	if o.styled {
		st = st.Inherit(style)
	}
	if o.width > 0 {
		st = st.Width(o.width)
	}
	return st.Render(s)
}

func (o output) result(s string) string { return o.render(resultStyle, s) }

func (o output) signature(s string) string { return o.render(funcStyle, s) }
