package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"loxvm/internal/diag"
	"loxvm/internal/vm"
)

// terminalWidth returns f's display width if it's a terminal, or a safe
// default line width otherwise (piped output, CI logs).
func terminalWidth(f *os.File) int {
	if !term.IsTerminal(int(f.Fd())) {
		return 80
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

func colorsEnabled(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return term.IsTerminal(int(f.Fd()))
	}
}

// reportDiagnostics prints every accumulated compile diagnostic, wrapped
// to the terminal's width via lipgloss so a long message or lexeme
// excerpt doesn't run off a narrow window; go-runewidth backs the wrap
// calculation so multi-byte UTF-8 in a Lox string literal is measured by
// display width, not byte count.
func reportDiagnostics(w io.Writer, items []diag.Diagnostic, colors bool) {
	width := terminalWidth(os.Stderr)
	style := lipgloss.NewStyle().Width(width)
	for _, d := range items {
		line := d.Format()
		if runewidth.StringWidth(line) > width {
			line = style.Render(line)
		}
		if !colors {
			fmt.Fprintln(w, line)
			continue
		}
		c := color.New(color.FgRed, color.Bold)
		if d.Severity == diag.SevWarning {
			c = color.New(color.FgYellow, color.Bold)
		}
		fmt.Fprintln(w, c.Sprint(line))
	}
}

// reportRuntimeError prints a RuntimeError's message first, then
// "[line N] in fn" for each active frame, innermost first.
func reportRuntimeError(w io.Writer, err *vm.RuntimeError, colors bool) {
	msg := err.Message
	if colors {
		msg = color.New(color.FgRed, color.Bold).Sprint(msg)
	}
	fmt.Fprintln(w, msg)
	for _, line := range err.Trace {
		fmt.Fprintln(w, line)
	}
}
