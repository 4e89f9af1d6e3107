package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"

	"loxvm/internal/compiler"
	"loxvm/internal/diag"
	"loxvm/internal/vm"
)

// maxReplLine caps the REPL's line buffer: bufio.Scanner is limited to this
// many bytes, and a line that does not fit makes Scan fail with
// bufio.ErrTooLong, which ends the REPL with an I/O error.
const maxReplLine = 1024

// foldWidthForms maps fullwidth and halfwidth Unicode forms to their
// canonical width class before go-runewidth measures a line. Without this,
// a line typed with fullwidth punctuation (common when pasted from a CJK
// IME) is counted at its narrow rune width by some terminals and its wide
// rune width by others, throwing off the column math warnIfLineTooWide
// relies on.
func foldWidthForms(line string) string {
	folded, _, err := transform.String(width.Fold, line)
	if err != nil {
		return line
	}
	return folded
}

// warnIfLineTooWide prints a non-fatal notice when a REPL line would
// overflow the terminal's column width once rendered, so long pasted
// input doesn't silently wrap mid-token in the diagnostic output that
// follows.
func warnIfLineTooWide(line string, termWidth int) {
	if runewidth.StringWidth(foldWidthForms(line)) > termWidth {
		fmt.Fprintln(os.Stderr, "lox: input line is wider than the terminal; diagnostics below may wrap.")
	}
}

// runREPL reads one line at a time from stdin, compiling and running each
// as an independent script sharing one heap and VM (so top-level `var`
// declarations persist across lines), until EOF.
func runREPL(cfg config, colors bool) int {
	h, machine := newMachine(cfg)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, maxReplLine), maxReplLine)
	termWidth := terminalWidth(os.Stdout)

	fmt.Fprint(os.Stdout, "> ")
	for scanner.Scan() {
		line := scanner.Text()
		warnIfLineTooWide(line, termWidth)
		bag := diag.NewBag()
		fn, ok := compiler.Compile(line, h, diag.BagReporter{Bag: bag})
		if !ok {
			reportDiagnostics(os.Stderr, bag.Items(), colors)
		} else if err := machine.Run(fn); err != nil {
			if re, isRuntime := err.(*vm.RuntimeError); isRuntime {
				reportRuntimeError(os.Stderr, re, colors)
			} else {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		fmt.Fprint(os.Stdout, "> ")
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		fmt.Fprintf(os.Stderr, "lox: %v\n", err)
		return exitIOError
	}
	fmt.Fprintln(os.Stdout)
	return exitOK
}
