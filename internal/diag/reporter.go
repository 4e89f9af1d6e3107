package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter receives diagnostics as they're produced. BagReporter collects
// them for later rendering, and is what cmd/lox and the tests install;
// StderrReporter writes each one out as soon as it arrives.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter adapts a Bag to the Reporter interface.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// StderrReporter writes diagnostics to an io.Writer (normally os.Stderr),
// coloring errors red and warnings yellow when the destination is a
// terminal.
type StderrReporter struct {
	W      io.Writer
	Colors bool
}

func (r StderrReporter) Report(d Diagnostic) {
	line := d.Format()
	if !r.Colors {
		fmt.Fprintln(r.W, line)
		return
	}
	c := color.New(color.FgRed, color.Bold)
	if d.Severity == SevWarning {
		c = color.New(color.FgYellow, color.Bold)
	}
	fmt.Fprintln(r.W, c.Sprint(line))
}
