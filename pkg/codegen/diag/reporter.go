package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ansi color codes for the terminal reporter. Kept private: callers that
// want different colors should print Diagnostics themselves.
const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// Reporter writes diagnostics to w, colorizing severities when w is a
// terminal. This mirrors the CLI's existing plain-text summary printing
// (internal/cli) but adds color gating, since a generator run tends to
// produce many more diagnostics than a single format conversion and
// benefits from visually separating errors from notes.
type Reporter struct {
	w      io.Writer
	color  bool
}

// NewReporter creates a Reporter. If w is an *os.File, color is enabled
// only when it refers to a terminal (isatty.IsTerminal / IsCygwinTerminal
// cover both native and mintty consoles).
func NewReporter(w io.Writer) *Reporter {
	r := &Reporter{w: w}
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		r.color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return r
}

// Report writes every diagnostic, one per line, in order.
func (r *Reporter) Report(diags []Diagnostic) {
	for _, d := range diags {
		r.reportOne(d)
	}
}

func (r *Reporter) reportOne(d Diagnostic) {
	if !r.color {
		fmt.Fprintln(r.w, d.String())
		return
	}
	color := ansiBlue
	switch d.Severity {
	case Error:
		color = ansiRed
	case Warning:
		color = ansiYellow
	}
	fmt.Fprintf(r.w, "%s[%s]%s %s: %s\n", color, d.Severity, ansiReset, d.Path, d.Message)
}

// Summary writes a one-line count of notes/warnings/errors.
func (r *Reporter) Summary(diags []Diagnostic) {
	var notes, warnings, errs int
	for _, d := range diags {
		switch d.Severity {
		case Note:
			notes++
		case Warning:
			warnings++
		case Error:
			errs++
		}
	}
	fmt.Fprintf(r.w, "%d note(s), %d warning(s), %d error(s)\n", notes, warnings, errs)
}
