// Package diag implements the Diagnostic Sink (§4.6): the severity ladder
// translators report through, and the gating policy that decides whether a
// file's worth of output survives a run.
package diag

import "fmt"

// Severity is one rung of the §4.6 ladder.
type Severity string

const (
	// Note is informational; it never affects whether generation succeeds.
	Note Severity = "note"
	// Warning means the offending element was skipped; translation
	// continues.
	Warning Severity = "warning"
	// Error is fatal: the Orchestrator emits none of the affected file.
	Error Severity = "error"
)

// Diagnostic is a single addressed message (§4.6 "Messages are addressed
// strings").
type Diagnostic struct {
	Severity Severity
	// Path is a JSON-Pointer-like address into the source document, e.g.
	// "#/components/schemas/Pet/properties/id".
	Path    string
	Message string
	// RunID correlates every diagnostic from one Orchestrator.Generate call
	// (see pkg/codegen.Generator), so a CLI watching a file across several
	// regenerations can tell runs apart.
	RunID string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Path, d.Message)
}

// Sink is the narrow interface translators emit diagnostics through (§6
// "Diagnostic sink callback"). Collector is the concrete in-process
// implementation; a caller may supply any Sink, e.g. one that streams
// straight to a logger.
type Sink interface {
	Emit(d Diagnostic)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(Diagnostic)

// Emit implements Sink.
func (f SinkFunc) Emit(d Diagnostic) { f(d) }

// Collector accumulates diagnostics in emission order and answers the
// Orchestrator's gating question (§7 "The Orchestrator aggregates fatal
// errors per file and emits none of that file on failure").
type Collector struct {
	runID string
	diags []Diagnostic
}

// NewCollector creates a Collector tagging every diagnostic with runID.
func NewCollector(runID string) *Collector {
	return &Collector{runID: runID}
}

// Emit implements Sink.
func (c *Collector) Emit(d Diagnostic) {
	d.RunID = c.runID
	c.diags = append(c.diags, d)
}

// Notef records a Note-level diagnostic.
func (c *Collector) Notef(path, format string, args ...interface{}) {
	c.Emit(Diagnostic{Severity: Note, Path: path, Message: fmt.Sprintf(format, args...)})
}

// Warningf records a Warning-level diagnostic.
func (c *Collector) Warningf(path, format string, args ...interface{}) {
	c.Emit(Diagnostic{Severity: Warning, Path: path, Message: fmt.Sprintf(format, args...)})
}

// Errorf records an Error-level diagnostic.
func (c *Collector) Errorf(path, format string, args ...interface{}) {
	c.Emit(Diagnostic{Severity: Error, Path: path, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (c *Collector) HasErrors() bool {
	for _, d := range c.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Diagnostics returns every recorded diagnostic in emission order.
func (c *Collector) Diagnostics() []Diagnostic {
	return c.diags
}

// Count returns the number of recorded diagnostics with severity sev.
func (c *Collector) Count(sev Severity) int {
	n := 0
	for _, d := range c.diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}
