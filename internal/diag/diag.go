// Package diag sets up the logging of the streamtool command and reports the
// progress of long parses on the terminal.
package diag

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

// NewLogger creates a structured text logger writing to w. Debug messages are
// only shown when verbose is set.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// IsTerminal reports whether w is a terminal, Cygwin ones included.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ProgressReporter keeps a single status line up to date while a stream is parsed.
// It does nothing unless its output is a terminal.
type ProgressReporter struct {
	w       io.Writer
	enabled bool
	label   string
	start   time.Time
	spinner int
	lastLen int
}

// NewProgressReporter returns a reporter writing to w, enabled only if w is a terminal.
func NewProgressReporter(w io.Writer, label string) *ProgressReporter {
	return newProgressReporter(w, label, IsTerminal(w))
}

func newProgressReporter(w io.Writer, label string, enabled bool) *ProgressReporter {
	return &ProgressReporter{
		w:       w,
		enabled: enabled,
		label:   label,
		start:   time.Now(),
	}
}

// Update shows the number of chunks and indexed frames read so far. Its signature
// matches the observer expected by stream.WithProgress.
func (r *ProgressReporter) Update(shots, indexed int) {
	if !r.enabled {
		return
	}
	frames := [4]string{"-", "\\", "|", "/"}
	frame := frames[r.spinner%len(frames)]
	r.spinner++
	label := r.label
	if len(label) > 60 {
		label = "..." + label[len(label)-57:]
	}
	r.printStatus(fmt.Sprintf("%s %s: %d images, %d indexed", frame, label, shots, indexed))
}

// Done replaces the status line with the final count and ends it.
func (r *ProgressReporter) Done(shots, indexed int) {
	if !r.enabled {
		return
	}
	elapsed := time.Since(r.start).Round(time.Millisecond)
	r.printStatus(fmt.Sprintf("%s complete (%d images, %d indexed in %s)", r.label, shots, indexed, elapsed))
	fmt.Fprintln(r.w)
}

func (r *ProgressReporter) printStatus(status string) {
	if r.lastLen > len(status) {
		status += strings.Repeat(" ", r.lastLen-len(status))
	}
	r.lastLen = len(status)
	fmt.Fprintf(r.w, "\r%s", status)
}
