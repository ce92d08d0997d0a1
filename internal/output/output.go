// Package output writes recase diagnostics: verbose tracing, notices,
// warnings, errors and a TTY-only progress line.
//
// Standard output may carry the rewritten stream, so every destination
// defaults to standard error.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// progressWidth is the width blanked when the progress line is cleared.
const progressWidth = 60

// Config holds output configuration.
type Config struct {
	Verbose   bool      // Enable verbose output
	Writer    io.Writer // Notices and progress (default: os.Stderr)
	ErrWriter io.Writer // Warnings and errors (default: os.Stderr)
	IsTTY     bool      // Whether Writer is a terminal
}

// Output handles formatted diagnostics with verbose and progress support.
type Output struct {
	config Config

	mu              sync.Mutex
	progressActive  bool
	progressTotal   int
	progressCurrent int
}

// New creates a new Output instance with the given configuration.
func New(config Config) *Output {
	if config.Writer == nil {
		config.Writer = os.Stderr
	}
	if config.ErrWriter == nil {
		config.ErrWriter = os.Stderr
	}
	return &Output{config: config}
}

// DefaultConfig returns a Config writing to stderr, with TTY detection.
func DefaultConfig() Config {
	return Config{
		Writer:    os.Stderr,
		ErrWriter: os.Stderr,
		IsTTY:     term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Verbose prints a message only when verbose mode is enabled.
func (o *Output) Verbose(format string, args ...interface{}) {
	if !o.config.Verbose {
		return
	}
	o.print(o.config.Writer, "", format, args...)
}

// Info prints an informational message (always shown).
func (o *Output) Info(format string, args ...interface{}) {
	o.print(o.config.Writer, "", format, args...)
}

// Warn prints a warning to the error writer.
func (o *Output) Warn(format string, args ...interface{}) {
	o.print(o.config.ErrWriter, "Warning: ", format, args...)
}

// Error prints an error message to the error writer.
func (o *Output) Error(format string, args ...interface{}) {
	o.print(o.config.ErrWriter, "Error: ", format, args...)
}

func (o *Output) print(w io.Writer, prefix, format string, args ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.clearProgressLineLocked()
	msg := prefix + fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(w, msg)
}

func (o *Output) clearProgressLineLocked() {
	if o.progressActive && o.config.IsTTY {
		fmt.Fprint(o.config.Writer, "\r"+strings.Repeat(" ", progressWidth)+"\r")
	}
}

// progressEnabled reports whether progress lines are drawn at all. Verbose
// mode prints one line per file instead.
func (o *Output) progressEnabled() bool {
	return o.config.IsTTY && !o.config.Verbose
}

// StartProgress begins a progress indicator session.
func (o *Output) StartProgress(total int) {
	if !o.progressEnabled() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.progressActive = true
	o.progressTotal = total
	o.progressCurrent = 0
}

// UpdateProgress redraws the progress line. An empty message uses the
// default "Rewriting file" label.
func (o *Output) UpdateProgress(current int, message string) {
	if !o.progressEnabled() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.progressActive {
		return
	}
	o.progressCurrent = current
	if message == "" {
		message = "Rewriting file"
	}
	fmt.Fprintf(o.config.Writer, "\r%s %d/%d...", message, current, o.progressTotal)
}

// EndProgress clears the progress indicator.
func (o *Output) EndProgress() {
	if !o.progressEnabled() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.progressActive {
		return
	}
	o.clearProgressLineLocked()
	o.progressActive = false
}

// IsVerbose returns whether verbose mode is enabled.
func (o *Output) IsVerbose() bool {
	return o.config.Verbose
}

// IsTTY returns whether the output is a terminal.
func (o *Output) IsTTY() bool {
	return o.config.IsTTY
}
