// Package ui prints styled diagnostics and tables for command-line scripts.
// Styling is applied only when stdout is a terminal; redirected output gets
// plain prefixed lines.
package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
)

var out io.Writer = os.Stdout

// SetOutput redirects all ui output, primarily for tests. It returns the
// previous writer.
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}

// IsTTY returns true if stdout is a terminal.
func IsTTY() bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func colorize(color, prefix, format string, args ...interface{}) {
	if IsTTY() {
		fmt.Fprintf(out, color+prefix+Reset+format+"\n", args...)
		return
	}
	fmt.Fprintf(out, prefix+format+"\n", args...)
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	colorize(Green, "✓ ", format, args...)
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	colorize(Red, "✗ ", format, args...)
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	colorize(Yellow, "! ", format, args...)
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	colorize(Cyan, "→ ", format, args...)
}

// Header prints a section header
func Header(text string) {
	if IsTTY() {
		fmt.Fprintf(out, "\n%s%s%s\n", Cyan, text, Reset)
		fmt.Fprintln(out, Gray+"─────────────────────────────────────────"+Reset)
		return
	}
	fmt.Fprintf(out, "\n%s\n", text)
}
