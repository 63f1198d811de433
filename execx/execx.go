// Package execx runs external programs with one uniform exit-code contract:
// if the process ran and exited, Run returns its exit code and a nil error,
// even when the code is nonzero. Errors are reserved for processes that
// never ran to completion — not found, failed to start, timed out, or killed
// by a signal.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Cmd describes one program invocation. Args are passed as an argv vector;
// nothing is ever interpreted by a shell.
type Cmd struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the caller's.
	Dir string
	// Env entries (KEY=VALUE) are appended to the current environment.
	Env []string
	// Stdin feeds the process; nil means no input.
	Stdin io.Reader
	// Timeout bounds the run when positive. It layers a deadline onto the
	// caller's context.
	Timeout time.Duration
}

// Result captures the output of a completed process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes c and waits for it to finish.
func Run(ctx context.Context, c Cmd) (Result, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if err == nil {
		return res, nil
	}

	// Prefer the context's explanation when the deadline or cancellation
	// killed the process.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("%s: %w", c.Name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	// Signal death, start failure, lookup failure.
	return res, fmt.Errorf("failed to run %s: %w", c.Name, err)
}

// Output runs name with args and returns trimmed stdout. A nonzero exit is
// an error here, carrying the process's stderr for context.
func Output(ctx context.Context, name string, args ...string) (string, error) {
	res, err := Run(ctx, Cmd{Name: name, Args: args})
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = strings.TrimSpace(res.Stdout)
		}
		if msg == "" {
			return "", fmt.Errorf("%s exited with code %d", name, res.ExitCode)
		}
		return "", fmt.Errorf("%s exited with code %d: %s", name, res.ExitCode, msg)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// LookPath reports whether name resolves to an executable on PATH.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
