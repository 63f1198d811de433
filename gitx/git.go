// Package gitx wraps the git binary for the handful of operations scripts
// ask for: repo detection, branch and remote queries, clone and pull.
package gitx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shellkit/execx"
)

// commandTimeout is the maximum time for a git network operation. Clones of
// large repos can take a while in constrained CI/Docker networks.
const commandTimeout = 180 * time.Second

// noPromptEnv prevents interactive credential prompts that would hang
// non-interactive callers.
var noPromptEnv = []string{
	"GIT_TERMINAL_PROMPT=0",
	"GIT_ASKPASS=",
	"SSH_ASKPASS=",
}

// IsInstalled reports whether git is on PATH.
func IsInstalled() bool {
	return execx.LookPath("git")
}

// IsRepo checks if path is the top of a git repository.
func IsRepo(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil && info.IsDir()
}

// run executes one git command in dir and returns trimmed stdout, turning a
// nonzero exit into an error carrying git's stderr.
func run(ctx context.Context, dir string, args ...string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("no git subcommand given")
	}
	res, err := execx.Run(ctx, execx.Cmd{
		Name:    "git",
		Args:    args,
		Dir:     dir,
		Env:     noPromptEnv,
		Timeout: commandTimeout,
	})
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = fmt.Sprintf("git exited with code %d", res.ExitCode)
		}
		return "", fmt.Errorf("git %s: %s", args[0], msg)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// CurrentBranch returns the checked-out branch name, or an error for a
// detached HEAD or a non-repository.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	out, err := run(ctx, dir, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch in %s: %w", dir, err)
	}
	return out, nil
}

// Head returns the full commit hash of HEAD.
func Head(ctx context.Context, dir string) (string, error) {
	out, err := run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD in %s: %w", dir, err)
	}
	return out, nil
}

// RemoteURL returns the fetch URL of the named remote, or "" when the remote
// does not exist.
func RemoteURL(ctx context.Context, dir, remote string) string {
	out, err := run(ctx, dir, "remote", "get-url", remote)
	if err != nil {
		return ""
	}
	return out
}

// Clone clones url into dest. Shallow clones fetch only the tip commit.
func Clone(ctx context.Context, url, dest string, shallow bool) error {
	args := []string{"clone", "--quiet"}
	if shallow {
		args = append(args, "--depth", "1")
	}
	args = append(args, url, dest)
	if _, err := run(ctx, "", args...); err != nil {
		return fmt.Errorf("failed to clone %s: %w", url, err)
	}
	return nil
}

// Pull updates the repository at dir from its upstream.
func Pull(ctx context.Context, dir string) error {
	if _, err := run(ctx, dir, "pull", "--quiet"); err != nil {
		return fmt.Errorf("failed to pull in %s: %w", dir, err)
	}
	return nil
}

// IsDirty reports whether the working tree at dir has uncommitted changes.
func IsDirty(ctx context.Context, dir string) (bool, error) {
	out, err := run(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to get status of %s: %w", dir, err)
	}
	return out != "", nil
}
