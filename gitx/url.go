package gitx

import (
	"fmt"
	"strings"
)

// IsSSHRemote reports whether url uses SSH transport, either scp-like
// (git@host:owner/repo.git) or explicit ssh://.
func IsSSHRemote(url string) bool {
	if strings.HasPrefix(url, "ssh://") {
		return true
	}
	// scp-like: user@host:path with no scheme.
	if strings.Contains(url, "://") {
		return false
	}
	at := strings.Index(url, "@")
	colon := strings.Index(url, ":")
	return at > 0 && colon > at
}

// SSHToHTTPS converts an SSH remote URL to its HTTPS equivalent, e.g.
// "git@github.com:owner/repo.git" -> "https://github.com/owner/repo.git".
// Non-SSH URLs are returned unchanged.
func SSHToHTTPS(url string) (string, error) {
	if !IsSSHRemote(url) {
		return url, nil
	}

	if rest, ok := strings.CutPrefix(url, "ssh://"); ok {
		// ssh://git@host[:port]/path
		if i := strings.Index(rest, "@"); i >= 0 {
			rest = rest[i+1:]
		}
		host, path, ok := strings.Cut(rest, "/")
		if !ok {
			return "", fmt.Errorf("invalid ssh url %q", url)
		}
		// Strip an explicit port; HTTPS uses its own.
		host, _, _ = strings.Cut(host, ":")
		return "https://" + host + "/" + path, nil
	}

	// scp-like form.
	rest := url
	if i := strings.Index(rest, "@"); i >= 0 {
		rest = rest[i+1:]
	}
	host, path, ok := strings.Cut(rest, ":")
	if !ok || host == "" || path == "" {
		return "", fmt.Errorf("invalid ssh url %q", url)
	}
	return "https://" + host + "/" + path, nil
}
