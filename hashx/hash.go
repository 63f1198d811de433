package hashx

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"shellkit/execx"
)

// File returns the hex-encoded SHA-256 digest of a file.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FileFormatted returns the hash in "sha256:<hex>" format.
func FileFormatted(path string) (string, error) {
	h, err := File(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("sha256:%s", h), nil
}

// knownTools maps digest tools to their expected hex output lengths; a zero
// length means the tool's digest size is not checked (shasum varies with -a).
var knownTools = map[string]int{
	"sha256sum": 64,
	"sha1sum":   40,
	"md5sum":    32,
	"b2sum":     128,
	"shasum":    0,
}

// Tool computes a file digest by invoking an external checksum program such
// as sha256sum or md5sum, and returns the hex digest. Useful when the digest
// must provably come from the same tool other scripts in a pipeline use.
func Tool(ctx context.Context, tool, path string) (string, error) {
	wantLen, ok := knownTools[tool]
	if !ok {
		return "", fmt.Errorf("unsupported digest tool %q", tool)
	}
	if !execx.LookPath(tool) {
		return "", fmt.Errorf("digest tool %q not found on PATH", tool)
	}

	out, err := execx.Output(ctx, tool, path)
	if err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return parseDigestLine(out, wantLen)
}

// parseDigestLine extracts the digest from coreutils-style output:
// "<hex><whitespace><filename>". Only the first line is considered.
func parseDigestLine(out string, wantLen int) (string, error) {
	line, _, _ := strings.Cut(out, "\n")
	digest, _, found := strings.Cut(strings.TrimSpace(line), " ")
	if !found {
		// Some tools emit only the digest when reading stdin.
		digest = strings.TrimSpace(line)
	}
	// BSD-style "\<hex>  name" escape marker.
	digest = strings.TrimPrefix(digest, "\\")

	if digest == "" {
		return "", fmt.Errorf("empty digest output %q", out)
	}
	if wantLen > 0 && len(digest) != wantLen {
		return "", fmt.Errorf("unexpected digest length %d in %q", len(digest), line)
	}
	for _, c := range digest {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return "", fmt.Errorf("non-hex digest in output %q", line)
		}
	}
	return strings.ToLower(digest), nil
}
