package ui

import (
	"bytes"
	"strings"
	"testing"
)

func capture(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)
	fn()
	return buf.String()
}

func TestMessagesPlainOffTTY(t *testing.T) {
	tests := []struct {
		name   string
		fn     func()
		prefix string
	}{
		{"success", func() { Success("done %d", 5) }, "✓ done 5"},
		{"error", func() { Error("bad") }, "✗ bad"},
		{"warning", func() { Warning("careful") }, "! careful"},
		{"info", func() { Info("fyi") }, "→ fyi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := capture(t, tt.fn)
			if got != tt.prefix+"\n" {
				t.Errorf("output = %q, want %q", got, tt.prefix+"\n")
			}
			if strings.Contains(got, "\033") {
				t.Error("non-TTY output should not contain ANSI codes")
			}
		})
	}
}

func TestHeaderOffTTY(t *testing.T) {
	got := capture(t, func() { Header("Section") })
	if got != "\nSection\n" {
		t.Errorf("output = %q", got)
	}
}

func TestTablePlainAlignment(t *testing.T) {
	got := capture(t, func() {
		Table([]string{"NAME", "MODE"}, [][]string{
			{"a.txt", "rw-r--r--"},
			{"longer-name.txt", "rwxr-xr-x"},
		})
	})

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	// Second column starts at the same offset on every line.
	offset := strings.Index(lines[1], "rw-r--r--")
	if offset < 0 || strings.Index(lines[2], "rwxr-xr-x") != offset {
		t.Errorf("columns not aligned:\n%s", got)
	}
}

func TestTableRaggedRows(t *testing.T) {
	// Rows wider than the header row must render, not panic.
	got := capture(t, func() {
		Table([]string{"NAME"}, [][]string{
			{"a", "b", "c"},
			{"longer"},
		})
	})

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.Contains(lines[1], "c") {
		t.Errorf("excess cells dropped: %q", lines[1])
	}
	// Second column starts after the widest first-column cell.
	if strings.Index(lines[1], "b") <= len("longer") {
		t.Errorf("columns not aligned to widest row:\n%s", got)
	}
}

func TestBoxOffTTY(t *testing.T) {
	got := capture(t, func() { Box("Title", "line one", "line two") })
	want := "── Title ──\nline one\nline two\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"plain", 5},
		{"\033[32mgreen\033[0m", 5},
		{"漢字", 4},
		{"", 0},
	}
	for _, tt := range tests {
		if got := displayWidth(tt.in); got != tt.want {
			t.Errorf("displayWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
