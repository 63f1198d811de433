package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/pterm/pterm"
)

// displayWidth returns the visible width of a string (excluding ANSI codes,
// handling wide chars).
func displayWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

// Table prints headers and rows as an aligned table: pterm-styled on a
// terminal, plain space-separated columns otherwise.
func Table(headers []string, rows [][]string) {
	if IsTTY() {
		data := pterm.TableData{headers}
		for _, row := range rows {
			data = append(data, row)
		}
		table := pterm.DefaultTable.WithHasHeader().WithData(data)
		if s, err := table.Srender(); err == nil {
			fmt.Fprintln(out, s)
			return
		}
		// Rendering failures fall through to the plain path.
	}

	// Widths cover the widest row, not just the header, so ragged rows
	// render instead of crashing.
	var widths []int
	measure := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	printRow := func(cells []string) {
		var b strings.Builder
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-displayWidth(cell)))
			}
		}
		fmt.Fprintln(out, b.String())
	}

	printRow(headers)
	for _, row := range rows {
		printRow(row)
	}
}

// Box prints content in a styled box on a terminal, or a simple delimited
// section otherwise.
func Box(title string, lines ...string) {
	if !IsTTY() {
		if title != "" {
			fmt.Fprintf(out, "── %s ──\n", title)
		}
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
		return
	}

	// Pad lines to the same display width for a straight right edge.
	maxLen := 0
	for _, line := range lines {
		if w := displayWidth(line); w > maxLen {
			maxLen = w
		}
	}
	content := ""
	for i, line := range lines {
		padded := line
		if w := displayWidth(line); w < maxLen {
			padded = line + strings.Repeat(" ", maxLen-w)
		}
		content += padded
		if i < len(lines)-1 {
			content += "\n"
		}
	}

	box := pterm.DefaultBox.WithTitle(title)
	box.Println(content)
}
