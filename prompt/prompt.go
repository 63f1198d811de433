// Package prompt provides simple interactive questions for command-line
// scripts: yes/no confirmation, free text, single and multiple selection,
// and "press enter to continue". Every prompt degrades gracefully when the
// process is not attached to a terminal — pipelines get the default answer
// instead of a hang — and the streams can be substituted for tests.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"
)

// ErrNoOptions is returned by Select and MultiSelect for an empty option list.
var ErrNoOptions = errors.New("no options to select from")

type settings struct {
	in       terminal.FileReader
	out      terminal.FileWriter
	errOut   io.Writer
	override bool
}

// Option adjusts how a prompt is asked.
type Option func(*settings)

// WithStdio substitutes the streams a prompt reads and writes. Prompts with
// overridden streams are always treated as interactive.
func WithStdio(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) Option {
	return func(s *settings) {
		s.in, s.out, s.errOut = in, out, errOut
		s.override = true
	}
}

func apply(opts []Option) *settings {
	s := &settings{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	for _, o := range opts {
		o(s)
	}
	return s
}

// interactive reports whether the prompt should actually ask. With default
// streams that means stdin and stdout are both terminals.
func (s *settings) interactive() bool {
	if s.override {
		return true
	}
	return term.IsTerminal(int(s.in.Fd())) && term.IsTerminal(int(s.out.Fd()))
}

func (s *settings) askOpts() []survey.AskOpt {
	return []survey.AskOpt{
		survey.WithStdio(s.in, s.out, s.errOut),
		survey.WithIcons(func(icons *survey.IconSet) {
			icons.SelectFocus.Text = "▸"
			icons.SelectFocus.Format = "yellow"
			icons.MarkedOption.Text = "✓"
			icons.MarkedOption.Format = "green"
		}),
	}
}

// Confirm asks a yes/no question. Off-terminal it returns def without asking.
func Confirm(message string, def bool, opts ...Option) (bool, error) {
	s := apply(opts)
	if !s.interactive() {
		return def, nil
	}

	answer := def
	q := &survey.Confirm{Message: message, Default: def}
	if err := survey.AskOne(q, &answer, s.askOpts()...); err != nil {
		return def, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return answer, nil
}

// Input asks for a line of text. Off-terminal it returns def without asking.
func Input(message, def string, opts ...Option) (string, error) {
	s := apply(opts)
	if !s.interactive() {
		return def, nil
	}

	answer := def
	q := &survey.Input{Message: message, Default: def}
	if err := survey.AskOne(q, &answer, s.askOpts()...); err != nil {
		return def, fmt.Errorf("failed to read input: %w", err)
	}
	return answer, nil
}

// Select asks the user to pick one of options and returns its index.
// Off-terminal it returns 0, the first option, without asking.
func Select(message string, options []string, opts ...Option) (int, error) {
	if len(options) == 0 {
		return 0, ErrNoOptions
	}
	s := apply(opts)
	if !s.interactive() {
		return 0, nil
	}

	var idx int
	q := &survey.Select{Message: message, Options: options, PageSize: pageSize(len(options))}
	if err := survey.AskOne(q, &idx, s.askOpts()...); err != nil {
		return 0, fmt.Errorf("failed to read selection: %w", err)
	}
	return idx, nil
}

// MultiSelect asks the user to pick any number of options and returns their
// indices. Off-terminal it returns nil without asking.
func MultiSelect(message string, options []string, opts ...Option) ([]int, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}
	s := apply(opts)
	if !s.interactive() {
		return nil, nil
	}

	var indices []int
	q := &survey.MultiSelect{Message: message, Options: options, PageSize: pageSize(len(options))}
	if err := survey.AskOne(q, &indices, s.askOpts()...); err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}
	return indices, nil
}

// EnterToContinue prints message and waits for the user to press enter.
// Off-terminal it returns immediately.
func EnterToContinue(message string, opts ...Option) error {
	s := apply(opts)
	if !s.interactive() {
		return nil
	}

	fmt.Fprint(s.out, message)
	if _, err := bufio.NewReader(s.in).ReadString('\n'); err != nil && err != io.EOF {
		return fmt.Errorf("failed to read enter: %w", err)
	}
	return nil
}

// pageSize keeps long option lists scrollable without filling the screen.
func pageSize(n int) int {
	if n > 15 {
		return 15
	}
	return n
}
