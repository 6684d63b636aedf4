// Package prompt implements line-oriented operator interaction for the
// bootstrap: labeled questions, masked secret entry, multi-line list
// collection and numbered menus. Prompting blocks until the operator
// answers; no timeout applies to human input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	labelColor = color.New(color.FgCyan, color.Bold)
	hintColor  = color.New(color.Faint)
	errorColor = color.New(color.FgRed)
)

// Prompter asks questions on out and reads answers from in. It is built
// around plain io interfaces so tests can drive it with buffers.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	// maskedFd is the file descriptor used for no-echo input when the
	// input is a terminal; -1 disables masking.
	maskedFd int
}

// New creates a Prompter over arbitrary reader/writer pairs. Masked input
// degrades to plain line reading because there is no terminal to control.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, maskedFd: -1}
}

// NewStdio creates a Prompter on stdin/stdout, with no-echo secret entry
// when stdin is a terminal.
func NewStdio() *Prompter {
	p := New(os.Stdin, os.Stdout)
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		p.maskedFd = fd
	}
	return p
}

// readLine reads one line and strips the trailing newline and surrounding
// whitespace. io.EOF with a non-empty line is treated as a complete answer.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Ask shows a labeled question with the value that an empty answer keeps,
// and returns the operator's trimmed input. An empty answer returns "".
func (p *Prompter) Ask(label, current string) (string, error) {
	labelColor.Fprint(p.out, label)
	if current != "" {
		hintColor.Fprintf(p.out, " [%s]", current)
	}
	fmt.Fprint(p.out, ": ")

	return p.readLine()
}

// AskMasked asks for a secret without echoing it when a terminal is
// attached. The shown current value, if any, must already be truncated by
// the caller.
func (p *Prompter) AskMasked(label, current string) (string, error) {
	labelColor.Fprint(p.out, label)
	if current != "" {
		hintColor.Fprintf(p.out, " [%s]", current)
	}
	fmt.Fprint(p.out, ": ")

	if p.maskedFd >= 0 {
		raw, err := term.ReadPassword(p.maskedFd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	return p.readLine()
}

// AskList collects values one per line until the operator enters an empty
// line. The empty line is consumed and not part of the result.
func (p *Prompter) AskList(label string) ([]string, error) {
	labelColor.Fprintln(p.out, label)
	hintColor.Fprintln(p.out, "(one per line, empty line to finish)")

	var values []string
	for {
		fmt.Fprint(p.out, "> ")
		line, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			return values, nil
		}
		values = append(values, line)
	}
}

// Menu prints a numbered menu and returns the operator's raw answer. The
// caller interprets the answer; out-of-range handling is selection policy,
// not prompting policy.
func (p *Prompter) Menu(title string, options []string) (string, error) {
	labelColor.Fprintln(p.out, title)
	for i, option := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, option)
	}
	fmt.Fprint(p.out, "Select: ")

	return p.readLine()
}

// Notify prints an informational line to the operator.
func (p *Prompter) Notify(format string, a ...any) {
	fmt.Fprintf(p.out, format+"\n", a...)
}

// Errorf prints a recoverable problem to the operator, typically right
// before reprompting.
func (p *Prompter) Errorf(format string, a ...any) {
	errorColor.Fprintf(p.out, format+"\n", a...)
}

// Confirm asks a yes/no question; an empty answer means the given default.
func (p *Prompter) Confirm(label string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	labelColor.Fprint(p.out, label)
	hintColor.Fprintf(p.out, " [%s]", hint)
	fmt.Fprint(p.out, ": ")

	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
