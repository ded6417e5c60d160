package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the operator for input.
type Prompter interface {
	// Prompt shows label and reads an echoed line.
	Prompt(label string) (string, error)
	// PromptSecret shows label and reads a line without echoing it.
	PromptSecret(label string) (string, error)
}

// ============================================================================
// Terminal Prompter
// ============================================================================

// Terminal prompts on out and reads from in. Hidden input uses the terminal
// when in is one; piped input is read as plain lines.
type Terminal struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

// NewTerminal prompts on stderr and reads stdin.
func NewTerminal() *Terminal {
	return NewTerminalWith(os.Stdin, os.Stderr)
}

// NewTerminalWith prompts on out and reads from in.
func NewTerminalWith(in *os.File, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out, reader: bufio.NewReader(in)}
}

// Prompt reads one echoed line.
func (t *Terminal) Prompt(label string) (string, error) {
	fmt.Fprint(t.out, label)
	return t.readLine()
}

// PromptSecret reads one line with echo disabled.
func (t *Terminal) PromptSecret(label string) (string, error) {
	fmt.Fprint(t.out, label)

	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return t.readLine()
	}

	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(t.out)
	if err != nil {
		return "", fmt.Errorf("failed to read hidden input: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
