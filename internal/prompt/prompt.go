// Package prompt implements line-mode interactive input: picking one of a
// list of choices and reading a string with a default.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// ErrNoInput is returned when the input ends before a line is read.
var ErrNoInput = errors.New("no input")

// Prompter reads choices and free text from a user.
type Prompter interface {
	// Pick shows choices and returns the index of the one selected.
	Pick(choices []string, label string) (int, error)

	// ReadString shows label and returns the line entered, or def when
	// the line is empty.
	ReadString(label, def string) (string, error)
}

// Line is a Prompter over a line-oriented reader and writer.
type Line struct {
	in  *bufio.Reader
	out io.Writer

	label  *color.Color
	number *color.Color
	warn   *color.Color
}

// New creates a Line prompter. Colors follow fatih/color's terminal
// detection, so they are off when output is not a TTY.
func New(in io.Reader, out io.Writer) *Line {
	return &Line{
		in:     bufio.NewReader(in),
		out:    out,
		label:  color.New(color.FgCyan),
		number: color.New(color.FgYellow),
		warn:   color.New(color.FgRed),
	}
}

// Pick prints the choices numbered from 1 and reads until the user enters
// a valid number or the exact name of a choice.
func (p *Line) Pick(choices []string, label string) (int, error) {
	if len(choices) == 0 {
		return 0, fmt.Errorf("pick: no choices")
	}

	for i, c := range choices {
		p.number.Fprintf(p.out, "%2d", i+1)
		fmt.Fprintf(p.out, ") %s\n", c)
	}

	for {
		line, err := p.readLine(label)
		if err != nil {
			return 0, err
		}
		if line == "" {
			continue
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(choices) {
			return n - 1, nil
		}
		for i, c := range choices {
			if c == line {
				return i, nil
			}
		}
		p.warn.Fprintf(p.out, "invalid choice %q\n", line)
	}
}

// ReadString prints label and returns the entered line without its
// trailing newline, or def when the line is empty.
func (p *Line) ReadString(label, def string) (string, error) {
	line, err := p.readLine(label)
	if err != nil {
		if errors.Is(err, ErrNoInput) && def != "" {
			return def, nil
		}
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

func (p *Line) readLine(label string) (string, error) {
	p.label.Fprint(p.out, label)

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", ErrNoInput
	}
	return strings.TrimRight(line, "\r\n"), nil
}
