// Package editor edits byte content in an external program.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// DefaultCommand is used when no editor command is configured.
const DefaultCommand = "vi"

// ErrFailed wraps every failure of Command.Edit: a missing binary, a
// non-zero exit, or trouble with the temporary file.
var ErrFailed = errors.New("editor failed")

// Editor turns initial content into edited content.
// Implementations block until editing is finished.
type Editor interface {
	Edit(ctx context.Context, initial []byte) ([]byte, error)
}

// Command runs an external editor on a temporary file.
type Command struct {
	// Line is the editor command line, e.g. "vim -n". The temp file path
	// is appended as the last argument.
	Line string

	// Stdio for the editor process. Nil falls back to the process's own.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewCommand returns a Command for line, or DefaultCommand when line is blank.
func NewCommand(line string) *Command {
	if strings.TrimSpace(line) == "" {
		line = DefaultCommand
	}
	return &Command{Line: line}
}

// Edit writes initial to a temp file, runs the editor on it, waits for the
// editor to exit and returns the file's final content. The temp file is
// always removed.
func (c *Command) Edit(ctx context.Context, initial []byte) ([]byte, error) {
	argv := strings.Fields(c.Line)
	if len(argv) == 0 {
		return nil, fmt.Errorf("%w: empty editor command", ErrFailed)
	}

	f, err := os.CreateTemp("", "reclog-*.txt")
	if err != nil {
		return nil, fmt.Errorf("%w: create temp file: %w", ErrFailed, err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(initial); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: write temp file: %w", ErrFailed, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: close temp file: %w", ErrFailed, err)
	}

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if c.Stdin != nil {
		cmd.Stdin = c.Stdin
	}
	if c.Stdout != nil {
		cmd.Stdout = c.Stdout
	}
	if c.Stderr != nil {
		cmd.Stderr = c.Stderr
	}

	slog.Debug("running editor", "component", "editor", "command", argv[0], "file", path)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: run %s: %w", ErrFailed, argv[0], err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read temp file: %w", ErrFailed, err)
	}
	return content, nil
}
