package editor

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

func TestNewCommand_Default(t *testing.T) {
	assert.Equal(t, DefaultCommand, NewCommand("").Line)
	assert.Equal(t, DefaultCommand, NewCommand("   ").Line)
	assert.Equal(t, "nano -w", NewCommand("nano -w").Line)
}

func TestEdit_Unchanged(t *testing.T) {
	requireTool(t, "true")

	c := &Command{Line: "true"}
	got, err := c.Edit(context.Background(), []byte("age 34\n"))
	require.NoError(t, err)
	assert.Equal(t, "age 34\n", string(got))
}

func TestEdit_Modified(t *testing.T) {
	requireTool(t, "sed")

	c := &Command{Line: "sed -i -e s/34/35/"}
	got, err := c.Edit(context.Background(), []byte("age 34\n"))
	require.NoError(t, err)
	assert.Equal(t, "age 35\n", string(got))
}

func TestEdit_NoInitialContent(t *testing.T) {
	requireTool(t, "tee")

	// tee copies its stdin into the temp file, standing in for a user typing.
	c := &Command{
		Line:   "tee",
		Stdin:  strings.NewReader("hello\n"),
		Stdout: &bytes.Buffer{},
	}
	got, err := c.Edit(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(got))
}

func TestEdit_EditorFailure(t *testing.T) {
	requireTool(t, "false")

	stderr := &bytes.Buffer{}
	c := &Command{Line: "false", Stderr: stderr}
	_, err := c.Edit(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFailed)
	assert.Contains(t, err.Error(), "run false")
}

func TestEdit_EmptyCommand(t *testing.T) {
	c := &Command{Line: " "}
	_, err := c.Edit(context.Background(), nil)
	assert.ErrorIs(t, err, ErrFailed)
}

func TestEdit_MissingBinary(t *testing.T) {
	c := &Command{Line: "reclog-no-such-editor-binary"}
	_, err := c.Edit(context.Background(), []byte("x"))
	assert.ErrorIs(t, err, ErrFailed)
}
