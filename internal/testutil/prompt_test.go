package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/reclog/internal/prompt"
)

func TestScriptedPrompt(t *testing.T) {
	p := NewScriptedPrompt("list", "", "y")

	i, err := p.Pick([]string{"add", "list"}, "choice: ")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	s, err := p.ReadString("confirm? [n] ", "n")
	require.NoError(t, err)
	assert.Equal(t, "n", s)

	s, err = p.ReadString("confirm? [n] ", "n")
	require.NoError(t, err)
	assert.Equal(t, "y", s)

	_, err = p.ReadString("more: ", "")
	assert.ErrorIs(t, err, prompt.ErrNoInput)

	assert.Equal(t, 4, p.Prompted())
	assert.Zero(t, p.Remaining())
	assert.Equal(t, "choice: ", p.Labels[0])
}

func TestScriptedPrompt_UnknownChoice(t *testing.T) {
	p := NewScriptedPrompt("bogus")

	_, err := p.Pick([]string{"add"}, "choice: ")
	assert.Error(t, err)
}
