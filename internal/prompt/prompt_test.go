package prompt

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestPick_ByNumber(t *testing.T) {
	out := &bytes.Buffer{}
	p := New(strings.NewReader("2\n"), out)

	i, err := p.Pick([]string{"add", "list", "search"}, "choice: ")
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.Equal(t, " 1) add\n 2) list\n 3) search\nchoice: ", out.String())
}

func TestPick_ByName(t *testing.T) {
	p := New(strings.NewReader("search\n"), &bytes.Buffer{})

	i, err := p.Pick([]string{"add", "list", "search"}, "choice: ")
	require.NoError(t, err)
	assert.Equal(t, 2, i)
}

func TestPick_RetriesInvalid(t *testing.T) {
	out := &bytes.Buffer{}
	p := New(strings.NewReader("9\n\nbogus\n1\n"), out)

	i, err := p.Pick([]string{"add", "list"}, "> ")
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Contains(t, out.String(), `invalid choice "9"`)
	assert.Contains(t, out.String(), `invalid choice "bogus"`)
}

func TestPick_EOF(t *testing.T) {
	p := New(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.Pick([]string{"add"}, "> ")
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestPick_NoChoices(t *testing.T) {
	p := New(strings.NewReader("1\n"), &bytes.Buffer{})

	_, err := p.Pick(nil, "> ")
	assert.Error(t, err)
}

func TestReadString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   string
		want  string
	}{
		{"value", "y\n", "n", "y"},
		{"empty uses default", "\n", "n", "n"},
		{"crlf trimmed", "yes\r\n", "n", "yes"},
		{"no trailing newline", "Y", "n", "Y"},
		{"eof uses default", "", "n", "n"},
		{"spaces kept", "  hello world \n", "", "  hello world "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			p := New(strings.NewReader(tt.input), out)

			got, err := p.ReadString("confirm? [n] ", tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "confirm? [n] ", out.String())
		})
	}
}

func TestReadString_EOFWithoutDefault(t *testing.T) {
	p := New(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.ReadString("key: ", "")
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestReadString_Sequential(t *testing.T) {
	p := New(strings.NewReader("age\n34\n"), &bytes.Buffer{})

	k, err := p.ReadString("key: ", "")
	require.NoError(t, err)
	v, err := p.ReadString("value: ", "")
	require.NoError(t, err)

	assert.Equal(t, "age", k)
	assert.Equal(t, "34", v)
}
