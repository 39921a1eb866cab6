package testutil

import (
	"context"

	"github.com/roach88/reclog/internal/editor"
)

// FakeEditor replaces content without running a process.
type FakeEditor struct {
	// Result is returned from every Edit.
	Result []byte
	// Err, when set, is returned instead of Result.
	Err error
	// Seen holds the initial content of each Edit call.
	Seen [][]byte
}

var _ editor.Editor = (*FakeEditor)(nil)

// Edit records initial and returns Result.
func (e *FakeEditor) Edit(_ context.Context, initial []byte) ([]byte, error) {
	e.Seen = append(e.Seen, initial)
	if e.Err != nil {
		return nil, e.Err
	}
	return e.Result, nil
}
