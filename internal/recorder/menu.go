package recorder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/roach88/reclog/internal/editor"
	"github.com/roach88/reclog/internal/prompt"
	"github.com/roach88/reclog/internal/store"
)

// ErrNoEditor is returned by menu actions that need an editor when none
// is configured.
var ErrNoEditor = errors.New("no editor configured")

// Menu lets a user pick one record operation and supply its arguments.
type Menu struct {
	Records RecordStore
	Prompt  prompt.Prompter
	Editor  editor.Editor
	Out     io.Writer

	// Show receives the records found by list and search. Nil prints them
	// to Out one per line.
	Show func(recs []Record) error
}

type menuAction struct {
	name string
	run  func(ctx context.Context) error
}

func (m *Menu) actions() []menuAction {
	return []menuAction{
		{"add", m.add},
		{"list", m.list},
		{"search", m.search},
		{"edit", m.edit},
		{"delete", m.delete},
	}
}

// Choices returns the action names in display order.
func (m *Menu) Choices() []string {
	actions := m.actions()
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.name
	}
	return names
}

// Run shows the menu, reads one choice and performs it.
func (m *Menu) Run(ctx context.Context) error {
	i, err := m.Prompt.Pick(m.Choices(), "choice: ")
	if err != nil {
		return fmt.Errorf("menu: %w", err)
	}
	return m.actions()[i].run(ctx)
}

func (m *Menu) readKey() (string, error) {
	key, err := m.Prompt.ReadString("key: ", "")
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", fmt.Errorf("%w: empty key", store.ErrInvalidKey)
	}
	return key, nil
}

func (m *Menu) add(ctx context.Context) error {
	key, err := m.readKey()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	value, err := m.Prompt.ReadString("value (empty to open editor): ", "")
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}

	content := []byte(value)
	if value == "" {
		if m.Editor == nil {
			return fmt.Errorf("add: %w", ErrNoEditor)
		}
		if content, err = m.Editor.Edit(ctx, nil); err != nil {
			return fmt.Errorf("add: %w", err)
		}
	}
	return m.Records.Add(ctx, key, content)
}

func (m *Menu) list(ctx context.Context) error {
	return m.print(m.Records.List(ctx))
}

func (m *Menu) search(ctx context.Context) error {
	sub, err := m.Prompt.ReadString("search: ", "")
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	return m.print(m.Records.Search(ctx, Contains(sub, true)))
}

func (m *Menu) edit(ctx context.Context) error {
	if m.Editor == nil {
		return fmt.Errorf("edit: %w", ErrNoEditor)
	}
	key, err := m.readKey()
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	return EditRecord(ctx, m.Records, m.Editor, key)
}

func (m *Menu) delete(ctx context.Context) error {
	key, err := m.readKey()
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return m.Records.Delete(ctx, key)
}

func (m *Menu) print(seq iter.Seq2[Record, error]) error {
	if m.Show != nil {
		recs, err := Collect(seq)
		if err != nil {
			return err
		}
		return m.Show(recs)
	}
	for rec, err := range seq {
		if err != nil {
			return err
		}
		fmt.Fprintln(m.Out, rec)
	}
	return nil
}

// EditRecord opens the value stored under key in ed and saves the result.
// An absent key starts from empty content.
func EditRecord(ctx context.Context, records RecordStore, ed editor.Editor, key string) error {
	current, err := records.Get(ctx, key)
	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		return fmt.Errorf("edit: %w", err)
	}

	edited, err := ed.Edit(ctx, current)
	if err != nil {
		return err
	}
	return records.Save(ctx, key, edited)
}
