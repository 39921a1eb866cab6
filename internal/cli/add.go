package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// mutation reports a change to one record.
type mutation struct {
	Action string `json:"action"`
	Key    string `json:"key"`
}

func (m mutation) String() string {
	return m.Action + " " + m.Key
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <key> [value]",
		Short: "Add or replace a record",
		Long: `Store value under key, replacing any previous value.

Without a value the editor is opened on an empty buffer and its result is
stored.

Example:
  reclog add age 30
  reclog add notes`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return addRecord(rootOpts, args, cmd)
		},
	}

	return cmd
}

func addRecord(opts *RootOptions, args []string, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	key := args[0]

	var value []byte
	if len(args) == 2 {
		value = []byte(args[1])
	} else {
		if value, err = s.editor.Edit(ctx, nil); err != nil {
			return s.out.Fail(fmt.Errorf("add %q: %w", key, err))
		}
	}

	if err := s.records.Add(ctx, key, value); err != nil {
		return s.out.Fail(fmt.Errorf("add %q: %w", key, err))
	}
	return s.out.Success(mutation{Action: "added", Key: key})
}
