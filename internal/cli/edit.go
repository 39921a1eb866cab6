package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/reclog/internal/recorder"
)

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <key>",
		Short: "Edit a record's value in the editor",
		Long: `Open the value stored under key in the editor and save the result.

An absent key starts from an empty buffer. The editor is taken from the
config file (editor.command) and defaults to vi.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			key := args[0]
			if err := recorder.EditRecord(cmd.Context(), s.records, s.editor, key); err != nil {
				return s.out.Fail(fmt.Errorf("edit %q: %w", key, err))
			}
			return s.out.Success(mutation{Action: "saved", Key: key})
		},
	}

	return cmd
}
