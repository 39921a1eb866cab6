package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/reclog/internal/recorder"
)

// NewMenuCommand creates the menu command.
func NewMenuCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Pick an operation interactively",
		Long: `Show the operations (add, list, search, edit, delete), read one choice
by number or name, then prompt for its arguments and run it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			m := &recorder.Menu{
				Records: s.records,
				Prompt:  s.prompt,
				Editor:  s.editor,
				Out:     cmd.OutOrStdout(),
				Show:    s.out.Records,
			}
			if err := m.Run(cmd.Context()); err != nil {
				return s.out.Fail(err)
			}
			return nil
		},
	}

	return cmd
}
