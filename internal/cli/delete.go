package cli

import (
	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "delete <key>",
		Short:         "Delete a record",
		Long:          `Delete the record stored under key. An absent key is an error (E001).`,
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
			if err := s.records.Delete(cmd.Context(), key); err != nil {
				return s.out.Fail(err)
			}
			return s.out.Success(mutation{Action: "deleted", Key: key})
		},
	}

	return cmd
}
