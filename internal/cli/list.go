package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/reclog/internal/recorder"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every record in key order",
		Long: `List every record in ascending key order, one "key<TAB>value" per line.

With --format json the records are printed as a list of {key, value}.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			recs, err := recorder.Collect(s.records.List(cmd.Context()))
			if err != nil {
				return s.out.Fail(err)
			}
			return s.out.Records(recs)
		},
	}

	return cmd
}
