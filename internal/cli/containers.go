package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/reclog/internal/store"
)

// NewContainersCommand creates the containers command.
func NewContainersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "containers",
		Short: "List the containers in the store",
		Long: `List the container names in the store, in name order. The container
selected by --container (or the config) is created if it does not exist.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			db, err := store.Open(s.cfg.Database.Path)
			if err != nil {
				return s.out.Fail(err)
			}
			defer db.Close()

			ctx := cmd.Context()
			if _, err := db.Container(ctx, s.cfg.Database.Container); err != nil {
				return s.out.Fail(err)
			}
			names, err := db.Containers(ctx)
			if err != nil {
				return s.out.Fail(fmt.Errorf("containers: %w", err))
			}

			if s.out.Format == "json" {
				return s.out.Success(names)
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	return cmd
}
