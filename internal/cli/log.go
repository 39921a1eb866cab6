package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/reclog/internal/timefmt"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	*RootOptions
	At string
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "log [text...]",
		Short: "Add a log entry keyed by the current time",
		Long: `Store text under a key made from the current time ("2006-01-02 15:04:05").

Arguments are joined with spaces. Without text the editor is opened.
--at records the entry at another time; it accepts the same forms as
search --since.

Example:
  reclog log drank coffee
  reclog log --at "2015-06-15 14:09" met Ann`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return logEntry(opts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().StringVar(&opts.At, "at", "", "time of the entry (default now)")

	return cmd
}

func logEntry(opts *LogOptions, text string, cmd *cobra.Command) error {
	s, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	at := s.now()
	if opts.At != "" {
		if at, err = timefmt.Parse(opts.At, at); err != nil {
			return s.out.Fail(fmt.Errorf("%w: --at: %w", errInvalidInput, err))
		}
	}

	if text == "" {
		content, err := s.editor.Edit(ctx, nil)
		if err != nil {
			return s.out.Fail(fmt.Errorf("log: %w", err))
		}
		text = string(content)
	}

	key, err := s.logger.Log(ctx, at, text)
	if err != nil {
		return s.out.Fail(fmt.Errorf("log: %w", err))
	}
	return s.out.Success(mutation{Action: "logged", Key: key})
}

// delLastResult reports the outcome of dellast.
type delLastResult struct {
	Deleted bool `json:"deleted"`
}

func (r delLastResult) String() string {
	if r.Deleted {
		return "deleted last record"
	}
	return "nothing deleted"
}

// NewDelLastCommand creates the dellast command.
func NewDelLastCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dellast",
		Short: "Delete the last record after confirmation",
		Long: `Show the value of the record with the greatest key and delete it if
the answer is "y". Any other answer, or none, keeps it.

With no records nothing is asked.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			deleted, err := s.logger.DelLast(cmd.Context())
			if err != nil {
				return s.out.Fail(fmt.Errorf("dellast: %w", err))
			}
			return s.out.Success(delLastResult{Deleted: deleted})
		},
	}

	return cmd
}
