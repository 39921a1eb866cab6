package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/reclog/internal/recorder"
	"github.com/roach88/reclog/internal/timefmt"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	Prefix     string
	Contains   string
	IgnoreCase bool
	Since      string
	Until      string
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "List the records that match",
		Long: `List the records matching every given condition, in key order.

A positional text is the same as --contains. --since and --until bound
time-keyed log entries; they accept "2015-06-15", "2015-06-15 14:09",
or a bare "14:09" for today. --since is inclusive, --until exclusive.

Example:
  reclog search --prefix age
  reclog search -i coffee
  reclog search --since 2015-06-01 --until 2015-07-01`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if opts.Contains != "" {
					return NewExitError(ExitCommandError, "give the text either as an argument or with --contains")
				}
				opts.Contains = args[0]
			}
			return searchRecords(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "keys starting with prefix")
	cmd.Flags().StringVar(&opts.Contains, "contains", "", "key or value containing text")
	cmd.Flags().BoolVarP(&opts.IgnoreCase, "ignore-case", "i", false, "case-insensitive --contains")
	cmd.Flags().StringVar(&opts.Since, "since", "", "keys at or after this time")
	cmd.Flags().StringVar(&opts.Until, "until", "", "keys before this time")

	return cmd
}

func searchRecords(opts *SearchOptions, cmd *cobra.Command) error {
	s, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	match, err := opts.predicate(s.now(), s.records.Key)
	if err != nil {
		return s.out.Fail(err)
	}

	recs, err := recorder.Collect(s.records.Search(cmd.Context(), match))
	if err != nil {
		return s.out.Fail(err)
	}
	return s.out.Records(recs)
}

// predicate combines the flags into one Predicate. No flags match everything.
// keyOf maps the prefix to the form keys are stored in.
func (o *SearchOptions) predicate(now time.Time, keyOf func(string) string) (recorder.Predicate, error) {
	var preds []recorder.Predicate

	if o.Prefix != "" {
		preds = append(preds, recorder.KeyPrefix(keyOf(o.Prefix)))
	}
	if o.Contains != "" {
		preds = append(preds, recorder.Contains(o.Contains, o.IgnoreCase))
	}

	if o.Since != "" || o.Until != "" {
		var from, until string
		if o.Since != "" {
			t, err := timefmt.Parse(o.Since, now)
			if err != nil {
				return nil, fmt.Errorf("%w: --since: %w", errInvalidInput, err)
			}
			from = timefmt.ISOTime(t)
		}
		if o.Until != "" {
			t, err := timefmt.Parse(o.Until, now)
			if err != nil {
				return nil, fmt.Errorf("%w: --until: %w", errInvalidInput, err)
			}
			until = timefmt.ISOTime(t)
		}
		preds = append(preds, recorder.KeyRange(from, until))
	}

	return recorder.And(preds...), nil
}
