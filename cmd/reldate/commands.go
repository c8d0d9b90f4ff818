package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-reldate"
)

// Version is set at build time
var Version = "0.1.0"

type rootOptions struct {
	lang     string
	zone     string
	now      string
	catalogs []string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "reldate",
		Short: "Render localized relative dates",
		Long: `reldate prints short relative date phrases such as "3 days ago" or
"Yesterday" in any language with a phrase catalog.

The language defaults to RELDATE_LANG, then LC_ALL, LC_MESSAGES and LANG.`,
		Version:      Version,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.lang, "lang", "l", "", "language code (wiki code or BCP 47 tag)")
	flags.StringVar(&opts.zone, "tz", "", "IANA time zone for calendar arithmetic (default local)")
	flags.StringVar(&opts.now, "now", "", "fixed current instant (RFC 3339), mainly for scripts and tests")
	flags.StringSliceVar(&opts.catalogs, "catalog", nil, "extra phrase catalog files (toml, yaml, json)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log language fallbacks")

	root.AddCommand(
		newAgoCmd(opts),
		newBetweenCmd(opts),
		newDayCmd(opts),
		newYearsAgoCmd(opts),
		newLanguagesCmd(opts),
	)

	return root
}

func newAgoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ago <date>",
		Short: "Describe a date relative to now",
		Long: `Describe a date relative to the current instant.

Examples:
  reldate ago 2024-01-01
  reldate ago 2024-01-01T10:00:00Z --lang de`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.formatter(cmd)
			if err != nil {
				return err
			}
			date, err := parseInstant(args[0], f.Location())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.RelativeToNow(date))
			return nil
		},
	}
}

func newBetweenCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "between <date> <reference>",
		Short: "Describe a date relative to a reference date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.formatter(cmd)
			if err != nil {
				return err
			}
			date, err := parseInstant(args[0], f.Location())
			if err != nil {
				return err
			}
			reference, err := parseInstant(args[1], f.Location())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.RelativeToDate(date, reference))
			return nil
		},
	}
}

func newDayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "day <yyyy-mm-dd>",
		Short: "Describe a calendar day relative to today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.formatter(cmd)
			if err != nil {
				return err
			}
			day, err := parseInstant(args[0], time.UTC)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.RelativeFromMidnightUTC(day))
			return nil
		},
	}
}

func newYearsAgoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "years-ago [count]",
		Short: `Print the "years ago" fragment or an anniversary caption`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.formatter(cmd)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), f.YearsAgoPhrase(""))
				return nil
			}
			years, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year count %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.FormatYearsAgo("", years))
			return nil
		},
	}
}

func newLanguagesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List known languages and their lookup tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.formatter(cmd)
			if err != nil {
				return err
			}
			catalog := f.Catalog()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tTAG\tNAME\tFALLBACKS")
			for _, code := range catalog.ActiveCodes() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", code, catalog.Tag(code), catalog.DisplayName(code), strings.Join(catalog.Fallbacks(code), ","))
			}
			return w.Flush()
		},
	}
}

func (o *rootOptions) formatter(cmd *cobra.Command) (*reldate.Formatter, error) {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	if o.verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	options := []reldate.Option{
		reldate.WithFormatHooks(reldate.NewLogHook(logger)),
	}

	if o.zone != "" {
		loc, err := time.LoadLocation(o.zone)
		if err != nil {
			return nil, fmt.Errorf("load time zone %q: %w", o.zone, err)
		}
		options = append(options, reldate.WithLocation(loc))
	}

	if o.now != "" {
		now, err := time.Parse(time.RFC3339, o.now)
		if err != nil {
			return nil, fmt.Errorf("invalid --now %q: %w", o.now, err)
		}
		options = append(options, reldate.WithClock(clockwork.NewFakeClockAt(now)))
	}

	if len(o.catalogs) > 0 {
		options = append(options, reldate.WithCatalogFiles(o.catalogs...))
	}

	f, err := reldate.New(options...)
	if err != nil {
		return nil, err
	}
	// the environment may name languages missing from the catalog, which In accepts
	f = f.In(reldate.ResolveLanguage(o.lang))

	logger.WithFields(logrus.Fields{
		"language": f.Language(),
		"location": f.Location().String(),
	}).Debug("formatter ready")

	return f, nil
}

// parseInstant accepts RFC 3339 timestamps or plain dates, the latter read in loc
func parseInstant(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateTime, value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want RFC 3339 or YYYY-MM-DD)", value)
}
