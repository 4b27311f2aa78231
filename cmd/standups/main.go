package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/five82/standups/internal/app"
	"github.com/five82/standups/internal/logtail"
	"github.com/five82/standups/internal/standup"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "standups: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "standups",
		Short: "Run timed standup meetings from the terminal",
		Long: `Standups keeps a list of recurring meetings with their attendees.
Start a meeting to run a timer that hands the floor to each attendee in turn
and keeps a transcript of what was said.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/standups/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "prefs file (default ~/.config/standups/prefs.toml)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log at debug level")
	flags.BoolVar(&opts.Demo, "demo", false, "start from a sample standup and keep changes in memory")

	root.AddCommand(newListCmd(&opts), newLogsCmd(&opts), newVersionCmd())
	return root
}

func newListCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the saved standups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			standups, err := app.LoadStandups(*opts)
			if err != nil {
				return err
			}
			printStandups(cmd.OutOrStdout(), standups)
			return nil
		},
	}
}

func printStandups(w io.Writer, standups []standup.Standup) {
	if len(standups) == 0 {
		fmt.Fprintln(w, "No standups yet.")
		return
	}
	for _, s := range standups {
		title := s.Title
		if title == "" {
			title = "Untitled"
		}
		meetings := fmt.Sprintf("%d meetings", len(s.Meetings))
		if len(s.Meetings) == 1 {
			meetings = "1 meeting"
		}
		fmt.Fprintf(w, "%s (%s, %d min, %s)\n", title, s.Theme.Name(), int(s.Duration.Minutes()), meetings)
		for _, a := range s.Attendees {
			fmt.Fprintf(w, "  - %s\n", a.Name)
		}
	}
}

func newLogsCmd(opts *app.Options) *cobra.Command {
	var (
		lines int
		level string
		raw   bool
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			threshold, err := zapcore.ParseLevel(level)
			if err != nil {
				return fmt.Errorf("--level: %w", err)
			}
			path, err := app.LogFile(*opts)
			if err != nil {
				return err
			}
			out, err := logtail.Read(path, lines)
			if err != nil {
				return err
			}
			out = logtail.Filter(out, threshold)

			w := cmd.OutOrStdout()
			switch {
			case raw:
			case isTerminal(w):
				out = logtail.ColorizeLines(out)
			default:
				out = logtail.FormatLines(out)
			}
			for _, line := range out {
				fmt.Fprintln(w, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 200, "number of lines to show (0 for all)")
	cmd.Flags().StringVar(&level, "level", "debug", "minimum level to show")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the JSON lines as written")
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "standups %s\n", version)
		},
	}
}
