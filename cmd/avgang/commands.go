package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/five82/avgang/internal/app"
	"github.com/five82/avgang/internal/applog"
	"github.com/five82/avgang/internal/config"
)

const defaultLogLines = 50

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "avgang",
		Short: "Västtrafik departure board pinned to the desktop",
		Long: `avgang shows the next departures from a Västtrafik stop area in a small
panel that sits on the desktop background and refreshes every ten minutes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "override config path (optional)")
	root.Flags().StringVar(&opts.PrefsPath, "prefs", "", "override prefs path (optional)")

	root.AddCommand(newOnceCmd(&opts), newLogsCmd(&opts))
	return root
}

func newOnceCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Fetch departures once and print them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := ctx.Err(); err != nil {
				return err
			}

			// The action hands its result over a channel so an interrupted
			// spinner never races with a fetch that is still running.
			results := make(chan app.Board, 1)
			err := spinner.New().
				Title("Fetching departures...").
				Context(ctx).
				ActionWithErr(func(ctx context.Context) error {
					board, err := app.Once(ctx, *opts)
					if err != nil {
						return err
					}
					results <- board
					return nil
				}).
				Run()
			if err != nil {
				return err
			}

			var board app.Board
			select {
			case board = <-results:
			default:
				return fmt.Errorf("fetch departures: %w", context.Canceled)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Avgångar %s\n", cases.Title(language.Swedish).String(board.StopName))
			for _, row := range board.Rows {
				fmt.Fprintln(out, row.String())
			}
			return nil
		},
	}
}

func newLogsCmd(opts *app.Options) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the widget log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.LogPath(opts.ConfigPath)
			if err != nil {
				return fmt.Errorf("resolve log path: %w", err)
			}
			tail, err := applog.Tail(path, lines)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(tail) == 0 {
				fmt.Fprintf(out, "no log entries in %s\n", path)
				return nil
			}
			for _, line := range tail {
				fmt.Fprintln(out, applog.Highlight(strings.TrimRight(line, "\r")))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", defaultLogLines, "number of lines to show (0 for all)")
	return cmd
}
