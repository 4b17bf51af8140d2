package main

import (
	"github.com/spf13/cobra"

	intake "github.com/gobeaver/intakekit"
	"github.com/gobeaver/intakekit/dropfolder"
)

func watchCmd(a *app) *cobra.Command {
	var ignore []string

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Treat a directory as a drop zone",
		Long: `Watch selects every file written into the directory, replacing the
previous selection just like dropping a new file onto the upload widget.
Runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := newPrinter(cmd.OutOrStdout())

			session, err := a.newSession(intake.WithHooks(p.hooks(nil)))
			if err != nil {
				return err
			}
			defer session.Close()

			patterns := ignore
			if len(patterns) == 0 {
				patterns = a.cfg.Ignore()
			}
			w, err := dropfolder.New(args[0], patterns, a.logger)
			if err != nil {
				return err
			}

			return w.Run(ctx, func(path string) {
				file, err := intake.FileFromPath(path)
				if err != nil {
					a.logger.Error().Err(err).Str("path", path).Msg("Cannot read dropped file")
					return
				}
				if _, err := session.Select(ctx, file); err != nil {
					a.logger.Debug().Err(err).Str("path", path).Msg("Selection skipped")
				}
			})
		},
	}

	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "glob patterns of file names to skip")
	return cmd
}
