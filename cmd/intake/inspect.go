package main

import (
	"fmt"

	"github.com/spf13/cobra"

	intake "github.com/gobeaver/intakekit"
)

func inspectCmd(a *app) *cobra.Command {
	var instant bool

	cmd := &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Select each file in turn and show the intake result",
		Long: `Inspect offers every file to one intake session, the same way picking
files one after another in the upload widget does. Accepted files run the
simulated upload to completion before the next file is selected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := newPrinter(cmd.OutOrStdout())
			done := make(chan intake.SelectedFile, 1)

			var manual *intake.ManualScheduler
			opts := []intake.Option{intake.WithHooks(p.hooks(done))}
			if instant {
				manual = intake.NewManualScheduler()
				opts = append(opts, intake.WithScheduler(manual))
			}

			session, err := a.newSession(opts...)
			if err != nil {
				return err
			}
			defer session.Close()

			rejected := 0
			for _, path := range args {
				file, err := intake.FileFromPath(path)
				if err != nil {
					a.logger.Error().Err(err).Str("path", path).Msg("Cannot read file")
					rejected++
					continue
				}

				outcome, err := session.Select(ctx, file)
				if err != nil {
					return err
				}
				if !outcome.IsAccepted() {
					rejected++
					continue
				}

				if manual != nil {
					// Enough virtual time for a full run at any step size.
					manual.Advance(a.cfg.ProgressInterval() * 100)
				}
				select {
				case <-done:
				case <-ctx.Done():
					return ctx.Err()
				}
			}

			if rejected > 0 {
				return fmt.Errorf("%d of %d files were not accepted", rejected, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&instant, "instant", false, "skip the simulated upload delay")
	return cmd
}
