package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	intake "github.com/gobeaver/intakekit"
	"github.com/gobeaver/intakekit/internal/log"
)

// app carries what every subcommand needs once flags are parsed
type app struct {
	cfg    *intake.Config
	policy intake.Policy
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	var (
		policyFile string
		logLevel   string
		a          = &app{}
	)

	rootCmd := &cobra.Command{
		Use:           "intake",
		Short:         "Validate and preview files the way the upload widget does",
		Long:          `Intake checks files against a size ceiling and type allow-list, shows their icon and size, and simulates upload progress.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := intake.GetConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			a.cfg = cfg
			a.logger = log.New(cmd.ErrOrStderr(), cfg.Level())

			a.policy = cfg.Policy()
			if policyFile != "" {
				a.policy, err = intake.LoadPolicyFile(policyFile, a.policy)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&policyFile, "policy", "", "YAML file overriding the validation policy")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(inspectCmd(a))
	rootCmd.AddCommand(watchCmd(a))
	rootCmd.AddCommand(submitCmd(a))

	return rootCmd
}

// newSession builds a session from the loaded config with the command's policy
func (a *app) newSession(opts ...intake.Option) (*intake.Session, error) {
	if a.cfg.ProgressIntervalMS <= 0 || a.cfg.ProgressStep <= 0 {
		return nil, fmt.Errorf("invalid progress settings: interval %dms, step %d", a.cfg.ProgressIntervalMS, a.cfg.ProgressStep)
	}
	base := []intake.Option{
		intake.WithProgress(a.cfg.ProgressInterval(), a.cfg.ProgressStep),
		intake.WithNoticeTTL(a.cfg.ErrorNoticeTTL(), a.cfg.SuccessNoticeTTL()),
		intake.WithPreviews(intake.NewPreviews(a.cfg.PreviewMaxBytes)),
		intake.WithLogger(a.logger),
	}
	return intake.NewSession(a.policy, append(base, opts...)...), nil
}
