package main

import (
	"github.com/spf13/cobra"

	"github.com/oxhq/styler/internal/config"
	"github.com/oxhq/styler/internal/report"
	"github.com/oxhq/styler/internal/writer"
)

// newApplyCmd replays changes staged by a prior `styler format` run,
// then prints the resulting write summary and exits.
func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply previously staged changes to disk",
		RunE:  runApply,
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd, args)
	if err != nil {
		report.PrintFatal(err, cfg != nil && cfg.JSONOutput)
		return err
	}

	w := writer.NewCommitWriter(cfg.StagingDir)
	if err := w.ApplyStagedChanges(); err != nil {
		report.PrintFatal(err, cfg.JSONOutput)
		return err
	}

	report.PrintSummary(w, cfg.JSONOutput)
	return nil
}
