package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxhq/styler/internal/config"
	"github.com/oxhq/styler/internal/report"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report formatting violations without writing any file",
		RunE:  runCheck,
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, targets, err := loadConfig(cmd, args)
	if err != nil {
		report.PrintFatal(err, cfg != nil && cfg.JSONOutput)
		return err
	}

	summary, err := processTargets(cfg, targets, nil)
	if err != nil {
		report.PrintFatal(err, cfg.JSONOutput)
		return err
	}

	if summary.failed > 0 {
		return fmt.Errorf("%d file(s) failed to process", summary.failed)
	}
	if summary.violations > 0 || summary.parseErrs > 0 {
		return fmt.Errorf("found %d violation(s) and %d parse error(s)", summary.violations, summary.parseErrs)
	}
	return nil
}
