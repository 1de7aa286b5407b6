package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxhq/styler/internal/config"
	"github.com/oxhq/styler/internal/report"
	"github.com/oxhq/styler/internal/writer"
)

func newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Format source files, staging changes for review by default",
		RunE:  runFormat,
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func runFormat(cmd *cobra.Command, args []string) error {
	cfg, targets, err := loadConfig(cmd, args)
	if err != nil {
		report.PrintFatal(err, cfg != nil && cfg.JSONOutput)
		return err
	}

	w := selectWriter(cfg)
	summary, err := processTargets(cfg, targets, w)
	if err != nil {
		report.PrintFatal(err, cfg.JSONOutput)
		return err
	}

	report.PrintSummary(w, cfg.JSONOutput)

	if summary.failed > 0 {
		return fmt.Errorf("%d file(s) failed to process", summary.failed)
	}
	return nil
}

// selectWriter picks how formatted output reaches disk: interactive
// confirmation, a direct write (--commit), or staged under the project's
// staging directory by default — the non-destructive default.
func selectWriter(cfg *config.Config) writer.Writer {
	switch {
	case cfg.Interactive:
		return writer.NewInteractiveWriter()
	case cfg.Commit:
		return writer.NewDiskWriter()
	default:
		return writer.NewStagingWriter(cfg.StagingDir)
	}
}
