package main

import (
	"github.com/spf13/cobra"

	"github.com/oxhq/styler/internal/config"
)

const version = "0.1.0"

// newRootCmd builds the styler command tree: format, check, apply, and
// version. format, check, and apply share the flag set registered by
// config.RegisterFlags; version takes no flags.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "styler",
		Short:         "Format and check Java-family source files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newFormatCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newApplyCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// loadConfig parses cmd's flags (already registered by the caller) plus
// args into a resolved config.Config and scan targets.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, []string, error) {
	return config.BuildConfigFromFlags(cmd.Flags(), args)
}
