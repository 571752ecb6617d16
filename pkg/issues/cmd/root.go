package cmd

import (
	"github.com/compozy/issues-action/pkg/logger"
	"github.com/compozy/issues-action/pkg/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the issues-action command tree.
func NewRootCmd(factory RunnerFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "issues-action",
		Short: "Bulk-update GitHub issues and pull requests from CI",
		Long: `Bulk-update GitHub issues and pull requests from CI.

Targets are given as issue numbers, a commit whose pull requests should be
updated, or an issue search query. Without any of them the issue or pull
request of the triggering event is used.`,
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	logger.AddFlags(root)
	root.PersistentFlags().String("config", "", "Path to an optional YAML configuration file")
	root.PersistentFlags().String("env-file", "", "Path to an optional dotenv file loaded before the configuration")
	root.AddCommand(NewRunCmd(factory))
	return root
}
