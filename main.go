package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/ccpanel/cmd"
	"github.com/mattsolo1/ccpanel/cmd/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ccpanel",
		Short: "Browse and edit Claude Code configuration",
		Long: `ccpanel discovers Claude Code configuration artifacts - memory files,
slash commands, skills, sub-agents, MCP servers, permission rules, and
hooks - across the global ~/.claude directory and the current project,
and edits them in place.`,
		SilenceUsage: true,
	}

	config.AddGlobalFlags(rootCmd)
	cobra.OnInitialize(config.InitConfig)

	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewNewCmd())
	rootCmd.AddCommand(cmd.NewFolderCmd())
	rootCmd.AddCommand(cmd.NewMoveCmd())
	rootCmd.AddCommand(cmd.NewRenameCmd())
	rootCmd.AddCommand(cmd.NewDeleteCmd())
	rootCmd.AddCommand(cmd.NewHookCmd())
	rootCmd.AddCommand(cmd.NewTuiCmd())
	rootCmd.AddCommand(cmd.NewWatchCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
