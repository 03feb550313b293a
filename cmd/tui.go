package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/ccpanel/cmd/config"
	"github.com/mattsolo1/ccpanel/internal/tui/browser"
)

// NewTuiCmd launches the configuration side panel.
func NewTuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tui",
		Short:   "Browse and edit configuration in a terminal side panel",
		Aliases: []string{"browse"},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService(nil)
			if err != nil {
				return fmt.Errorf("initialize service: %w", err)
			}
			return browser.Run(svc)
		},
	}
	return cmd
}
