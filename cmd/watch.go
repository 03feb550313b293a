package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/ccpanel/cmd/config"
)

// NewWatchCmd re-runs discovery whenever configuration files change and
// prints a one-line summary per pass.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch configuration directories and report changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService(nil)
			if err != nil {
				return fmt.Errorf("initialize service: %w", err)
			}

			printPass := func() {
				snap := svc.DiscoverAll(context.Background())
				fmt.Printf("%d memory, %d commands, %d skills, %d agents, %d servers, %d rules, %d hook configs\n",
					len(snap.Memory), len(snap.Commands), len(snap.Skills), len(snap.SubAgents),
					len(snap.McpServers), len(snap.Permissions), len(snap.Hooks))
			}
			printPass()

			watcher, err := svc.Watch(printPass)
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			defer watcher.Stop()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			return nil
		},
	}
	return cmd
}
