package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/ccpanel/cmd/config"
	"github.com/mattsolo1/ccpanel/pkg/models"
	"github.com/mattsolo1/ccpanel/pkg/mutate"
	"github.com/mattsolo1/ccpanel/pkg/service"
)

// NewMoveCmd moves an artifact between the global and project scopes.
func NewMoveCmd() *cobra.Command {
	var (
		moveTarget string
		moveForce  bool
	)

	cmd := &cobra.Command{
		Use:   "move <path>",
		Short: "Move an artifact to the other scope",
		Long: `Move a discovered artifact file to the other scope's canonical
directory for its kind. Moving to the scope the artifact is already in
is a no-op.

Examples:
  ccpanel move .claude/commands/deploy.md --to global
  ccpanel move ~/.claude/agents/helper.md --to project`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService(newTerminalPrompter(moveForce))
			if err != nil {
				return fmt.Errorf("initialize service: %w", err)
			}

			item, err := findItem(svc, args[0])
			if err != nil {
				return err
			}

			newPath, err := svc.Mutation.MoveScope(*item, models.Scope(moveTarget))
			if errors.Is(err, mutate.ErrAlreadyInScope) {
				fmt.Printf("%s is already in %s scope\n", item.Name, moveTarget)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Println(newPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&moveTarget, "to", "", "Target scope (global or project)")
	cmd.Flags().BoolVar(&moveForce, "force", false, "Overwrite a colliding target without prompting")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// findItem locates a discovered item by absolute or relative path.
func findItem(svc *service.Service, path string) (*models.ConfigItem, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	snap := svc.DiscoverAll(context.Background())
	for _, kind := range models.AllKinds() {
		for _, item := range snap.Items(kind) {
			if item.Path == abs {
				found := item
				return &found, nil
			}
		}
	}
	return nil, fmt.Errorf("%s is not a discovered artifact", path)
}
