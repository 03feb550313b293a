package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/ccpanel/cmd/config"
)

// NewDeleteCmd deletes an artifact after explicit confirmation.
func NewDeleteCmd() *cobra.Command {
	var deleteForce bool

	cmd := &cobra.Command{
		Use:     "delete <path>",
		Short:   "Delete an artifact file or folder",
		Aliases: []string{"rm"},
		Long: `Delete a discovered artifact. Folders are removed recursively.
Deletion always asks for confirmation unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService(nil)
			if err != nil {
				return fmt.Errorf("initialize service: %w", err)
			}

			item, err := findItem(svc, args[0])
			if err != nil {
				return err
			}

			confirmed := deleteForce
			if !confirmed {
				what := item.Name
				if item.IsDirectory {
					what += " and all its contents"
				}
				confirmed = confirm(fmt.Sprintf("Delete %s?", what))
			}
			if !confirmed {
				fmt.Println("cancelled")
				return nil
			}

			if err := svc.Mutation.Delete(*item, true); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", item.Path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Delete without asking for confirmation")
	return cmd
}
