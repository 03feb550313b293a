package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/ccpanel/cmd/config"
)

// NewRenameCmd renames an artifact file or folder in place.
func NewRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <path> <new-name>",
		Short: "Rename an artifact, keeping its extension and location",
		Long: `Rename an artifact file or grouping folder. File extensions are
preserved; the new name must contain only letters, digits, hyphens, and
underscores. Renaming onto an existing path fails.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService(nil)
			if err != nil {
				return fmt.Errorf("initialize service: %w", err)
			}

			item, err := findItem(svc, args[0])
			if err != nil {
				return err
			}

			newPath, err := svc.Mutation.Rename(*item, args[1])
			if err != nil {
				return err
			}
			fmt.Println(newPath)
			return nil
		},
	}
	return cmd
}
