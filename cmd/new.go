package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/ccpanel/cmd/config"
	"github.com/mattsolo1/ccpanel/pkg/models"
	"github.com/mattsolo1/ccpanel/pkg/service"
)

// NewNewCmd creates a new artifact file.
func NewNewCmd() *cobra.Command {
	var (
		newScope   string
		newFolder  string
		newContent string
		newStdin   bool
		newForce   bool
	)

	cmd := &cobra.Command{
		Use:   "new <kind> <name>",
		Short: "Create a new configuration artifact",
		Long: `Create a new artifact file under the kind's canonical directory,
creating intermediate directories as needed.

Examples:
  ccpanel new command deploy
  ccpanel new command deploy --scope global
  ccpanel new skill review --folder code-quality
  echo "content" | ccpanel new agent helper --stdin`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := models.Kind(args[0])
			name := args[1]

			svc, err := config.InitService(newTerminalPrompter(newForce))
			if err != nil {
				return fmt.Errorf("initialize service: %w", err)
			}

			content := newContent
			if newStdin {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = string(data)
			}
			if content == "" {
				content = service.DefaultContent(kind, name)
			}

			path, err := svc.Mutation.CreateFile(kind, models.Scope(newScope), service.FileName(kind, name), content, newFolder)
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&newScope, "scope", "s", string(models.ScopeProject), "Target scope (global or project)")
	cmd.Flags().StringVarP(&newFolder, "folder", "f", "", "Nested folder under the kind directory")
	cmd.Flags().StringVar(&newContent, "content", "", "File content (default is a kind-specific template)")
	cmd.Flags().BoolVar(&newStdin, "stdin", false, "Read file content from stdin")
	cmd.Flags().BoolVar(&newForce, "force", false, "Overwrite an existing file without prompting")
	return cmd
}

// NewFolderCmd creates a grouping folder under a kind directory.
func NewFolderCmd() *cobra.Command {
	var folderScope string

	cmd := &cobra.Command{
		Use:   "folder <kind> <name>",
		Short: "Create a grouping folder for commands or agents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService(nil)
			if err != nil {
				return fmt.Errorf("initialize service: %w", err)
			}

			path, err := svc.Mutation.CreateFolder(models.Kind(args[0]), models.Scope(folderScope), args[1])
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&folderScope, "scope", "s", string(models.ScopeProject), "Target scope (global or project)")
	return cmd
}
