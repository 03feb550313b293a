package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/ccpanel/cmd/config"
	"github.com/mattsolo1/ccpanel/pkg/models"
)

// NewHookCmd groups the hook CRUD subcommands.
func NewHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Manage hooks in settings files",
		Long: `Add, update, and delete hooks. Hooks live in the global
settings.json (scope global) or the project's settings.local.json
(scope project). Positions shown by "ccpanel list hook" as [matcher.hook]
index pairs address hooks for update and delete; positions are always
re-resolved against the file's current content before writing.`,
	}

	cmd.AddCommand(newHookAddCmd())
	cmd.AddCommand(newHookUpdateCmd())
	cmd.AddCommand(newHookDeleteCmd())
	return cmd
}

func parseEventType(arg string) (models.HookEventType, error) {
	for _, event := range models.AllHookEventTypes() {
		if string(event) == arg {
			return event, nil
		}
	}
	return "", fmt.Errorf("unknown event type %q (one of %v)", arg, models.AllHookEventTypes())
}

func hookFromFlags(hookType, command, prompt string, timeout int) models.Hook {
	hook := models.Hook{Type: hookType, Timeout: timeout}
	switch hookType {
	case "prompt":
		hook.Prompt = prompt
	default:
		hook.Type = "command"
		hook.Command = command
	}
	return hook
}

func newHookAddCmd() *cobra.Command {
	var (
		scope    string
		matcher  string
		hookType string
		command  string
		prompt   string
		timeout  int
	)

	cmd := &cobra.Command{
		Use:   "add <event-type>",
		Short: "Add a hook for an event type",
		Long: `Add a hook. When a matcher entry with the exact same matcher string
already exists for the event type, the hook is appended to it; otherwise
a new matcher entry is created.

Examples:
  ccpanel hook add PreToolUse --matcher "Bash" --command "echo pre-bash"
  ccpanel hook add Stop --type prompt --prompt "Summarize the session"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService(nil)
			if err != nil {
				return fmt.Errorf("initialize service: %w", err)
			}

			event, err := parseEventType(args[0])
			if err != nil {
				return err
			}

			hook := hookFromFlags(hookType, command, prompt, timeout)
			if err := svc.Mutation.AddHook(models.Scope(scope), event, matcher, hook); err != nil {
				return err
			}
			fmt.Println("hook added")
			return nil
		},
	}

	cmd.Flags().StringVarP(&scope, "scope", "s", string(models.ScopeProject), "Settings scope (global or project)")
	cmd.Flags().StringVarP(&matcher, "matcher", "m", "", "Tool name matcher (empty matches all tools)")
	cmd.Flags().StringVar(&hookType, "type", "command", "Hook type (command or prompt)")
	cmd.Flags().StringVar(&command, "command", "", "Shell command to run")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Prompt text (for --type prompt)")
	cmd.Flags().IntVar(&timeout, "timeout", 0, "Timeout in seconds (0 uses the 60s default)")
	return cmd
}

func newHookUpdateCmd() *cobra.Command {
	var (
		scope    string
		hookType string
		command  string
		prompt   string
		timeout  int
	)

	cmd := &cobra.Command{
		Use:   "update <event-type> <matcher-index> <hook-index>",
		Short: "Replace the hook at a position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService(nil)
			if err != nil {
				return fmt.Errorf("initialize service: %w", err)
			}

			event, err := parseEventType(args[0])
			if err != nil {
				return err
			}
			mi, hi, err := parseIndexes(args[1], args[2])
			if err != nil {
				return err
			}

			hook := hookFromFlags(hookType, command, prompt, timeout)
			if err := svc.Mutation.UpdateHook(models.Scope(scope), event, mi, hi, hook); err != nil {
				return err
			}
			fmt.Println("hook updated")
			return nil
		},
	}

	cmd.Flags().StringVarP(&scope, "scope", "s", string(models.ScopeProject), "Settings scope (global or project)")
	cmd.Flags().StringVar(&hookType, "type", "command", "Hook type (command or prompt)")
	cmd.Flags().StringVar(&command, "command", "", "Shell command to run")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Prompt text (for --type prompt)")
	cmd.Flags().IntVar(&timeout, "timeout", 0, "Timeout in seconds (0 uses the 60s default)")
	return cmd
}

func newHookDeleteCmd() *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "delete <event-type> <matcher-index> <hook-index>",
		Short: "Delete the hook at a position",
		Long: `Delete a hook. Emptied matcher entries, event arrays, and the hooks
key itself are cleaned up so the settings file never accumulates empty
scaffolding.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService(nil)
			if err != nil {
				return fmt.Errorf("initialize service: %w", err)
			}

			event, err := parseEventType(args[0])
			if err != nil {
				return err
			}
			mi, hi, err := parseIndexes(args[1], args[2])
			if err != nil {
				return err
			}

			if err := svc.Mutation.DeleteHook(models.Scope(scope), event, mi, hi); err != nil {
				return err
			}
			fmt.Println("hook deleted")
			return nil
		},
	}

	cmd.Flags().StringVarP(&scope, "scope", "s", string(models.ScopeProject), "Settings scope (global or project)")
	return cmd
}

func parseIndexes(matcherArg, hookArg string) (int, int, error) {
	var mi, hi int
	if _, err := fmt.Sscanf(matcherArg, "%d", &mi); err != nil {
		return 0, 0, fmt.Errorf("matcher index %q is not a number", matcherArg)
	}
	if _, err := fmt.Sscanf(hookArg, "%d", &hi); err != nil {
		return 0, 0, fmt.Errorf("hook index %q is not a number", hookArg)
	}
	return mi, hi, nil
}
