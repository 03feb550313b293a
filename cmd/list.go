package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mattsolo1/ccpanel/cmd/config"
	"github.com/mattsolo1/ccpanel/pkg/discovery"
	"github.com/mattsolo1/ccpanel/pkg/models"
)

var titleCaser = cases.Title(language.English)

// NewListCmd lists discovered artifacts, all kinds or one.
func NewListCmd() *cobra.Command {
	var listJSON bool

	cmd := &cobra.Command{
		Use:     "list [kind]",
		Short:   "List discovered configuration artifacts",
		Aliases: []string{"ls"},
		Long: `List configuration artifacts discovered under the global and project roots.

Kinds: memory, command, skill, subagent, mcp-server, permission, hook

Examples:
  ccpanel list                # everything
  ccpanel list command        # slash commands only
  ccpanel list permission     # permission rules from all settings files
  ccpanel list --json         # machine-readable output`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService(nil)
			if err != nil {
				return fmt.Errorf("initialize service: %w", err)
			}

			snap := svc.DiscoverAll(context.Background())

			var kind models.Kind
			if len(args) == 1 {
				kind = models.Kind(args[0])
			}

			if listJSON {
				return printJSON(snap, kind)
			}
			return printTable(snap, kind)
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	return cmd
}

func printJSON(snap discovery.Snapshot, kind models.Kind) error {
	var payload any = snap
	switch kind {
	case "":
	case models.KindMcpServer:
		payload = snap.McpServers
	case models.KindPermissionRule:
		payload = snap.Permissions
	case models.KindHookEntry:
		payload = snap.Hooks
	default:
		payload = snap.Items(kind)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printTable(snap discovery.Snapshot, kind models.Kind) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	defer w.Flush()

	for _, k := range models.AllKinds() {
		if kind != "" && k != kind {
			continue
		}
		switch k {
		case models.KindMcpServer:
			printServers(w, snap.McpServers)
		case models.KindPermissionRule:
			printRules(w, snap.Permissions)
		case models.KindHookEntry:
			printHooks(w, snap.Hooks)
		default:
			printItems(w, k, snap.Items(k))
		}
	}
	return nil
}

func printItems(w *tabwriter.Writer, kind models.Kind, items []models.ConfigItem) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s\n", sectionTitle(kind))
	for _, item := range items {
		marker := ""
		if item.IsDirectory {
			marker = "/"
		}
		fmt.Fprintf(w, "  %s%s\t%s\t%s\n", item.Name, marker, item.Scope, item.Path)
	}
	fmt.Fprintln(w)
}

func printServers(w *tabwriter.Writer, servers []models.McpServerEntry) {
	if len(servers) == 0 {
		return
	}
	fmt.Fprintln(w, "MCP Servers")
	for _, s := range servers {
		detail := s.Command
		if s.URL != "" {
			detail = s.URL
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", s.Name, s.Type, s.Location, detail)
	}
	fmt.Fprintln(w)
}

func printRules(w *tabwriter.Writer, rules []models.PermissionRule) {
	if len(rules) == 0 {
		return
	}
	fmt.Fprintln(w, "Permissions")
	for _, r := range rules {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", r.Type, r.Tool, r.Pattern, r.Location)
	}
	fmt.Fprintln(w)
}

func printHooks(w *tabwriter.Writer, configs []models.HookConfiguration) {
	if len(configs) == 0 {
		return
	}
	fmt.Fprintln(w, "Hooks")
	for _, hc := range configs {
		for mi, matcher := range hc.Matchers {
			label := matcher.Matcher
			if label == "" {
				label = "*"
			}
			for hi, hook := range matcher.Hooks {
				detail := hook.Command
				if hook.Prompt != "" {
					detail = hook.Prompt
				}
				timeout := hook.Timeout
				if timeout == 0 {
					timeout = models.DefaultHookTimeout
				}
				fmt.Fprintf(w, "  %s\t%s\t[%d.%d]\t%s\t%ds\t%s\n", hc.EventType, label, mi, hi, hook.Type, timeout, detail)
			}
		}
	}
	fmt.Fprintln(w)
}

func sectionTitle(kind models.Kind) string {
	switch kind {
	case models.KindMemory:
		return "Memory"
	case models.KindCommand:
		return "Commands"
	case models.KindSkill:
		return "Skills"
	case models.KindSubAgent:
		return "Sub-agents"
	}
	return titleCaser.String(string(kind))
}
