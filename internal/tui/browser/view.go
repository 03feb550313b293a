package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mattsolo1/ccpanel/pkg/models"
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	dirStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	scopeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// View renders the side panel.
func (m Model) View() string {
	var b strings.Builder

	visible := m.height - 3
	if visible < 1 {
		visible = 20
	}

	start := m.scrollOffset
	if m.cursor < start {
		start = m.cursor
	}
	if m.cursor >= start+visible {
		start = m.cursor - visible + 1
	}

	end := start + visible
	if end > len(m.nodes) {
		end = len(m.nodes)
	}

	for i := start; i < end; i++ {
		line := m.renderNode(m.nodes[i])
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderNode(n *displayNode) string {
	indent := strings.Repeat("  ", n.depth)

	switch {
	case n.isSection:
		marker := "▾"
		if m.collapsed[n.nodeID()] {
			marker = "▸"
		}
		return sectionStyle.Render(fmt.Sprintf("%s %s", marker, sectionName(n.kind)))

	case n.item != nil:
		name := n.item.Name
		if n.item.IsDirectory {
			name = dirStyle.Render(name + "/")
		}
		label := scopeStyle.Render(" (" + labelFor(n.item) + ")")
		return indent + name + label

	case n.entry != nil:
		detail := n.entry.Command
		if n.entry.URL != "" {
			detail = n.entry.URL
		}
		return fmt.Sprintf("%s%s  %s", indent, n.entry.Name,
			scopeStyle.Render(fmt.Sprintf("%s · %s · %s", n.entry.Type, n.entry.Location, detail)))

	case n.rule != nil:
		return fmt.Sprintf("%s%s  %s", indent, n.rule.String(),
			scopeStyle.Render(fmt.Sprintf("%s · %s", n.rule.Type, n.rule.Location)))

	case n.hookConfig != nil:
		matcher := n.hookConfig.Matchers[n.matcherIndex]
		hook := matcher.Hooks[n.hookIndex]
		label := matcher.Matcher
		if label == "" {
			label = "*"
		}
		detail := hook.Command
		if hook.Prompt != "" {
			detail = hook.Prompt
		}
		return fmt.Sprintf("%s%s [%s]  %s", indent, n.hookConfig.EventType, label, scopeStyle.Render(detail))
	}
	return indent
}

func (m Model) renderFooter() string {
	if m.confirmingDelete {
		if node := m.selectedNode(); node != nil && node.item != nil {
			return errorStyle.Render(fmt.Sprintf("delete %s? [y/esc]", node.item.Name))
		}
	}
	if m.mode != inputNone {
		return m.textInput.View()
	}
	if m.statusMessage != "" {
		return statusStyle.Render(m.statusMessage)
	}
	return helpStyle.Render("j/k move · tab fold · n new · R rename · m move · d delete · enter open · r refresh · q quit")
}

func sectionName(kind models.Kind) string {
	switch kind {
	case models.KindMemory:
		return "Memory"
	case models.KindCommand:
		return "Commands"
	case models.KindSkill:
		return "Skills"
	case models.KindSubAgent:
		return "Sub-agents"
	case models.KindMcpServer:
		return "MCP Servers"
	case models.KindPermissionRule:
		return "Permissions"
	case models.KindHookEntry:
		return "Hooks"
	}
	return string(kind)
}

func labelFor(item *models.ConfigItem) string {
	if item.ScopeLabel != "" {
		return item.ScopeLabel
	}
	return string(item.Scope)
}
