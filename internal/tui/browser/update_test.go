package browser

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/ccpanel/pkg/discovery"
	"github.com/mattsolo1/ccpanel/pkg/models"
)

func modelWithItems(items ...models.ConfigItem) Model {
	m := New(nil)
	snap := discovery.Snapshot{}
	for _, item := range items {
		switch item.Kind {
		case models.KindMemory:
			snap.Memory = append(snap.Memory, item)
		case models.KindCommand:
			snap.Commands = append(snap.Commands, item)
		}
	}
	m.snapshot = snap
	m.rebuildNodes()
	return m
}

func cursorOn(t *testing.T, m *Model, path string) {
	t.Helper()
	for i, n := range m.nodes {
		if n.item != nil && n.item.Path == path {
			m.cursor = i
			return
		}
	}
	t.Fatalf("no node for %s", path)
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMoveScopeKeySuppressedForMemory(t *testing.T) {
	m := modelWithItems(models.ConfigItem{
		Name: "CLAUDE.md", Path: "/home/u/.claude/CLAUDE.md",
		Scope: models.ScopeGlobal, Kind: models.KindMemory,
	})
	cursorOn(t, &m, "/home/u/.claude/CLAUDE.md")

	updated, cmd := m.Update(keyPress('m'))
	require.Nil(t, cmd, "memory items must not trigger a scope move")
	assert.Equal(t, "memory files cannot change scope", updated.(Model).statusMessage)
}

func TestMoveScopeKeyFiresForCommands(t *testing.T) {
	m := modelWithItems(models.ConfigItem{
		Name: "deploy.md", Path: "/home/u/.claude/commands/deploy.md",
		Scope: models.ScopeGlobal, Kind: models.KindCommand,
	})
	cursorOn(t, &m, "/home/u/.claude/commands/deploy.md")

	_, cmd := m.Update(keyPress('m'))
	assert.NotNil(t, cmd)
}
