package browser

import (
	"path/filepath"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/ccpanel/pkg/models"
	"github.com/mattsolo1/ccpanel/pkg/tree"
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		m.snapshot = msg.snapshot
		m.rebuildNodes()
		return m, nil

	case watcherStartedMsg:
		m.watcher = msg.watcher
		return m, nil

	case fileChangedMsg:
		return m, discoverCmd(m.svc)

	case mutationDoneMsg:
		if msg.err != nil {
			m.statusMessage = msg.err.Error()
		} else {
			m.statusMessage = msg.status
		}
		return m, discoverCmd(m.svc)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != inputNone {
		return m.handleInputKey(msg)
	}
	if m.confirmingDelete {
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.watcher != nil {
			m.watcher.Stop()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.nodes)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Refresh):
		m.statusMessage = ""
		return m, discoverCmd(m.svc)

	case key.Matches(msg, m.keys.Toggle):
		if node := m.selectedNode(); node != nil && node.isFoldable() {
			id := node.nodeID()
			m.collapsed[id] = !m.collapsed[id]
			m.rebuildNodes()
		}

	case key.Matches(msg, m.keys.New):
		kind := m.kindUnderCursor()
		if kind == "" {
			m.statusMessage = "select a section to create into"
			break
		}
		m.createKind = kind
		m.mode = inputNewName
		m.textInput.Placeholder = "name"
		m.textInput.SetValue("")
		return m, m.textInput.Focus()

	case key.Matches(msg, m.keys.Rename):
		node := m.selectedNode()
		if node == nil || node.item == nil {
			break
		}
		item := *node.item
		m.renameTarget = &item
		m.mode = inputRename
		m.textInput.Placeholder = "new name"
		m.textInput.SetValue(baseName(item))
		return m, m.textInput.Focus()

	case key.Matches(msg, m.keys.Move):
		node := m.selectedNode()
		if node == nil || node.item == nil || node.item.IsDirectory {
			break
		}
		// Memory files live at fixed canonical locations, not in a kind
		// directory, so they have no scope to move between.
		if node.item.Kind == models.KindMemory {
			m.statusMessage = "memory files cannot change scope"
			break
		}
		return m, moveScopeCmd(m.svc, *node.item)

	case key.Matches(msg, m.keys.Delete):
		node := m.selectedNode()
		if node == nil || node.item == nil {
			break
		}
		m.confirmingDelete = true

	case key.Matches(msg, m.keys.Open):
		node := m.selectedNode()
		if node == nil || node.item == nil || node.item.IsDirectory {
			break
		}
		return m, openEditorCmd(m.svc, node.item.Path)
	}

	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	node := m.selectedNode()
	m.confirmingDelete = false
	if node == nil || node.item == nil {
		return m, nil
	}
	if key.Matches(msg, m.keys.Confirm) {
		return m, deleteCmd(m.svc, *node.item)
	}
	m.statusMessage = "delete cancelled"
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := m.textInput.Value()
		mode := m.mode
		m.mode = inputNone
		m.textInput.Blur()
		if value == "" {
			return m, nil
		}
		switch mode {
		case inputNewName:
			return m, createCmd(m.svc, m.createKind, value)
		case inputRename:
			if m.renameTarget != nil {
				target := *m.renameTarget
				m.renameTarget = nil
				return m, renameCmd(m.svc, target, value)
			}
		}
		return m, nil
	case "esc":
		m.mode = inputNone
		m.renameTarget = nil
		m.textInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// kindUnderCursor returns the kind of the section the cursor is in.
func (m *Model) kindUnderCursor() models.Kind {
	for i := m.cursor; i >= 0; i-- {
		if i < len(m.nodes) && m.nodes[i].isSection {
			return m.nodes[i].kind
		}
	}
	return ""
}

func baseName(item models.ConfigItem) string {
	if item.IsDirectory {
		return item.Name
	}
	ext := filepath.Ext(item.Name)
	return item.Name[:len(item.Name)-len(ext)]
}

// rebuildNodes flattens the snapshot into display lines, honoring
// collapsed sections and folders.
func (m *Model) rebuildNodes() {
	var nodes []*displayNode

	for _, kind := range []models.Kind{models.KindMemory, models.KindCommand, models.KindSkill, models.KindSubAgent} {
		items := m.snapshot.Items(kind)
		section := &displayNode{isSection: true, kind: kind}
		nodes = append(nodes, section)
		if m.collapsed[section.nodeID()] {
			continue
		}
		nodes = append(nodes, m.itemNodes(kind, items)...)
	}

	serverSection := &displayNode{isSection: true, kind: models.KindMcpServer}
	nodes = append(nodes, serverSection)
	if !m.collapsed[serverSection.nodeID()] {
		for i := range m.snapshot.McpServers {
			nodes = append(nodes, &displayNode{entry: &m.snapshot.McpServers[i], depth: 1})
		}
	}

	ruleSection := &displayNode{isSection: true, kind: models.KindPermissionRule}
	nodes = append(nodes, ruleSection)
	if !m.collapsed[ruleSection.nodeID()] {
		for i := range m.snapshot.Permissions {
			nodes = append(nodes, &displayNode{rule: &m.snapshot.Permissions[i], depth: 1})
		}
	}

	hookSection := &displayNode{isSection: true, kind: models.KindHookEntry}
	nodes = append(nodes, hookSection)
	if !m.collapsed[hookSection.nodeID()] {
		for i := range m.snapshot.Hooks {
			hc := &m.snapshot.Hooks[i]
			for mi := range hc.Matchers {
				for hi := range hc.Matchers[mi].Hooks {
					nodes = append(nodes, &displayNode{
						hookConfig:   hc,
						matcherIndex: mi,
						hookIndex:    hi,
						depth:        1,
					})
				}
			}
		}
	}

	m.nodes = nodes
	if m.cursor >= len(nodes) {
		m.cursor = len(nodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// itemNodes renders one kind's items as an indented tree per scope.
func (m *Model) itemNodes(kind models.Kind, items []models.ConfigItem) []*displayNode {
	var nodes []*displayNode

	byScope := map[models.Scope][]models.ConfigItem{}
	for _, item := range items {
		byScope[item.Scope] = append(byScope[item.Scope], item)
	}

	scopes := make([]models.Scope, 0, len(byScope))
	for scope := range byScope {
		scopes = append(scopes, scope)
	}
	sort.Slice(scopes, func(i, j int) bool { return scopes[i] < scopes[j] })

	for _, scope := range scopes {
		scoped := byScope[scope]
		base := commonDir(scoped)
		root := tree.Build(scoped, base)
		root.Walk(func(node *tree.Node, depth int) {
			if node.Item == nil {
				return
			}
			dn := &displayNode{item: node.Item, depth: depth}
			if m.collapsedAncestor(node) {
				return
			}
			nodes = append(nodes, dn)
		})
	}
	return nodes
}

// collapsedAncestor reports whether any ancestor folder of node is
// collapsed.
func (m *Model) collapsedAncestor(node *tree.Node) bool {
	for p := node.Parent; p != nil; p = p.Parent {
		if p.Item != nil && m.collapsed["item:"+p.Path] {
			return true
		}
	}
	return false
}

func commonDir(items []models.ConfigItem) string {
	if len(items) == 0 {
		return ""
	}
	dir := filepath.Dir(items[0].Path)
	for _, item := range items[1:] {
		for !within(dir, item.Path) {
			parent := filepath.Dir(dir)
			if parent == dir {
				return dir
			}
			dir = parent
		}
	}
	return dir
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !filepath.IsAbs(rel) && (len(rel) < 3 || rel[:3] != ".."+string(filepath.Separator))
}
