// Package browser is the configuration side panel: a tree of discovered
// artifacts per kind, with create, rename, move, and delete wired to the
// mutation engine and an fsnotify-driven auto-refresh.
package browser

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/ccpanel/pkg/discovery"
	"github.com/mattsolo1/ccpanel/pkg/models"
	"github.com/mattsolo1/ccpanel/pkg/service"
	"github.com/mattsolo1/ccpanel/pkg/watch"
)

// displayNode is a single rendered line in the panel.
type displayNode struct {
	isSection bool
	kind      models.Kind // section header kind

	item  *models.ConfigItem
	rule  *models.PermissionRule
	entry *models.McpServerEntry

	hookConfig   *models.HookConfiguration
	matcherIndex int
	hookIndex    int

	depth int
}

// nodeID identifies a node across refreshes for collapse tracking.
func (n *displayNode) nodeID() string {
	switch {
	case n.isSection:
		return "section:" + string(n.kind)
	case n.item != nil:
		return "item:" + n.item.Path
	}
	return ""
}

func (n *displayNode) isFoldable() bool {
	return n.isSection || (n.item != nil && n.item.IsDirectory)
}

// inputMode is the active text-entry flow, if any.
type inputMode int

const (
	inputNone inputMode = iota
	inputNewName
	inputRename
)

// Model is the side panel's bubbletea model.
type Model struct {
	svc     *service.Service
	watcher *watch.Watcher

	snapshot     discovery.Snapshot
	nodes        []*displayNode
	cursor       int
	scrollOffset int
	collapsed    map[string]bool

	keys   KeyMap
	width  int
	height int

	statusMessage    string
	confirmingDelete bool

	mode      inputMode
	textInput textinput.Model
	// target of the pending rename
	renameTarget *models.ConfigItem
	// kind the pending create goes into
	createKind models.Kind
}

// New creates the side panel model.
func New(svc *service.Service) Model {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = 40

	return Model{
		svc:       svc,
		collapsed: make(map[string]bool),
		keys:      DefaultKeyMap(),
		textInput: ti,
	}
}

// Init starts the first discovery pass and the filesystem watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(discoverCmd(m.svc), startWatcherCmd(m.svc))
}

// selectedNode returns the node under the cursor.
func (m *Model) selectedNode() *displayNode {
	if m.cursor < 0 || m.cursor >= len(m.nodes) {
		return nil
	}
	return m.nodes[m.cursor]
}
