package models

// Kind is the artifact category a discovered item belongs to.
type Kind string

const (
	KindMemory         Kind = "memory"
	KindCommand        Kind = "command"
	KindSkill          Kind = "skill"
	KindSubAgent       Kind = "subagent"
	KindMcpServer      Kind = "mcp-server"
	KindPermissionRule Kind = "permission"
	KindHookEntry      Kind = "hook"
)

// AllKinds returns the file-backed artifact kinds in display order.
func AllKinds() []Kind {
	return []Kind{
		KindMemory,
		KindCommand,
		KindSkill,
		KindSubAgent,
		KindMcpServer,
		KindPermissionRule,
		KindHookEntry,
	}
}

// Scope identifies which root directory an artifact belongs to.
type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopeProject Scope = "project"
	// ScopeNested marks memory files found below the project root at a
	// non-canonical location.
	ScopeNested Scope = "nested"
)

// Location identifies which settings source contributed a rule or server.
type Location string

const (
	LocationUser    Location = "User"
	LocationProject Location = "Project"
	LocationManaged Location = "Managed"
)

// ConfigItem is one discovered configuration artifact. Path is unique
// within a single discovery pass for a given kind; every item is rebuilt
// from scratch on each pass.
type ConfigItem struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Scope       Scope  `json:"scope"`
	ScopeLabel  string `json:"scopeLabel,omitempty"`
	Kind        Kind   `json:"kind"`
	IsDirectory bool   `json:"isDirectory,omitempty"`

	// ParentKind is set on grouping folders under commands/ and agents/
	// so folder-scoped create and delete know what they contain.
	ParentKind Kind `json:"parentKind,omitempty"`

	// Description comes from the artifact's markdown frontmatter when
	// one exists. Presentation only.
	Description string `json:"description,omitempty"`
}
